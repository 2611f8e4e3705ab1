package entity

// LoginRequest запрос на вход оператора
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ProxiedResponse ответ бэкенда, передаваемый клиенту без изменений
type ProxiedResponse struct {
	StatusCode int
	Body       []byte
}

// StatusResponse универсальный ответ {status, message}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditStatus статус записи аудита
type AuditStatus string

const (
	AuditStatusStarted   AuditStatus = "STARTED"
	AuditStatusCompleted AuditStatus = "COMPLETED"
	AuditStatusFailed    AuditStatus = "FAILED"
)

// AuditLog запись журнала аудита. Журнал append-only: на каждый checkout
// приходится две записи с общим RequestID — при приёме запроса и при
// терминальном исходе. Снимки запроса и ответа хранятся как непрозрачный
// JSON для последующего разбора инцидентов.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	RequestID    string         `json:"request_id" gorm:"type:varchar(36);index"`
	Timestamp    time.Time      `json:"timestamp" gorm:"not null;index"`
	ClientIP     string         `json:"client_ip" gorm:"type:varchar(45)"`
	Endpoint     string         `json:"endpoint" gorm:"type:varchar(255)"`
	Method       string         `json:"method" gorm:"type:varchar(10)"`
	RequestData  datatypes.JSON `json:"request_data"`
	ResponseData datatypes.JSON `json:"response_data"`
	Status       AuditStatus    `json:"status" gorm:"type:varchar(20);index"`
}

// TableName задает имя таблицы для GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

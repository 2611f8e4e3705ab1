package resilience

import (
	"fmt"
	"sync"
	"time"

	"github.com/director74/dz9_gateway/pkg/errors"
)

// State представляет состояние circuit breaker'а
type State int

const (
	// StateClosed — вызовы проходят, отказы накапливаются в счётчике
	StateClosed State = iota
	// StateOpen — вызовы отклоняются без обращения к сети до истечения cool-down
	StateOpen
	// StateHalfOpen — пропускается пробный вызов; успех закрывает breaker, отказ снова открывает
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config содержит настройки circuit breaker'а
type Config struct {
	// FailureThreshold — число последовательных отказов, открывающее breaker
	FailureThreshold int
	// Cooldown — время, в течение которого открытый breaker отклоняет вызовы
	Cooldown time.Duration
}

// NewConfig возвращает настройки по умолчанию: 5 отказов, 30 секунд cool-down
func NewConfig() Config {
	return Config{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	}
}

// CircuitBreaker защищает один бэкенд от каскадных отказов.
// Состояние разделяется всеми конкурентными запросами к этому бэкенду,
// поэтому все переходы выполняются под мьютексом. Переходы монотонны:
// открытый breaker не может закрыться, минуя half-open пробу.
type CircuitBreaker struct {
	name   string
	config Config

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	now      func() time.Time // подменяется в тестах
}

func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	return &CircuitBreaker{
		name:   name,
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// Allow решает, можно ли выполнять вызов. Для открытого breaker'а с
// неистёкшим cool-down возвращается ErrCircuitOpen — это и есть механизм
// быстрого отказа, не дающий воркерам блокироваться на мёртвом бэкенде.
// По истечении cool-down breaker переходит в half-open и пропускает пробу.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return nil
	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.config.Cooldown {
			cb.state = StateHalfOpen
			return nil
		}
		return fmt.Errorf("%w: бэкенд %s недоступен, повтор после cool-down", errors.ErrCircuitOpen, cb.name)
	}
	return nil
}

// RecordSuccess сбрасывает счётчик отказов; успешная проба закрывает breaker
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.state = StateClosed
}

// RecordFailure увеличивает счётчик отказов. Порог учитывает отказы из
// разных checkout'ов: каждый из них повторяет вызов лишь трижды, но серия
// отказов подряд всё равно откроет breaker. Неудавшаяся half-open проба
// открывает breaker сразу, без накопления порога.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.open()
		return
	}

	cb.failures++
	if cb.failures >= cb.config.FailureThreshold {
		cb.open()
	}
}

// open переводит breaker в открытое состояние и запускает cool-down; вызывается под мьютексом
func (cb *CircuitBreaker) open() {
	cb.state = StateOpen
	cb.failures = 0
	cb.openedAt = cb.now()
}

// State возвращает текущее состояние breaker'а
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Registry хранит по одному circuit breaker'у на имя бэкенда.
// Явный синхронизированный объект вместо разделяемых изменяемых map.
type Registry struct {
	mu       sync.Mutex
	config   Config
	breakers map[string]*CircuitBreaker
}

func NewRegistry(config Config) *Registry {
	return &Registry{
		config:   config,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get возвращает breaker для бэкенда, создавая его при первом обращении
func (r *Registry) Get(backendName string) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb, ok := r.breakers[backendName]
	if !ok {
		cb = NewCircuitBreaker(backendName, r.config)
		r.breakers[backendName] = cb
	}
	return cb
}

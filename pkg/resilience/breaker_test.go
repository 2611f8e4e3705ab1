package resilience

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/director74/dz9_gateway/pkg/errors"
)

func newTestBreaker(threshold int, cooldown time.Duration) (*CircuitBreaker, *time.Time) {
	cb := NewCircuitBreaker("inventory", Config{
		FailureThreshold: threshold,
		Cooldown:         cooldown,
	})

	// Управляемые часы вместо time.Now, чтобы не ждать cool-down в тестах
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return current }
	return cb, &current
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, 30*time.Second)

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
		assert.Equal(t, StateClosed, cb.State())
	}

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())

	err := cb.Allow()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrCircuitOpen))
}

func TestBreakerSuccessResetsCounter(t *testing.T) {
	cb, _ := newTestBreaker(3, 30*time.Second)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()

	// Счётчик сброшен: до порога снова нужны три отказа подряд
	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	cb, clock := newTestBreaker(1, 30*time.Second)

	cb.RecordFailure()
	require.Equal(t, StateOpen, cb.State())
	require.Error(t, cb.Allow())

	// Cool-down истёк — breaker пропускает пробный вызов
	*clock = clock.Add(31 * time.Second)
	require.NoError(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.State())

	// Успешная проба закрывает breaker
	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	cb, clock := newTestBreaker(2, 30*time.Second)

	cb.RecordFailure()
	cb.RecordFailure()
	require.Equal(t, StateOpen, cb.State())

	*clock = clock.Add(30 * time.Second)
	require.NoError(t, cb.Allow())
	require.Equal(t, StateHalfOpen, cb.State())

	// Неудачная проба открывает breaker сразу, без накопления порога
	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.Error(t, cb.Allow())
}

// Конкурентные успехи и отказы не должны портить счётчик и терять переходы
func TestBreakerConcurrentRecording(t *testing.T) {
	cb, _ := newTestBreaker(1000, 30*time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cb.RecordFailure()
			}
		}()
	}
	wg.Wait()

	// Ровно 1000 отказов — порог достигнут, breaker открыт
	assert.Equal(t, StateOpen, cb.State())
}

func TestRegistryReturnsSameBreakerPerBackend(t *testing.T) {
	registry := NewRegistry(NewConfig())

	first := registry.Get("payment")
	second := registry.Get("payment")
	other := registry.Get("order")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState представляет состояние circuit breaker
type CircuitState int

const (
	// CircuitClosed означает, что circuit breaker закрыт (нормальное состояние)
	CircuitClosed CircuitState = iota
	// CircuitOpen означает, что circuit breaker открыт (состояние ошибки)
	CircuitOpen
	// CircuitHalfOpen означает, что circuit breaker полуоткрыт (пробное состояние)
	CircuitHalfOpen
)

// CircuitBreaker реализует паттерн circuit breaker для защиты хранилища
type CircuitBreaker struct {
	name             string
	state            CircuitState
	failureCount     int
	failureThreshold int
	resetTimeout     time.Duration
	lastStateChange  time.Time
	mutex            sync.RWMutex
	logger           *zap.Logger
	onStateChange    func(name string, state CircuitState)
	ignoredErrors    []error
}

// ErrCircuitOpen возвращается, когда circuit breaker блокирует выполнение операции
var ErrCircuitOpen = errors.New("circuit breaker is open")

// NewCircuitBreaker создает новый экземпляр CircuitBreaker.
// Ошибки из ignoredErrors (например "запись не найдена") не считаются отказами.
func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger, ignoredErrors ...error) *CircuitBreaker {
	return &CircuitBreaker{
		name:             name,
		state:            CircuitClosed,
		failureCount:     0,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		lastStateChange:  time.Now(),
		logger:           logger,
		ignoredErrors:    ignoredErrors,
	}
}

// DefaultCircuitBreakerOptions возвращает рекомендуемые настройки Circuit Breaker
func DefaultCircuitBreakerOptions() (int, time.Duration) {
	return 5, 30 * time.Second // 5 ошибок для срабатывания, сброс через 30 секунд
}

// SetStateChangeHook устанавливает функцию, вызываемую при смене состояния
// (используется для экспорта состояния в метрики)
func (cb *CircuitBreaker) SetStateChangeHook(hook func(name string, state CircuitState)) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.onStateChange = hook
}

// Execute выполняет функцию с учетом состояния circuit breaker
func (cb *CircuitBreaker) Execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	// Проверяем состояние circuit breaker
	if !cb.allowRequest() {
		cb.logger.Warn("Circuit breaker preventing operation execution",
			zap.String("circuit", cb.name),
			zap.String("operation", operation),
			zap.String("state", cb.stateString()))
		return ErrCircuitOpen
	}

	// Выполняем функцию
	err := fn(ctx)

	// Обрабатываем результат
	cb.handleResult(operation, err)

	return err
}

// allowRequest проверяет, можно ли выполнить запрос в текущем состоянии
func (cb *CircuitBreaker) allowRequest() bool {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		// Проверяем, не пора ли перейти в полуоткрытое состояние.
		// Состояние меняется в handleResult, так как здесь взят Read Lock.
		if time.Since(cb.lastStateChange) > cb.resetTimeout {
			return true
		}
		return false
	case CircuitHalfOpen:
		// В полуоткрытом состоянии разрешаем пробный запрос
		return true
	default:
		return false
	}
}

// handleResult обрабатывает результат выполнения функции
func (cb *CircuitBreaker) handleResult(operation string, err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	// Проверяем, нужно ли перейти из открытого в полуоткрытое состояние
	if cb.state == CircuitOpen && time.Since(cb.lastStateChange) > cb.resetTimeout {
		cb.transitionTo(CircuitHalfOpen, operation)
	}

	// Проверяем, является ли ошибка игнорируемой
	if err != nil && cb.isIgnoredError(err) {
		cb.logger.Debug("Игнорируем ошибку для circuit breaker",
			zap.String("circuit", cb.name),
			zap.String("operation", operation),
			zap.Error(err))
		return
	}

	// Обрабатываем результат в зависимости от текущего состояния
	if err != nil {
		switch cb.state {
		case CircuitClosed:
			cb.failureCount++
			// Если превышен порог, открываем circuit breaker
			if cb.failureCount >= cb.failureThreshold {
				cb.transitionTo(CircuitOpen, operation)
			}
		case CircuitHalfOpen:
			// При ошибке в полуоткрытом состоянии возвращаемся в открытое
			cb.transitionTo(CircuitOpen, operation)
		}
	} else {
		switch cb.state {
		case CircuitClosed:
			cb.failureCount = 0
		case CircuitHalfOpen:
			// Успешный пробный запрос - возвращаемся в закрытое состояние
			cb.transitionTo(CircuitClosed, operation)
		}
	}
}

// isIgnoredError проверяет, является ли ошибка игнорируемой
func (cb *CircuitBreaker) isIgnoredError(err error) bool {
	for _, ignoredErr := range cb.ignoredErrors {
		if errors.Is(err, ignoredErr) {
			return true
		}
	}
	return false
}

// transitionTo переводит circuit breaker в новое состояние и уведомляет хук
func (cb *CircuitBreaker) transitionTo(state CircuitState, operation string) {
	cb.state = state
	cb.lastStateChange = time.Now()

	switch state {
	case CircuitOpen:
		cb.logger.Warn("Circuit breaker opened",
			zap.String("circuit", cb.name),
			zap.String("operation", operation),
			zap.Int("failures", cb.failureCount),
			zap.Duration("reset_timeout", cb.resetTimeout))
	case CircuitHalfOpen:
		cb.logger.Info("Circuit breaker half-opened",
			zap.String("circuit", cb.name),
			zap.String("operation", operation))
	case CircuitClosed:
		cb.failureCount = 0
		cb.logger.Info("Circuit breaker closed",
			zap.String("circuit", cb.name),
			zap.String("operation", operation))
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, state)
	}
}

// GetState возвращает текущее состояние circuit breaker
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()
	return cb.state
}

// stateString возвращает строковое представление состояния
func (cb *CircuitBreaker) stateString() string {
	switch cb.state {
	case CircuitClosed:
		return "CLOSED"
	case CircuitOpen:
		return "OPEN"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

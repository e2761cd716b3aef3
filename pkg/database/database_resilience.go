package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HolocronCatalogService/config"
	"HolocronCatalogService/pkg/apperrors"
	"HolocronCatalogService/pkg/resilience"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthChecker предоставляет функции для проверки состояния базы данных
// и выполнения операций через circuit breaker
type HealthChecker struct {
	db        *gorm.DB
	logger    *zap.Logger
	pgCircuit *resilience.CircuitBreaker
}

// NewDatabaseHealthChecker создает новый экземпляр проверки состояния базы данных
func NewDatabaseHealthChecker(db *gorm.DB, logger *zap.Logger) *HealthChecker {
	cfg := config.DefaultResilienceConfig()

	return &HealthChecker{
		db:     db,
		logger: logger,
		pgCircuit: resilience.NewCircuitBreaker("postgres",
			cfg.CircuitBreaker.FailureThreshold,
			cfg.CircuitBreaker.ResetTimeout,
			logger, apperrors.IgnoredErrors...),
	}
}

// SetCircuitStateHook устанавливает функцию экспорта состояния circuit breaker
// (обычно server.RecordCircuitBreakerState)
func (c *HealthChecker) SetCircuitStateHook(hook func(name string, state resilience.CircuitState)) {
	c.pgCircuit.SetStateChangeHook(hook)
}

// IsDatabaseHealthy проверяет здоровье PostgreSQL
func (c *HealthChecker) IsDatabaseHealthy(ctx context.Context) bool {
	var result int
	err := c.pgCircuit.Execute(ctx, "postgres_health_check", func(ctx context.Context) error {
		// Проверяем подключение к PostgreSQL с таймаутом
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}

		// Простой запрос для проверки
		return sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	})

	return err == nil && result == 1
}

// WithDatabaseResilience выполняет операцию в базе данных с механизмами отказоустойчивости
func (c *HealthChecker) WithDatabaseResilience(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := c.pgCircuit.Execute(ctx, operation, fn)

	// Ошибка "запись не найдена" не считается отказом для circuit breaker
	if apperrors.IsNotFound(err) {
		c.logger.Debug("Запись не найдена, это не ошибка для circuit breaker",
			zap.String("operation", operation),
			zap.Error(err))

		// Все равно возвращаем ошибку для обработки на уровне бизнес-логики
		return err
	}

	return err
}

// SafeDBOperation выполняет операцию в базе данных, логируя ошибки и добавляя контекст
func SafeDBOperation(ctx context.Context, db *gorm.DB, logger *zap.Logger, operation string, fn func(tx *gorm.DB) error) (err error) {
	tx := db.WithContext(ctx)

	// Перехватываем panic внутри операции, чтобы не ронять сервис
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Database operation panicked",
				zap.String("operation", operation),
				zap.Any("panic", r))
			err = fmt.Errorf("database operation %s panicked: %v", operation, r)
		}
	}()

	// Выполняем функцию
	err = fn(tx)

	// Обрабатываем ошибки
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Debug("Database operation returned not found",
				zap.String("operation", operation))
			return err
		}

		logger.Error("Database operation failed",
			zap.String("operation", operation),
			zap.Error(err))

		// Проверяем тип ошибки для более подробного логирования
		if errors.Is(err, gorm.ErrInvalidTransaction) {
			logger.Error("Database transaction failed due to invalid transaction",
				zap.String("operation", operation))
		}

		return err
	}

	return nil
}

package postgres

import (
	"context"
	"time"

	"HolocronCatalogService/pkg/apperrors"
	"HolocronCatalogService/pkg/database"
	"HolocronCatalogService/pkg/resilience"
	"HolocronCatalogService/pkg/server"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	readTimeout  = 3 * time.Second
	writeTimeout = 5 * time.Second
)

// resilientDB объединяет подключение к базе данных с механизмами
// отказоустойчивости: circuit breaker, повторные попытки на чтениях,
// безопасное выполнение транзакций и метрики операций
type resilientDB struct {
	db     *gorm.DB
	logger *zap.Logger
	health *database.HealthChecker
}

// read выполняет операцию чтения с повторными попытками и circuit breaker
func (r *resilientDB) read(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	retryOptions := resilience.DefaultRetryOptions()
	retryOptions.MaxRetries = 2
	retryOptions.NonRetryableErrors = apperrors.IgnoredErrors

	err := r.health.WithDatabaseResilience(ctx, operation, func(ctx context.Context) error {
		return resilience.WithRetry(ctx, r.logger, operation, retryOptions, func(ctx context.Context) error {
			return fn(r.db.WithContext(ctx))
		})
	})

	server.RecordDBOperation(operation, time.Since(startTime), err)

	return err
}

// write выполняет мутацию в одной транзакции; откат любой ошибкой
func (r *resilientDB) write(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err := r.health.WithDatabaseResilience(ctx, operation, func(ctx context.Context) error {
		return database.SafeDBOperation(ctx, r.db, r.logger, operation, func(tx *gorm.DB) error {
			return tx.Transaction(fn)
		})
	})

	server.RecordDBOperation(operation, time.Since(startTime), err)

	return err
}

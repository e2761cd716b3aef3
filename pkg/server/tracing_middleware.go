package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	// RequestIDKey ключ для request ID в контексте
	RequestIDKey contextKey = "request_id"

	// RequestIDHeader имя заголовка для передачи request ID
	RequestIDHeader = "X-Request-ID"
)

// TracingMiddleware создает gin middleware для трассировки запросов.
// Каждому запросу назначается request ID, который попадает в контекст,
// в заголовок ответа и в логи.
func TracingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Создаем или получаем request ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// Добавляем request ID в контекст запроса и в заголовок ответа
		ctx := context.WithValue(c.Request.Context(), RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		// Логируем начало запроса
		startTime := time.Now()
		logger.Info("Start processing HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestID))

		// Выполняем исходный обработчик
		c.Next()

		// Рассчитываем длительность запроса
		duration := time.Since(startTime)

		// Логируем завершение запроса
		status := c.Writer.Status()
		if status >= 500 {
			logger.Error("HTTP request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestID),
				zap.Int("status", status),
				zap.Duration("duration", duration))
		} else {
			logger.Info("HTTP request completed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestID),
				zap.Int("status", status),
				zap.Duration("duration", duration))
		}
	}
}

// GetRequestID извлекает request ID из контекста
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID добавляет request ID в логгер
func WithRequestID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if requestID := GetRequestID(ctx); requestID != "" {
		return logger.With(zap.String("request_id", requestID))
	}
	return logger
}

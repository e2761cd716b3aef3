package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"HolocronCatalogService/config"
	"HolocronCatalogService/internal/database/seed"
	httpdelivery "HolocronCatalogService/internal/delivery/http"
	"HolocronCatalogService/internal/repository/postgres"
	"HolocronCatalogService/internal/service"
	"HolocronCatalogService/pkg/database"
	"HolocronCatalogService/pkg/logger"
	"HolocronCatalogService/pkg/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Версия сервиса
const (
	ServiceVersion = "1.0.0"
)

func main() {
	// Переменные окружения из .env, если файл присутствует
	_ = godotenv.Load()

	// Инициализация логгера
	log := logger.NewLogger()
	log.Info("Запуск сервиса каталога", zap.String("version", ServiceVersion))

	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	// Создаем механизм graceful shutdown
	gracefulShutdown := server.NewGracefulShutdown(log, 30*time.Second)

	// Подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	log.Info("Подключение к PostgreSQL установлено")

	// Получаем базовое подключение к PostgreSQL для закрытия
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Не удалось получить экземпляр SQL DB", zap.Error(err))
	}

	// Добавляем закрытие соединения с PostgreSQL при завершении
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Закрытие соединения с PostgreSQL")
		return sqlDB.Close()
	})

	// Создаем проверку здоровья базы данных
	healthChecker := database.NewDatabaseHealthChecker(db, log)
	healthChecker.SetCircuitStateHook(server.RecordCircuitBreakerState)

	// Запускаем сервер для метрик Prometheus
	metricsServer := server.MetricsServer(strconv.Itoa(cfg.Metrics.Port))

	// Добавляем остановку сервера метрик при завершении
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера метрик")
		return metricsServer.Shutdown(ctx)
	})

	// Инициализация отказоустойчивых репозиториев
	userRepo := postgres.NewUserRepository(db, log, healthChecker)
	characterRepo := postgres.NewCharacterRepository(db, log, healthChecker)
	planetRepo := postgres.NewPlanetRepository(db, log, healthChecker)

	// Инициализация сервисов
	userService := service.NewUserService(userRepo, characterRepo, planetRepo, service.NewBcryptHasher(), log)
	characterService := service.NewCharacterService(characterRepo, planetRepo, log)
	planetService := service.NewPlanetService(planetRepo, log)

	// Заполнение каталога тестовыми данными в среде разработки
	seeder := seed.NewDevEnvironmentSeeder(db, service.NewBcryptHasher(), log)
	if err := seeder.SeedAllDevData(context.Background()); err != nil {
		log.Warn("Не удалось заполнить тестовые данные", zap.Error(err))
	}

	// Инициализация HTTP сервера с middleware для метрик и трассировки
	router := httpdelivery.NewRouter(userService, characterService, planetService, log)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}

	// Добавляем остановку HTTP сервера при завершении
	gracefulShutdown.AddHTTPServer("api", httpSrv)

	// Создаем и запускаем HTTP сервер для проверки здоровья
	healthCheck := server.NewHealthCheck(healthChecker, log, ServiceVersion)
	healthCheck.StartServer(cfg.Health.Port)

	// Добавляем остановку сервера проверки здоровья при завершении
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера проверки здоровья")
		return healthCheck.Stop(ctx)
	})

	// Запуск HTTP сервера в отдельной горутине
	go func() {
		log.Info("Запуск HTTP сервера", zap.Int("port", cfg.HTTP.Port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Не удалось запустить сервер", zap.Error(err))
		}
	}()

	// Логируем информацию о версии и PID
	hostname, _ := os.Hostname()
	log.Info("Сервис успешно запущен",
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("health_port", cfg.Health.Port),
		zap.Int("metrics_port", cfg.Metrics.Port),
		zap.String("version", ServiceVersion),
		zap.Int("pid", os.Getpid()),
		zap.String("hostname", hostname))

	// Ожидаем сигнала остановки
	gracefulShutdown.Wait()
	log.Info("Завершение работы сервиса выполнено")
}

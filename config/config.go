package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config содержит все настройки приложения
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Health   HealthConfig   `mapstructure:"health"`
}

// PostgresConfig содержит настройки для PostgreSQL
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// HTTPConfig содержит настройки для HTTP сервера
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// MetricsConfig содержит настройки для сервера метрик Prometheus
type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

// HealthConfig содержит настройки для сервера проверки здоровья
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// LoadConfig загружает настройки из файла или переменных окружения
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Значения по умолчанию
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Если файл конфигурации не найден, используем переменные окружения
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Проверяем наличие переменных окружения и переопределяем значения конфигурации
	loadFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// PostgreSQL defaults
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.username", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "holocron")
	viper.SetDefault("postgres.sslmode", "disable")

	// HTTP defaults
	viper.SetDefault("http.port", 3000)

	// Metrics defaults
	viper.SetDefault("metrics.port", 9090)

	// Health defaults
	viper.SetDefault("health.port", 8081)
}

func loadFromEnv() {
	// PostgreSQL from env
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		viper.Set("postgres.host", dbHost)
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			viper.Set("postgres.port", port)
		}
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		viper.Set("postgres.username", dbUser)
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		viper.Set("postgres.password", dbPassword)
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		viper.Set("postgres.dbname", dbName)
	}

	// HTTP from env
	if httpPort := os.Getenv("PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			viper.Set("http.port", port)
		}
	}

	// Metrics from env
	if metricsPort := os.Getenv("METRICS_PORT"); metricsPort != "" {
		if port, err := strconv.Atoi(metricsPort); err == nil {
			viper.Set("metrics.port", port)
		}
	}

	// Health from env
	if healthPort := os.Getenv("HEALTH_PORT"); healthPort != "" {
		if port, err := strconv.Atoi(healthPort); err == nil {
			viper.Set("health.port", port)
		}
	}
}

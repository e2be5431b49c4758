package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    ServerConfig
	MySQL   MySQLConfig
	AMQP    AMQPConfig
	Log     LogConfig
	Booking BookingConfig
	Jobs    JobsConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type LogConfig struct {
	Level string
}

type BookingConfig struct {
	MinDepositPercent  int32
	GatewayTimeout     time.Duration
	EventMaxAttempts   int32
	EventRetryInterval time.Duration
	JobBatchSize       int32
}

type JobsConfig struct {
	EventDispatchInterval time.Duration
	ExpirePendingInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "reservations-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "reservations.events"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Booking: BookingConfig{
			MinDepositPercent:  int32(getIntEnv("BOOKING_MIN_DEPOSIT_PERCENT", 30)),
			GatewayTimeout:     getSecondsEnv("BOOKING_GATEWAY_TIMEOUT_SECONDS", 10*time.Second),
			EventMaxAttempts:   int32(getIntEnv("BOOKING_EVENT_MAX_ATTEMPTS", 10)),
			EventRetryInterval: getMinutesEnv("BOOKING_EVENT_RETRY_INTERVAL_MINUTES", 5*time.Minute),
			JobBatchSize:       int32(getIntEnv("BOOKING_JOB_BATCH_SIZE", 100)),
		},
		Jobs: JobsConfig{
			EventDispatchInterval: getMinutesEnv("BOOKING_EVENT_DISPATCH_INTERVAL_MINUTES", time.Minute),
			ExpirePendingInterval: getMinutesEnv("BOOKING_EXPIRE_PENDING_INTERVAL_MINUTES", 5*time.Minute),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

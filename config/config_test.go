package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/reservations?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "reservations-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "BOOKING_MIN_DEPOSIT_PERCENT", "25")
	setEnv(t, "BOOKING_GATEWAY_TIMEOUT_SECONDS", "15")
	setEnv(t, "BOOKING_EVENT_MAX_ATTEMPTS", "5")
	setEnv(t, "BOOKING_EVENT_RETRY_INTERVAL_MINUTES", "7")
	setEnv(t, "BOOKING_JOB_BATCH_SIZE", "99")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "reservations-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected http port: %s", cfg.HTTP.Port)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.Booking.MinDepositPercent != 25 {
		t.Fatalf("unexpected min deposit percent: %d", cfg.Booking.MinDepositPercent)
	}
	if cfg.Booking.GatewayTimeout != 15*time.Second {
		t.Fatalf("unexpected gateway timeout: %v", cfg.Booking.GatewayTimeout)
	}
	if cfg.Booking.EventMaxAttempts != 5 {
		t.Fatalf("unexpected event max attempts: %d", cfg.Booking.EventMaxAttempts)
	}
	if cfg.Booking.EventRetryInterval != 7*time.Minute {
		t.Fatalf("unexpected event retry interval: %v", cfg.Booking.EventRetryInterval)
	}
	if cfg.Booking.JobBatchSize != 99 {
		t.Fatalf("unexpected job batch size: %d", cfg.Booking.JobBatchSize)
	}
	if cfg.AMQP.Exchange == "" {
		t.Fatal("expected default amqp exchange")
	}
}

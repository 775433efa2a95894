package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fightcard/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("LIFECYCLE_SETTLE_DELAY", "")
	t.Setenv("LIFECYCLE_SAFETY_INTERVAL", "")
	t.Setenv("LIFECYCLE_POLL_INTERVAL", "")
	t.Setenv("LIFECYCLE_WORKERS", "")
	t.Setenv("TRANSITIONS_KAFKA_ENABLED", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("unexpected StoreDriver: %q", cfg.StoreDriver)
	}
	if !cfg.LifecycleEnabled {
		t.Fatalf("expected lifecycle enabled by default")
	}
	if cfg.LifecycleSettleDelay != 5*time.Second {
		t.Fatalf("unexpected settle delay: %s", cfg.LifecycleSettleDelay)
	}
	if cfg.LifecycleSafetyInterval != 15*time.Minute {
		t.Fatalf("unexpected safety interval: %s", cfg.LifecycleSafetyInterval)
	}
	if cfg.LifecyclePollInterval != time.Minute {
		t.Fatalf("unexpected poll interval: %s", cfg.LifecyclePollInterval)
	}
	if cfg.LifecycleWorkers != 4 {
		t.Fatalf("unexpected workers: %d", cfg.LifecycleWorkers)
	}
	if !cfg.DBSeedEnabled {
		t.Fatalf("expected seeding enabled in dev")
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StoreDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_DRIVER")
	}
}

func TestLoad_LifecycleOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("LIFECYCLE_ENABLED", "false")
	t.Setenv("LIFECYCLE_SETTLE_DELAY", "250ms")
	t.Setenv("LIFECYCLE_POLL_INTERVAL", "30s")
	t.Setenv("LIFECYCLE_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("unexpected StoreDriver: %q", cfg.StoreDriver)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.LifecycleEnabled {
		t.Fatalf("expected lifecycle disabled")
	}
	if cfg.LifecycleSettleDelay != 250*time.Millisecond {
		t.Fatalf("unexpected settle delay: %s", cfg.LifecycleSettleDelay)
	}
	if cfg.LifecyclePollInterval != 30*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.LifecyclePollInterval)
	}
	if cfg.LifecycleWorkers != 8 {
		t.Fatalf("unexpected workers: %d", cfg.LifecycleWorkers)
	}
	if cfg.DBSeedEnabled {
		t.Fatalf("seeding must default off outside dev")
	}
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	for _, key := range []string{"LIFECYCLE_SETTLE_DELAY", "LIFECYCLE_SAFETY_INTERVAL", "LIFECYCLE_POLL_INTERVAL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, "0s")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=0s", key)
			}
		})
	}
}

func TestLoad_RejectsZeroWorkers(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LIFECYCLE_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for LIFECYCLE_WORKERS=0")
	}
}

func TestLoad_KafkaRequiresBrokersWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TRANSITIONS_KAFKA_ENABLED", "true")
	t.Setenv("TRANSITIONS_KAFKA_BROKERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when TRANSITIONS_KAFKA_ENABLED=true without brokers")
	}

	t.Setenv("TRANSITIONS_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.TransitionsKafkaBrokers) != 2 || cfg.TransitionsKafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.TransitionsKafkaBrokers)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without server address")
	}
}

func TestLoad_TransitionsWebhook(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TRANSITIONS_WEBHOOK_URL", " https://hooks.fightcard.example/transitions ")
	t.Setenv("TRANSITIONS_WEBHOOK_TOKEN", "hook-token")
	t.Setenv("TRANSITIONS_WEBHOOK_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TransitionsWebhookURL != "https://hooks.fightcard.example/transitions" {
		t.Fatalf("unexpected webhook url: %q", cfg.TransitionsWebhookURL)
	}
	if cfg.TransitionsWebhookToken != "hook-token" || cfg.TransitionsWebhookTimeout != 3*time.Second {
		t.Fatalf("unexpected webhook settings: token=%q timeout=%s", cfg.TransitionsWebhookToken, cfg.TransitionsWebhookTimeout)
	}
}

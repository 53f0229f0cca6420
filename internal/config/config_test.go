package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SCHEDULER_MODE", "")
	t.Setenv("FOOTBALL_DATA_ENABLED", "")
	t.Setenv("FOOTBALL_DATA_TOKEN", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "false")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("unexpected storage driver: got=%s want=%s", cfg.Storage.Driver, StorageMemory)
	}
	if cfg.Scheduler.Mode != SchedulerOff {
		t.Fatalf("unexpected scheduler mode: got=%s want=%s", cfg.Scheduler.Mode, SchedulerOff)
	}
	if cfg.LiveSync.KickoffTolerance != 12*time.Hour {
		t.Fatalf("unexpected kickoff tolerance: got=%s want=12h", cfg.LiveSync.KickoffTolerance)
	}
	if cfg.Scheduler.IdleInterval != 6*time.Hour {
		t.Fatalf("unexpected idle interval: got=%s want=6h", cfg.Scheduler.IdleInterval)
	}
	if !cfg.FootballData.CircuitBreaker.Enabled || cfg.FootballData.CircuitBreaker.FailureThreshold != 5 {
		t.Fatalf("unexpected football-data breaker: %+v", cfg.FootballData.CircuitBreaker)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported STORAGE_DRIVER")
	}
}

func TestLoad_FootballDataRequiresToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FOOTBALL_DATA_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FOOTBALL_DATA_ENABLED=true without FOOTBALL_DATA_TOKEN")
	}
}

func TestLoad_SchedulerModes(t *testing.T) {
	t.Run("cron needs the score provider", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SCHEDULER_MODE", SchedulerCron)

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when cron mode runs without football-data")
		}
	})

	t.Run("cron validates spec", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SCHEDULER_MODE", SchedulerCron)
		t.Setenv("FOOTBALL_DATA_ENABLED", "true")
		t.Setenv("FOOTBALL_DATA_TOKEN", "token")
		t.Setenv("LIVE_SYNC_CRON", "every two minutes")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid LIVE_SYNC_CRON")
		}
	})

	t.Run("cron accepts descriptor", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SCHEDULER_MODE", "CRON")
		t.Setenv("FOOTBALL_DATA_ENABLED", "true")
		t.Setenv("FOOTBALL_DATA_TOKEN", "token")
		t.Setenv("LIVE_SYNC_CRON", "@every 90s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Scheduler.Mode != SchedulerCron || cfg.Scheduler.LiveSyncCron != "@every 90s" {
			t.Fatalf("unexpected scheduler config: %+v", cfg.Scheduler)
		}
	})

	t.Run("qstash needs job token", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SCHEDULER_MODE", SchedulerQStash)
		t.Setenv("QSTASH_TOKEN", "qstash")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")
		t.Setenv("INTERNAL_JOB_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when qstash mode runs without INTERNAL_JOB_TOKEN")
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SCHEDULER_MODE", "kubernetes")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown SCHEDULER_MODE")
		}
	})
}

func TestLoad_CircuitBreakerParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("QSTASH_CIRCUIT_ENABLED", "false")
	t.Setenv("QSTASH_CIRCUIT_FAILURE_COUNT", "9")
	t.Setenv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	got := cfg.QStash.CircuitBreaker
	if got.Enabled || got.FailureThreshold != 9 || got.OpenTimeout != 45*time.Second || got.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected qstash breaker: %+v", got)
	}
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"ANUBIS_CIRCUIT_FAILURE_COUNT": "0",
		"LIVE_SYNC_MAX_WORKERS":        "many",
		"JOB_LIVE_INTERVAL":            "-1m",
		"CACHE_ENABLED":                "sometimes",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Uptrace.DSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: got=%q", cfg.Uptrace.DSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "in.logs.betterstack.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BetterStack.Token != "token-123" || cfg.BetterStack.MinLevel.String() != "warn" {
		t.Fatalf("unexpected betterstack config: %+v", cfg.BetterStack)
	}
}

func TestSplitCSV(t *testing.T) {
	t.Parallel()

	got := splitCSV(" https://a.example.com, ,https://b.example.com ")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected split: %v", got)
	}
}

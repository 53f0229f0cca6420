package observability

import (
	"context"

	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Identity names the running process on exported telemetry.
type Identity struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

func IdentityFromConfig(cfg config.Config) Identity {
	return Identity{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.AppEnv,
	}
}

// InitUptrace installs the global tracer provider. The returned func flushes pending spans.
func InitUptrace(cfg config.UptraceConfig, id Identity, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled {
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	}
	if cfg.DSN == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.DSN),
		uptrace.WithServiceName(id.ServiceName),
		uptrace.WithServiceVersion(id.ServiceVersion),
		uptrace.WithDeploymentEnvironment(id.Environment),
		uptrace.WithLoggingEnabled(cfg.LogsEnabled),
	)

	logger.Info("uptrace enabled",
		"service_name", id.ServiceName,
		"service_version", id.ServiceVersion,
		"environment", id.Environment,
	)
	return uptrace.Shutdown, nil
}

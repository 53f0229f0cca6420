package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-league/internal/app"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

// livesync runs one live score sync and prints the report as JSON.
func main() {
	competitionID := flag.String("competition", "", "sync only this competition id")
	dryRun := flag.Bool("dry-run", false, "match and report without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewJSON(cfg.LogLevel).Named("livesync")
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := 0
	if err := run(ctx, cfg, logger, usecase.LiveSyncInput{CompetitionID: *competitionID, DryRun: *dryRun}); err != nil {
		logger.Error("live sync failed", "error", err)
		code = 1
	}
	_ = logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, input usecase.LiveSyncInput) error {
	if !cfg.FootballData.Enabled {
		return fmt.Errorf("FOOTBALL_DATA_ENABLED must be true to run a live sync")
	}

	svc, closeStorage, err := app.NewLiveSync(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	}()

	report, err := svc.Run(ctx, input)
	if err != nil {
		return err
	}

	out, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))
	if report.Totals.Failed > 0 {
		return fmt.Errorf("%d competition(s) failed to sync", report.Totals.Failed)
	}
	return nil
}

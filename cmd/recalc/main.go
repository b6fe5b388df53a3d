// recalc runs one global room status recalculation and, with --period,
// raises the monthly charges for that period.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"hostel/internal/config"
	"hostel/internal/database"
	"hostel/internal/modules/occupancy"
	"hostel/internal/modules/payment"
	"hostel/internal/pkg/logging"
	"hostel/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var period string
	flags := pflag.NewFlagSet("hostel-recalc", pflag.ContinueOnError)
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres:// DSN or SQLite file path")
	flags.StringVar(&period, "period", "", "also generate monthly charges for this YYYY-MM period")
	flags.BoolVar(&cfg.CountCheckedOut, "count-checked-out", cfg.CountCheckedOut, "count checked-out bookings against capacity")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := logging.New(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(ctx, db, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := repository.NewStore(db)

	recalc := occupancy.NewRecalculator(store.Rooms, occupancy.Policy{CountCheckedOut: cfg.CountCheckedOut}, logger)
	sum, err := recalc.RecalculateAll(ctx)
	if err != nil {
		return err
	}
	logger.Info("recalculation finished",
		zap.Int("checked", sum.Checked),
		zap.Int("changed", sum.Changed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)

	if period == "" {
		return nil
	}
	created, err := payment.NewBilling(store, nil, logger).GenerateMonthlyCharges(ctx, period)
	logger.Info("billing finished", zap.String("period", period), zap.Int("created", created))
	return err
}

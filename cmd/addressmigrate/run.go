package main

import (
	"context"
	"io"
	"log/slog"

	"homiio/config"
	"homiio/internal/delivery/ops"
	"homiio/internal/domain/lifecycle"
	"homiio/internal/infra/persistence/postgres"
	"homiio/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// errIncompleteMigration marks a run that finished with per-property failures.
var errIncompleteMigration = errors.New("migration finished with failures")

type migrateRequest struct {
	dryRun      bool
	batchSize   int
	concurrency int
	metricsAddr string
	json        bool
}

func runStatus(ctx context.Context, out io.Writer, asJSON bool) error {
	var migration usecase.MigrationUsecase

	app := newApp("", &migration)
	if err := startApp(ctx, app); err != nil {
		return err
	}
	defer stopApp(app)

	status, err := migration.Status(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read migration status")
	}

	return printStatus(out, status, asJSON)
}

func runMigrate(ctx context.Context, out io.Writer, req migrateRequest) error {
	var (
		cfg       *config.Config
		db        *gorm.DB
		logger    *slog.Logger
		migration usecase.MigrationUsecase
		server    *ops.Server
	)

	app := newApp(req.metricsAddr, &cfg, &db, &logger, &migration, &server)
	if err := startApp(ctx, app); err != nil {
		return err
	}
	defer stopApp(app)

	dryRun := req.dryRun || cfg.Migration.DryRun
	if !dryRun {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	if cfg.Metrics.Enabled {
		go func() {
			if err := server.Serve(ctx); err != nil {
				logger.Error("Ops server stopped", slog.Any("error", err))
			}
		}()
	}

	report, err := migration.Migrate(ctx, &usecase.MigrationOptions{
		BatchSize:   req.batchSize,
		Concurrency: req.concurrency,
		DryRun:      dryRun,
	})
	if report != nil {
		if printErr := printReport(out, report, req.json); printErr != nil {
			return printErr
		}
	}
	if err != nil {
		return err
	}
	if len(report.Failures) > 0 {
		return errors.Wrapf(errIncompleteMigration, "%d properties were not migrated", len(report.Failures))
	}

	return nil
}

func startApp(ctx context.Context, app *fx.App) error {
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	return errors.Wrap(app.Start(startCtx), "failed to start application")
}

func stopApp(app *fx.App) {
	stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	_ = app.Stop(stopCtx)
}

package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"homiio/config"
	"homiio/internal/delivery/ops"
	logs "homiio/internal/infra/log"
	"homiio/internal/infra/metrics"
	"homiio/internal/infra/persistence/postgres"
	"homiio/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// newApp wires the address subsystem. targets are filled through fx.Populate.
func newApp(metricsAddr string, targets ...any) *fx.App {
	return fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: logger}
			l.UseLogLevel(slog.LevelDebug)

			return l
		}),
		injectInfra(metricsAddr),
		injectRepo(),
		injectUsecase(),
		fx.Provide(ops.NewServer),
		fx.Populate(targets...),
	)
}

func injectInfra(metricsAddr string) fx.Option {
	return fx.Provide(
		func() (*config.Config, error) {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			if addr := strings.TrimSpace(metricsAddr); addr != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = addr
			}

			return cfg, nil
		},
		// stdout carries the command output
		func() io.Writer { return os.Stderr },
		logs.New,
		newRegistry,
		metrics.New,
		postgres.New,
	)
}

func newRegistry() (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg, reg
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAddressRepository,
			postgres.NewPropertyRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAddressService,
			impl.NewPropertyService,
			impl.NewMigrationService,
		),
	)
}

package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"homiio/config"
	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	"homiio/internal/errors"
	"homiio/internal/infra/metrics"
	"homiio/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 100
	defaultConcurrency = 4
)

type migrationService struct {
	propertyRepo repository.PropertyRepository
	addressRepo  repository.AddressRepository
	addresses    usecase.AddressUsecase
	defaults     config.MigrationConfig
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewMigrationService creates a new migration service instance
func NewMigrationService(
	propertyRepo repository.PropertyRepository,
	addressRepo repository.AddressRepository,
	addresses usecase.AddressUsecase,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) usecase.MigrationUsecase {
	defaults := config.MigrationConfig{BatchSize: defaultBatchSize, Concurrency: defaultConcurrency}
	if cfg != nil && cfg.Migration != nil {
		defaults = *cfg.Migration
	}

	return &migrationService{
		propertyRepo: propertyRepo,
		addressRepo:  addressRepo,
		addresses:    addresses,
		defaults:     defaults,
		metrics:      m,
		logger:       logger,
	}
}

// migrationRun is the mutable state of one Migrate call.
type migrationRun struct {
	opts   usecase.MigrationOptions
	report *usecase.MigrationReport

	// cache maps a batch key to the address resolved for it earlier in the run.
	cache map[string]*resolution

	// planned holds canonical keys a dry run has already counted as created.
	mu      sync.Mutex
	planned map[string]struct{}
}

// resolution is the outcome of resolving one distinct embedded address.
type resolution struct {
	addressID uuid.UUID
	created   bool
	err       error
}

func (s *migrationService) options(opts *usecase.MigrationOptions) usecase.MigrationOptions {
	resolved := usecase.MigrationOptions{
		BatchSize:   s.defaults.BatchSize,
		Concurrency: s.defaults.Concurrency,
		DryRun:      s.defaults.DryRun,
	}
	if opts != nil {
		if opts.BatchSize > 0 {
			resolved.BatchSize = opts.BatchSize
		}
		if opts.Concurrency > 0 {
			resolved.Concurrency = opts.Concurrency
		}
		resolved.DryRun = resolved.DryRun || opts.DryRun
	}
	if resolved.BatchSize <= 0 {
		resolved.BatchSize = defaultBatchSize
	}
	if resolved.Concurrency <= 0 {
		resolved.Concurrency = defaultConcurrency
	}

	return resolved
}

// Migrate pages through embedded properties by ID. Each batch is committed
// row by row, so stopping between batches leaves no partial state.
func (s *migrationService) Migrate(ctx context.Context, opts *usecase.MigrationOptions) (*usecase.MigrationReport, error) {
	start := time.Now()
	run := &migrationRun{
		opts:    s.options(opts),
		report:  &usecase.MigrationReport{Failures: []usecase.MigrationFailure{}},
		cache:   make(map[string]*resolution),
		planned: make(map[string]struct{}),
	}
	run.report.DryRun = run.opts.DryRun

	s.logger.InfoContext(ctx, "Address migration started",
		slog.Int("batchSize", run.opts.BatchSize),
		slog.Int("concurrency", run.opts.Concurrency),
		slog.Bool("dryRun", run.opts.DryRun),
	)

	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			run.report.Duration = time.Since(start)

			return run.report, errors.Wrap(err, "address migration interrupted")
		}

		batch, err := s.propertyRepo.FindEmbeddedAddressBatch(ctx, after, run.opts.BatchSize)
		if err != nil {
			run.report.Duration = time.Since(start)

			return run.report, errors.Wrap(err, "failed to load embedded address batch")
		}
		if len(batch) == 0 {
			break
		}

		batchStart := time.Now()
		run.report.Batches++
		s.migrateBatch(ctx, run, batch)
		s.metrics.ObserveMigrationBatch(batchStart)

		s.logger.InfoContext(ctx, "Address migration batch done",
			slog.Int("batch", run.report.Batches),
			slog.Int("size", len(batch)),
			slog.Int("migrated", run.report.Migrated),
			slog.Int("failures", len(run.report.Failures)),
		)

		after = batch[len(batch)-1].ID
		if len(batch) < run.opts.BatchSize {
			break
		}
	}

	run.report.Duration = time.Since(start)

	status, err := s.Status(ctx)
	if err != nil {
		return run.report, err
	}
	run.report.Status = status

	s.logger.InfoContext(ctx, "Address migration finished",
		slog.Int("scanned", run.report.Scanned),
		slog.Int("migrated", run.report.Migrated),
		slog.Int("skipped", run.report.Skipped),
		slog.Int("addressesCreated", run.report.AddressesCreated),
		slog.Int("addressesReused", run.report.AddressesReused),
		slog.Int("failures", len(run.report.Failures)),
		slog.Int64("remaining", status.Embedded),
		slog.Bool("fullyMigrated", status.FullyMigrated),
		slog.Duration("duration", run.report.Duration),
	)

	return run.report, nil
}

// migrateBatch resolves every distinct address of the batch once, then
// rewrites each property. Failures are recorded per property.
func (s *migrationService) migrateBatch(ctx context.Context, run *migrationRun, batch []*entity.Property) {
	run.report.Scanned += len(batch)

	keys := make([]string, len(batch))
	pending := make(map[string]*entity.EmbeddedAddress)
	var order []string

	for i, property := range batch {
		embedded, ok := property.Embedded()
		if !ok {
			continue
		}
		key := batchKey(embedded)
		keys[i] = key
		if _, cached := run.cache[key]; cached {
			continue
		}
		if _, seen := pending[key]; !seen {
			pending[key] = embedded
			order = append(order, key)
		}
	}

	results := make([]*resolution, len(order))
	var g errgroup.Group
	g.SetLimit(run.opts.Concurrency)
	for i, key := range order {
		g.Go(func() error {
			results[i] = s.resolveEmbedded(ctx, run, pending[key])

			return nil
		})
	}
	_ = g.Wait()

	for i, key := range order {
		res := results[i]
		run.cache[key] = res
		if res.err != nil {
			continue
		}
		if res.created {
			run.report.AddressesCreated++
		} else {
			run.report.AddressesReused++
		}
	}

	for i, property := range batch {
		if keys[i] == "" {
			s.recordFailure(ctx, run, property.ID, domainerrors.ErrInternalError.WithDetails("property holds no embedded address"))

			continue
		}

		res := run.cache[keys[i]]
		if res.err != nil {
			s.recordFailure(ctx, run, property.ID, res.err)

			continue
		}

		if run.opts.DryRun {
			run.report.Migrated++

			continue
		}

		err := s.propertyRepo.ReplaceEmbeddedAddress(ctx, property.ID, res.addressID)
		switch {
		case err == nil:
			run.report.Migrated++
			s.metrics.AddMigrationProperties(metrics.OutcomeMigrated, 1)
		case errors.Is(err, repository.ErrPropertyAlreadyMigrated):
			run.report.Skipped++
			s.metrics.AddMigrationProperties(metrics.OutcomeSkipped, 1)
		default:
			s.recordFailure(ctx, run, property.ID, err)
		}
	}

	// Failed resolutions are retried if the same address shows up in a later batch.
	for _, key := range order {
		if run.cache[key].err != nil {
			delete(run.cache, key)
		}
	}
}

// resolveEmbedded maps one embedded address to a canonical one. A dry run
// only looks the key up.
func (s *migrationService) resolveEmbedded(ctx context.Context, run *migrationRun, embedded *entity.EmbeddedAddress) *resolution {
	if !run.opts.DryRun {
		resolved, err := s.addresses.FindOrCreateAddress(ctx, embedded.Raw())
		if err != nil {
			return &resolution{err: err}
		}

		return &resolution{addressID: resolved.Address.ID, created: resolved.Created}
	}

	preview, err := s.addresses.PreviewAddress(ctx, embedded.Raw())
	if err != nil {
		return &resolution{err: err}
	}
	if preview.Existing != nil {
		return &resolution{addressID: preview.Existing.ID}
	}

	run.mu.Lock()
	defer run.mu.Unlock()
	if _, counted := run.planned[preview.NormalizedKey]; counted {
		return &resolution{}
	}
	run.planned[preview.NormalizedKey] = struct{}{}

	return &resolution{created: true}
}

func (s *migrationService) recordFailure(ctx context.Context, run *migrationRun, propertyID uuid.UUID, err error) {
	run.report.Failures = append(run.report.Failures, usecase.MigrationFailure{
		PropertyID: propertyID,
		Error:      domainerrors.NewErrorInfo(err),
	})
	if !run.opts.DryRun {
		s.metrics.AddMigrationProperties(metrics.OutcomeFailed, 1)
	}

	s.logger.WarnContext(ctx, "Property address migration failed",
		slog.String("propertyId", propertyID.String()),
		slog.String("error", err.Error()),
	)
}

// Status reads the shape distribution without touching any record.
func (s *migrationService) Status(ctx context.Context) (*usecase.MigrationStatus, error) {
	counts, err := s.propertyRepo.CountPropertiesByShape(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count properties by shape")
	}

	addresses, err := s.addressRepo.CountAddresses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count addresses")
	}

	s.metrics.SetMigrationRemaining(counts.Embedded + counts.Both)

	return &usecase.MigrationStatus{
		Properties:     counts.Total,
		Embedded:       counts.Embedded,
		Referenced:     counts.Referenced,
		Invalid:        counts.Both,
		WithoutAddress: counts.None,
		Addresses:      addresses,
		FullyMigrated:  counts.Embedded == 0 && counts.Both == 0,
	}, nil
}

// batchKey identifies an embedded address within a run. Properties share a
// resolution only when their whole embedded documents match after trimming
// and case folding, coordinates included.
func batchKey(e *entity.EmbeddedAddress) string {
	parts := []string{
		e.Street, e.Number, e.Unit, e.Floor, e.BuildingName, e.Block,
		e.Neighborhood, e.District, e.City, e.State, e.ZipCode, e.Country, e.CountryCode,
		strings.Join(e.AddressLines, "\n"),
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(part))
	}

	switch {
	case e.Coordinates != nil:
		parts = append(parts,
			strconv.FormatFloat(e.Coordinates.Lon(), 'g', -1, 64),
			strconv.FormatFloat(e.Coordinates.Lat(), 'g', -1, 64),
		)
	case e.UnparsedCoordinates != nil:
		parts = append(parts, fmt.Sprintf("%v", e.UnparsedCoordinates))
	default:
		parts = append(parts, "-")
	}

	return strings.Join(parts, "\x1f")
}

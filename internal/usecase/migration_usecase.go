package usecase

import (
	"context"
	"time"

	domainerrors "homiio/internal/domain/errors"

	"github.com/google/uuid"
)

// MigrationOptions tunes one migration run. Zero values fall back to configuration.
type MigrationOptions struct {
	BatchSize   int
	Concurrency int
	DryRun      bool
}

// MigrationFailure records a property that could not be migrated.
type MigrationFailure struct {
	PropertyID uuid.UUID               `json:"propertyId"`
	Error      *domainerrors.ErrorInfo `json:"error"`
}

// MigrationReport summarizes one migration run. In a dry run the counts
// describe what would have happened.
type MigrationReport struct {
	DryRun           bool               `json:"dryRun"`
	Batches          int                `json:"batches"`
	Scanned          int                `json:"scanned"`
	Migrated         int                `json:"migrated"`
	Skipped          int                `json:"skipped"` // Migrated concurrently by another writer.
	AddressesCreated int                `json:"addressesCreated"`
	AddressesReused  int                `json:"addressesReused"`
	Failures         []MigrationFailure `json:"failures"`
	Duration         time.Duration      `json:"duration"`
	Status           *MigrationStatus   `json:"status,omitempty"` // Read after the run.
}

// MigrationStatus is the read-only state of the migration.
type MigrationStatus struct {
	Properties     int64 `json:"properties"`
	Embedded       int64 `json:"embedded"`
	Referenced     int64 `json:"referenced"`
	Invalid        int64 `json:"invalid"` // Rows holding both shapes.
	WithoutAddress int64 `json:"withoutAddress"`
	Addresses      int64 `json:"addresses"`
	FullyMigrated  bool  `json:"fullyMigrated"`
}

// MigrationUsecase moves embedded property addresses to canonical references.
type MigrationUsecase interface {
	// Migrate processes every property still holding an embedded address.
	// Per-property failures are collected in the report; the returned error is
	// reserved for failures that stop the run, such as cancellation between batches.
	Migrate(ctx context.Context, opts *MigrationOptions) (*MigrationReport, error)

	// Status reports progress without changing anything.
	Status(ctx context.Context) (*MigrationStatus, error)
}

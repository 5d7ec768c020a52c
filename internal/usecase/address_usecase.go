package usecase

import (
	"context"

	"homiio/internal/domain/entity"

	"github.com/google/uuid"
)

// ResolvedAddress is the result of a find-or-create call.
type ResolvedAddress struct {
	Address *entity.Address
	Created bool // False when an existing record, possibly written by a concurrent caller, was returned.
}

// AddressPreview is what a find-or-create call would resolve to, without writing.
type AddressPreview struct {
	NormalizedKey string
	Fields        entity.AddressFields
	Existing      *entity.Address // Nil when the call would create a new record.
}

// NearbyAddressesInput represents a proximity search around a point
type NearbyAddressesInput struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Limit        int     `json:"limit"`
}

// AddressUsecase is the only write path for canonical addresses.
type AddressUsecase interface {
	// FindOrCreateAddress validates and normalizes raw, then returns the one
	// stored Address for its canonical key, creating it if absent. An existing
	// record is never modified.
	FindOrCreateAddress(ctx context.Context, raw entity.RawAddress) (*ResolvedAddress, error)

	// PreviewAddress runs the same validation and lookup as FindOrCreateAddress without creating anything.
	PreviewAddress(ctx context.Context, raw entity.RawAddress) (*AddressPreview, error)

	// GetAddress retrieves an address by ID.
	GetAddress(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// UpdateAddressIdentity replaces the fields of an address and recomputes its key.
	// Coordinates are only changed when raw carries them.
	UpdateAddressIdentity(ctx context.Context, id uuid.UUID, raw entity.RawAddress) (*entity.Address, error)

	// FindAddressesNear lists addresses within a radius, nearest first.
	FindAddressesNear(ctx context.Context, input *NearbyAddressesInput) ([]*entity.Address, error)
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Domain-specific errors for address persistence.
var (
	// ErrAddressNotFound is returned when an address is not found.
	ErrAddressNotFound = domainerrors.ErrAddressNotFound
	// ErrAddressKeyTaken is returned when a write hits the unique index on the normalized key.
	ErrAddressKeyTaken = errors.New("normalized address key already taken")
)

// AddressRepository defines the interface for canonical address storage.
// The storage layer must enforce uniqueness of Address.NormalizedKey; that
// constraint is the only arbiter when concurrent callers create the same address.
type AddressRepository interface {
	// CreateAddress inserts a new address. Returns ErrAddressKeyTaken when the
	// normalized key already exists.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindAddressByKey retrieves the address owning a normalized key.
	// Returns ErrAddressNotFound if none exists.
	FindAddressByKey(ctx context.Context, normalizedKey string) (*entity.Address, error)

	// UpdateAddress persists all fields of an existing address, including a
	// recomputed key. Returns ErrAddressKeyTaken on a key collision.
	UpdateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressesNear returns addresses within radiusMeters of center, nearest first.
	FindAddressesNear(ctx context.Context, center orb.Point, radiusMeters float64, limit int) ([]*entity.Address, error)

	// CountAddresses returns the number of stored addresses.
	CountAddresses(ctx context.Context) (int64, error)
}

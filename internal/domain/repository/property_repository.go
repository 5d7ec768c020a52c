package repository

import (
	"context"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"

	"github.com/google/uuid"
)

var (
	// ErrPropertyNotFound is returned when a property is not found.
	ErrPropertyNotFound = domainerrors.ErrPropertyNotFound
	// ErrPropertyAlreadyMigrated is returned when a conditional migration update matches no embedded row.
	ErrPropertyAlreadyMigrated = domainerrors.ErrPropertyAlreadyMigrated
)

// PropertyShapeCounts summarizes how property rows currently store their address.
type PropertyShapeCounts struct {
	Total      int64 // All properties.
	Embedded   int64 // Embedded address and no reference; still to migrate.
	Referenced int64 // Reference and no embedded address; steady state.
	Both       int64 // Both shapes at once; violates the shape invariant.
	None       int64 // Neither shape.
}

// PropertyRepository defines the property operations the address subsystem needs.
type PropertyRepository interface {
	// CreateProperty inserts a property holding exactly one address shape.
	CreateProperty(ctx context.Context, property *entity.Property) error

	// FindPropertyByID loads a property. With resolveAddress the referenced
	// Address is joined and set on ReferencedAddress.Resolved.
	FindPropertyByID(ctx context.Context, id uuid.UUID, resolveAddress bool) (*entity.Property, error)

	// UpdateProperty persists a property. Writing the referenced shape clears
	// the embedded column in the same statement and vice versa.
	UpdateProperty(ctx context.Context, property *entity.Property) error

	// FindEmbeddedAddressBatch returns up to limit properties that still hold an
	// embedded address and no reference, with ID greater than after, ordered by ID.
	FindEmbeddedAddressBatch(ctx context.Context, after uuid.UUID, limit int) ([]*entity.Property, error)

	// ReplaceEmbeddedAddress sets the reference and clears the embedded address
	// in one conditional update. Returns ErrPropertyAlreadyMigrated when the
	// row no longer holds an embedded address without a reference.
	ReplaceEmbeddedAddress(ctx context.Context, propertyID, addressID uuid.UUID) error

	// CountPropertiesByShape reports the address shape distribution.
	CountPropertiesByShape(ctx context.Context) (*PropertyShapeCounts, error)
}

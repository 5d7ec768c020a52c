package usecase

import (
	"context"
	"time"

	"homiio/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// CreatePropertyInput represents the input for creating a property.
// Exactly one of Address and AddressID must be set.
type CreatePropertyInput struct {
	Title             string            `json:"title"`
	ShowAddressNumber bool              `json:"showAddressNumber"`
	Address           entity.RawAddress `json:"address,omitempty"`
	AddressID         *uuid.UUID        `json:"addressId,omitempty"`
}

// UpdatePropertyInput represents the input for updating a property.
// At most one of Address and AddressID may be set; neither keeps the current address.
type UpdatePropertyInput struct {
	Title             *string           `json:"title,omitempty"`
	ShowAddressNumber *bool             `json:"showAddressNumber,omitempty"`
	Address           entity.RawAddress `json:"address,omitempty"`
	AddressID         *uuid.UUID        `json:"addressId,omitempty"`
}

// PropertyView is the API-facing projection of a property. The address is
// exposed under the legacy "address" key regardless of how it is stored.
type PropertyView struct {
	ID                uuid.UUID    `json:"id"`
	Title             string       `json:"title"`
	ShowAddressNumber bool         `json:"showAddressNumber"`
	AddressID         *uuid.UUID   `json:"addressId,omitempty"`
	Address           *AddressView `json:"address,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// AddressView carries address fields under their legacy names. The postal
// code is written under both "zipCode" and "postal_code".
type AddressView struct {
	ID           *uuid.UUID        `json:"id,omitempty"`
	Street       string            `json:"street,omitempty"`
	Number       string            `json:"number,omitempty"`
	Unit         string            `json:"unit,omitempty"`
	Floor        string            `json:"floor,omitempty"`
	BuildingName string            `json:"buildingName,omitempty"`
	Block        string            `json:"block,omitempty"`
	Neighborhood string            `json:"neighborhood,omitempty"`
	District     string            `json:"district,omitempty"`
	City         string            `json:"city,omitempty"`
	State        string            `json:"state,omitempty"`
	ZipCode      string            `json:"zipCode,omitempty"`
	PostalCode   string            `json:"postal_code,omitempty"`
	Country      string            `json:"country,omitempty"`
	CountryCode  string            `json:"countryCode,omitempty"`
	AddressLines []string          `json:"addressLines,omitempty"`
	Coordinates  []float64         `json:"coordinates,omitempty"`
	Location     *geojson.Geometry `json:"location,omitempty"`
}

// PropertyUsecase is the property-facing side of the address subsystem.
type PropertyUsecase interface {
	CreateProperty(ctx context.Context, input *CreatePropertyInput) (*entity.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, input *UpdatePropertyInput) (*entity.Property, error)

	// GetProperty loads a property with its address reference resolved.
	GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	// GetPropertyView loads a property and projects it with ViewProperty.
	GetPropertyView(ctx context.Context, id uuid.UUID) (*PropertyView, error)

	// ViewProperty projects an already loaded property. An unresolved
	// reference yields no address object, only the id.
	ViewProperty(property *entity.Property) *PropertyView
}

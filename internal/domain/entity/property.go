package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Property is a rental listing. Its location is either a reference to a shared
// canonical Address or, for records not yet migrated, an embedded legacy copy.
type Property struct {
	ID                uuid.UUID
	Title             string
	ShowAddressNumber bool            // Display preference; per property, never on the shared Address.
	Address           PropertyAddress // *ReferencedAddress, *EmbeddedAddress or nil.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PropertyAddress is the closed union of the two storage shapes a property's
// address can take.
type PropertyAddress interface {
	addressShape() AddressShape
}

// AddressShape tags the variant held by a PropertyAddress.
type AddressShape string

const (
	AddressShapeNone       AddressShape = "none"
	AddressShapeEmbedded   AddressShape = "embedded"
	AddressShapeReferenced AddressShape = "referenced"
)

// Shape reports which variant the property currently holds.
func (p *Property) Shape() AddressShape {
	if p == nil || p.Address == nil {
		return AddressShapeNone
	}

	return p.Address.addressShape()
}

// Reference returns the referenced variant, if that is what the property holds.
func (p *Property) Reference() (*ReferencedAddress, bool) {
	if p == nil {
		return nil, false
	}
	ref, ok := p.Address.(*ReferencedAddress)

	return ref, ok && ref != nil
}

// Embedded returns the legacy embedded variant, if that is what the property holds.
func (p *Property) Embedded() (*EmbeddedAddress, bool) {
	if p == nil {
		return nil, false
	}
	embedded, ok := p.Address.(*EmbeddedAddress)

	return embedded, ok && embedded != nil
}

// ReferencedAddress points at a canonical Address. Resolved is populated only
// when the reference was joined on read.
type ReferencedAddress struct {
	AddressID uuid.UUID
	Resolved  *Address
}

func (*ReferencedAddress) addressShape() AddressShape { return AddressShapeReferenced }

// IsResolved reports whether the referenced Address was loaded alongside the property.
func (r *ReferencedAddress) IsResolved() bool {
	return r != nil && r.Resolved != nil
}

// EmbeddedAddress is the pre-migration inline address sub-document.
type EmbeddedAddress struct {
	Street       string
	Number       string
	Unit         string
	Floor        string
	BuildingName string
	Block        string
	Neighborhood string
	District     string
	City         string
	State        string
	ZipCode      string
	Country      string
	CountryCode  string
	AddressLines []string
	Coordinates  *orb.Point // Longitude, latitude; nil when the legacy record never stored them.

	// UnparsedCoordinates keeps a stored coordinates value that is not a
	// [lng, lat] pair, so normalization can report it per property.
	UnparsedCoordinates any
}

func (*EmbeddedAddress) addressShape() AddressShape { return AddressShapeEmbedded }

// Raw exposes the embedded document under its legacy field names so it can be
// fed through the same normalization path as any other caller input.
func (e *EmbeddedAddress) Raw() RawAddress {
	raw := RawAddress{
		"street":       e.Street,
		"number":       e.Number,
		"unit":         e.Unit,
		"floor":        e.Floor,
		"buildingName": e.BuildingName,
		"block":        e.Block,
		"neighborhood": e.Neighborhood,
		"district":     e.District,
		"city":         e.City,
		"state":        e.State,
		"zipCode":      e.ZipCode,
		"country":      e.Country,
		"countryCode":  e.CountryCode,
	}
	if len(e.AddressLines) > 0 {
		lines := make([]any, 0, len(e.AddressLines))
		for _, line := range e.AddressLines {
			lines = append(lines, line)
		}
		raw["address_lines"] = lines
	}
	switch {
	case e.Coordinates != nil:
		raw["coordinates"] = []any{e.Coordinates.Lon(), e.Coordinates.Lat()}
	case e.UnparsedCoordinates != nil:
		raw["coordinates"] = e.UnparsedCoordinates
	}

	return raw
}

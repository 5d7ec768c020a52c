// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// MaxAddressLines caps the free-text lines stored on an address.
const MaxAddressLines = 5

// RawAddress is an address payload as received from callers, with arbitrary
// (possibly localized or aliased) field names.
type RawAddress map[string]any

// LandPlot identifies a cadastral plot.
type LandPlot struct {
	Block  string // Plot block ("manzana").
	Lot    string // Plot lot ("lote").
	Parcel string // Plot parcel ("parcela").
}

// IsZero reports whether no plot identifier is set.
func (p LandPlot) IsZero() bool {
	return p.Block == "" && p.Lot == "" && p.Parcel == ""
}

// AddressFields is the canonical field set every raw address is normalized into.
type AddressFields struct {
	// Identity fields
	Street       string
	Number       string
	Unit         string
	BuildingName string
	Block        string
	Floor        string
	City         string
	State        string
	PostalCode   string
	Country      string
	CountryCode  string // ISO 3166-1 alpha-2, upper-cased.

	// Free-form fields
	Neighborhood string
	District     string
	AddressLines []string
	LandPlot     LandPlot
	Extras       map[string]any
}

// Address is the canonical record for a real-world location. It is shared by
// every property at that location and is only created through find-or-create.
type Address struct {
	ID uuid.UUID // The Global Unique Identifier (GUID) for the address.
	AddressFields
	Location      orb.Point // Longitude, latitude.
	NormalizedKey string    // Hex digest over the normalized identity fields; unique.
	CreatedAt     time.Time // Timestamp of when this address was created.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// Longitude returns the X component of the location.
func (a *Address) Longitude() float64 {
	return a.Location.Lon()
}

// Latitude returns the Y component of the location.
func (a *Address) Latitude() float64 {
	return a.Location.Lat()
}

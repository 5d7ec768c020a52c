package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Shape(t *testing.T) {
	var nilProperty *Property
	assert.Equal(t, AddressShapeNone, nilProperty.Shape())
	assert.Equal(t, AddressShapeNone, (&Property{}).Shape())

	embedded := &Property{Address: &EmbeddedAddress{Street: "Gran Via"}}
	assert.Equal(t, AddressShapeEmbedded, embedded.Shape())
	_, isRef := embedded.Reference()
	assert.False(t, isRef)
	got, isEmbedded := embedded.Embedded()
	require.True(t, isEmbedded)
	assert.Equal(t, "Gran Via", got.Street)

	referenced := &Property{Address: &ReferencedAddress{AddressID: uuid.New()}}
	assert.Equal(t, AddressShapeReferenced, referenced.Shape())
	ref, isRef := referenced.Reference()
	require.True(t, isRef)
	assert.False(t, ref.IsResolved())
}

func TestEmbeddedAddress_Raw(t *testing.T) {
	point := orb.Point{2.17, 41.38}
	embedded := &EmbeddedAddress{
		Street:       "Gran Via",
		City:         "Barcelona",
		ZipCode:      "08014",
		Country:      "Spain",
		AddressLines: []string{"Escalera B"},
		Coordinates:  &point,
	}

	raw := embedded.Raw()

	assert.Equal(t, "08014", raw["zipCode"])
	assert.Equal(t, []any{2.17, 41.38}, raw["coordinates"])
	assert.Equal(t, []any{"Escalera B"}, raw["address_lines"])

	withoutCoordinates := (&EmbeddedAddress{Street: "x"}).Raw()
	_, ok := withoutCoordinates["coordinates"]
	assert.False(t, ok)
}

func TestEmbeddedAddress_RawPassesUnparsedCoordinates(t *testing.T) {
	geometry := map[string]any{"type": "Polygon", "coordinates": []any{}}
	raw := (&EmbeddedAddress{Street: "x", UnparsedCoordinates: geometry}).Raw()

	assert.Equal(t, geometry, raw["coordinates"])
}

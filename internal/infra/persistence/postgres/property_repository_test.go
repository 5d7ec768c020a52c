package postgres

import (
	"encoding/json"
	"testing"

	"homiio/internal/domain/entity"
	"homiio/internal/infra/persistence/model"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEmbeddedDomain_Coordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		coordinates any
		want        *orb.Point
		unparsed    bool
	}{
		{name: "absent"},
		{name: "lng lat pair", coordinates: []any{json.Number("2.17"), json.Number("41.38")}, want: &orb.Point{2.17, 41.38}},
		{name: "geojson point", coordinates: map[string]any{
			"type":        "Point",
			"coordinates": []any{json.Number("2.17"), json.Number("41.38")},
		}, want: &orb.Point{2.17, 41.38}},
		{name: "lat lng object", coordinates: map[string]any{"lat": json.Number("41.38"), "lng": json.Number("2.17")}, want: &orb.Point{2.17, 41.38}},
		{name: "out of range pair is kept for validation", coordinates: []any{json.Number("500"), json.Number("41.38")}, want: &orb.Point{500, 41.38}},
		{name: "geojson line", coordinates: map[string]any{
			"type":        "LineString",
			"coordinates": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}},
		}, unparsed: true},
		{name: "text", coordinates: "2.17,41.38", unparsed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			embedded := toEmbeddedDomain(model.EmbeddedAddressModel{Street: "Gran Via", Coordinates: tt.coordinates})

			assert.Equal(t, tt.want, embedded.Coordinates)
			if tt.unparsed {
				assert.Equal(t, tt.coordinates, embedded.UnparsedCoordinates)
			} else {
				assert.Nil(t, embedded.UnparsedCoordinates)
			}
		})
	}
}

func TestFromEmbeddedDomain_RoundTrip(t *testing.T) {
	t.Parallel()

	point := orb.Point{2.17, 41.38}
	embedded := &entity.EmbeddedAddress{Street: "Gran Via", Number: "12", ZipCode: "08014", Coordinates: &point}

	back := toEmbeddedDomain(fromEmbeddedDomain(embedded))
	require.NotNil(t, back.Coordinates)
	assert.Equal(t, point, *back.Coordinates)
	assert.Equal(t, "12", back.Number)

	unparsed := &entity.EmbeddedAddress{Street: "Gran Via", UnparsedCoordinates: "somewhere"}
	assert.Equal(t, "somewhere", fromEmbeddedDomain(unparsed).Coordinates)
}

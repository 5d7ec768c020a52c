package address

import (
	"encoding/json"
	"math"
	"testing"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCoordinates_Shapes(t *testing.T) {
	t.Parallel()

	want := orb.Point{2.17, 41.38}
	tests := []struct {
		name string
		raw  entity.RawAddress
	}{
		{name: "lng lat list", raw: entity.RawAddress{"coordinates": []any{2.17, 41.38}}},
		{name: "float slice", raw: entity.RawAddress{"coordinates": []float64{2.17, 41.38}}},
		{name: "orb point", raw: entity.RawAddress{"coordinates": want}},
		{name: "lat lng object", raw: entity.RawAddress{"coordinates": map[string]any{"lat": 41.38, "lng": 2.17}}},
		{name: "geojson location", raw: entity.RawAddress{"location": map[string]any{"type": "Point", "coordinates": []any{2.17, 41.38}}}},
		{name: "separate keys", raw: entity.RawAddress{"latitude": "41.38", "longitude": json.Number("2.17")}},
		{name: "short keys", raw: entity.RawAddress{"lat": 41.38, "lon": 2.17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractCoordinates(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, want.Lon(), got.Lon(), 1e-9)
			assert.InDelta(t, want.Lat(), got.Lat(), 1e-9)
		})
	}
}

func TestExtractCoordinates_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  entity.RawAddress
		want error
	}{
		{name: "absent", raw: entity.RawAddress{"street": "Gran Via"}, want: domainerrors.ErrMissingCoordinates},
		{name: "nil", raw: entity.RawAddress{"coordinates": nil}, want: domainerrors.ErrMissingCoordinates},
		{name: "only latitude", raw: entity.RawAddress{"lat": 41.38}, want: domainerrors.ErrMissingCoordinates},
		{name: "wrong arity", raw: entity.RawAddress{"coordinates": []any{2.17}}, want: domainerrors.ErrInvalidCoordinates},
		{name: "not numeric", raw: entity.RawAddress{"coordinates": []any{"east", 41.38}}, want: domainerrors.ErrInvalidCoordinates},
		{name: "geojson polygon", raw: entity.RawAddress{"location": map[string]any{
			"type":        "LineString",
			"coordinates": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}},
		}}, want: domainerrors.ErrInvalidCoordinates},
		{name: "unsupported", raw: entity.RawAddress{"coordinates": "2.17,41.38"}, want: domainerrors.ErrInvalidCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ExtractCoordinates(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidator_ValidateLocation(t *testing.T) {
	t.Parallel()

	v := NewValidator(nil)

	valid := []orb.Point{{0, 0}, {180, 90}, {-180, -90}, {2.17, 41.38}}
	for _, p := range valid {
		assert.NoError(t, v.ValidateLocation(p), "point %v", p)
	}

	invalid := []orb.Point{{180.5, 0}, {0, 90.1}, {-181, 0}, {0, -91}, {math.NaN(), 0}, {0, math.Inf(1)}}
	for _, p := range invalid {
		assert.ErrorIs(t, v.ValidateLocation(p), domainerrors.ErrInvalidCoordinates, "point %v", p)
	}
}

func TestValidator_ValidateFields(t *testing.T) {
	t.Parallel()

	v := NewValidator([]string{FieldStreet, FieldCity, FieldPostalCode, FieldCountryCode})

	complete := Normalize(entity.RawAddress{"street": "Gran Via", "city": "Barcelona", "zip": "08014", "country": "Spain"})
	require.NoError(t, v.ValidateFields(complete))

	err := v.ValidateFields(Normalize(entity.RawAddress{"street": "Gran Via", "country": "Spain"}))
	require.ErrorIs(t, err, domainerrors.ErrMissingRequiredField)

	var baseErr *domainerrors.BaseError
	require.ErrorAs(t, err, &baseErr)
	assert.Equal(t, "city,postal_code", baseErr.Details())

	assert.ErrorIs(t, v.ValidateFields(entity.AddressFields{}), domainerrors.ErrEmptyAddressIdentity)
}

package address

import (
	"encoding/json"
	"strconv"
	"strings"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	pointAliases     = []string{"coordinates", "coords"}
	geoJSONAliases   = []string{"location", "geometry"}
	latitudeAliases  = []string{"latitude", "lat"}
	longitudeAliases = []string{"longitude", "lng", "lon"}
)

// ExtractCoordinates reads the location of a raw payload. Accepted shapes, in
// order: "coordinates" as [lng, lat] or {lat, lng}; a GeoJSON Point under
// "location"; separate latitude/longitude keys. Range checks are left to
// Validator.ValidateLocation.
func ExtractCoordinates(raw entity.RawAddress) (orb.Point, error) {
	idx := indexKeys(raw)

	for _, alias := range pointAliases {
		for _, key := range idx[foldKey(alias)] {
			if raw[key] == nil {
				continue
			}

			return pointFromValue(raw[key])
		}
	}

	for _, alias := range geoJSONAliases {
		for _, key := range idx[foldKey(alias)] {
			if raw[key] == nil {
				continue
			}

			return pointFromValue(raw[key])
		}
	}

	lat, hasLat := idx.firstValue(raw, latitudeAliases)
	lng, hasLng := idx.firstValue(raw, longitudeAliases)
	switch {
	case !hasLat && !hasLng:
		return orb.Point{}, domainerrors.ErrMissingCoordinates
	case !hasLat || !hasLng:
		return orb.Point{}, domainerrors.ErrMissingCoordinates.WithDetails("both latitude and longitude are required")
	}

	return pointFromPair(lng, lat)
}

func (idx keyIndex) firstValue(raw entity.RawAddress, aliases []string) (any, bool) {
	for _, alias := range aliases {
		for _, key := range idx[foldKey(alias)] {
			if v := raw[key]; v != nil && scalarString(v) != "" {
				return v, true
			}
		}
	}

	return nil, false
}

func pointFromValue(v any) (orb.Point, error) {
	switch value := v.(type) {
	case orb.Point:
		return value, nil
	case *orb.Point:
		if value == nil {
			return orb.Point{}, domainerrors.ErrMissingCoordinates
		}

		return *value, nil
	case []float64:
		if len(value) != 2 {
			return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("expected [longitude, latitude]")
		}

		return orb.Point{value[0], value[1]}, nil
	case []any:
		if len(value) != 2 {
			return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("expected [longitude, latitude]")
		}

		return pointFromPair(value[0], value[1])
	case map[string]any:
		return pointFromMap(value)
	default:
		return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("unsupported coordinates shape")
	}
}

// pointFromMap accepts either a GeoJSON geometry or a {lat, lng} object.
func pointFromMap(m map[string]any) (orb.Point, error) {
	if _, ok := m["type"]; ok {
		data, err := json.Marshal(m)
		if err != nil {
			return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("malformed GeoJSON")
		}

		geometry, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("malformed GeoJSON")
		}

		point, ok := geometry.Geometry().(orb.Point)
		if !ok {
			return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("GeoJSON geometry must be a Point")
		}

		return point, nil
	}

	idx := indexKeys(m)
	lat, hasLat := idx.firstValue(m, latitudeAliases)
	lng, hasLng := idx.firstValue(m, longitudeAliases)
	if !hasLat || !hasLng {
		return orb.Point{}, domainerrors.ErrMissingCoordinates
	}

	return pointFromPair(lng, lat)
}

func pointFromPair(lng, lat any) (orb.Point, error) {
	x, okX := toFloat(lng)
	y, okY := toFloat(lat)
	if !okX || !okY {
		return orb.Point{}, domainerrors.ErrInvalidCoordinates.WithDetails("coordinates must be numeric")
	}

	return orb.Point{x, y}, nil
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case int32:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()

		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)

		return f, err == nil
	default:
		return 0, false
	}
}

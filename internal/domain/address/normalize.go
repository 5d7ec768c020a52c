// Package address turns raw, locale-specific address payloads into the
// canonical field set and derives the identity key used for deduplication.
//
// Field precedence, when one payload carries the same field under several
// names, is fixed:
//
//  1. the canonical name itself (e.g. "postal_code") always wins;
//  2. otherwise synonyms are consulted in table order, earlier wins
//     ("zip" beats "codigo_postal");
//  3. raw keys that fold to the same token ("zipCode", "zip_code") are
//     consulted in lexicographic order of the raw key.
//
// Keys are folded before matching: lower-cased with every rune that is not a
// letter or digit removed. Empty or whitespace-only values count as absent, so
// a lower-priority synonym with a value beats a higher-priority empty one.
package address

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"homiio/internal/domain/entity"
)

// Canonical field names.
const (
	FieldStreet       = "street"
	FieldNumber       = "number"
	FieldUnit         = "unit"
	FieldBuildingName = "building_name"
	FieldBlock        = "block"
	FieldFloor        = "floor"
	FieldCity         = "city"
	FieldState        = "state"
	FieldPostalCode   = "postal_code"
	FieldCountry      = "country"
	FieldCountryCode  = "countryCode"
	FieldNeighborhood = "neighborhood"
	FieldDistrict     = "district"
	FieldAddressLines = "address_lines"
	FieldPlotBlock    = "plot_block"
	FieldLot          = "lot"
	FieldParcel       = "parcel"
	FieldExtras       = "extras"
)

// scalarAliases maps each scalar canonical field to its accepted names in
// precedence order. The first entry is always the canonical name.
var scalarAliases = []struct {
	field   string
	aliases []string
}{
	{FieldStreet, []string{FieldStreet, "street_name", "street_address", "calle", "via", "road"}},
	{FieldNumber, []string{FieldNumber, "street_number", "house_number", "numero", "número", "num"}},
	{FieldUnit, []string{FieldUnit, "apartment", "apt", "suite", "piso", "puerta", "door", "apartamento", "departamento", "depto"}},
	{FieldBuildingName, []string{FieldBuildingName, "edificio"}},
	{FieldBlock, []string{FieldBlock, "tower", "building", "bloque", "torre"}},
	{FieldFloor, []string{FieldFloor, "level", "planta", "nivel"}},
	{FieldCity, []string{FieldCity, "town", "locality", "ciudad", "localidad", "municipality", "municipio", "poblacion", "población"}},
	{FieldState, []string{FieldState, "region", "province", "provincia", "estado", "comunidad"}},
	{FieldPostalCode, []string{FieldPostalCode, "postcode", "zip", "zipcode", "codigo_postal", "código_postal", "cp"}},
	{FieldCountry, []string{FieldCountry, "country_name", "pais", "país"}},
	{FieldCountryCode, []string{FieldCountryCode, "country_iso", "iso2", "codigo_pais"}},
	{FieldNeighborhood, []string{FieldNeighborhood, "neighbourhood", "barrio", "colonia", "vecindario"}},
	{FieldDistrict, []string{FieldDistrict, "distrito", "borough"}},
	{FieldPlotBlock, []string{FieldPlotBlock, "land_block", "manzana"}},
	{FieldLot, []string{FieldLot, "land_lot", "lote"}},
	{FieldParcel, []string{FieldParcel, "land_parcel", "parcela"}},
}

var (
	lineListAliases = []string{FieldAddressLines, "lines", "lineas"}
	lineAliasStems  = []string{"line", "address_line", "linea"}
	extrasAliases   = []string{FieldExtras, "extra"}
)

// Normalize maps a raw payload onto the canonical field set. Unknown keys are
// dropped; it never fails.
func Normalize(raw entity.RawAddress) entity.AddressFields {
	idx := indexKeys(raw)
	values := make(map[string]string, len(scalarAliases))

	for _, entry := range scalarAliases {
		values[entry.field] = idx.firstScalar(raw, entry.aliases)
	}

	fields := entity.AddressFields{
		Street:       values[FieldStreet],
		Number:       values[FieldNumber],
		Unit:         values[FieldUnit],
		BuildingName: values[FieldBuildingName],
		Block:        values[FieldBlock],
		Floor:        values[FieldFloor],
		City:         values[FieldCity],
		State:        values[FieldState],
		PostalCode:   values[FieldPostalCode],
		Country:      values[FieldCountry],
		CountryCode:  strings.ToUpper(values[FieldCountryCode]),
		Neighborhood: values[FieldNeighborhood],
		District:     values[FieldDistrict],
		AddressLines: idx.addressLines(raw),
		LandPlot: entity.LandPlot{
			Block:  values[FieldPlotBlock],
			Lot:    values[FieldLot],
			Parcel: values[FieldParcel],
		},
		Extras: idx.extras(raw),
	}

	if fields.CountryCode == "" && fields.Country != "" {
		fields.CountryCode = CountryCode(fields.Country)
	}

	return fields
}

// keyIndex groups raw keys by folded token, each group sorted lexicographically.
type keyIndex map[string][]string

func indexKeys(raw entity.RawAddress) keyIndex {
	idx := make(keyIndex, len(raw))
	for key := range raw {
		token := foldKey(key)
		if token == "" {
			continue
		}
		idx[token] = append(idx[token], key)
	}
	for token := range idx {
		slices.Sort(idx[token])
	}

	return idx
}

func (idx keyIndex) firstScalar(raw entity.RawAddress, aliases []string) string {
	for _, alias := range aliases {
		for _, key := range idx[foldKey(alias)] {
			if value := scalarString(raw[key]); value != "" {
				return value
			}
		}
	}

	return ""
}

func (idx keyIndex) addressLines(raw entity.RawAddress) []string {
	for _, alias := range lineListAliases {
		for _, key := range idx[foldKey(alias)] {
			if lines := stringList(raw[key]); len(lines) > 0 {
				return lines
			}
		}
	}

	var lines []string
	for n := 1; n <= entity.MaxAddressLines; n++ {
		aliases := make([]string, 0, len(lineAliasStems))
		for _, stem := range lineAliasStems {
			aliases = append(aliases, stem+strconv.Itoa(n))
		}
		if line := idx.firstScalar(raw, aliases); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func (idx keyIndex) extras(raw entity.RawAddress) map[string]any {
	for _, alias := range extrasAliases {
		for _, key := range idx[foldKey(alias)] {
			switch v := raw[key].(type) {
			case map[string]any:
				if len(v) > 0 {
					out := make(map[string]any, len(v))
					for k, val := range v {
						out[k] = val
					}

					return out
				}
			case map[string]string:
				if len(v) > 0 {
					out := make(map[string]any, len(v))
					for k, val := range v {
						out[k] = val
					}

					return out
				}
			}
		}
	}

	return nil
}

// foldKey lower-cases s and strips every rune that is not a letter or digit.
func foldKey(s string) string {
	var folded strings.Builder
	folded.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		folded.WriteRune(unicode.ToLower(r))
	}

	return folded.String()
}

func scalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(value)
	case fmt.Stringer:
		return strings.TrimSpace(value.String())
	default:
		return ""
	}
}

func stringList(v any) []string {
	var items []string
	switch value := v.(type) {
	case []string:
		items = value
	case []any:
		items = make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, scalarString(item))
		}
	default:
		return nil
	}

	lines := make([]string, 0, min(len(items), entity.MaxAddressLines))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lines = append(lines, item)
		if len(lines) == entity.MaxAddressLines {
			break
		}
	}
	if len(lines) == 0 {
		return nil
	}

	return lines
}

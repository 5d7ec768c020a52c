package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"homiio/internal/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PropertyModel is the GORM-specific struct for the 'properties' table.
// During the address migration a row holds either address_id or the legacy
// embedded address document; the check constraint forbids both.
type PropertyModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title             string     `gorm:"type:varchar(255);not null;default:''"`
	ShowAddressNumber bool       `gorm:"not null"`
	AddressID         *uuid.UUID `gorm:"type:uuid;index:idx_properties_on_address_id;check:chk_properties_single_address_shape,address IS NULL OR address_id IS NULL"`

	// EmbeddedAddress is the pre-migration sub-document, stored in the legacy 'address' column.
	EmbeddedAddress NullEmbeddedAddress `gorm:"column:address;type:jsonb"`

	CanonicalAddress *AddressModel `gorm:"foreignKey:AddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PropertyModel) TableName() string {
	return "properties"
}

// EmbeddedAddressModel is the JSON layout of the legacy embedded address.
// Coordinates holds whatever the document stored under "coordinates",
// usually [lng, lat].
type EmbeddedAddressModel struct {
	Street       string   `json:"street,omitempty"`
	Number       string   `json:"number,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Floor        string   `json:"floor,omitempty"`
	BuildingName string   `json:"buildingName,omitempty"`
	Block        string   `json:"block,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	District     string   `json:"district,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	ZipCode      string   `json:"zipCode,omitempty"`
	Country      string   `json:"country,omitempty"`
	CountryCode  string   `json:"countryCode,omitempty"`
	AddressLines []string `json:"addressLines,omitempty"`
	Coordinates  any      `json:"coordinates,omitempty"`
}

// UnmarshalJSON accepts loosely typed legacy documents. Numbers and booleans
// in text fields keep their literal text; other non-string values are dropped.
// A document that is not an object decodes to an empty address.
func (m *EmbeddedAddressModel) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			*m = EmbeddedAddressModel{}

			return nil
		}

		return err
	}

	*m = EmbeddedAddressModel{
		Street:       jsonText(doc["street"]),
		Number:       jsonText(doc["number"]),
		Unit:         jsonText(doc["unit"]),
		Floor:        jsonText(doc["floor"]),
		BuildingName: jsonText(doc["buildingName"]),
		Block:        jsonText(doc["block"]),
		Neighborhood: jsonText(doc["neighborhood"]),
		District:     jsonText(doc["district"]),
		City:         jsonText(doc["city"]),
		State:        jsonText(doc["state"]),
		ZipCode:      jsonText(doc["zipCode"]),
		Country:      jsonText(doc["country"]),
		CountryCode:  jsonText(doc["countryCode"]),
		AddressLines: jsonTextList(doc["addressLines"]),
		Coordinates:  doc["coordinates"],
	}

	return nil
}

func jsonText(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func jsonTextList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if text := jsonText(v); text != "" {
			return []string{text}
		}

		return nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, jsonText(item))
	}

	return lines
}

// NullEmbeddedAddress is the nullable jsonb 'address' column. SQL NULL maps to Valid == false.
type NullEmbeddedAddress struct {
	Address EmbeddedAddressModel
	Valid   bool
}

// NewNullEmbeddedAddress wraps a present embedded address.
func NewNullEmbeddedAddress(address EmbeddedAddressModel) NullEmbeddedAddress {
	return NullEmbeddedAddress{Address: address, Valid: true}
}

// Scan implements sql.Scanner.
func (n *NullEmbeddedAddress) Scan(value any) error {
	if value == nil {
		*n = NullEmbeddedAddress{}

		return nil
	}

	var doc datatypes.JSONType[EmbeddedAddressModel]
	if err := doc.Scan(value); err != nil {
		return err
	}
	*n = NewNullEmbeddedAddress(doc.Data())

	return nil
}

// Value implements driver.Valuer.
func (n NullEmbeddedAddress) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}

	return datatypes.NewJSONType(n.Address).Value()
}

// GormDataType keeps the column typed as jsonb when no explicit type tag is given.
func (NullEmbeddedAddress) GormDataType() string {
	return "jsonb"
}

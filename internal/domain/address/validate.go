package address

import (
	"strings"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
)

type locationRule struct {
	Longitude float64 `validate:"longitude"`
	Latitude  float64 `validate:"latitude"`
}

// Validator checks normalized addresses against the configured required
// fields and geographic ranges.
type Validator struct {
	validate *validator.Validate
	required []string
}

// NewValidator builds a Validator requiring the given canonical fields.
func NewValidator(required []string) *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		required: append([]string(nil), required...),
	}
}

// ValidateLocation rejects points outside [-180, 180] × [-90, 90] and non-finite values.
func (v *Validator) ValidateLocation(point orb.Point) error {
	if err := v.validate.Struct(locationRule{Longitude: point.Lon(), Latitude: point.Lat()}); err != nil {
		var details []string
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				details = append(details, strings.ToLower(fieldErr.Field()))
			}
		}

		return domainerrors.ErrInvalidCoordinates.WithDetails(strings.Join(details, ","))
	}

	return nil
}

// ValidateFields reports every configured required field that is empty.
func (v *Validator) ValidateFields(fields entity.AddressFields) error {
	if !HasIdentity(fields) {
		return domainerrors.ErrEmptyAddressIdentity
	}

	var missing []string
	for _, name := range v.required {
		if err := v.validate.Var(FieldValue(fields, name), "required"); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domainerrors.MissingFields(missing...)
	}

	return nil
}

// FieldValue returns a scalar canonical field by name; unknown names yield "".
func FieldValue(f entity.AddressFields, name string) string {
	switch name {
	case FieldStreet:
		return f.Street
	case FieldNumber:
		return f.Number
	case FieldUnit:
		return f.Unit
	case FieldBuildingName:
		return f.BuildingName
	case FieldBlock:
		return f.Block
	case FieldFloor:
		return f.Floor
	case FieldCity:
		return f.City
	case FieldState:
		return f.State
	case FieldPostalCode:
		return f.PostalCode
	case FieldCountry:
		return f.Country
	case FieldCountryCode:
		return f.CountryCode
	case FieldNeighborhood:
		return f.Neighborhood
	case FieldDistrict:
		return f.District
	case FieldPlotBlock:
		return f.LandPlot.Block
	case FieldLot:
		return f.LandPlot.Lot
	case FieldParcel:
		return f.LandPlot.Parcel
	default:
		return ""
	}
}

package errors

import (
	"net/http"
	"testing"

	"homiio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	detailed := ErrMissingRequiredField.WithDetails("street,city")

	assert.ErrorIs(t, detailed, ErrMissingRequiredField)
	assert.NotErrorIs(t, detailed, ErrMissingCoordinates)
	assert.Equal(t, "address is missing required fields: street,city", detailed.Error())

	wrapped := errors.Wrap(detailed, "find or create")
	assert.ErrorIs(t, wrapped, ErrMissingRequiredField)
}

func TestMissingFields(t *testing.T) {
	err := MissingFields("postal_code", "countryCode")

	assert.Equal(t, "postal_code,countryCode", err.Details())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
}

func TestIsValidationAndPersistence(t *testing.T) {
	dbErr := NewDatabaseExecuteError(errors.New("connection refused"), "failed to create address")

	assert.True(t, IsValidation(ErrInvalidCoordinates))
	assert.True(t, IsValidation(errors.Wrap(ErrMissingCoordinates, "ctx")))
	assert.False(t, IsValidation(ErrAddressNotFound))
	assert.False(t, IsValidation(dbErr))

	assert.True(t, IsPersistence(errors.Wrap(dbErr, "outer")))
	assert.False(t, IsPersistence(ErrInvalidCoordinates))
}

func TestNewErrorInfo(t *testing.T) {
	info := NewErrorInfo(MissingFields("street"))
	require.NotNil(t, info)
	assert.Equal(t, "MISSING_REQUIRED_FIELD", info.Code)
	assert.Equal(t, "street", info.Details)

	info = NewErrorInfo(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", info.Code)
	assert.Equal(t, "boom", info.Details)

	assert.Nil(t, NewErrorInfo(nil))
}

package address

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
)

// keySeparator joins identity values; it is not expected inside address text.
const keySeparator = "|"

// identityValues returns the key-bearing fields in their fixed order.
func identityValues(f entity.AddressFields) []string {
	return []string{
		f.Street,
		f.Number,
		f.Unit,
		f.BuildingName,
		f.Block,
		f.City,
		f.State,
		f.PostalCode,
		f.CountryCode,
	}
}

// HasIdentity reports whether at least one identity field carries a value.
func HasIdentity(f entity.AddressFields) bool {
	for _, v := range identityValues(f) {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}

	return false
}

// CanonicalKey returns the hex SHA-256 over the lower-cased, trimmed identity
// fields joined with "|". Empty fields are skipped, not replaced by a
// placeholder. Coordinates never take part. The key is opaque: nothing parses
// it back into fields.
func CanonicalKey(f entity.AddressFields) (string, error) {
	values := identityValues(f)
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		parts = append(parts, v)
	}

	if len(parts) == 0 {
		return "", domainerrors.ErrEmptyAddressIdentity
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, keySeparator)))

	return hex.EncodeToString(sum[:]), nil
}

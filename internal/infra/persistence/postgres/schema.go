package postgres

import (
	"context"

	"homiio/internal/errors"
	"homiio/internal/infra/persistence/model"

	"gorm.io/gorm"
)

const addressLocationIndex = `
	CREATE INDEX IF NOT EXISTS idx_addresses_location
	ON addresses
	USING GIST ((ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography))
`

// EnsureSchema creates the address tables, the normalized key unique index,
// the single-shape check on properties and the spatial index. It is idempotent.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		return errors.Wrap(err, "failed to enable postgis")
	}

	if err := db.AutoMigrate(&model.AddressModel{}, &model.PropertyModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate address schema")
	}

	if err := db.Exec(addressLocationIndex).Error; err != nil {
		return errors.Wrap(err, "failed to create address location index")
	}

	return nil
}

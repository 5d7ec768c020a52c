// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"maps"
	"time"

	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	"homiio/internal/errors"
	"homiio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// CreateAddress persists a new canonical address.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isAddressKeyViolation(err) {
			return repository.ErrAddressKeyTaken
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("address row rejected by schema constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	// Update the entity with generated values
	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindAddressByID retrieves an address by its unique ID.
func (repo *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// FindAddressByKey retrieves the address owning a normalized key.
func (repo *addressRepository) FindAddressByKey(ctx context.Context, normalizedKey string) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("normalized_key = ?", normalizedKey).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find address by key")
	}

	return toAddressDomain(&addressM), nil
}

// UpdateAddress overwrites every mutable column of an existing address.
func (repo *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)
	addressM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{ID: address.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(addressM)
	if err := result.Error; err != nil {
		if isAddressKeyViolation(err) {
			return repository.ErrAddressKeyTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update address")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindAddressesNear uses PostGIS ST_DWithin on the geography expression backed by idx_addresses_location.
func (repo *addressRepository) FindAddressesNear(ctx context.Context, center orb.Point, radiusMeters float64, limit int) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel

	query := `
		SELECT a.*
		FROM addresses a
		WHERE ST_DWithin(
		        ST_SetSRID(ST_MakePoint(a.longitude, a.latitude), 4326)::geography,
		        ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
		        ?
		      )
		ORDER BY ST_Distance(
		        ST_SetSRID(ST_MakePoint(a.longitude, a.latitude), 4326)::geography,
		        ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		      ), a.id
		LIMIT ?
	`

	if err := repo.db.WithContext(ctx).
		Raw(query, center.Lon(), center.Lat(), radiusMeters, center.Lon(), center.Lat(), limit).
		Scan(&addressModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find addresses near point")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// CountAddresses returns the number of stored addresses.
func (repo *addressRepository) CountAddresses(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).Model(&model.AddressModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count addresses")
	}

	return count, nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	var extras map[string]any
	if len(data.Extras) > 0 {
		extras = maps.Clone(map[string]any(data.Extras))
	}

	var lines []string
	if len(data.AddressLines) > 0 {
		lines = append(lines, data.AddressLines...)
	}

	return &entity.Address{
		ID: data.ID,
		AddressFields: entity.AddressFields{
			Street:       data.Street,
			Number:       data.Number,
			Unit:         data.Unit,
			BuildingName: data.BuildingName,
			Block:        data.Block,
			Floor:        data.Floor,
			City:         data.City,
			State:        data.State,
			PostalCode:   data.PostalCode,
			Country:      data.Country,
			CountryCode:  data.CountryCode,
			Neighborhood: data.Neighborhood,
			District:     data.District,
			AddressLines: lines,
			LandPlot: entity.LandPlot{
				Block:  data.PlotBlock,
				Lot:    data.PlotLot,
				Parcel: data.PlotParcel,
			},
			Extras: extras,
		},
		Location:      orb.Point{data.Longitude, data.Latitude},
		NormalizedKey: data.NormalizedKey,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	lines := datatypes.JSONSlice[string]{}
	if len(data.AddressLines) > 0 {
		lines = append(lines, data.AddressLines...)
	}

	extras := datatypes.JSONMap{}
	maps.Copy(extras, data.Extras)

	return &model.AddressModel{
		ID:            data.ID,
		Street:        data.Street,
		Number:        data.Number,
		Unit:          data.Unit,
		BuildingName:  data.BuildingName,
		Block:         data.Block,
		Floor:         data.Floor,
		City:          data.City,
		State:         data.State,
		PostalCode:    data.PostalCode,
		Country:       data.Country,
		CountryCode:   data.CountryCode,
		Neighborhood:  data.Neighborhood,
		District:      data.District,
		AddressLines:  lines,
		PlotBlock:     data.LandPlot.Block,
		PlotLot:       data.LandPlot.Lot,
		PlotParcel:    data.LandPlot.Parcel,
		Extras:        extras,
		Latitude:      data.Latitude(),
		Longitude:     data.Longitude(),
		NormalizedKey: data.NormalizedKey,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

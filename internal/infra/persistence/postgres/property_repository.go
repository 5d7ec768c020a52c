package postgres

import (
	"context"
	"time"

	"homiio/internal/domain/address"
	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	"homiio/internal/errors"
	"homiio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// embeddedOnly matches rows that still carry the legacy document and no reference.
// A JSON null stored in the column counts as absent.
const embeddedOnly = "jsonb_typeof(address) = 'object' AND address_id IS NULL"

// propertyRepository implements the repository.PropertyRepository interface.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository is the constructor for propertyRepository.
func NewPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// CreateProperty persists a new property.
func (repo *propertyRepository) CreateProperty(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	if err := repo.db.WithContext(ctx).Omit("CanonicalAddress").Create(propertyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAddressNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrAmbiguousPropertyAddress
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create property")
	}

	property.ID = propertyM.ID
	property.CreatedAt = propertyM.CreatedAt
	property.UpdatedAt = propertyM.UpdatedAt

	return nil
}

// FindPropertyByID retrieves a property, optionally joining its canonical address.
func (repo *propertyRepository) FindPropertyByID(ctx context.Context, id uuid.UUID, resolveAddress bool) (*entity.Property, error) {
	var propertyM model.PropertyModel

	db := repo.db.WithContext(ctx)
	if resolveAddress {
		db = db.Preload("CanonicalAddress")
	}

	if err := db.Where("id = ?", id).First(&propertyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find property by ID")
	}

	return toPropertyDomain(&propertyM), nil
}

// UpdateProperty writes title, display preference and both address columns, so
// switching shape clears the other column in the same statement.
func (repo *propertyRepository) UpdateProperty(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)
	propertyM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{ID: property.ID}).
		Select("title", "show_address_number", "address_id", "address", "updated_at").
		Updates(propertyM)
	if err := result.Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAddressNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrAmbiguousPropertyAddress
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update property")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}

	property.UpdatedAt = propertyM.UpdatedAt

	return nil
}

// FindEmbeddedAddressBatch pages through unmigrated properties by ID.
func (repo *propertyRepository) FindEmbeddedAddressBatch(ctx context.Context, after uuid.UUID, limit int) ([]*entity.Property, error) {
	var propertyModels []*model.PropertyModel

	if err := repo.db.WithContext(ctx).
		Where(embeddedOnly).
		Where("id > ?", after).
		Order("id ASC").
		Limit(limit).
		Find(&propertyModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find embedded address batch")
	}

	properties := make([]*entity.Property, 0, len(propertyModels))
	for _, propertyM := range propertyModels {
		properties = append(properties, toPropertyDomain(propertyM))
	}

	return properties, nil
}

// ReplaceEmbeddedAddress swaps the legacy document for a reference in one conditional update.
func (repo *propertyRepository) ReplaceEmbeddedAddress(ctx context.Context, propertyID, addressID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ?", propertyID).
		Where(embeddedOnly).
		Updates(map[string]any{
			"address_id": addressID,
			"address":    gorm.Expr("NULL"),
			"updated_at": time.Now(),
		})
	if err := result.Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAddressNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to replace embedded address")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPropertyAlreadyMigrated
	}

	return nil
}

// CountPropertiesByShape reports the address shape distribution in a single scan.
func (repo *propertyRepository) CountPropertiesByShape(ctx context.Context) (*repository.PropertyShapeCounts, error) {
	var counts repository.PropertyShapeCounts

	query := `
		SELECT
		  COUNT(*) AS total,
		  COUNT(*) FILTER (WHERE jsonb_typeof(address) = 'object' AND address_id IS NULL) AS embedded,
		  COUNT(*) FILTER (WHERE address_id IS NOT NULL AND (address IS NULL OR jsonb_typeof(address) <> 'object')) AS referenced,
		  COUNT(*) FILTER (WHERE address_id IS NOT NULL AND jsonb_typeof(address) = 'object') AS "both",
		  COUNT(*) FILTER (WHERE address_id IS NULL AND (address IS NULL OR jsonb_typeof(address) <> 'object')) AS "none"
		FROM properties
	`

	if err := repo.db.WithContext(ctx).Raw(query).Scan(&counts).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count properties by shape")
	}

	return &counts, nil
}

// --- Mapper Functions ---

// toPropertyDomain converts a GORM PropertyModel to a domain Property entity.
func toPropertyDomain(data *model.PropertyModel) *entity.Property {
	if data == nil {
		return nil
	}

	property := &entity.Property{
		ID:                data.ID,
		Title:             data.Title,
		ShowAddressNumber: data.ShowAddressNumber,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	switch {
	case data.AddressID != nil:
		property.Address = &entity.ReferencedAddress{
			AddressID: *data.AddressID,
			Resolved:  toAddressDomain(data.CanonicalAddress),
		}
	case data.EmbeddedAddress.Valid:
		property.Address = toEmbeddedDomain(data.EmbeddedAddress.Address)
	}

	return property
}

// fromPropertyDomain converts a domain Property entity to a GORM PropertyModel.
func fromPropertyDomain(data *entity.Property) *model.PropertyModel {
	if data == nil {
		return nil
	}

	propertyM := &model.PropertyModel{
		ID:                data.ID,
		Title:             data.Title,
		ShowAddressNumber: data.ShowAddressNumber,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if ref, ok := data.Reference(); ok {
		addressID := ref.AddressID
		propertyM.AddressID = &addressID
	} else if embedded, ok := data.Embedded(); ok {
		propertyM.EmbeddedAddress = model.NewNullEmbeddedAddress(fromEmbeddedDomain(embedded))
	}

	return propertyM
}

func toEmbeddedDomain(data model.EmbeddedAddressModel) *entity.EmbeddedAddress {
	embedded := &entity.EmbeddedAddress{
		Street:       data.Street,
		Number:       data.Number,
		Unit:         data.Unit,
		Floor:        data.Floor,
		BuildingName: data.BuildingName,
		Block:        data.Block,
		Neighborhood: data.Neighborhood,
		District:     data.District,
		City:         data.City,
		State:        data.State,
		ZipCode:      data.ZipCode,
		Country:      data.Country,
		CountryCode:  data.CountryCode,
		AddressLines: data.AddressLines,
	}
	if data.Coordinates != nil {
		point, err := address.ExtractCoordinates(entity.RawAddress{"coordinates": data.Coordinates})
		if err == nil {
			embedded.Coordinates = &point
		} else {
			embedded.UnparsedCoordinates = data.Coordinates
		}
	}

	return embedded
}

func fromEmbeddedDomain(data *entity.EmbeddedAddress) model.EmbeddedAddressModel {
	embeddedM := model.EmbeddedAddressModel{
		Street:       data.Street,
		Number:       data.Number,
		Unit:         data.Unit,
		Floor:        data.Floor,
		BuildingName: data.BuildingName,
		Block:        data.Block,
		Neighborhood: data.Neighborhood,
		District:     data.District,
		City:         data.City,
		State:        data.State,
		ZipCode:      data.ZipCode,
		Country:      data.Country,
		CountryCode:  data.CountryCode,
		AddressLines: data.AddressLines,
	}
	switch {
	case data.Coordinates != nil:
		embeddedM.Coordinates = []float64{data.Coordinates.Lon(), data.Coordinates.Lat()}
	case data.UnparsedCoordinates != nil:
		embeddedM.Coordinates = data.UnparsedCoordinates
	}

	return embeddedM
}

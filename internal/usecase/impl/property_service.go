package impl

import (
	"context"
	"log/slog"

	"homiio/config"
	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	"homiio/internal/errors"
	"homiio/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

type propertyService struct {
	txManager    repository.TransactionManager
	propertyRepo repository.PropertyRepository
	addresses    usecase.AddressUsecase
	view         config.AddressViewConfig
	logger       *slog.Logger
}

// NewPropertyService creates a new property service instance
func NewPropertyService(
	txManager repository.TransactionManager,
	propertyRepo repository.PropertyRepository,
	addresses usecase.AddressUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PropertyUsecase {
	view := config.AddressViewConfig{IncludeAddressID: true, HideNumberWhenDisabled: true}
	if cfg != nil && cfg.Address != nil {
		view = cfg.Address.View
	}

	return &propertyService{
		txManager:    txManager,
		propertyRepo: propertyRepo,
		addresses:    addresses,
		view:         view,
		logger:       logger,
	}
}

// resolveReference turns write input into a reference. Raw fields go through
// find-or-create; a given id is stored as-is. It returns nil when neither is set.
func (s *propertyService) resolveReference(ctx context.Context, raw entity.RawAddress, addressID *uuid.UUID) (*entity.ReferencedAddress, error) {
	hasRaw := len(raw) > 0
	hasID := addressID != nil && *addressID != uuid.Nil

	switch {
	case hasRaw && hasID:
		return nil, domainerrors.ErrAmbiguousPropertyAddress
	case hasID:
		return &entity.ReferencedAddress{AddressID: *addressID}, nil
	case hasRaw:
		resolved, err := s.addresses.FindOrCreateAddress(ctx, raw)
		if err != nil {
			return nil, err
		}

		return &entity.ReferencedAddress{AddressID: resolved.Address.ID, Resolved: resolved.Address}, nil
	default:
		return nil, nil
	}
}

// CreateProperty stores a property that references a canonical address.
func (s *propertyService) CreateProperty(ctx context.Context, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	ref, err := s.resolveReference(ctx, input.Address, input.AddressID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domainerrors.ErrPropertyAddressRequired
	}

	property := &entity.Property{
		ID:                newID(),
		Title:             input.Title,
		ShowAddressNumber: input.ShowAddressNumber,
		Address:           ref,
	}

	if err := s.propertyRepo.CreateProperty(ctx, property); err != nil {
		return nil, errors.Wrap(err, "failed to create property")
	}

	s.logger.InfoContext(ctx, "Property created",
		slog.String("propertyId", property.ID.String()),
		slog.String("addressId", ref.AddressID.String()),
	)

	return property, nil
}

// UpdateProperty applies input to a property. The address is resolved before
// the transaction opens, since a lost create race would abort it.
func (s *propertyService) UpdateProperty(ctx context.Context, id uuid.UUID, input *usecase.UpdatePropertyInput) (*entity.Property, error) {
	ref, err := s.resolveReference(ctx, input.Address, input.AddressID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Property
	err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.NewPropertyRepository()

		property, err := propertyRepo.FindPropertyByID(ctx, id, false)
		if err != nil {
			return errors.Wrap(err, "failed to find property by ID")
		}

		if input.Title != nil {
			property.Title = *input.Title
		}
		if input.ShowAddressNumber != nil {
			property.ShowAddressNumber = *input.ShowAddressNumber
		}
		if ref != nil {
			property.Address = ref
		}

		if err := propertyRepo.UpdateProperty(ctx, property); err != nil {
			return errors.Wrap(err, "failed to update property")
		}

		updated = property

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetProperty loads a property with its address joined.
func (s *propertyService) GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	property, err := s.propertyRepo.FindPropertyByID(ctx, id, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find property by ID")
	}

	return property, nil
}

// GetPropertyView loads and projects a property.
func (s *propertyService) GetPropertyView(ctx context.Context, id uuid.UUID) (*usecase.PropertyView, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.ViewProperty(property), nil
}

// ViewProperty projects either address shape onto the legacy layout.
func (s *propertyService) ViewProperty(property *entity.Property) *usecase.PropertyView {
	if property == nil {
		return nil
	}

	view := &usecase.PropertyView{
		ID:                property.ID,
		Title:             property.Title,
		ShowAddressNumber: property.ShowAddressNumber,
		CreatedAt:         property.CreatedAt,
		UpdatedAt:         property.UpdatedAt,
	}

	if ref, ok := property.Reference(); ok {
		addressID := ref.AddressID
		if ref.IsResolved() {
			view.Address = canonicalAddressView(ref.Resolved)
			if s.view.IncludeAddressID {
				view.AddressID = &addressID
			}
		} else {
			view.AddressID = &addressID
		}
	} else if embedded, ok := property.Embedded(); ok {
		view.Address = embeddedAddressView(embedded)
	}

	if view.Address != nil && !property.ShowAddressNumber && s.view.HideNumberWhenDisabled {
		view.Address.Number = ""
	}

	return view
}

func canonicalAddressView(addr *entity.Address) *usecase.AddressView {
	id := addr.ID

	return &usecase.AddressView{
		ID:           &id,
		Street:       addr.Street,
		Number:       addr.Number,
		Unit:         addr.Unit,
		Floor:        addr.Floor,
		BuildingName: addr.BuildingName,
		Block:        addr.Block,
		Neighborhood: addr.Neighborhood,
		District:     addr.District,
		City:         addr.City,
		State:        addr.State,
		ZipCode:      addr.PostalCode,
		PostalCode:   addr.PostalCode,
		Country:      addr.Country,
		CountryCode:  addr.CountryCode,
		AddressLines: addr.AddressLines,
		Coordinates:  []float64{addr.Longitude(), addr.Latitude()},
		Location:     geojson.NewGeometry(addr.Location),
	}
}

func embeddedAddressView(embedded *entity.EmbeddedAddress) *usecase.AddressView {
	view := &usecase.AddressView{
		Street:       embedded.Street,
		Number:       embedded.Number,
		Unit:         embedded.Unit,
		Floor:        embedded.Floor,
		BuildingName: embedded.BuildingName,
		Block:        embedded.Block,
		Neighborhood: embedded.Neighborhood,
		District:     embedded.District,
		City:         embedded.City,
		State:        embedded.State,
		ZipCode:      embedded.ZipCode,
		PostalCode:   embedded.ZipCode,
		Country:      embedded.Country,
		CountryCode:  embedded.CountryCode,
		AddressLines: embedded.AddressLines,
	}
	if embedded.Coordinates != nil {
		view.Coordinates = []float64{embedded.Coordinates.Lon(), embedded.Coordinates.Lat()}
		view.Location = geojson.NewGeometry(*embedded.Coordinates)
	}

	return view
}

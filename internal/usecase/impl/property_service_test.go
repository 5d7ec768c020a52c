package impl

import (
	"context"
	"encoding/json"
	"testing"

	"homiio/config"
	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	mockRepo "homiio/internal/mocks/repository"
	"homiio/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// propertyServiceFixtures holds all test dependencies for property service tests.
type propertyServiceFixtures struct {
	service      usecase.PropertyUsecase
	txManager    *mockRepo.MockTransactionManager
	propertyRepo *mockRepo.MockPropertyRepository
	addressRepo  *memoryAddressRepository
}

func createTestPropertyService(t *testing.T, view *config.AddressViewConfig) propertyServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	propertyRepo := mockRepo.NewMockPropertyRepository(t)
	addressRepo := newMemoryAddressRepository()

	cfg := &config.Config{}
	if view != nil {
		cfg.Address = &config.AddressConfig{View: *view}
	}

	addresses := NewAddressService(addressRepo, cfg, testMetrics(), discardLogger())
	service := NewPropertyService(txManager, propertyRepo, addresses, cfg, discardLogger())

	return propertyServiceFixtures{
		service:      service,
		txManager:    txManager,
		propertyRepo: propertyRepo,
		addressRepo:  addressRepo,
	}
}

// onExecute runs the transaction callback against a factory handing out repo.
func (fx propertyServiceFixtures) onExecute(t *testing.T, ctx context.Context, repo repository.PropertyRepository) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewPropertyRepository().Return(repo)

			return fn(factory)
		}).
		Once()
}

func TestPropertyService_CreateProperty_FromRawAddress(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()

	fx.propertyRepo.EXPECT().
		CreateProperty(ctx, mock.MatchedBy(func(p *entity.Property) bool {
			return p.Shape() == entity.AddressShapeReferenced
		})).
		Return(nil).
		Once()

	property, err := fx.service.CreateProperty(ctx, &usecase.CreatePropertyInput{
		Title:   "Piso en Gran Via",
		Address: granVia(),
	})
	require.NoError(t, err)

	ref, ok := property.Reference()
	require.True(t, ok)
	require.True(t, ref.IsResolved())
	assert.Equal(t, ref.AddressID, ref.Resolved.ID)
	assert.Equal(t, "08014", ref.Resolved.PostalCode)
	assert.Equal(t, int64(1), fx.addressRepo.creates.Load())
}

func TestPropertyService_CreateProperty_FromAddressID(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()
	addressID := uuid.New()

	fx.propertyRepo.EXPECT().
		CreateProperty(ctx, mock.AnythingOfType("*entity.Property")).
		Return(nil).
		Once()

	property, err := fx.service.CreateProperty(ctx, &usecase.CreatePropertyInput{AddressID: &addressID})
	require.NoError(t, err)

	ref, ok := property.Reference()
	require.True(t, ok)
	assert.Equal(t, addressID, ref.AddressID)
	assert.False(t, ref.IsResolved())
	assert.Equal(t, int64(0), fx.addressRepo.creates.Load())
}

func TestPropertyService_CreateProperty_Rejects(t *testing.T) {
	addressID := uuid.New()

	tests := []struct {
		name  string
		input *usecase.CreatePropertyInput
		want  error
	}{
		{
			name:  "both shapes",
			input: &usecase.CreatePropertyInput{Address: granVia(), AddressID: &addressID},
			want:  domainerrors.ErrAmbiguousPropertyAddress,
		},
		{
			name:  "no address",
			input: &usecase.CreatePropertyInput{Title: "Loft"},
			want:  domainerrors.ErrPropertyAddressRequired,
		},
		{
			name:  "malformed address",
			input: &usecase.CreatePropertyInput{Address: entity.RawAddress{"street": "Gran Via"}},
			want:  domainerrors.ErrMissingCoordinates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPropertyService(t, nil)

			property, err := fx.service.CreateProperty(context.Background(), tt.input)
			assert.Nil(t, property)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(0), fx.addressRepo.creates.Load())
		})
	}
}

func TestPropertyService_UpdateProperty_ReplacesEmbeddedWithReference(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()
	propertyID := uuid.New()
	txRepo := mockRepo.NewMockPropertyRepository(t)

	txRepo.EXPECT().
		FindPropertyByID(ctx, propertyID, false).
		Return(&entity.Property{
			ID:      propertyID,
			Title:   "Old",
			Address: &entity.EmbeddedAddress{Street: "Gran Via", ZipCode: "08014"},
		}, nil).
		Once()

	txRepo.EXPECT().
		UpdateProperty(ctx, mock.MatchedBy(func(p *entity.Property) bool {
			return p.Shape() == entity.AddressShapeReferenced && p.Title == "New" && p.ShowAddressNumber
		})).
		Return(nil).
		Once()

	fx.onExecute(t, ctx, txRepo)

	title := "New"
	show := true
	property, err := fx.service.UpdateProperty(ctx, propertyID, &usecase.UpdatePropertyInput{
		Title:             &title,
		ShowAddressNumber: &show,
		Address:           granVia(),
	})
	require.NoError(t, err)

	_, embedded := property.Embedded()
	assert.False(t, embedded)
	assert.Equal(t, entity.AddressShapeReferenced, property.Shape())
}

func TestPropertyService_UpdateProperty_KeepsAddressWhenOmitted(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()
	propertyID := uuid.New()
	addressID := uuid.New()
	txRepo := mockRepo.NewMockPropertyRepository(t)

	txRepo.EXPECT().
		FindPropertyByID(ctx, propertyID, false).
		Return(&entity.Property{ID: propertyID, Address: &entity.ReferencedAddress{AddressID: addressID}}, nil).
		Once()

	txRepo.EXPECT().
		UpdateProperty(ctx, mock.AnythingOfType("*entity.Property")).
		Return(nil).
		Once()

	fx.onExecute(t, ctx, txRepo)

	hide := false
	property, err := fx.service.UpdateProperty(ctx, propertyID, &usecase.UpdatePropertyInput{ShowAddressNumber: &hide})
	require.NoError(t, err)

	ref, ok := property.Reference()
	require.True(t, ok)
	assert.Equal(t, addressID, ref.AddressID)
}

func TestPropertyService_UpdateProperty_NotFound(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()
	propertyID := uuid.New()
	txRepo := mockRepo.NewMockPropertyRepository(t)

	txRepo.EXPECT().
		FindPropertyByID(ctx, propertyID, false).
		Return(nil, repository.ErrPropertyNotFound).
		Once()

	fx.onExecute(t, ctx, txRepo)

	property, err := fx.service.UpdateProperty(ctx, propertyID, &usecase.UpdatePropertyInput{})
	assert.Nil(t, property)
	require.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestPropertyService_UpdateProperty_AmbiguousNeverOpensTransaction(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	addressID := uuid.New()
	_, err := fx.service.UpdateProperty(context.Background(), uuid.New(), &usecase.UpdatePropertyInput{
		Address:   granVia(),
		AddressID: &addressID,
	})
	require.ErrorIs(t, err, domainerrors.ErrAmbiguousPropertyAddress)
}

func resolvedProperty(show bool) *entity.Property {
	addr := &entity.Address{
		ID: uuid.New(),
		AddressFields: entity.AddressFields{
			Street: "Gran Via", Number: "12", City: "Barcelona", PostalCode: "08014", Country: "Spain", CountryCode: "ES",
		},
		Location: orb.Point{2.17, 41.38},
	}

	return &entity.Property{
		ID:                uuid.New(),
		Title:             "Piso",
		ShowAddressNumber: show,
		Address:           &entity.ReferencedAddress{AddressID: addr.ID, Resolved: addr},
	}
}

func TestPropertyService_ViewProperty(t *testing.T) {
	t.Run("resolved reference exposes legacy address", func(t *testing.T) {
		fx := createTestPropertyService(t, nil)
		property := resolvedProperty(true)

		view := fx.service.ViewProperty(property)
		require.NotNil(t, view.Address)
		assert.Equal(t, "Gran Via", view.Address.Street)
		assert.Equal(t, "12", view.Address.Number)
		assert.Equal(t, "08014", view.Address.ZipCode)
		assert.Equal(t, "08014", view.Address.PostalCode)
		assert.Equal(t, []float64{2.17, 41.38}, view.Address.Coordinates)
		require.NotNil(t, view.AddressID)

		data, err := json.Marshal(view)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		addressDoc, ok := doc["address"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "08014", addressDoc["zipCode"])
		assert.Equal(t, "08014", addressDoc["postal_code"])
		assert.Equal(t, map[string]any{"type": "Point", "coordinates": []any{2.17, 41.38}}, addressDoc["location"])
		assert.Contains(t, doc, "addressId")
	})

	t.Run("address id omitted when configured", func(t *testing.T) {
		fx := createTestPropertyService(t, &config.AddressViewConfig{IncludeAddressID: false, HideNumberWhenDisabled: true})

		view := fx.service.ViewProperty(resolvedProperty(true))
		assert.Nil(t, view.AddressID)
		assert.NotNil(t, view.Address)
	})

	t.Run("unresolved reference yields no address", func(t *testing.T) {
		fx := createTestPropertyService(t, nil)
		addressID := uuid.New()

		view := fx.service.ViewProperty(&entity.Property{
			ID:      uuid.New(),
			Address: &entity.ReferencedAddress{AddressID: addressID},
		})
		assert.Nil(t, view.Address)
		require.NotNil(t, view.AddressID)
		assert.Equal(t, addressID, *view.AddressID)
	})

	t.Run("number hidden when disabled", func(t *testing.T) {
		fx := createTestPropertyService(t, nil)

		view := fx.service.ViewProperty(resolvedProperty(false))
		assert.Empty(t, view.Address.Number)
		assert.Equal(t, "Gran Via", view.Address.Street)
	})

	t.Run("number kept when hiding is off", func(t *testing.T) {
		fx := createTestPropertyService(t, &config.AddressViewConfig{IncludeAddressID: true})

		view := fx.service.ViewProperty(resolvedProperty(false))
		assert.Equal(t, "12", view.Address.Number)
	})

	t.Run("embedded address projected as is", func(t *testing.T) {
		fx := createTestPropertyService(t, nil)

		view := fx.service.ViewProperty(&entity.Property{
			ID:                uuid.New(),
			ShowAddressNumber: true,
			Address: &entity.EmbeddedAddress{
				Street: "Gran Via", Number: "12", ZipCode: "08014", Coordinates: &orb.Point{2.17, 41.38},
			},
		})
		assert.Nil(t, view.AddressID)
		require.NotNil(t, view.Address)
		assert.Nil(t, view.Address.ID)
		assert.Equal(t, "08014", view.Address.PostalCode)
		assert.Equal(t, "12", view.Address.Number)
		require.NotNil(t, view.Address.Location)
	})

	t.Run("no address", func(t *testing.T) {
		fx := createTestPropertyService(t, nil)

		view := fx.service.ViewProperty(&entity.Property{ID: uuid.New()})
		assert.Nil(t, view.Address)
		assert.Nil(t, view.AddressID)
	})
}

func TestPropertyService_GetPropertyView(t *testing.T) {
	fx := createTestPropertyService(t, nil)

	ctx := context.Background()
	property := resolvedProperty(true)

	fx.propertyRepo.EXPECT().
		FindPropertyByID(ctx, property.ID, true).
		Return(property, nil).
		Once()

	view, err := fx.service.GetPropertyView(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, view.ID)
	assert.Equal(t, "Barcelona", view.Address.City)
}

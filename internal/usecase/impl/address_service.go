package impl

import (
	"context"
	"log/slog"
	"time"

	"homiio/config"
	"homiio/internal/domain/address"
	"homiio/internal/domain/entity"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/domain/repository"
	"homiio/internal/errors"
	"homiio/internal/infra/metrics"
	"homiio/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

const (
	// maxResolveAttempts bounds find-then-create rounds when creates keep losing races.
	maxResolveAttempts = 3

	defaultNearbyLimit = 20
	maxNearbyLimit     = 100
)

type addressService struct {
	addressRepo repository.AddressRepository
	validator   *address.Validator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewAddressService creates a new address service instance
func NewAddressService(
	addressRepo repository.AddressRepository,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) usecase.AddressUsecase {
	required := config.DefaultRequiredAddressFields
	if cfg != nil && cfg.Address != nil && cfg.Address.RequireFields != nil {
		required = cfg.Address.RequireFields
	}

	return &addressService{
		addressRepo: addressRepo,
		validator:   address.NewValidator(required),
		metrics:     m,
		logger:      logger,
	}
}

// normalized is a validated raw payload ready for lookup.
type normalized struct {
	fields entity.AddressFields
	point  orb.Point
	key    string
}

// prepare runs validation in order: coordinates, normalization, required fields, key.
func (s *addressService) prepare(raw entity.RawAddress) (*normalized, error) {
	point, err := address.ExtractCoordinates(raw)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateLocation(point); err != nil {
		return nil, err
	}

	fields := address.Normalize(raw)
	if err := s.validator.ValidateFields(fields); err != nil {
		return nil, err
	}

	key, err := address.CanonicalKey(fields)
	if err != nil {
		return nil, err
	}

	return &normalized{fields: fields, point: point, key: key}, nil
}

// FindOrCreateAddress returns the canonical address for raw, creating it on first sight.
func (s *addressService) FindOrCreateAddress(ctx context.Context, raw entity.RawAddress) (*usecase.ResolvedAddress, error) {
	start := time.Now()

	in, err := s.prepare(raw)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, in)
	if err != nil {
		s.metrics.ObserveResolution(metrics.OutcomeFailed, start)

		return nil, err
	}

	outcome := metrics.OutcomeReused
	if resolved.Created {
		outcome = metrics.OutcomeCreated
	}
	s.metrics.ObserveResolution(outcome, start)

	return resolved, nil
}

// resolve reads by key and creates on a miss. The unique index on the key
// decides concurrent creates; a loser goes back to reading the winner.
func (s *addressService) resolve(ctx context.Context, in *normalized) (*usecase.ResolvedAddress, error) {
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		existing, err := s.addressRepo.FindAddressByKey(ctx, in.key)
		if err == nil {
			return &usecase.ResolvedAddress{Address: existing}, nil
		}
		if !errors.Is(err, repository.ErrAddressNotFound) {
			return nil, errors.Wrap(err, "failed to find address by key")
		}

		created := &entity.Address{
			ID:            newID(),
			AddressFields: in.fields,
			Location:      in.point,
			NormalizedKey: in.key,
		}

		err = s.addressRepo.CreateAddress(ctx, created)
		if err == nil {
			s.logger.DebugContext(ctx, "Address created",
				slog.String("addressId", created.ID.String()),
				slog.String("normalizedKey", in.key),
			)

			return &usecase.ResolvedAddress{Address: created, Created: true}, nil
		}
		if !errors.Is(err, repository.ErrAddressKeyTaken) {
			return nil, errors.Wrap(err, "failed to create address")
		}

		s.metrics.IncrementResolutionRetry()
		s.logger.DebugContext(ctx, "Address create lost race, reading winner",
			slog.String("normalizedKey", in.key),
			slog.Int("attempt", attempt),
		)
	}

	return nil, domainerrors.NewDatabaseExecuteError(
		errors.Errorf("normalized key %s claimed but not readable after %d attempts", in.key, maxResolveAttempts),
		"address find-or-create did not converge",
	)
}

// PreviewAddress validates raw and looks up its key without writing.
func (s *addressService) PreviewAddress(ctx context.Context, raw entity.RawAddress) (*usecase.AddressPreview, error) {
	in, err := s.prepare(raw)
	if err != nil {
		return nil, err
	}

	preview := &usecase.AddressPreview{NormalizedKey: in.key, Fields: in.fields}

	existing, err := s.addressRepo.FindAddressByKey(ctx, in.key)
	switch {
	case err == nil:
		preview.Existing = existing
	case !errors.Is(err, repository.ErrAddressNotFound):
		return nil, errors.Wrap(err, "failed to find address by key")
	}

	return preview, nil
}

// GetAddress retrieves an address by ID.
func (s *addressService) GetAddress(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	addr, err := s.addressRepo.FindAddressByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address by ID")
	}

	return addr, nil
}

// UpdateAddressIdentity rewrites an address's fields. A new key already owned
// by another record is a conflict, never a merge.
func (s *addressService) UpdateAddressIdentity(ctx context.Context, id uuid.UUID, raw entity.RawAddress) (*entity.Address, error) {
	current, err := s.addressRepo.FindAddressByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address by ID")
	}

	point := current.Location
	extracted, err := address.ExtractCoordinates(raw)
	switch {
	case err == nil:
		if err := s.validator.ValidateLocation(extracted); err != nil {
			return nil, err
		}
		point = extracted
	case !errors.Is(err, domainerrors.ErrMissingCoordinates):
		return nil, err
	}

	fields := address.Normalize(raw)
	if err := s.validator.ValidateFields(fields); err != nil {
		return nil, err
	}

	key, err := address.CanonicalKey(fields)
	if err != nil {
		return nil, err
	}

	if key != current.NormalizedKey {
		owner, err := s.addressRepo.FindAddressByKey(ctx, key)
		switch {
		case err == nil && owner.ID != current.ID:
			return nil, domainerrors.ErrAddressKeyConflict.WithDetails(owner.ID.String())
		case err != nil && !errors.Is(err, repository.ErrAddressNotFound):
			return nil, errors.Wrap(err, "failed to find address by key")
		}
	}

	current.AddressFields = fields
	current.Location = point
	current.NormalizedKey = key

	if err := s.addressRepo.UpdateAddress(ctx, current); err != nil {
		if errors.Is(err, repository.ErrAddressKeyTaken) {
			return nil, domainerrors.ErrAddressKeyConflict
		}

		return nil, errors.Wrap(err, "failed to update address")
	}

	s.logger.InfoContext(ctx, "Address identity updated",
		slog.String("addressId", current.ID.String()),
		slog.String("normalizedKey", key),
	)

	return current, nil
}

// FindAddressesNear lists addresses around a point.
func (s *addressService) FindAddressesNear(ctx context.Context, input *usecase.NearbyAddressesInput) ([]*entity.Address, error) {
	center := orb.Point{input.Longitude, input.Latitude}
	if err := s.validator.ValidateLocation(center); err != nil {
		return nil, err
	}
	if input.RadiusMeters <= 0 {
		return nil, domainerrors.ErrInvalidSearchRadius
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}
	limit = min(limit, maxNearbyLimit)

	addresses, err := s.addressRepo.FindAddressesNear(ctx, center, input.RadiusMeters, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses near point")
	}

	return addresses, nil
}

// newID returns a time-ordered UUID, falling back to a random one.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

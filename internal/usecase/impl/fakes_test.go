package impl

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"homiio/internal/domain/entity"
	"homiio/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// memoryAddressRepository enforces the normalized key unique index in memory.
type memoryAddressRepository struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*entity.Address
	byKey map[string]uuid.UUID

	// The first gated FindAddressByKey calls block until all of them arrived
	// and then miss, so every caller reads before any caller writes.
	gated   atomic.Int64
	gate    sync.WaitGroup
	creates atomic.Int64
}

// holdFirstReads gates the next n key lookups.
func (r *memoryAddressRepository) holdFirstReads(n int) {
	r.gate.Add(n)
	r.gated.Store(int64(n))
}

func newMemoryAddressRepository() *memoryAddressRepository {
	return &memoryAddressRepository{
		byID:  make(map[uuid.UUID]*entity.Address),
		byKey: make(map[string]uuid.UUID),
	}
}

func (r *memoryAddressRepository) CreateAddress(_ context.Context, address *entity.Address) error {
	r.creates.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byKey[address.NormalizedKey]; taken {
		return repository.ErrAddressKeyTaken
	}
	stored := *address
	r.byID[address.ID] = &stored
	r.byKey[address.NormalizedKey] = address.ID

	return nil
}

func (r *memoryAddressRepository) FindAddressByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	address, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	found := *address

	return &found, nil
}

func (r *memoryAddressRepository) FindAddressByKey(_ context.Context, normalizedKey string) (*entity.Address, error) {
	if r.gated.Add(-1) >= 0 {
		r.gate.Done()
		r.gate.Wait()

		return nil, repository.ErrAddressNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byKey[normalizedKey]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	found := *r.byID[id]

	return &found, nil
}

func (r *memoryAddressRepository) UpdateAddress(_ context.Context, address *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[address.ID]
	if !ok {
		return repository.ErrAddressNotFound
	}
	if owner, taken := r.byKey[address.NormalizedKey]; taken && owner != address.ID {
		return repository.ErrAddressKeyTaken
	}
	delete(r.byKey, current.NormalizedKey)
	stored := *address
	r.byID[address.ID] = &stored
	r.byKey[address.NormalizedKey] = address.ID

	return nil
}

func (r *memoryAddressRepository) FindAddressesNear(_ context.Context, center orb.Point, radiusMeters float64, limit int) ([]*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []*entity.Address
	for _, address := range r.byID {
		if geo.Distance(center, address.Location) <= radiusMeters {
			found = append(found, address)
		}
	}
	slices.SortFunc(found, func(a, b *entity.Address) int {
		da, db := geo.Distance(center, a.Location), geo.Distance(center, b.Location)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})

	return found[:min(limit, len(found))], nil
}

func (r *memoryAddressRepository) CountAddresses(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.byID)), nil
}

// memoryPropertyRepository stores properties by ID and applies the
// conditional migration update atomically.
type memoryPropertyRepository struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*entity.Property
	failUpdate map[uuid.UUID]error
}

func newMemoryPropertyRepository() *memoryPropertyRepository {
	return &memoryPropertyRepository{
		properties: make(map[uuid.UUID]*entity.Property),
		failUpdate: make(map[uuid.UUID]error),
	}
}

func (r *memoryPropertyRepository) CreateProperty(_ context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *property
	r.properties[property.ID] = &stored

	return nil
}

func (r *memoryPropertyRepository) FindPropertyByID(_ context.Context, id uuid.UUID, _ bool) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	property, ok := r.properties[id]
	if !ok {
		return nil, repository.ErrPropertyNotFound
	}
	found := *property

	return &found, nil
}

func (r *memoryPropertyRepository) UpdateProperty(_ context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[property.ID]; !ok {
		return repository.ErrPropertyNotFound
	}
	stored := *property
	r.properties[property.ID] = &stored

	return nil
}

func (r *memoryPropertyRepository) FindEmbeddedAddressBatch(_ context.Context, after uuid.UUID, limit int) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var batch []*entity.Property
	for _, property := range r.properties {
		if property.Shape() == entity.AddressShapeEmbedded && compareIDs(property.ID, after) > 0 {
			found := *property
			batch = append(batch, &found)
		}
	}
	slices.SortFunc(batch, func(a, b *entity.Property) int {
		return compareIDs(a.ID, b.ID)
	})

	return batch[:min(limit, len(batch))], nil
}

func (r *memoryPropertyRepository) ReplaceEmbeddedAddress(_ context.Context, propertyID, addressID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failUpdate[propertyID]; err != nil {
		return err
	}

	property, ok := r.properties[propertyID]
	if !ok || property.Shape() != entity.AddressShapeEmbedded {
		return repository.ErrPropertyAlreadyMigrated
	}
	property.Address = &entity.ReferencedAddress{AddressID: addressID}

	return nil
}

func (r *memoryPropertyRepository) CountPropertiesByShape(context.Context) (*repository.PropertyShapeCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := &repository.PropertyShapeCounts{Total: int64(len(r.properties))}
	for _, property := range r.properties {
		switch property.Shape() {
		case entity.AddressShapeEmbedded:
			counts.Embedded++
		case entity.AddressShapeReferenced:
			counts.Referenced++
		default:
			counts.None++
		}
	}

	return counts, nil
}

func (r *memoryPropertyRepository) snapshot() map[uuid.UUID]entity.Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uuid.UUID]entity.Property, len(r.properties))
	for id, property := range r.properties {
		out[id] = *property
	}

	return out
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
)

// MemoryStore is an in-memory backend. When a snapshot path is set, the
// store loads it on creation and rewrites it after every change.
type MemoryStore struct {
	mu       sync.RWMutex
	types    map[string]domain.BoatType
	boats    map[string]domain.Boat
	reviews  map[string][]domain.Review // boat id -> reviews
	snapshot string
}

// NewMemoryStore creates a memory store, optionally backed by a snapshot file
func NewMemoryStore(snapshotPath string) (*MemoryStore, error) {
	m := &MemoryStore{
		types:    make(map[string]domain.BoatType),
		boats:    make(map[string]domain.Boat),
		reviews:  make(map[string][]domain.Review),
		snapshot: snapshotPath,
	}
	if snapshotPath != "" {
		snap, err := readSnapshot(snapshotPath)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			m.restore(snap)
		}
	}
	return m, nil
}

func (m *MemoryStore) FetchBoats(ctx context.Context, filter domain.Filter) ([]domain.Boat, error) {
	if err := ctx.Err(); err != nil {
		return nil, dataservice.AsError("FetchBoats", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Boat, 0, len(m.boats))
	for _, b := range m.boats {
		if filter == domain.FilterAll || b.BoatTypeID == string(filter) {
			b.BoatTypeName = m.types[b.BoatTypeID].Name
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (m *MemoryStore) FetchReviews(ctx context.Context, boatID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, dataservice.AsError("FetchReviews", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]domain.Review(nil), m.reviews[boatID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out, nil
}

// UpdateBoats checks every change before applying any of them
func (m *MemoryStore) UpdateBoats(ctx context.Context, batch domain.UpdateBatch) error {
	const op = "UpdateBoats"
	if err := ctx.Err(); err != nil {
		return dataservice.AsError(op, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := make(map[string]domain.Boat, len(batch))
	for id, changes := range batch {
		current, ok := m.boats[id]
		if !ok {
			return &dataservice.Error{Op: op, Message: fmt.Sprintf("Boat %s does not exist", id), Err: dataservice.ErrNotFound}
		}
		if err := validateChanges(op, id, changes); err != nil {
			return err
		}
		next := current.With(changes)
		if err := validateBoat(op, next); err != nil {
			return err
		}
		updated[id] = next
	}
	if len(updated) == 0 {
		return nil
	}

	for id, b := range updated {
		m.boats[id] = b
	}
	return m.persistLocked()
}

func (m *MemoryStore) FetchBoatTypes(ctx context.Context) ([]domain.BoatType, error) {
	if err := ctx.Err(); err != nil {
		return nil, dataservice.AsError("FetchBoatTypes", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.BoatType, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) CreateBoat(ctx context.Context, boat domain.Boat) (domain.Boat, error) {
	const op = "CreateBoat"
	if err := ctx.Err(); err != nil {
		return domain.Boat{}, dataservice.AsError(op, err)
	}
	if err := validateBoat(op, boat); err != nil {
		return domain.Boat{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if boat.BoatTypeID != "" {
		t, ok := m.types[boat.BoatTypeID]
		if !ok {
			return domain.Boat{}, dataservice.Validation(op, "Validation error: unknown boat type %q", boat.BoatTypeID)
		}
		boat.BoatTypeName = t.Name
	}
	boat.ID = uuid.NewString()
	m.boats[boat.ID] = boat
	if err := m.persistLocked(); err != nil {
		delete(m.boats, boat.ID)
		return domain.Boat{}, err
	}
	return boat, nil
}

// Import adds fixture records whose ids are not stored yet
func (m *MemoryStore) Import(ctx context.Context, f *Fixture) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range f.domainTypes() {
		if _, ok := m.types[t.ID]; !ok {
			m.types[t.ID] = t
		}
	}
	for _, b := range f.domainBoats() {
		if _, ok := m.boats[b.ID]; !ok {
			m.boats[b.ID] = b
		}
	}
	existing := make(map[string]bool)
	for _, list := range m.reviews {
		for _, r := range list {
			existing[r.ID] = true
		}
	}
	for _, r := range f.domainReviews() {
		if !existing[r.ID] {
			m.reviews[r.BoatID] = append(m.reviews[r.BoatID], r)
		}
	}
	return m.persistLocked()
}

func (m *MemoryStore) CountBoats(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.boats), nil
}

// Close writes a final snapshot
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistLocked()
}

func (m *MemoryStore) persistLocked() error {
	if m.snapshot == "" {
		return nil
	}
	if err := writeSnapshot(m.snapshot, m.capture()); err != nil {
		return dataservice.AsError("snapshot", err)
	}
	return nil
}

package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ugorji/go/codec"

	"boatyard/internal/domain"
)

const snapshotVersion = 1

// snapshot is the msgpack document a memory store is saved as
type snapshot struct {
	Version int              `codec:"version"`
	Types   []snapshotType   `codec:"types"`
	Boats   []snapshotBoat   `codec:"boats"`
	Reviews []snapshotReview `codec:"reviews"`
}

type snapshotType struct {
	ID   string `codec:"id"`
	Name string `codec:"name"`
}

type snapshotBoat struct {
	ID          string  `codec:"id"`
	Name        string  `codec:"name"`
	Length      float64 `codec:"length"`
	Price       float64 `codec:"price"`
	Description string  `codec:"description"`
	TypeID      string  `codec:"type"`
	Picture     string  `codec:"picture"`
	Contact     string  `codec:"contact"`
}

type snapshotReview struct {
	ID        string `codec:"id"`
	BoatID    string `codec:"boat"`
	Name      string `codec:"name"`
	Comment   string `codec:"comment"`
	Rating    int    `codec:"rating"`
	CreatedBy string `codec:"created_by"`
	CreatedAt int64  `codec:"created_at"` // unix nanoseconds, 0 for unknown
}

// capture copies the store into a snapshot in a stable order. Callers hold m.mu.
func (m *MemoryStore) capture() *snapshot {
	s := &snapshot{Version: snapshotVersion}
	for _, t := range m.types {
		s.Types = append(s.Types, snapshotType{ID: t.ID, Name: t.Name})
	}
	for _, b := range m.boats {
		s.Boats = append(s.Boats, snapshotBoat{
			ID:          b.ID,
			Name:        b.Name,
			Length:      b.Length,
			Price:       b.Price,
			Description: b.Description,
			TypeID:      b.BoatTypeID,
			Picture:     b.Picture,
			Contact:     b.Contact,
		})
	}
	for _, list := range m.reviews {
		for _, r := range list {
			var at int64
			if !r.CreatedDate.IsZero() {
				at = r.CreatedDate.UnixNano()
			}
			s.Reviews = append(s.Reviews, snapshotReview{
				ID:        r.ID,
				BoatID:    r.BoatID,
				Name:      r.Name,
				Comment:   r.Comment,
				Rating:    r.Rating,
				CreatedBy: r.CreatedBy,
				CreatedAt: at,
			})
		}
	}
	sort.Slice(s.Types, func(i, j int) bool { return s.Types[i].ID < s.Types[j].ID })
	sort.Slice(s.Boats, func(i, j int) bool { return s.Boats[i].ID < s.Boats[j].ID })
	sort.Slice(s.Reviews, func(i, j int) bool { return s.Reviews[i].ID < s.Reviews[j].ID })
	return s
}

// restore replaces the store contents. Callers hold m.mu or own m exclusively.
func (m *MemoryStore) restore(s *snapshot) {
	for _, t := range s.Types {
		m.types[t.ID] = domain.BoatType{ID: t.ID, Name: t.Name}
	}
	for _, b := range s.Boats {
		m.boats[b.ID] = domain.Boat{
			ID:          b.ID,
			Name:        b.Name,
			Length:      b.Length,
			Price:       b.Price,
			Description: b.Description,
			BoatTypeID:  b.TypeID,
			Picture:     b.Picture,
			Contact:     b.Contact,
		}
	}
	for _, r := range s.Reviews {
		var at time.Time
		if r.CreatedAt != 0 {
			at = time.Unix(0, r.CreatedAt).UTC()
		}
		m.reviews[r.BoatID] = append(m.reviews[r.BoatID], domain.Review{
			ID:          r.ID,
			BoatID:      r.BoatID,
			Name:        r.Name,
			Comment:     r.Comment,
			Rating:      r.Rating,
			CreatedBy:   r.CreatedBy,
			CreatedDate: at,
		})
	}
}

// readSnapshot returns nil without error when the file does not exist yet
func readSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var (
		mh   codec.MsgpackHandle
		snap snapshot
	)
	dec := codec.NewDecoderBytes(data, &mh)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// writeSnapshot replaces path atomically
func writeSnapshot(path string, snap *snapshot) error {
	var (
		mh  codec.MsgpackHandle
		buf bytes.Buffer
	)
	enc := codec.NewEncoder(&buf, &mh)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".boatyard-snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

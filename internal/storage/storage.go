// Package storage provides the backends behind dataservice.Service:
// an in-memory store with optional msgpack snapshots, SQLite and PostgreSQL.
package storage

import (
	"context"
	"fmt"
	"math"
	"strings"

	"boatyard/internal/config"
	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
)

// Store is a data service backend
type Store interface {
	dataservice.Service

	// Import inserts fixture records, skipping ids that already exist
	Import(ctx context.Context, f *Fixture) error
	// CountBoats returns the number of stored boats
	CountBoats(ctx context.Context) (int, error)
	Close() error
}

// Open creates the backend selected by cfg
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Type {
	case config.StorageMemory, "":
		s, err = openMemory(cfg.Path)
	case config.StorageSQLite:
		path := cfg.Path
		if path == "" {
			path = "boatyard.db"
		}
		s, err = openSQLite(ctx, path)
	case config.StoragePostgres:
		s, err = openPostgres(ctx, cfg.Driver, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openMemory(path string) (Store, error) {
	m, err := NewMemoryStore(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func openSQLite(ctx context.Context, path string) (Store, error) {
	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openPostgres(ctx context.Context, driver, url string) (Store, error) {
	s, err := NewPostgresStore(ctx, driver, url)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SeedIfEmpty imports the fixture when the store holds no boats.
// It reports whether anything was imported.
func SeedIfEmpty(ctx context.Context, s Store, f *Fixture) (bool, error) {
	n, err := s.CountBoats(ctx)
	if err != nil {
		return false, fmt.Errorf("counting boats: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := s.Import(ctx, f); err != nil {
		return false, fmt.Errorf("importing fixture: %w", err)
	}
	return true, nil
}

// validateBoat checks a boat after changes were applied to it
func validateBoat(op string, b domain.Boat) error {
	var problems []string
	if strings.TrimSpace(b.Name) == "" {
		problems = append(problems, "Name is required")
	}
	switch {
	case !finite(b.Length):
		problems = append(problems, "Length must be a finite number")
	case b.Length <= 0:
		problems = append(problems, "Length must be greater than 0")
	}
	switch {
	case !finite(b.Price):
		problems = append(problems, "Price must be a finite number")
	case b.Price < 0:
		problems = append(problems, "Price must not be negative")
	}
	if len(problems) > 0 {
		return dataservice.Validation(op, "Validation error: %s", strings.Join(problems, "; "))
	}
	return nil
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// validateChanges rejects values of the wrong type before they are applied
func validateChanges(op, boatID string, changes map[domain.Field]any) error {
	for f, v := range changes {
		switch f {
		case domain.FieldName, domain.FieldDescription:
			if _, ok := v.(string); !ok {
				return dataservice.Validation(op, "Validation error: %s of boat %s must be text", f, boatID)
			}
		case domain.FieldLength, domain.FieldPrice:
			if _, ok := v.(float64); !ok {
				return dataservice.Validation(op, "Validation error: %s of boat %s must be a number", f, boatID)
			}
		default:
			return dataservice.Validation(op, "Validation error: %s is not an editable field", f)
		}
	}
	return nil
}

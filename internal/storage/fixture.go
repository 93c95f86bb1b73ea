package storage

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"boatyard/internal/domain"
)

//go:embed demo.toml
var demoFixture []byte

// Fixture is a TOML document of records to import
type Fixture struct {
	BoatTypes []FixtureBoatType `toml:"boat_types"`
	Boats     []FixtureBoat     `toml:"boats"`
	Reviews   []FixtureReview   `toml:"reviews"`
}

type FixtureBoatType struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type FixtureBoat struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Type        string  `toml:"type"`
	Length      float64 `toml:"length"`
	Price       float64 `toml:"price"`
	Description string  `toml:"description"`
	Picture     string  `toml:"picture"`
	Contact     string  `toml:"contact"`
}

type FixtureReview struct {
	ID          string    `toml:"id"`
	Boat        string    `toml:"boat"`
	Name        string    `toml:"name"`
	Comment     string    `toml:"comment"`
	Rating      int       `toml:"rating"`
	CreatedBy   string    `toml:"created_by"`
	CreatedDate time.Time `toml:"created_date"`
}

// DemoFixture returns the built-in demo inventory
func DemoFixture() *Fixture {
	f, err := ParseFixture(demoFixture)
	if err != nil {
		panic(fmt.Sprintf("demo fixture: %v", err))
	}
	return f
}

// LoadFixture reads a fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and checks a fixture document
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// check verifies ids are present and references resolve
func (f *Fixture) check() error {
	types := make(map[string]bool)
	for _, t := range f.BoatTypes {
		if t.ID == "" {
			return fmt.Errorf("boat type %q has no id", t.Name)
		}
		types[t.ID] = true
	}
	boats := make(map[string]bool)
	for _, b := range f.Boats {
		if b.ID == "" {
			return fmt.Errorf("boat %q has no id", b.Name)
		}
		if b.Type != "" && !types[b.Type] {
			return fmt.Errorf("boat %s references unknown type %q", b.ID, b.Type)
		}
		boats[b.ID] = true
	}
	for _, r := range f.Reviews {
		if r.ID == "" {
			return fmt.Errorf("review %q has no id", r.Name)
		}
		if !boats[r.Boat] {
			return fmt.Errorf("review %s references unknown boat %q", r.ID, r.Boat)
		}
	}
	return nil
}

func (f *Fixture) domainTypes() []domain.BoatType {
	out := make([]domain.BoatType, 0, len(f.BoatTypes))
	for _, t := range f.BoatTypes {
		out = append(out, domain.BoatType{ID: t.ID, Name: t.Name})
	}
	return out
}

func (f *Fixture) domainBoats() []domain.Boat {
	names := make(map[string]string, len(f.BoatTypes))
	for _, t := range f.BoatTypes {
		names[t.ID] = t.Name
	}
	out := make([]domain.Boat, 0, len(f.Boats))
	for _, b := range f.Boats {
		out = append(out, domain.Boat{
			ID:           b.ID,
			Name:         b.Name,
			Length:       b.Length,
			Price:        b.Price,
			Description:  b.Description,
			BoatTypeID:   b.Type,
			BoatTypeName: names[b.Type],
			Picture:      b.Picture,
			Contact:      b.Contact,
		})
	}
	return out
}

func (f *Fixture) domainReviews() []domain.Review {
	out := make([]domain.Review, 0, len(f.Reviews))
	for _, r := range f.Reviews {
		out = append(out, domain.Review{
			ID:          r.ID,
			BoatID:      r.Boat,
			Name:        r.Name,
			Comment:     r.Comment,
			Rating:      r.Rating,
			CreatedBy:   r.CreatedBy,
			CreatedDate: r.CreatedDate.UTC(),
		})
	}
	return out
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
)

// dialect holds what differs between the SQL backends
type dialect struct {
	name     string
	schema   []string
	numbered bool // $1 placeholders instead of ?
}

// SQLStore is the database/sql backend shared by SQLite and PostgreSQL
type SQLStore struct {
	db *sql.DB
	d  dialect
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	s := &SQLStore{db: db, d: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range s.d.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate %s schema: %w", s.d.name, err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders for dialects that number them
func (s *SQLStore) rebind(query string) string {
	if !s.d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const boatColumns = `b.id, b.name, b.length, b.price, b.description, b.type_id,
	COALESCE(t.name, ''), b.picture, b.contact`

func scanBoat(row interface{ Scan(...any) error }) (domain.Boat, error) {
	var b domain.Boat
	err := row.Scan(&b.ID, &b.Name, &b.Length, &b.Price, &b.Description,
		&b.BoatTypeID, &b.BoatTypeName, &b.Picture, &b.Contact)
	return b, err
}

func (s *SQLStore) FetchBoats(ctx context.Context, filter domain.Filter) ([]domain.Boat, error) {
	const op = "FetchBoats"
	query := `SELECT ` + boatColumns + ` FROM boats b
		LEFT JOIN boat_types t ON t.id = b.type_id`
	var args []any
	if filter != domain.FilterAll {
		query += ` WHERE b.type_id = ?`
		args = append(args, string(filter))
	}
	query += ` ORDER BY LOWER(b.name), b.id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, dataservice.AsError(op, fmt.Errorf("querying boats: %w", err))
	}
	defer rows.Close()

	var out []domain.Boat
	for rows.Next() {
		b, err := scanBoat(rows)
		if err != nil {
			return nil, dataservice.AsError(op, fmt.Errorf("scanning boat: %w", err))
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dataservice.AsError(op, err)
	}
	return out, nil
}

func (s *SQLStore) FetchReviews(ctx context.Context, boatID string) ([]domain.Review, error) {
	const op = "FetchReviews"
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, boat_id, name, comment, rating, created_by, created_at
		FROM reviews WHERE boat_id = ?
		ORDER BY created_at DESC, id`), boatID)
	if err != nil {
		return nil, dataservice.AsError(op, fmt.Errorf("querying reviews: %w", err))
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var (
			r  domain.Review
			at int64
		)
		if err := rows.Scan(&r.ID, &r.BoatID, &r.Name, &r.Comment, &r.Rating, &r.CreatedBy, &at); err != nil {
			return nil, dataservice.AsError(op, fmt.Errorf("scanning review: %w", err))
		}
		if at != 0 {
			r.CreatedDate = time.Unix(0, at).UTC()
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataservice.AsError(op, err)
	}
	return out, nil
}

// UpdateBoats applies the whole batch in one transaction
func (s *SQLStore) UpdateBoats(ctx context.Context, batch domain.UpdateBatch) (err error) {
	const op = "UpdateBoats"
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dataservice.AsError(op, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for id, changes := range batch {
		if err = validateChanges(op, id, changes); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, s.rebind(`SELECT `+boatColumns+` FROM boats b
			LEFT JOIN boat_types t ON t.id = b.type_id WHERE b.id = ?`), id)
		var current domain.Boat
		current, err = scanBoat(row)
		if errors.Is(err, sql.ErrNoRows) {
			err = &dataservice.Error{Op: op, Message: fmt.Sprintf("Boat %s does not exist", id), Err: dataservice.ErrNotFound}
			return err
		}
		if err != nil {
			return dataservice.AsError(op, fmt.Errorf("loading boat %s: %w", id, err))
		}

		next := current.With(changes)
		if err = validateBoat(op, next); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE boats SET name = ?, length = ?, price = ?, description = ?
			WHERE id = ?`), next.Name, next.Length, next.Price, next.Description, id); err != nil {
			return dataservice.AsError(op, fmt.Errorf("updating boat %s: %w", id, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return dataservice.AsError(op, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *SQLStore) FetchBoatTypes(ctx context.Context) ([]domain.BoatType, error) {
	const op = "FetchBoatTypes"
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM boat_types ORDER BY name, id`)
	if err != nil {
		return nil, dataservice.AsError(op, fmt.Errorf("querying boat types: %w", err))
	}
	defer rows.Close()

	var out []domain.BoatType
	for rows.Next() {
		var t domain.BoatType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dataservice.AsError(op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dataservice.AsError(op, err)
	}
	return out, nil
}

func (s *SQLStore) CreateBoat(ctx context.Context, boat domain.Boat) (domain.Boat, error) {
	const op = "CreateBoat"
	if err := validateBoat(op, boat); err != nil {
		return domain.Boat{}, err
	}
	if boat.BoatTypeID != "" {
		err := s.db.QueryRowContext(ctx, s.rebind(`SELECT name FROM boat_types WHERE id = ?`),
			boat.BoatTypeID).Scan(&boat.BoatTypeName)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Boat{}, dataservice.Validation(op, "Validation error: unknown boat type %q", boat.BoatTypeID)
		}
		if err != nil {
			return domain.Boat{}, dataservice.AsError(op, err)
		}
	}

	boat.ID = uuid.NewString()
	if err := s.insertBoat(ctx, s.db, boat); err != nil {
		return domain.Boat{}, dataservice.AsError(op, fmt.Errorf("inserting boat: %w", err))
	}
	return boat, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLStore) insertBoat(ctx context.Context, ex execer, b domain.Boat) error {
	_, err := ex.ExecContext(ctx, s.rebind(`
		INSERT INTO boats (id, name, length, price, description, type_id, picture, contact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`),
		b.ID, b.Name, b.Length, b.Price, b.Description, b.BoatTypeID, b.Picture, b.Contact)
	return err
}

// Import inserts fixture records in one transaction, skipping existing ids
func (s *SQLStore) Import(ctx context.Context, f *Fixture) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range f.domainTypes() {
		if _, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO boat_types (id, name) VALUES (?, ?)
			ON CONFLICT (id) DO NOTHING`), t.ID, t.Name); err != nil {
			return fmt.Errorf("inserting boat type %s: %w", t.ID, err)
		}
	}
	for _, b := range f.domainBoats() {
		if err = s.insertBoat(ctx, tx, b); err != nil {
			return fmt.Errorf("inserting boat %s: %w", b.ID, err)
		}
	}
	for _, r := range f.domainReviews() {
		var at int64
		if !r.CreatedDate.IsZero() {
			at = r.CreatedDate.UnixNano()
		}
		if _, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO reviews (id, boat_id, name, comment, rating, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO NOTHING`),
			r.ID, r.BoatID, r.Name, r.Comment, r.Rating, r.CreatedBy, at); err != nil {
			return fmt.Errorf("inserting review %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) CountBoats(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting boats: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

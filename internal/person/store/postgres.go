package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"stargate/internal/person/models"
	"stargate/pkg/platform/sentinel"
	txcontext "stargate/pkg/platform/tx"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Postgres persists people in the person table. Writes participate in a
// surrounding transaction when one is carried in the context.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) conn(ctx context.Context) queryer {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) CreateIfNameAvailable(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO person (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query, p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id models.PersonID) (*models.Person, error) {
	query := `SELECT id, name, created_at, updated_at FROM person WHERE id = $1`
	return s.scanOne(s.conn(ctx).QueryRowContext(ctx, query, id))
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Person, error) {
	query := `SELECT id, name, created_at, updated_at FROM person WHERE name = $1`
	return s.scanOne(s.conn(ctx).QueryRowContext(ctx, query, name))
}

// FindByNameForUpdate locks the person row for the duration of the carried
// transaction, serializing concurrent duty submissions for the same person.
func (s *Postgres) FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error) {
	query := `SELECT id, name, created_at, updated_at FROM person WHERE name = $1 FOR UPDATE`
	return s.scanOne(s.conn(ctx).QueryRowContext(ctx, query, name))
}

func (s *Postgres) List(ctx context.Context) ([]*models.Person, error) {
	query := `SELECT id, name, created_at, updated_at FROM person ORDER BY name`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, p *models.Person) error {
	query := `UPDATE person SET name = $2, updated_at = $3 WHERE id = $1`
	res, err := s.conn(ctx).ExecContext(ctx, query, p.ID, p.Name, p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) scanOne(row *sql.Row) (*models.Person, error) {
	var p models.Person
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	return &p, nil
}

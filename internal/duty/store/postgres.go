package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	"stargate/pkg/platform/sentinel"
	txcontext "stargate/pkg/platform/tx"
)

// Postgres persists duties and status summaries. All methods participate in
// a transaction carried in the context, which is how the mutator's steps
// commit or roll back as one unit.
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

const dutyColumns = `id, person_id, rank, title, start_date, end_date`

func (s *Postgres) FindByTitleAndStart(ctx context.Context, personID personmodels.PersonID, title string, start time.Time) (*dutymodels.Duty, error) {
	query := `SELECT ` + dutyColumns + ` FROM astronaut_duty
		WHERE person_id = $1 AND title = $2 AND start_date = $3`
	return scanDuty(s.conn(ctx).QueryRowContext(ctx, query, personID, title, start))
}

func (s *Postgres) FindOpen(ctx context.Context, personID personmodels.PersonID) (*dutymodels.Duty, error) {
	query := `SELECT ` + dutyColumns + ` FROM astronaut_duty
		WHERE person_id = $1 AND end_date IS NULL`
	return scanDuty(s.conn(ctx).QueryRowContext(ctx, query, personID))
}

func (s *Postgres) ListByPerson(ctx context.Context, personID personmodels.PersonID) ([]*dutymodels.Duty, error) {
	query := `SELECT ` + dutyColumns + ` FROM astronaut_duty
		WHERE person_id = $1 ORDER BY start_date DESC`
	rows, err := s.conn(ctx).QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("list duties: %w", err)
	}
	defer rows.Close()

	var out []*dutymodels.Duty
	for rows.Next() {
		d, err := scanDutyRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Postgres) Insert(ctx context.Context, d *dutymodels.Duty) error {
	query := `
		INSERT INTO astronaut_duty (id, person_id, rank, title, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		d.ID, d.PersonID, d.Rank, d.Title, d.StartDate, d.EndDate)
	if err != nil {
		return fmt.Errorf("insert duty: %w", err)
	}
	return nil
}

func (s *Postgres) SetEndDate(ctx context.Context, id dutymodels.DutyID, end time.Time) error {
	query := `UPDATE astronaut_duty SET end_date = $2 WHERE id = $1`
	res, err := s.conn(ctx).ExecContext(ctx, query, id, end)
	if err != nil {
		return fmt.Errorf("close duty: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close duty: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) GetStatus(ctx context.Context, personID personmodels.PersonID) (*dutymodels.CurrentStatus, error) {
	query := `
		SELECT person_id, current_rank, current_title, career_start_date, career_end_date
		FROM astronaut_status WHERE person_id = $1
	`
	var st dutymodels.CurrentStatus
	var end sql.NullTime
	err := s.conn(ctx).QueryRowContext(ctx, query, personID).Scan(
		&st.PersonID, &st.CurrentRank, &st.CurrentTitle, &st.CareerStartDate, &end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan status: %w", err)
	}
	if end.Valid {
		st.CareerEndDate = &end.Time
	}
	return &st, nil
}

func (s *Postgres) UpsertStatus(ctx context.Context, st *dutymodels.CurrentStatus) error {
	// career_start_date is written once; the conflict branch leaves it alone.
	query := `
		INSERT INTO astronaut_status (person_id, current_rank, current_title, career_start_date, career_end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_id) DO UPDATE SET
			current_rank = EXCLUDED.current_rank,
			current_title = EXCLUDED.current_title,
			career_end_date = EXCLUDED.career_end_date
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		st.PersonID, st.CurrentRank, st.CurrentTitle, st.CareerStartDate, st.CareerEndDate)
	if err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

func scanDuty(row *sql.Row) (*dutymodels.Duty, error) {
	var d dutymodels.Duty
	var end sql.NullTime
	if err := row.Scan(&d.ID, &d.PersonID, &d.Rank, &d.Title, &d.StartDate, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan duty: %w", err)
	}
	if end.Valid {
		d.EndDate = &end.Time
	}
	return &d, nil
}

func scanDutyRows(rows *sql.Rows) (*dutymodels.Duty, error) {
	var d dutymodels.Duty
	var end sql.NullTime
	if err := rows.Scan(&d.ID, &d.PersonID, &d.Rank, &d.Title, &d.StartDate, &end); err != nil {
		return nil, fmt.Errorf("scan duty: %w", err)
	}
	if end.Valid {
		d.EndDate = &end.Time
	}
	return &d, nil
}

package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore appends process log rows. It deliberately writes on the raw
// connection rather than any transaction carried in context: audit entries
// describe operations that already resolved, and must survive regardless of
// what the surrounding request does next.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO process_log (timestamp, level, action, message, person_name)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.Timestamp, string(entry.Level), entry.Action, entry.Message, entry.PersonName)
	if err != nil {
		return fmt.Errorf("insert process log: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, personName string) ([]Entry, error) {
	query := `
		SELECT timestamp, level, action, message, COALESCE(person_name, '')
		FROM process_log
		WHERE $1 = '' OR person_name = $1
		ORDER BY timestamp
	`
	rows, err := s.db.QueryContext(ctx, query, personName)
	if err != nil {
		return nil, fmt.Errorf("list process log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var level string
		if err := rows.Scan(&e.Timestamp, &level, &e.Action, &e.Message, &e.PersonName); err != nil {
			return nil, fmt.Errorf("scan process log: %w", err)
		}
		e.Level = Level(level)
		out = append(out, e)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var _ domain.EntryRepository = (*PostgresEntryRepository)(nil)

const entriesSchema = `
	CREATE TABLE IF NOT EXISTS session_entries (
		position  INTEGER PRIMARY KEY,
		date      TEXT    NOT NULL,
		clock     TEXT    NOT NULL DEFAULT '',
		title     TEXT    NOT NULL DEFAULT '',
		duration  INTEGER NOT NULL DEFAULT 0,
		note      TEXT    NOT NULL DEFAULT '',
		hardness  INTEGER NOT NULL DEFAULT 0
	)`

// PostgresEntryRepository keeps the session list in one table; position preserves file order.
type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

// ConnectPostgres opens a pool through the pgx stdlib driver.
func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: connect postgres: %w", describePgError(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (r *PostgresEntryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, entriesSchema); err != nil {
		return fmt.Errorf("repository: ensure schema: %w", describePgError(err))
	}
	return nil
}

type entryRow struct {
	Position int `db:"position"`
	domain.SessionEntry
}

func (r *PostgresEntryRepository) Load(ctx context.Context) ([]domain.SessionEntry, error) {
	entries := []domain.SessionEntry{}

	query := `
		SELECT date, clock, title, duration, note, hardness
		FROM session_entries
		ORDER BY position ASC`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("repository: load entries: %w", describePgError(err))
	}
	return entries, nil
}

// Save replaces the table content in one transaction.
func (r *PostgresEntryRepository) Save(ctx context.Context, entries []domain.SessionEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin: %w", describePgError(err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_entries`); err != nil {
		return fmt.Errorf("repository: clear entries: %w", describePgError(err))
	}

	if len(entries) > 0 {
		rows := make([]entryRow, len(entries))
		for i, e := range entries {
			rows[i] = entryRow{Position: i, SessionEntry: e}
		}

		query := `
			INSERT INTO session_entries (position, date, clock, title, duration, note, hardness)
			VALUES (:position, :date, :clock, :title, :duration, :note, :hardness)`

		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return fmt.Errorf("repository: insert entries: %w", describePgError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit: %w", describePgError(err))
	}
	return nil
}

// describePgError adds the SQLSTATE of driver errors from either postgres driver.
func describePgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("sqlstate %s: %w", pgErr.Code, err)
	}
	return err
}

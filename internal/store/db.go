package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps sql.DB for Postgres using pgx.
type DB struct {
	Client *sql.DB
}

// NewDB creates a Postgres connection with sane defaults.
func NewDB(connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// EnsureSchema creates the employees and time_logs tables. The
// unique constraints back the conflict semantics: no duplicate
// employee names, no duplicate check times per employee.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.Client.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id          BIGSERIAL PRIMARY KEY,
			first_name  TEXT NOT NULL,
			last_name   TEXT NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (first_name, last_name)
		);
		CREATE TABLE IF NOT EXISTS time_logs (
			id          BIGSERIAL PRIMARY KEY,
			employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			check_time  TIMESTAMP NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (employee_id, check_time)
		);
		CREATE INDEX IF NOT EXISTS idx_time_logs_check_time
			ON time_logs (check_time);
	`)
	return err
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

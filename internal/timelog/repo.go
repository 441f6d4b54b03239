package timelog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"timetracking/internal/apperr"
)

// CheckEvent is one recorded check time. Whether it is an entrance
// or an exit follows from its position in the employee's sequence,
// not from any stored flag.
type CheckEvent struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	CheckTime  time.Time `json:"check_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository persists the append-only check-time log in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends one check event. The unique (employee_id,
// check_time) constraint turns a duplicate submission into a
// conflict instead of a silent merge.
func (r *Repository) Insert(ctx context.Context, employeeID int64, checkTime time.Time) (CheckEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO time_logs (employee_id, check_time)
		VALUES ($1, $2)
		RETURNING id, employee_id, check_time, created_at
	`, employeeID, checkTime)
	var ev CheckEvent
	if err := row.Scan(&ev.ID, &ev.EmployeeID, &ev.CheckTime, &ev.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CheckEvent{}, apperr.Conflict("check time %s already recorded for employee %d", checkTime, employeeID)
		}
		return CheckEvent{}, err
	}
	return ev, nil
}

// ListForEmployee returns one employee's events with check_time in
// [from, to), ascending. The lower bound is inclusive and the upper
// exclusive; range handlers rely on this exact boundary behavior.
func (r *Repository) ListForEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]CheckEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_id, check_time, created_at
		FROM time_logs
		WHERE employee_id = $1 AND check_time >= $2 AND check_time < $3
		ORDER BY check_time
	`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAllUpTo returns every employee's events with check_time at or
// before the instant, ordered by employee then check time. One fetch
// feeds the whole presence computation.
func (r *Repository) ListAllUpTo(ctx context.Context, at time.Time) ([]CheckEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_id, check_time, created_at
		FROM time_logs
		WHERE check_time <= $1
		ORDER BY employee_id, check_time
	`, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Delete removes a log row and reports whether it existed. Recorded
// events are otherwise immutable; this is the administrative escape
// hatch only.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_logs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanEvents(rows *sql.Rows) ([]CheckEvent, error) {
	var out []CheckEvent
	for rows.Next() {
		var ev CheckEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.CheckTime, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

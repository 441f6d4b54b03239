package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"timetracking/internal/apperr"
)

// Employee is a registered employee record.
type Employee struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists employees in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const employeeColumns = `id, first_name, last_name, created_at`

// Insert writes a new employee. A duplicate (first, last) name pair
// trips the unique constraint and comes back as a conflict.
func (r *Repository) Insert(ctx context.Context, firstName, lastName string) (Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (first_name, last_name)
		VALUES ($1, $2)
		RETURNING `+employeeColumns+`
	`, firstName, lastName)
	var e Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Employee{}, apperr.Conflict("employee %s %s already exists", firstName, lastName)
		}
		return Employee{}, err
	}
	return e, nil
}

// Get returns one employee, or nil when the id is unknown.
func (r *Repository) Get(ctx context.Context, id int64) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE id = $1
	`, id)
	var e Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Exists reports whether an employee id is known.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)
	`, id).Scan(&found)
	return found, err
}

// List returns all employees ordered by last then first name.
func (r *Repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// Search returns employees whose first or last name contains the term.
func (r *Repository) Search(ctx context.Context, term string) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		ORDER BY last_name, first_name
	`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// GetMany returns the employees for a set of ids, ordered by id.
func (r *Repository) GetMany(ctx context.Context, ids []int64) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// Update replaces the name fields of an existing employee; nil when
// the id is unknown.
func (r *Repository) Update(ctx context.Context, id int64, firstName, lastName string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE employees
		SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+employeeColumns+`
	`, id, firstName, lastName)
	var e Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("employee %s %s already exists", firstName, lastName)
		}
		return nil, err
	}
	return &e, nil
}

// Delete removes an employee and reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanEmployees(rows *sql.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// isUniqueViolation matches Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package employee

import (
	"context"
	"log"
	"strings"

	"timetracking/internal/apperr"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, firstName, lastName string) (Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, term string) ([]Employee, error)
	Update(ctx context.Context, id int64, firstName, lastName string) (*Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service coordinates employee management.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new employee.
func (s *Service) Create(ctx context.Context, firstName, lastName string) (Employee, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Employee{}, apperr.InvalidInput("first and last name required")
	}
	e, err := s.store.Insert(ctx, firstName, lastName)
	if err != nil {
		return Employee{}, err
	}
	log.Printf("employee created: id=%d name=%s %s", e.ID, e.FirstName, e.LastName)
	return e, nil
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if e == nil {
		return Employee{}, apperr.NotFound("employee", id)
	}
	return *e, nil
}

// List returns all employees ordered by name.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

// Search returns employees matching a name fragment.
func (s *Service) Search(ctx context.Context, term string) ([]Employee, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.List(ctx)
	}
	return s.store.Search(ctx, term)
}

// Update replaces an employee's name.
func (s *Service) Update(ctx context.Context, id int64, firstName, lastName string) (Employee, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Employee{}, apperr.InvalidInput("first and last name required")
	}
	e, err := s.store.Update(ctx, id, firstName, lastName)
	if err != nil {
		return Employee{}, err
	}
	if e == nil {
		return Employee{}, apperr.NotFound("employee", id)
	}
	log.Printf("employee updated: id=%d name=%s %s", e.ID, e.FirstName, e.LastName)
	return *e, nil
}

// Delete removes an employee.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("employee", id)
	}
	log.Printf("employee deleted: id=%d", id)
	return nil
}

package employee

import (
	"context"
	"testing"
	"time"

	"timetracking/internal/apperr"
)

type fakeStore struct {
	nextID    int64
	employees map[int64]Employee
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, employees: make(map[int64]Employee)}
}

func (f *fakeStore) Insert(_ context.Context, first, last string) (Employee, error) {
	for _, e := range f.employees {
		if e.FirstName == first && e.LastName == last {
			return Employee{}, apperr.Conflict("employee %s %s already exists", first, last)
		}
	}
	e := Employee{ID: f.nextID, FirstName: first, LastName: last, CreatedAt: time.Now()}
	f.employees[e.ID] = e
	f.nextID++
	return e, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (*Employee, error) {
	if e, ok := f.employees[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeStore) List(context.Context) ([]Employee, error) {
	var out []Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) Search(_ context.Context, term string) ([]Employee, error) {
	var out []Employee
	for _, e := range f.employees {
		if e.FirstName == term || e.LastName == term {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, first, last string) (*Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	e.FirstName, e.LastName = first, last
	f.employees[id] = e
	return &e, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.employees[id]; !ok {
		return false, nil
	}
	delete(f.employees, id)
	return true, nil
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" {
		t.Fatalf("unexpected employee: %+v", got)
	}
}

func TestCreateRejectsBlankNames(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Create(context.Background(), "  ", "Lovelace"); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	if _, err := svc.Create(ctx, "Ada", "Lovelace"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "Ada", "Lovelace"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Get(context.Background(), 42); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(ctx, created.ID, "Grace", "Hopper")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Grace" {
		t.Fatalf("update did not apply: %+v", updated)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

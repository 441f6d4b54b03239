package timelog

import (
	"context"
	"log"
	"time"

	"timetracking/internal/apperr"
	"timetracking/internal/employee"
	"timetracking/internal/metrics"
	"timetracking/internal/timesheet"
)

// EventStore is the persistence surface for the check-time log.
type EventStore interface {
	Insert(ctx context.Context, employeeID int64, checkTime time.Time) (CheckEvent, error)
	ListForEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]CheckEvent, error)
	ListAllUpTo(ctx context.Context, at time.Time) ([]CheckEvent, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Directory resolves employee ids to display records.
type Directory interface {
	Get(ctx context.Context, id int64) (*employee.Employee, error)
	GetMany(ctx context.Context, ids []int64) ([]employee.Employee, error)
}

// Timesheet is the worked-hours report for one employee over a range.
type Timesheet struct {
	EmployeeID   int64                    `json:"employee_id"`
	FirstName    *string                  `json:"first_name"`
	LastName     *string                  `json:"last_name"`
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	TotalHours   string                   `json:"total_hours"`
	DailyRecords []timesheet.DailySummary `json:"daily_records"`
}

// Presence is the set of employees inside at a given instant.
type Presence struct {
	Time      time.Time           `json:"time"`
	Count     int                 `json:"count"`
	Employees []employee.Employee `json:"employees"`
}

// Service derives timesheets and presence from the raw log.
type Service struct {
	events    EventStore
	employees Directory
}

// NewService creates a service over a store and directory.
func NewService(events EventStore, employees Directory) *Service {
	return &Service{events: events, employees: employees}
}

// Record appends a check event after verifying the employee exists.
// The pairing engine never sees unknown ids.
func (s *Service) Record(ctx context.Context, employeeID int64, checkTime time.Time) (CheckEvent, error) {
	if checkTime.IsZero() {
		return CheckEvent{}, apperr.InvalidInput("check time required")
	}
	if err := s.mustExist(ctx, employeeID); err != nil {
		return CheckEvent{}, err
	}
	ev, err := s.events.Insert(ctx, employeeID, checkTime)
	if err != nil {
		return CheckEvent{}, err
	}
	metrics.LogsRecorded.Inc()
	log.Printf("time log created: employee=%d check_time=%s", ev.EmployeeID, ev.CheckTime.Format(time.RFC3339))
	return ev, nil
}

// Logs returns an employee's raw events in [from, to).
func (s *Service) Logs(ctx context.Context, employeeID int64, from, to time.Time) ([]CheckEvent, error) {
	if from.After(to) {
		return nil, apperr.InvalidInput("from %s is after to %s", from, to)
	}
	if err := s.mustExist(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.events.ListForEmployee(ctx, employeeID, from, to)
}

// Timesheet derives the per-day worked-hours report for one employee.
func (s *Service) Timesheet(ctx context.Context, employeeID int64, from, to time.Time) (Timesheet, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return Timesheet{}, err
	}
	if emp == nil {
		return Timesheet{}, apperr.NotFound("employee", employeeID)
	}

	events, err := s.events.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return Timesheet{}, err
	}
	days, err := timesheet.Summarize(toEngineEvents(events), from, to)
	if err != nil {
		return Timesheet{}, err
	}
	sum := timesheet.Aggregate(days)

	out := Timesheet{
		EmployeeID:   employeeID,
		From:         from,
		To:           to,
		TotalHours:   sum.TotalHours,
		DailyRecords: sum.Days,
	}
	if len(sum.Days) > 0 {
		out.FirstName = &emp.FirstName
		out.LastName = &emp.LastName
	}
	metrics.TimesheetsComputed.Inc()
	log.Printf("timesheet: employee=%d days=%d total=%s", employeeID, len(sum.Days), sum.TotalHours)
	return out, nil
}

// Present returns everyone inside the building at the instant, with
// display details. One bulk fetch plus one directory lookup; no
// per-employee queries.
func (s *Service) Present(ctx context.Context, at time.Time) (Presence, error) {
	events, err := s.events.ListAllUpTo(ctx, at)
	if err != nil {
		return Presence{}, err
	}
	ids := timesheet.PresentIDs(toEngineEvents(events), at)

	out := Presence{Time: at, Count: len(ids), Employees: []employee.Employee{}}
	if len(ids) > 0 {
		emps, err := s.employees.GetMany(ctx, ids)
		if err != nil {
			return Presence{}, err
		}
		out.Employees = emps
		out.Count = len(emps)
	}
	metrics.PresenceQueries.Inc()
	log.Printf("present at %s: %d employees", at.Format(time.RFC3339), out.Count)
	return out, nil
}

// DeleteLog removes a recorded event (administrative only).
func (s *Service) DeleteLog(ctx context.Context, id int64) error {
	ok, err := s.events.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("time log", id)
	}
	log.Printf("time log deleted: id=%d", id)
	return nil
}

func (s *Service) mustExist(ctx context.Context, employeeID int64) error {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return apperr.NotFound("employee", employeeID)
	}
	return nil
}

func toEngineEvents(events []CheckEvent) []timesheet.Event {
	out := make([]timesheet.Event, len(events))
	for i, ev := range events {
		out[i] = timesheet.Event{EmployeeID: ev.EmployeeID, CheckTime: ev.CheckTime}
	}
	return out
}

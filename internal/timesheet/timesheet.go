// Package timesheet derives work sessions, daily summaries and
// presence from raw check-time events. Events carry no in/out flag:
// within an employee's chronological sequence the 1st, 3rd, 5th...
// event is a check-in and the 2nd, 4th, 6th... a check-out.
package timesheet

import (
	"time"

	"timetracking/internal/apperr"
)

// Event is a single recorded check time for one employee.
type Event struct {
	EmployeeID int64
	CheckTime  time.Time
}

// DailySummary describes one calendar day of an employee's timesheet.
// Minutes holds the closed-session total; HoursWorked is its HH:MM
// rendering and is nil when no session closed that day.
type DailySummary struct {
	Date         time.Time  `json:"date"`
	HoursWorked  *string    `json:"hours_worked"`
	FirstEntry   *time.Time `json:"first_entry"`
	LastExit     *time.Time `json:"last_exit"`
	TotalEntries int        `json:"total_entries"`
	Minutes      int        `json:"-"`
}

// Summarize pairs an employee's events into per-day summaries.
// The input must be sorted ascending by check time, unique, and
// pre-filtered to check_time >= from and < to. A day with an odd
// number of events ends with an open session that contributes no
// worked time. Every day with at least one event yields a record.
func Summarize(events []Event, from, to time.Time) ([]DailySummary, error) {
	if from.After(to) {
		return nil, apperr.InvalidInput("from %s is after to %s", from, to)
	}
	for i := 1; i < len(events); i++ {
		if !events[i].CheckTime.After(events[i-1].CheckTime) {
			return nil, apperr.InvalidInput("events out of order at index %d", i)
		}
	}

	var days []DailySummary
	for start := 0; start < len(events); {
		day := dateOf(events[start].CheckTime)
		end := start
		for end < len(events) && dateOf(events[end].CheckTime).Equal(day) {
			end++
		}
		days = append(days, summarizeDay(day, events[start:end]))
		start = end
	}
	return days, nil
}

// summarizeDay pairs one day's events by position parity.
func summarizeDay(day time.Time, events []Event) DailySummary {
	sum := DailySummary{
		Date:         day,
		TotalEntries: len(events),
	}
	first := events[0].CheckTime
	sum.FirstEntry = &first

	minutes := 0
	closed := len(events) / 2
	for k := 0; k < closed; k++ {
		in := events[2*k].CheckTime
		out := events[2*k+1].CheckTime
		minutes += int(out.Sub(in) / time.Minute)
	}
	if closed > 0 {
		last := events[2*closed-1].CheckTime
		sum.LastExit = &last
		sum.Minutes = minutes
		hw := FormatDaily(minutes)
		sum.HoursWorked = &hw
	}
	return sum
}

// dateOf truncates a timestamp to its naive calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

package timesheet

import (
	"sort"
	"time"
)

// IsPresent reports whether an employee is inside at the given
// instant. The input is that employee's full event history in
// ascending order; the employee is present iff an odd number of
// events occurred at or before the instant. Sessions may span
// midnight, so the whole history counts, not just the query day.
func IsPresent(events []Event, at time.Time) bool {
	n := 0
	for _, ev := range events {
		if ev.CheckTime.After(at) {
			break
		}
		n++
	}
	return n%2 == 1
}

// PresentIDs evaluates presence across many employees in one pass.
// The input holds every employee's events ordered by employee then
// check time, as a bulk store fetch returns them. IDs come back
// sorted ascending so repeated calls are deterministic.
func PresentIDs(events []Event, at time.Time) []int64 {
	counts := make(map[int64]int)
	for _, ev := range events {
		if ev.CheckTime.After(at) {
			continue
		}
		counts[ev.EmployeeID]++
	}
	ids := make([]int64, 0, len(counts))
	for id, n := range counts {
		if n%2 == 1 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

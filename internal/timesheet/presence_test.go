package timesheet

import (
	"testing"
	"time"
)

func TestIsPresentTogglesWithParity(t *testing.T) {
	events := evts(at(8, 9, 0), at(8, 12, 0))
	cases := []struct {
		when time.Time
		want bool
	}{
		{at(8, 8, 0), false},
		{at(8, 9, 0), true}, // inclusive boundary
		{at(8, 10, 0), true},
		{at(8, 12, 0), false}, // inclusive boundary on checkout
		{at(8, 14, 0), false},
	}
	for _, c := range cases {
		if got := IsPresent(events, c.when); got != c.want {
			t.Fatalf("at %v: expected %v, got %v", c.when, c.want, got)
		}
	}
}

func TestIsPresentOpenCheckIn(t *testing.T) {
	events := evts(at(8, 9, 0))
	if !IsPresent(events, at(8, 14, 0)) {
		t.Fatal("single check-in must read as present")
	}
}

func TestIsPresentAcrossMidnight(t *testing.T) {
	// checked in the evening of the 7th, never checked out
	events := evts(at(7, 22, 0))
	if !IsPresent(events, at(8, 6, 0)) {
		t.Fatal("open session must survive the date boundary")
	}
}

func TestIsPresentNoEvents(t *testing.T) {
	if IsPresent(nil, at(8, 12, 0)) {
		t.Fatal("no events must read as absent")
	}
}

func TestPresentIDs(t *testing.T) {
	events := []Event{
		{EmployeeID: 1, CheckTime: at(8, 9, 0)},
		{EmployeeID: 1, CheckTime: at(8, 12, 0)}, // 1 left
		{EmployeeID: 2, CheckTime: at(8, 10, 0)}, // 2 still in
		{EmployeeID: 3, CheckTime: at(7, 22, 0)}, // 3 in since yesterday
		{EmployeeID: 4, CheckTime: at(8, 15, 0)}, // after the query instant
	}
	ids := PresentIDs(events, at(8, 14, 0))
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Fatalf("expected [2 3], got %v", ids)
	}
}

func TestPresentIDsDeterministic(t *testing.T) {
	events := []Event{
		{EmployeeID: 9, CheckTime: at(8, 9, 0)},
		{EmployeeID: 4, CheckTime: at(8, 9, 30)},
		{EmployeeID: 7, CheckTime: at(8, 10, 0)},
	}
	first := PresentIDs(events, at(8, 11, 0))
	for i := 0; i < 5; i++ {
		again := PresentIDs(events, at(8, 11, 0))
		if len(again) != len(first) {
			t.Fatalf("unstable result: %v vs %v", first, again)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("unstable result: %v vs %v", first, again)
			}
		}
	}
	if first[0] != 4 || first[1] != 7 || first[2] != 9 {
		t.Fatalf("expected sorted ids, got %v", first)
	}
}

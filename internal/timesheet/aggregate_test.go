package timesheet

import "testing"

func TestAggregateMultiDay(t *testing.T) {
	mins := []int{480, 450, 540, 510, 600} // 08:00 07:30 09:00 08:30 10:00
	days := make([]DailySummary, len(mins))
	for i, m := range mins {
		hw := FormatDaily(m)
		days[i] = DailySummary{Date: at(8+i, 0, 0), Minutes: m, HoursWorked: &hw, TotalEntries: 2}
	}
	sum := Aggregate(days)
	if sum.TotalHours != "43:00" {
		t.Fatalf("expected 43:00, got %q", sum.TotalHours)
	}
	if sum.TotalMinutes != 2580 {
		t.Fatalf("expected 2580 minutes, got %d", sum.TotalMinutes)
	}
	if len(sum.Days) != 5 {
		t.Fatalf("expected 5 daily records, got %d", len(sum.Days))
	}
}

func TestAggregateTreatsOpenDaysAsZero(t *testing.T) {
	hw := FormatDaily(90)
	days := []DailySummary{
		{Date: at(8, 0, 0), Minutes: 90, HoursWorked: &hw, TotalEntries: 2},
		{Date: at(9, 0, 0), TotalEntries: 1}, // open day, no closed pair
	}
	sum := Aggregate(days)
	if sum.TotalHours != "1:30" {
		t.Fatalf("expected 1:30, got %q", sum.TotalHours)
	}
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.TotalHours != "0:00" {
		t.Fatalf("expected 0:00, got %q", sum.TotalHours)
	}
	if sum.Days == nil || len(sum.Days) != 0 {
		t.Fatalf("expected empty non-nil days, got %v", sum.Days)
	}
}

func TestClockRoundTrip(t *testing.T) {
	cases := []int{0, 1, 59, 60, 480, 510, 2580, 24*60 + 30}
	for _, m := range cases {
		for _, s := range []string{FormatDaily(m), FormatTotal(m)} {
			got, err := ParseClock(s)
			if err != nil {
				t.Fatalf("parse %q: %v", s, err)
			}
			if got != m {
				t.Fatalf("round trip %q: expected %d, got %d", s, m, got)
			}
		}
	}
}

func TestParseClockRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "8", "8:5", "8:60", "-1:00", "a:bc", "08:0x"} {
		if _, err := ParseClock(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

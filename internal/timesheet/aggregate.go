package timesheet

// Summary totals a sequence of daily records over a date range.
type Summary struct {
	TotalMinutes int
	TotalHours   string
	Days         []DailySummary
}

// Aggregate sums daily records into a range total. Days without a
// closed session count as zero. Empty input yields "0:00" and no
// days; it never errors.
func Aggregate(days []DailySummary) Summary {
	total := 0
	for _, d := range days {
		total += d.Minutes
	}
	out := Summary{
		TotalMinutes: total,
		TotalHours:   FormatTotal(total),
		Days:         days,
	}
	if out.Days == nil {
		out.Days = []DailySummary{}
	}
	return out
}

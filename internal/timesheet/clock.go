package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"timetracking/internal/apperr"
)

// FormatDaily renders minutes as zero-padded "HH:MM" for daily
// records, e.g. 480 -> "08:00".
func FormatDaily(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatTotal renders minutes as "H:MM" with an unpadded hour for
// range totals, e.g. 2580 -> "43:00", 0 -> "0:00".
func FormatTotal(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// ParseClock reads either clock rendering back into minutes.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, apperr.InvalidInput("malformed clock value %q", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, apperr.InvalidInput("malformed clock value %q", s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 || len(m) != 2 {
		return 0, apperr.InvalidInput("malformed clock value %q", s)
	}
	return hours*60 + mins, nil
}

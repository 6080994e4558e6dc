package schema

import "time"

// DayFormat is the calendar-day grouping key layout. Grouping uses the
// timestamp's own date component (the literal date prefix of the stored
// ISO timestamp), not any wall-clock timezone boundary.
const DayFormat = "2006-01-02"

// DayOf returns the calendar-day grouping key for a timestamp.
func DayOf(t time.Time) string {
	return t.Format(DayFormat)
}

package analytics

import (
	"strings"
	"time"
)

// Timeframe is a relative window used to bound aggregation queries.
type Timeframe string

const (
	Week    Timeframe = "week"
	Month   Timeframe = "month"
	Quarter Timeframe = "quarter"
	Year    Timeframe = "year"
)

// ParseTimeframe maps a query keyword to a Timeframe. Unknown or empty input
// falls back to Month.
func ParseTimeframe(raw string) Timeframe {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(raw))); tf {
	case Week, Month, Quarter, Year:
		return tf
	default:
		return Month
	}
}

// Start returns the beginning of the window ending at now.
func (t Timeframe) Start(now time.Time) time.Time {
	switch t {
	case Week:
		return now.AddDate(0, 0, -7)
	case Quarter:
		return now.AddDate(0, -3, 0)
	case Year:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// StartDate is shorthand for ParseTimeframe(raw).Start(now).
func StartDate(raw string, now time.Time) time.Time {
	return ParseTimeframe(raw).Start(now)
}

// Label returns the human readable period used in report headers.
func Label(raw string) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	return "Last Month"
}

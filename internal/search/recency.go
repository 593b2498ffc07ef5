package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recency windows used by the datePosted filter. A record matches a window
// when its age falls inside it, so anything matching "24h" also matches "3d".
var recencyWindows = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"3d":  3 * 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// RecencyWindow resolves a datePosted bucket label to its duration.
func RecencyWindow(bucket string) (time.Duration, bool) {
	d, ok := recencyWindows[strings.ToLower(strings.TrimSpace(bucket))]
	return d, ok
}

// PostedAge parses a human-readable recency string ("2 days ago",
// "just now", "3 weeks ago") into an approximate age. Strings it cannot
// interpret report ok=false and are excluded from recency filtering.
func PostedAge(posted string) (time.Duration, bool) {
	s := strings.ToLower(strings.TrimSpace(posted))
	switch s {
	case "":
		return 0, false
	case "just now", "today":
		return 0, true
	case "yesterday":
		return 24 * time.Hour, true
	}

	fields := strings.Fields(strings.TrimSuffix(s, " ago"))
	if len(fields) != 2 {
		return 0, false
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, false
	}

	unit := strings.TrimSuffix(fields[1], "s")
	switch unit {
	case "minute", "min":
		return time.Duration(n) * time.Minute, true
	case "hour", "hr":
		return time.Duration(n) * time.Hour, true
	case "day":
		return time.Duration(n) * 24 * time.Hour, true
	case "week":
		return time.Duration(n) * 7 * 24 * time.Hour, true
	case "month":
		return time.Duration(n) * 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// FormatPostedAge renders an age as the recency string the Job model
// carries, matching the vocabulary PostedAge understands.
func FormatPostedAge(age time.Duration) string {
	switch {
	case age < time.Hour:
		return "just now"
	case age < 24*time.Hour:
		return plural(int(age.Hours()), "hour")
	case age < 7*24*time.Hour:
		return plural(int(age.Hours()/24), "day")
	case age < 30*24*time.Hour:
		return plural(int(age.Hours()/(24*7)), "week")
	default:
		return plural(int(age.Hours()/(24*30)), "month")
	}
}

func plural(n int, unit string) string {
	if n <= 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

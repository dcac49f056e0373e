// Package utils holds small formatting helpers shared by the CLI and TUI.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// publishDateLayout is the locator's date column format.
const publishDateLayout = "20060102"

// ParsePublishDate parses a locator date such as "20240423".
// Build serial suffixes like "20240423.1" are ignored.
func ParsePublishDate(s string) (time.Time, bool) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(publishDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatPublishDate renders a locator date relative to now.
// Unparseable dates are returned unchanged.
func FormatPublishDate(s string) string {
	t, ok := ParsePublishDate(s)
	if !ok {
		return s
	}
	return FormatTimeAgo(t)
}

// FormatTimeAgo returns a human-readable relative time.
// Anything older than four weeks is shown as a calendar date.
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := now.Sub(t)
	switch {
	case d < 0:
		return "in the future"
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 28*24*time.Hour:
		return plural(int(d/(7*24*time.Hour)), "week")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

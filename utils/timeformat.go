package utils

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders how long ago a timestamp occurred, matching the
// chat list display: "now" under a minute, then minute/hour/day buckets.
func FormatRelativeTime(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

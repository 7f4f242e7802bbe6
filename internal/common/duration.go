package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDurationRemaining formats a duration in human readable format (1 day, 2 hours, 3 minutes)
func FormatDurationRemaining(d time.Duration) string {
	if d <= 0 {
		return "0 seconds"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}

	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}

	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}

	// Seconds only matter once we're under a minute
	if seconds > 0 && days == 0 && hours == 0 && minutes == 0 {
		parts = append(parts, plural(seconds, "second"))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}

	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

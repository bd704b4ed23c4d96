package game

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as MM:SS, or H:MM:SS from one hour up. Fractions of
// a second are truncated and negative durations render as 00:00.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

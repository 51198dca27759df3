package board

import (
	"fmt"
	"time"
)

// TimeSince renders the age of created relative to now the way the board shows it.
func TimeSince(created, now time.Time) string {
	diff := now.Sub(created)
	switch {
	case diff < time.Hour:
		minutes := int(diff / time.Minute)
		if minutes > 0 {
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		return "just now"
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff/time.Hour))
	default:
		return fmt.Sprintf("%d days ago", int(diff/(24*time.Hour)))
	}
}

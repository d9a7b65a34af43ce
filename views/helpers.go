package views

import (
	"fmt"
	"time"
)

// readMins formats a reading time duration as "N min read" for listings.
func readMins(d time.Duration) string {
	mins := int(d.Minutes())
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min read", mins)
}

package domain

import (
	"fmt"
	"time"
)

// CycleStart marks the first month of a detected easing cycle.
type CycleStart struct {
	time.Time
}

// CycleStyle holds display attributes paired with a cycle by position.
type CycleStyle struct {
	Color string
}

// CycleMarker is a cycle start annotated for presentation.
type CycleMarker struct {
	Index int // 1-based, oldest first
	Start time.Time
	End   time.Time // Start + window months
	Label string    // "Cycle 1 (Jan 2001)"
	Style CycleStyle
}

func CycleLabel(index int, start time.Time) string {
	return fmt.Sprintf("Cycle %d (%s)", index, start.Format("Jan 2006"))
}

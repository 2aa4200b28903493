package domain

import "fmt"

type LagOutcome string

const (
	LagMeasured         LagOutcome = "measured"
	LagExceedsWindow    LagOutcome = "exceeds_window"
	LagInsufficientData LagOutcome = "insufficient_data"
)

// Lag is the pass-through lag of a series after a cycle start.
// Months is only meaningful when Outcome is LagMeasured.
type Lag struct {
	Outcome   LagOutcome
	Months    int
	Lookahead int
}

func (l Lag) String() string {
	switch l.Outcome {
	case LagMeasured:
		return fmt.Sprintf("%d mo", l.Months)
	case LagExceedsWindow:
		return fmt.Sprintf(">%d mo", l.Lookahead)
	default:
		return "n/a"
	}
}

type LagResult struct {
	Cycle  int // 1-based cycle index
	Label  string
	Series string
	Lag    Lag
}

type GrowthResult struct {
	Cycle     int
	Label     string
	Series    string
	Percent   float64
	Available bool
}

func (g GrowthResult) String() string {
	if !g.Available {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", g.Percent)
}

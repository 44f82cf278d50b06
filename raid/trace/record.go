// Package trace provides solve-decision recording for route plan analysis.
// It has no dependencies on raid/ and stores pure data types.
package trace

// SolveRecord captures one target solve inside one route attempt.
type SolveRecord struct {
	RouteIndex    int
	Position      int // position of the target within the route order
	Target        string
	Strategy      string
	Status        string
	Eligible      int
	Chosen        int
	Dealt         float64
	Threshold     float64
	OverkillRatio float64
}

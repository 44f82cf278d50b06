package raid

import (
	"time"

	"github.com/hitroute/hitroute/raid/trace"
)

// PlanResult bundles all outputs from a plan run.
type PlanResult struct {
	Ranked    []*Route            // best-first, deduplicated
	Evaluated int                 // number of orderings evaluated (n!)
	Trace     *trace.PlanTrace    // nil if trace level is "none"
	Summary   *trace.TraceSummary // nil if trace level is "none"

	WallTime time.Duration
}

// NewPlanResult constructs a PlanResult. tr and summary may be nil.
func NewPlanResult(ranked []*Route, evaluated int, tr *trace.PlanTrace, summary *trace.TraceSummary, wallTime time.Duration) *PlanResult {
	return &PlanResult{
		Ranked:    ranked,
		Evaluated: evaluated,
		Trace:     tr,
		Summary:   summary,
		WallTime:  wallTime,
	}
}

// Best returns the top-ranked route, or nil if nothing was evaluated.
func (r *PlanResult) Best() *Route {
	if len(r.Ranked) == 0 {
		return nil
	}
	return r.Ranked[0]
}

// Top returns the best route plus up to alternatives runners-up.
func (r *PlanResult) Top(alternatives int) []*Route {
	n := min(len(r.Ranked), max(alternatives, 0)+1)
	return r.Ranked[:n]
}

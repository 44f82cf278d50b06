package raid

import (
	"errors"

	"github.com/hitroute/hitroute/raid/trace"
)

// Route is one full assignment of hits to all targets under one visit order.
type Route struct {
	Index   int      // permutation index; stable tie-break
	Order   []string // target names in visit order
	Targets []*TargetState

	TotalHits     int
	TotalOverkill float64
	TotalHealth   float64

	Rank int // 1-based, set by SelectBest
}

// Complete reports whether every target on the route was cleared.
func (r *Route) Complete() bool {
	for _, t := range r.Targets {
		if !t.Cleared() {
			return false
		}
	}
	return true
}

// Err joins the failure markers of every target that was not cleared.
func (r *Route) Err() error {
	var errs []error
	for _, t := range r.Targets {
		if err := t.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Target returns the state of the named target, or nil.
func (r *Route) Target(name string) *TargetState {
	for _, t := range r.Targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// OverkillPercent is the route's total overkill relative to its total health.
func (r *Route) OverkillPercent() float64 {
	if r.TotalHealth == 0 {
		return 0
	}
	return r.TotalOverkill / r.TotalHealth * 100
}

// SolveRecords converts the per-target outcomes into trace records.
func (r *Route) SolveRecords() []trace.SolveRecord {
	out := make([]trace.SolveRecord, len(r.Targets))
	for i, t := range r.Targets {
		out[i] = trace.SolveRecord{
			RouteIndex:    r.Index,
			Position:      i,
			Target:        t.Name,
			Strategy:      string(t.Strategy),
			Status:        string(t.Status),
			Eligible:      len(t.Eligible),
			Chosen:        len(t.Chosen),
			Dealt:         t.Dealt,
			Threshold:     t.Threshold,
			OverkillRatio: t.OverkillRatio,
		}
	}
	return out
}

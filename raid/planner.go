package raid

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hitroute/hitroute/raid/trace"
)

// Planner evaluates every target ordering against one roster.
// It holds no per-route state, so EvaluateRoute is safe for concurrent use.
type Planner struct {
	roster *Roster
	cfg    PlannerConfig
	opts   SolveOptions
}

// NewPlanner validates cfg and binds it to roster.
func NewPlanner(roster *Roster, cfg PlannerConfig) (*Planner, error) {
	if roster == nil {
		return nil, fmt.Errorf("planner requires a roster")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}
	if n := len(roster.Targets()); n > cfg.MaxTargets {
		return nil, fmt.Errorf("%d targets exceed max_targets=%d (%d! routes)", n, cfg.MaxTargets, n)
	}
	return &Planner{roster: roster, cfg: cfg, opts: cfg.SolveOptions()}, nil
}

// Config returns the validated configuration.
func (p *Planner) Config() PlannerConfig { return p.cfg }

// Roster returns the shared record index.
func (p *Planner) Roster() *Roster { return p.roster }

// attempt is the private, freshly-built state of one route evaluation.
type attempt struct {
	roster        *Roster
	scope         ConflictScope
	ledger        *Ledger
	consumed      []*DamageRecord
	consumedIDs   map[int]bool
	playerWeights map[int]float64
}

func (p *Planner) newAttempt() *attempt {
	return &attempt{
		roster:        p.roster,
		scope:         p.opts.Scope,
		ledger:        p.roster.NewLedger(p.cfg.HitBudget),
		consumedIDs:   make(map[int]bool),
		playerWeights: playerWeights(p.roster),
	}
}

// eligible lists target's records, walked through each player's ledger entry, that
// are not consumed and do not conflict with any consumed record. Players without
// hits left contribute nothing. The result is in pool order.
func (a *attempt) eligible(target string) []Candidate {
	var out []Candidate
	for _, name := range a.roster.Players() {
		entry := a.ledger.Entry(name)
		if entry == nil || entry.HitsLeft <= 0 {
			continue
		}
		for _, rec := range entry.RecordsByTarget[target] {
			if a.consumedIDs[rec.ID] || a.conflictsConsumed(rec) {
				continue
			}
			out = append(out, Candidate{DamageRecord: rec, PlayerWeight: a.playerWeights[rec.ID]})
		}
	}
	slices.SortFunc(out, func(x, y Candidate) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

func (a *attempt) conflictsConsumed(rec *DamageRecord) bool {
	for _, used := range a.consumed {
		if a.scope.Conflicts(used, rec) {
			return true
		}
	}
	return false
}

// commit spends one hit per chosen record and marks it consumed.
func (a *attempt) commit(t *TargetState) error {
	t.HitsLeftAfter = make([]int, len(t.Chosen))
	for i, rec := range t.Chosen {
		left, err := a.ledger.Spend(rec.Player)
		if err != nil {
			return fmt.Errorf("committing %s: %w", t.Name, err)
		}
		a.consumed = append(a.consumed, rec)
		a.consumedIDs[rec.ID] = true
		t.HitsLeftAfter[i] = left
	}
	return nil
}

// EvaluateRoute solves every target in the given order (indices into
// Roster.Targets) with fresh ledger and consumption state. It fails only if a
// selection would overspend a player's budget.
func (p *Planner) EvaluateRoute(index int, order []int) (*Route, error) {
	a := p.newAttempt()
	targets := p.roster.Targets()
	route := &Route{
		Index:   index,
		Order:   make([]string, len(order)),
		Targets: make([]*TargetState, len(order)),
	}
	for pos, ti := range order {
		t := newTargetState(targets[ti], p.cfg.ErrorMargin)
		t.Eligible = a.eligible(t.Name)
		refreshTargetWeights(t.Eligible)

		res := Solve(t, a.ledger, p.opts)
		t.apply(res)
		if err := a.commit(t); err != nil {
			return nil, fmt.Errorf("route %d: %w", index, err)
		}

		logrus.Debugf("route %d: %s solved via %s, %s (%d hits, %.0f / %.0f)",
			index, t.Name, t.Strategy, t.Status, len(t.Chosen), t.Dealt, t.Threshold)

		route.Order[pos] = t.Name
		route.Targets[pos] = t
		route.TotalHits += len(t.Chosen)
		route.TotalOverkill += t.OverkillAmount
		route.TotalHealth += t.Threshold
	}
	return route, nil
}

// Enumerate evaluates all n! orderings and returns them in permutation order.
// With Workers > 1 the evaluations fan out over a bounded pool; the result is
// identical to the serial run.
func (p *Planner) Enumerate(ctx context.Context) ([]*Route, error) {
	n := len(p.roster.Targets())
	if p.cfg.Workers <= 1 {
		routes := make([]*Route, 0, Factorial(n))
		idx := 0
		for perm := range Permutations(n) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			route, err := p.EvaluateRoute(idx, slices.Clone(perm))
			if err != nil {
				return nil, err
			}
			routes = append(routes, route)
			idx++
		}
		return routes, nil
	}
	return p.enumerateParallel(ctx, n)
}

func (p *Planner) enumerateParallel(ctx context.Context, n int) ([]*Route, error) {
	type job struct {
		idx   int
		order []int
	}
	routes := make([]*Route, Factorial(n))
	errs := make([]error, len(routes))
	jobs := make(chan job)
	numWorkers := min(p.cfg.Workers, len(routes))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				routes[j.idx], errs[j.idx] = p.EvaluateRoute(j.idx, j.order)
			}
		}()
	}

	var err error
	idx := 0
produce:
	for perm := range Permutations(n) {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break produce
		case jobs <- job{idx: idx, order: slices.Clone(perm)}:
		}
		idx++
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return routes, nil
}

// Plan enumerates, ranks and (optionally) traces every route.
func (p *Planner) Plan(ctx context.Context) (*PlanResult, error) {
	start := time.Now()
	routes, err := p.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating routes: %w", err)
	}
	ranked := SelectBest(routes, p.cfg.HitSavingTolerance)

	var tr *trace.PlanTrace
	var summary *trace.TraceSummary
	if level := trace.TraceLevel(p.cfg.TraceLevel); level.Enabled() {
		tr = trace.NewPlanTrace(trace.TraceConfig{Level: level})
		for _, r := range routes {
			tr.RecordAll(r.SolveRecords())
		}
		summary = trace.Summarize(tr)
	}

	result := NewPlanResult(ranked, len(routes), tr, summary, time.Since(start))
	if best := result.Best(); best != nil {
		logrus.Infof("evaluated %d routes over %d targets, %d unique; best: %d hits, overkill %.0f, complete=%v",
			len(routes), len(p.roster.Targets()), len(ranked), best.TotalHits, best.TotalOverkill, best.Complete())
	}
	return result, nil
}

package raid

import (
	"cmp"
	"slices"
)

// Default solver tuning.
const (
	DefaultMaxOverkillRatio  = 1.05
	DefaultLastHitsAllowance = 1.5
)

// SolveOptions tunes the combination solver.
type SolveOptions struct {
	// MaxOverkillRatio is the ceiling on (sum / threshold) for the lookahead pair.
	MaxOverkillRatio float64
	// LastHitsAllowance bounds the fallback packer at remainingHealth × allowance.
	LastHitsAllowance float64
	Scope             ConflictScope
}

// SolveResult is the selection for one target. Chosen is ordered ascending by damage.
type SolveResult struct {
	Chosen   []*DamageRecord
	Sum      float64
	Status   TargetStatus
	Strategy SolveStrategy
}

// selection is the solver's working set: chosen records plus their running sum.
type selection struct {
	recs  []*DamageRecord
	sum   float64
	scope ConflictScope
}

func (s *selection) add(rec *DamageRecord) {
	s.recs = append(s.recs, rec)
	s.sum += rec.Damage
}

func (s *selection) has(rec *DamageRecord) bool {
	for _, r := range s.recs {
		if r.ID == rec.ID {
			return true
		}
	}
	return false
}

func (s *selection) hasPlayer(player string) bool {
	for _, r := range s.recs {
		if r.Player == player {
			return true
		}
	}
	return false
}

func (s *selection) conflicts(rec *DamageRecord) bool {
	for _, r := range s.recs {
		if s.scope.Conflicts(r, rec) {
			return true
		}
	}
	return false
}

// admits reports whether rec may join the selection at all.
func (s *selection) admits(rec *DamageRecord, budget BudgetView) bool {
	return budget.HitsLeft(rec.Player) > 0 && !s.hasPlayer(rec.Player) && !s.conflicts(rec)
}

// Solve selects a damage-minimal subset of target.Eligible that reaches
// target.Threshold. It is a bounded greedy scan with one-step lookahead and a
// last-hits fallback; it does not mutate the target or the budget.
func Solve(target *TargetState, budget BudgetView, opts SolveOptions) SolveResult {
	threshold := target.Threshold
	cands := slices.Clone(target.Eligible)
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		if c := cmp.Compare(b.Damage, a.Damage); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if target.EligibleDamage() < threshold {
		return SolveResult{Status: StatusUnreachable, Strategy: StrategyNone}
	}

	sel := &selection{scope: opts.Scope}
	for i, c := range cands {
		if !sel.admits(c.DamageRecord, budget) {
			continue
		}
		if sel.sum+c.Damage <= threshold {
			next := peekNext(cands, i+1, budget)
			if next == nil || sel.sum+c.Damage+next.Damage <= threshold {
				sel.add(c.DamageRecord)
			} else {
				if next.Player == c.Player || sel.hasPlayer(next.Player) ||
					sel.conflicts(next.DamageRecord) || opts.Scope.Conflicts(c.DamageRecord, next.DamageRecord) {
					continue
				}
				ratio := (sel.sum + c.Damage + next.Damage) / threshold
				if ratio < opts.MaxOverkillRatio {
					sel.add(c.DamageRecord)
					sel.add(next.DamageRecord)
					return finish(sel, threshold, StrategyPair)
				}
				if ratio > opts.MaxOverkillRatio {
					continue
				}
				// ratio sits exactly on the ceiling: widen to the remainder.
				remainder := fallbackRemainder(cands, sel, budget)
				for _, rec := range lastHits(remainder, threshold-sel.sum, opts) {
					sel.add(rec)
				}
				return finish(sel, threshold, StrategyFallback)
			}
		}
		if sel.sum >= threshold {
			return finish(sel, threshold, StrategyGreedy)
		}
	}
	return finish(sel, threshold, StrategyExhausted)
}

// peekNext returns the first candidate at or after from whose owner still has budget.
func peekNext(cands []Candidate, from int, budget BudgetView) *Candidate {
	for j := from; j < len(cands); j++ {
		if budget.HitsLeft(cands[j].Player) > 0 {
			return &cands[j]
		}
	}
	return nil
}

// fallbackRemainder collects the candidates that could still join sel, ordered by
// damage desc, then player weight asc, then target weight desc.
func fallbackRemainder(cands []Candidate, sel *selection, budget BudgetView) []Candidate {
	var rem []Candidate
	for _, c := range cands {
		if sel.has(c.DamageRecord) || !sel.admits(c.DamageRecord, budget) {
			continue
		}
		rem = append(rem, c)
	}
	slices.SortStableFunc(rem, func(a, b Candidate) int {
		if c := cmp.Compare(b.Damage, a.Damage); c != 0 {
			return c
		}
		if c := cmp.Compare(a.PlayerWeight, b.PlayerWeight); c != 0 {
			return c
		}
		return cmp.Compare(b.TargetWeight, a.TargetWeight)
	})
	return rem
}

// lastHits greedily packs the remainder while the fallback sum stays within
// health × LastHitsAllowance, stopping once health is exceeded.
func lastHits(remainder []Candidate, health float64, opts SolveOptions) []*DamageRecord {
	picked := &selection{scope: opts.Scope}
	limit := health * opts.LastHitsAllowance
	for _, c := range remainder {
		if picked.hasPlayer(c.Player) || picked.conflicts(c.DamageRecord) {
			continue
		}
		if picked.sum+c.Damage <= limit {
			picked.add(c.DamageRecord)
			if picked.sum > health {
				break
			}
		}
	}
	return picked.recs
}

// finish orders the selection smallest hit first and derives the status.
func finish(sel *selection, threshold float64, strategy SolveStrategy) SolveResult {
	chosen := slices.Clone(sel.recs)
	slices.Reverse(chosen)
	slices.SortStableFunc(chosen, func(a, b *DamageRecord) int {
		return cmp.Compare(a.Damage, b.Damage)
	})
	status := StatusCleared
	if sel.sum < threshold {
		status = StatusShort
	}
	return SolveResult{Chosen: chosen, Sum: sel.sum, Status: status, Strategy: strategy}
}

package raid

import "math"

// Candidate is a record considered for one target during one attempt.
// The weights are advisory tie-break signals and are not part of record identity.
type Candidate struct {
	*DamageRecord
	PlayerWeight float64 // relative to the owner's records across all targets
	TargetWeight float64 // relative to all candidates eligible against the target
}

// TargetStatus is the outcome of solving one target.
type TargetStatus string

const (
	// StatusPending is the state before the target has been solved.
	StatusPending TargetStatus = ""
	// StatusCleared means the chosen damage meets the threshold.
	StatusCleared TargetStatus = "cleared"
	// StatusUnreachable means the eligible damage could never meet the threshold.
	StatusUnreachable TargetStatus = "unreachable"
	// StatusShort means damage was available but the solver's selection fell below the threshold.
	StatusShort TargetStatus = "short"
)

// SolveStrategy names the solver branch that produced a selection.
type SolveStrategy string

const (
	StrategyNone      SolveStrategy = "none"      // unreachable, nothing selected
	StrategyGreedy    SolveStrategy = "greedy"    // running sum met the threshold exactly
	StrategyPair      SolveStrategy = "pair"      // lookahead pair finished within the overkill ceiling
	StrategyFallback  SolveStrategy = "fallback"  // last-hits packer completed the selection
	StrategyExhausted SolveStrategy = "exhausted" // scan ran out of candidates
)

// TargetState is one target inside one route attempt.
type TargetState struct {
	Name       string
	BaseHealth float64
	Threshold  float64 // BaseHealth inflated by the error margin

	Eligible []Candidate

	Chosen        []*DamageRecord // ascending damage
	HitsLeftAfter []int           // owner's budget right after each chosen hit was committed
	Status        TargetStatus
	Strategy      SolveStrategy

	Dealt          float64
	OverkillAmount float64
	OverkillRatio  float64
}

func newTargetState(spec TargetSpec, errorMargin float64) *TargetState {
	return &TargetState{
		Name:       spec.Name,
		BaseHealth: spec.Health,
		Threshold:  spec.Health * errorMargin,
	}
}

// EligibleDamage sums the damage of every eligible candidate.
func (t *TargetState) EligibleDamage() float64 {
	total := 0.0
	for _, c := range t.Eligible {
		total += c.Damage
	}
	return total
}

// apply stores a solver result and derives the overkill metrics.
// Overkill is max(dealt - threshold, 0).
func (t *TargetState) apply(res SolveResult) {
	t.Chosen = res.Chosen
	t.Status = res.Status
	t.Strategy = res.Strategy
	t.Dealt = res.Sum
	t.OverkillAmount = math.Max(res.Sum-t.Threshold, 0)
	t.OverkillRatio = t.OverkillAmount / t.Threshold
}

// Cleared reports whether the target's threshold was met.
func (t *TargetState) Cleared() bool { return t.Status == StatusCleared }

// Err returns the failure marker for an unsolved target, or nil.
func (t *TargetState) Err() error {
	switch t.Status {
	case StatusUnreachable:
		return &UnreachableTargetError{Target: t.Name, Available: t.EligibleDamage(), Threshold: t.Threshold}
	case StatusShort:
		return &ShortTargetError{Target: t.Name, Dealt: t.Dealt, Threshold: t.Threshold}
	default:
		return nil
	}
}

package raid

import "math"

// minMaxWeights maps each damage to (d - min) / (max - min).
// All-equal inputs (including a single value) map to 1.0.
func minMaxWeights(damages []float64) []float64 {
	weights := make([]float64, len(damages))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range damages {
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	for i, d := range damages {
		if hi == lo {
			weights[i] = 1.0
		} else {
			weights[i] = (d - lo) / (hi - lo)
		}
	}
	return weights
}

// playerWeights computes, for every indexed record, its weight relative to the
// owner's other records across all targets. Keyed by record ID.
func playerWeights(r *Roster) map[int]float64 {
	out := make(map[int]float64, len(r.records))
	for _, name := range r.players {
		recs := r.PlayerRecords(name)
		damages := make([]float64, len(recs))
		for i, rec := range recs {
			damages[i] = rec.Damage
		}
		for i, w := range minMaxWeights(damages) {
			out[recs[i].ID] = w
		}
	}
	return out
}

// refreshTargetWeights recomputes TargetWeight across the candidates currently
// eligible against one target.
func refreshTargetWeights(cands []Candidate) {
	damages := make([]float64, len(cands))
	for i := range cands {
		damages[i] = cands[i].Damage
	}
	for i, w := range minMaxWeights(damages) {
		cands[i].TargetWeight = w
	}
}

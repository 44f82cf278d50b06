package raid

import "slices"

// Outranks reports whether route a should be ranked ahead of route b.
//
// Incomplete routes never outrank complete ones. Between routes of the same
// completeness, saving a hit wins as long as the overkill stays below
// tolerance × the other route's overkill; with equal hits the lower overkill wins.
func Outranks(a, b *Route, tolerance float64) bool {
	if ac, bc := a.Complete(), b.Complete(); ac != bc {
		return ac
	}
	switch {
	case a.TotalHits < b.TotalHits:
		return a.TotalOverkill < b.TotalOverkill*tolerance
	case a.TotalHits > b.TotalHits:
		return !(b.TotalOverkill < a.TotalOverkill*tolerance)
	default:
		return a.TotalOverkill < b.TotalOverkill
	}
}

// routeSignature identifies routes that score identically.
type routeSignature struct {
	overkill float64
	hits     int
}

// SelectBest ranks routes best-first, drops later routes sharing an
// (overkill, hits) signature with an earlier one, and assigns 1-based ranks.
// The input slice is not reordered.
func SelectBest(routes []*Route, tolerance float64) []*Route {
	sorted := slices.Clone(routes)
	slices.SortStableFunc(sorted, func(a, b *Route) int {
		switch {
		case Outranks(a, b, tolerance):
			return -1
		case Outranks(b, a, tolerance):
			return 1
		default:
			return 0
		}
	})

	seen := make(map[routeSignature]bool, len(sorted))
	ranked := make([]*Route, 0, len(sorted))
	for _, r := range sorted {
		sig := routeSignature{overkill: r.TotalOverkill, hits: r.TotalHits}
		if seen[sig] {
			continue
		}
		seen[sig] = true
		r.Rank = len(ranked) + 1
		ranked = append(ranked, r)
	}
	return ranked
}

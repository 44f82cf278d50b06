package trace

// TraceSummary aggregates statistics from a PlanTrace.
type TraceSummary struct {
	TotalSolves       int
	Routes            int
	UnreachableCount  int
	ShortCount        int
	MeanOverkillRatio float64 // over cleared solves only
	MaxOverkillRatio  float64
	ByStrategy        map[string]int
}

// Summarize computes aggregate statistics from a PlanTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PlanTrace) *TraceSummary {
	summary := &TraceSummary{
		ByStrategy: make(map[string]int),
	}
	if pt == nil {
		return summary
	}

	summary.TotalSolves = len(pt.Solves)
	routes := make(map[int]bool)
	cleared := 0
	totalRatio := 0.0
	for _, s := range pt.Solves {
		routes[s.RouteIndex] = true
		summary.ByStrategy[s.Strategy]++
		switch s.Status {
		case "unreachable":
			summary.UnreachableCount++
		case "short":
			summary.ShortCount++
		default:
			cleared++
			totalRatio += s.OverkillRatio
			if s.OverkillRatio > summary.MaxOverkillRatio {
				summary.MaxOverkillRatio = s.OverkillRatio
			}
		}
	}
	if cleared > 0 {
		summary.MeanOverkillRatio = totalRatio / float64(cleared)
	}
	summary.Routes = len(routes)

	return summary
}

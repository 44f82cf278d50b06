package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes s as indented JSON.
func WriteJSON(w io.Writer, s *Solutions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(s)
}

// WriteYAML writes s as YAML.
func WriteYAML(w io.Writer, s *Solutions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// FormatText renders the best route and the alternatives for a terminal.
func FormatText(s *Solutions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Runtime Date : %s\n", s.RuntimeDate)
	fmt.Fprintf(&b, "Routes evaluated: %d (%d unique)\n", s.EvaluatedRoutes, s.UniqueRoutes)
	if s.Best == nil {
		b.WriteString("No route found.\n")
		return b.String()
	}
	writeRoute(&b, "Best solution", s.Best)
	for i := range s.Alternatives {
		writeRoute(&b, fmt.Sprintf("Alternative %d", i+1), &s.Alternatives[i])
	}
	return b.String()
}

func writeRoute(b *strings.Builder, title string, r *Route) {
	fmt.Fprintf(b, "\n=== %s (rank %d, solution #%d) ===\n", title, r.Rank, r.SolutionIndex)
	fmt.Fprintf(b, "%d bosses with %d hits, order: %s\n", len(r.Targets), r.TotalHits, strings.Join(r.Order, " -> "))
	fmt.Fprintf(b, "Total bosses HP : %.0f --- Total overkill damage : %.0f (%.3f%%)\n",
		r.TotalHealth, r.TotalOverkill, r.TotalOverkillPercent)
	if !r.Complete {
		b.WriteString("WARNING: route is incomplete\n")
	}
	for _, t := range r.Targets {
		fmt.Fprintf(b, "\n%s (%.0f HP): %s via %s\n", t.Name, t.Health, t.Status, t.Strategy)
		if t.Error != "" {
			fmt.Fprintf(b, "  %s\n", t.Error)
		}
		for _, h := range t.Hits {
			kill := ""
			if h.FinalHit {
				kill = " KILL"
			}
			fmt.Fprintf(b, "  %d. %-16s %14.0f (%6.3f%%)  hp left %14.0f (%6.3f%%)  hits left %d  [%s]%s\n",
				h.Index, h.Player, h.Damage, h.DamagePercent, h.HealthLeft, h.HealthLeftPercent,
				h.HitsLeft, strings.Join(h.Team, "/"), kill)
		}
		fmt.Fprintf(b, "  Overkill damage : %.0f (%.3f%%)\n", t.OverkillAmount, t.OverkillPercent)
	}
}

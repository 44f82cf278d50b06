// Package report turns ranked routes into the structures handed to consumers:
// JSON/YAML documents and a plain-text summary.
package report

import (
	"math"
	"time"

	"github.com/hitroute/hitroute/raid"
	"github.com/hitroute/hitroute/raid/trace"
)

// RuntimeDateLayout is the timestamp format of Solutions.RuntimeDate.
const RuntimeDateLayout = "2006-01-02 15:04:05 UTC+0"

// Hit is one committed hit, in application order.
type Hit struct {
	Index             int      `json:"hit_index" yaml:"hit_index"`
	Player            string   `json:"player" yaml:"player"`
	Team              []string `json:"team" yaml:"team"`
	Damage            float64  `json:"damage" yaml:"damage"`
	DamagePercent     float64  `json:"damage_percentage" yaml:"damage_percentage"`
	HealthLeft        float64  `json:"hp_left" yaml:"hp_left"`
	HealthLeftPercent float64  `json:"hp_left_percentage" yaml:"hp_left_percentage"`
	HitsLeft          int      `json:"hits_left" yaml:"hits_left"`
	FinalHit          bool     `json:"final_hit" yaml:"final_hit"`
}

// Target is the outcome for one boss inside one route.
type Target struct {
	Name            string  `json:"boss_name" yaml:"boss_name"`
	Health          float64 `json:"final_target_hp" yaml:"final_target_hp"`
	BaseHealth      float64 `json:"base_hp" yaml:"base_hp"`
	Status          string  `json:"status" yaml:"status"`
	Strategy        string  `json:"strategy" yaml:"strategy"`
	Hits            []Hit   `json:"hits" yaml:"hits"`
	OverkillAmount  float64 `json:"overkill_damage" yaml:"overkill_damage"`
	OverkillPercent float64 `json:"overkill_percentage" yaml:"overkill_percentage"`
	Error           string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Route is one ranked ordering.
type Route struct {
	Rank                 int      `json:"rank" yaml:"rank"`
	SolutionIndex        int      `json:"solution_index" yaml:"solution_index"`
	Order                []string `json:"order" yaml:"order"`
	Targets              []Target `json:"hit_route" yaml:"hit_route"`
	TotalHealth          float64  `json:"total_boss_hp" yaml:"total_boss_hp"`
	TotalOverkill        float64  `json:"total_overkill_damage" yaml:"total_overkill_damage"`
	TotalOverkillPercent float64  `json:"total_overkill_percentage" yaml:"total_overkill_percentage"`
	TotalHits            int      `json:"total_hit_number" yaml:"total_hit_number"`
	Complete             bool     `json:"complete" yaml:"complete"`
}

// Solutions is the externally visible result of a plan run.
type Solutions struct {
	RunID                string              `json:"run_id" yaml:"run_id"`
	RuntimeDate          string              `json:"runtime_date" yaml:"runtime_date"`
	ErrorMarginPercent   float64             `json:"error_margin_percentage" yaml:"error_margin_percentage"`
	MaxOverkillPercent   float64             `json:"max_allowed_overkill_percentage" yaml:"max_allowed_overkill_percentage"`
	EvaluatedRoutes      int                 `json:"evaluated_routes" yaml:"evaluated_routes"`
	UniqueRoutes         int                 `json:"unique_routes" yaml:"unique_routes"`
	Best                 *Route              `json:"best_solution" yaml:"best_solution"`
	Alternatives         []Route             `json:"alt_solutions" yaml:"alt_solutions"`
	TraceSummary         *trace.TraceSummary `json:"trace_summary,omitempty" yaml:"trace_summary,omitempty"`
	WallTimeMilliseconds int64               `json:"wall_time_ms" yaml:"wall_time_ms"`
}

// Round3 rounds to three decimals.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// BuildTarget reports one target's chosen hits with running health.
func BuildTarget(t *raid.TargetState) Target {
	out := Target{
		Name:            t.Name,
		Health:          t.Threshold,
		BaseHealth:      t.BaseHealth,
		Status:          string(t.Status),
		Strategy:        string(t.Strategy),
		Hits:            make([]Hit, 0, len(t.Chosen)),
		OverkillAmount:  t.OverkillAmount,
		OverkillPercent: Round3(t.OverkillRatio * 100),
	}
	if err := t.Err(); err != nil {
		out.Error = err.Error()
	}
	dealt := 0.0
	for i, rec := range t.Chosen {
		dealt += rec.Damage
		left := math.Max(t.Threshold-dealt, 0)
		hit := Hit{
			Index:             i + 1,
			Player:            rec.Player,
			Team:              append([]string(nil), rec.Composition[:]...),
			Damage:            rec.Damage,
			DamagePercent:     Round3(rec.Damage / t.Threshold * 100),
			HealthLeft:        left,
			HealthLeftPercent: Round3(left / t.Threshold * 100),
			FinalHit:          i == len(t.Chosen)-1,
		}
		if i < len(t.HitsLeftAfter) {
			hit.HitsLeft = t.HitsLeftAfter[i]
		}
		out.Hits = append(out.Hits, hit)
	}
	return out
}

// BuildRoute reports one ranked route.
func BuildRoute(r *raid.Route) Route {
	out := Route{
		Rank:                 r.Rank,
		SolutionIndex:        r.Index,
		Order:                append([]string(nil), r.Order...),
		Targets:              make([]Target, len(r.Targets)),
		TotalHealth:          r.TotalHealth,
		TotalOverkill:        r.TotalOverkill,
		TotalOverkillPercent: Round3(r.OverkillPercent()),
		TotalHits:            r.TotalHits,
		Complete:             r.Complete(),
	}
	for i, t := range r.Targets {
		out.Targets[i] = BuildTarget(t)
	}
	return out
}

// Build assembles the best route plus up to cfg.Alternatives runners-up.
func Build(result *raid.PlanResult, cfg raid.PlannerConfig, runID string, now time.Time) *Solutions {
	s := &Solutions{
		RunID:                runID,
		RuntimeDate:          now.UTC().Format(RuntimeDateLayout),
		ErrorMarginPercent:   round1(cfg.ErrorMargin*100 - 100),
		MaxOverkillPercent:   round1(cfg.MaxOverkillRatio*100 - 100),
		EvaluatedRoutes:      result.Evaluated,
		UniqueRoutes:         len(result.Ranked),
		Alternatives:         []Route{},
		TraceSummary:         result.Summary,
		WallTimeMilliseconds: result.WallTime.Milliseconds(),
	}
	top := result.Top(cfg.Alternatives)
	for i, r := range top {
		rr := BuildRoute(r)
		if i == 0 {
			s.Best = &rr
			continue
		}
		s.Alternatives = append(s.Alternatives, rr)
	}
	return s
}

package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/hitroute/hitroute/raid"
)

var fixedNow = time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

func team(p string) raid.Composition {
	return raid.Composition{p + "1", p + "2", p + "3", p + "4", p + "5"}
}

// planFixture plans two bosses where A finishes on the fallback pair 45+60.
func planFixture(t *testing.T, cfg raid.PlannerConfig, extra ...raid.DamageRecord) *raid.PlanResult {
	t.Helper()
	records := append([]raid.DamageRecord{
		{Player: "P1", Damage: 60, Composition: team("a"), Target: "A"},
		{Player: "P2", Damage: 45, Composition: team("b"), Target: "A"},
		{Player: "P3", Damage: 50, Composition: team("c"), Target: "B"},
	}, extra...)
	roster, err := raid.NewRoster([]raid.TargetSpec{{Name: "A", Health: 100}, {Name: "B", Health: 50}}, records)
	require.NoError(t, err)
	planner, err := raid.NewPlanner(roster, cfg)
	require.NoError(t, err)
	result, err := planner.Plan(context.Background())
	require.NoError(t, err)
	return result
}

func TestBuild_BestRouteHits(t *testing.T) {
	// GIVEN a planned fixture
	cfg := raid.DefaultPlannerConfig()
	result := planFixture(t, cfg)

	// WHEN the report is built
	s := Build(result, cfg, "run-1", fixedNow)

	// THEN header fields are set
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, "2026-10-17 08:30:00 UTC+0", s.RuntimeDate)
	assert.Equal(t, 0.0, s.ErrorMarginPercent)
	assert.Equal(t, 5.0, s.MaxOverkillPercent)
	assert.Equal(t, 2, s.EvaluatedRoutes)
	assert.Equal(t, 1, s.UniqueRoutes)
	assert.Empty(t, s.Alternatives)

	// THEN the best route carries running health per hit
	require.NotNil(t, s.Best)
	assert.True(t, s.Best.Complete)
	assert.Equal(t, []string{"A", "B"}, s.Best.Order)
	assert.Equal(t, 3, s.Best.TotalHits)
	assert.Equal(t, 150.0, s.Best.TotalHealth)
	assert.Equal(t, 3.333, s.Best.TotalOverkillPercent)

	a := s.Best.Targets[0]
	assert.Equal(t, "fallback", a.Strategy)
	assert.Equal(t, 5.0, a.OverkillAmount)
	assert.Equal(t, 5.0, a.OverkillPercent)
	assert.Empty(t, a.Error)
	require.Len(t, a.Hits, 2)
	assert.Equal(t, Hit{
		Index: 1, Player: "P2", Team: []string{"b1", "b2", "b3", "b4", "b5"},
		Damage: 45, DamagePercent: 45, HealthLeft: 55, HealthLeftPercent: 55, HitsLeft: 2,
	}, a.Hits[0])
	assert.Equal(t, 0.0, a.Hits[1].HealthLeft)
	assert.True(t, a.Hits[1].FinalHit)
	assert.Equal(t, "P1", a.Hits[1].Player)
}

func TestBuild_AlternativesLimitedByConfig(t *testing.T) {
	// GIVEN a conflicting fixture with two distinct routes
	cfg := raid.DefaultPlannerConfig()
	cfg.Alternatives = 0
	shared := raid.Composition{"b1", "z2", "z3", "z4", "z5"}
	result := planFixture(t, cfg, raid.DamageRecord{Player: "P4", Damage: 50, Composition: shared, Target: "B"})

	// WHEN built without alternatives
	s := Build(result, cfg, "run", fixedNow)

	// THEN only the best route is reported
	require.NotNil(t, s.Best)
	assert.Empty(t, s.Alternatives)
}

func TestBuild_IncompleteRouteCarriesError(t *testing.T) {
	cfg := raid.DefaultPlannerConfig()
	roster, err := raid.NewRoster([]raid.TargetSpec{{Name: "A", Health: 100}},
		[]raid.DamageRecord{{Player: "P1", Damage: 10, Composition: team("a"), Target: "A"}})
	require.NoError(t, err)
	planner, err := raid.NewPlanner(roster, cfg)
	require.NoError(t, err)
	result, err := planner.Plan(context.Background())
	require.NoError(t, err)

	s := Build(result, cfg, "run", fixedNow)

	require.NotNil(t, s.Best)
	assert.False(t, s.Best.Complete)
	assert.Contains(t, s.Best.Targets[0].Error, raid.ErrUnreachableTarget.Error())
	assert.Empty(t, s.Best.Targets[0].Hits)
	assert.Contains(t, FormatText(s), "WARNING: route is incomplete")
}

func TestWriteJSON_Keys(t *testing.T) {
	cfg := raid.DefaultPlannerConfig()
	s := Build(planFixture(t, cfg), cfg, "run-json", fixedNow)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))

	doc := buf.String()
	assert.Equal(t, "run-json", gjson.Get(doc, "run_id").String())
	assert.Equal(t, "A", gjson.Get(doc, "best_solution.hit_route.0.boss_name").String())
	assert.Equal(t, int64(3), gjson.Get(doc, "best_solution.total_hit_number").Int())
	assert.True(t, gjson.Get(doc, "best_solution.hit_route.0.hits.1.final_hit").Bool())
	assert.True(t, gjson.Get(doc, "alt_solutions").IsArray())
	assert.False(t, gjson.Get(doc, "trace_summary").Exists())
}

func TestWriteYAML_RoundTripsKeys(t *testing.T) {
	cfg := raid.DefaultPlannerConfig()
	s := Build(planFixture(t, cfg), cfg, "run-yaml", fixedNow)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, s))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "run-yaml", back["run_id"])
	assert.Contains(t, back, "best_solution")
}

func TestFormatText(t *testing.T) {
	cfg := raid.DefaultPlannerConfig()
	text := FormatText(Build(planFixture(t, cfg), cfg, "run", fixedNow))

	assert.True(t, strings.HasPrefix(text, "Runtime Date : 2026-10-17 08:30:00 UTC+0\n"))
	assert.Contains(t, text, "Routes evaluated: 2 (1 unique)")
	assert.Contains(t, text, "order: A -> B")
	assert.Contains(t, text, "[a1/a2/a3/a4/a5] KILL")
	assert.NotContains(t, text, "WARNING")
}

func TestFormatText_NoRoute(t *testing.T) {
	s := &Solutions{RuntimeDate: "x"}
	assert.Contains(t, FormatText(s), "No route found.")
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 3.333, Round3(10.0/3))
	assert.Equal(t, 0.0, Round3(0.0001))
}

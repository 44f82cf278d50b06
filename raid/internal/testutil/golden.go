// Package testutil provides shared test infrastructure for the raid planner.
// It holds the golden route scenarios and assertion helpers used across
// raid/ and its sub-package tests. It must not import raid itself.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_routes.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one planner input with its expected ranking.
type GoldenScenario struct {
	Name          string         `json:"name"`
	ErrorMargin   float64        `json:"error_margin"`   // 0 means the default
	ConflictScope string         `json:"conflict_scope"` // "" means the default
	HitBudget     int            `json:"hit_budget"`     // 0 means the default
	Targets       []GoldenTarget `json:"targets"`
	Hits          []GoldenHit    `json:"hits"`
	Expected      GoldenExpected `json:"expected"`
}

// GoldenTarget is a boss in a golden scenario.
type GoldenTarget struct {
	Name   string  `json:"name"`
	Health float64 `json:"health"`
}

// GoldenHit is one sheet row in a golden scenario.
type GoldenHit struct {
	Player string    `json:"player"`
	Damage float64   `json:"damage"`
	Team   [5]string `json:"team"`
	Target string    `json:"target"`
}

// GoldenExpected holds the ranking assertions for a scenario.
type GoldenExpected struct {
	Evaluated int           `json:"evaluated"`
	Unique    int           `json:"unique"`
	Routes    []GoldenRoute `json:"routes"` // best-first prefix of the ranking
}

// GoldenRoute is an expected ranked route.
type GoldenRoute struct {
	Order         []string            `json:"order"`
	TotalHits     int                 `json:"total_hits"`
	TotalOverkill float64             `json:"total_overkill"`
	Complete      bool                `json:"complete"`
	Targets       []GoldenTargetState `json:"targets"`
}

// GoldenTargetState is the expected outcome for one boss on a route.
type GoldenTargetState struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Strategy string   `json:"strategy"`
	Players  []string `json:"players"` // chosen hits, ascending damage
}

// LoadGoldenDataset loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: raid/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_routes.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// Team builds a five-member composition from a prefix, e.g. Team("a") → a1..a5.
func Team(prefix string) [5]string {
	var team [5]string
	for i := range team {
		team[i] = prefix + string(rune('1'+i))
	}
	return team
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

package raid

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hitroute/hitroute/raid/trace"
)

// Planner defaults. The hit budget mirrors the daily hit allowance per player.
const (
	DefaultHitBudget          = 3
	MaxHitBudget              = 3
	DefaultErrorMargin        = 1.0
	DefaultHitSavingTolerance = 1.05
	DefaultAlternatives       = 2
	DefaultMaxTargets         = 8
	// MaxTargetsLimit caps max_targets; 8 targets already mean 40320 routes.
	MaxTargetsLimit = 8
)

// PlannerConfig holds every tunable of a plan run, loadable from a YAML file.
type PlannerConfig struct {
	HitBudget          int     `yaml:"hit_budget" json:"hit_budget"`
	ErrorMargin        float64 `yaml:"error_margin" json:"error_margin"`                 // multiplier applied to every target health
	MaxOverkillRatio   float64 `yaml:"max_overkill_ratio" json:"max_overkill_ratio"`     // solver lookahead ceiling
	LastHitsAllowance  float64 `yaml:"last_hits_allowance" json:"last_hits_allowance"`   // fallback packer ceiling, × remaining health
	HitSavingTolerance float64 `yaml:"hit_saving_tolerance" json:"hit_saving_tolerance"` // selector: overkill slack for saving a hit
	ConflictScope      string  `yaml:"conflict_scope" json:"conflict_scope"`
	Workers            int     `yaml:"workers" json:"workers"`
	Alternatives       int     `yaml:"alternatives" json:"alternatives"`
	MaxTargets         int     `yaml:"max_targets" json:"max_targets"`
	TraceLevel         string  `yaml:"trace_level" json:"trace_level"`
}

// DefaultPlannerConfig returns the configuration used when nothing is overridden.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		HitBudget:          DefaultHitBudget,
		ErrorMargin:        DefaultErrorMargin,
		MaxOverkillRatio:   DefaultMaxOverkillRatio,
		LastHitsAllowance:  DefaultLastHitsAllowance,
		HitSavingTolerance: DefaultHitSavingTolerance,
		ConflictScope:      string(ConflictScopeGlobal),
		Workers:            1,
		Alternatives:       DefaultAlternatives,
		MaxTargets:         DefaultMaxTargets,
		TraceLevel:         string(trace.TraceLevelNone),
	}
}

// LoadPlannerConfig reads a YAML file over the defaults.
// Unknown keys are rejected so typos surface as errors.
func LoadPlannerConfig(path string) (PlannerConfig, error) {
	cfg := DefaultPlannerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading planner config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing planner config: %w", err)
	}
	return cfg, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks names and parameter ranges.
func (c PlannerConfig) Validate() error {
	if c.HitBudget < 1 || c.HitBudget > MaxHitBudget {
		return fmt.Errorf("hit_budget must be in [1, %d], got %d", MaxHitBudget, c.HitBudget)
	}
	if !finitePositive(c.ErrorMargin) {
		return fmt.Errorf("error_margin must be a finite positive number, got %v", c.ErrorMargin)
	}
	if !finitePositive(c.MaxOverkillRatio) || c.MaxOverkillRatio < 1 {
		return fmt.Errorf("max_overkill_ratio must be a finite number >= 1, got %v", c.MaxOverkillRatio)
	}
	if !finitePositive(c.LastHitsAllowance) || c.LastHitsAllowance < 1 {
		return fmt.Errorf("last_hits_allowance must be a finite number >= 1, got %v", c.LastHitsAllowance)
	}
	if !finitePositive(c.HitSavingTolerance) || c.HitSavingTolerance < 1 {
		return fmt.Errorf("hit_saving_tolerance must be a finite number >= 1, got %v", c.HitSavingTolerance)
	}
	if !IsValidConflictScope(c.ConflictScope) {
		return fmt.Errorf("unknown conflict_scope %q", c.ConflictScope)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Alternatives < 0 {
		return fmt.Errorf("alternatives must be non-negative, got %d", c.Alternatives)
	}
	if c.MaxTargets < 1 || c.MaxTargets > MaxTargetsLimit {
		return fmt.Errorf("max_targets must be in [1, %d], got %d", MaxTargetsLimit, c.MaxTargets)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q", c.TraceLevel)
	}
	return nil
}

// SolveOptions projects the solver tuning out of the config.
func (c PlannerConfig) SolveOptions() SolveOptions {
	scope := ConflictScope(c.ConflictScope)
	if scope == "" {
		scope = ConflictScopeGlobal
	}
	return SolveOptions{
		MaxOverkillRatio:  c.MaxOverkillRatio,
		LastHitsAllowance: c.LastHitsAllowance,
		Scope:             scope,
	}
}

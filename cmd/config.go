package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hitroute/hitroute/raid"
)

// defaultConfigPath is read when --config is left at its default and the file exists.
const defaultConfigPath = "defaults.yaml"

// plannerFlags holds CLI overrides for planner config fields.
// A field is applied only if its flag was set explicitly, so config file values
// are never clobbered by flag defaults.
type plannerFlags struct {
	hitBudget        int
	errorMargin      float64
	maxOverkillRatio float64
	allowance        float64
	tolerance        float64
	conflictScope    string
	workers          int
	alternatives     int
	maxTargets       int
	traceLevel       string
}

func (f *plannerFlags) register(fs *pflag.FlagSet) {
	def := raid.DefaultPlannerConfig()
	fs.IntVar(&f.hitBudget, "hit-budget", def.HitBudget, "Hits available to each player")
	fs.Float64Var(&f.errorMargin, "error-margin", def.ErrorMargin, "Multiplier applied to every boss health before solving")
	fs.Float64Var(&f.maxOverkillRatio, "max-overkill", def.MaxOverkillRatio, "Overkill ceiling (sum / health) for the final hit pair")
	fs.Float64Var(&f.allowance, "last-hits-allowance", def.LastHitsAllowance, "Fallback packer ceiling as a multiple of the remaining health")
	fs.Float64Var(&f.tolerance, "hit-saving-tolerance", def.HitSavingTolerance, "Overkill slack a route may spend to save a hit when ranking")
	fs.StringVar(&f.conflictScope, "conflict-scope", def.ConflictScope, "Which hits conflict on a shared team member (global, player)")
	fs.IntVar(&f.workers, "workers", def.Workers, "Route evaluations run in parallel")
	fs.IntVar(&f.alternatives, "alternatives", def.Alternatives, "Alternative routes reported after the best one")
	fs.IntVar(&f.maxTargets, "max-targets", def.MaxTargets, "Largest boss list accepted (n! routes)")
	fs.StringVar(&f.traceLevel, "trace-level", def.TraceLevel, "Solve tracing (none, decisions)")
}

func (f *plannerFlags) apply(fs *pflag.FlagSet, cfg *raid.PlannerConfig) {
	if fs.Changed("hit-budget") {
		cfg.HitBudget = f.hitBudget
	}
	if fs.Changed("error-margin") {
		cfg.ErrorMargin = f.errorMargin
	}
	if fs.Changed("max-overkill") {
		cfg.MaxOverkillRatio = f.maxOverkillRatio
	}
	if fs.Changed("last-hits-allowance") {
		cfg.LastHitsAllowance = f.allowance
	}
	if fs.Changed("hit-saving-tolerance") {
		cfg.HitSavingTolerance = f.tolerance
	}
	if fs.Changed("conflict-scope") {
		cfg.ConflictScope = f.conflictScope
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("alternatives") {
		cfg.Alternatives = f.alternatives
	}
	if fs.Changed("max-targets") {
		cfg.MaxTargets = f.maxTargets
	}
	if fs.Changed("trace-level") {
		cfg.TraceLevel = f.traceLevel
	}
}

// loadPlannerConfig reads path over the built-in defaults. A missing file is only
// tolerated when it is the implicit default path.
func loadPlannerConfig(path string, explicit bool) (raid.PlannerConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		logrus.Debugf("%s not found, using built-in planner defaults", path)
		return raid.DefaultPlannerConfig(), nil
	}
	return raid.LoadPlannerConfig(path)
}

// resolvePlannerConfig merges the config file with explicitly set flags and validates.
func resolvePlannerConfig(cmd *cobra.Command) (raid.PlannerConfig, error) {
	cfg, err := loadPlannerConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}
	overrides.apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid planner config: %w", err)
	}
	return cfg, nil
}

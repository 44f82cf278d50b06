package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitroute/hitroute/raid"
)

func TestPlannerFlags_OnlyChangedFlagsOverride(t *testing.T) {
	// GIVEN a config file value and registered override flags
	var f plannerFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	cfg := raid.DefaultPlannerConfig()
	cfg.ErrorMargin = 1.2
	cfg.Workers = 6

	// WHEN only --workers and --conflict-scope are passed
	require.NoError(t, fs.Parse([]string{"--workers", "2", "--conflict-scope", "player"}))
	f.apply(fs, &cfg)

	// THEN those fields change and the file value for error_margin survives
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "player", cfg.ConflictScope)
	assert.Equal(t, 1.2, cfg.ErrorMargin)
	assert.Equal(t, raid.DefaultHitBudget, cfg.HitBudget)
}

func TestPlannerFlags_AllOverrides(t *testing.T) {
	var f plannerFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	cfg := raid.DefaultPlannerConfig()

	require.NoError(t, fs.Parse([]string{
		"--hit-budget", "1", "--error-margin", "1.1", "--max-overkill", "1.2",
		"--alternatives", "0", "--trace-level", "decisions",
		"--last-hits-allowance", "2", "--hit-saving-tolerance", "1.1", "--max-targets", "6",
	}))
	f.apply(fs, &cfg)

	assert.Equal(t, 1, cfg.HitBudget)
	assert.Equal(t, 1.1, cfg.ErrorMargin)
	assert.Equal(t, 1.2, cfg.MaxOverkillRatio)
	assert.Equal(t, 0, cfg.Alternatives)
	assert.Equal(t, "decisions", cfg.TraceLevel)
	assert.Equal(t, 2.0, cfg.LastHitsAllowance)
	assert.Equal(t, 1.1, cfg.HitSavingTolerance)
	assert.Equal(t, 6, cfg.MaxTargets)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPlannerConfig_ImplicitDefaultMayBeMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "defaults.yaml")

	// WHEN the implicit default path is absent
	cfg, err := loadPlannerConfig(missing, false)

	// THEN built-in defaults are used
	require.NoError(t, err)
	assert.Equal(t, raid.DefaultPlannerConfig(), cfg)

	// WHEN the same path was passed explicitly
	_, err = loadPlannerConfig(missing, true)

	// THEN it is an error
	assert.Error(t, err)
}

func TestLoadPlannerConfig_RepoDefaults(t *testing.T) {
	cfg, err := loadPlannerConfig(filepath.Join("..", defaultConfigPath), true)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadPlannerConfig_RejectsTypos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wokers: 3\n"), 0o644))

	_, err := loadPlannerConfig(path, true)
	assert.ErrorContains(t, err, "wokers")
}

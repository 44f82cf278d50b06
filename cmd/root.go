package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hitroute/hitroute/raid"
	"github.com/hitroute/hitroute/raid/report"
	"github.com/hitroute/hitroute/raid/sheet"
)

var (
	logLevel    string  // Log verbosity level
	configPath  string  // Planner config YAML
	targetsPath string  // Boss list (.yaml, .yml, .json)
	hitsPath    string  // Hit sheet (.csv, .json)
	damageScale float64 // Multiplier applied to every sheet damage cell
	output      string  // Report format: text, json, yaml

	overrides plannerFlags
)

// validOutputs maps accepted --output values.
var validOutputs = map[string]bool{"text": true, "json": true, "yaml": true}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hitroute",
	Short: "Plan raid hit routes that clear every boss with minimal overkill",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// planCmd evaluates every boss ordering and prints the best routes
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Evaluate every boss ordering and print the best hit routes",
	Run: func(cmd *cobra.Command, args []string) {
		if !validOutputs[output] {
			logrus.Fatalf("Unknown output format %q (want text, json or yaml)", output)
		}
		cfg, err := resolvePlannerConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		roster := loadRoster()

		planner, err := raid.NewPlanner(roster, cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Planning %d bosses with %d players (%d records, %d routes, %d workers)",
			len(roster.Targets()), len(roster.Players()), len(roster.Records()),
			raid.Factorial(len(roster.Targets())), cfg.Workers)

		result, err := planner.Plan(context.Background())
		if err != nil {
			logrus.Fatalf("Planning failed: %v", err)
		}
		solutions := report.Build(result, cfg, uuid.New().String(), time.Now())
		if err := writeSolutions(os.Stdout, solutions, output); err != nil {
			logrus.Fatalf("Writing report failed: %v", err)
		}
		if best := result.Best(); best != nil && !best.Complete() {
			logrus.Warnf("No complete route: %v", best.Err())
		}
	},
}

// validateCmd checks inputs and config without planning
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the boss list, hit sheet and planner config without planning",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolvePlannerConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		roster := loadRoster()
		if _, err := raid.NewPlanner(roster, cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Printf("OK: %d bosses, %d players, %d records (%d dropped), %d routes\n",
			len(roster.Targets()), len(roster.Players()), len(roster.Records()), roster.Dropped(),
			raid.Factorial(len(roster.Targets())))
	},
}

// loadRoster reads --targets and --hits and indexes them.
func loadRoster() *raid.Roster {
	if targetsPath == "" || hitsPath == "" {
		logrus.Fatalf("Both --targets and --hits are required")
	}
	input, err := sheet.Load(targetsPath, hitsPath, sheet.Options{DamageScale: damageScale})
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	roster, err := input.Roster()
	if err != nil {
		logrus.Fatalf("Invalid input: %v", err)
	}
	return roster
}

// writeSolutions renders the report in the requested format.
func writeSolutions(w io.Writer, s *report.Solutions, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return report.WriteJSON(w, s)
	case "yaml":
		return report.WriteYAML(w, s)
	default:
		_, err := io.WriteString(w, report.FormatText(s))
		return err
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Planner config YAML (built-in defaults if the default path is absent)")

	for _, c := range []*cobra.Command{planCmd, validateCmd} {
		c.Flags().StringVar(&targetsPath, "targets", "", "Boss list (.yaml, .yml or .json)")
		c.Flags().StringVar(&hitsPath, "hits", "", "Hit sheet (.csv or .json)")
		c.Flags().Float64Var(&damageScale, "damage-scale", sheet.DefaultDamageScale, "Multiplier applied to every sheet damage value")
		overrides.register(c.Flags())
	}
	planCmd.Flags().StringVarP(&output, "output", "o", "text", "Report format (text, json, yaml)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
}

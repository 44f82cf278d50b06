package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hitroute/hitroute/raid/report"
)

// captureStdout runs fn and returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func sampleArgs(cmd string, extra ...string) []string {
	args := []string{cmd,
		"--targets", "../testdata/targets.yaml",
		"--hits", "../testdata/hits.csv",
		"--config", "../defaults.yaml",
	}
	return append(args, extra...)
}

func TestValidateCmd_ReportsCounts(t *testing.T) {
	// GIVEN the sample boss list and hit sheet
	rootCmd.SetArgs(sampleArgs("validate"))

	// WHEN validate runs
	output := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	// THEN the counts are printed
	assert.Contains(t, output, "OK: 3 bosses, 5 players, 9 records (0 dropped), 6 routes")
}

func TestPlanCmd_JSONOutput(t *testing.T) {
	// GIVEN the sample inputs with JSON output
	rootCmd.SetArgs(sampleArgs("plan", "--output", "json", "--workers", "2"))

	// WHEN plan runs
	output := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	// THEN a well-formed report is printed to stdout
	require.True(t, gjson.Valid(output), output)
	assert.Equal(t, int64(6), gjson.Get(output, "evaluated_routes").Int())
	assert.True(t, gjson.Get(output, "best_solution").IsObject())
	assert.NotEmpty(t, gjson.Get(output, "run_id").String())
}

func TestWriteSolutions_Formats(t *testing.T) {
	s := &report.Solutions{RunID: "r", RuntimeDate: time.Unix(0, 0).UTC().Format(report.RuntimeDateLayout)}

	tests := []struct {
		format string
		want   string
	}{
		{"text", "Runtime Date : 1970-01-01 00:00:00 UTC+0"},
		{"json", `"run_id": "r"`},
		{"yaml", "run_id: r"},
		{"JSON", `"run_id": "r"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeSolutions(&buf, s, tt.format))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

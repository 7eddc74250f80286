package commands_test

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalwave/ppgkit/cmd/ppgkit/commands"
)

func TestNewAnalyzeCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewAnalyzeCommand()

	for flag, shorthand := range map[string]string{
		"results": "r",
		"pattern": "p",
		"skip":    "s",
		"config":  "c",
	} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, shorthand, f.Shorthand, flag)
	}
	assert.NotNil(t, cmd.Flags().Lookup("no-plots"))
	assert.Equal(t, "results", cmd.Flags().Lookup("results").DefValue)
	assert.Equal(t, "*.csv", cmd.Flags().Lookup("pattern").DefValue)
}

// writeRecording writes a synthetic dataset: a 1 Hz sinusoid sampled at
// 100 Hz for 10 seconds, in the loader's expected layout.
func writeRecording(t *testing.T, path string) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("Sampling Rate : 100 Hz , Duration : 10.0 s\n")
	for i := 0; i < 1000; i++ {
		ts := float64(i) / 100.0
		fmt.Fprintf(&sb, "%.2f,%.6f\n", ts, math.Sin(2*math.Pi*ts))
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
}

func TestAnalyze_EndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	resultsDir := t.TempDir()
	writeRecording(t, filepath.Join(dataDir, "PPG-1.csv"))

	cmd := commands.NewAnalyzeCommand()
	cmd.SetArgs([]string{dataDir, "--results", resultsDir, "--no-plots"})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(resultsDir, "PPG-1_results.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Feature,Value")
	assert.Contains(t, string(out), "Heart Rate (BPM)")
	assert.Contains(t, string(out), "Arrhythmia Detected")

	assert.NoFileExists(t, filepath.Join(resultsDir, "PPG-1_plots.html"))
}

func TestAnalyze_SkipAndPlots(t *testing.T) {
	dataDir := t.TempDir()
	resultsDir := t.TempDir()
	writeRecording(t, filepath.Join(dataDir, "PPG-1.csv"))
	writeRecording(t, filepath.Join(dataDir, "PPG-2.csv"))

	cmd := commands.NewAnalyzeCommand()
	cmd.SetArgs([]string{dataDir, "--results", resultsDir, "--skip", "PPG-2.csv"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(resultsDir, "PPG-1_results.csv"))
	assert.FileExists(t, filepath.Join(resultsDir, "PPG-1_plots.html"))
	assert.NoFileExists(t, filepath.Join(resultsDir, "PPG-2_results.csv"))
}

func TestAnalyze_NoMatchingRecordings(t *testing.T) {
	cmd := commands.NewAnalyzeCommand()
	cmd.SetArgs([]string{t.TempDir(), "--results", t.TempDir()})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

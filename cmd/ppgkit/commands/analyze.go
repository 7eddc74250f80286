package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalwave/ppgkit/analysis"
	"github.com/vitalwave/ppgkit/logging"
	"github.com/vitalwave/ppgkit/record"
	"github.com/vitalwave/ppgkit/report"
)

// AnalyzeCommand holds the flags for the analyze command
type AnalyzeCommand struct {
	resultsDir string
	pattern    string
	skip       []string
	configFile string
	noPlots    bool
}

// NewAnalyzeCommand creates and configures the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <data-dir>",
		Short: "Analyze a directory of PPG recordings",
		Long: "Analyze runs the full pipeline over every recording in the " +
			"data directory and writes per-dataset result files. Problems " +
			"with individual recordings are logged and the batch continues.",
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.resultsDir, "results", "r", "results", "Directory for result files")
	cobraCmd.Flags().StringVarP(&cmd.pattern, "pattern", "p", "*.csv", "Glob pattern for recording files")
	cobraCmd.Flags().StringSliceVarP(&cmd.skip, "skip", "s", nil, "Recording file names to skip")
	cobraCmd.Flags().StringVarP(&cmd.configFile, "config", "c", "", "Pipeline config file (yaml)")
	cobraCmd.Flags().BoolVar(&cmd.noPlots, "no-plots", false, "Skip HTML plot generation")

	return cobraCmd
}

// Run executes the analyze command
func (c *AnalyzeCommand) Run(cmd *cobra.Command, args []string) error {
	settings, err := LoadSettings(c.configFile)
	if err != nil {
		return err
	}

	dataDir := args[0]
	paths, err := filepath.Glob(filepath.Join(dataDir, c.pattern))
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", c.pattern, err)
	}
	paths = slices.DeleteFunc(paths, func(p string) bool {
		return slices.Contains(c.skip, filepath.Base(p))
	})
	if len(paths) == 0 {
		return fmt.Errorf("no recordings matching %q in %s", c.pattern, dataDir)
	}

	if err := os.MkdirAll(c.resultsDir, 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}

	pipeline := newPipeline(settings)

	failures := 0
	for _, path := range paths {
		if err := c.processRecording(pipeline, path); err != nil {
			logging.Error(err, "recording failed", logging.Fields{"path": path})
			failures++
		}
	}

	logging.Info("batch complete", logging.Fields{
		"recordings": len(paths),
		"failures":   failures,
	})
	return nil
}

// pipeline bundles the analysis stages built from one settings set.
type pipeline struct {
	conditioner *analysis.Conditioner
	extractor   *analysis.FeatureExtractor
	detector    *analysis.ArrhythmiaDetector
}

func newPipeline(settings *Settings) *pipeline {
	return &pipeline{
		conditioner: analysis.NewConditionerWithConfig(settings.ConditionerConfig()),
		extractor:   analysis.NewFeatureExtractorWithConfig(settings.FeatureConfig()),
		detector:    analysis.NewArrhythmiaDetectorWithConfig(settings.ArrhythmiaConfig()),
	}
}

// processRecording runs one dataset end to end: load, condition,
// extract, detect, then write the result sinks.
func (c *AnalyzeCommand) processRecording(p *pipeline, path string) error {
	logging.Info("processing recording", logging.Fields{"path": path})

	rec, err := record.Load(path)
	if err != nil {
		return err
	}

	conditioned, err := p.conditioner.Condition(rec.Samples, rec.SamplingRate)
	if err != nil {
		return fmt.Errorf("conditioning %s: %w", rec.Name, err)
	}

	features, err := p.extractor.Extract(conditioned, rec.SamplingRate)
	if err != nil {
		return fmt.Errorf("extracting features from %s: %w", rec.Name, err)
	}

	verdict, err := p.detector.Detect(conditioned, rec.SamplingRate)
	if err != nil {
		return fmt.Errorf("screening %s: %w", rec.Name, err)
	}

	summary := report.Summary{
		Dataset:  rec.Name,
		Features: features,
		Verdict:  verdict,
	}

	report.WriteTable(os.Stdout, summary)

	base := strings.TrimSuffix(rec.Name, filepath.Ext(rec.Name))
	resultPath := filepath.Join(c.resultsDir, base+"_results.csv")
	if err := report.SaveCSV(resultPath, summary); err != nil {
		return err
	}

	if !c.noPlots {
		plotPath := filepath.Join(c.resultsDir, base+"_plots.html")
		if err := report.SavePlots(plotPath, conditioned, rec.SamplingRate, summary); err != nil {
			return err
		}
	}

	logging.Info("recording complete", logging.Fields{
		"dataset": rec.Name,
		"results": resultPath,
	})
	return nil
}

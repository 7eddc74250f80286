// Package commands wires the ppgkit command line interface.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalwave/ppgkit/logging"
)

// NewRootCommand creates the top-level ppgkit command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "ppgkit",
		Short: "Offline PPG waveform analysis",
		Long: "ppgkit derives heart rate, respiratory rate, amplitude and " +
			"signal-quality metrics from recorded PPG traces and screens " +
			"them for probable arrhythmia episodes.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(logging.ParseLevel(logLevel))
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(NewAnalyzeCommand())

	return root
}

// Execute runs the CLI, exiting non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/version"
)

var (
	// configPath to the optional configuration YAML file, shared by all subcommands.
	configPath string

	// rootCmd groups the operator subcommands.
	rootCmd = &cobra.Command{
		Use:   "remediation-ctl",
		Short: "Operate the alarm remediation dispatcher.",
		Long: `Operator tool for the alarm remediation dispatcher.

  dispatch  replay an SNS event document locally
  send      submit an SNS event document to remediation-server
  analyze   tally error patterns in recent CloudWatch log events`,
		SilenceUsage: true,
	}
)

// Execute runs the remediation-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional path to configuration file")

	rootCmd.AddCommand(dispatchCmd, sendCmd, analyzeCmd)
}

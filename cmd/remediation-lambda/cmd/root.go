package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/service/function"
	"github.com/oshokin/alarm-remediation/internal/version"
)

var (
	// configPath is an optional configuration YAML file.
	configPath string

	// rootCmd runs the SNS-triggered Lambda handler.
	rootCmd = &cobra.Command{
		Use:   "remediation-lambda",
		Short: "Run the alarm remediation handler in the AWS Lambda runtime.",
		Long: `Starts the Lambda runtime loop with the alarm remediation handler.

Each invocation carries an SNS event whose messages are CloudWatch alarm
notifications. Alarms in the ALARM state are classified by name and an incident
record listing the canned remediation steps is written to the log.

Settings come from the environment (LOG_LEVEL, LOG_ENCODING,
REMEDIATION_ABORT_ON_ERROR) and optionally from a YAML file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return function.Run(context.Background(), &function.Options{
				ConfigPath: configPath,
			})
		},
	}
)

// Execute runs the remediation-lambda CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "optional path to configuration file")
}

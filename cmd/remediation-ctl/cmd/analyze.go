package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/service/analyzer"
)

var (
	// logGroup overrides log_group from the config.
	logGroup string
	// hours overrides lookback_hours from the config.
	hours int

	// analyzeCmd reports error patterns in recent CloudWatch log events.
	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Tally error patterns in recent CloudWatch log events.",
		Long: `Fetches up to 100 events of a CloudWatch log group from the lookback window and
counts messages containing ERROR, split into database, network and general.
AWS credentials and region come from the default SDK chain unless aws_region is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return analyzer.Run(ctx, &analyzer.Options{
				ConfigPath: configPath,
				LogGroup:   logGroup,
				Hours:      hours,
				Output:     cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	analyzeCmd.Flags().StringVarP(&logGroup, "log-group", "g", "", "CloudWatch log group name")
	analyzeCmd.Flags().IntVar(&hours, "hours", 0, "lookback window in hours (default from config, 1)")
}

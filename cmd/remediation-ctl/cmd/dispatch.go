package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/service/replay"
)

var (
	// abortOnError restores stop-at-first-failure batch handling.
	abortOnError bool

	// dispatchCmd replays an SNS event document through the local dispatcher.
	dispatchCmd = &cobra.Command{
		Use:   "dispatch <event.json|->",
		Short: "Dispatch an SNS event document locally.",
		Long: `Reads an SNS event document (the JSON a Lambda function receives) from a file
or stdin, runs it through the dispatcher in-process and prints the invocation
response. Exits non-zero when the response status is not 200.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return replay.Run(ctx, &replay.Options{
				ConfigPath:   configPath,
				InputPath:    args[0],
				AbortOnError: abortOnError,
				Stdin:        os.Stdin,
				Output:       cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	dispatchCmd.Flags().BoolVar(&abortOnError, "abort-on-error", false, "stop the batch at the first failed envelope")
}

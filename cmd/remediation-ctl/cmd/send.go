package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/service/send"
)

var (
	// serverAddress overrides server_addr from the config.
	serverAddress string

	// sendCmd submits an SNS event document to remediation-server.
	sendCmd = &cobra.Command{
		Use:   "send <event.json|->",
		Short: "Send an SNS event document to remediation-server.",
		Long: `Reads an SNS event document from a file or stdin, checks that remediation-server
reports the service as serving and dispatches the batch over gRPC.
The batch summary returned by the server is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return send.Run(ctx, &send.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				InputPath:     args[0],
				Stdin:         os.Stdin,
				Output:        cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	sendCmd.Flags().StringVarP(&serverAddress, "server", "s", "", "remediation-server address override")
}

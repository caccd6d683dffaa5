package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/service/server"
	"github.com/oshokin/alarm-remediation/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// metricsAddress overrides the Prometheus listen address.
	metricsAddress string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "remediation-server [listen-address]",
		Short: "Serve the alarm remediation dispatcher over gRPC.",
		Long: `Starts a gRPC server exposing the alarm remediation dispatcher outside Lambda.

Requests are SNS event documents; responses carry the batch status code, body
and the outcome of every envelope. Only the port from server_addr in the config
is used for listening unless a listen address argument is given.
Prometheus metrics are served on metrics_addr when it is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:     configPath,
				ListenAddress:  listenAddress,
				MetricsAddress: metricsAddress,
			})
		},
	}
)

// Execute runs the remediation-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&metricsAddress, "metrics-addr", "m", "", "Prometheus listen address override")
}

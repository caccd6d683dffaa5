package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/alarm-remediation/internal/api/grpc/dispatch"
	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/logger"
	pb "github.com/oshokin/alarm-remediation/internal/pb/v1"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// Options controls the remediation-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// MetricsAddress overrides the Prometheus listen address from the config.
	MetricsAddress string
}

const (
	// metricsPath is where Prometheus scrapes.
	metricsPath = "/metrics"
	// shutdownTimeout bounds the metrics server shutdown.
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout protects the metrics endpoint from slow clients.
	readHeaderTimeout = 5 * time.Second
)

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and blocks until context is canceled or server stops.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Setup(settings.LogLevel, settings.LogEncoding)

	ctx = logger.WithName(ctx, "remediation-server")

	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	dispatcher := remediation.NewDispatcher(remediation.WithAbortOnError(settings.AbortOnError))

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus(dispatch.ServiceName, healthpb.HealthCheckResponse_SERVING)

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(ctx)))
	pb.RegisterRemediationServiceServer(grpcServer, dispatch.NewHandler(dispatcher))
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	metricsServer := newMetricsServer(metricsAddress)
	if metricsServer != nil {
		go serveMetrics(ctx, metricsServer)
	}

	logger.InfoKV(ctx, "Remediation server listening",
		"listen_address", listenAddress,
		"metrics_address", metricsAddress,
		"abort_on_error", settings.AbortOnError,
		"log_level", logger.Level().String(),
	)

	// Closed after GracefulStop finishes so Run returns only once the server is down.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()

		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorKV(ctx, "Metrics server shutdown failed", "error", err)
			}
		}

		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// loggingInterceptor attaches the server logger to request contexts and logs failed calls.
func loggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	requestLogger := logger.FromContext(base)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx = logger.ToContext(ctx, requestLogger)

		resp, err := handler(ctx, req)
		if err != nil {
			logger.WarnKV(ctx, "RPC failed", "method", info.FullMethod, "error", err)
		}

		return resp, err
	}
}

// newMetricsServer builds the Prometheus HTTP server, nil when address is empty.
func newMetricsServer(address string) *http.Server {
	if address == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.Handler())

	return &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// serveMetrics runs the metrics server until it is shut down.
func serveMetrics(ctx context.Context, srv *http.Server) {
	logger.InfoKV(ctx, "Metrics endpoint listening", "address", srv.Addr, "path", metricsPath)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorKV(ctx, "Metrics server failed", "error", err)
	}
}

// resolveListenAddress determines the listen address for the gRPC server.
// An override wins; otherwise only the port of configAddr is used so the
// server binds on all interfaces.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}

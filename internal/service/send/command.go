package send

import (
	"context"
	"errors"
	"fmt"
	"io"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/service/common"
)

// Options controls the send command.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress overrides the server address from the config.
	ServerAddress string
	// InputPath is the SNS event JSON file, or "-" for stdin.
	InputPath string
	// Stdin is read when InputPath is "-".
	Stdin io.Reader
	// Output receives the server response as JSON.
	Output io.Writer
}

var (
	// ErrNoServerAddress indicates that neither the flag nor the config names a server.
	ErrNoServerAddress = errors.New("no server address configured")
	// ErrNotServing is returned when the health check reports the service down.
	ErrNotServing = errors.New("remediation service is not serving")
)

// Run reads the batch, checks the server health and dispatches the batch remotely.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Setup(settings.LogLevel, settings.LogEncoding)

	ctx = logger.WithName(ctx, "remediation-ctl")

	serverAddress := settings.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	if serverAddress == "" {
		return ErrNoServerAddress
	}

	data, err := common.ReadInput(opts.InputPath, opts.Stdin)
	if err != nil {
		return err
	}

	request := new(structpb.Struct)
	if err = protojson.Unmarshal(data, request); err != nil {
		return fmt.Errorf("decode batch: %w", err)
	}

	clientOptions := []common.Option{common.WithCallTimeout(settings.Timeout)}

	if actor, actorErr := common.DetectActor(); actorErr == nil {
		clientOptions = append(clientOptions, common.WithActor(actor))
	} else {
		logger.WarnKV(ctx, "Cannot detect actor", "error", actorErr)
	}

	client, err := common.Dial(ctx, serverAddress, clientOptions...)
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	servingStatus, err := client.Health(ctx)
	if err != nil {
		return err
	}

	if servingStatus != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, servingStatus)
	}

	response, err := client.Dispatch(ctx, request)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Batch dispatched", "server_address", serverAddress,
		"status_code", response.GetFields()["statusCode"].GetNumberValue())

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	if _, err = fmt.Fprintln(opts.Output, string(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

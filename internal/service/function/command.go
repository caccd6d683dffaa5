package function

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/oshokin/alarm-remediation/internal/api/sns"
	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// Options controls the Lambda process.
type Options struct {
	// ConfigPath is an optional settings file; the environment is enough on Lambda.
	ConfigPath string
}

// Run builds the handler and hands control to the Lambda runtime.
// The runtime owns the process from here on and exits it on fatal errors.
func Run(ctx context.Context, opts *Options) error {
	handler, err := newHandler(opts)
	if err != nil {
		return err
	}

	ctx = logger.WithName(ctx, "remediation-lambda")
	logger.Info(ctx, "Starting Lambda runtime")

	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx))

	return nil
}

// newHandler loads settings, configures logging and wires the dispatcher.
func newHandler(opts *Options) (*sns.Handler, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger.Setup(settings.LogLevel, settings.LogEncoding)

	dispatcher := remediation.NewDispatcher(remediation.WithAbortOnError(settings.AbortOnError))

	return sns.NewHandler(dispatcher), nil
}

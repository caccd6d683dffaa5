package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/notification"
	"github.com/oshokin/alarm-remediation/internal/remediation"
	"github.com/oshokin/alarm-remediation/internal/service/common"
)

// Options controls a local dispatch run.
type Options struct {
	// ConfigPath is an optional settings file.
	ConfigPath string
	// InputPath is the SNS event JSON file, or "-" for stdin.
	InputPath string
	// AbortOnError forces legacy abort-on-first-failure behavior.
	AbortOnError bool
	// Stdin is read when InputPath is "-".
	Stdin io.Reader
	// Output receives the invocation response as JSON.
	Output io.Writer
}

// ErrBatchFailed is returned when the response status is not 200.
var ErrBatchFailed = errors.New("batch failed")

// Run decodes the batch, dispatches it and prints the response.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Setup(settings.LogLevel, settings.LogEncoding)

	ctx = logger.WithName(ctx, "remediation-ctl")

	data, err := common.ReadInput(opts.InputPath, opts.Stdin)
	if err != nil {
		return err
	}

	envelopes, err := notification.DecodeBatch(data)
	if err != nil {
		return err
	}

	dispatcher := remediation.NewDispatcher(
		remediation.WithAbortOnError(settings.AbortOnError || opts.AbortOnError),
	)

	response := dispatcher.Dispatch(ctx, envelopes).Response()

	if err = common.WriteJSON(opts.Output, response); err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrBatchFailed, response.StatusCode)
	}

	return nil
}

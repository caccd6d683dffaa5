package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/oshokin/alarm-remediation/internal/config"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/loganalysis"
	"github.com/oshokin/alarm-remediation/internal/service/common"
	"github.com/oshokin/alarm-remediation/internal/version"
)

// Options controls the analyze command.
type Options struct {
	// ConfigPath is an optional settings file.
	ConfigPath string
	// LogGroup overrides the log group from the config.
	LogGroup string
	// Hours overrides the lookback window from the config.
	Hours int
	// Output receives the report as JSON.
	Output io.Writer
}

// Report is printed by the analyze command.
type Report struct {
	LogGroup string `json:"log_group"`
	Hours    int    `json:"hours"`
	Events   int    `json:"events"`

	loganalysis.Analysis
}

// ErrNoLogGroup indicates that neither the flag nor the config names a log group.
var ErrNoLogGroup = errors.New("no log group configured")

// Run loads AWS credentials, fetches recent events and prints the analysis.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Setup(settings.LogLevel, settings.LogEncoding)

	ctx = logger.WithName(ctx, "remediation-ctl")

	logGroup := settings.LogGroup
	if opts.LogGroup != "" {
		logGroup = opts.LogGroup
	}

	if logGroup == "" {
		return ErrNoLogGroup
	}

	hours := settings.LookbackHours
	if opts.Hours > 0 {
		hours = opts.Hours
	}

	client, err := newLogsClient(ctx, settings.AWSRegion)
	if err != nil {
		return err
	}

	queryCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	events := loganalysis.NewFetcher(client).FetchRecentEvents(queryCtx, logGroup, hours)

	report := Report{
		LogGroup: logGroup,
		Hours:    hours,
		Events:   len(events),
		Analysis: loganalysis.AnalyzeErrorPatterns(events),
	}

	logger.InfoKV(ctx, "Log analysis finished", "log_group", logGroup, "events", report.Events,
		"total_errors", report.TotalErrors)

	return common.WriteJSON(opts.Output, report)
}

// newLogsClient builds a CloudWatch Logs client from the default AWS credential chain.
func newLogsClient(ctx context.Context, region string) (*cloudwatchlogs.Client, error) {
	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithAppID(version.AppID()),
	}

	if region != "" {
		loadOptions = append(loadOptions, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return cloudwatchlogs.NewFromConfig(awsCfg), nil
}

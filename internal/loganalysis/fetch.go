package loganalysis

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/oshokin/alarm-remediation/internal/logger"
)

const (
	// DefaultLookbackHours is used when a non-positive window is requested.
	DefaultLookbackHours = 1
	// MaxEvents caps a single query.
	MaxEvents int32 = 100
)

// FilterLogEventsAPI is the part of the CloudWatch Logs client the fetcher needs.
type FilterLogEventsAPI interface {
	FilterLogEvents(
		ctx context.Context,
		params *cloudwatchlogs.FilterLogEventsInput,
		optFns ...func(*cloudwatchlogs.Options),
	) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// Event is one log line returned by the store.
type Event struct {
	// Message is the raw log message.
	Message string `json:"message"`
	// Timestamp is the event time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Fetcher queries recent events from CloudWatch Logs.
type Fetcher struct {
	api FilterLogEventsAPI
	now func() time.Time
}

// NewFetcher wraps a CloudWatch Logs client.
func NewFetcher(api FilterLogEventsAPI) *Fetcher {
	return &Fetcher{
		api: api,
		now: time.Now,
	}
}

// FetchRecentEvents returns up to MaxEvents events of the log group from the last
// hours hours. Query failures are logged and yield an empty slice.
func (f *Fetcher) FetchRecentEvents(ctx context.Context, logGroup string, hours int) []Event {
	if hours <= 0 {
		hours = DefaultLookbackHours
	}

	end := f.now().UnixMilli()
	start := end - int64(hours)*time.Hour.Milliseconds()

	output, err := f.api.FilterLogEvents(ctx, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: aws.String(logGroup),
		StartTime:    aws.Int64(start),
		EndTime:      aws.Int64(end),
		Limit:        aws.Int32(MaxEvents),
	})
	if err != nil {
		logger.ErrorKV(ctx, "Error retrieving log events", "log_group", logGroup, "error", err)

		return []Event{}
	}

	events := make([]Event, 0, len(output.Events))
	for _, e := range output.Events {
		events = append(events, Event{
			Message:   aws.ToString(e.Message),
			Timestamp: aws.ToInt64(e.Timestamp),
		})
	}

	logger.DebugKV(ctx, "Fetched log events", "log_group", logGroup, "count", len(events), "hours", hours)

	return events
}

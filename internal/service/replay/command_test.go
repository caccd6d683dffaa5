package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// batch is an SNS event with an error alarm, a malformed payload and a failed-login alarm.
const batch = `{"Records":[
	{"Sns":{"MessageId":"m-1","Message":"{\"AlarmName\":\"prod-error-rate-high\",\"NewStateValue\":\"ALARM\"}"}},
	{"Sns":{"MessageId":"m-2","Message":"{broken"}},
	{"Sns":{"MessageId":"m-3","Message":"{\"AlarmName\":\"failed-login-attempts\",\"NewStateValue\":\"ALARM\"}"}}
]}`

// Run replaces the global logger, so these tests do not run in parallel.

// TestRun_Success prints a 200 response for a clean batch.
func TestRun_Success(t *testing.T) {
	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		InputPath: "-",
		Stdin:     strings.NewReader(`{"Records":[{"Sns":{"MessageId":"m-1","Message":"{\"AlarmName\":\"cpu\",\"NewStateValue\":\"OK\"}"}}]}`),
		Output:    &out,
	})
	require.NoError(t, err)

	var response remediation.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	require.Equal(t, http.StatusOK, response.StatusCode)
}

// TestRun_FailedBatch reports the failure both in the output and as an error.
func TestRun_FailedBatch(t *testing.T) {
	for _, abort := range []bool{false, true} {
		var out bytes.Buffer

		err := Run(context.Background(), &Options{
			InputPath:    "-",
			AbortOnError: abort,
			Stdin:        strings.NewReader(batch),
			Output:       &out,
		})
		require.ErrorIs(t, err, ErrBatchFailed)

		var response remediation.Response
		require.NoError(t, json.Unmarshal(out.Bytes(), &response))
		require.Equal(t, http.StatusInternalServerError, response.StatusCode)
		require.Contains(t, response.Body, "envelope 1")
	}
}

// TestRun_BadDocument rejects input that is not an SNS event.
func TestRun_BadDocument(t *testing.T) {
	err := Run(context.Background(), &Options{
		InputPath: "-",
		Stdin:     strings.NewReader("[]"),
		Output:    new(bytes.Buffer),
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrBatchFailed)
}

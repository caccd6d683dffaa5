package send

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Run configures the global logger, so these tests do not run in parallel.

// TestRun_RequiresServerAddress checks that a missing address fails before any input is read.
func TestRun_RequiresServerAddress(t *testing.T) {
	err := Run(context.Background(), &Options{
		InputPath: "-",
		Stdin:     strings.NewReader("{}"),
		Output:    new(bytes.Buffer),
	})
	require.ErrorIs(t, err, ErrNoServerAddress)
}

// TestRun_BadDocument ensures an input that is not a JSON object is rejected before dialing.
func TestRun_BadDocument(t *testing.T) {
	out := new(bytes.Buffer)

	err := Run(context.Background(), &Options{
		ServerAddress: "127.0.0.1:1",
		InputPath:     "-",
		Stdin:         strings.NewReader("[1, 2]"),
		Output:        out,
	})
	require.ErrorContains(t, err, "decode batch")
	require.Empty(t, out.String())
}

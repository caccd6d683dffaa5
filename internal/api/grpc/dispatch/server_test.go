package dispatch

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-remediation/internal/logger"
	pb "github.com/oshokin/alarm-remediation/internal/pb/v1"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// quietContext returns a context with an observed logger so tests do not write to stdout.
func quietContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)

	return logger.ToContext(context.Background(), zap.New(core).Sugar()), logs
}

// batchRequest builds an SNS-shaped request struct.
func batchRequest(t *testing.T, messages ...string) *structpb.Struct {
	t.Helper()

	records := make([]any, 0, len(messages))
	for _, message := range messages {
		records = append(records, map[string]any{
			"EventSource": "aws:sns",
			"Sns": map[string]any{
				"MessageId": "m",
				"Message":   message,
			},
		})
	}

	req, err := structpb.NewStruct(map[string]any{"Records": records})
	require.NoError(t, err)

	return req
}

// TestHandler_Validation ensures invalid requests return InvalidArgument errors.
func TestHandler_Validation(t *testing.T) {
	t.Parallel()

	ctx, _ := quietContext()
	h := NewHandler(remediation.NewDispatcher())

	_, err := h.Dispatch(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	req, err := structpb.NewStruct(map[string]any{"Records": "not a list"})
	require.NoError(t, err)

	_, err = h.Dispatch(ctx, req)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestHandler_Dispatch exercises a mixed batch and checks the response fields.
func TestHandler_Dispatch(t *testing.T) {
	t.Parallel()

	ctx, logs := quietContext()
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(ActorMetadataKey, "ops@bastion"))

	h := NewHandler(remediation.NewDispatcher())

	resp, err := h.Dispatch(ctx, batchRequest(t,
		`{"AlarmName":"failed-login-attempts","NewStateValue":"ALARM"}`,
		`broken`,
	))
	require.NoError(t, err)

	fields := resp.GetFields()
	require.InDelta(t, float64(http.StatusInternalServerError), fields["statusCode"].GetNumberValue(), 0)
	require.NotEmpty(t, fields["batchId"].GetStringValue())

	results := fields["results"].GetListValue().GetValues()
	require.Len(t, results, 2)

	first := results[0].GetStructValue().GetFields()
	require.Equal(t, "remediated", first["outcome"].GetStringValue())

	record := first["incident"].GetStructValue().GetFields()
	require.Equal(t, "CRITICAL", record["severity"].GetStringValue())
	require.Len(t, record["remediation_actions"].GetListValue().GetValues(), 4)

	second := results[1].GetStructValue().GetFields()
	require.Equal(t, "failed", second["outcome"].GetStringValue())
	require.Contains(t, second["error"].GetStringValue(), "decode alarm payload")

	received := logs.FilterMessage("Received notification batch").All()
	require.Len(t, received, 1)
	require.Equal(t, "ops@bastion", received[0].ContextMap()["actor"])
}

// TestRegister_ServesOverGRPC dispatches through a real server and the generated client.
func TestRegister_ServesOverGRPC(t *testing.T) {
	t.Parallel()

	ctx, _ := quietContext()
	requestLogger := logger.FromContext(ctx)

	lis := bufconn.Listen(1 << 20)

	methods := make(chan string, 1)

	interceptor := func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		methods <- info.FullMethod

		return handler(logger.ToContext(ctx, requestLogger), req)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptor))
	pb.RegisterRemediationServiceServer(srv, NewHandler(remediation.NewDispatcher()))

	go func() {
		_ = srv.Serve(lis)
	}()

	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	resp, err := pb.NewRemediationServiceClient(conn).Dispatch(ctx,
		batchRequest(t, `{"AlarmName":"cpu-high","NewStateValue":"OK"}`))
	require.NoError(t, err)
	require.InDelta(t, float64(http.StatusOK), resp.GetFields()["statusCode"].GetNumberValue(), 0)

	method := <-methods
	require.Equal(t, pb.RemediationService_Dispatch_FullMethodName, method)
	require.Equal(t, "/"+ServiceName+"/Dispatch", method)
}

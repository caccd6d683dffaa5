package dispatch

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
	"github.com/oshokin/alarm-remediation/internal/domain/incident"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/notification"
	pb "github.com/oshokin/alarm-remediation/internal/pb/v1"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

const (
	// ServiceName is the name the health service reports the remediation service under.
	ServiceName = "remediation.v1.RemediationService"
	// ActorMetadataKey carries "user@host" of the caller for audit logs.
	ActorMetadataKey = "x-remediation-actor"
)

// Dispatcher abstracts the business operation the transport depends on.
type Dispatcher interface {
	Dispatch(ctx context.Context, envelopes []alarm.Envelope) *remediation.BatchResult
}

// Handler implements the RemediationService gRPC API on top of a Dispatcher.
type Handler struct {
	pb.UnimplementedRemediationServiceServer

	// dispatcher processes decoded batches.
	dispatcher Dispatcher
}

// NewHandler wires the dispatcher into a gRPC handler.
func NewHandler(dispatcher Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
	}
}

// Dispatch decodes an SNS-shaped request, processes it and returns the batch summary.
// Envelope failures are reported in the response, not as RPC errors.
func (h *Handler) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if actor := actorFromMetadata(ctx); actor != "" {
		ctx = logger.WithKV(ctx, "actor", actor)
	}

	data, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode request: %v", err)
	}

	envelopes, err := notification.DecodeBatch(data)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	result := h.dispatcher.Dispatch(ctx, envelopes)

	response, err := toStruct(result)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to encode dispatch response", "error", err)

		return nil, status.Error(codes.Internal, "unable to encode response")
	}

	return response, nil
}

// actorFromMetadata returns the caller identity sent by remediation-ctl, if any.
func actorFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	return strings.Join(md.Get(ActorMetadataKey), ",")
}

// toStruct converts a batch result into the response message.
func toStruct(result *remediation.BatchResult) (*structpb.Struct, error) {
	response := result.Response()

	results := make([]any, 0, len(result.Results))
	for i := range result.Results {
		results = append(results, resultFields(&result.Results[i]))
	}

	return structpb.NewStruct(map[string]any{
		"statusCode":  response.StatusCode,
		"body":        response.Body,
		"batchId":     result.BatchID,
		"unprocessed": result.Unprocessed,
		"results":     results,
	})
}

// resultFields converts one envelope result into Struct-compatible values.
func resultFields(r *remediation.EnvelopeResult) map[string]any {
	fields := map[string]any{
		"index":     r.Index,
		"messageId": r.MessageID,
		"alarmName": r.AlarmName,
		"outcome":   string(r.Outcome),
	}

	if r.Err != nil {
		fields["error"] = r.Err.Error()
	}

	if r.Incident != nil {
		fields["incident"] = incidentFields(r.Incident)
	}

	return fields
}

// incidentFields uses the same keys as the incident log schema.
func incidentFields(record *incident.Record) map[string]any {
	actions := make([]any, 0, len(record.RemediationActions))
	for _, action := range record.RemediationActions {
		actions = append(actions, action)
	}

	return map[string]any{
		"timestamp":           record.Timestamp,
		"alarm_name":          record.AlarmName,
		"incident_type":       record.IncidentType,
		"severity":            string(record.Severity),
		"remediation_actions": actions,
		"status":              record.Status,
	}
}

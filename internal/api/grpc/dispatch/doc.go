// Package dispatch implements the RemediationService gRPC API on top of the
// remediation dispatcher.
//
// Requests mirror the SNS event document a Lambda function receives and
// responses carry the batch summary, both as google.protobuf.Struct.
package dispatch

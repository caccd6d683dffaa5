// Package notification turns transport messages into alarm envelopes and events.
//
// Payloads are decoded through protobuf's Struct type so that the dynamic JSON
// document can be inspected field by field, the same way the gRPC transport
// carries requests.
package notification

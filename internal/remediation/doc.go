// Package remediation classifies alarm events and records the canned remediation
// steps for them.
//
// A Dispatcher walks a batch of envelopes: each payload is parsed, the Classifier
// picks a category from the ordered rule list, and the Emitter writes one incident
// record per classified alarm to the log. Nothing here mutates external resources.
package remediation

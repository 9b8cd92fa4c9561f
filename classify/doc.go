// Package classify decides whether a completed response is a success and,
// if not, builds the APIError reported to the caller.
//
// Any status outside 2xx is a failure. The message comes from the effective
// status->message table: call-level entries over client-level entries over
// DefaultMessages(). Statuses missing from every table get GenericMessage.
package classify

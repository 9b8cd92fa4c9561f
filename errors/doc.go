// Package errors provides the structured error type used by the API client
// runtime for failures that are not classified API responses.
//
// Every call fails in one of four ways:
//
//   - build-time errors (INVALID_INPUT, MISSING_FIELD, INVALID_FORMAT) are
//     returned before anything is dispatched;
//   - credential errors (AUTH_FAILED) come from a failing token provider;
//   - transport errors (CONNECTION_FAILED, TIMEOUT) come from the injected
//     transport;
//   - cancellation (CANCELLED) carries the message "Request aborted".
//
// Responses with a non-2xx status are not AppErrors; see package classify.
package errors

// Package result presents a call outcome either as a conventional
// (value, error) return or as an Either value.
//
// Both views read the same Outcome, so switching modes never issues a second
// request. In Either mode only API errors become Left; cancellation and
// transport failures are still returned as errors.
package result

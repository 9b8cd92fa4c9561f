package result

import (
	"github.com/kbukum/apiclient/classify"
)

// Kind tells which variant an Outcome holds.
type Kind uint8

const (
	KindSuccess Kind = iota
	KindAPIError
	KindCancelled
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAPIError:
		return "api_error"
	case KindCancelled:
		return "cancelled"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of one call. Exactly one of Value,
// APIError or Cause is meaningful, selected by Kind.
type Outcome struct {
	Kind     Kind
	Value    any
	APIError *classify.APIError
	Cause    error
}

// Success wraps a decoded success payload.
func Success(v any) Outcome {
	return Outcome{Kind: KindSuccess, Value: v}
}

// Failure wraps a classified API error.
func Failure(e *classify.APIError) Outcome {
	return Outcome{Kind: KindAPIError, APIError: e}
}

// Cancelled wraps the cancellation error.
func Cancelled(err error) Outcome {
	return Outcome{Kind: KindCancelled, Cause: err}
}

// Failed wraps an auth, transport or internal error.
func Failed(err error) Outcome {
	return Outcome{Kind: KindFailed, Cause: err}
}

// Err returns the error the throwing view reports, nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindSuccess:
		return nil
	case KindAPIError:
		return o.APIError
	default:
		return o.Cause
	}
}

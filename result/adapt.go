package result

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/apiclient/errors"
)

// Convert turns a decoded payload into T. Payloads already of type T are
// returned as is; nil yields the zero value; anything else is re-decoded
// through JSON.
func Convert[T any](v any) (T, error) {
	var out T
	if v == nil {
		return out, nil
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return out, errors.InvalidFormat("response", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.InvalidFormat("response", fmt.Errorf("decode into %T: %w", out, err))
	}
	return out, nil
}

// Throw is the throwing view: the payload on success, otherwise the APIError,
// cancellation or failure as an error.
func Throw[T any](o Outcome) (T, error) {
	if o.Kind != KindSuccess {
		var zero T
		return zero, o.Err()
	}
	return Convert[T](o.Value)
}

// ToEither is the Either view: success becomes Right, an API error becomes
// Left. Cancellation and failures are still returned as errors.
func ToEither[T any](o Outcome) (Either[T], error) {
	switch o.Kind {
	case KindSuccess:
		v, err := Convert[T](o.Value)
		if err != nil {
			return Either[T]{}, err
		}
		return Right(v), nil
	case KindAPIError:
		return Left[T](o.APIError), nil
	default:
		return Either[T]{}, o.Err()
	}
}

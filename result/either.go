package result

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/apiclient/classify"
)

// JSON tags of the two Either variants.
const (
	TagRight = "Right"
	TagLeft  = "Left"
)

// Either holds a success value (Right) or an API error (Left), never both.
type Either[T any] struct {
	right T
	left  *classify.APIError
}

// Right creates a success value.
func Right[T any](v T) Either[T] {
	return Either[T]{right: v}
}

// Left creates a failure value. A nil error yields a Right of the zero value.
func Left[T any](e *classify.APIError) Either[T] {
	return Either[T]{left: e}
}

// IsRight reports whether e holds a success value.
func (e Either[T]) IsRight() bool { return e.left == nil }

// IsLeft reports whether e holds an API error.
func (e Either[T]) IsLeft() bool { return e.left != nil }

// Right returns the success value and whether e is a Right.
func (e Either[T]) Right() (T, bool) {
	return e.right, e.left == nil
}

// Left returns the API error and whether e is a Left.
func (e Either[T]) Left() (*classify.APIError, bool) {
	return e.left, e.left != nil
}

// Tag returns "Right" or "Left".
func (e Either[T]) Tag() string {
	if e.IsLeft() {
		return TagLeft
	}
	return TagRight
}

type eitherJSON[T any] struct {
	Tag   string             `json:"_tag"`
	Right *T                 `json:"right,omitempty"`
	Left  *classify.APIError `json:"left,omitempty"`
}

// MarshalJSON encodes {"_tag":"Right","right":...} or {"_tag":"Left","left":...}.
func (e Either[T]) MarshalJSON() ([]byte, error) {
	if e.IsLeft() {
		return json.Marshal(eitherJSON[T]{Tag: TagLeft, Left: e.left})
	}
	return json.Marshal(struct {
		Tag   string `json:"_tag"`
		Right T      `json:"right"`
	}{Tag: TagRight, Right: e.right})
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON.
func (e *Either[T]) UnmarshalJSON(data []byte) error {
	var raw eitherJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Tag {
	case TagRight:
		var zero T
		e.left = nil
		e.right = zero
		if raw.Right != nil {
			e.right = *raw.Right
		}
	case TagLeft:
		if raw.Left == nil {
			return fmt.Errorf("either: Left without value")
		}
		var zero T
		e.right = zero
		e.left = raw.Left
	default:
		return fmt.Errorf("either: unknown tag %q", raw.Tag)
	}
	return nil
}

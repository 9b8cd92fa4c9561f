package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeConnectionFailed, true},
		{ErrCodeTimeout, true},
		{ErrCodeCancelled, false},
		{ErrCodeMissingField, false},
		{ErrCodeAuthFailed, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg")
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, tc.code)
			}
		})
	}
}

func TestAppError_MissingField(t *testing.T) {
	err := MissingField("parameterPath")
	if err.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", err.Code)
	}
	if err.Details["field"] != "parameterPath" {
		t.Errorf("expected field=parameterPath, got %v", err.Details["field"])
	}
	if !strings.Contains(err.Error(), "parameterPath") {
		t.Errorf("error should name the parameter, got %q", err.Error())
	}
}

func TestAppError_InvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "bad")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_Cancelled_MessageIsStable(t *testing.T) {
	err := Cancelled(context.Canceled)
	if err.Message != AbortedMessage {
		t.Errorf("expected %q, got %q", AbortedMessage, err.Message)
	}
	if !strings.Contains(err.Error(), "Request aborted") {
		t.Errorf("error string must contain 'Request aborted', got %q", err.Error())
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Error("expected cancellation to unwrap to context.Canceled")
	}
	if !IsCancelled(err) {
		t.Error("IsCancelled should be true")
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := ConnectionFailed("http://localhost", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Details["url"] != "http://localhost" {
		t.Errorf("expected url detail, got %v", err.Details["url"])
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", AuthFailed(stderrors.New("boom")))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed through wrapping")
	}
	if appErr.Code != ErrCodeAuthFailed {
		t.Errorf("expected AUTH_FAILED, got %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeAuthFailed) {
		t.Error("HasCode should match wrapped error")
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
	if IsAppError(nil) {
		t.Error("nil is not an AppError")
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/apiclient/errors"
)

type sampleOperation struct {
	Method string `json:"method" validate:"required,oneof=GET POST PUT"`
	URL    string `json:"url" validate:"required,urltemplate"`
}

type sampleConfig struct {
	Base    string `mapstructure:"base" validate:"omitempty,url"`
	Retries int    `validate:"gte=0,lte=3"`
}

func TestStructValidateValid(t *testing.T) {
	op := sampleOperation{Method: "GET", URL: "/api/v{api-version}/items/{id}"}
	if err := Validate(op); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(sampleOperation{Method: "FETCH", URL: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "method: must be one of") {
		t.Errorf("expected json field name in message, got %q", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "url: is required") {
		t.Errorf("expected url required message, got %q", appErr.Message)
	}
}

func TestURLTemplate(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"/simple", true},
		{"/parameters/{parameterPath}", true},
		{"/api/v{api-version}/a/{b}/c", true},
		{"/broken/{open", false},
		{"/broken/close}", false},
		{"/empty/{}", false},
		{"/nested/{a{b}}", false},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			err := Validate(sampleOperation{Method: "GET", URL: tc.url})
			if (err == nil) != tc.valid {
				t.Errorf("valid=%v, got err=%v", tc.valid, err)
			}
		})
	}
}

func TestFieldNameFromMapstructure(t *testing.T) {
	err := Validate(sampleConfig{Base: "not a url", Retries: 5})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "base: must be an absolute URL") {
		t.Errorf("expected mapstructure name 'base', got %q", msg)
	}
	if !strings.Contains(msg, "retries: must be at most 3") {
		t.Errorf("expected snake_case fallback 'retries', got %q", msg)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ErrorMessages": "error_messages",
		"Base":          "base",
		"url":           "url",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

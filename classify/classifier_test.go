package classify

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/kbukum/apiclient/transport"
)

func jsonResponse(status int, statusText string, body string) *transport.Response {
	return &transport.Response{
		Status:     status,
		StatusText: statusText,
		URL:        "http://localhost:3000/base/api/v1.0/error?status=" + http.StatusText(status),
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(body),
	}
}

func TestClassify_Success(t *testing.T) {
	c := New(nil)

	payload, apiErr := c.Classify(jsonResponse(200, "OK", `{"id":1,"tags":["a"]}`), nil, "")
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	want := map[string]any{"id": float64(1), "tags": []any{"a"}}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("expected %v, got %v", want, payload)
	}
}

func TestClassify_FailureThreshold(t *testing.T) {
	c := New(nil)

	tests := []struct {
		status  int
		failure bool
	}{
		{199, true},
		{200, false},
		{204, false},
		{299, false},
		{300, true},
		{404, true},
		{503, true},
	}
	for _, tt := range tests {
		_, apiErr := c.Classify(&transport.Response{Status: tt.status}, nil, "")
		if (apiErr != nil) != tt.failure {
			t.Errorf("status %d: expected failure=%v, got %v", tt.status, tt.failure, apiErr)
		}
	}
}

func TestClassify_CustomMessage(t *testing.T) {
	c := New(nil)
	resp := jsonResponse(500, "Internal Server Error", `{"status":500,"message":"hello world"}`)

	_, apiErr := c.Classify(resp, map[int]string{500: "Custom message: Internal Server Error"}, "")
	if apiErr == nil {
		t.Fatal("expected APIError")
	}
	if apiErr.Name != "ApiError" {
		t.Errorf("expected name ApiError, got %q", apiErr.Name)
	}
	if apiErr.Message != "Custom message: Internal Server Error" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Status != 500 || apiErr.StatusText != "Internal Server Error" || apiErr.URL != resp.URL {
		t.Errorf("response fields not copied: %+v", apiErr)
	}
	want := map[string]any{"status": float64(500), "message": "hello world"}
	if !reflect.DeepEqual(apiErr.Body, want) {
		t.Errorf("expected body %v, got %v", want, apiErr.Body)
	}
}

func TestClassify_GenericMessage(t *testing.T) {
	_, apiErr := New(nil).Classify(jsonResponse(409, "Conflict", `{"status":409,"message":"hello world"}`), nil, "")
	if apiErr == nil {
		t.Fatal("expected APIError")
	}
	if apiErr.Message != "Generic Error" || apiErr.StatusText != "Conflict" || apiErr.Status != 409 {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestMessage_Precedence(t *testing.T) {
	c := New(map[int]string{404: "config 404", 418: "config teapot"})

	tests := []struct {
		name   string
		status int
		call   map[int]string
		want   string
	}{
		{"builtin", 401, nil, "Unauthorized"},
		{"config over builtin", 404, nil, "config 404"},
		{"config only", 418, nil, "config teapot"},
		{"call over config", 404, map[int]string{404: "call 404"}, "call 404"},
		{"call over builtin", 500, map[int]string{500: "call 500"}, "call 500"},
		{"fallback", 409, map[int]string{500: "x"}, GenericMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Message(tt.status, tt.call); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDefaultMessages_ReturnsCopy(t *testing.T) {
	table := DefaultMessages()
	if table[404] != "Not Found" || len(table) != 7 {
		t.Fatalf("unexpected built-in table %v", table)
	}

	table[404] = "changed"
	delete(table, 500)

	if got := DefaultMessages()[404]; got != "Not Found" {
		t.Errorf("built-in table was modified through a copy: 404 -> %q", got)
	}
	c := New(nil)
	if got := c.Message(404, nil); got != "Not Found" {
		t.Errorf("expected classifier to keep built-in 404, got %q", got)
	}
	if got := c.Message(500, nil); got != "Internal Server Error" {
		t.Errorf("expected classifier to keep built-in 500, got %q", got)
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	a := map[int]string{1: "a"}
	b := map[int]string{1: "b", 2: "b"}

	merged := Merge(a, nil, b)
	if merged[1] != "b" || merged[2] != "b" {
		t.Errorf("unexpected merge %v", merged)
	}
	if a[1] != "a" || len(a) != 1 {
		t.Errorf("input modified: %v", a)
	}
}

func TestClassify_ResponseHeader(t *testing.T) {
	c := New(nil)
	resp := &transport.Response{
		Status: 201,
		Header: http.Header{"Location": {"/pets/7"}, "Content-Type": {"text/plain"}},
		Body:   []byte("created"),
	}

	payload, _ := c.Classify(resp, nil, "location")
	if payload != "/pets/7" {
		t.Errorf("expected header payload, got %v", payload)
	}

	payload, _ = c.Classify(resp, nil, "X-Missing")
	if payload != "created" {
		t.Errorf("expected body when header is absent, got %v", payload)
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{"empty", "application/json", "", nil},
		{"json", "application/json; charset=utf-8", `{"a":true}`, map[string]any{"a": true}},
		{"problem json", "application/problem+json", `{"title":"x"}`, map[string]any{"title": "x"}},
		{"invalid json", "application/json", `{oops`, "{oops"},
		{"text", "text/plain", "hello", "hello"},
		{"no content type", "", "hello", "hello"},
		{"binary", "application/octet-stream", "\x00\x01", []byte("\x00\x01")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.contentType != "" {
				h.Set("Content-Type", tt.contentType)
			}
			got := DecodeBody(&transport.Response{Header: h, Body: []byte(tt.body)})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestAPIError_JSONShape(t *testing.T) {
	apiErr := &APIError{Name: ErrorName, Message: "m", URL: "u", Status: 500, StatusText: "s", Body: nil}
	data, err := json.Marshal(apiErr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"ApiError","message":"m","url":"u","status":500,"statusText":"s","body":null}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestAsAPIError(t *testing.T) {
	var err error = &APIError{Name: ErrorName, Status: 404}
	if _, ok := AsAPIError(err); !ok {
		t.Error("expected APIError")
	}
	if !IsStatus(err, 404) || IsStatus(err, 500) {
		t.Error("IsStatus mismatch")
	}
	if err.Error() != "" {
		t.Errorf("expected empty message, got %q", err.Error())
	}
}

// Package testapi is a small generated-style API used to exercise the
// client end to end against internal/mockserver.
package testapi

import (
	"context"
	"net/http"

	"github.com/kbukum/apiclient/client"
	"github.com/kbukum/apiclient/request"
)

// APIClient aggregates the services over one client.
type APIClient struct {
	Simple     *SimpleService
	Errors     *ErrorService
	Parameters *ParametersService
	Complex    *ComplexService

	client *client.Client
}

// New builds the client and its services.
func New(cfg client.Config, opts ...client.Option) (*APIClient, error) {
	c, err := client.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &APIClient{
		Simple:     &SimpleService{c: c},
		Errors:     &ErrorService{c: c},
		Parameters: &ParametersService{c: c},
		Complex:    &ComplexService{c: c},
		client:     c,
	}, nil
}

// Client returns the underlying client.
func (a *APIClient) Client() *client.Client {
	return a.client
}

// SimpleService calls the parameterless echo route with each method.
type SimpleService struct {
	c *client.Client
}

func simple(name, method string) request.Operation {
	return request.Operation{Name: name, Method: method, URL: "/api/v{api-version}/simple"}
}

// GetCallWithoutParametersAndResponse issues GET /simple.
func (s *SimpleService) GetCallWithoutParametersAndResponse(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, simple("getCallWithoutParametersAndResponse", http.MethodGet))
}

// GetCallWithoutParametersAndResponseEither is the Either form of
// GetCallWithoutParametersAndResponse.
func (s *SimpleService) GetCallWithoutParametersAndResponseEither(ctx context.Context) (*client.PendingEither[Echo], error) {
	return client.CallEither[Echo](ctx, s.c, simple("getCallWithoutParametersAndResponse", http.MethodGet))
}

// PutCallWithoutParametersAndResponse issues PUT /simple.
func (s *SimpleService) PutCallWithoutParametersAndResponse(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, simple("putCallWithoutParametersAndResponse", http.MethodPut))
}

// PostCallWithoutParametersAndResponse issues POST /simple.
func (s *SimpleService) PostCallWithoutParametersAndResponse(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, simple("postCallWithoutParametersAndResponse", http.MethodPost))
}

// DeleteCallWithoutParametersAndResponse issues DELETE /simple.
func (s *SimpleService) DeleteCallWithoutParametersAndResponse(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, simple("deleteCallWithoutParametersAndResponse", http.MethodDelete))
}

// PatchCallWithoutParametersAndResponse issues PATCH /simple.
func (s *SimpleService) PatchCallWithoutParametersAndResponse(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, simple("patchCallWithoutParametersAndResponse", http.MethodPatch))
}

// Slow issues a request the server only answers on shutdown.
func (s *SimpleService) Slow(ctx context.Context) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, request.Operation{
		Name:   "slow",
		Method: http.MethodGet,
		URL:    "/api/v{api-version}/slow",
	})
}

// ErrorService requests a chosen status code.
type ErrorService struct {
	c *client.Client
}

// errorMessages is the per-operation error table.
var errorMessages = map[int]string{
	500: "Custom message: Internal Server Error",
	501: "Custom message: Not Implemented",
	502: "Custom message: Bad Gateway",
	503: "Custom message: Service Unavailable",
}

func testErrorCode(status int) request.Operation {
	return request.Operation{
		Name:   "testErrorCode",
		Method: http.MethodPost,
		URL:    "/api/v{api-version}/error",
		Query:  map[string]any{"status": status},
		Errors: errorMessages,
	}
}

// TestErrorCode makes the server reply with status.
func (s *ErrorService) TestErrorCode(ctx context.Context, status int) (*client.Pending[any], error) {
	return client.Call[any](ctx, s.c, testErrorCode(status))
}

// TestErrorCodeEither is the Either form of TestErrorCode.
func (s *ErrorService) TestErrorCodeEither(ctx context.Context, status int) (*client.PendingEither[any], error) {
	return client.CallEither[any](ctx, s.c, testErrorCode(status))
}

// ParametersService sends values in every request location.
type ParametersService struct {
	c *client.Client
}

// CallWithParameters sends p as path, query, header, cookie and JSON body.
func (s *ParametersService) CallWithParameters(ctx context.Context, p Parameters) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, request.Operation{
		Name:    "callWithParameters",
		Method:  http.MethodPost,
		URL:     "/api/v{api-version}/parameters/{parameterPath}",
		Path:    map[string]any{"parameterPath": p.Path},
		Query:   map[string]any{"parameterQuery": p.Query},
		Headers: map[string]any{"parameterHeader": p.Header},
		Cookies: map[string]any{"parameterCookie": p.Cookie},
		Body:    p.Body,
	})
}

// CallWithForm sends p as a multipart form plus path, query and header.
func (s *ParametersService) CallWithForm(ctx context.Context, p FormParameters) (*client.Pending[Echo], error) {
	form := map[string]any{"parameterForm": p.Form}
	if p.File != nil {
		form["file"] = request.File{Name: p.File.Name, ContentType: p.File.ContentType, Data: p.File.Data}
	}
	return client.Call[Echo](ctx, s.c, request.Operation{
		Name:     "callWithForm",
		Method:   http.MethodPost,
		URL:      "/api/v{api-version}/parameters/{parameterPath}",
		Path:     map[string]any{"parameterPath": p.Path},
		Query:    map[string]any{"parameterQuery": p.Query},
		Headers:  map[string]any{"parameterHeader": p.Header},
		FormData: form,
	})
}

// CallWithQuery sends arbitrary query parameters with a GET.
func (s *ParametersService) CallWithQuery(ctx context.Context, query map[string]any) (*client.Pending[Echo], error) {
	return client.Call[Echo](ctx, s.c, request.Operation{
		Name:   "callWithQuery",
		Method: http.MethodGet,
		URL:    "/api/v{api-version}/parameters/{parameterPath}",
		Path:   map[string]any{"parameterPath": "query"},
		Query:  query,
	})
}

// ComplexService round-trips nested bodies.
type ComplexService struct {
	c *client.Client
}

// ComplexTypes posts body and decodes the echoed value.
func (s *ComplexService) ComplexTypes(ctx context.Context, body ComplexBody) (*client.Pending[ComplexBody], error) {
	return client.Call[ComplexBody](ctx, s.c, request.Operation{
		Name:   "complexTypes",
		Method: http.MethodPost,
		URL:    "/api/v{api-version}/complex",
		Body:   body,
	})
}

// CallWithResultFromHeader returns the value of the named response header.
func (s *ComplexService) CallWithResultFromHeader(ctx context.Context, name, value string) (*client.Pending[string], error) {
	return client.Call[string](ctx, s.c, request.Operation{
		Name:           "callWithResultFromHeader",
		Method:         http.MethodGet,
		URL:            "/api/v{api-version}/header",
		Query:          map[string]any{"name": name, "value": value},
		ResponseHeader: name,
	})
}

package auth

import (
	"context"
	"encoding/base64"

	"github.com/kbukum/apiclient/errors"
)

const (
	// HeaderAuthorization is the header set by Authorization.
	HeaderAuthorization = "Authorization"

	bearerPrefix = "Bearer "
	basicPrefix  = "Basic "
)

// Credentials holds the credential sources of a client configuration.
// Empty strings mean absent.
type Credentials struct {
	// Token takes priority over Username/Password when it resolves to a non-empty value.
	Token TokenSource
	// Username for HTTP basic authentication.
	Username string
	// Password for HTTP basic authentication.
	Password string
}

// IsZero reports whether no credential source is configured.
func (c Credentials) IsZero() bool {
	return c.Token == nil && c.Username == "" && c.Password == ""
}

// Authorization resolves the Authorization header value for one call.
// It returns "" when no credentials apply. A failing token provider is
// reported as an AUTH_FAILED error.
func (c Credentials) Authorization(ctx context.Context) (string, error) {
	if c.Token != nil {
		token, err := c.Token.Token(ctx)
		if err != nil {
			return "", errors.AuthFailed(err)
		}
		if token != "" {
			return bearerPrefix + token, nil
		}
	}
	if c.Username != "" && c.Password != "" {
		return BasicValue(c.Username, c.Password), nil
	}
	return "", nil
}

// BasicValue returns the Basic authorization value for a username/password pair.
func BasicValue(username, password string) string {
	return basicPrefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

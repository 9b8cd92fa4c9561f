package auth

import "context"

// TokenSource yields a bearer token. The set of implementations is closed:
// StaticToken and TokenFunc.
type TokenSource interface {
	// Token resolves the token for a single call.
	Token(ctx context.Context) (string, error)

	tokenSource()
}

// StaticToken is a fixed bearer token used verbatim.
type StaticToken string

// Token returns the static token.
func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

func (StaticToken) tokenSource() {}

// TokenFunc produces a token on demand, e.g. from a refresh endpoint.
// It is invoked exactly once per call.
type TokenFunc func(ctx context.Context) (string, error)

// Token invokes the function. A nil TokenFunc yields no token.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	if f == nil {
		return "", nil
	}
	return f(ctx)
}

func (TokenFunc) tokenSource() {}

// Package jwt provides a token source that signs a fresh JWT for every call.
//
// It suits APIs that accept self-issued service tokens: each dispatch asks
// the provider for a token, so every request carries a token with its own
// issued-at, expiry and ID.
//
//	p, err := jwt.NewProvider(jwt.Config{Secret: key, Issuer: "billing", TTL: time.Minute})
//	cfg := client.Config{Base: "https://api.example.com", Token: p.Source()}
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/apiclient/auth"
)

// SigningMethod defines supported HMAC signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the provider.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string
	// Method is the signing algorithm (default: HS256).
	Method SigningMethod
	// Issuer is the "iss" claim (optional).
	Issuer string
	// Subject is the "sub" claim (optional).
	Subject string
	// Audience is the "aud" claim (optional).
	Audience []string
	// TTL is the lifetime of each minted token (default: 5m).
	TTL time.Duration
}

func (c *Config) applyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
		return nil
	default:
		return errors.New("jwt: unsupported signing method: " + string(c.Method))
	}
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// Provider mints signed tokens.
type Provider struct {
	cfg Config
	now func() time.Time
}

// NewProvider creates a Provider.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// Token signs a new token. It fails if ctx is already done.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := p.now()
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    p.cfg.Issuer,
		Subject:   p.cfg.Subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(p.cfg.TTL)),
	}
	if len(p.cfg.Audience) > 0 {
		claims.Audience = gojwt.ClaimStrings(p.cfg.Audience)
	}
	signed, err := gojwt.NewWithClaims(p.cfg.signingMethod(), claims).SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Source adapts the provider to an auth.TokenSource.
func (p *Provider) Source() auth.TokenSource {
	return auth.TokenFunc(p.Token)
}

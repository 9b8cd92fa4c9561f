package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/apiclient/auth"
)

func parse(t *testing.T, token, secret string) *gojwt.RegisteredClaims {
	t.Helper()
	claims := &gojwt.RegisteredClaims{}
	_, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return claims
}

func TestProvider_TokenClaims(t *testing.T) {
	p, err := NewProvider(Config{Secret: "s3cret", Issuer: "billing", Subject: "svc", Audience: []string{"api"}, TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	fixed := time.Now().Truncate(time.Second)
	p.now = func() time.Time { return fixed }

	tok, err := p.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	claims := parse(t, tok, "s3cret")
	if claims.Issuer != "billing" || claims.Subject != "svc" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(time.Minute)) {
		t.Errorf("expected exp %v, got %v", fixed.Add(time.Minute), claims.ExpiresAt.Time)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != "api" {
		t.Errorf("unexpected audience %v", claims.Audience)
	}
}

func TestProvider_FreshTokenPerCall(t *testing.T) {
	p, _ := NewProvider(Config{Secret: "k"})
	a, _ := p.Token(context.Background())
	b, _ := p.Token(context.Background())
	if a == b {
		t.Error("expected distinct tokens per call")
	}
}

func TestProvider_Source(t *testing.T) {
	p, _ := NewProvider(Config{Secret: "k", Method: HS512})
	creds := auth.Credentials{Token: p.Source()}
	header, err := creds.Authorization(context.Background())
	if err != nil {
		t.Fatalf("Authorization: %v", err)
	}
	if !strings.HasPrefix(header, "Bearer ") {
		t.Fatalf("expected bearer header, got %q", header)
	}
	parse(t, strings.TrimPrefix(header, "Bearer "), "k")
}

func TestProvider_CancelledContext(t *testing.T) {
	p, _ := NewProvider(Config{Secret: "k"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Token(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewProvider_Validation(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error without secret")
	}
	if _, err := NewProvider(Config{Secret: "k", Method: "RS256"}); err == nil {
		t.Error("expected error for unsupported method")
	}
}

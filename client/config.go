package client

import (
	"maps"
	"slices"

	"github.com/kbukum/apiclient/auth"
	"github.com/kbukum/apiclient/errors"
	"github.com/kbukum/apiclient/logger"
	"github.com/kbukum/apiclient/request"
	"github.com/kbukum/apiclient/resilience"
	"github.com/kbukum/apiclient/transport"
	"github.com/kbukum/apiclient/validation"
)

// Config is the client configuration. It is copied when a Client is built.
type Config struct {
	// Base is prepended to every operation path.
	Base string `yaml:"base" mapstructure:"base" validate:"omitempty,url"`
	// Version replaces {api-version} in operation paths.
	Version string `yaml:"version" mapstructure:"version"`

	// Token is a static bearer token.
	Token string `yaml:"token" mapstructure:"token"`
	// TokenSource, when set, is used instead of Token.
	TokenSource auth.TokenSource `yaml:"-" mapstructure:"-"`
	// Username and Password enable basic auth when no token is configured.
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// Headers are sent with every request. Call-level headers win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// ErrorMessages overrides the built-in status->message table.
	ErrorMessages map[int]string `yaml:"error_messages" mapstructure:"error_messages"`

	// HTTP configures the default transport.
	HTTP transport.HTTPConfig `yaml:"http" mapstructure:"http"`
	// Limits configures admission control. Zero disables it.
	Limits resilience.Config `yaml:"limits" mapstructure:"limits"`
	// Logging enables a client logger when Level is set.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level != "" {
		c.Logging.ApplyDefaults()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(c.Headers)) {
		if err := request.CheckHeader(name, c.Headers[name]); err != nil {
			return errors.InvalidInput("headers", err.Error()).WithCause(err)
		}
	}
	if err := c.HTTP.TLS.Validate(); err != nil {
		return err
	}
	if c.Logging.Level != "" {
		return c.Logging.Validate()
	}
	return nil
}

// Credentials returns the credential sources the dispatcher resolves.
func (c *Config) Credentials() auth.Credentials {
	creds := auth.Credentials{Username: c.Username, Password: c.Password}
	switch {
	case c.TokenSource != nil:
		creds.Token = c.TokenSource
	case c.Token != "":
		creds.Token = auth.StaticToken(c.Token)
	}
	return creds
}

// clone returns a deep copy so later changes by the caller cannot reach a
// constructed client.
func (c Config) clone() Config {
	if c.Headers != nil {
		headers := make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		c.Headers = headers
	}
	if c.ErrorMessages != nil {
		messages := make(map[int]string, len(c.ErrorMessages))
		for k, v := range c.ErrorMessages {
			messages[k] = v
		}
		c.ErrorMessages = messages
	}
	if c.HTTP.TLS != nil {
		tls := *c.HTTP.TLS
		c.HTTP.TLS = &tls
	}
	return c
}

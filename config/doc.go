// Package config loads client configuration from files and the environment.
//
// It uses Viper to read <name>.yml (or config.yml) from standard locations,
// godotenv to load an optional .env file, and binds environment variables
// carrying the APICLIENT_ prefix on top.
//
// # Usage
//
//	cfg, err := config.Load("petstore")
//	c, err := client.New(cfg)
//
// Nested keys are addressed with underscores, e.g. APICLIENT_HTTP_TIMEOUT=5s
// or APICLIENT_LIMITS_MAX_CONCURRENT=4.
package config

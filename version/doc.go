// Package version reports the client library version and derives the
// User-Agent sent with every request.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/apiclient/version.Version=1.0.0"
package version

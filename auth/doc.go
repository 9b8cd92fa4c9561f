// Package auth resolves the Authorization header for an outbound call.
//
// A client holds Credentials: an optional TokenSource plus an optional
// username/password pair. Authorization is computed once per call, right
// before dispatch, and is never cached, so rotating token providers see one
// invocation per call.
//
//	creds := auth.Credentials{Token: auth.TokenFunc(fetchToken)}
//	header, err := creds.Authorization(ctx) // "Bearer <token>"
//
// Precedence: a token source wins over basic credentials. An empty resolved
// token counts as absent.
package auth

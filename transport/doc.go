// Package transport performs the network exchange for a built request.
//
// A Transport receives an absolute URL and Options and returns the raw
// Response, whatever its status. Non-2xx responses are not errors at this
// layer; only failures to obtain a response are. The default implementation
// wraps net/http. Middleware adds logging, tracing, request IDs and
// admission control around any Transport, including user-supplied ones.
package transport

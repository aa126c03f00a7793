// Package server provides the short-lived loopback HTTP listener that
// receives the authorization handshake redirect.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] implements the authorization-code callback. It validates
// the state parameter (CSRF protection), extracts the code from the query
// string, and sends it through a channel to the waiting token manager. The
// code itself is exchanged remotely by the token broker, which holds the
// client secret; nothing sensitive is processed locally.
//
// The handler accepts exactly one callback. The listener is bound to a
// fixed loopback port, started just before the browser opens the consent
// URL, and torn down as soon as a code is delivered or the handshake times
// out. No other component of the application accepts inbound connections.
package server

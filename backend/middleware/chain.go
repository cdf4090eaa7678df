// ABOUTME: Middleware type and chaining for route handlers
// ABOUTME: Composes middleware so the first listed runs outermost

package middleware

import "net/http"

// Middleware wraps a handler
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so that Chain(h, a, b) serves as a(b(h)).
func Chain(h http.HandlerFunc, mws ...Middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

package httpkit

import "socialfeed/internal/platform/net/middleware"

// Protected groups routes that require a verified bearer token
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Optional groups routes that accept a bearer token but serve anonymous callers too
func Optional(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.OptionalAuth(p))
		fn(gr)
	})
}

package http

import (
	"net/http"

	pnet "socialfeed/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router (root mux or sub-router) to Router
type chiRouter struct{ r chi.Router }

// AdaptChi adapts a *chi.Mux to a Router and installs envelope-shaped 404/405 handlers
func AdaptChi(m *chi.Mux) Router {
	m.NotFound(Handle(func(*http.Request) Response { return Error(errNoRoute) }))
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_, env := pnet.OK(http.StatusMethodNotAllowed, nil, pnet.RequestID(r.Context()))
		env.Error = "method not allowed"
		JSON(w, http.StatusMethodNotAllowed, env)
	})
	return chiRouter{r: m}
}

func (c chiRouter) Get(p string, h Handler)  { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Head(p string, h Handler) { c.r.Method(http.MethodHead, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }

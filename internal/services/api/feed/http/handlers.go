// Package http provides http transport for the feeds
package http

import (
	stdhttp "net/http"

	"socialfeed/internal/core/viewer"
	"socialfeed/internal/modkit/httpkit"
	perr "socialfeed/internal/platform/errors"
	pnet "socialfeed/internal/platform/net"
	"socialfeed/internal/platform/net/http/bind"
	"socialfeed/internal/services/api/feed/domain"
)

// Register mounts the home feed behind auth and explore behind optional auth
func Register(r httpkit.Router, s domain.ServicePort, auth *httpkit.Port) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Get(pr, "/home", h.home)
	})
	httpkit.Optional(r, auth, func(or httpkit.Router) {
		httpkit.Get(or, "/explore", h.explore)
	})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /feed/home Feed feedHome
// @Summary Posts by accounts the caller follows, newest first
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1..50)" default(10)
// @Param cursor query string false "next_cursor from the previous page"
// @Success 200 {object} domain.Page "ok"
// @Failure 400 {object} httpkit.Envelope "invalid limit or cursor"
// @Failure 401 {object} httpkit.Envelope "missing or invalid bearer token"
// @Router /feed/home [get]
func (h *handlers) home(r *stdhttp.Request) (any, error) {
	q, err := query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Home(r.Context(), viewerOf(r), q)
}

// swagger:route GET /feed/explore Feed feedExplore
// @Summary Every post, newest first
// @Description A bearer token is optional and only fills is_liked_by_current_user
// @Tags Feed
// @Produce json
// @Param limit query int false "Page size (1..50)" default(10)
// @Param cursor query string false "next_cursor from the previous page"
// @Success 200 {object} domain.Page "ok"
// @Failure 400 {object} httpkit.Envelope "invalid limit or cursor"
// @Router /feed/explore [get]
func (h *handlers) explore(r *stdhttp.Request) (any, error) {
	q, err := query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Explore(r.Context(), viewerOf(r), q)
}

// query binds limit and cursor over the defaults. Every limit failure reads the same,
// whether the value was not a number or out of range
func query(r *stdhttp.Request) (domain.FeedQuery, error) {
	q, err := bind.ParseQuery(r, domain.DefaultQuery())
	if e, ok := perr.As(err); ok && e.Field() == "limit" {
		return q, domain.InvalidLimit()
	}
	return q, err
}

func viewerOf(r *stdhttp.Request) viewer.Viewer {
	return viewer.FromSubject(pnet.UserID(r.Context()))
}

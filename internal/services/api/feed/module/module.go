// Package module wires the feeds into the API using modkit
package module

import (
	"net/http"

	modkit "socialfeed/internal/modkit"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/repokit"
	str "socialfeed/internal/platform/strings"
	feedhttp "socialfeed/internal/services/api/feed/http"
	feedrepo "socialfeed/internal/services/api/feed/repo"
	feedsvc "socialfeed/internal/services/api/feed/service"
	engdomain "socialfeed/internal/services/engagement/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc feedsvc.Service
}

// New constructs the feed module. The like overlay comes from the engagement
// module and must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("feed"), modkit.WithPrefix("/feed")}, opts...)...)

	likes, ok := b.Ports.(repokit.Binder[engdomain.ResolverPort])
	if !ok {
		panic("feed module requires a likes binder via modkit.WithPorts")
	}
	svc := feedsvc.New(deps.PG, feedrepo.NewPG(), likes, deps.Cursor)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Feed: svc},
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		feedhttp.Register(r, m.svc, deps.Auth)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

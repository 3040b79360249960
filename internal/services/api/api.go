// Package api provides the HTTP API for the application
package api

import (
	"socialfeed/internal/core/cursor"
	"socialfeed/internal/platform/config"
	"socialfeed/internal/platform/logger"
	phttp "socialfeed/internal/platform/net/http"
	"socialfeed/internal/platform/store"

	"socialfeed/internal/modkit"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/module"
	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/modkit/swaggerkit"

	feedmod "socialfeed/internal/services/api/feed/module"
	metamod "socialfeed/internal/services/api/meta/module"

	// engagement owns the likes overlay; it serves no routes
	engdomain "socialfeed/internal/services/engagement/domain"
	engmod "socialfeed/internal/services/engagement/module"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Tokens verifies bearer tokens; nil rejects every protected route
	Tokens httpkit.TokenFunc
	// Cursor encodes and checks pagination cursors
	Cursor cursor.Codec

	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:    *log,
		Cfg:    opt.Config,
		Cursor: opt.Cursor,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}
	if opt.Tokens != nil {
		deps.Auth = httpkit.NewPortFunc(opt.Tokens)
	}

	// engagement first; the feed module reads likes through its binder
	engagement := engmod.New(deps)
	likes := module.MustPortsOf[repokit.Binder[engdomain.ResolverPort]](engagement)

	mods := []module.Module{
		metamod.New(deps),
		engagement,
		feedmod.New(deps, modkit.WithPorts(likes)),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	log.Info().
		Int("modules", len(mods)).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Bool("metrics", opt.EnableMetrics).
		Bool("signed_cursors", opt.Cursor.Signed()).
		Msg("api mounted")
}

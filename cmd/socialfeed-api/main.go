// @title         Socialfeed API
// @version       0.1.0
// @description   Cursor paginated home and explore feeds

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialfeed/internal/core/cursor"
	"socialfeed/internal/core/version"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/platform/auth"
	"socialfeed/internal/platform/config"
	"socialfeed/internal/platform/logger"
	phttp "socialfeed/internal/platform/net/http"
	"socialfeed/internal/platform/net/middleware"
	"socialfeed/internal/platform/store"
	"socialfeed/internal/platform/trace"

	"socialfeed/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting")

	shutdownTrace, err := trace.Setup(ctx, trace.FromConfig(root, version.Service))
	if err != nil {
		l.Panic().Err(err).Msg("trace setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTrace(sctx); err != nil {
			l.Error().Err(err).Msg("trace shutdown failed")
		}
	}()

	st, err := store.Open(ctx, store.Config{
		AppName: version.Service,
		PG: store.PGConfig{
			Enabled:          true,
			URL:              pgCfg.MustString("DBURL"),
			MaxConns:         int32(pgCfg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs:      pgCfg.MayInt("SLOW_MS", 200),
			LogSQL:           pgCfg.MayBool("LOG_SQL", false),
			StatementTimeout: pgCfg.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
			ConnectRetries:   pgCfg.MayInt("CONNECT_RETRIES", 10),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	verifier, err := auth.NewVerifier(auth.Options{
		Secret: apiCfg.MustSecret("JWT_SECRET", 16),
		Issuer: apiCfg.MayString("JWT_ISSUER", ""),
		Leeway: apiCfg.MayDuration("JWT_LEEWAY", 30*time.Second),
	})
	if err != nil {
		l.Panic().Err(err).Msg("auth verifier")
	}

	// http server (reads CORE_API_PORT and timeouts); tracing sees every request
	srv := phttp.NewServer(apiCfg,
		phttp.WithOuter(trace.Middleware(version.Service)),
		phttp.WithOuter(middleware.Heartbeat("/ping")),
	)

	api.Mount(srv.Router(), api.Options{
		Config: apiCfg,
		Store:  st,
		Logger: l,
		Tokens: verifier.TokenFunc(),
		Cursor: cursor.New(apiCfg.MayBytes("CURSOR_SECRET")),
		Stack: httpkit.StackOptions{
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 10*time.Second),
			SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", time.Second),
		},
		EnableSwagger:  apiCfg.MayBool("ENABLE_SWAGGER", false),
		EnableProfiler: apiCfg.MayBool("ENABLE_PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("ENABLE_METRICS", true),
	})

	// run until SIGINT/SIGTERM, then drain
	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second)); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("stopped")
}

package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"socialfeed/internal/platform/config"
	"socialfeed/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server is a thin wrapper over chi and the stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
	wrap []func(stdhttp.Handler) stdhttp.Handler
}

// Option customizes the server at construction
type Option func(*Server)

// WithOuter wraps the whole mux, outermost last. Use it for handlers that must see every
// request before routing, such as tracing
func WithOuter(mw func(stdhttp.Handler) stdhttp.Handler) Option {
	return func(s *Server) { s.wrap = append(s.wrap, mw) }
}

// NewServer reads PORT and timeouts from cfg (usually the CORE_API_ scope)
func NewServer(cfg config.Conf, opts ...Option) *Server {
	s := &Server{
		addr: cfg.MayString("PORT", ":4000"),
		mux:  chi.NewRouter(),
	}
	for _, o := range opts {
		o(s)
	}

	var h stdhttp.Handler = s.mux
	for _, mw := range s.wrap {
		h = mw(h)
	}

	s.srv = &stdhttp.Server{
		Addr:              s.addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 60*time.Second),
	}
	return s
}

// Router returns the Router facade over the root mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler returns the fully wrapped root handler
func (s *Server) Handler() stdhttp.Handler { return s.srv.Handler }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is done, then drains in-flight requests for up to grace
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, grace)
}

// Serve is Run over an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", grace).Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

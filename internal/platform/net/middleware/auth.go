package middleware

import (
	"context"
	"net/http"

	"socialfeed/internal/platform/logger"
	pnet "socialfeed/internal/platform/net"
)

// AuthPort resolves the caller's user id from a request
type AuthPort interface {
	Parse(r *http.Request) (userID string, err error)
}

// Writer writes a status and body; phttp.JSON satisfies it
type Writer func(w http.ResponseWriter, status int, body any)

// Auth rejects requests the port cannot resolve, writing the error envelope.
// A nil port lets everything through anonymously
func Auth(p AuthPort, write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(withViewer(r, uid)))
		})
	}
}

// OptionalAuth attaches the user id when the request carries a usable credential and
// otherwise continues anonymously. Bad credentials are logged, never rejected
func OptionalAuth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil || r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				logger.C(r.Context()).Debug().Err(err).Msg("optional auth ignored credential")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withViewer(r, uid)))
		})
	}
}

func withViewer(r *http.Request, uid string) context.Context {
	ctx := pnet.WithUser(r.Context(), uid)
	return logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
}

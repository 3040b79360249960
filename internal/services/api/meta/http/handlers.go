// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"strings"
	"time"

	"socialfeed/internal/core/version"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/platform/store"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          repokit.Queryer

	// Tables must all resolve for the feeds to serve; empty skips the schema check
	Tables []string
	// ReadyTimeout bounds the whole readiness probe; zero means 2s
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"socialfeed-api"`
	Started string `json:"started"  example:"2026-01-12T13:00:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
	Now     string `json:"now"      example:"2026-01-12T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-01-12T13:05:00Z"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "store down or schema incomplete"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	checks := []ReadyCheck{h.ping(ctx)}
	if checks[0].Status == "ok" && len(h.deps.Tables) > 0 {
		checks = append(checks, h.schema(ctx))
	}

	out := ReadyResponse{
		Status: "ok",
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, c := range checks {
		switch c.Status {
		case "fail":
			out.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
		case "skipped":
			out.Status = "degraded"
		}
	}
	return out, nil
}

func (h *handlers) ping(ctx stdctx.Context) ReadyCheck {
	var err error
	switch pg := h.deps.PG.(type) {
	case nil:
		return ReadyCheck{Name: "pg", Status: "skipped"}
	case store.Pinger:
		err = pg.Ping(ctx)
	default:
		var one int
		err = pg.QueryRow(ctx, "select 1").Scan(&one)
	}
	if err != nil {
		return ReadyCheck{Name: "pg", Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: "pg", Status: "ok"}
}

const missingTables = `select t from unnest($1::text[]) as t where to_regclass(t) is null`

func (h *handlers) schema(ctx stdctx.Context) ReadyCheck {
	missing, err := store.Many(ctx, h.deps.PG, func(row store.Row) (string, error) {
		var t string
		err := row.Scan(&t)
		return t, err
	}, missingTables, h.deps.Tables)
	switch {
	case err != nil:
		return ReadyCheck{Name: "schema", Status: "fail", Error: err.Error()}
	case len(missing) > 0:
		return ReadyCheck{Name: "schema", Status: "fail", Error: "missing relations: " + strings.Join(missing, ", ")}
	}
	return ReadyCheck{Name: "schema", Status: "ok"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// Package pg opens the pgxpool behind the store and carries its query tracer
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures pgxpool for pg
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG is a postgres client with pool and optional tracer
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int

	reg prometheus.Registerer
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, applies MaxConns and the optional mutator, then builds the pool.
// The pool connects lazily; callers ping before trusting it
func Open(ctx context.Context, cfg Config, tracer QueryTracer, poolCfgMut func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if poolCfgMut != nil {
		poolCfgMut(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Ping checks one pooled connection
func (p *PG) Ping(ctx context.Context) error { return p.Pool.Ping(ctx) }

// RegisterMetrics exports pool stats through reg until Close
func (p *PG) RegisterMetrics(reg prometheus.Registerer) error {
	if err := reg.Register(p.Collector()); err != nil {
		return err
	}
	p.reg = reg
	return nil
}

// Close unregisters pool metrics and closes the pool
func (p *PG) Close() {
	if p == nil {
		return
	}
	if p.reg != nil {
		p.reg.Unregister(p.Collector())
		p.reg = nil
	}
	if p.Pool != nil {
		p.Pool.Close()
	}
}

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"socialfeed/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// sleep is a seam so tests do not wait through backoff
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// openPG opens the pool, waits for it to answer a ping, and only then publishes the adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pc := cfg.PG.withDefaults()

	tracer := pg.Tracer(s.Log, pg.TracerOptions{LogSQL: pc.LogSQL})

	p, err := pg.Open(ctx, pg.Config{
		URL:      pc.URL,
		MaxConns: pc.MaxConns,
		SlowMs:   pc.SlowQueryMs,
	}, tracer, runtimeParams(cfg.AppName, pc.StatementTimeout))
	if err != nil {
		return nil, err
	}

	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)
	var lastErr error
	backoff := backoffStart
	for attempt := 1; attempt <= pc.ConnectRetries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pc.PingTimeout)
		lastErr = p.Ping(pctx)
		cancel()
		if lastErr == nil {
			if err := p.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
				s.Log.Warn().Err(err).Msg("pool metrics not registered")
			}
			return newPGAdapter(p), nil
		}
		if attempt == pc.ConnectRetries {
			break
		}
		s.Log.Warn().Err(lastErr).Int("attempt", attempt).Dur("backoff", backoff).Msg("postgres not ready")
		if err := sleep(ctx, backoff); err != nil {
			p.Close()
			return nil, err
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", pc.ConnectRetries, lastErr)
}

func runtimeParams(appName string, stmtTimeout time.Duration) func(*pgxpool.Config) {
	return func(c *pgxpool.Config) {
		rp := c.ConnConfig.RuntimeParams
		if rp == nil {
			rp = map[string]string{}
			c.ConnConfig.RuntimeParams = rp
		}
		if appName != "" {
			rp["application_name"] = appName
		}
		if stmtTimeout > 0 {
			rp["statement_timeout"] = strconv.FormatInt(stmtTimeout.Milliseconds(), 10)
		}
	}
}

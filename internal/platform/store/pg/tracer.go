package pg

import (
	"context"
	"strings"

	"socialfeed/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "socialfeed_pg_query_duration_seconds",
	Help:    "Postgres statement latency by statement and outcome",
	Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
}, []string{"statement", "outcome"})

// TracerOptions picks what the tracer writes to the log.
// Slow and failed statements are always logged; LogSQL adds every statement and its args
type TracerOptions struct {
	LogSQL bool
}

// Tracer observes every statement into the query histogram and logs per opt
func Tracer(root logger.Logger, opt TracerOptions) QueryTracer {
	ll := root.With().Str("component", "pg").Logger()
	if opt.LogSQL {
		ll = ll.Level(zerolog.DebugLevel)
	}
	return &zlTracer{log: ll, all: opt.LogSQL}
}

type zlTracer struct {
	log logger.Logger
	all bool
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	stmt := statement(ev.SQL)
	outcome := "ok"
	if ev.Err != nil {
		outcome = "error"
	}
	queryDuration.WithLabelValues(stmt, outcome).Observe(float64(ev.ElapsedUS) / 1e6)

	var evt *zerolog.Event
	switch {
	case ev.Slow:
		evt = z.log.Warn()
	case ev.Err != nil:
		evt = z.log.Error()
	case z.all:
		evt = z.log.Info()
	default:
		return
	}
	if z.all {
		evt = evt.Str("sql", compact(ev.SQL)).Interface("args", ev.Args)
	}
	evt.Str("statement", stmt).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Err(ev.Err).
		Msg("pg query")
}

// statement labels sql by its verb and outermost relation, e.g. "select posts".
// Subqueries are skipped so the label only ever names a table, never a literal
func statement(sql string) string {
	f := strings.Fields(strings.ToLower(sql))
	if len(f) == 0 {
		return "empty"
	}
	verb := f[0]
	if verb == "update" && len(f) > 1 {
		return verb + " " + relation(f[1])
	}
	depth := 0
	for i := 1; i < len(f)-1; i++ {
		if depth == 0 && (f[i] == "from" || f[i] == "into") {
			return verb + " " + relation(f[i+1])
		}
		depth += strings.Count(f[i], "(") - strings.Count(f[i], ")")
	}
	return verb
}

func relation(tok string) string { return strings.Trim(tok, `"(),;`) }

// compact folds runs of whitespace into one space
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case '\n', '\t', '\r', ' ':
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

package pg

import "github.com/prometheus/client_golang/prometheus"

var (
	descAcquired = prometheus.NewDesc("socialfeed_pg_pool_acquired_conns", "Connections currently checked out", nil, nil)
	descIdle     = prometheus.NewDesc("socialfeed_pg_pool_idle_conns", "Idle connections in the pool", nil, nil)
	descTotal    = prometheus.NewDesc("socialfeed_pg_pool_total_conns", "All connections owned by the pool", nil, nil)
	descMax      = prometheus.NewDesc("socialfeed_pg_pool_max_conns", "Pool size limit", nil, nil)
	descWaits    = prometheus.NewDesc("socialfeed_pg_pool_empty_acquire_total", "Acquires that had to wait for a connection", nil, nil)
)

// Collector exports pool stats on every scrape
func (p *PG) Collector() prometheus.Collector { return poolCollector{p: p} }

type poolCollector struct{ p *PG }

func (c poolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{descAcquired, descIdle, descTotal, descMax, descWaits} {
		ch <- d
	}
}

func (c poolCollector) Collect(ch chan<- prometheus.Metric) {
	if c.p == nil || c.p.Pool == nil {
		return
	}
	st := c.p.Pool.Stat()
	ch <- prometheus.MustNewConstMetric(descAcquired, prometheus.GaugeValue, float64(st.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(descIdle, prometheus.GaugeValue, float64(st.IdleConns()))
	ch <- prometheus.MustNewConstMetric(descTotal, prometheus.GaugeValue, float64(st.TotalConns()))
	ch <- prometheus.MustNewConstMetric(descMax, prometheus.GaugeValue, float64(st.MaxConns()))
	ch <- prometheus.MustNewConstMetric(descWaits, prometheus.CounterValue, float64(st.EmptyAcquireCount()))
}

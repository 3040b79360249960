package service

import (
	perr "socialfeed/internal/platform/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var pagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "socialfeed_feed_pages_total",
	Help: "Feed page requests by feed and outcome",
}, []string{"feed", "outcome"})

var pageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "socialfeed_feed_page_duration_seconds",
	Help:    "Time to assemble one feed page, validation included",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
}, []string{"feed"})

var pagePosts = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "socialfeed_feed_page_posts",
	Help:    "Posts returned per successful page",
	Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
}, []string{"feed"})

func outcome(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeValidation:
		return "invalid"
	case perr.ErrorCodeUnauthorized:
		return "unauthorized"
	case perr.ErrorCodeCanceled, perr.ErrorCodeTimeout:
		return "canceled"
	default:
		return "error"
	}
}

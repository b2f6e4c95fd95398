// Package metrics exposes Prometheus metrics for the HTTP server.
package metrics

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quotecalc/core/types"
)

const namespace = "quotecalc"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "method", "status"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	quotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quotes computed, by country and display currency",
		},
		[]string{"country", "currency"},
	)

	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Unresolved lookups replaced by a fallback value, by field",
		},
		[]string{"field"},
	)
)

// ObserveRequest records one served request. route is the matched route
// pattern, never the raw path.
func ObserveRequest(route, method string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	requestsTotal.WithLabelValues(route, method, code).Inc()
	requestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}

// UnknownCountry labels quotes for countries outside the reference tables
const UnknownCountry = "unknown"

// CountryLabel returns country when it is one of known, UnknownCountry
// otherwise. Request text never becomes a label value directly.
func CountryLabel(country string, known []string) string {
	if slices.Contains(known, country) {
		return country
	}
	return UnknownCountry
}

// RecordQuote records a computed quote and the fallbacks it used. country
// must already be bounded by CountryLabel.
func RecordQuote(country string, currency types.CurrencyMode, fallbacks []types.Fallback) {
	quotesTotal.WithLabelValues(country, currency.String()).Inc()
	for _, fb := range fallbacks {
		fallbacksTotal.WithLabelValues(fb.Field).Inc()
	}
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

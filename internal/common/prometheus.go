package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	DiamondsCreditedTotal      = "diamonds_credited_total"
	CashoutsSettledTotal       = "cashouts_settled_total"
	ActiveSessions             = "active_sessions"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: ActiveSessions,
			Help: "Number of sessions held in memory",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		DiamondsCreditedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiamondsCreditedTotal,
			Help: "Count of all diamonds credited to ledgers",
		}, []string{"source"}),
		CashoutsSettledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CashoutsSettledTotal,
			Help: "Count of all settled cashouts",
		}, []string{"method"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)

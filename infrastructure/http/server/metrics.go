package server

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	MessagesPosted  prometheus.Counter
	EventsBroadcast *prometheus.CounterVec
	LiveSessions    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chirptalks_http_requests_total",
				Help: "HTTP requests by route and status class",
			},
			[]string{"route", "status"},
		),
		MessagesPosted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chirptalks_messages_posted_total",
				Help: "Messages successfully created",
			},
		),
		EventsBroadcast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chirptalks_events_streamed_total",
				Help: "Push events written to live sessions",
			},
			[]string{"event"},
		),
		LiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chirptalks_live_sessions",
				Help: "Currently connected event stream sessions",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.MessagesPosted, m.EventsBroadcast, m.LiveSessions)
	return m
}

// statusClass folds a status code into 2xx/4xx/5xx for the requests counter.
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

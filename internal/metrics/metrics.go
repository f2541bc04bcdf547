package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the lookups counter.
const (
	OutcomeLocated     = "located"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
)

type Metrics struct {
	Lookups        *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	PendingLookups prometheus.Gauge
	Alerts         prometheus.Counter
	RemindersAdded prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_location_lookups_total",
			Help: "Total number of location lookups by outcome.",
		}, []string{"outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "beacon_capability_request_duration_seconds",
			Help:    "Duration of position requests to the geolocation capability.",
			Buckets: prometheus.DefBuckets,
		}, []string{"capability"}),
		PendingLookups: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "beacon_pending_lookups",
			Help: "Current number of position requests waiting for the capability.",
		}),
		Alerts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "beacon_geofence_alerts_total",
			Help: "Total number of geofence alerts raised for reminders.",
		}),
		RemindersAdded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "beacon_reminders_added_total",
			Help: "Total number of reminders stored.",
		}),
	}
}

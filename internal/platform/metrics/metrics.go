package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration         *prometheus.HistogramVec
	IdentificationsReserved prometheus.Counter
	ZakenCreated            prometheus.Counter
	ZakenClosed             prometheus.Counter
	ZakenReopened           prometheus.Counter
	NotificationsPublished  prometheus.Counter
	NotificationsFailed     prometheus.Counter
	NotificationsRequeued   prometheus.Counter
	RemoteResolves          *prometheus.CounterVec
	RemoteResolveCacheHits  prometheus.Counter
	AuthorizationsDenied    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zaakregister_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		IdentificationsReserved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_identifications_reserved_total",
			Help: "Total number of zaak identifications minted.",
		}),
		ZakenCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_zaken_created_total",
			Help: "Total number of zaken created.",
		}),
		ZakenClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_zaken_closed_total",
			Help: "Total number of zaken closed by an eindstatus.",
		}),
		ZakenReopened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_zaken_reopened_total",
			Help: "Total number of zaken reopened after closure.",
		}),
		NotificationsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_notifications_published_total",
			Help: "Notifications delivered to the zaken kanaal.",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_notifications_failed_total",
			Help: "Notification deliveries that failed and were queued for retry.",
		}),
		NotificationsRequeued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_notifications_requeued_total",
			Help: "Notifications re-enqueued by the retry worker.",
		}),
		RemoteResolves: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_remote_resolves_total",
			Help: "Remote reference dereferences by resource kind.",
		}, []string{"kind"}),
		RemoteResolveCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_remote_resolve_cache_hits_total",
			Help: "Remote reference lookups served from the request cache.",
		}),
		AuthorizationsDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zaakregister_authorizations_denied_total",
			Help: "Requests rejected by the authorization filter.",
		}),
	}
}

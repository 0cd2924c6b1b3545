package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the vault gate.
type Metrics struct {
	IdentitiesRegistered prometheus.Counter
	IdentitiesDeleted    prometheus.Counter
	Logins               *prometheus.CounterVec
	AccessCodesIssued    prometheus.Counter
	CodeValidations      *prometheus.CounterVec
	VaultEntries         prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		IdentitiesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustvault_identities_registered_total",
			Help: "Total number of identities registered",
		}),
		IdentitiesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustvault_identities_deleted_total",
			Help: "Total number of identities deleted",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustvault_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		AccessCodesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustvault_access_codes_issued_total",
			Help: "Total number of access codes issued",
		}),
		CodeValidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustvault_code_validations_total",
			Help: "Access code validations by result",
		}, []string{"result"}),
		VaultEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustvault_vault_entries_total",
			Help: "Total number of successful vault admissions",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustvault_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

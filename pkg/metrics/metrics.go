package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AdminAuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "admin_auth_failures_total", Help: "Rejected admin requests by reason."},
		[]string{"reason"},
	)
	DailyRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "daily_refreshes_total", Help: "Number of daily data regenerations."},
	)
	LinkMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "link_mutations_total", Help: "Link create/update/delete operations."},
		[]string{"op"},
	)
	SnapshotUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "snapshot_uploads_total", Help: "Document snapshot uploads by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AdminAuthFailures)
	reg.MustRegister(DailyRefreshes)
	reg.MustRegister(LinkMutations)
	reg.MustRegister(SnapshotUploads)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cphub", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cphub", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	PlatformLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cphub", Name: "platform_lookups_total", Help: "Number of platform stat lookups by platform and outcome."},
		[]string{"platform", "outcome"},
	)
	AuthRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cphub", Name: "auth_requests_total", Help: "Number of auth operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(PlatformLookups)
	reg.MustRegister(AuthRequests)
}

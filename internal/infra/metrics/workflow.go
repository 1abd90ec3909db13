package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(accessRequestsTotal, approvalsTotal, redemptionsTotal, notificationsTotal) }

var (
	accessRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_requests_total",
			Help: "Guest access requests submitted.",
		},
	)

	approvalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approvals_total",
			Help: "Approval attempts by outcome (issued/repeat/not_found/error).",
		},
		[]string{"outcome"},
	)

	redemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemptions_total",
			Help: "Token redemption attempts by outcome (success/already_used/invalid/error).",
		},
		[]string{"outcome"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Admission notification deliveries by outcome (success/failure/image_error).",
		},
		[]string{"outcome"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncAccessRequest() { accessRequestsTotal.Inc() }

func IncApproval(outcome string) { approvalsTotal.WithLabelValues(norm(outcome)).Inc() }

func IncRedemption(outcome string) { redemptionsTotal.WithLabelValues(norm(outcome)).Inc() }

func IncNotification(outcome string) { notificationsTotal.WithLabelValues(norm(outcome)).Inc() }

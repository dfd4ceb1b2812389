// Package metrics defines the custom Prometheus collectors of the portal API.
// Collectors are registered with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authorization ────────────────────────────────────────────────────────────

// PolicyDenialsTotal counts requests rejected by an endpoint policy.
// Labels:
//   - rule: the policy that denied (e.g. "roles[ADMIN]")
//   - reason: "unauthenticated" or "forbidden"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests denied by an endpoint policy.",
	},
	[]string{"rule", "reason"},
)

// TokenRejectionsTotal counts bearer tokens the gate could not resolve to a principal.
var TokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens that did not resolve to an account.",
	},
)

// LoginsTotal counts login attempts by result ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Enrollment ───────────────────────────────────────────────────────────────

// EnrollmentsTotal counts enrollment attempts.
// Label:
//   - outcome: "enrolled" or the failing step (e.g. "course_not_found", "already_enrolled")
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Mail ─────────────────────────────────────────────────────────────────────

// MailDeliveriesTotal counts outbound mail by result: "sent", "failed" or "dropped".
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of outbound mail messages, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks pending messages per dispatcher worker.
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail worker channel.",
	},
	[]string{"worker_id"},
)

// MailSendDuration measures a single mailer Send call.
var MailSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_send_duration_seconds",
		Help:      "Duration of a single outbound mail delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)

// NewsletterRecipientsTotal counts newsletter recipients handed to the mail queue.
var NewsletterRecipientsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_recipients_total",
		Help:      "Total number of newsletter messages enqueued.",
	},
)

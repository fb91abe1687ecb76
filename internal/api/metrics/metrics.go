// Package metrics defines and registers all custom Prometheus metrics for the
// AgriScan API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agriscan"

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts accepted report submissions.
// Label:
//   - plant_type: the plant type id the report was filed against
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of plant-health reports accepted.",
	},
	[]string{"plant_type"},
)

// ReportsDuplicateTotal counts submissions rejected by the dedup guard.
var ReportsDuplicateTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_duplicate_total",
		Help:      "Total number of report submissions rejected as duplicates.",
	},
)

// ReportsReviewedTotal counts inspector review decisions.
// Label:
//   - status: the review outcome ("verified" or "rejected")
var ReportsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_reviewed_total",
		Help:      "Total number of review decisions applied to reports.",
	},
	[]string{"status"},
)

// ── Assessment metrics ────────────────────────────────────────────────────────

// ReportsAssessedTotal counts severity assessments by result ("ok"/"error").
var ReportsAssessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_assessed_total",
		Help:      "Total number of severity assessments, labelled by result.",
	},
	[]string{"result"},
)

// AssessmentQueueDepth tracks the jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AssessmentQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "assessment_queue_depth",
		Help:      "Current number of jobs pending in each assessment worker channel.",
	},
	[]string{"worker_id"},
)

// AssessmentDuration measures how long a single assessment takes end-to-end.
var AssessmentDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assessment_duration_seconds",
		Help:      "Duration of severity assessment from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Alert metrics ─────────────────────────────────────────────────────────────

// AlertsCreatedTotal counts regional advisories created by inspectors.
// Label:
//   - severity: "info", "warning", or "danger"
var AlertsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_created_total",
		Help:      "Total number of alerts created, by severity.",
	},
	[]string{"severity"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by result ("ok"/"failed").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

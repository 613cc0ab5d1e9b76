// Package metrics defines and registers all custom Prometheus metrics for the
// clubhub events API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubhub"

// RegistrationsCreatedTotal counts successful event registrations.
var RegistrationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_created_total",
		Help:      "Total number of event registrations created.",
	},
)

// SocialLoginsTotal counts completed OAuth callback exchanges.
// Labels:
//   - provider: "google" or "microsoft"
//   - result: "success" or "failure"
var SocialLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "social_logins_total",
		Help:      "Total number of social login callbacks, by provider and result.",
	},
	[]string{"provider", "result"},
)

// VerificationCodesTotal counts verification-code sends and confirmations.
// Labels:
//   - channel: "email" or "phone"
//   - action: "send" or "verify"
//   - result: "success" or "failure"
var VerificationCodesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_codes_total",
		Help:      "Total number of verification code operations.",
	},
	[]string{"channel", "action", "result"},
)

// ArtifactsGeneratedTotal counts QR tickets generated by the background
// workers.
var ArtifactsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artifacts_generated_total",
		Help:      "Total number of registration QR tickets generated.",
	},
)

// ArtifactsErrorsTotal counts QR generation failures. These never surface to
// the registering caller, so the counter is the primary failure signal.
var ArtifactsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artifacts_errors_total",
		Help:      "Total number of QR ticket generation failures.",
	},
)

// ArtifactQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var ArtifactQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "artifact_queue_depth",
		Help:      "Current number of jobs pending in each artifact worker channel.",
	},
	[]string{"worker_id"},
)

// UploadsTotal counts blob uploads accepted through the API.
// Label:
//   - kind: "event_cover", "avatar" or "gallery"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads accepted, by kind.",
	},
	[]string{"kind"},
)

package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	namespace = "opsdeploy"

	// Job name used when pushing to a Pushgateway.
	PushJob = "opsdeploy"

	StatusOK    = "ok"
	StatusError = "error"

	LabelStatus           = "status"
	LabelDeploymentStatus = "deployment_status"
	LabelOutcome          = "outcome"
	LabelAppID            = "app_id"
)

// Registry holds every metric reported by opsdeploy.
// It is private to this package so that pushes contain nothing but our own metrics.
var Registry = prometheus.NewRegistry()

func statusLabel(err error) string {
	if err == nil {
		return StatusOK
	}
	return StatusError
}

// StatusPoll records a single deployment status query.
func StatusPoll(deploymentStatus string, err error) {
	statusPolls.With(prometheus.Labels{
		LabelStatus:           statusLabel(err),
		LabelDeploymentStatus: deploymentStatus,
	}).Inc()
}

// DeploymentFinished records the outcome of a deployment run.
func DeploymentFinished(outcome string, elapsed time.Duration) {
	labels := prometheus.Labels{
		LabelOutcome: outcome,
	}
	deployments.With(labels).Inc()
	deploymentDuration.With(labels).Observe(elapsed.Seconds())
	lastCompletion.SetToCurrentTime()
}

// Push sends all metrics to a Prometheus Pushgateway, grouped by application.
func Push(ctx context.Context, url, appID string) error {
	return push.New(url, PushJob).
		Gatherer(Registry).
		Grouping(LabelAppID, appID).
		PushContext(ctx)
}

var (
	statusPolls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "status_polls_total",
		Help:      "number of deployment status queries made",
		Namespace: namespace,
	},
		[]string{
			LabelStatus,
			LabelDeploymentStatus,
		},
	)

	deployments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "deployments_total",
		Help:      "number of deployment runs by outcome",
		Namespace: namespace,
	},
		[]string{
			LabelOutcome,
		},
	)

	deploymentDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:      "deployment_duration_seconds",
		Help:      "time spent waiting for deployments to finish",
		Namespace: namespace,
		Buckets:   prometheus.ExponentialBuckets(5, 2, 8),
	},
		[]string{
			LabelOutcome,
		},
	)

	lastCompletion = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "last_completion_timestamp_seconds",
		Help:      "unix time of the last finished deployment run",
		Namespace: namespace,
	})
)

func init() {
	Registry.MustRegister(statusPolls)
	Registry.MustRegister(deployments)
	Registry.MustRegister(deploymentDuration)
	Registry.MustRegister(lastCompletion)
}

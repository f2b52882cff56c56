// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rolewarden",
		Name:      "commands_handled_total",
		Help:      "Commands handled, by action kind and outcome (denied, succeeded, failed).",
	}, []string{"kind", "outcome"})

	executorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rolewarden",
		Name:      "executor_failures_total",
		Help:      "Role mutations that failed, by classified cause.",
	}, []string{"cause"})

	notificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rolewarden",
		Name:      "notification_failures_total",
		Help:      "Notification sink deliveries that failed, by sink.",
	}, []string{"sink"})
)

func CommandHandled(kind, outcome string) {
	commandsHandled.WithLabelValues(kind, outcome).Inc()
}

func ExecutorFailure(cause string) {
	executorFailures.WithLabelValues(cause).Inc()
}

func NotificationFailure(sink string) {
	notificationFailures.WithLabelValues(sink).Inc()
}

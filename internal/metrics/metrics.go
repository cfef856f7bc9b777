package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/event"
)

const namespace = "team_builder"

const (
	labelMethod  = "method"
	labelRoute   = "route"
	labelStatus  = "status"
	labelCommand = "command"
	labelOutcome = "outcome"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{labelMethod, labelRoute, labelStatus})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{labelMethod, labelRoute})

	storeCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mongo",
		Name:      "commands_total",
		Help:      "MongoDB commands by name and outcome",
	}, []string{labelCommand, labelOutcome})

	storeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mongo",
		Name:      "command_duration_seconds",
		Help:      "MongoDB command latency",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{labelCommand})
)

// ObserveRequest records one served HTTP request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func observeCommand(name, outcome string, elapsed time.Duration) {
	storeCommands.WithLabelValues(name, outcome).Inc()
	storeDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// CommandMonitor returns a driver monitor that records every MongoDB command
func CommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			observeCommand(e.CommandName, outcomeSuccess, e.Duration)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			observeCommand(e.CommandName, outcomeFailure, e.Duration)
		},
	}
}

// Handler serves the default registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"deepspace-navigator/internal/planner"
)

// Plan outcomes
const (
	outcomeFound   = "found"
	outcomeNoRoute = "no_route"
	outcomeInvalid = "invalid"
)

var (
	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navigator_plan_duration_seconds",
		Help:    "Time spent building the visibility graph and solving it",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	})

	planOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "navigator_plan_total",
		Help: "Plans by outcome",
	}, []string{"outcome"})

	graphNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navigator_graph_nodes",
		Help:    "Visibility graph node count per plan",
		Buckets: prometheus.ExponentialBuckets(2, 2, 12),
	})

	graphEdges = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navigator_graph_edges",
		Help:    "Visibility graph edge count per plan",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "navigator_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)

func observePlan(res *planner.Result, err error) {
	if err != nil {
		planOutcomes.WithLabelValues(outcomeInvalid).Inc()
		return
	}
	planDuration.Observe(res.Elapsed.Seconds())
	graphNodes.Observe(float64(res.Graph.NodeCount()))
	graphEdges.Observe(float64(res.Graph.EdgeCount()))
	if res.Found {
		planOutcomes.WithLabelValues(outcomeFound).Inc()
	} else {
		planOutcomes.WithLabelValues(outcomeNoRoute).Inc()
	}
}

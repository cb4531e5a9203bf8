// Package visibility builds visibility graphs over hazard boundaries.
package visibility

import (
	"log/slog"
	"time"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

// Oracle decides whether the straight move p→q is allowed
type Oracle interface {
	IsLegal(p, q geometry.Point) bool
}

// Builder constructs visibility graphs. The zero value is not usable; fill
// Oracle and Samples.
type Builder struct {
	Oracle  Oracle
	Samples hazard.SampleConfig
	Logger  *slog.Logger
}

// Build constructs the visibility graph between source and target.
//
// Nodes are the source, the target, then each hazard's boundary samples in
// hazard order; points falling on an existing node's grid key are merged.
// Every unordered pair is checked once against the oracle, so the build is
// quadratic in the node count, and the resulting adjacency order depends only
// on the input.
func (b *Builder) Build(source, target geometry.Point, hazards []hazard.Hazard) *Graph {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	samples := make([][]geometry.Point, len(hazards))
	total := 2
	for i, h := range hazards {
		samples[i] = h.BoundarySamples(b.Samples)
		total += len(samples[i])
	}

	graph := newGraph(total)
	graph.source = graph.addNode(source)
	graph.target = graph.addNode(target)
	if graph.source == graph.target {
		logger.Debug("source and target coincide", "point", source)
	}
	for _, pts := range samples {
		for _, p := range pts {
			graph.addNode(p)
		}
	}

	n := graph.NodeCount()
	checked := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			checked++
			p, q := graph.nodes[i], graph.nodes[j]
			if b.Oracle.IsLegal(p, q) {
				graph.addEdge(i, j, p.Distance(q))
			}
		}
	}

	logger.Debug("visibility graph built",
		"hazards", len(hazards),
		"samples", total-2,
		"nodes", n,
		"pairs_checked", checked,
		"edges", graph.EdgeCount(),
		"elapsed", time.Since(start),
	)
	return graph
}

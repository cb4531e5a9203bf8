// Package planner finds the shortest legal route through a scenario by
// building a visibility graph over the hazard boundaries and running
// Dijkstra on it.
package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
	"deepspace-navigator/internal/legality"
	"deepspace-navigator/internal/scenario"
	"deepspace-navigator/internal/solver"
	"deepspace-navigator/internal/visibility"
)

var (
	// ErrNoTargets is returned for scenarios without a target
	ErrNoTargets = errors.New("scenario has no targets")
	// ErrInvalidPoint is returned when the source or target is not finite
	ErrInvalidPoint = errors.New("invalid route endpoint")
	// ErrTargetOutOfRange is returned by PlanTo for a target index the
	// scenario does not have
	ErrTargetOutOfRange = errors.New("target index out of range")
)

// Options configures a Planner
type Options struct {
	Samples  hazard.SampleConfig
	Legality legality.Options
	Logger   *slog.Logger
}

// DefaultOptions returns the default sampling and legality settings
func DefaultOptions() Options {
	return Options{
		Samples:  hazard.DefaultSampleConfig(),
		Legality: legality.DefaultOptions(),
	}
}

// Result is the outcome of one plan. Graph is always set on success, even
// when no route exists, so callers can draw the candidate edges.
type Result struct {
	Path    []geometry.Point
	Graph   *visibility.Graph
	Length  float64
	Found   bool
	Target  int
	Elapsed time.Duration
}

// Planner plans routes. It keeps no state between calls and may be shared
// between goroutines.
type Planner struct {
	opts   Options
	logger *slog.Logger
}

// New returns a planner with the given options
func New(opts Options) *Planner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{opts: opts, logger: logger}
}

// Plan routes from the scenario's source to its first target
func (p *Planner) Plan(s *scenario.Scenario) (*Result, error) {
	return p.PlanTo(s, 0)
}

// PlanTo routes from the scenario's source to target i.
//
// Configuration errors (no targets, non-finite endpoints, invalid hazards)
// are returned before any graph is built. An unreachable target is not an
// error: the result has Found false and an empty path.
func (p *Planner) PlanTo(s *scenario.Scenario, i int) (*Result, error) {
	start := time.Now()

	if len(s.Targets) == 0 {
		return nil, ErrNoTargets
	}
	if i < 0 || i >= len(s.Targets) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrTargetOutOfRange, i, len(s.Targets))
	}
	target := s.Targets[i]
	if !s.Source.IsFinite() {
		return nil, fmt.Errorf("%w: source %v", ErrInvalidPoint, s.Source)
	}
	if !target.IsFinite() {
		return nil, fmt.Errorf("%w: target %d %v", ErrInvalidPoint, i, target)
	}

	oracle, err := legality.New(s.Hazards, p.opts.Legality)
	if err != nil {
		return nil, err
	}

	builder := &visibility.Builder{
		Oracle:  oracle,
		Samples: p.opts.Samples,
		Logger:  p.logger,
	}
	graph := builder.Build(s.Source, target, s.Hazards)

	path, length, found := solver.ShortestPath(graph, graph.Source(), graph.Target())
	result := &Result{
		Path:    path,
		Graph:   graph,
		Length:  length,
		Found:   found,
		Target:  i,
		Elapsed: time.Since(start),
	}

	if found {
		p.logger.Info("route found",
			"target", i,
			"waypoints", len(path),
			"length", length,
			"nodes", graph.NodeCount(),
			"edges", graph.EdgeCount(),
			"elapsed", result.Elapsed,
		)
	} else {
		p.logger.Info("no route",
			"target", i,
			"nodes", graph.NodeCount(),
			"edges", graph.EdgeCount(),
			"elapsed", result.Elapsed,
		)
	}
	return result, nil
}

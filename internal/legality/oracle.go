// Package legality decides whether a straight move between two points is
// allowed given a set of hazards.
package legality

import (
	"fmt"
	"math"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

// Options tunes the soft constraint of detection zones
type Options struct {
	// MaxCrossingDeviation is the largest angle, in radians, a chord through a
	// detection zone may deviate from the radial direction at its entry and
	// exit points.
	MaxCrossingDeviation float64
}

// DefaultOptions allows detection zone crossings up to π/4 off radial
func DefaultOptions() Options {
	return Options{MaxCrossingDeviation: math.Pi / 4}
}

// angleSlack absorbs rounding in the acos of a boundary-case crossing
const angleSlack = 1e-9

// Oracle answers legality queries against a fixed hazard set. It is
// read-only after construction and safe for concurrent use.
type Oracle struct {
	hazards []hazard.Hazard
	index   *spatialIndex
	opts    Options
}

// New validates the hazards and indexes their extents
func New(hazards []hazard.Hazard, opts Options) (*Oracle, error) {
	if err := hazard.Validate(hazards); err != nil {
		return nil, err
	}
	if opts.MaxCrossingDeviation < 0 || opts.MaxCrossingDeviation > math.Pi/2 {
		return nil, fmt.Errorf("max crossing deviation %v outside [0, π/2]", opts.MaxCrossingDeviation)
	}
	return &Oracle{
		hazards: hazards,
		index:   newSpatialIndex(hazards),
		opts:    opts,
	}, nil
}

// IsLegal reports whether the segment p→q is legal against every hazard.
// Only hazards whose extent meets the segment's extent are evaluated; the
// others cannot reject it.
func (o *Oracle) IsLegal(p, q geometry.Point) bool {
	s := geometry.Seg(p, q)
	if s.Degenerate() {
		return true
	}
	for _, h := range o.index.query(s) {
		if !legalAgainst(s, h, o.opts) {
			return false
		}
	}
	return true
}

// Len returns the number of indexed hazards
func (o *Oracle) Len() int {
	return o.index.size()
}

// IsLegal is the unindexed form of Oracle.IsLegal: a plain conjunction over
// all hazards. Hazards are assumed valid.
func IsLegal(p, q geometry.Point, hazards []hazard.Hazard, opts Options) bool {
	s := geometry.Seg(p, q)
	if s.Degenerate() {
		return true
	}
	for _, h := range hazards {
		if !legalAgainst(s, h, opts) {
			return false
		}
	}
	return true
}

func legalAgainst(s geometry.Segment, h hazard.Hazard, opts Options) bool {
	switch h := h.(type) {
	case *hazard.Disc:
		return !geometry.SegmentIntersectsDisc(s, h.Center, h.Radius)
	case *hazard.Polygon:
		return !geometry.SegmentCrossesPolygon(s, h.Vertices)
	case *hazard.DetectionZone:
		return legalDetectionCrossing(s, h, opts.MaxCrossingDeviation)
	default:
		panic(fmt.Sprintf("legality: unknown hazard type %T", h))
	}
}

// legalDetectionCrossing accepts segments that stay out of the zone, and
// segments whose supporting chord meets the zone boundary close to radially
// at both ends. A grazing chord keeps the agent exposed for longer.
func legalDetectionCrossing(s geometry.Segment, z *hazard.DetectionZone, maxDeviation float64) bool {
	if !geometry.SegmentIntersectsDisc(s, z.Center, z.Radius) {
		return true
	}
	t1, t2, ok := geometry.LineCircleIntersections(s, z.Center, z.Radius)
	if !ok {
		return true
	}

	dir := s.Direction()
	for _, t := range [2]float64{t1, t2} {
		p := s.At(t)
		angle := geometry.AngleBetween(z.Center.Sub(p), dir)
		// entering the angle is near 0, leaving it is near π
		deviation := math.Min(angle, math.Pi-angle)
		if deviation > maxDeviation+angleSlack {
			return false
		}
	}
	return true
}

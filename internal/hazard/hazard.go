// Package hazard models the static obstacles a route has to respect: discs
// and polygon zones that may not be entered, and detection zones that may
// only be crossed along near-radial chords.
//
// Hazard is a closed set. The only implementations are *Disc, *Polygon and
// *DetectionZone; consumers dispatch with a single type switch.
package hazard

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"deepspace-navigator/internal/geometry"
)

// ErrInvalidHazard marks a malformed hazard definition (degenerate polygon,
// non-positive radius, non-finite coordinates)
var ErrInvalidHazard = errors.New("invalid hazard")

// Kind names a hazard variant
type Kind string

const (
	KindDisc          Kind = "disc"
	KindPolygon       Kind = "polygon"
	KindDetectionZone Kind = "detection_zone"
)

// Hazard is implemented by *Disc, *Polygon and *DetectionZone only
type Hazard interface {
	Kind() Kind
	// BoundarySamples returns the candidate waypoints contributed by the
	// hazard, in a fixed order.
	BoundarySamples(cfg SampleConfig) []geometry.Point
	// Bound is the axis-aligned extent of the area the hazard constrains
	Bound() orb.Bound
	Validate() error

	sealed()
}

// SampleConfig controls how densely hazard boundaries are discretized
type SampleConfig struct {
	// DiscSampleCount is the number of points placed around a disc
	DiscSampleCount int `yaml:"disc_sample_count" json:"disc_sample_count" validate:"min=3,max=720"`
	// ZoneSampleDensity is the number of points on the ring around a detection zone
	ZoneSampleDensity int `yaml:"zone_sample_density" json:"zone_sample_density" validate:"min=3,max=720"`
	// DetectionRingCount is the number of concentric rings inside a detection zone
	DetectionRingCount int `yaml:"detection_ring_count" json:"detection_ring_count" validate:"min=0,max=50"`
	// DetectionRingDensity is the number of points per interior ring
	DetectionRingDensity int `yaml:"detection_ring_density" json:"detection_ring_density" validate:"min=3,max=720"`
	// Margin pushes circular samples slightly off the forbidden boundary
	Margin float64 `yaml:"margin" json:"margin" validate:"gte=0"`
}

// DefaultSampleConfig returns the sampling used when nothing is configured
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		DiscSampleCount:      16,
		ZoneSampleDensity:    24,
		DetectionRingCount:   3,
		DetectionRingDensity: 12,
		Margin:               1e-3,
	}
}

// Validate checks every hazard and reports the first failure with its index
func Validate(hazards []Hazard) error {
	for i, h := range hazards {
		if h == nil {
			return fmt.Errorf("hazard %d: %w: nil", i, ErrInvalidHazard)
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("hazard %d (%s): %w", i, h.Kind(), err)
		}
	}
	return nil
}

// ring places n points evenly by angle on a circle, starting at bearing 0
func ring(center geometry.Point, radius float64, n int) []geometry.Point {
	points := make([]geometry.Point, 0, n)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		points = append(points, center.Shifted(radius, float64(i)*step))
	}
	return points
}

// circumscribedRadius returns the radius of a regular n-gon whose edges stay
// at least margin outside a circle of radius r
func circumscribedRadius(r float64, n int, margin float64) float64 {
	return (r + margin) / math.Cos(math.Pi/float64(n))
}

func validCircle(center geometry.Point, radius float64) error {
	if !center.IsFinite() {
		return fmt.Errorf("%w: center %v is not finite", ErrInvalidHazard, center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidHazard, radius)
	}
	return nil
}

func circleBound(center geometry.Point, radius float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{center.X - radius, center.Y - radius},
		Max: orb.Point{center.X + radius, center.Y + radius},
	}
}

func sampleCount(n, fallback int) int {
	if n < 3 {
		return fallback
	}
	return n
}

package hazard

import (
	"github.com/paulmach/orb"

	"deepspace-navigator/internal/geometry"
)

// DetectionZone is the coverage disc of a sensor. It may be crossed, but only
// along chords close to its radius; see the legality package.
type DetectionZone struct {
	Center geometry.Point
	Radius float64
}

// NewDetectionZone creates a detection zone
func NewDetectionZone(center geometry.Point, radius float64) *DetectionZone {
	return &DetectionZone{Center: center, Radius: radius}
}

func (z *DetectionZone) Kind() Kind { return KindDetectionZone }

// BoundarySamples returns an outer ring hugging the zone from outside followed
// by DetectionRingCount interior rings, innermost first. Interior rings give
// the planner waypoints for crossing the zone.
func (z *DetectionZone) BoundarySamples(cfg SampleConfig) []geometry.Point {
	defaults := DefaultSampleConfig()
	n := sampleCount(cfg.ZoneSampleDensity, defaults.ZoneSampleDensity)
	points := ring(z.Center, circumscribedRadius(z.Radius, n, cfg.Margin), n)

	rings := cfg.DetectionRingCount
	if rings <= 0 {
		return points
	}
	m := sampleCount(cfg.DetectionRingDensity, defaults.DetectionRingDensity)
	for i := 1; i <= rings; i++ {
		r := z.Radius * float64(i) / float64(rings+1)
		points = append(points, ring(z.Center, r, m)...)
	}
	return points
}

func (z *DetectionZone) Bound() orb.Bound {
	return circleBound(z.Center, z.Radius)
}

func (z *DetectionZone) Validate() error {
	return validCircle(z.Center, z.Radius)
}

func (z *DetectionZone) sealed() {}

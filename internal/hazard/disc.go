package hazard

import (
	"github.com/paulmach/orb"

	"deepspace-navigator/internal/geometry"
)

// Disc is an impassable circular hazard
type Disc struct {
	Center geometry.Point
	Radius float64
}

// NewDisc creates a disc hazard
func NewDisc(center geometry.Point, radius float64) *Disc {
	return &Disc{Center: center, Radius: radius}
}

func (d *Disc) Kind() Kind { return KindDisc }

// BoundarySamples places DiscSampleCount points on the circumscribing polygon
// of the disc so that chords between neighbouring samples stay outside it
func (d *Disc) BoundarySamples(cfg SampleConfig) []geometry.Point {
	n := sampleCount(cfg.DiscSampleCount, DefaultSampleConfig().DiscSampleCount)
	return ring(d.Center, circumscribedRadius(d.Radius, n, cfg.Margin), n)
}

func (d *Disc) Bound() orb.Bound {
	return circleBound(d.Center, d.Radius)
}

func (d *Disc) Validate() error {
	return validCircle(d.Center, d.Radius)
}

// Contains reports whether p lies in the open disc
func (d *Disc) Contains(p geometry.Point) bool {
	return p.Distance(d.Center) < d.Radius-geometry.Epsilon
}

func (d *Disc) sealed() {}

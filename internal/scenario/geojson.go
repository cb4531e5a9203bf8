package scenario

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

// LoadZonesFile reads a GeoJSON feature collection and returns its polygon
// features as polygon zones
func LoadZonesFile(path string) ([]hazard.Hazard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}
	return DecodeZones(data)
}

// DecodeZones converts Polygon and MultiPolygon features to polygon zones.
// Only the outer ring of each polygon is used; other geometry types are
// skipped.
func DecodeZones(data []byte) ([]hazard.Hazard, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: geojson: %v", ErrMalformed, err)
	}

	var zones []hazard.Hazard
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if z := zoneFromPolygon(g); z != nil {
				zones = append(zones, z)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if z := zoneFromPolygon(p); z != nil {
					zones = append(zones, z)
				}
			}
		}
	}
	return zones, nil
}

func zoneFromPolygon(p orb.Polygon) *hazard.Polygon {
	// First ring is the outer boundary
	if len(p) == 0 || len(p[0]) == 0 {
		return nil
	}
	vertices := make([]geometry.Point, 0, len(p[0]))
	for _, c := range p[0] {
		vertices = append(vertices, geometry.Pt(c[0], c[1]))
	}
	return hazard.NewPolygon(vertices)
}

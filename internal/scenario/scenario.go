// Package scenario loads planning scenarios: a source, one or more targets
// and the hazards in between.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

var (
	// ErrNotFound is returned when a scenario group or number does not exist
	ErrNotFound = errors.New("scenario not found")
	// ErrMalformed is returned when a scenario document cannot be decoded
	ErrMalformed = errors.New("malformed scenario")
)

// Scenario is one planning request. It is not modified during planning.
type Scenario struct {
	Source  geometry.Point
	Targets []geometry.Point
	// AllowedDetection is carried for display; the legality rules do not use it
	AllowedDetection float64
	Hazards          []hazard.Hazard
}

// coordinate is the on-disk form of a point: [x, y]
type coordinate [2]float64

func (c coordinate) point() geometry.Point {
	return geometry.Pt(c[0], c[1])
}

func coordinateOf(p geometry.Point) coordinate {
	return coordinate{p.X, p.Y}
}

type circleDoc struct {
	Center coordinate `json:"center"`
	Radius float64    `json:"radius"`
}

type zoneDoc struct {
	Boundary []coordinate `json:"boundary"`
}

// document mirrors the scenario JSON files
type document struct {
	Source           *coordinate  `json:"source"`
	Targets          []coordinate `json:"targets"`
	AllowedDetection float64      `json:"allowed-detection"`
	BlackHoles       []circleDoc  `json:"black_holes"`
	AsteroidsZones   []zoneDoc    `json:"asteroids_zones"`
	Radars           []circleDoc  `json:"radars"`
	AsteroidsGeoJSON string       `json:"asteroids_geojson,omitempty"`
}

// DecodeOptions controls how external zone files are resolved and cleaned up
type DecodeOptions struct {
	// BaseDir resolves a relative asteroids_geojson reference. Empty forbids
	// external references.
	BaseDir string
	// SimplifyTolerance is the Douglas-Peucker tolerance applied to imported
	// zones; 0 keeps them as drawn
	SimplifyTolerance float64
	// MergeTolerance enables merging imported zones that share an edge into
	// their convex hull; 0 disables it
	MergeTolerance float64
}

// Decode parses a scenario document.
//
// Hazards are ordered black holes, then asteroid zones (inline first, then
// imported), then radars.
func Decode(data []byte, opts DecodeOptions) (*Scenario, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Source == nil {
		return nil, fmt.Errorf("%w: missing source", ErrMalformed)
	}

	s := &Scenario{
		Source:           doc.Source.point(),
		AllowedDetection: doc.AllowedDetection,
	}
	for _, t := range doc.Targets {
		s.Targets = append(s.Targets, t.point())
	}
	for _, bh := range doc.BlackHoles {
		s.Hazards = append(s.Hazards, hazard.NewDisc(bh.Center.point(), bh.Radius))
	}
	for _, z := range doc.AsteroidsZones {
		vertices := make([]geometry.Point, 0, len(z.Boundary))
		for _, c := range z.Boundary {
			vertices = append(vertices, c.point())
		}
		s.Hazards = append(s.Hazards, hazard.NewPolygon(vertices))
	}
	if doc.AsteroidsGeoJSON != "" {
		if opts.BaseDir == "" {
			return nil, fmt.Errorf("%w: external zone file %q not allowed here", ErrMalformed, doc.AsteroidsGeoJSON)
		}
		// the reference cannot climb out of BaseDir
		zones, err := LoadZonesFile(filepath.Join(opts.BaseDir, filepath.Clean("/"+doc.AsteroidsGeoJSON)))
		if err != nil {
			return nil, err
		}
		if opts.SimplifyTolerance > 0 {
			zones = hazard.Simplify(zones, opts.SimplifyTolerance)
		}
		if opts.MergeTolerance > 0 {
			zones = hazard.MergeAdjacent(zones, opts.MergeTolerance)
		}
		s.Hazards = append(s.Hazards, hazard.DropContained(zones)...)
	}
	for _, r := range doc.Radars {
		s.Hazards = append(s.Hazards, hazard.NewDetectionZone(r.Center.point(), r.Radius))
	}
	return s, nil
}

// Encode writes s in the scenario document format. Imported zones are
// written inline.
func Encode(s *Scenario) ([]byte, error) {
	src := coordinateOf(s.Source)
	doc := document{
		Source:           &src,
		Targets:          []coordinate{},
		AllowedDetection: s.AllowedDetection,
		BlackHoles:       []circleDoc{},
		AsteroidsZones:   []zoneDoc{},
		Radars:           []circleDoc{},
	}
	for _, t := range s.Targets {
		doc.Targets = append(doc.Targets, coordinateOf(t))
	}
	for i, h := range s.Hazards {
		switch h := h.(type) {
		case *hazard.Disc:
			doc.BlackHoles = append(doc.BlackHoles, circleDoc{Center: coordinateOf(h.Center), Radius: h.Radius})
		case *hazard.Polygon:
			z := zoneDoc{Boundary: make([]coordinate, 0, len(h.Vertices))}
			for _, v := range h.Vertices {
				z.Boundary = append(z.Boundary, coordinateOf(v))
			}
			doc.AsteroidsZones = append(doc.AsteroidsZones, z)
		case *hazard.DetectionZone:
			doc.Radars = append(doc.Radars, circleDoc{Center: coordinateOf(h.Center), Radius: h.Radius})
		default:
			return nil, fmt.Errorf("hazard %d: unsupported type %T", i, h)
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// LoadFile reads and decodes a scenario file. GeoJSON references resolve
// against the file's directory, whatever opts.BaseDir says.
func LoadFile(path string, opts DecodeOptions) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	opts.BaseDir = filepath.Dir(path)
	s, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

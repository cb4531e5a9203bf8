package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

const sample = `{
  "source": [0, 0],
  "targets": [[10, 0], [4, 8]],
  "allowed-detection": 2.5,
  "black_holes": [{"center": [5, 0], "radius": 2}],
  "asteroids_zones": [{"boundary": [[1, 1], [2, 1], [2, 2], [1, 1]]}],
  "radars": [{"center": [7, 6], "radius": 3}]
}`

const zonesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "belt"},
      "geometry": {"type": "Polygon", "coordinates": [[[20, 0], [30, 0], [30, 10], [20, 10], [20, 0]]]}
    },
    {
      "type": "Feature",
      "properties": null,
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[22, 2], [24, 2], [24, 4], [22, 4], [22, 2]]],
          [[[40, 0], [41, 0], [41, 1], [40, 0]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [1, 1]}
    }
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(sample), DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, geometry.Pt(0, 0), s.Source)
	assert.Equal(t, []geometry.Point{geometry.Pt(10, 0), geometry.Pt(4, 8)}, s.Targets)
	assert.Equal(t, 2.5, s.AllowedDetection)
	require.Len(t, s.Hazards, 3)

	assert.Equal(t, hazard.NewDisc(geometry.Pt(5, 0), 2), s.Hazards[0])
	poly, ok := s.Hazards[1].(*hazard.Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Vertices, 3, "closing vertex dropped")
	assert.Equal(t, hazard.NewDetectionZone(geometry.Pt(7, 6), 3), s.Hazards[2])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"source": `},
		{"missing source", `{"targets": [[1, 1]]}`},
		{"bad coordinate", `{"source": [0, "a"]}`},
		{"external zones without base dir", `{"source": [0, 0], "asteroids_geojson": "zones.geojson"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), DecodeOptions{})
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeKeepsInvalidHazardsForValidation(t *testing.T) {
	s, err := Decode([]byte(`{"source": [0, 0], "black_holes": [{"center": [1, 1], "radius": -1}]}`), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, s.Hazards, 1)
	assert.Error(t, hazard.Validate(s.Hazards))
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := Decode([]byte(sample), DecodeOptions{})
	require.NoError(t, err)

	data, err := Encode(s)
	require.NoError(t, err)
	again, err := Decode(data, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestDecodeZones(t *testing.T) {
	zones, err := DecodeZones([]byte(zonesGeoJSON))
	require.NoError(t, err)
	require.Len(t, zones, 3, "point features are skipped")

	first := zones[0].(*hazard.Polygon)
	assert.Equal(t, []geometry.Point{
		geometry.Pt(20, 0), geometry.Pt(30, 0), geometry.Pt(30, 10), geometry.Pt(20, 10),
	}, first.Vertices)

	_, err = DecodeZones([]byte(`{"type": "Feature"`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadFileImportsGeoJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zones", "belt.geojson"), zonesGeoJSON)
	writeFile(t, filepath.Join(dir, "scenario_1.json"),
		`{"source": [0, 0], "targets": [[50, 0]], "asteroids_zones": [{"boundary": [[1, 1], [2, 1], [2, 2]]}],
		  "asteroids_geojson": "zones/belt.geojson", "radars": [{"center": [5, 5], "radius": 1}]}`)

	s, err := LoadFile(filepath.Join(dir, "scenario_1.json"), DecodeOptions{})
	require.NoError(t, err)

	// inline zone, belt, the small triangle; the square inside the belt is dropped
	require.Len(t, s.Hazards, 4)
	assert.Equal(t, hazard.KindPolygon, s.Hazards[0].Kind())
	assert.Equal(t, geometry.Pt(20, 0), s.Hazards[1].(*hazard.Polygon).Vertices[0])
	assert.Equal(t, geometry.Pt(40, 0), s.Hazards[2].(*hazard.Polygon).Vertices[0])
	assert.Equal(t, hazard.KindDetectionZone, s.Hazards[3].Kind())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "scenario_9.json"), DecodeOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFileMissingZoneFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenario_1.json"), `{"source": [0, 0], "asteroids_geojson": "../outside.geojson"}`)
	writeFile(t, filepath.Join(filepath.Dir(dir), "outside.geojson"), zonesGeoJSON)

	_, err := LoadFile(filepath.Join(dir, "scenario_1.json"), DecodeOptions{})
	assert.Error(t, err, "references cannot leave the scenario directory")
}

func TestLoadFileMergesAdjacentTiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tiles.geojson"), `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[1, 0], [2, 0], [2, 1], [1, 1], [1, 0]]]}}
  ]
}`)
	writeFile(t, filepath.Join(dir, "scenario_1.json"), `{"source": [-1, -1], "targets": [[3, 3]], "asteroids_geojson": "tiles.geojson"}`)

	s, err := LoadFile(filepath.Join(dir, "scenario_1.json"), DecodeOptions{})
	require.NoError(t, err)
	assert.Len(t, s.Hazards, 2)

	s, err = LoadFile(filepath.Join(dir, "scenario_1.json"), DecodeOptions{MergeTolerance: 1e-9})
	require.NoError(t, err)
	require.Len(t, s.Hazards, 1)
	assert.Equal(t, []geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(2, 0), geometry.Pt(2, 1), geometry.Pt(0, 1),
	}, s.Hazards[0].(*hazard.Polygon).Vertices)
}

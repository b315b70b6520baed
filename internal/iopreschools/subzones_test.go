package iopreschools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"
)

const subzonesFixture = `{
	"type": "FeatureCollection",
	"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:OGC:1.3:CRS84"}},
	"features": [
		{
			"type": "Feature",
			"properties": {
				"Name": "kml_1",
				"Description": "<center><table><tr><th colspan='2'>BEDOK NORTH</th></tr><tr><th>SUBZONE_N</th> <td>BEDOK NORTH</td></tr><tr><th>REGION_N</th> <td>EAST REGION</td></tr></table></center>"
			},
			"geometry": {"type": "Polygon", "coordinates": [[[103.90, 1.32], [103.95, 1.32], [103.95, 1.35], [103.90, 1.35], [103.90, 1.32]]]}
		},
		{
			"type": "Feature",
			"properties": {
				"Name": "kml_2",
				"Description": "<center><table><tr><th>SUBZONE_N</th> <td>SELETAR</td></tr></table></center>"
			},
			"geometry": {"type": "MultiPolygon", "coordinates": [[[[103.80, 1.40], [103.82, 1.40], [103.82, 1.42], [103.80, 1.42], [103.80, 1.40]]], [[[103.86, 1.40], [103.88, 1.40], [103.88, 1.42], [103.86, 1.42], [103.86, 1.40]]]]}
		},
		{
			"type": "Feature",
			"properties": {
				"Name": "kml_3",
				"Description": "<center><table><tr><th>REGION_N</th> <td>EAST REGION</td></tr></table></center>"
			},
			"geometry": {"type": "Polygon", "coordinates": [[[104.00, 1.32], [104.02, 1.32], [104.02, 1.34], [104.00, 1.34], [104.00, 1.32]]]}
		}
	]
}`

// square builds a rectangular boundary for containment tests.
func square(minX, minY, maxX, maxY float64) *geom.Polygon {
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}})
	return poly
}

func TestFeatureSubzoneName(t *testing.T) {
	tests := []struct {
		msg, desc, want string
	}{
		{
			"standard row",
			"<tr><th>SUBZONE_N</th> <td>BEDOK NORTH</td></tr>",
			"Bedok North",
		},
		{
			"html entity",
			"<tr><th>SUBZONE_N</th><td>PEOPLE&#39;S PARK</td></tr>",
			"People's Park",
		},
		{
			"attribute markup",
			"<TR><TH align='left'>SUBZONE_N</TH><TD>tampines east</TD></TR>",
			"Tampines East",
		},
		{
			"no subzone row",
			"<tr><th>REGION_N</th><td>EAST REGION</td></tr>",
			"Unknown Subzone",
		},
		{"empty description", "", "Unknown Subzone"},
	}

	for _, v := range tests {
		props := map[string]any{"Description": v.desc}
		assert.Equal(t, v.want, featureSubzoneName(props), v.msg)
	}
}

func TestPolygonContains(t *testing.T) {
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	})

	assert.True(t, polygonContains(poly, geom.Coord{2, 2}))
	assert.False(t, polygonContains(poly, geom.Coord{5, 5}), "inside the hole")
	assert.False(t, polygonContains(poly, geom.Coord{20, 2}), "outside the bounds")
}

func TestSubzoneContainsPoint(t *testing.T) {
	sz := subzone{
		name:     "Seletar",
		polygons: []*geom.Polygon{square(0, 0, 1, 1), square(5, 5, 6, 6)},
	}

	assert.True(t, sz.containsPoint(geom.Coord{0.5, 0.5}))
	assert.True(t, sz.containsPoint(geom.Coord{5.5, 5.5}))
	assert.False(t, sz.containsPoint(geom.Coord{3, 3}))
}

func TestLoadSubzones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subzones.geojson")
	err := os.WriteFile(path, []byte(subzonesFixture), 0644)
	require.NoError(t, err)

	subzones, err := loadSubzones(path)
	require.NoError(t, err)
	require.Len(t, subzones, 3)

	assert.Equal(t, "Bedok North", subzones[0].name)
	assert.Len(t, subzones[0].polygons, 1)
	assert.True(t, subzones[0].containsPoint(geom.Coord{103.92, 1.33}))

	assert.Equal(t, "Seletar", subzones[1].name)
	assert.Len(t, subzones[1].polygons, 2)
	assert.True(t, subzones[1].containsPoint(geom.Coord{103.87, 1.41}))

	assert.Equal(t, "Unknown Subzone", subzones[2].name)
}

func TestLoadSubzones_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadSubzones(filepath.Join(dir, "none.geojson"))
	assert.NotNil(t, err)

	path := filepath.Join(dir, "broken.geojson")
	err = os.WriteFile(path, []byte("{not geojson"), 0644)
	require.NoError(t, err)
	_, err = loadSubzones(path)
	assert.NotNil(t, err)
}

func TestCountCentres(t *testing.T) {
	subzones := []subzone{
		{
			name:     "Bedok North",
			polygons: []*geom.Polygon{square(103.90, 1.32, 103.95, 1.35)},
		},
		{
			name:     "Bedok Wide",
			polygons: []*geom.Polygon{square(103.90, 1.32, 103.99, 1.39)},
		},
		{
			name:     "Seletar",
			polygons: []*geom.Polygon{square(103.80, 1.40, 103.82, 1.42)},
		},
	}
	centres := []centre{
		{postal: "460001", lat: 1.33, lng: 103.92, hasLocation: true},
		{postal: "460002", lat: 1.34, lng: 103.93, hasLocation: true},
		{postal: "797650", lat: 1.41, lng: 103.81, hasLocation: true},
		{postal: "999999"},
		{postal: "018989", lat: 1.28, lng: 103.85, hasLocation: true},
	}

	counts := countCentres(subzones, centres)
	require.Len(t, counts, 3)

	assert.Equal(t, 2, counts["Bedok North"])
	// Earlier features win when boundaries overlap
	assert.Equal(t, 0, counts["Bedok Wide"])
	assert.Equal(t, 1, counts["Seletar"])
}

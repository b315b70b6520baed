package iopreschools

import (
	"encoding/json"
	"html"
	"os"
	"regexp"
	"strings"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unknownSubzone labels features whose description carries no
// readable subzone name.
const unknownSubzone = "Unknown Subzone"

// The Master Plan export hides feature attributes inside an HTML table
// in the Description property. The strict pattern matches the SUBZONE_N
// row as URA publishes it, the loose one tolerates attribute markup and
// case differences.
var (
	subzoneNameRe  = regexp.MustCompile(`<th>SUBZONE_N</th>\s*<td>([^<]+)</td>`)
	subzoneLooseRe = regexp.MustCompile(`(?is)SUBZONE_N.*?<td>([^<]+)</td>`)
	titleCaser     = cases.Title(language.English)
)

// subzone is one Master Plan planning subzone with its boundary.
// Subzones split by water are MultiPolygon features, so a boundary can
// hold several polygons.
type subzone struct {
	name     string
	polygons []*geom.Polygon
}

// loadSubzones parses the Master Plan GeoJSON. Features keep their file
// order so that point assignment is deterministic.
func loadSubzones(path string) ([]subzone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SubzonesFileError(path, err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, SubzonesGeoJSONError(path, err)
	}

	res := make([]subzone, 0, len(fc.Features))
	for _, ft := range fc.Features {
		sz := subzone{name: featureSubzoneName(ft.Properties)}
		switch g := ft.Geometry.(type) {
		case *geom.Polygon:
			sz.polygons = append(sz.polygons, g)
		case *geom.MultiPolygon:
			for i := range g.NumPolygons() {
				sz.polygons = append(sz.polygons, g.Polygon(i))
			}
		}
		res = append(res, sz)
	}
	return res, nil
}

// featureSubzoneName extracts the subzone name from the Description
// property of a feature. Names are upper case in the source and are
// converted to title case to match the population datasets.
func featureSubzoneName(props map[string]any) string {
	desc, _ := props["Description"].(string)
	m := subzoneNameRe.FindStringSubmatch(desc)
	if m == nil {
		m = subzoneLooseRe.FindStringSubmatch(desc)
	}
	if m == nil {
		return unknownSubzone
	}

	name := strings.TrimSpace(html.UnescapeString(m[1]))
	if name == "" {
		return unknownSubzone
	}
	return titleCaser.String(name)
}

// containsPoint reports whether the point lies inside the subzone
// boundary.
func (s *subzone) containsPoint(c geom.Coord) bool {
	for _, poly := range s.polygons {
		if polygonContains(poly, c) {
			return true
		}
	}
	return false
}

// polygonContains checks the outer ring first, then rejects points that
// fall into a hole. The bounding box test avoids ray casting for points
// far from the polygon.
func polygonContains(poly *geom.Polygon, c geom.Coord) bool {
	if poly.NumLinearRings() == 0 {
		return false
	}
	if !poly.Bounds().OverlapsPoint(poly.Layout(), c) {
		return false
	}
	if !xy.IsPointInRing(poly.Layout(), c, poly.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		if xy.IsPointInRing(poly.Layout(), c, poly.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}

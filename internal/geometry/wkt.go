package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anirbansen/framap/internal/model"
)

// The backend serialises polygon geometry as simplified WKT:
//
//	POLYGON((lng1 lat1, lng2 lat2, ...))
//
// Coordinates on the wire are longitude-first; the map renders
// latitude-first, so ParsePolygon swaps each pair on the way out.
const (
	polygonPrefix = "POLYGON(("
	polygonSuffix = "))"
)

// ParseError reports a malformed geometry string. It is always recoverable:
// callers skip the offending record and continue.
type ParseError struct {
	Geometry string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse geometry %q: %s", truncate(e.Geometry, 60), e.Reason)
}

// ParsePolygon converts a WKT polygon string into an ordered vertex list in
// (lat, lng) display order. The input is never mutated.
func ParsePolygon(s string) ([]model.LatLng, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, polygonPrefix) || !strings.HasSuffix(trimmed, polygonSuffix) {
		return nil, &ParseError{Geometry: s, Reason: "missing POLYGON((...)) wrapper"}
	}

	body := trimmed[len(polygonPrefix) : len(trimmed)-len(polygonSuffix)]
	if strings.TrimSpace(body) == "" {
		return nil, &ParseError{Geometry: s, Reason: "empty vertex list"}
	}

	tokens := strings.Split(body, ",")
	vertices := make([]model.LatLng, 0, len(tokens))
	for i, token := range tokens {
		parts := strings.Fields(strings.TrimSpace(token))
		if len(parts) != 2 {
			return nil, &ParseError{Geometry: s, Reason: fmt.Sprintf("vertex %d: want \"lng lat\", got %q", i, token)}
		}

		lng, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, &ParseError{Geometry: s, Reason: fmt.Sprintf("vertex %d: bad longitude %q", i, parts[0])}
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, &ParseError{Geometry: s, Reason: fmt.Sprintf("vertex %d: bad latitude %q", i, parts[1])}
		}

		vertices = append(vertices, model.LatLng{Lat: lat, Lng: lng})
	}

	return vertices, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

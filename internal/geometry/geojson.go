package geometry

// GeoJSON rendering of the layer output, for loading into external map
// viewers. GeoJSON polygons are longitude-first, so coordinates are swapped
// back from the display order.

// FeatureCollection is a standard GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature is a single feature with polygon geometry and the derived
// display attributes carried as properties.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
}

// GeoJSONGeometry holds a polygon as rings of [lng, lat] positions.
type GeoJSONGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Collection converts rendered features into a GeoJSON FeatureCollection.
// GeoJSON requires closed rings; an open ring is closed by repeating the
// first vertex.
func Collection(features []Feature) FeatureCollection {
	out := FeatureCollection{Type: "FeatureCollection", Features: make([]GeoJSONFeature, 0, len(features))}
	for _, f := range features {
		ring := make([][]float64, 0, len(f.Vertices)+1)
		for _, v := range f.Vertices {
			ring = append(ring, []float64{v.Lng, v.Lat})
		}
		if len(ring) > 0 && (ring[0][0] != ring[len(ring)-1][0] || ring[0][1] != ring[len(ring)-1][1]) {
			ring = append(ring, []float64{ring[0][0], ring[0][1]})
		}

		props := map[string]interface{}{
			"record_id":    f.RecordID,
			"kind":         f.Kind,
			"category":     f.Category,
			"color":        f.Color,
			"fill_color":   f.FillColor,
			"fill_opacity": f.FillOpacity,
			"weight":       f.Weight,
			"title":        f.Popup.Title,
		}
		if f.Dashed {
			props["dashed"] = true
		}

		out.Features = append(out.Features, GeoJSONFeature{
			Type:       "Feature",
			Properties: props,
			Geometry:   GeoJSONGeometry{Type: "Polygon", Coordinates: [][][]float64{ring}},
		})
	}
	return out
}

package model

// LatLng is a geographic coordinate (WGS 84), latitude first to match the
// map rendering convention. Note the WKT wire format is longitude-first;
// the geometry parser performs the swap.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

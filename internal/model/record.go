package model

import "fmt"

// ClaimStatus values assigned by the review workflow on the backend.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AssetType values produced by the satellite classification pipeline.
const (
	AssetForest       = "forest"
	AssetAgricultural = "agricultural"
	AssetUrban        = "urban"
	AssetWater        = "water"
	AssetOther        = "other"
)

// GeoRecord is the common surface of claims and assets needed to place a
// record on the map: identity, a category driving its visual style, and an
// optional WKT polygon. Records without geometry simply produce no feature.
type GeoRecord interface {
	RecordID() int
	Category() string
	WKT() string
	Label() string
}

// ClaimRecord is a Forest Rights Act claim as served by GET /claims.
// Fields mirror the backend payload; everything beyond id, status and
// geometry is display-only and never validated client-side.
type ClaimRecord struct {
	ID               int      `json:"id"`
	ClaimNumber      string   `json:"claim_number"`
	ApplicantName    string   `json:"applicant_name"`
	ApplicantAddress string   `json:"applicant_address,omitempty"`
	Village          string   `json:"village,omitempty"`
	District         string   `json:"district,omitempty"`
	State            string   `json:"state,omitempty"`
	ClaimType        string   `json:"claim_type,omitempty"` // individual, community
	LandArea         float64  `json:"land_area,omitempty"`  // hectares
	LandDescription  string   `json:"land_description,omitempty"`
	Documents        []string `json:"supporting_documents,omitempty"`
	Status           string   `json:"status"`
	Geometry         string   `json:"geometry,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

func (c ClaimRecord) RecordID() int    { return c.ID }
func (c ClaimRecord) Category() string { return c.Status }
func (c ClaimRecord) WKT() string      { return c.Geometry }
func (c ClaimRecord) Label() string    { return c.ClaimNumber }

// Validate rejects payload entries that cannot be addressed as records.
// Anything else is passed through untouched; the backend owns the shape.
func (c ClaimRecord) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("claim record without id")
	}
	return nil
}

// AssetRecord is a mapped land asset as served by GET /assets.
type AssetRecord struct {
	ID              int     `json:"id"`
	AssetName       string  `json:"asset_name"`
	AssetType       string  `json:"asset_type"`
	AreaHectares    float64 `json:"area_hectares,omitempty"`
	Description     string  `json:"description,omitempty"`
	ConfidenceScore float64 `json:"confidence_score,omitempty"`
	Geometry        string  `json:"geometry,omitempty"`
	ClaimID         int     `json:"claim_id,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

func (a AssetRecord) RecordID() int    { return a.ID }
func (a AssetRecord) Category() string { return a.AssetType }
func (a AssetRecord) WKT() string      { return a.Geometry }
func (a AssetRecord) Label() string    { return a.AssetName }

func (a AssetRecord) Validate() error {
	if a.ID <= 0 {
		return fmt.Errorf("asset record without id")
	}
	return nil
}

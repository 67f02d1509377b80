package geometry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anirbansen/framap/internal/model"
)

// Claim status colors. An unrecognised status reads as rejected, matching
// the review workflow's treatment of anything that is not approved/pending.
const defaultClaimColor = "#ef4444"

var claimColors = map[string]string{
	model.StatusApproved: "#10b981",
	model.StatusPending:  "#f59e0b",
	model.StatusRejected: "#ef4444",
}

// Asset type colors. Water and unclassified types share the neutral default.
const defaultAssetColor = "#6b7280"

var assetColors = map[string]string{
	model.AssetForest:       "#059669",
	model.AssetAgricultural: "#d97706",
	model.AssetUrban:        "#7c3aed",
}

// Feature is one drawable polygon with its derived visual attributes.
// Features are ephemeral: rebuilt from the source records on every pass,
// never persisted.
type Feature struct {
	RecordID    int            `json:"record_id"`
	Kind        string         `json:"kind"` // claim or asset
	Category    string         `json:"category"`
	Vertices    []model.LatLng `json:"vertices"`
	Color       string         `json:"color"`
	FillColor   string         `json:"fill_color"`
	FillOpacity float64        `json:"fill_opacity"`
	Weight      int            `json:"weight"`
	Dashed      bool           `json:"dashed,omitempty"`
	Popup       Popup          `json:"popup"`
}

// Popup is the display payload shown when a feature is selected.
type Popup struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
	Badge string   `json:"badge,omitempty"`
}

// Layer converts claim and asset records into renderable features. Records
// are processed independently: a malformed geometry is logged against the
// record id and skipped, and never affects sibling records.
type Layer struct {
	log zerolog.Logger
}

// NewLayer creates a geometry layer logging diagnostics to the given logger.
func NewLayer(log zerolog.Logger) *Layer {
	return &Layer{log: log}
}

// BuildClaims renders claim records, preserving input order. Exactly one
// feature is produced per record with valid geometry; records with absent or
// malformed geometry produce none.
func (l *Layer) BuildClaims(claims []model.ClaimRecord) []Feature {
	features := make([]Feature, 0, len(claims))
	for _, claim := range claims {
		vertices, ok := l.vertices("claim", claim)
		if !ok {
			continue
		}

		color := claimColors[claim.Status]
		if color == "" {
			l.log.Debug().Int("claim_id", claim.ID).Str("status", claim.Status).
				Msg("unknown claim status, using rejected color")
			color = defaultClaimColor
		}

		features = append(features, Feature{
			RecordID:    claim.ID,
			Kind:        "claim",
			Category:    claim.Status,
			Vertices:    vertices,
			Color:       color,
			FillColor:   color,
			FillOpacity: 0.3,
			Weight:      2,
			Popup:       claimPopup(claim),
		})
	}
	return features
}

// BuildAssets renders asset records with the same per-record isolation as
// BuildClaims. Asset outlines are thinner and dashed to read differently
// from claims on the map.
func (l *Layer) BuildAssets(assets []model.AssetRecord) []Feature {
	features := make([]Feature, 0, len(assets))
	for _, asset := range assets {
		vertices, ok := l.vertices("asset", asset)
		if !ok {
			continue
		}

		color, ok := assetColors[asset.AssetType]
		if !ok {
			color = defaultAssetColor
		}

		features = append(features, Feature{
			RecordID:    asset.ID,
			Kind:        "asset",
			Category:    asset.AssetType,
			Vertices:    vertices,
			Color:       color,
			FillColor:   color,
			FillOpacity: 0.2,
			Weight:      1,
			Dashed:      true,
			Popup:       assetPopup(asset),
		})
	}
	return features
}

// vertices parses a record's geometry, reporting whether the record should
// render at all. Absent geometry is a silent skip; a parse failure is a
// logged diagnostic keyed by the record id.
func (l *Layer) vertices(kind string, rec model.GeoRecord) ([]model.LatLng, bool) {
	wkt := rec.WKT()
	if wkt == "" {
		return nil, false
	}

	vertices, err := ParsePolygon(wkt)
	if err != nil {
		l.log.Warn().Err(err).Str("kind", kind).Int("record_id", rec.RecordID()).
			Msg("skipping record with malformed geometry")
		return nil, false
	}
	return vertices, true
}

func claimPopup(c model.ClaimRecord) Popup {
	lines := make([]string, 0, 3)
	if c.ApplicantName != "" {
		lines = append(lines, c.ApplicantName)
	}
	if c.Village != "" || c.District != "" {
		lines = append(lines, fmt.Sprintf("%s, %s", c.Village, c.District))
	}
	if c.LandArea > 0 {
		lines = append(lines, fmt.Sprintf("Area: %g hectares", c.LandArea))
	}
	return Popup{Title: c.ClaimNumber, Lines: lines, Badge: c.Status}
}

func assetPopup(a model.AssetRecord) Popup {
	lines := make([]string, 0, 3)
	lines = append(lines, fmt.Sprintf("Type: %s", a.AssetType))
	if a.AreaHectares > 0 {
		lines = append(lines, fmt.Sprintf("Area: %g hectares", a.AreaHectares))
	}
	if a.ConfidenceScore > 0 {
		lines = append(lines, fmt.Sprintf("Confidence: %.1f%%", a.ConfidenceScore*100))
	}
	return Popup{Title: a.AssetName, Lines: lines}
}

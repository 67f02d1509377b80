package geometry

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/anirbansen/framap/internal/model"
)

func testLayer() (*Layer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLayer(zerolog.New(&buf)), &buf
}

func TestBuildClaims_PerRecordIsolation(t *testing.T) {
	layer, logs := testLayer()

	claims := []model.ClaimRecord{
		{ID: 1, ClaimNumber: "FRA-001", Status: model.StatusApproved, Geometry: "POLYGON((77.1 28.1, 77.2 28.2, 77.3 28.3))"},
		{ID: 2, ClaimNumber: "FRA-002", Status: model.StatusPending, Geometry: "POLYGON((abc def))"},
		{ID: 3, ClaimNumber: "FRA-003", Status: model.StatusPending},
		{ID: 4, ClaimNumber: "FRA-004", Status: model.StatusRejected, Geometry: "POLYGON((78.1 29.1, 78.2 29.2, 78.3 29.3))"},
	}

	features := layer.BuildClaims(claims)

	// Exactly one feature per valid record, relative order preserved.
	if len(features) != 2 {
		t.Fatalf("Expected 2 features, got %d", len(features))
	}
	if features[0].RecordID != 1 || features[1].RecordID != 4 {
		t.Errorf("Expected records 1 and 4 in order, got %d and %d", features[0].RecordID, features[1].RecordID)
	}

	// The malformed record's diagnostic names the record id.
	if !strings.Contains(logs.String(), `"record_id":2`) {
		t.Errorf("Expected a diagnostic referencing record 2, got: %s", logs.String())
	}
	// The absent-geometry record is a silent skip, not an error.
	if strings.Contains(logs.String(), `"record_id":3`) {
		t.Errorf("Record 3 has no geometry and should not be logged, got: %s", logs.String())
	}
}

func TestBuildClaims_StatusColors(t *testing.T) {
	layer, _ := testLayer()
	geom := "POLYGON((77.1 28.1, 77.2 28.2, 77.3 28.3))"

	cases := []struct {
		status string
		color  string
	}{
		{model.StatusApproved, "#10b981"},
		{model.StatusPending, "#f59e0b"},
		{model.StatusRejected, "#ef4444"},
		{"withdrawn", "#ef4444"}, // unknown status reads as rejected
	}

	for _, tc := range cases {
		features := layer.BuildClaims([]model.ClaimRecord{{ID: 1, Status: tc.status, Geometry: geom}})
		if len(features) != 1 {
			t.Fatalf("status %q: expected 1 feature, got %d", tc.status, len(features))
		}
		f := features[0]
		if f.Color != tc.color || f.FillColor != tc.color {
			t.Errorf("status %q: expected color %s, got stroke %s fill %s", tc.status, tc.color, f.Color, f.FillColor)
		}
		if f.FillOpacity != 0.3 || f.Weight != 2 || f.Dashed {
			t.Errorf("status %q: unexpected claim style %+v", tc.status, f)
		}
	}
}

func TestBuildAssets_TypeColors(t *testing.T) {
	layer, _ := testLayer()
	geom := "POLYGON((77.1 28.1, 77.2 28.2, 77.3 28.3))"

	cases := []struct {
		assetType string
		color     string
	}{
		{model.AssetForest, "#059669"},
		{model.AssetAgricultural, "#d97706"},
		{model.AssetUrban, "#7c3aed"},
		{model.AssetWater, "#6b7280"},
		{model.AssetOther, "#6b7280"},
		{"wetland", "#6b7280"},
	}

	for _, tc := range cases {
		features := layer.BuildAssets([]model.AssetRecord{{ID: 9, AssetType: tc.assetType, Geometry: geom}})
		if len(features) != 1 {
			t.Fatalf("type %q: expected 1 feature, got %d", tc.assetType, len(features))
		}
		f := features[0]
		if f.Color != tc.color {
			t.Errorf("type %q: expected color %s, got %s", tc.assetType, tc.color, f.Color)
		}
		if f.FillOpacity != 0.2 || f.Weight != 1 || !f.Dashed {
			t.Errorf("type %q: unexpected asset style %+v", tc.assetType, f)
		}
	}
}

func TestBuildAssets_Popup(t *testing.T) {
	layer, _ := testLayer()

	features := layer.BuildAssets([]model.AssetRecord{{
		ID:              5,
		AssetName:       "Kanha North Block",
		AssetType:       model.AssetForest,
		AreaHectares:    12.5,
		ConfidenceScore: 0.874,
		Geometry:        "POLYGON((80.6 22.3, 80.7 22.4, 80.8 22.5))",
	}})
	if len(features) != 1 {
		t.Fatalf("Expected 1 feature, got %d", len(features))
	}

	popup := features[0].Popup
	if popup.Title != "Kanha North Block" {
		t.Errorf("Expected asset name as title, got %q", popup.Title)
	}

	joined := strings.Join(popup.Lines, "\n")
	for _, want := range []string{"Type: forest", "Area: 12.5 hectares", "Confidence: 87.4%"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected popup to contain %q, got %q", want, joined)
		}
	}
}

func TestBuildClaims_InputNotMutated(t *testing.T) {
	layer, _ := testLayer()

	claims := []model.ClaimRecord{
		{ID: 1, Status: model.StatusApproved, Geometry: "POLYGON((77.1 28.1, 77.2 28.2, 77.3 28.3))"},
	}
	original := claims[0]

	layer.BuildClaims(claims)
	layer.BuildClaims(claims)

	if !reflect.DeepEqual(claims[0], original) {
		t.Errorf("Input record mutated: %+v != %+v", claims[0], original)
	}
}

package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbansen/framap/internal/export"
	"github.com/anirbansen/framap/internal/model"
)

func TestNewDocument_StampsExportDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

	doc := export.NewDocument(
		[]model.ClaimRecord{{ID: 1, ClaimNumber: "FRA-001", Status: model.StatusApproved}},
		[]model.AssetRecord{{ID: 2, AssetName: "Block A", AssetType: model.AssetForest}},
		now,
	)

	assert.Equal(t, "2026-08-30T10:30:00Z", doc.ExportDate)
	assert.Len(t, doc.Claims, 1)
	assert.Len(t, doc.Assets, 1)
}

func TestNewDocument_EmptySlicesNotNull(t *testing.T) {
	doc := export.NewDocument(nil, nil, time.Now())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"claims":[]`)
	assert.Contains(t, string(data), `"assets":[]`)
}

func TestFilename_CarriesDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "fra-webgis-data-2026-08-30.json", export.Filename(now))
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	now := time.Now()

	doc := export.NewDocument([]model.ClaimRecord{{ID: 4, Status: model.StatusPending}}, nil, now)
	require.NoError(t, export.WriteJSON(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded export.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.ExportDate, decoded.ExportDate)
	require.Len(t, decoded.Claims, 1)
	assert.Equal(t, 4, decoded.Claims[0].ID)
}

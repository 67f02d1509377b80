package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anirbansen/framap/internal/model"
)

// Document is the exported map dataset. ExportDate is the ISO-8601
// generation time.
type Document struct {
	Claims     []model.ClaimRecord `json:"claims"`
	Assets     []model.AssetRecord `json:"assets"`
	ExportDate string              `json:"exportDate"`
}

// NewDocument assembles an export document stamped with now.
func NewDocument(claims []model.ClaimRecord, assets []model.AssetRecord, now time.Time) Document {
	if claims == nil {
		claims = []model.ClaimRecord{}
	}
	if assets == nil {
		assets = []model.AssetRecord{}
	}
	return Document{
		Claims:     claims,
		Assets:     assets,
		ExportDate: now.UTC().Format(time.RFC3339),
	}
}

// Filename is the default dated export name.
func Filename(now time.Time) string {
	return fmt.Sprintf("fra-webgis-data-%s.json", now.UTC().Format("2006-01-02"))
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anirbansen/framap/internal/export"
	"github.com/anirbansen/framap/internal/fetch"
	"github.com/anirbansen/framap/internal/geometry"
	"github.com/anirbansen/framap/internal/model"
)

var (
	mapLayers  string
	mapGeoJSON string
)

// mapCmd represents the map command
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Fetch claims and assets and render the geometry layer",
	Long: `Fetch the map dataset, render every record's polygon geometry into a
styled feature, and print layer statistics. Records with absent or malformed
geometry are skipped individually and never block the rest of the layer.

With --geojson the rendered features are written as a GeoJSON
FeatureCollection ready to load into any map viewer.

Example:
  framap map
  framap map --layers claims
  framap map --geojson layer.geojson`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		ds, err := a.fetcher.Dataset(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch map data: %w", err)
		}

		var features []geometry.Feature
		renderClaims := layerActive("claims")
		renderAssets := layerActive("assets")

		if renderClaims {
			features = append(features, a.layer.BuildClaims(ds.Claims)...)
		}
		if renderAssets {
			features = append(features, a.layer.BuildAssets(ds.Assets)...)
		}

		printStats(ds, features, renderClaims, renderAssets)

		if mapGeoJSON != "" {
			if err := export.WriteJSON(mapGeoJSON, geometry.Collection(features)); err != nil {
				return err
			}
			fmt.Printf("\nGeoJSON written to %s\n", mapGeoJSON)
		}
		return nil
	},
}

func layerActive(name string) bool {
	for _, layer := range strings.Split(mapLayers, ",") {
		if strings.TrimSpace(layer) == name {
			return true
		}
	}
	return false
}

// printStats mirrors the dashboard's statistics panel: totals plus the
// per-status claim breakdown.
func printStats(ds *fetch.Dataset, features []geometry.Feature, renderClaims, renderAssets bool) {
	byStatus := map[string]int{}
	for _, claim := range ds.Claims {
		byStatus[claim.Status]++
	}

	fmt.Println("FRA WebGIS layer")
	fmt.Printf("  Total claims:    %d (approved %d, pending %d, rejected %d)\n",
		len(ds.Claims), byStatus[model.StatusApproved], byStatus[model.StatusPending], byStatus[model.StatusRejected])
	fmt.Printf("  Total assets:    %d\n", len(ds.Assets))

	rendered := map[string]int{}
	for _, f := range features {
		rendered[f.Kind]++
	}
	if renderClaims {
		fmt.Printf("  Claim polygons:  %d rendered, %d without usable geometry\n",
			rendered["claim"], len(ds.Claims)-rendered["claim"])
	}
	if renderAssets {
		fmt.Printf("  Asset polygons:  %d rendered, %d without usable geometry\n",
			rendered["asset"], len(ds.Assets)-rendered["asset"])
	}
}

func init() {
	mapCmd.Flags().StringVar(&mapLayers, "layers", "claims,assets", "comma-separated layers to render (claims, assets)")
	mapCmd.Flags().StringVar(&mapGeoJSON, "geojson", "", "write rendered features to a GeoJSON file")

	rootCmd.AddCommand(mapCmd)
}

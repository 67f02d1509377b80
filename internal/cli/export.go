package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/anirbansen/framap/internal/export"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the claims and assets dataset as JSON",
	Long: `Fetch the full dataset and write it as a JSON document of the form
{claims, assets, exportDate}, where exportDate is the ISO-8601 generation
time. The default filename carries the export date.

Example:
  framap export
  framap export --out /tmp/fra-data.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		ds, err := a.fetcher.Dataset(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch export data: %w", err)
		}

		now := time.Now()
		out := exportOut
		if out == "" {
			out = filepath.Join(a.cfg.Output.ExportDir, export.Filename(now))
		}

		doc := export.NewDocument(ds.Claims, ds.Assets, now)
		if err := export.WriteJSON(out, doc); err != nil {
			return err
		}

		fmt.Printf("Exported %d claims and %d assets to %s\n", len(ds.Claims), len(ds.Assets), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: fra-webgis-data-<date>.json)")

	rootCmd.AddCommand(exportCmd)
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all products and categories to a snapshot JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, bolt, kvStore, err := openStore()
		if err != nil {
			return err
		}
		defer bolt.Close()

		snap, err := kvStore.ExportSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot file: %w", err)
		}

		fmt.Printf("Exported %d products and %d categories to %s\n",
			len(snap.Products), len(snap.Categories), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "catalog-export.json", "path of the snapshot file to write")
	rootCmd.AddCommand(exportCmd)
}

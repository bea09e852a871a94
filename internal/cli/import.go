package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog-service/internal/domain"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all products and categories from a snapshot JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}
		var snap domain.Snapshot
		if err := json.Unmarshal(content, &snap); err != nil {
			return fmt.Errorf("parse snapshot file: %w", err)
		}

		_, bolt, kvStore, err := openStore()
		if err != nil {
			return err
		}
		defer bolt.Close()

		if err := kvStore.ImportSnapshot(cmd.Context(), &snap); err != nil {
			return err
		}

		fmt.Printf("Imported %d products and %d categories from %s\n",
			len(snap.Products), len(snap.Categories), importFile)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "path of the snapshot file to read")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

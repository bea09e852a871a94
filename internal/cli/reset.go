package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all products, or everything with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, bolt, kvStore, err := openStore()
		if err != nil {
			return err
		}
		defer bolt.Close()

		if resetAll {
			if err := kvStore.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All products and categories deleted.")
			return nil
		}
		if err := kvStore.ClearProducts(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All products deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "also delete categories")
	rootCmd.AddCommand(resetCmd)
}

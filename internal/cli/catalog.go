package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"symptom-service/internal/diagnosis/catalog"
	"symptom-service/internal/diagnosis/model"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show catalog load statistics",
		Long: `Catalog loads the disease/symptom table with the same rules the service
uses and prints what was kept and dropped. Use --file to check a table
before pointing the service at it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.catalogPath
			if file != "" {
				path = file
			}
			_, stats, err := catalog.Load(path, root.headerRow)
			if err != nil {
				return err
			}
			return printStats(cmd, stats)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "table to check instead of --catalog")
	return cmd
}

func printStats(cmd *cobra.Command, stats model.CatalogStats) error {
	out, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("error marshaling stats: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"symptom-service/internal/config"
	"symptom-service/internal/diagnosis"
)

const version = "symptomctl v0.3.0"

type rootOptions struct {
	catalogPath   string
	headerRow     int
	treatmentPath string
	verbose       bool
}

// NewRootCmd собирает дерево команд. Значения по умолчанию берутся из окружения
// (те же переменные, что у сервера), флаги их перекрывают.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "symptomctl",
		Short: "symptomctl - match symptoms against the disease catalog",
		Long: `symptomctl runs the symptom matcher locally, without the HTTP service.

It ranks catalog diseases by how well their known symptoms match the
symptoms you enter, and prints medication and home-remedy guidance when the
treatment reference has an entry for the condition.

This is not a substitute for professional medical advice.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", cfg.CatalogPath, "disease/symptom table (.csv, .xlsx, .xls)")
	root.PersistentFlags().IntVar(&opts.headerRow, "header-row", cfg.CatalogHeaderRow, "1-based header row of the catalog table")
	root.PersistentFlags().StringVar(&opts.treatmentPath, "treatments", cfg.TreatmentPath, "treatment reference JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newMatchCmd(opts, cfg.TopN),
		newCatalogCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return config.SetupConsoleLogger(cmd.ErrOrStderr(), level)
}

func (o *rootOptions) loadEngine(cmd *cobra.Command) (*diagnosis.Engine, error) {
	return diagnosis.Load(diagnosis.Sources{
		CatalogPath:      o.catalogPath,
		CatalogHeaderRow: o.headerRow,
		TreatmentPath:    o.treatmentPath,
	}, o.logger(cmd))
}

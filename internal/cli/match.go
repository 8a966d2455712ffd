package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"symptom-service/internal/diagnosis/model"
	"symptom-service/internal/diagnosis/service"
)

func newMatchCmd(root *rootOptions, defTopN int) *cobra.Command {
	var (
		topN   int
		format string
	)
	cmd := &cobra.Command{
		Use:   "match <symptoms>",
		Short: "Rank likely conditions for comma-separated symptoms",
		Long: `Match normalizes the entered symptoms, scores every catalog disease and
prints the top matches with confidence, matched symptoms and recommendations.

Example:
  symptomctl match "fever, cough, headache"
  symptomctl match fever cough --top 3 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if topN < 1 {
				return fmt.Errorf("--top must be >= 1, got %d", topN)
			}
			eng, err := root.loadEngine(cmd)
			if err != nil {
				return err
			}
			symptoms := service.SplitSymptoms(strings.Join(args, ","))
			resp := eng.Matcher.Diagnose(symptoms, topN)
			return writeResponse(cmd.OutOrStdout(), format, resp)
		},
	}
	cmd.Flags().IntVarP(&topN, "top", "n", defTopN, "number of conditions to show")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func writeResponse(w io.Writer, format string, resp model.Response) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text", "":
		return writeText(w, resp)
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, resp model.Response) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Symptoms: %s\n\n", resp.SymptomsEntered)
	if resp.Message != "" {
		fmt.Fprintf(&b, "%s\n\n", resp.Message)
	}
	for i, c := range resp.PossibleConditions {
		fmt.Fprintf(&b, "%d. %s  %s (%s)\n", i+1, c.Disease, c.Confidence, c.Severity)
		fmt.Fprintf(&b, "   matched: %s (%d known)\n", strings.Join(c.MatchedSymptoms, ", "), c.TotalSymptoms)
		for _, r := range c.Recommendations {
			fmt.Fprintf(&b, "   - %s\n", r)
		}
		if c.Treatment != nil && c.Treatment.EmergencyNote != "" {
			fmt.Fprintf(&b, "   ! %s\n", c.Treatment.EmergencyNote)
		}
		b.WriteString("\n")
	}
	b.WriteString(resp.Disclaimer + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

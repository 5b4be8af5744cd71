package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kg/internal/util"
	"kg/pkg/concepts"
	"kg/pkg/loader/pdf"
	"kg/pkg/pipeline"
)

func newLoadCmd() *cobra.Command {
	var subject, unit string

	cmd := &cobra.Command{
		Use:   "load --subject <name> --unit <name> <file.pdf>",
		Short: "Load a PDF into the knowledge graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := time.Duration(util.GetEnvInt("KG_EXTRACT_TIMEOUT_SECONDS", 30)) * time.Second
			p := pipeline.NewPipeline(pipeline.NewPipelineParams{
				Extractor: pdf.NewExtractor(pdf.NewExtractorParams{Timeout: timeout}),
				Store:     newStore(),
				Concepts: concepts.NewExtractor(concepts.NewExtractorParams{
					MinFrequency: util.GetEnvInt("KG_MIN_FREQUENCY", 2),
				}),
			})

			report, err := p.Load(cmd.Context(), subject, unit, args[0])
			if err != nil {
				return err
			}

			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject the document belongs to")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit within the subject")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func printReport(cmd *cobra.Command, report *pipeline.Report) {
	rule := strings.Repeat("=", 40)
	cmd.Println(rule)
	cmd.Printf("STATUS:   %s\n", report.Status)
	cmd.Printf("SUBJECT:  %s\n", report.Subject)
	cmd.Printf("UNIT:     %s\n", report.Unit)
	cmd.Printf("CONCEPTS: %d\n", report.Concepts)
	cmd.Printf("EDGES:    %d\n", report.Edges)
	cmd.Println(rule)
}

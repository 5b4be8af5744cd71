package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"kg/pkg/graph"
)

func newConceptsCmd() *cobra.Command {
	var subject, unit string

	cmd := &cobra.Command{
		Use:   "concepts --subject <name> --unit <name>",
		Short: "List concepts for a subject/unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newStore().Load()
			if err != nil {
				return err
			}

			if !g.HasNode(graph.UnitKey(subject, unit)) {
				cmd.Println("No such unit.")
				return nil
			}

			rule := strings.Repeat("-", 40)
			cmd.Printf("[Subject: %s]\n", subject)
			cmd.Printf("[Unit: %s]\n", unit)
			cmd.Println(rule)

			terms := g.ConceptsInUnit(subject, unit)
			for i, term := range terms {
				cmd.Printf("%d. %s\n", i+1, term)
			}

			cmd.Println(rule)
			cmd.Printf("Total concepts: %d\n", len(terms))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject to list concepts for")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit to list concepts for")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show knowledge graph summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newStore().Load()
			if err != nil {
				return err
			}

			stats := g.ComputeStats()

			rule := strings.Repeat("-", 30)
			cmd.Println("Knowledge Graph Status")
			cmd.Println(rule)
			cmd.Printf("Subjects : %d\n", stats.Subjects)
			cmd.Printf("Units    : %d\n", stats.Units)
			cmd.Printf("Notes    : %d\n", stats.Notes)
			cmd.Printf("Concepts : %d\n", stats.Concepts)
			cmd.Printf("Edges    : %d\n", stats.Edges)

			if len(stats.ConceptsPerUnit) > 0 {
				cmd.Println("\nConcepts per unit:")
				for _, entry := range stats.ConceptsPerUnit {
					cmd.Printf(" - %s: %d\n", entry.Unit, entry.Concepts)
				}
			}

			cmd.Println(rule)
			return nil
		},
	}
}

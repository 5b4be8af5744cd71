package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRelatedCmd() *cobra.Command {
	var subject, unit string

	cmd := &cobra.Command{
		Use:   "related --subject <name> --unit <name> <concept>",
		Short: "Find concepts that share notes with a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newStore().Load()
			if err != nil {
				return err
			}

			term := strings.TrimSpace(strings.ToLower(args[0]))
			related, ok := g.RelatedConcepts(subject, unit, term)
			if !ok {
				cmd.Printf("Concept not found: %s\n", args[0])
				return nil
			}
			if len(related) == 0 {
				cmd.Println("No related concepts found.")
				return nil
			}

			rule := strings.Repeat("-", 40)
			cmd.Printf("Related concepts for: %s\n", args[0])
			cmd.Printf("[Subject: %s / Unit: %s]\n", subject, unit)
			cmd.Println(rule)
			for i, r := range related {
				cmd.Printf("%d. %s (shared notes: %d)\n", i+1, r.Term, r.SharedNotes)
			}
			cmd.Println(rule)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject the concept is scoped to")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit the concept is scoped to")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

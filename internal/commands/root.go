// Package commands builds the kg command tree.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"kg/internal/util"
	"kg/pkg/store"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kg",
		Short: "Personal knowledge graph engine",
		Long: `kg ingests PDF documents into a scoped, provenance-tracked knowledge
graph persisted as a single JSON file. Re-ingesting unchanged documents is
a no-op; changed documents have their previous contribution rebuilt.`,
		SilenceUsage: true,
	}

	// Reports go to stdout; the error stream carries only failure output.
	cmd.SetOut(os.Stdout)

	cmd.AddCommand(
		newLoadCmd(),
		newConceptsCmd(),
		newRelatedCmd(),
		newStatusCmd(),
	)

	return cmd
}

func newStore() *store.FileStore {
	return store.NewFileStore(store.NewFileStoreParams{
		Path: util.GetEnvString("KG_STORE_PATH", "knowledge_graph.json"),
	})
}

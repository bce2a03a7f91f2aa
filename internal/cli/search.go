package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search persons by ID or name",
		Long: "A numeric query looks up one person by ID; anything else searches names.\n" +
			"With --clear the query is dropped and the full list is reloaded.",
		Args: cobra.ArbitraryArgs,
		RunE: runSearch,
	}

	cmd.Flags().Bool("clear", false, "Clear the query and reload the full list")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	clearQuery, _ := cmd.Flags().GetBool("clear")
	query := strings.Join(args, " ")

	return run(cmd, "search", func(w *workspace) error {
		if clearQuery {
			_ = w.app.Search.Clear(cmd.Context())
			return nil
		}
		_ = w.app.Search.Submit(cmd.Context(), query)
		return nil
	})
}

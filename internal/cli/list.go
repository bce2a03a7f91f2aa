package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load all persons from the directory",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return run(cmd, "list", func(w *workspace) error {
		// Failures end up in the status, which finish turns into the exit code.
		_ = w.app.Loader.Load(cmd.Context())
		return nil
	})
}

package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved list, status and open forms without contacting the directory",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer w.store.Close()

	printView(cmd.OutOrStdout(), w.app)
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved list, forms and activity log",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer s.Close()

	if err := s.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session reset: %s\n", s.Path())
	return nil
}

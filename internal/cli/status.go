package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent command statuses",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max entries")

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer s.Close()

	entries, err := s.History(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if entries == nil {
		entries = []session.Entry{}
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		printJSON(out, entries)
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tACTION\tSTATUS")
	for _, e := range entries {
		msg := e.Message
		if e.IsError {
			msg = "error: " + msg
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.At.Local().Format(time.DateTime), e.Action, msg)
	}
	return tw.Flush()
}

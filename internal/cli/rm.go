package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a person",
		Long:  "Asks for confirmation on stdin before deleting, unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRm,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	id, err := validate.ParseID(args[0])
	if err != nil {
		return fmt.Errorf("%q: %s", args[0], validate.MsgID)
	}

	var confirm directory.Confirmer = directory.ConfirmFunc(func(string) bool { return true })
	if !yes {
		confirm = stdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	return run(cmd, "rm", func(w *workspace) error {
		_ = w.app.Delete(cmd.Context(), id, confirm)
		return nil
	})
}

// stdinConfirmer asks on out and accepts y or yes read from in. Anything
// else, including EOF, declines.
func stdinConfirmer(in io.Reader, out io.Writer) directory.Confirmer {
	return directory.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

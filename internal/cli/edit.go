package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/validate"
)

var errNoEditor = errors.New("no person is being edited (use: persondir edit ID)")

func init() {
	cmd := &cobra.Command{
		Use:   "edit [ID]",
		Short: "Edit a person",
		Long: "With an ID the edit form opens on that person, prefilled from the list or fetched\n" +
			"from the directory. --name and --age change the open draft, which is then saved\n" +
			"unless --draft is given.",
		Example: `  persondir edit 7
  persondir edit 7 --age 41
  persondir edit --name "Ann Lee" --draft
  persondir edit save`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}
	addFieldFlags(cmd)

	save := &cobra.Command{
		Use:   "save",
		Short: "Submit the open edit form",
		Args:  cobra.NoArgs,
		RunE:  runEditSave,
	}
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Close the edit form without saving",
		Args:  cobra.NoArgs,
		RunE:  runEditClose,
	}
	cmd.AddCommand(save, closeCmd)

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	draftOnly, _ := cmd.Flags().GetBool("draft")

	id := 0
	if len(args) == 1 {
		n, err := validate.ParseID(args[0])
		if err != nil {
			return fmt.Errorf("%q: %s", args[0], validate.MsgID)
		}
		id = n
	}

	return run(cmd, "edit", func(w *workspace) error {
		form := w.app.Edit
		if id > 0 {
			if err := w.app.OpenEditor(cmd.Context(), id); err != nil {
				return err
			}
		} else if !form.IsOpen() {
			return errNoEditor
		}

		changed, err := applyFields(cmd, form.Change)
		if err != nil {
			return err
		}
		if !changed || draftOnly {
			return nil
		}
		_, err = form.Submit(cmd.Context())
		return submitErr(err)
	})
}

func runEditSave(cmd *cobra.Command, args []string) error {
	return run(cmd, "edit save", func(w *workspace) error {
		if !w.app.Edit.IsOpen() {
			return errNoEditor
		}
		_, err := w.app.Edit.Submit(cmd.Context())
		return submitErr(err)
	})
}

func runEditClose(cmd *cobra.Command, args []string) error {
	return run(cmd, "edit close", func(w *workspace) error {
		w.app.Edit.Close()
		return nil
	})
}

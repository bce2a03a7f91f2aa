package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person",
		Long: "Opens the create form, applies --name and --age and submits it.\n" +
			"A draft that fails validation stays open so it can be corrected with another add.",
		Example: `  persondir add --name "Ann Lee" --age 34
  persondir add --name Ann --draft
  persondir add --age 34`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
	addFieldFlags(cmd)

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Close the create form and discard the draft",
		Args:  cobra.NoArgs,
		RunE:  runAddCancel,
	}
	cmd.AddCommand(cancel)

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	draftOnly, _ := cmd.Flags().GetBool("draft")

	return run(cmd, "add", func(w *workspace) error {
		form := w.app.Create
		form.Show()
		if _, err := applyFields(cmd, form.Change); err != nil {
			return err
		}
		if draftOnly {
			return nil
		}
		_, err := form.Submit(cmd.Context())
		return submitErr(err)
	})
}

func runAddCancel(cmd *cobra.Command, args []string) error {
	return run(cmd, "add cancel", func(w *workspace) error {
		w.app.Create.Hide()
		return nil
	})
}

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/validate"
)

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Person name")
	cmd.Flags().String("age", "", "Person age")
	cmd.Flags().Bool("draft", false, "Only update the draft, do not submit")
}

// applyFields copies the name and age flags the user set into the draft.
func applyFields(cmd *cobra.Command, change func(field, value string) error) (bool, error) {
	changed := false
	for _, field := range []string{validate.FieldName, validate.FieldAge} {
		if !cmd.Flags().Changed(field) {
			continue
		}
		v, _ := cmd.Flags().GetString(field)
		if err := change(field, v); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// submitErr maps a form submit error to the command result. Field errors are
// printed with the form; remote errors are already in the status.
func submitErr(err error) error {
	if errors.Is(err, directory.ErrInvalidDraft) {
		return ErrFailed
	}
	return err
}

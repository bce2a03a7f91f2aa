package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/validate"
)

type viewOutput struct {
	Persons []model.Person          `json:"persons"`
	Status  model.Status            `json:"status"`
	Create  *directory.FormSnapshot `json:"create,omitempty"`
	Edit    *directory.EditSnapshot `json:"edit,omitempty"`
}

func printView(w io.Writer, app *directory.App) {
	snap := app.Snapshot()
	out := viewOutput{Persons: snap.Persons, Status: snap.Status}
	if snap.Create.Open || len(snap.Create.Errors) > 0 {
		out.Create = &snap.Create
	}
	if snap.Edit.Open {
		out.Edit = &snap.Edit
	}

	if formatFlag == "json" {
		printJSON(w, out)
		return
	}

	printTable(w, out.Persons)
	if out.Create != nil {
		fmt.Fprintln(w)
		printForm(w, "New person", out.Create.Draft, out.Create.Errors)
	}
	if out.Edit != nil {
		fmt.Fprintln(w)
		printForm(w, fmt.Sprintf("Editing #%d", out.Edit.Selected.ID), out.Edit.Draft, out.Edit.Errors)
	}
	fmt.Fprintln(w)
	printStatus(w, out.Status)
}

func printTable(w io.Writer, persons []model.Person) {
	if len(persons) == 0 {
		fmt.Fprintln(w, "No persons found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE")
	for _, p := range persons {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", p.ID, p.Name, p.Age)
	}
	tw.Flush()
}

func printForm(w io.Writer, title string, d model.Draft, errs validate.Errors) {
	fmt.Fprintf(w, "%s:\n", title)
	if d.ID != "" {
		fmt.Fprintf(w, "  id:   %s\n", d.ID)
	}
	fmt.Fprintf(w, "  name: %s\n", d.Name)
	fmt.Fprintf(w, "  age:  %s\n", d.Age)

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  ! %s: %s\n", f, errs[f])
	}
}

func printStatus(w io.Writer, st model.Status) {
	if st.IsError {
		fmt.Fprintf(w, "error: %s\n", st.Message)
		return
	}
	fmt.Fprintf(w, "status: %s\n", st.Message)
}

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

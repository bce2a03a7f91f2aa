package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/persondir/internal/model"
)

// MsgDeleteCancelled is published when the user declines a delete.
const MsgDeleteCancelled = "Deletion cancelled"

// ErrNotFound is returned when a person to edit does not exist.
var ErrNotFound = errors.New("person not found")

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// App wires the controllers to one view and one remote store.
type App struct {
	View   *View
	Loader *Loader
	Search *Search
	Create *CreateForm
	Edit   *EditForm

	remote Remote
}

// NewApp returns an app with an empty view and closed forms.
func NewApp(remote Remote) *App {
	view := NewView()
	loader := NewLoader(remote, view)
	return &App{
		View:   view,
		Loader: loader,
		Search: NewSearch(remote, view, loader),
		Create: NewCreateForm(remote, view, loader),
		Edit:   NewEditForm(remote, view, loader),
		remote: remote,
	}
}

// DeletePrompt is the question asked before deleting id.
func DeletePrompt(id int) string {
	return fmt.Sprintf("Delete person #%d? This cannot be undone.", id)
}

// Delete asks c for confirmation and deletes the person. Declining publishes
// a notice and makes no remote call. After a successful delete the edit form
// is closed if it held the same person, and the list is reloaded.
func (a *App) Delete(ctx context.Context, id int, c Confirmer) error {
	if !c.Confirm(DeletePrompt(id)) {
		a.View.SetStatus(MsgDeleteCancelled)
		return nil
	}

	if err := a.remote.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("delete failed")
		a.View.SetError(err)
		return err
	}

	if editing, open := a.Edit.EditingID(); open && editing == id {
		a.Edit.Close()
	}
	// A failed reload is already on the view; the delete itself succeeded.
	_ = a.Loader.Reload(ctx, fmt.Sprintf("Deleted #%d", id))
	return nil
}

// OpenEditor opens the edit form on the person with the given id, taken from
// the working set or, when absent, fetched from the remote store.
func (a *App) OpenEditor(ctx context.Context, id int) error {
	p, ok := a.View.Find(id)
	if !ok {
		fetched, err := a.remote.GetByID(ctx, id)
		if err != nil {
			a.View.SetError(err)
			return err
		}
		if fetched == nil {
			a.View.SetErrorMessage(fmt.Sprintf("No person found with ID: %d", id))
			return ErrNotFound
		}
		p = *fetched
	}
	a.Edit.Open(p)
	return nil
}

// Snapshot is the state of an App that outlives one process.
type Snapshot struct {
	Persons []model.Person `json:"persons"`
	Status  model.Status   `json:"status"`
	Query   string         `json:"query,omitempty"`
	Create  FormSnapshot   `json:"create"`
	Edit    EditSnapshot   `json:"edit"`
}

// NewSnapshot is the state of a fresh App.
func NewSnapshot() Snapshot {
	return Snapshot{Persons: []model.Person{}, Status: model.ReadyStatus}
}

// Snapshot captures the view, the last query and both forms.
func (a *App) Snapshot() Snapshot {
	return Snapshot{
		Persons: a.View.Persons(),
		Status:  a.View.Status(),
		Query:   a.Search.Query(),
		Create:  a.Create.snapshot(),
		Edit:    a.Edit.snapshot(),
	}
}

// Restore replaces the app state with s. It must not run concurrently with a
// controller.
func (a *App) Restore(s Snapshot) {
	a.View.restore(s.Persons, s.Status)
	a.Search.set(PhaseIdle, s.Query)
	a.Create.restore(s.Create)
	a.Edit.restore(s.Edit)
}

package directory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/validate"
)

// MsgAdded is published after a successful create.
const MsgAdded = "Added person"

// CreateForm owns the draft of a new person.
type CreateForm struct {
	form
	remote Remote
	view   *View
	loader *Loader
}

// NewCreateForm returns a hidden form with an empty draft.
func NewCreateForm(remote Remote, view *View, loader *Loader) *CreateForm {
	f := &CreateForm{remote: remote, view: view, loader: loader}
	f.reset(false)
	return f
}

// Show opens the form, keeping any draft already typed.
func (f *CreateForm) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
}

// Hide closes the form and discards the draft and its errors.
func (f *CreateForm) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset(false)
}

// Change sets a draft field and clears its error.
func (f *CreateForm) Change(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.change(field, value)
}

// Submit validates the draft and creates the person. On success the form is
// reset and hidden and the list is reloaded. On remote failure the error is
// published and the draft is kept for correction.
func (f *CreateForm) Submit(ctx context.Context) (*model.Person, error) {
	f.mu.Lock()
	draft := f.draft
	f.errs = validate.Create(draft)
	if !f.errs.OK() {
		f.mu.Unlock()
		return nil, ErrInvalidDraft
	}
	session := f.session
	f.mu.Unlock()

	np, err := validate.NewPerson(draft)
	if err != nil {
		return nil, err
	}

	created, err := f.remote.Create(ctx, np)
	if err != nil {
		log.Warn().Err(err).Str("name", np.Name).Msg("create failed")
		f.view.SetError(err)
		return nil, err
	}

	f.mu.Lock()
	if f.session == session {
		f.reset(false)
	}
	f.mu.Unlock()

	_ = f.loader.Reload(ctx, MsgAdded)
	return created, nil
}

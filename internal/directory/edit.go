package directory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/validate"
)

// EditForm owns the draft of an existing person. The id is fixed when the
// form opens.
type EditForm struct {
	form
	remote Remote
	view   *View
	loader *Loader

	selected model.Person
}

// NewEditForm returns a closed edit form.
func NewEditForm(remote Remote, view *View, loader *Loader) *EditForm {
	f := &EditForm{remote: remote, view: view, loader: loader}
	f.reset(false)
	return f
}

// Open starts editing p with a draft prefilled from it.
func (f *EditForm) Open(p model.Person) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset(true)
	f.selected = p
	f.draft = model.DraftOf(p)
}

// Close discards the draft and errors, whether or not anything was saved.
func (f *EditForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.close()
}

// close must be called with mu held.
func (f *EditForm) close() {
	f.reset(false)
	f.selected = model.Person{}
}

// EditingID returns the id of the person being edited.
func (f *EditForm) EditingID() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected.ID, f.open
}

// Change sets name or age and clears that field's error. The id cannot be
// changed.
func (f *EditForm) Change(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return ErrNotEditing
	}
	return f.change(field, value)
}

// Submit validates the draft and updates the person. On success the form
// closes and the list is reloaded. On remote failure the form stays open
// with its draft.
func (f *EditForm) Submit(ctx context.Context) (*model.Person, error) {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return nil, ErrNotEditing
	}
	draft := f.draft
	f.errs = validate.Edit(draft)
	if !f.errs.OK() {
		f.mu.Unlock()
		return nil, ErrInvalidDraft
	}
	id := f.selected.ID
	session := f.session
	f.mu.Unlock()

	p, err := validate.Person(draft)
	if err != nil {
		return nil, err
	}
	p.ID = id

	updated, err := f.remote.Update(ctx, id, p)
	if err != nil {
		log.Warn().Err(err).Int("id", id).Msg("update failed")
		f.view.SetError(err)
		return nil, err
	}

	f.mu.Lock()
	if f.session == session {
		f.close()
	}
	f.mu.Unlock()

	_ = f.loader.Reload(ctx, fmt.Sprintf("Updated #%d", id))
	return updated, nil
}

// EditSnapshot is the saved state of the edit form.
type EditSnapshot struct {
	FormSnapshot
	Selected *model.Person `json:"selected,omitempty"`
}

func (f *EditForm) snapshot() EditSnapshot {
	s := EditSnapshot{FormSnapshot: f.form.snapshot()}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		p := f.selected
		s.Selected = &p
	}
	return s
}

func (f *EditForm) restore(s EditSnapshot) {
	if !s.Open || s.Selected == nil {
		f.Close()
		return
	}
	f.form.restore(s.FormSnapshot)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = *s.Selected
}

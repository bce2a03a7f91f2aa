package directory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/validate"
)

var (
	// ErrInvalidDraft is returned by Submit when validation failed. The
	// field errors are on the form.
	ErrInvalidDraft = errors.New("draft has invalid fields")
	// ErrNotEditing is returned when the edit form is used while closed.
	ErrNotEditing = errors.New("no person is being edited")
	// ErrReadOnlyField is returned when changing a field that cannot change.
	ErrReadOnlyField = errors.New("field is read-only")
	// ErrUnknownField is returned for a field name the form does not have.
	ErrUnknownField = errors.New("unknown field")
)

// form is the state shared by the create and edit forms. Every open or close
// starts a new session; a submit that resolves in a later session leaves the
// form alone.
type form struct {
	mu      sync.Mutex
	session uint64
	open    bool
	draft   model.Draft
	errs    validate.Errors
}

// reset must be called with mu held.
func (f *form) reset(open bool) {
	f.session++
	f.open = open
	f.draft = model.Draft{}
	f.errs = validate.Errors{}
}

// change must be called with mu held.
func (f *form) change(field, value string) error {
	switch field {
	case validate.FieldName:
		f.draft.Name = value
	case validate.FieldAge:
		f.draft.Age = value
	case validate.FieldID:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	delete(f.errs, field)
	return nil
}

// IsOpen reports whether the form is shown.
func (f *form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns the current draft.
func (f *form) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the field errors of the last submit.
func (f *form) Errors() validate.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validate.Errors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// FormSnapshot is the saved state of a form.
type FormSnapshot struct {
	Open   bool            `json:"open"`
	Draft  model.Draft     `json:"draft"`
	Errors validate.Errors `json:"errors,omitempty"`
}

func (f *form) snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := FormSnapshot{Open: f.open, Draft: f.draft}
	if len(f.errs) > 0 {
		s.Errors = make(validate.Errors, len(f.errs))
		for k, v := range f.errs {
			s.Errors[k] = v
		}
	}
	return s
}

func (f *form) restore(s FormSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset(s.Open)
	f.draft = s.Draft
	for k, v := range s.Errors {
		f.errs[k] = v
	}
}

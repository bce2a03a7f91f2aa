// Package directory holds the client-side state of the person directory and
// the controllers that change it: search, create, edit and delete. Every
// controller reports through one View and reloads the list from the remote
// store after a successful mutation.
package directory

import (
	"context"
	"sync"

	"github.com/rcliao/persondir/internal/model"
)

// Remote is the store the controllers talk to. *remote.Client implements it.
type Remote interface {
	ListAll(ctx context.Context) ([]model.Person, error)
	GetByID(ctx context.Context, id int) (*model.Person, error)
	SearchByName(ctx context.Context, text string) ([]model.Person, error)
	Create(ctx context.Context, np model.NewPerson) (*model.Person, error)
	Update(ctx context.Context, id int, p model.Person) (*model.Person, error)
	Delete(ctx context.Context, id int) error
}

// View is the record list view-model: the persons currently shown and the
// global status. Writers race; the last one wins.
type View struct {
	mu      sync.RWMutex
	persons []model.Person
	status  model.Status
}

// NewView returns an empty view with the Ready status.
func NewView() *View {
	return &View{persons: []model.Person{}, status: model.ReadyStatus}
}

// Persons returns a copy of the working set.
func (v *View) Persons() []model.Person {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]model.Person{}, v.persons...)
}

// Find returns the person with the given id from the working set.
func (v *View) Find(id int) (model.Person, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.persons {
		if p.ID == id {
			return p, true
		}
	}
	return model.Person{}, false
}

// Status returns the global status.
func (v *View) Status() model.Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// Replace discards the working set and shows persons instead.
func (v *View) Replace(persons []model.Person) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.persons = append([]model.Person{}, persons...)
}

// SetStatus publishes an informational message.
func (v *View) SetStatus(msg string) {
	v.set(model.Status{Message: msg})
}

// SetError publishes err's message with the error flag set.
func (v *View) SetError(err error) {
	v.set(model.Status{Message: err.Error(), IsError: true})
}

// SetErrorMessage publishes msg with the error flag set.
func (v *View) SetErrorMessage(msg string) {
	v.set(model.Status{Message: msg, IsError: true})
}

func (v *View) set(s model.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = s
}

// restore must only be used when no controller is running.
func (v *View) restore(persons []model.Person, status model.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if persons == nil {
		persons = []model.Person{}
	}
	v.persons = append([]model.Person{}, persons...)
	v.status = status
}

package directory

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Status messages published by the loader.
const (
	MsgLoading = "Loading…"
	MsgLoaded  = "Loaded"
)

// Loader fills the view with the full list from the remote store.
type Loader struct {
	remote Remote
	view   *View
}

// NewLoader returns a loader over remote and view.
func NewLoader(remote Remote, view *View) *Loader {
	return &Loader{remote: remote, view: view}
}

// Load replaces the working set with the full list. On failure the error is
// published and the list is kept.
func (l *Loader) Load(ctx context.Context) error {
	l.view.SetStatus(MsgLoading)
	return l.Reload(ctx, MsgLoaded)
}

// Reload replaces the working set with the full list and publishes msg on
// success.
func (l *Loader) Reload(ctx context.Context, msg string) error {
	persons, err := l.remote.ListAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reload failed")
		l.view.SetError(err)
		return err
	}
	l.view.Replace(persons)
	l.view.SetStatus(msg)
	return nil
}

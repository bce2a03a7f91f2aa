package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/remote"
	"github.com/rcliao/persondir/internal/session"
)

// workspace is the app of one invocation, restored from and saved back to the
// session store.
type workspace struct {
	app   *directory.App
	store *session.Store
}

func openStore() (*session.Store, error) {
	return session.Open(cfg.SessionPath)
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	client, err := remote.New(cfg.BaseURL, remote.WithTimeout(cfg.Timeout), remote.WithLogger(log.Logger))
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	snap, err := s.Load(cmd.Context())
	if err != nil {
		s.Close()
		return nil, err
	}

	app := directory.NewApp(client)
	app.Restore(snap)
	return &workspace{app: app, store: s}, nil
}

// finish records the final status under action, saves the session and closes
// the store. It returns ErrFailed when the status carries the error flag.
func (w *workspace) finish(cmd *cobra.Command, action string) error {
	defer w.store.Close()

	st := w.app.View.Status()
	if _, err := w.store.Record(cmd.Context(), action, st); err != nil {
		log.Warn().Err(err).Msg("record activity")
	}
	if err := w.store.Save(cmd.Context(), w.app.Snapshot()); err != nil {
		return err
	}
	if st.IsError {
		return ErrFailed
	}
	return nil
}

// run opens the workspace, runs fn, prints the view and saves the session.
func run(cmd *cobra.Command, action string, fn func(w *workspace) error) error {
	w, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	fnErr := fn(w)
	printView(cmd.OutOrStdout(), w.app)

	if err := w.finish(cmd, action); err != nil {
		return err
	}
	return fnErr
}

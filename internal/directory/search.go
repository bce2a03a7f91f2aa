package directory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/validate"
)

// Phase is the state of the search controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseResolved
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhaseResolved:
		return "resolved"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MsgEmptyQuery is published when a search is submitted without a query.
const MsgEmptyQuery = "Please enter a name or ID"

// MsgSearching is published while a search is in flight.
const MsgSearching = "Searching…"

// Search interprets a query as an id lookup when it is numeric and as a name
// search otherwise.
type Search struct {
	remote Remote
	view   *View
	loader *Loader

	mu    sync.Mutex
	phase Phase
	query string
}

// NewSearch returns an idle search controller.
func NewSearch(remote Remote, view *View, loader *Loader) *Search {
	return &Search{remote: remote, view: view, loader: loader}
}

// Phase returns the current phase.
func (s *Search) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Query returns the last submitted query.
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search) set(phase Phase, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
	s.query = query
}

func (s *Search) setPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

// Submit runs the query. Remote failures clear the list and are returned
// after being published.
func (s *Search) Submit(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		s.set(PhaseError, query)
		s.view.SetErrorMessage(MsgEmptyQuery)
		return nil
	}

	s.set(PhaseSearching, query)
	s.view.SetStatus(MsgSearching)

	var err error
	if n, perr := validate.ParseNumber(query); perr == nil {
		err = s.byID(ctx, query, n)
	} else {
		err = s.byName(ctx, query)
	}
	if err != nil {
		s.setPhase(PhaseError)
		s.view.Replace(nil)
		s.view.SetError(err)
		return err
	}
	s.setPhase(PhaseResolved)
	return nil
}

func (s *Search) byID(ctx context.Context, query string, n float64) error {
	// Ids are positive integers, so other numbers cannot match anything.
	if n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
		s.notFound(query)
		return nil
	}

	p, err := s.remote.GetByID(ctx, int(n))
	if err != nil {
		return err
	}
	if p == nil {
		s.notFound(query)
		return nil
	}
	s.view.Replace([]model.Person{*p})
	s.view.SetStatus(fmt.Sprintf("Found by ID: %s", query))
	return nil
}

func (s *Search) notFound(query string) {
	s.view.Replace(nil)
	s.view.SetStatus(fmt.Sprintf("No person found with ID: %s", query))
}

func (s *Search) byName(ctx context.Context, query string) error {
	results, err := s.remote.SearchByName(ctx, query)
	if err != nil {
		return err
	}
	s.view.Replace(results)
	if len(results) == 0 {
		s.view.SetStatus(fmt.Sprintf("No results found for: \"%s\"", query))
	} else {
		s.view.SetStatus(fmt.Sprintf("Found %d result(s) for: \"%s\"", len(results), query))
	}
	return nil
}

// Clear drops the query and reloads the unfiltered list.
func (s *Search) Clear(ctx context.Context) error {
	s.set(PhaseIdle, "")
	return s.loader.Load(ctx)
}

package directory

import (
	"context"
	"sync"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/remote"
)

// fakeRemote records calls and answers from canned values.
type fakeRemote struct {
	mu    sync.Mutex
	calls []string

	list    []model.Person
	byID    map[int]model.Person
	results []model.Person
	err     error
	listErr error

	lastID     int
	lastSearch string
	lastCreate model.NewPerson
	lastUpdate model.Person
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{byID: map[int]model.Person{}}
}

// record logs call and runs the optional setters under the lock.
func (f *fakeRemote) record(call string, set ...func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	for _, fn := range set {
		fn()
	}
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) ListAll(ctx context.Context) ([]model.Person, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.err != nil {
		return nil, &remote.StatusError{Verb: remote.VerbFetch, Status: statusOf(f.err)}
	}
	return f.list, nil
}

func (f *fakeRemote) GetByID(ctx context.Context, id int) (*model.Person, error) {
	f.record("get", func() { f.lastID = id })
	if f.err != nil {
		return nil, &remote.StatusError{Verb: remote.VerbFetch, Status: statusOf(f.err)}
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRemote) SearchByName(ctx context.Context, text string) ([]model.Person, error) {
	f.record("search", func() { f.lastSearch = text })
	if f.err != nil {
		return nil, &remote.StatusError{Verb: remote.VerbSearch, Status: statusOf(f.err)}
	}
	return f.results, nil
}

func (f *fakeRemote) Create(ctx context.Context, np model.NewPerson) (*model.Person, error) {
	f.record("create", func() { f.lastCreate = np })
	if f.err != nil {
		return nil, &remote.StatusError{Verb: remote.VerbCreate, Status: statusOf(f.err)}
	}
	return &model.Person{ID: 100, Name: np.Name, Age: np.Age}, nil
}

func (f *fakeRemote) Update(ctx context.Context, id int, p model.Person) (*model.Person, error) {
	f.record("update", func() { f.lastID, f.lastUpdate = id, p })
	if f.err != nil {
		return nil, &remote.StatusError{Verb: remote.VerbUpdate, Status: statusOf(f.err)}
	}
	return &p, nil
}

func (f *fakeRemote) Delete(ctx context.Context, id int) error {
	f.record("delete", func() { f.lastID = id })
	if f.err != nil {
		return &remote.StatusError{Verb: remote.VerbDelete, Status: statusOf(f.err)}
	}
	return nil
}

// statusErr makes fakeRemote fail every call with the given status.
type statusErr int

func (s statusErr) Error() string { return "status" }

func statusOf(err error) int {
	if s, ok := err.(statusErr); ok {
		return int(s)
	}
	return 500
}

func always(answer bool) ConfirmFunc {
	return func(string) bool { return answer }
}

// Package remotetest provides an in-memory person store that speaks the
// api/persons HTTP contract, for tests.
package remotetest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rcliao/persondir/internal/model"
)

// Op names a store operation for failure injection and blocking.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpSearch Op = "search"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Call is one request seen by the store.
type Call struct {
	Op        Op
	Method    string
	Path      string
	Query     string
	RequestID string
	Header    http.Header
}

// Store is a fake remote store. Ids are assigned sequentially from 1.
type Store struct {
	mu      sync.Mutex
	persons map[int]model.Person
	nextID  int
	fail    map[Op]int
	gates   map[Op]chan struct{}
	calls   []Call
}

// New returns an empty store.
func New() *Store {
	return &Store{
		persons: make(map[int]model.Person),
		nextID:  1,
		fail:    make(map[Op]int),
		gates:   make(map[Op]chan struct{}),
	}
}

// NewServer starts an HTTP server for a new store and returns the store and
// the server's base URL, ending in a slash.
func NewServer(tb testing.TB) (*Store, string) {
	tb.Helper()
	s := New()
	srv := httptest.NewServer(s.Handler())
	tb.Cleanup(srv.Close)
	return s, srv.URL + "/"
}

// Seed adds persons and returns them with their ids.
func (s *Store) Seed(nps ...model.NewPerson) []model.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Person, 0, len(nps))
	for _, np := range nps {
		out = append(out, s.insert(np))
	}
	return out
}

// Fail makes every request for op answer with status until Recover is called.
func (s *Store) Fail(op Op, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = status
}

// Recover clears every injected failure.
func (s *Store) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = make(map[Op]int)
}

// Block holds requests for op until the returned function is called. The
// request is recorded before it blocks.
func (s *Store) Block(op Op) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[op] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, op)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns the requests seen so far.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many requests were made for op.
func (s *Store) CallCount(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Persons returns the stored persons ordered by id.
func (s *Store) Persons() []model.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted()
}

// Handler returns the gin router serving the api/persons routes.
func (s *Store) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	g := r.Group("/api/persons")
	g.GET("", s.intercept(OpList), s.list)
	g.GET("/search", s.intercept(OpSearch), s.search)
	g.GET("/:id", s.intercept(OpGet), s.get)
	g.POST("", s.intercept(OpCreate), s.create)
	g.PUT("/:id", s.intercept(OpUpdate), s.update)
	g.DELETE("/:id", s.intercept(OpDelete), s.remove)
	return r
}

// intercept records the call, waits on a gate and answers injected failures.
func (s *Store) intercept(op Op) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Op:        op,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			RequestID: c.GetHeader("X-Request-Id"),
			Header:    c.Request.Header.Clone(),
		})
		gate := s.gates[op]
		s.mu.Unlock()

		if gate != nil {
			<-gate
		}

		s.mu.Lock()
		status, failing := s.fail[op]
		s.mu.Unlock()
		if failing {
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

func (s *Store) list(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sorted())
}

func (s *Store) search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Person{}
	for _, p := range s.sorted() {
		if name == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Store) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.persons[id]
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Store) create(c *gin.Context) {
	var np model.NewPerson
	if err := c.ShouldBindJSON(&np); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, s.insert(np))
}

func (s *Store) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p model.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found := s.persons[id]
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	existing.Name = p.Name
	existing.Age = p.Age
	s.persons[id] = existing
	c.JSON(http.StatusOK, existing)
}

func (s *Store) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.persons[id]; !found {
		c.Status(http.StatusNotFound)
		return
	}
	delete(s.persons, id)
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// insert must be called with mu held.
func (s *Store) insert(np model.NewPerson) model.Person {
	p := model.Person{ID: s.nextID, Name: np.Name, Age: np.Age}
	s.persons[p.ID] = p
	s.nextID++
	return p
}

// sorted must be called with mu held.
func (s *Store) sorted() []model.Person {
	out := make([]model.Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

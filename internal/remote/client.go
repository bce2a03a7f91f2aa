// Package remote is the HTTP client for the person store's REST resource.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rcliao/persondir/internal/model"
)

// ResourcePath is the person resource, relative to the base URL.
const ResourcePath = "api/persons"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Client talks to the person store. Every call is attempted exactly once.
type Client struct {
	resource   string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client. The resource path is resolved against baseURL the
// way a browser resolves a relative link, so "http://h/app/" maps to
// "http://h/app/api/persons".
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	ref, _ := url.Parse(ResourcePath)

	c := &Client{
		resource:   base.ResolveReference(ref).String(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ResourceURL returns the absolute URL of the person collection.
func (c *Client) ResourceURL() string { return c.resource }

func (c *Client) itemURL(id int) string {
	return c.resource + "/" + strconv.Itoa(id)
}

// ListAll returns every person in store order.
func (c *Client) ListAll(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	if _, err := c.do(ctx, VerbFetch, http.MethodGet, c.resource, nil, &persons); err != nil {
		return nil, err
	}
	return nonNil(persons), nil
}

// GetByID returns the person with the given id, or nil when the store
// answers 404 or a null body. Not found is not an error.
func (c *Client) GetByID(ctx context.Context, id int) (*model.Person, error) {
	var p *model.Person
	status, err := c.do(ctx, VerbFetch, http.MethodGet, c.itemURL(id), nil, &p, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || p == nil {
		return nil, nil
	}
	if p.ID < 1 {
		return nil, &RequestError{Verb: VerbFetch, Err: errors.New("response has no id")}
	}
	return p, nil
}

// SearchByName returns the persons whose name matches text. Matching is
// decided by the store.
func (c *Client) SearchByName(ctx context.Context, text string) ([]model.Person, error) {
	u := c.resource + "/search?" + url.Values{"name": {text}}.Encode()

	var persons []model.Person
	if _, err := c.do(ctx, VerbSearch, http.MethodGet, u, nil, &persons); err != nil {
		return nil, err
	}
	return nonNil(persons), nil
}

// Create stores a new person and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, np model.NewPerson) (*model.Person, error) {
	var p model.Person
	if _, err := c.do(ctx, VerbCreate, http.MethodPost, c.resource, np, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces name and age of the person with the given id.
func (c *Client) Update(ctx context.Context, id int, p model.Person) (*model.Person, error) {
	var out model.Person
	if _, err := c.do(ctx, VerbUpdate, http.MethodPut, c.itemURL(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the person with the given id. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, VerbDelete, http.MethodDelete, c.itemURL(id), nil, nil)
	return err
}

// do sends one request. A 2xx body is decoded into out when out is non-nil.
// Statuses listed in allowed are returned without decoding and without error.
func (c *Client) do(ctx context.Context, verb, method, u string, body, out any, allowed ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, &RequestError{Verb: verb, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, &RequestError{Verb: verb, Err: err}
	}
	rid := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", rid)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", rid).Str("method", method).Str("url", u).Err(err).Msg("request failed")
		return 0, &RequestError{Verb: verb, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", rid).
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	for _, s := range allowed {
		if resp.StatusCode == s {
			io.Copy(io.Discard, resp.Body)
			return resp.StatusCode, nil
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, &StatusError{Verb: verb, Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &RequestError{Verb: verb, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func nonNil(persons []model.Person) []model.Person {
	if persons == nil {
		return []model.Person{}
	}
	return persons
}

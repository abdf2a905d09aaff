// Package backendtest provides an in-memory catalogue backend for tests.
//
// The Backend serves the same endpoints as the real service on an
// httptest.Server, keeps closets in memory, and records every request so
// tests can assert on call counts and headers.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// Request is a recorded incoming request.
type Request struct {
	Method    string
	Path      string
	Query     string
	RequestID string
	Session   string
	Body      map[string]string
}

// Backend is a fake catalogue backend.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Request
	closets  map[string][]domain.ClosetItem
	catalog  map[string]domain.SearchResult

	blocked  map[string]chan struct{}

	// failWith, when non-zero, is returned as the status of every request
	// whose path matches failPath (or every request when failPath is empty).
	failWith int
	failPath string

	// token, when set, is the only accepted session_token cookie value.
	token string
}

// New starts a backend. Call Close when done.
func New() *Backend {
	b := &Backend{
		closets: make(map[string][]domain.ClosetItem),
		catalog: make(map[string]domain.SearchResult),
		blocked: make(map[string]chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.record)
	r.Use(b.guard)

	r.Get("/api/search_bar", b.searchHandler)
	r.Get("/api/user/closets", b.listHandler)
	r.Post("/api/user/closets", b.createHandler)
	r.Delete("/api/user/closets", b.deleteHandler)
	r.Post("/api/user/closets/add_item", b.addItemHandler)

	b.Server = httptest.NewServer(r)
	return b
}

// URL returns the backend base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// Close shuts the server down.
func (b *Backend) Close() {
	b.Server.Close()
}

// SetResult scripts the response for an exact search input.
func (b *Backend) SetResult(input string, result domain.SearchResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalog[input] = result
}

// AddCloset seeds a closet.
func (b *Backend) AddCloset(name string, items ...domain.ClosetItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closets[name] = append([]domain.ClosetItem{}, items...)
}

// Closet returns the items stored in a closet.
func (b *Backend) Closet(name string) ([]domain.ClosetItem, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items, ok := b.closets[name]
	return append([]domain.ClosetItem{}, items...), ok
}

// Requests returns a copy of the recorded requests.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request{}, b.requests...)
}

// Count returns how many requests hit method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query().Get("input"),
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if c, err := r.Cookie("session_token"); err == nil {
			rec.Session = c.Value
		}
		if r.Body != nil && r.ContentLength != 0 {
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				rec.Body = body
			}
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		b.mu.Unlock()

		ctx := r.Context()
		next.ServeHTTP(w, r.WithContext(withBody(ctx, rec.Body)))
	})
}

func (b *Backend) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		failWith, failPath, token := b.failWith, b.failPath, b.token
		b.mu.Unlock()

		if token != "" {
			c, err := r.Cookie("session_token")
			if err != nil || c.Value != token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		if failWith != 0 && (failPath == "" || failPath == r.URL.Path) {
			http.Error(w, "scripted failure", failWith)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail scripts every request to path to answer with status.
// An empty path fails every request; status 0 clears the failure.
func (b *Backend) Fail(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPath, b.failWith = path, status
}

// RequireToken makes the backend reject requests without the given cookie.
func (b *Backend) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// Block holds search responses for input until release is called or the
// client goes away.
func (b *Backend) Block(input string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.blocked[input] = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(ch)
			b.mu.Lock()
			delete(b.blocked, input)
			b.mu.Unlock()
		})
	}
}

func (b *Backend) searchHandler(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")

	b.mu.Lock()
	gate := b.blocked[input]
	b.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	b.mu.Lock()
	result, ok := b.catalog[input]
	b.mu.Unlock()

	if !ok {
		result = domain.SearchResult{Tags: []string{}, Items: []string{}, Brands: []string{}}
	}
	writeJSON(w, http.StatusOK, result)
}

func (b *Backend) listHandler(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	names := make([]string, 0, len(b.closets))
	for name := range b.closets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]domain.Closet, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Closet{Name: name, Items: append([]domain.ClosetItem{}, b.closets[name]...)})
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(bodyFrom(r.Context())["closet_name"])
	if name == "" {
		http.Error(w, "closet_name required", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.closets[name]; exists {
		http.Error(w, "closet exists", http.StatusConflict)
		return
	}
	b.closets[name] = []domain.ClosetItem{}
	writeJSON(w, http.StatusCreated, domain.Closet{Name: name, Items: []domain.ClosetItem{}})
}

func (b *Backend) deleteHandler(w http.ResponseWriter, r *http.Request) {
	name := bodyFrom(r.Context())["closet_name"]

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.closets[name]; !exists {
		http.Error(w, "no such closet", http.StatusNotFound)
		return
	}
	delete(b.closets, name)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) addItemHandler(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	name := body["closet_name"]

	b.mu.Lock()
	defer b.mu.Unlock()
	items, exists := b.closets[name]
	if !exists {
		http.Error(w, "Error adding item to closet", http.StatusInternalServerError)
		return
	}
	b.closets[name] = append(items, domain.ClosetItem{Item: body["item"], Brand: body["brand"]})
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

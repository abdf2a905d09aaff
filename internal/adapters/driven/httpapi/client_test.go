package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/closet-cli/internal/adapters/driven/httpapi/backendtest"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

func newTestClient(t *testing.T, baseURL string, mutate ...func(*domain.APISettings)) *Client {
	t.Helper()
	settings := domain.DefaultAppSettings().API
	settings.BaseURL = baseURL
	settings.RateLimit = 0
	for _, m := range mutate {
		m(&settings)
	}
	c, err := NewClient(settings)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(domain.APISettings{BaseURL: "not-a-url"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewClient_FillsDefaults(t *testing.T) {
	c, err := NewClient(domain.APISettings{BaseURL: "http://shop.test/"})

	require.NoError(t, err)
	assert.Equal(t, "http://shop.test", c.BaseURL())
	assert.Equal(t, domain.DefaultSearchPath, c.settings.SearchPath)
	assert.Equal(t, domain.DefaultAddItemPath, c.settings.AddItemPath)
}

func TestClient_SearchBar(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SetResult("red shirt", domain.SearchResult{
		Tags:   []string{"shirts"},
		Items:  []string{"Red Oxford"},
		Brands: []string{"Acme"},
	})

	c := newTestClient(t, backend.URL())

	result, err := c.SearchBar(context.Background(), "red shirt")

	require.NoError(t, err)
	assert.Equal(t, []string{"shirts"}, result.Tags)
	assert.Equal(t, []string{"Red Oxford"}, result.Items)
	assert.Equal(t, []string{"Acme"}, result.Brands)
	assert.False(t, result.Errored)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "red shirt", reqs[0].Query)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestClient_SearchBar_NullSectionsNormalised(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tags":null,"items":["Oxford"," "]}`))
	}))
	defer srv.Close()

	result, err := newTestClient(t, srv.URL).SearchBar(context.Background(), "ox")

	require.NoError(t, err)
	assert.Equal(t, []string{}, result.Tags)
	assert.Equal(t, []string{"Oxford"}, result.Items)
	assert.Equal(t, []string{}, result.Brands)
}

func TestClient_SearchBar_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"array", `[]`},
		{"no result keys", `{"hello":"world"}`},
		{"wrong element type", `{"tags":[1,2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).SearchBar(context.Background(), "x")

			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusInternalServerError, domain.ErrRequestFailed},
		{http.StatusNotFound, domain.ErrRequestFailed},
		{http.StatusBadRequest, domain.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			backend := backendtest.New()
			defer backend.Close()
			backend.Fail("", tt.status)

			c := newTestClient(t, backend.URL())
			_, err := c.SearchBar(context.Background(), "x")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_SessionCookie(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.RequireToken("tok-123")

	anonymous := newTestClient(t, backend.URL())
	_, err := anonymous.ListClosets(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	signedIn := newTestClient(t, backend.URL(), func(s *domain.APISettings) { s.SessionToken = "tok-123" })
	_, err = signedIn.ListClosets(context.Background())
	require.NoError(t, err)

	reqs := backend.Requests()
	assert.Equal(t, "tok-123", reqs[len(reqs)-1].Session)
}

func TestClient_RequestIDs(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()

	ids := []string{"id-1", "id-2"}
	settings := domain.DefaultAppSettings().API
	settings.BaseURL = backend.URL()
	c, err := NewClient(settings, WithRequestIDs(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	require.NoError(t, err)

	_, _ = c.SearchBar(context.Background(), "a")
	_, _ = c.SearchBar(context.Background(), "b")

	reqs := backend.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "id-1", reqs[0].RequestID)
	assert.Equal(t, "id-2", reqs[1].RequestID)
}

func TestClient_SearchBar_CancellationIsBare(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	release := backend.Block("slow")
	defer release()

	c := newTestClient(t, backend.URL())
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := c.SearchBar(ctx, "slow")
		errCh <- err
	}()

	require.Eventually(t, func() bool { return backend.Count(http.MethodGet, "/api/search_bar") == 1 },
		2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, errors.Is(err, domain.ErrRequestFailed))
	case <-time.After(5 * time.Second):
		t.Fatal("request was not cancelled")
	}
}

func TestClient_ClosetLifecycle(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	c := newTestClient(t, backend.URL())
	ctx := context.Background()

	require.NoError(t, c.CreateCloset(ctx, "summer"))
	require.NoError(t, c.AddItem(ctx, "summer", domain.ItemRef{Item: "Air Max", Brand: "Nike"}))

	closets, err := c.ListClosets(ctx)
	require.NoError(t, err)
	require.Len(t, closets, 1)
	assert.Equal(t, "summer", closets[0].Name)
	assert.Equal(t, []domain.ClosetItem{{Item: "Air Max", Brand: "Nike"}}, closets[0].Items)

	require.NoError(t, c.DeleteCloset(ctx, "summer"))
	closets, err = c.ListClosets(ctx)
	require.NoError(t, err)
	assert.Empty(t, closets)

	for _, r := range backend.Requests() {
		if r.Method == http.MethodPost && r.Path == "/api/user/closets/add_item" {
			assert.Equal(t, map[string]string{"closet_name": "summer", "item": "Air Max", "brand": "Nike"}, r.Body)
		}
	}
}

func TestClient_AddItem_FailureNotRetried(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	c := newTestClient(t, backend.URL())

	err := c.AddItem(context.Background(), "missing", domain.ItemRef{Item: "Air Max"})

	assert.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.Equal(t, 1, backend.Count(http.MethodPost, "/api/user/closets/add_item"))
}

func TestClient_DeleteCloset_SendsBody(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.AddCloset("winter")
	c := newTestClient(t, backend.URL())

	require.NoError(t, c.DeleteCloset(context.Background(), "winter"))

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "winter", reqs[0].Body["closet_name"])
}

func TestClient_ListClosets_ItemNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"gym","items":["Shorts"]},{"name":"work","items":null}]`))
	}))
	defer srv.Close()

	closets, err := newTestClient(t, srv.URL).ListClosets(context.Background())

	require.NoError(t, err)
	require.Len(t, closets, 2)
	assert.Equal(t, []domain.ClosetItem{{Item: "Shorts"}}, closets[0].Items)
	assert.Equal(t, []domain.ClosetItem{}, closets[1].Items)
}

func TestClient_ListClosets_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"items":[]}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ListClosets(context.Background())

	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).SearchBar(context.Background(), "x")

	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

package imagesearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsplash_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "grilled salmon", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Client-ID key-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"results":[{"urls":{"raw":"https://images.unsplash.com/photo-1?ixid=abc"}}]}`))
	}))
	defer srv.Close()

	u := NewUnsplash("key-1")
	u.baseURL = srv.URL

	got, err := u.Search(context.Background(), "grilled salmon")
	require.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/photo-1?fit=crop&h=300&ixid=abc&w=400", got)
}

func TestUnsplash_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	u := NewUnsplash("k")
	u.baseURL = srv.URL
	_, err := u.Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestPexels_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "pk", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"photos":[{"src":{"original":"https://images.pexels.com/photos/2/p.jpeg"}}]}`))
	}))
	defer srv.Close()

	p := NewPexels("pk")
	p.baseURL = srv.URL

	got, err := p.Search(context.Background(), "oatmeal")
	require.NoError(t, err)
	assert.Equal(t, "https://images.pexels.com/photos/2/p.jpeg?fit=crop&h=300&w=400", got)
}

func TestPexels_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	p := NewPexels("pk")
	p.baseURL = srv.URL
	_, err := p.Search(context.Background(), "x")
	assert.ErrorContains(t, err, "pexels search: status 401: bad key")
}

type searchFunc func(ctx context.Context, q string) (string, error)

func (f searchFunc) Search(ctx context.Context, q string) (string, error) { return f(ctx, q) }

func TestChain_Search(t *testing.T) {
	failing := searchFunc(func(context.Context, string) (string, error) { return "", errors.New("boom") })
	empty := searchFunc(func(context.Context, string) (string, error) { return "", ErrNoResults })
	hit := searchFunc(func(_ context.Context, q string) (string, error) { return "https://img/" + q, nil })

	tests := []struct {
		name      string
		searchers []Searcher
		query     string
		want      string
	}{
		{"first hit wins", []Searcher{hit, failing}, "soup", "https://img/soup"},
		{"falls through", []Searcher{failing, empty, hit}, "soup", "https://img/soup"},
		{"default when all fail", []Searcher{failing, empty}, "soup", DefaultRecipeImage},
		{"default with no providers", nil, "soup", DefaultRecipeImage},
		{"blank query", []Searcher{hit}, "  ", DefaultRecipeImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewChain(tt.searchers...).Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

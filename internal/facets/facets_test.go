package facets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFallbackWithoutBaseURL(t *testing.T) {
	SetCacheTTL(time.Minute)
	d, err := NewClient("").Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, d.Categories)
	assert.NotEmpty(t, d.Brands)
}

func TestFetchRemoteAndCache(t *testing.T) {
	SetCacheTTL(time.Minute)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/facets/", r.URL.Path)
		w.Write([]byte(`{"categories":[{"id":"1","name":"لوازم خانگی"}],"brands":[{"id":"2","name":"اسنوا"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	d, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Categories, 1)
	assert.Equal(t, "لوازم خانگی", d.Categories[0].Name)

	// second fetch is served from cache
	_, err = c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRemoteErrorFallsBack(t *testing.T) {
	SetCacheTTL(time.Minute)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	d, err := NewClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, d.Categories)
}

package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticCreds(token string) CredentialProvider {
	return CredentialFunc(func(ctx context.Context) (string, error) { return token, nil })
}

func TestFetchDecodesSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/7/reviews/", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(Summary{
			AvgRating: 3.5,
			Count:     2,
			Reviews: []Review{
				{ID: 1, User: "sara", Rating: 4, Comment: "خوب"},
				{ID: 2, User: "ali", Rating: 3, Comment: "متوسط", CanDelete: true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	sum, err := c.Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	require.Len(t, sum.Reviews, 2)
	assert.True(t, sum.Reviews[1].CanDelete)
}

func TestFetchNormalizesNilReviews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"avg_rating":0,"count":0}`))
	}))
	defer srv.Close()

	sum, err := NewClient(srv.URL, nil).Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, sum.Reviews)
	assert.Empty(t, sum.Reviews)
}

func TestSubmitSendsCredentialAndBody(t *testing.T) {
	var gotToken string
	var gotBody Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/7/add-review/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotToken = r.Header.Get("X-CSRFToken")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticCreds("tok-123"))
	err := c.Submit(context.Background(), 7, Submission{Rating: 5, Comment: "عالی بود"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, 5, gotBody.Rating)
	assert.Equal(t, "عالی بود", gotBody.Comment)
}

func TestSubmitValidatesBeforeDispatch(t *testing.T) {
	dispatched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticCreds("tok"))

	assert.Error(t, c.Submit(context.Background(), 1, Submission{Rating: 0, Comment: "x"}))
	assert.Error(t, c.Submit(context.Background(), 1, Submission{Rating: 6, Comment: "x"}))
	assert.Error(t, c.Submit(context.Background(), 1, Submission{Rating: 3, Comment: ""}))
	assert.False(t, dispatched)
}

func TestSubmitSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{Success: false, Error: "قبلاً نظر ثبت کرده‌اید"})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, staticCreds("tok")).Submit(context.Background(), 1, Submission{Rating: 4, Comment: "ok"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "قبلاً")
}

func TestDeletePostsWithCredential(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-CSRFToken")
		json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, staticCreds("tok-9")).Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/api/review/42/delete/", gotPath)
	assert.Equal(t, "tok-9", gotToken)
}

func TestBadStatusIsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestEmptyBaseURLServesFakeData(t *testing.T) {
	c := NewClient("", nil)
	sum, err := c.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.NotEmpty(t, sum.Reviews)
	assert.Equal(t, len(sum.Reviews), sum.Count)
	require.NoError(t, c.Submit(context.Background(), 3, Submission{Rating: 4, Comment: "خوب"}))
	require.NoError(t, c.Delete(context.Background(), 31))
}

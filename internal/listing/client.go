package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"sabzbazaar.ir/store-web/internal/catalog"
)

const defaultTimeout = 8 * time.Second

// Error taxonomy for listing fetches. Transport failures come back unwrapped
// from the http client; these two cover everything the endpoint itself can do
// wrong. EmptyResult is not an error, callers inspect Results themselves.
var (
	// ErrBadStatus marks a non-2xx response from the listing endpoint.
	ErrBadStatus = errors.New("listing: unexpected status")
	// ErrBadResponse marks a 2xx response whose body is not a ListingResponse.
	ErrBadResponse = errors.New("listing: malformed response")
)

// Client fetches catalog pages from the external listing endpoint. When
// baseURL is empty it serves deterministic fake data so the storefront runs
// standalone (the same convention the checkout and status clients follow).
type Client struct {
	baseURL string
	http    *http.Client

	// nonce defeats intermediate caches; replaced in tests for determinism.
	nonce func() string
}

// NewClient builds a listing client for the given endpoint URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		nonce:   func() string { return uuid.NewString() },
	}
}

// FetchPage issues one GET for the serialized query. The request carries an
// Accept header, disables response caching, appends a cache-defeating nonce,
// and forwards the caller's session cookie so the backend sees the same
// credentials the browser would send.
func (c *Client) FetchPage(ctx context.Context, query catalog.QueryDescriptor, sessionCookie string) (*catalog.ListingResponse, error) {
	if c == nil || c.baseURL == "" {
		return fakePage(query)
	}

	endpoint := c.baseURL + "?" + query.Encode() + "&_=" + url.QueryEscape(c.nonce())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, drainError(resp.Body))
	}

	var payload catalog.ListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if payload.Results == nil {
		payload.Results = []catalog.Product{}
	}
	if payload.Count == 0 {
		payload.Count = len(payload.Results)
	}
	return &payload, nil
}

// Product fetches one catalog entry by id. Like FetchPage it serves fake data
// when no endpoint is configured. ErrBadStatus wraps a 404 like any other
// non-2xx; callers that care can match on the embedded status text.
func (c *Client) Product(ctx context.Context, id int64, sessionCookie string) (catalog.Product, error) {
	if c == nil || c.baseURL == "" {
		p, ok := FakeProductByID(id)
		if !ok {
			return catalog.Product{}, fmt.Errorf("%w: 404: no such product", ErrBadStatus)
		}
		return p, nil
	}

	endpoint := fmt.Sprintf("%s/%d/?_=%s", c.baseURL, id, url.QueryEscape(c.nonce()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return catalog.Product{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return catalog.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Product{}, fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, drainError(resp.Body))
	}

	var payload catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return payload, nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}

package facets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"sabzbazaar.ir/store-web/internal/catalog"
	"sabzbazaar.ir/store-web/internal/listing"
)

// Dictionaries holds the facet lists the filter sidebar renders.
type Dictionaries struct {
	Categories []catalog.Category
	Brands     []catalog.Brand
	UpdatedAt  time.Time
}

// Client fetches facet dictionaries from the listing backend with local
// fallbacks. When baseURL is empty, the client exclusively serves the
// built-in catalog dictionaries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a facet client with the provided base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

var (
	cacheMu    sync.RWMutex
	dictCache  *Dictionaries
	cacheTTL   = 5 * time.Minute
	cacheUntil time.Time
)

// SetCacheTTL configures the cache duration (primarily for tests).
func SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	cacheMu.Lock()
	cacheTTL = d
	dictCache = nil
	cacheMu.Unlock()
}

// ErrNotFound indicates the backend does not expose a facet endpoint.
var ErrNotFound = errors.New("facets: not found")

// Fetch returns facet dictionaries, prioritizing cached values, then remote
// data, and finally the built-in fallback.
func (c *Client) Fetch(ctx context.Context) (Dictionaries, error) {
	if d, ok := cached(); ok {
		return d, nil
	}

	var dict Dictionaries
	if c != nil && c.baseURL != "" {
		remote, err := c.fetchRemote(ctx)
		if err == nil {
			dict = remote
		}
		// on any error fall back below
	}
	if len(dict.Categories) == 0 && len(dict.Brands) == 0 {
		cats, brands := listing.Facets()
		dict = Dictionaries{Categories: cats, Brands: brands}
	}
	dict.UpdatedAt = time.Now()
	store(dict)
	return dict, nil
}

func (c *Client) fetchRemote(ctx context.Context) (Dictionaries, error) {
	endpoint := c.baseURL + "/api/facets/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Dictionaries{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Dictionaries{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Dictionaries{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Dictionaries{}, fmt.Errorf("facets: remote status %d", resp.StatusCode)
	}

	var payload struct {
		Categories []catalog.Category `json:"categories"`
		Brands     []catalog.Brand    `json:"brands"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Dictionaries{}, err
	}
	return Dictionaries{Categories: payload.Categories, Brands: payload.Brands}, nil
}

func cached() (Dictionaries, bool) {
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	if dictCache == nil || time.Now().After(cacheUntil) {
		return Dictionaries{}, false
	}
	return *dictCache, true
}

func store(d Dictionaries) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cp := d
	dictCache = &cp
	cacheUntil = time.Now().Add(cacheTTL)
}

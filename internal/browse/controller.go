package browse

import (
	"context"
	"net/url"
	"sync"
	"time"

	"sabzbazaar.ir/store-web/internal/catalog"
)

// Phase is the render state of the listing surface. Every triggered fetch
// re-enters PhaseLoading regardless of the prior terminal phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePopulated
	PhaseEmpty
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePopulated:
		return "populated"
	case PhaseEmpty:
		return "empty"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Fetcher issues one listing request for a serialized query.
type Fetcher interface {
	FetchPage(ctx context.Context, query catalog.QueryDescriptor, sessionCookie string) (*catalog.ListingResponse, error)
}

// Renderer consumes render transitions. RenderLoading is always called
// synchronously from the triggering goroutine before the request goes out.
type Renderer interface {
	RenderLoading()
	RenderResults(resp *catalog.ListingResponse, chips []catalog.Chip)
	RenderEmpty(chips []catalog.Chip)
	RenderFailure(err error)
}

// History records successful, history-pushing loads. Failed loads never reach it.
type History interface {
	Push(query catalog.QueryDescriptor)
}

// Snapshot is a point-in-time copy of the controller's render state.
type Snapshot struct {
	Phase    Phase
	Response *catalog.ListingResponse
	Chips    []catalog.Chip
	Err      error
	Query    catalog.QueryDescriptor
	Term     string
}

// Controller owns the filter state for one browser session and drives the
// Loading → {Populated, Empty, Failed} machine around the listing endpoint.
//
// The browser's UI thread serializes everything in the original page; here the
// mutex plays that role, since the debounce timer fires on its own goroutine.
type Controller struct {
	mu    sync.Mutex
	state *catalog.FilterState
	term  string

	fetcher  Fetcher
	renderer Renderer
	history  History

	sessionCookie string

	phase    Phase
	response *catalog.ListingResponse
	lastErr  error
	lastQ    catalog.QueryDescriptor

	// seq tags each dispatched request; only the newest may mutate render
	// state, so a slow stale response can never clobber a fresher one.
	seq    uint64
	newest uint64

	debounce *debouncer
}

// Option tweaks controller construction.
type Option func(*Controller)

// WithRenderer attaches a renderer notified on every transition.
func WithRenderer(r Renderer) Option { return func(c *Controller) { c.renderer = r } }

// WithHistory attaches the history sink for pushed queries.
func WithHistory(h History) Option { return func(c *Controller) { c.history = h } }

// WithDebounceWindow overrides the facet-edit quiescence window.
func WithDebounceWindow(d time.Duration) Option {
	return func(c *Controller) { c.debounce = newDebouncer(d) }
}

// WithSessionCookie sets the credential forwarded on listing requests.
func WithSessionCookie(cookie string) Option {
	return func(c *Controller) { c.sessionCookie = cookie }
}

// NewController builds a controller seeded from address-bar values: the
// free-text term and the initial page (and any pushed facets) come from there.
func NewController(fetcher Fetcher, initial url.Values, opts ...Option) *Controller {
	state, term := catalog.ParseQuery(initial)
	c := &Controller{
		state:    state,
		term:     term,
		fetcher:  fetcher,
		phase:    PhaseIdle,
		debounce: newDebouncer(DefaultDebounceWindow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FilterView is a value copy of the filter state for UI binding. The live
// state stays behind the controller mutex; handing out a copy keeps template
// rendering off the debounce goroutine's write path.
type FilterView struct {
	Categories  []string
	Brands      []string
	MinPrice    int
	MaxPrice    int
	InStockOnly bool
	Sort        catalog.Sort
	Page        int
	Term        string
}

// FilterView returns the current filter state as a detached copy.
func (c *Controller) FilterView() FilterView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterView{
		Categories:  c.state.Categories(),
		Brands:      c.state.Brands(),
		MinPrice:    c.state.MinPrice(),
		MaxPrice:    c.state.MaxPrice(),
		InStockOnly: c.state.InStockOnly(),
		Sort:        c.state.Sort(),
		Page:        c.state.Page(),
		Term:        c.term,
	}
}

// Snapshot returns a copy of the current render state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:    c.phase,
		Response: c.response,
		Chips:    catalog.ActiveChips(c.state),
		Err:      c.lastErr,
		Query:    c.lastQ,
		Term:     c.term,
	}
}

// LoadProducts is the core operation: set the page, enter Loading, fetch, and
// land in a terminal phase. pushHistory records the query only on success.
func (c *Controller) LoadProducts(ctx context.Context, page int, pushHistory bool) Snapshot {
	c.mu.Lock()
	c.state.SetPage(page)
	c.seq++
	seq := c.seq
	c.newest = seq
	c.phase = PhaseLoading
	c.lastErr = nil
	query := catalog.Serialize(c.state, c.term)
	cookie := c.sessionCookie
	renderer := c.renderer
	c.mu.Unlock()

	// Loading is rendered synchronously before the request goes out.
	if renderer != nil {
		renderer.RenderLoading()
	}

	resp, err := c.fetcher.FetchPage(ctx, query, cookie)

	c.mu.Lock()
	if seq != c.newest {
		// A newer load superseded this one; its outcome is already (or will
		// be) on screen. Drop ours without touching state or history.
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	if err != nil {
		c.phase = PhaseFailed
		c.lastErr = err
		c.response = nil
		snap := c.snapshotLocked()
		c.mu.Unlock()
		if renderer != nil {
			renderer.RenderFailure(err)
		}
		return snap
	}

	// Keep the in-memory page in step with what the backend actually served
	// (it clamps past-the-end pages down to the last one).
	if resp.Pagination.Page > 0 {
		c.state.SetPage(resp.Pagination.Page)
	}
	c.response = resp
	c.lastQ = query
	if len(resp.Results) == 0 {
		c.phase = PhaseEmpty
	} else {
		c.phase = PhasePopulated
	}
	chips := catalog.ActiveChips(c.state)
	history := c.history
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if renderer != nil {
		if snap.Phase == PhaseEmpty {
			renderer.RenderEmpty(chips)
		} else {
			renderer.RenderResults(resp, chips)
		}
	}
	if pushHistory && history != nil {
		history.Push(query)
	}
	return snap
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:    c.phase,
		Response: c.response,
		Chips:    catalog.ActiveChips(c.state),
		Err:      c.lastErr,
		Query:    c.lastQ,
		Term:     c.term,
	}
}

// FacetEdited coalesces rapid facet changes (checkbox, stock toggle, sort)
// behind the debounce window; the settled edit reloads page 1 and pushes
// history. Pagination and price drags bypass this on purpose.
func (c *Controller) FacetEdited() {
	c.debounce.Trigger(func() {
		c.LoadProducts(context.Background(), 1, true)
	})
}

// ToggleCategory flips a category facet and schedules a debounced reload.
func (c *Controller) ToggleCategory(id string, on bool) {
	c.mu.Lock()
	c.state.SetCategory(id, on)
	c.mu.Unlock()
	c.FacetEdited()
}

// ToggleBrand flips a brand facet and schedules a debounced reload.
func (c *Controller) ToggleBrand(id string, on bool) {
	c.mu.Lock()
	c.state.SetBrand(id, on)
	c.mu.Unlock()
	c.FacetEdited()
}

// SetInStockOnly toggles the stock facet and schedules a debounced reload.
func (c *Controller) SetInStockOnly(on bool) {
	c.mu.Lock()
	c.state.SetInStockOnly(on)
	c.mu.Unlock()
	c.FacetEdited()
}

// SetSort changes the ordering and schedules a debounced reload.
func (c *Controller) SetSort(s catalog.Sort) {
	c.mu.Lock()
	c.state.SetSort(s)
	c.mu.Unlock()
	c.FacetEdited()
}

// PriceRangeDragged applies a price-slider tick and reloads immediately: the
// live drag intentionally skips the debounce window, matching the original
// page's behavior.
func (c *Controller) PriceRangeDragged(ctx context.Context, min, max int) Snapshot {
	c.mu.Lock()
	c.state.SetPriceRange(min, max)
	c.mu.Unlock()
	return c.LoadProducts(ctx, 1, true)
}

// GoToPage serves a pagination click: never debounced, pushes history.
func (c *Controller) GoToPage(ctx context.Context, page int) Snapshot {
	return c.LoadProducts(ctx, page, true)
}

// Retry re-runs a failed load from page 1 without touching history.
func (c *Controller) Retry(ctx context.Context) Snapshot {
	return c.LoadProducts(ctx, 1, false)
}

// ResetFilters restores every facet default and issues exactly one
// history-pushing load of page 1.
func (c *Controller) ResetFilters(ctx context.Context) Snapshot {
	c.debounce.Cancel()
	c.mu.Lock()
	c.state.Reset()
	c.mu.Unlock()
	return c.LoadProducts(ctx, 1, true)
}

// RemoveFilter clears the facet behind one active chip and reloads. This is
// the explicit command the renderer's chip buttons dispatch.
func (c *Controller) RemoveFilter(ctx context.Context, chip catalog.Chip) Snapshot {
	c.mu.Lock()
	switch chip.Kind {
	case catalog.ChipCategory:
		c.state.SetCategory(chip.ID, false)
	case catalog.ChipBrand:
		c.state.SetBrand(chip.ID, false)
	case catalog.ChipPrice:
		c.state.SetPriceRange(catalog.DefaultMinPrice, catalog.DefaultMaxPrice)
	case catalog.ChipStock:
		c.state.SetInStockOnly(false)
	case catalog.ChipSort:
		c.state.SetSort(catalog.SortNone)
	}
	c.mu.Unlock()
	return c.LoadProducts(ctx, 1, true)
}

// RestoreHistory serves a back/forward traversal: only the page number comes
// from the restored address, facets stay as the session last left them. That
// asymmetry is inherited product behavior, kept on purpose.
func (c *Controller) RestoreHistory(ctx context.Context, page int) Snapshot {
	return c.LoadProducts(ctx, page, false)
}

package main

import (
	"net/http"
	"strconv"
	"strings"

	"sabzbazaar.ir/store-web/internal/browse"
	"sabzbazaar.ir/store-web/internal/catalog"
	"sabzbazaar.ir/store-web/internal/facets"
	"sabzbazaar.ir/store-web/internal/handlers"
	mw "sabzbazaar.ir/store-web/internal/middleware"
	"sabzbazaar.ir/store-web/internal/nav"
	"sabzbazaar.ir/store-web/internal/seo"
)

// storeController resolves the browse controller for this browser session,
// creating one seeded from the address bar when none exists yet.
func storeController(r *http.Request) *browse.Controller {
	s := mw.GetSession(r)
	return browseReg.Get(s.ID, r.URL.Query(), r.Header.Get("Cookie"))
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pushGridURL records a successful load in browser history.
func pushGridURL(w http.ResponseWriter, snap browse.Snapshot) {
	if snap.Phase == browse.PhasePopulated || snap.Phase == browse.PhaseEmpty {
		w.Header().Set("HX-Push-Url", "/store?"+snap.Query.Encode())
	}
}

func facetDict(r *http.Request) facets.Dictionaries {
	d, err := facetClient.Fetch(r.Context())
	if err != nil {
		return facets.Dictionaries{}
	}
	return d
}

// StoreHandler renders the full store page. A full navigation makes the
// address bar the source of truth, so the session's controller is rebuilt
// from it before serving the requested page.
func StoreHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	s := mw.GetSession(r)
	browseReg.Drop(s.ID)
	ctl := storeController(r)
	snap := ctl.LoadProducts(r.Context(), pageParam(r), false)
	dict := facetDict(r)

	view := buildStoreView(lang, snap, dict, snapshotState(ctl))
	title := i18nOrDefault(lang, "store.title", "فروشگاه")

	vm := handlers.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		Analytics:   handlers.LoadAnalyticsFromEnv(),
		Store:       view,
	}
	vm.SEO.Title = title + " | " + cfg.Site.Name
	vm.SEO.Description = i18nOrDefault(lang, "store.description", "خرید آنلاین محصولات با بهترین قیمت")
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Type = "website"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = cfg.Site.Name
	vm.SEO.JSONLD = []string{seo.JSON(breadcrumbJSONLD(lang, vm.Breadcrumbs))}

	renderPage(w, r, "store", vm)
}

// StoreGridFrag serves the results grid fragment. Three shapes:
//   - nav=history: a back/forward traversal; restores only the page number,
//     facets stay as the session last left them, and no new history entry
//     is pushed.
//   - poll=1: picks up the outcome of a debounced facet edit.
//   - page=N: a pagination click; loads immediately and pushes history.
func StoreGridFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	ctl := storeController(r)

	var snap browse.Snapshot
	switch {
	case r.URL.Query().Get("nav") == "history":
		snap = ctl.RestoreHistory(r.Context(), pageParam(r))
	case r.URL.Query().Get("poll") == "1":
		snap = ctl.Snapshot()
		pushGridURL(w, snap)
	default:
		snap = ctl.GoToPage(r.Context(), pageParam(r))
		pushGridURL(w, snap)
	}

	renderTemplate(w, r, "frag_store_grid", buildGridView(lang, snap, facetDict(r)))
}

// renderPendingGrid answers a debounced facet edit: the settled load runs in
// the background, so the fragment shows the current state and keeps polling.
func renderPendingGrid(w http.ResponseWriter, r *http.Request, ctl *browse.Controller) {
	lang := mw.Lang(r)
	view := buildGridView(lang, ctl.Snapshot(), facetDict(r))
	view.Pending = true
	renderTemplate(w, r, "frag_store_grid", view)
}

func formFlag(r *http.Request, key string) bool {
	switch strings.ToLower(r.FormValue(key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// StoreCategoryFacet toggles one category checkbox.
func StoreCategoryFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		http.Error(w, "missing facet id", http.StatusBadRequest)
		return
	}
	ctl := storeController(r)
	ctl.ToggleCategory(id, formFlag(r, "on"))
	renderPendingGrid(w, r, ctl)
}

// StoreBrandFacet toggles one brand checkbox.
func StoreBrandFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		http.Error(w, "missing facet id", http.StatusBadRequest)
		return
	}
	ctl := storeController(r)
	ctl.ToggleBrand(id, formFlag(r, "on"))
	renderPendingGrid(w, r, ctl)
}

// StoreStockFacet toggles the in-stock-only switch.
func StoreStockFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctl := storeController(r)
	ctl.SetInStockOnly(formFlag(r, "on"))
	renderPendingGrid(w, r, ctl)
}

// StoreSortFacet changes the ordering.
func StoreSortFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctl := storeController(r)
	ctl.SetSort(catalog.ParseSort(r.FormValue("sort")))
	renderPendingGrid(w, r, ctl)
}

// StorePriceFacet applies a price-slider position. Unlike checkbox facets
// this loads immediately, matching the live-drag behavior.
func StorePriceFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	min, _ := strconv.Atoi(r.FormValue("min_price"))
	max, err := strconv.Atoi(r.FormValue("max_price"))
	if err != nil {
		max = catalog.DefaultMaxPrice
	}
	ctl := storeController(r)
	snap := ctl.PriceRangeDragged(r.Context(), min, max)
	pushGridURL(w, snap)
	renderTemplate(w, r, "frag_store_grid", buildGridView(mw.Lang(r), snap, facetDict(r)))
}

// StoreRemoveFilter clears the facet behind one chip and reloads from page 1.
func StoreRemoveFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	chip := catalog.Chip{
		Kind: catalog.ChipKind(r.FormValue("kind")),
		ID:   r.FormValue("id"),
	}
	ctl := storeController(r)
	snap := ctl.RemoveFilter(r.Context(), chip)
	pushGridURL(w, snap)
	renderTemplate(w, r, "frag_store_grid", buildGridView(mw.Lang(r), snap, facetDict(r)))
}

// StoreResetFilters restores every facet default with a single reload.
func StoreResetFilters(w http.ResponseWriter, r *http.Request) {
	ctl := storeController(r)
	snap := ctl.ResetFilters(r.Context())
	pushGridURL(w, snap)
	renderTemplate(w, r, "frag_store_grid", buildGridView(mw.Lang(r), snap, facetDict(r)))
}

// StoreRetry re-runs a failed load without touching history.
func StoreRetry(w http.ResponseWriter, r *http.Request) {
	ctl := storeController(r)
	snap := ctl.Retry(r.Context())
	renderTemplate(w, r, "frag_store_grid", buildGridView(mw.Lang(r), snap, facetDict(r)))
}

package main

import (
	"fmt"

	"sabzbazaar.ir/store-web/internal/browse"
	"sabzbazaar.ir/store-web/internal/catalog"
	"sabzbazaar.ir/store-web/internal/facets"
	"sabzbazaar.ir/store-web/internal/format"
)

// ProductCard is one tile in the results grid.
type ProductCard struct {
	ID           int64
	Name         string
	URL          string
	Image        string
	PriceText    string
	DiscountText string
	PercentText  string
	InStock      bool
}

// ChipView is one removable active-filter token.
type ChipView struct {
	Kind  string
	ID    string
	Label string
}

// PageButton is one entry in the sliding pagination window.
type PageButton struct {
	Number  int
	Label   string
	Current bool
}

// GridView is the render model for the results surface. Exactly one of the
// phase flags drives the fragment: loading, populated, empty, or failed.
type GridView struct {
	Lang  string
	Phase string

	Cards     []ProductCard
	CountText string
	Chips     []ChipView

	Pages    []PageButton
	Page     int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int

	Term      string
	Query     string
	ErrorText string

	// Pending marks a debounced reload still inside its quiescence window;
	// the fragment keeps polling until the settled load lands.
	Pending bool
}

// FacetOption is a checkbox row in the filter sidebar.
type FacetOption struct {
	ID      string
	Name    string
	Checked bool
}

// StoreView is the full store page model: sidebar facets plus the grid.
type StoreView struct {
	Lang         string
	Grid         GridView
	Categories   []FacetOption
	Brands       []FacetOption
	MinPrice     int
	MaxPrice     int
	MaxPriceText string
	MaxBound     int
	InStockOnly  bool
	Sort         string
	Term         string
}

// buildGridView maps a controller snapshot to the fragment model.
func buildGridView(lang string, snap browse.Snapshot, dict facets.Dictionaries) GridView {
	view := GridView{
		Lang:  lang,
		Phase: snap.Phase.String(),
		Term:  snap.Term,
		Query: snap.Query.Encode(),
		Chips: buildChipViews(lang, snap.Chips, dict),
	}

	switch snap.Phase {
	case browse.PhaseFailed:
		view.ErrorText = i18nOrDefault(lang, "store.error", "خطا در بارگذاری محصولات")
		return view
	case browse.PhasePopulated:
		resp := snap.Response
		view.CountText = format.Number(int64(resp.Count), lang)
		for _, p := range resp.Results {
			view.Cards = append(view.Cards, buildCard(lang, p))
		}
		pg := resp.Pagination
		view.Page = pg.Page
		view.HasPrev = pg.HasPrev
		view.HasNext = pg.HasNext
		view.PrevPage = pg.Page - 1
		view.NextPage = pg.Page + 1
		start, end := catalog.PageWindow(pg.Page, pg.TotalPages)
		for n := start; n <= end; n++ {
			view.Pages = append(view.Pages, PageButton{
				Number:  n,
				Label:   format.Number(int64(n), lang),
				Current: n == pg.Page,
			})
		}
	case browse.PhaseEmpty:
		view.CountText = format.Number(0, lang)
	}
	return view
}

func buildCard(lang string, p catalog.Product) ProductCard {
	card := ProductCard{
		ID:        p.ID,
		Name:      p.Name,
		URL:       fmt.Sprintf("/product/%d/%s", p.ID, p.Slug),
		Image:     p.Image,
		PriceText: format.Toman(p.Price, lang),
		InStock:   p.InStock(),
	}
	if pct := p.DiscountPercent(); pct > 0 {
		card.DiscountText = format.Toman(p.DiscountPrice, lang)
		card.PercentText = format.Percent(pct, lang)
	}
	return card
}

// buildChipViews resolves chip copy: facet ids become dictionary names, the
// fixed chips get localized labels.
func buildChipViews(lang string, chips []catalog.Chip, dict facets.Dictionaries) []ChipView {
	out := make([]ChipView, 0, len(chips))
	for _, chip := range chips {
		v := ChipView{Kind: string(chip.Kind), ID: chip.ID}
		switch chip.Kind {
		case catalog.ChipCategory:
			v.Label = facetName(chip.ID, dict.Categories)
		case catalog.ChipBrand:
			v.Label = brandName(chip.ID, dict.Brands)
		case catalog.ChipPrice:
			v.Label = i18nOrDefault(lang, "store.chip.price", "محدوده قیمت")
		case catalog.ChipStock:
			v.Label = i18nOrDefault(lang, "store.chip.stock", "فقط کالاهای موجود")
		case catalog.ChipSort:
			v.Label = i18nOrDefault(lang, "store.chip.sort."+chip.ID, chip.DisplayText)
		}
		out = append(out, v)
	}
	return out
}

func facetName(id string, cats []catalog.Category) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func brandName(id string, brands []catalog.Brand) string {
	for _, b := range brands {
		if b.ID == id {
			return b.Name
		}
	}
	return id
}

// buildStoreView assembles the full page model around the grid.
func buildStoreView(lang string, snap browse.Snapshot, dict facets.Dictionaries, state stateView) StoreView {
	view := StoreView{
		Lang:         lang,
		Grid:         buildGridView(lang, snap, dict),
		MinPrice:     state.MinPrice,
		MaxPrice:     state.MaxPrice,
		MaxPriceText: format.Toman(int64(state.MaxPrice), lang),
		MaxBound:     catalog.DefaultMaxPrice,
		InStockOnly:  state.InStockOnly,
		Sort:         state.Sort,
		Term:         snap.Term,
	}
	for _, c := range dict.Categories {
		view.Categories = append(view.Categories, FacetOption{ID: c.ID, Name: c.Name, Checked: state.Categories[c.ID]})
	}
	for _, b := range dict.Brands {
		view.Brands = append(view.Brands, FacetOption{ID: b.ID, Name: b.Name, Checked: state.Brands[b.ID]})
	}
	return view
}

// stateView reshapes the controller's detached FilterView for templates:
// membership maps for checkbox lookups instead of sorted id slices.
type stateView struct {
	Categories  map[string]bool
	Brands      map[string]bool
	MinPrice    int
	MaxPrice    int
	InStockOnly bool
	Sort        string
}

func snapshotState(ctl *browse.Controller) stateView {
	fv := ctl.FilterView()
	sv := stateView{
		Categories:  map[string]bool{},
		Brands:      map[string]bool{},
		MinPrice:    fv.MinPrice,
		MaxPrice:    fv.MaxPrice,
		InStockOnly: fv.InStockOnly,
		Sort:        string(fv.Sort),
	}
	for _, id := range fv.Categories {
		sv.Categories[id] = true
	}
	for _, id := range fv.Brands {
		sv.Brands[id] = true
	}
	return sv
}

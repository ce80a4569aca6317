package catalog

// ChipKind discriminates which facet an active-filter chip stands for.
type ChipKind string

const (
	ChipCategory ChipKind = "category"
	ChipBrand    ChipKind = "brand"
	ChipPrice    ChipKind = "price"
	ChipStock    ChipKind = "stock"
	ChipSort     ChipKind = "sort"
)

// Chip is one removable token for a currently-active facet constraint.
// DisplayText carries the raw value; presentation decides the final copy.
type Chip struct {
	Kind        ChipKind
	ID          string
	DisplayText string
}

// sortLabels is the fixed label table for sort chips. Unknown sort values fail
// closed: no chip is produced rather than a crash or a raw identifier leaking
// into the UI.
var sortLabels = map[Sort]string{
	SortPriceAsc:  "cheapest first",
	SortPriceDesc: "most expensive first",
	SortNewest:    "newest first",
	SortOldest:    "oldest first",
}

// SortLabel resolves the display label for a sort order, "" when unknown.
func SortLabel(s Sort) string { return sortLabels[s] }

// ActiveChips derives the removable filter chips for the current state, in
// fixed order: categories, brands, price, stock, sort. The price chip appears
// only once the upper bound has been dragged below the default.
func ActiveChips(state *FilterState) []Chip {
	var chips []Chip
	for _, id := range state.Categories() {
		chips = append(chips, Chip{Kind: ChipCategory, ID: id, DisplayText: id})
	}
	for _, id := range state.Brands() {
		chips = append(chips, Chip{Kind: ChipBrand, ID: id, DisplayText: id})
	}
	if state.MaxPrice() != DefaultMaxPrice {
		chips = append(chips, Chip{Kind: ChipPrice, ID: "price-filter"})
	}
	if state.InStockOnly() {
		chips = append(chips, Chip{Kind: ChipStock, ID: "stock-filter"})
	}
	if label, ok := sortLabels[state.Sort()]; ok {
		chips = append(chips, Chip{Kind: ChipSort, ID: "sort-filter", DisplayText: label})
	}
	return chips
}

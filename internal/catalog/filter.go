package catalog

import "sort"

// Price bounds and page size for the storefront listing. Prices are whole Toman.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 5_000_000
	PerPage         = 12
)

// Sort enumerates the supported listing orderings. The zero value means
// "backend default" and is omitted from serialized queries.
type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
)

// ParseSort maps a raw query value onto a known Sort, falling back to SortNone.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortOldest:
		return Sort(raw)
	default:
		return SortNone
	}
}

// FilterState is the single source of truth for the current facet selection.
// It is plain data: mutating it never triggers a reload, callers own that.
type FilterState struct {
	categories map[string]struct{}
	brands     map[string]struct{}
	minPrice   int
	maxPrice   int
	inStock    bool
	sort       Sort
	page       int
}

// NewFilterState returns a state with default bounds and page 1.
func NewFilterState() *FilterState {
	return &FilterState{
		categories: map[string]struct{}{},
		brands:     map[string]struct{}{},
		minPrice:   DefaultMinPrice,
		maxPrice:   DefaultMaxPrice,
		page:       1,
	}
}

// Reset restores every facet to its default and returns to page 1.
func (s *FilterState) Reset() {
	s.categories = map[string]struct{}{}
	s.brands = map[string]struct{}{}
	s.minPrice = DefaultMinPrice
	s.maxPrice = DefaultMaxPrice
	s.inStock = false
	s.sort = SortNone
	s.page = 1
}

func (s *FilterState) SetCategory(id string, on bool) {
	if on {
		s.categories[id] = struct{}{}
	} else {
		delete(s.categories, id)
	}
}

func (s *FilterState) SetBrand(id string, on bool) {
	if on {
		s.brands[id] = struct{}{}
	} else {
		delete(s.brands, id)
	}
}

func (s *FilterState) HasCategory(id string) bool {
	_, ok := s.categories[id]
	return ok
}

func (s *FilterState) HasBrand(id string) bool {
	_, ok := s.brands[id]
	return ok
}

// Categories returns the selected category ids in stable sorted order.
func (s *FilterState) Categories() []string { return sortedKeys(s.categories) }

// Brands returns the selected brand ids in stable sorted order.
func (s *FilterState) Brands() []string { return sortedKeys(s.brands) }

func (s *FilterState) ClearCategories() { s.categories = map[string]struct{}{} }
func (s *FilterState) ClearBrands()     { s.brands = map[string]struct{}{} }

// SetPriceRange clamps rather than fails: a max below min collapses onto min,
// negatives snap to zero.
func (s *FilterState) SetPriceRange(min, max int) {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	s.minPrice = min
	s.maxPrice = max
}

func (s *FilterState) MinPrice() int { return s.minPrice }
func (s *FilterState) MaxPrice() int { return s.maxPrice }

func (s *FilterState) SetInStockOnly(on bool) { s.inStock = on }
func (s *FilterState) InStockOnly() bool      { return s.inStock }

func (s *FilterState) SetSort(v Sort) { s.sort = v }
func (s *FilterState) Sort() Sort     { return s.sort }

// SetPage clamps to 1 for zero or negative pages.
func (s *FilterState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

func (s *FilterState) Page() int    { return s.page }
func (s *FilterState) PerPage() int { return PerPage }

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryDescriptor is an immutable serialization of a FilterState plus the
// free-text search term. Equal states always encode to the same bytes, so the
// encoded form is safe to compare for history/URL equality.
type QueryDescriptor struct {
	encoded string
	page    int
}

// Encode returns the canonical query string, e.g.
// "page=2&per_page=12&categories=3,7&min_price=0&max_price=900000&in_stock=1".
func (q QueryDescriptor) Encode() string { return q.encoded }

// Page returns the page number the descriptor was built for.
func (q QueryDescriptor) Page() int { return q.page }

// Serialize converts state and the free-text term into a QueryDescriptor.
// Key order is fixed: page, per_page, q, categories, brands, min_price,
// max_price, in_stock, sort. Optional keys are omitted when inactive.
func Serialize(state *FilterState, term string) QueryDescriptor {
	var b strings.Builder
	appendPair(&b, "page", strconv.Itoa(state.Page()))
	appendPair(&b, "per_page", strconv.Itoa(state.PerPage()))
	if term = strings.TrimSpace(term); term != "" {
		appendPair(&b, "q", url.QueryEscape(term))
	}
	if cats := state.Categories(); len(cats) > 0 {
		appendPair(&b, "categories", strings.Join(cats, ","))
	}
	if brands := state.Brands(); len(brands) > 0 {
		appendPair(&b, "brands", strings.Join(brands, ","))
	}
	appendPair(&b, "min_price", strconv.Itoa(state.MinPrice()))
	appendPair(&b, "max_price", strconv.Itoa(state.MaxPrice()))
	if state.InStockOnly() {
		appendPair(&b, "in_stock", "1")
	}
	if s := state.Sort(); s != SortNone {
		appendPair(&b, "sort", string(s))
	}
	return QueryDescriptor{encoded: b.String(), page: state.Page()}
}

func appendPair(b *strings.Builder, key, val string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(val)
}

// ParseQuery rebuilds a FilterState and search term from address-bar values,
// so a pushed URL round-trips back into the state it was serialized from.
// Malformed numbers fall back to defaults, page clamps to 1.
func ParseQuery(values url.Values) (*FilterState, string) {
	state := NewFilterState()

	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			state.SetPage(page)
		}
	}
	for _, id := range splitList(values.Get("categories")) {
		state.SetCategory(id, true)
	}
	for _, id := range splitList(values.Get("brands")) {
		state.SetBrand(id, true)
	}

	min, max := DefaultMinPrice, DefaultMaxPrice
	if raw := values.Get("min_price"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			min = v
		}
	}
	if raw := values.Get("max_price"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			max = v
		}
	}
	state.SetPriceRange(min, max)

	switch values.Get("in_stock") {
	case "1", "true", "True":
		state.SetInStockOnly(true)
	}
	state.SetSort(ParseSort(values.Get("sort")))

	return state, strings.TrimSpace(values.Get("q"))
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

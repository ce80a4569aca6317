package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveChipsEmptyState(t *testing.T) {
	assert.Empty(t, ActiveChips(NewFilterState()))
}

func TestActiveChipsOrdering(t *testing.T) {
	s := NewFilterState()
	s.SetSort(SortPriceAsc)
	s.SetInStockOnly(true)
	s.SetPriceRange(0, 1_000_000)
	s.SetBrand("samin", true)
	s.SetCategory("4", true)
	s.SetCategory("2", true)

	chips := ActiveChips(s)
	kinds := make([]ChipKind, 0, len(chips))
	for _, c := range chips {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []ChipKind{ChipCategory, ChipCategory, ChipBrand, ChipPrice, ChipStock, ChipSort}, kinds)
	assert.Equal(t, "2", chips[0].ID)
	assert.Equal(t, "4", chips[1].ID)
	assert.Equal(t, "cheapest first", chips[5].DisplayText)
}

func TestPriceChipOnlyBelowDefaultBound(t *testing.T) {
	s := NewFilterState()
	s.SetPriceRange(100_000, DefaultMaxPrice)
	for _, c := range ActiveChips(s) {
		assert.NotEqual(t, ChipPrice, c.Kind, "price chip must not appear at the default upper bound")
	}

	s.SetPriceRange(0, DefaultMaxPrice-1)
	var found bool
	for _, c := range ActiveChips(s) {
		if c.Kind == ChipPrice {
			found = true
		}
	}
	assert.True(t, found, "price chip expected once the bound moves")
}

func TestSortChipFailsClosedOnUnknownValue(t *testing.T) {
	s := NewFilterState()
	s.sort = Sort("popularity") // bypass ParseSort on purpose
	for _, c := range ActiveChips(s) {
		assert.NotEqual(t, ChipSort, c.Kind)
	}
	assert.Empty(t, SortLabel(Sort("popularity")))
}

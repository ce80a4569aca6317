package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeMinimalState(t *testing.T) {
	s := NewFilterState()
	q := Serialize(s, "")
	assert.Equal(t, "page=1&per_page=12&min_price=0&max_price=5000000", q.Encode())
	assert.Equal(t, 1, q.Page())
}

func TestSerializeFullState(t *testing.T) {
	s := NewFilterState()
	s.SetCategory("7", true)
	s.SetCategory("3", true)
	s.SetBrand("12", true)
	s.SetPriceRange(50_000, 900_000)
	s.SetInStockOnly(true)
	s.SetSort(SortPriceDesc)
	s.SetPage(2)

	q := Serialize(s, "کفش")
	assert.Equal(t,
		"page=2&per_page=12&q=%DA%A9%D9%81%D8%B4&categories=3,7&brands=12&min_price=50000&max_price=900000&in_stock=1&sort=price_desc",
		q.Encode())
}

func TestSerializeIsDeterministic(t *testing.T) {
	build := func() *FilterState {
		s := NewFilterState()
		// insertion order differs between the two builds
		for _, id := range []string{"9", "2", "5"} {
			s.SetCategory(id, true)
		}
		s.SetBrand("b", true)
		s.SetSort(SortNewest)
		return s
	}
	a := build()
	b := NewFilterState()
	for _, id := range []string{"5", "9", "2"} {
		b.SetCategory(id, true)
	}
	b.SetBrand("b", true)
	b.SetSort(SortNewest)

	assert.Equal(t, Serialize(a, "x").Encode(), Serialize(b, "x").Encode())
	assert.Equal(t, Serialize(a, "x").Encode(), Serialize(a, "x").Encode())
}

func TestSerializeOmitsInactiveKeys(t *testing.T) {
	s := NewFilterState()
	q := Serialize(s, "").Encode()
	assert.NotContains(t, q, "categories=")
	assert.NotContains(t, q, "brands=")
	assert.NotContains(t, q, "in_stock=")
	assert.NotContains(t, q, "sort=")
	assert.NotContains(t, q, "q=")
}

func TestParseQueryRoundTrip(t *testing.T) {
	s := NewFilterState()
	s.SetCategory("3", true)
	s.SetCategory("8", true)
	s.SetBrand("acme", true)
	s.SetPriceRange(1000, 200_000)
	s.SetInStockOnly(true)
	s.SetSort(SortOldest)
	s.SetPage(3)
	encoded := Serialize(s, "charger").Encode()

	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	restored, term := ParseQuery(values)

	assert.Equal(t, "charger", term)
	assert.Equal(t, encoded, Serialize(restored, term).Encode())
}

func TestParseQueryMalformedInput(t *testing.T) {
	values := url.Values{
		"page":      {"zero"},
		"min_price": {"abc"},
		"max_price": {"-5"},
		"sort":      {"random"},
		"in_stock":  {"maybe"},
	}
	s, term := ParseQuery(values)
	assert.Empty(t, term)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, DefaultMinPrice, s.MinPrice())
	// -5 clamps up to min rather than failing
	assert.Equal(t, DefaultMinPrice, s.MaxPrice())
	assert.Equal(t, SortNone, s.Sort())
	assert.False(t, s.InStockOnly())
}

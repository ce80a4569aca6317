package listing

import (
	"net/url"
	"sort"
	"strings"

	"sabzbazaar.ir/store-web/internal/catalog"
)

// The fake page is built from a small fixed catalog. It honors the same query
// contract as the real endpoint so the storefront is fully browsable without a
// backend; it is demo data, not a search engine.

// Facets returns the facet dictionaries the sidebar renders. The real
// dictionaries ship with the server-rendered page from the backend.
func Facets() ([]catalog.Category, []catalog.Brand) {
	cats := []catalog.Category{
		{ID: "1", Name: "موبایل"},
		{ID: "2", Name: "لپ‌تاپ"},
		{ID: "3", Name: "هدفون"},
		{ID: "4", Name: "لوازم جانبی"},
	}
	brands := []catalog.Brand{
		{ID: "1", Name: "سامین"},
		{ID: "2", Name: "پارس‌تک"},
		{ID: "3", Name: "آوند"},
	}
	return cats, brands
}

func fakePage(query catalog.QueryDescriptor) (*catalog.ListingResponse, error) {
	values, err := url.ParseQuery(query.Encode())
	if err != nil {
		return nil, err
	}
	state, term := catalog.ParseQuery(values)

	items := make([]fakeProduct, 0, len(fakeCatalog))
	for _, p := range fakeCatalog {
		if term != "" && !strings.Contains(p.product.Name, term) {
			continue
		}
		if cats := state.Categories(); len(cats) > 0 && !contains(cats, p.categoryID) {
			continue
		}
		if brands := state.Brands(); len(brands) > 0 && !contains(brands, p.brandID) {
			continue
		}
		if p.product.Price < int64(state.MinPrice()) || p.product.Price > int64(state.MaxPrice()) {
			continue
		}
		if state.InStockOnly() && !p.product.InStock() {
			continue
		}
		items = append(items, p)
	}

	switch state.Sort() {
	case catalog.SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].product.Price < items[j].product.Price })
	case catalog.SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].product.Price > items[j].product.Price })
	case catalog.SortOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].product.ID < items[j].product.ID })
	default: // newest first, also the backend default
		sort.SliceStable(items, func(i, j int) bool { return items[i].product.ID > items[j].product.ID })
	}

	perPage := state.PerPage()
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := state.Page()
	if page > totalPages {
		page = totalPages
	}
	lo := (page - 1) * perPage
	hi := lo + perPage
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}

	results := make([]catalog.Product, 0, hi-lo)
	for _, p := range items[lo:hi] {
		results = append(results, p.product)
	}
	return &catalog.ListingResponse{
		Results: results,
		Count:   len(items),
		Pagination: catalog.Pagination{
			Page:       page,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
	}, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type fakeProduct struct {
	product    catalog.Product
	categoryID string
	brandID    string
}

var fakeCatalog = buildFakeCatalog()

func buildFakeCatalog() []fakeProduct {
	type seed struct {
		name     string
		price    int64
		discount int64
		stock    int
		cat      string
		brand    string
	}
	seeds := []seed{
		{"گوشی سامین X10", 4_200_000, 3_800_000, 7, "1", "1"},
		{"گوشی سامین A3", 2_500_000, 0, 0, "1", "1"},
		{"گوشی پارس‌تک نوا", 3_100_000, 2_900_000, 3, "1", "2"},
		{"لپ‌تاپ پارس‌تک پرو ۱۴", 4_950_000, 0, 2, "2", "2"},
		{"لپ‌تاپ آوند ایر", 3_900_000, 3_500_000, 0, "2", "3"},
		{"هدفون بی‌سیم آوند", 850_000, 690_000, 25, "3", "3"},
		{"هدفون استودیویی سامین", 1_250_000, 0, 4, "3", "1"},
		{"هندزفری پارس‌تک لایت", 320_000, 0, 60, "3", "2"},
		{"پاوربانک سامین ۲۰هزار", 640_000, 560_000, 18, "4", "1"},
		{"کابل شارژ آوند", 95_000, 0, 140, "4", "3"},
		{"کیف لپ‌تاپ پارس‌تک", 410_000, 0, 9, "4", "2"},
		{"شارژر دیواری سامین", 280_000, 230_000, 0, "4", "1"},
		{"ماوس بی‌سیم آوند", 350_000, 0, 31, "4", "3"},
		{"کیبورد مکانیکی پارس‌تک", 1_450_000, 1_290_000, 6, "4", "2"},
		{"اسپیکر بلوتوثی آوند", 980_000, 0, 11, "3", "3"},
	}
	out := make([]fakeProduct, 0, len(seeds))
	for i, s := range seeds {
		id := int64(i + 1)
		out = append(out, fakeProduct{
			categoryID: s.cat,
			brandID:    s.brand,
			product: catalog.Product{
				ID:            id,
				Slug:          slugify(s.name),
				Name:          s.name,
				Description:   "کالای اصل با ضمانت بازگشت هفت‌روزه و ارسال سریع به سراسر کشور.",
				Price:         s.price,
				DiscountPrice: s.discount,
				Inventory:     s.stock,
				Category:      s.cat,
				Brand:         s.brand,
			},
		})
	}
	return out
}

func slugify(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
	if s == "" {
		return "product"
	}
	return s
}

// FakeProductByID resolves a product from the demo catalog for the detail page.
func FakeProductByID(id int64) (catalog.Product, bool) {
	for _, p := range fakeCatalog {
		if p.product.ID == id {
			return p.product, true
		}
	}
	return catalog.Product{}, false
}

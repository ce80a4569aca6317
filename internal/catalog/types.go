package catalog

// Product is a read-only listing entry as served by the catalog API.
type Product struct {
	ID            int64  `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price,omitempty"`
	Inventory     int    `json:"inventory"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	Brand         string `json:"brand,omitempty"`
}

// InStock reports whether the product can currently be ordered.
func (p Product) InStock() bool { return p.Inventory > 0 }

// DiscountPercent returns the rounded discount percentage, 0 when undiscounted.
func (p Product) DiscountPercent() int {
	if p.DiscountPrice <= 0 || p.Price <= 0 || p.DiscountPrice >= p.Price {
		return 0
	}
	return int(float64(p.Price-p.DiscountPrice)/float64(p.Price)*100 + 0.5)
}

// Pagination mirrors the listing endpoint's pagination block.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// ListingResponse is one page of catalog results. It is owned by the browse
// controller for a single render cycle.
type ListingResponse struct {
	Results    []Product  `json:"results"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
}

// Category and Brand describe the facet dictionaries rendered in the sidebar.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

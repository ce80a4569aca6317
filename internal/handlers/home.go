package handlers

import "sabzbazaar.ir/store-web/internal/catalog"

// SpecialProduct is one discounted highlight on the landing page.
type SpecialProduct struct {
	Product      catalog.Product
	PriceText    string
	DiscountText string
	Percent      string
	URL          string
}

// HomeData is the view model for the home page.
type HomeData struct {
	Message  string
	Specials []SpecialProduct
}

package handlers

import (
	"sabzbazaar.ir/store-web/internal/nav"
	"sabzbazaar.ir/store-web/internal/seo"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	CSRFToken string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page view model payloads
	Home     any
	Store    any
	Product  any
	Cart     any
	Checkout any
}


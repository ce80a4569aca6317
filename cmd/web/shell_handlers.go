package main

import (
	"net/http"

	"sabzbazaar.ir/store-web/internal/handlers"
	mw "sabzbazaar.ir/store-web/internal/middleware"
	"sabzbazaar.ir/store-web/internal/nav"
)

// CartHandler renders the cart shell. Cart contents live on the backend; this
// page only anchors the navigation flow.
func CartHandler(w http.ResponseWriter, r *http.Request) {
	renderShell(w, r, "cart", "cart.title", "سبد خرید")
}

// CheckoutHandler renders the checkout shell.
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	renderShell(w, r, "checkout", "checkout.title", "تسویه حساب")
}

func renderShell(w http.ResponseWriter, r *http.Request, page, titleKey, titleDefault string) {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, titleKey, titleDefault)
	vm := handlers.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		Analytics:   handlers.LoadAnalyticsFromEnv(),
	}
	vm.SEO.Title = title + " | " + cfg.Site.Name
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.Robots = "noindex"
	renderPage(w, r, page, vm)
}

package main

import (
	"fmt"
	"net/http"

	"sabzbazaar.ir/store-web/internal/catalog"
	"sabzbazaar.ir/store-web/internal/format"
	"sabzbazaar.ir/store-web/internal/handlers"
	mw "sabzbazaar.ir/store-web/internal/middleware"
	"sabzbazaar.ir/store-web/internal/nav"
	"sabzbazaar.ir/store-web/internal/seo"
)

// HomeHandler renders the landing page with up to three discounted picks.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)

	home := handlers.HomeData{
		Message: i18nOrDefault(lang, "home.message", "به سبزبازار خوش آمدید"),
	}
	if resp, err := listingClient.FetchPage(r.Context(), catalog.Serialize(catalog.NewFilterState(), ""), r.Header.Get("Cookie")); err == nil {
		for _, p := range resp.Results {
			if p.DiscountPercent() == 0 {
				continue
			}
			home.Specials = append(home.Specials, handlers.SpecialProduct{
				Product:      p,
				PriceText:    format.Toman(p.Price, lang),
				DiscountText: format.Toman(p.DiscountPrice, lang),
				Percent:      format.Percent(p.DiscountPercent(), lang),
				URL:          fmt.Sprintf("/product/%d/%s", p.ID, p.Slug),
			})
			if len(home.Specials) == 3 {
				break
			}
		}
	}

	title := i18nOrDefault(lang, "home.title", "سبزبازار")
	vm := handlers.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		Analytics:   handlers.LoadAnalyticsFromEnv(),
		Home:        home,
	}
	vm.SEO.Title = title
	vm.SEO.Description = i18nOrDefault(lang, "home.description", "فروشگاه اینترنتی سبزبازار")
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.Title = title
	vm.SEO.OG.Type = "website"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = cfg.Site.Name
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Organization(cfg.Site.Name, cfg.Site.BaseURL, "")),
		seo.JSON(seo.WebSite(cfg.Site.Name, cfg.Site.BaseURL, cfg.Site.BaseURL+"/store?q=")),
	}

	renderPage(w, r, "home", vm)
}

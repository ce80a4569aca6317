package main

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"sabzbazaar.ir/store-web/internal/catalog"
	"sabzbazaar.ir/store-web/internal/content"
	"sabzbazaar.ir/store-web/internal/format"
	"sabzbazaar.ir/store-web/internal/handlers"
	"sabzbazaar.ir/store-web/internal/listing"
	mw "sabzbazaar.ir/store-web/internal/middleware"
	"sabzbazaar.ir/store-web/internal/nav"
	"sabzbazaar.ir/store-web/internal/reviews"
	"sabzbazaar.ir/store-web/internal/seo"
)

// ProductView is the detail page model.
type ProductView struct {
	Lang         string
	Product      catalog.Product
	PriceText    string
	DiscountText string
	PercentText  string
	InStock      bool
	BodyHTML     template.HTML
	Related      []ProductCard
}

// ReviewView is one sanitized review row.
type ReviewView struct {
	ID         int64
	User       string
	Rating     int
	RatingText string
	Comment    string
	CanDelete  bool
}

// ReviewsView is the review widget fragment model.
type ReviewsView struct {
	Lang      string
	ProductID int64
	AvgText   string
	CountText string
	Reviews   []ReviewView
	ErrorText string
	Notice    string
}

func productIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	return id, err == nil && id > 0
}

// ProductHandler renders the product detail page.
func ProductHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id, ok := productIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	cookie := r.Header.Get("Cookie")
	p, err := listingClient.Product(r.Context(), id, cookie)
	if err != nil {
		if errors.Is(err, listing.ErrBadStatus) && strings.Contains(err.Error(), "404") {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "product unavailable", http.StatusBadGateway)
		return
	}

	body, err := content.RenderDescription(p.Description)
	if err != nil {
		body = template.HTML(template.HTMLEscapeString(p.Description))
	}

	view := ProductView{
		Lang:      lang,
		Product:   p,
		PriceText: format.Toman(p.Price, lang),
		InStock:   p.InStock(),
		BodyHTML:  body,
		Related:   relatedProducts(r, p),
	}
	if pct := p.DiscountPercent(); pct > 0 {
		view.DiscountText = format.Toman(p.DiscountPrice, lang)
		view.PercentText = format.Percent(pct, lang)
	}

	vm := handlers.PageData{
		Title:       p.Name,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build("/store"),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		Analytics:   handlers.LoadAnalyticsFromEnv(),
		Product:     view,
	}
	vm.SEO.Title = p.Name + " | " + cfg.Site.Name
	vm.SEO.Description = content.SanitizeComment(p.Description)
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Type = "product"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = cfg.Site.Name
	vm.SEO.OG.Image = p.Image
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Twitter.Image = p.Image
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Product(p.Name, vm.SEO.Description, vm.SEO.Canonical, p.Image, &seo.ProductOffer{
			Price:    p.Price,
			Currency: "IRT",
			InStock:  p.InStock(),
		})),
		seo.JSON(breadcrumbJSONLD(lang, vm.Breadcrumbs)),
	}

	renderPage(w, r, "product", vm)
}

// relatedProducts pulls a handful of other items to fill the strip. Failures
// degrade to an empty strip rather than breaking the page.
func relatedProducts(r *http.Request, p catalog.Product) []ProductCard {
	lang := mw.Lang(r)
	state := catalog.NewFilterState()
	if p.Category != "" {
		state.SetCategory(p.Category, true)
	}
	resp, err := listingClient.FetchPage(r.Context(), catalog.Serialize(state, ""), r.Header.Get("Cookie"))
	if err != nil {
		return nil
	}
	var cards []ProductCard
	for _, rp := range resp.Results {
		if rp.ID == p.ID {
			continue
		}
		cards = append(cards, buildCard(lang, rp))
		if len(cards) == 4 {
			break
		}
	}
	return cards
}

func buildReviewsView(r *http.Request, productID int64) ReviewsView {
	lang := mw.Lang(r)
	view := ReviewsView{Lang: lang, ProductID: productID}
	sum, err := reviewsClient.Fetch(r.Context(), productID)
	if err != nil {
		view.ErrorText = i18nOrDefault(lang, "reviews.error", "خطا در بارگذاری نظرات")
		return view
	}
	view.AvgText = strconv.FormatFloat(sum.AvgRating, 'f', 1, 64)
	view.CountText = format.Number(int64(sum.Count), lang)
	for _, rev := range sum.Reviews {
		view.Reviews = append(view.Reviews, ReviewView{
			ID:         rev.ID,
			User:       rev.User,
			Rating:     rev.Rating,
			RatingText: format.Number(int64(rev.Rating), lang),
			Comment:    content.SanitizeComment(rev.Comment),
			CanDelete:  rev.CanDelete,
		})
	}
	return view
}

// ProductReviewsFrag renders the review widget fragment.
func ProductReviewsFrag(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, "frag_reviews", buildReviewsView(r, id))
}

// ProductReviewSubmit posts a new review and re-renders the widget. Rejections
// surface inline in the fragment instead of a bare error page.
func ProductReviewSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id, ok := productIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	sub := reviews.Submission{
		Rating:  rating,
		Comment: strings.TrimSpace(r.FormValue("comment")),
	}

	ctx := withReviewCredential(r.Context(), mw.GetSession(r).CSRFToken)
	err := reviewsClient.Submit(ctx, id, sub)

	view := buildReviewsView(r, id)
	switch {
	case err == nil:
		view.Notice = i18nOrDefault(lang, "reviews.submitted", "نظر شما ثبت شد")
	case isValidationErr(err):
		view.ErrorText = i18nOrDefault(lang, "reviews.invalid", "امتیاز ۱ تا ۵ و متن نظر الزامی است")
	case errors.Is(err, reviews.ErrRejected):
		view.ErrorText = err.Error()
	default:
		view.ErrorText = i18nOrDefault(lang, "reviews.error", "خطا در بارگذاری نظرات")
	}
	renderTemplate(w, r, "frag_reviews", view)
}

// ProductReviewDelete removes a review and re-renders the widget.
func ProductReviewDelete(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil || reviewID <= 0 {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID, _ := strconv.ParseInt(r.FormValue("product_id"), 10, 64)

	ctx := withReviewCredential(r.Context(), mw.GetSession(r).CSRFToken)
	delErr := reviewsClient.Delete(ctx, reviewID)

	view := buildReviewsView(r, productID)
	if delErr != nil {
		view.ErrorText = i18nOrDefault(lang, "reviews.delete_failed", "حذف نظر ممکن نشد")
	} else {
		view.Notice = i18nOrDefault(lang, "reviews.deleted", "نظر حذف شد")
	}
	renderTemplate(w, r, "frag_reviews", view)
}

func isValidationErr(err error) bool {
	var verr validator.ValidationErrors
	return errors.As(err, &verr)
}

package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"sabzbazaar.ir/store-web/internal/browse"
	"sabzbazaar.ir/store-web/internal/config"
	"sabzbazaar.ir/store-web/internal/facets"
	"sabzbazaar.ir/store-web/internal/i18n"
	"sabzbazaar.ir/store-web/internal/listing"
	"sabzbazaar.ir/store-web/internal/reviews"
)

// newTestRouter builds a router like main() does, backed by the fake clients.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"

	var err error
	cfg, err = config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.TemplatesDir = templatesDir
	cfg.StaticDir = "../../static"

	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	i18nBundle, err = i18n.Load("../../locales", "fa", []string{"fa", "en"})
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	listingClient = listing.NewClient("")
	reviewsClient = reviews.NewClient("", sessionCredentials{})
	facetClient = facets.NewClient("")
	browseReg = browse.NewRegistry(func(initial url.Values, sessionCookie string) *browse.Controller {
		return browse.NewController(listingClient, initial,
			browse.WithDebounceWindow(10*time.Millisecond),
			browse.WithSessionCookie(sessionCookie),
		)
	}, time.Minute)

	return newRouter()
}

// browserSession captures the cookies and CSRF token a browser would hold.
type browserSession struct {
	cookies []*http.Cookie
	csrf    string
}

func establishSession(t *testing.T, h http.Handler) browserSession {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("bootstrap request status = %d", rec.Code)
	}
	var s browserSession
	for _, c := range rec.Result().Cookies() {
		s.cookies = append(s.cookies, c)
		if c.Name == "csrf_token" {
			s.csrf = c.Value
		}
	}
	if s.csrf == "" {
		t.Fatal("no csrf_token cookie issued")
	}
	return s
}

func (s browserSession) get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func (s browserSession) post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", s.csrf)
	req.Header.Set("HX-Request", "true")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHomePageRendersSpecials(t *testing.T) {
	h := newTestRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("home status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "سبزبازار") {
		t.Error("home page missing brand name")
	}
	if !strings.Contains(body, "گوشی سامین X10") {
		t.Error("home page missing a discounted special product")
	}
}

func TestStorePageRendersFirstPage(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	rec := s.get(t, h, "/store")
	if rec.Code != http.StatusOK {
		t.Fatalf("store status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="store-grid"`) {
		t.Error("store page missing grid container")
	}
	if !strings.Contains(body, "phase-populated") {
		t.Error("initial grid should be populated from the fake catalog")
	}
	if !strings.Contains(body, "BreadcrumbList") {
		t.Error("store page missing breadcrumb JSON-LD")
	}
}

func TestSidebarControlsReadLiveCheckboxState(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	body := s.get(t, h, "/store").Body.String()

	// Checkbox posts must carry the checkbox's state at click time, not the
	// state baked in at render time: the sidebar is never re-rendered, so a
	// static value would repeat the first toggle forever.
	if got := strings.Count(body, `event.target.checked ? "1" : "0"`); got < 3 {
		t.Errorf("live-state hx-vals on %d controls, want category, brand and stock toggles", got)
	}
	if strings.Contains(body, `"on": "0"`) || strings.Contains(body, `"on": "1"`) {
		t.Error("render-time-static on value found in sidebar controls")
	}
	if !strings.Contains(body, `hx-trigger="input throttle:100ms"`) {
		t.Error("price slider should fire per input tick, not once on release")
	}
}

func TestStoreGridPaginationPushesHistory(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	s.get(t, h, "/store")

	rec := s.get(t, h, "/store/grid?page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("grid status = %d", rec.Code)
	}
	push := rec.Header().Get("HX-Push-Url")
	if !strings.Contains(push, "page=2") {
		t.Errorf("HX-Push-Url = %q, want page=2 recorded", push)
	}
}

func TestStoreGridHistoryRestoreDoesNotPush(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	s.get(t, h, "/store")

	rec := s.get(t, h, "/store/grid?nav=history&page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("grid status = %d", rec.Code)
	}
	if push := rec.Header().Get("HX-Push-Url"); push != "" {
		t.Errorf("history restore must not push a new entry, got %q", push)
	}
}

func TestFacetPostRequiresCSRF(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)

	req := httptest.NewRequest(http.MethodPost, "/store/facet/stock", strings.NewReader("on=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("facet post without token = %d, want 403", rec.Code)
	}
}

func TestFacetPostReturnsPendingGrid(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	s.get(t, h, "/store")

	rec := s.post(t, h, "/store/facet/category", url.Values{"id": {"3"}, "on": {"1"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("facet post = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "poll=1") {
		t.Error("debounced facet edit should return a polling grid fragment")
	}
}

func TestPriceFacetLoadsImmediately(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	s.get(t, h, "/store")

	rec := s.post(t, h, "/store/facet/price", url.Values{"min_price": {"0"}, "max_price": {"500000"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("price post = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "phase-populated") && !strings.Contains(body, "phase-empty") {
		t.Error("price drag should come back in a terminal phase, not pending")
	}
	if push := rec.Header().Get("HX-Push-Url"); !strings.Contains(push, "max_price=500000") {
		t.Errorf("HX-Push-Url = %q, want the dragged bound recorded", push)
	}
}

func TestProductDetailPage(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)

	rec := s.get(t, h, "/product/1/x")
	if rec.Code != http.StatusOK {
		t.Fatalf("product status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "گوشی سامین X10") {
		t.Error("product page missing product name")
	}
	if !strings.Contains(body, `id="reviews"`) {
		t.Error("product page missing review widget mount")
	}
	if !strings.Contains(body, "application/ld+json") {
		t.Error("product page missing structured data")
	}
}

func TestProductDetailNotFound(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	if rec := s.get(t, h, "/product/99999/x"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing product status = %d, want 404", rec.Code)
	}
}

func TestReviewsFragment(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	rec := s.get(t, h, "/product/3/reviews")
	if rec.Code != http.StatusOK {
		t.Fatalf("reviews status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "مریم") {
		t.Error("reviews fragment missing fake reviewer")
	}
}

func TestReviewSubmitValidation(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)

	rec := s.post(t, h, "/product/3/reviews", url.Values{"rating": {"9"}, "comment": {"x"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("review submit = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "امتیاز ۱ تا ۵") {
		t.Error("invalid rating should surface the inline validation message")
	}
}

func TestCartAndCheckoutShells(t *testing.T) {
	h := newTestRouter(t)
	s := establishSession(t, h)
	for _, path := range []string{"/cart", "/checkout"} {
		if rec := s.get(t, h, path); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

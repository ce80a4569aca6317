package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"

	"sabzbazaar.ir/store-web/internal/browse"
	"sabzbazaar.ir/store-web/internal/config"
	"sabzbazaar.ir/store-web/internal/facets"
	"sabzbazaar.ir/store-web/internal/i18n"
	"sabzbazaar.ir/store-web/internal/listing"
	mw "sabzbazaar.ir/store-web/internal/middleware"
	"sabzbazaar.ir/store-web/internal/reviews"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	i18nBundle *i18n.Bundle

	listingClient *listing.Client
	reviewsClient *reviews.Client
	facetClient   *facets.Client
	browseReg     *browse.Registry

	// devMode reparses templates on every request
	devMode bool
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", os.Getenv("STORE_WEB_CONFIG"), "path to YAML config")
	flag.Parse()

	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	devMode = !cfg.IsProd()

	logger = newLogger(cfg)
	slog.SetDefault(logger)

	templatesDir = cfg.TemplatesDir
	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Error("parse templates", "err", err)
			os.Exit(1)
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.LocalesDir, cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		logger.Error("load locales", "err", err)
		os.Exit(1)
	}

	listingClient = listing.NewClient(cfg.Listing.BaseURL)
	reviewsClient = reviews.NewClient(cfg.Reviews.BaseURL, sessionCredentials{})
	facetClient = facets.NewClient(cfg.Listing.BaseURL)
	browseReg = browse.NewRegistry(func(initial url.Values, sessionCookie string) *browse.Controller {
		return browse.NewController(listingClient, initial,
			browse.WithDebounceWindow(cfg.DebounceWindow()),
			browse.WithSessionCookie(sessionCookie),
		)
	}, cfg.SessionTTL())

	r := newRouter()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("web listening", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.Auth)
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	static := http.StripPrefix("/static", mw.AssetsWithCache(cfg.StaticDir))
	r.Handle("/static/*", static)

	r.Get("/", HomeHandler)

	r.Get("/store", StoreHandler)
	r.Get("/store/grid", StoreGridFrag)
	r.Post("/store/facet/category", StoreCategoryFacet)
	r.Post("/store/facet/brand", StoreBrandFacet)
	r.Post("/store/facet/stock", StoreStockFacet)
	r.Post("/store/facet/sort", StoreSortFacet)
	r.Post("/store/facet/price", StorePriceFacet)
	r.Post("/store/filters/remove", StoreRemoveFilter)
	r.Post("/store/filters/reset", StoreResetFilters)
	r.Post("/store/retry", StoreRetry)

	r.Get("/product/{productID}/{slug}", ProductHandler)
	r.Get("/product/{productID}/reviews", ProductReviewsFrag)
	r.Post("/product/{productID}/reviews", ProductReviewSubmit)
	r.Post("/reviews/{reviewID}/delete", ProductReviewDelete)

	r.Get("/cart", CartHandler)
	r.Get("/checkout", CheckoutHandler)

	return r
}

type reviewCtxKey string

const ctxKeyReviewCSRF reviewCtxKey = "review_csrf"

// withReviewCredential stashes the session's CSRF token for the review client.
func withReviewCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyReviewCSRF, token)
}

// sessionCredentials hands the per-session token to modifying review calls.
type sessionCredentials struct{}

func (sessionCredentials) CSRFToken(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(ctxKeyReviewCSRF).(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("no session credential in context")
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/tradebook/internal/adapter/http/handler"
	"github.com/iho/tradebook/internal/adapter/http/middleware"
	"github.com/iho/tradebook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger           zerolog.Logger
	AmountHandler    *handler.AmountHandler
	AccountHandler   *handler.AccountHandler
	ProductHandler   *handler.ProductHandler
	TradeHandler     *handler.TradeHandler
	FundHandler      *handler.FundHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Get("/amounts/words", cfg.AmountHandler.Get)
		r.Post("/amounts/words", cfg.AmountHandler.Convert)

		// Accounts
		r.Get("/account-groups", cfg.AccountHandler.Groups)
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/eligible", cfg.AccountHandler.Eligible)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
		})

		// Products and their masters
		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.Search)
			r.Get("/{id}", cfg.ProductHandler.Get)
			r.Put("/{id}", cfg.ProductHandler.Update)
			r.Delete("/{id}", cfg.ProductHandler.Delete)
		})
		r.Get("/masters/{kind}", cfg.ProductHandler.ListMasters)
		r.Post("/masters/{kind}", cfg.ProductHandler.CreateMaster)

		// Trades
		r.Route("/trades", func(r chi.Router) {
			r.Post("/", cfg.TradeHandler.Create)
			r.Get("/", cfg.TradeHandler.List)
			r.Get("/{id}/invoice", cfg.TradeHandler.Invoice)
		})

		// Funds
		r.Route("/funds", func(r chi.Router) {
			r.Post("/", cfg.FundHandler.Create)
			r.Get("/references", cfg.FundHandler.References)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/profit-loss", cfg.ReportHandler.ProfitLoss)
			r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)
			r.Get("/stock", cfg.ReportHandler.StockSummary)
			r.Get("/statement", cfg.ReportHandler.Statement)
		})
	})

	return r
}

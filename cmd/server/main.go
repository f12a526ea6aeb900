package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/tradebook/internal/adapter/http"
	"github.com/iho/tradebook/internal/adapter/http/handler"
	"github.com/iho/tradebook/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/tradebook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tradebook/internal/adapter/repository/redis"
	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/config"
	"github.com/iho/tradebook/internal/infrastructure/logger"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
	"github.com/iho/tradebook/internal/infrastructure/postgres"
	"github.com/iho/tradebook/internal/infrastructure/redis"
	"github.com/iho/tradebook/internal/usecase"
)

const limiterCleanupInterval = time.Hour

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.SetGlobal(logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "tradebook",
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := domain.ValidateCurrency(cfg.CurrencyCode); err != nil {
		return fmt.Errorf("CURRENCY_CODE: %w", err)
	}

	connectCtx, cancelConnect := connectContext(ctx, cfg)
	defer cancelConnect()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL:   cfg.DatabaseURL,
		MaxConns:      cfg.DatabaseMaxConns,
		MinConns:      cfg.DatabaseMinConns,
		QueryLogLevel: cfg.DatabaseQueryLogLevel,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(connectCtx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	retrier := postgresRepo.NewRetrier(m)
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	masterRepo := postgresRepo.NewMasterRepository(pool)
	sequenceRepo := postgresRepo.NewSequenceRepository(pool)
	tradeRepo := postgresRepo.NewTradeRepository(pool, retrier)
	fundRepo := postgresRepo.NewFundRepository(pool, retrier)
	reportRepo := postgresRepo.NewReportRepository(pool, retrier)
	idGen := postgresRepo.NewULIDGenerator()
	lookups := usecase.NewLookupCache(redisRepo.NewCache(redisClient), cfg.LookupCacheTTL, m)

	// Use cases
	amountUC := usecase.NewAmountUseCase(m)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, sequenceRepo, lookups, m)
	productUC := usecase.NewProductUseCase(productRepo, masterRepo, sequenceRepo, lookups)
	tradeUC := usecase.NewTradeUseCase(tradeRepo, accountRepo, idGen, invoiceSettings(cfg), m)
	fundUC := usecase.NewFundUseCase(fundRepo, accountRepo, m)
	reportUC := usecase.NewReportUseCase(reportRepo)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:         log.Logger,
		AmountHandler:  handler.NewAmountHandler(amountUC),
		AccountHandler: handler.NewAccountHandler(accountUC),
		ProductHandler: handler.NewProductHandler(productUC),
		TradeHandler:   handler.NewTradeHandler(tradeUC),
		FundHandler:    handler.NewFundHandler(fundUC),
		ReportHandler:  handler.NewReportHandler(reportUC, m),
		HealthHandler: handler.NewHealthHandler(
			handler.PingerFunc(pool.Ping),
			handler.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		),
		IdempotencyStore: redisRepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      limiter,
	})

	server := newServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.Run(gctx, limiterCleanupInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectContext bounds the initial Postgres and Redis connects by
// DATABASE_TIMEOUT. A zero timeout leaves ctx unbounded.
func connectContext(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.DatabaseTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.DatabaseTimeout)
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func invoiceSettings(cfg *config.Config) usecase.InvoiceSettings {
	return usecase.InvoiceSettings{
		Company: domain.Company{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Phone:   cfg.CompanyPhone,
			Email:   cfg.CompanyEmail,
			TRN:     cfg.CompanyTRN,
		},
		VATRate:  cfg.VATRate,
		Currency: cfg.CurrencyCode,
	}
}

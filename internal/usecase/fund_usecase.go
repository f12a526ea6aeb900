package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

// FundUseCase posts payments, receipts, transfers, deposits and withdrawals.
type FundUseCase struct {
	fundRepo    FundRepository
	accountRepo AccountRepository
	metrics     *metrics.Metrics
}

// NewFundUseCase creates a new FundUseCase.
func NewFundUseCase(fundRepo FundRepository, accountRepo AccountRepository, metrics *metrics.Metrics) *FundUseCase {
	return &FundUseCase{
		fundRepo:    fundRepo,
		accountRepo: accountRepo,
		metrics:     metrics,
	}
}

// CreateFundTransaction normalizes and validates the movement, checks both
// accounts against the side rules of its type and posts it.
func (uc *FundUseCase) CreateFundTransaction(ctx context.Context, fund domain.FundTransaction) (*domain.FundTransaction, error) {
	if fund.Date.IsZero() {
		fund.Date = time.Now().UTC()
	}
	fund.Normalize()
	if err := fund.Validate(); err != nil {
		return nil, err
	}

	from, err := uc.accountRepo.GetByID(ctx, fund.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := uc.accountRepo.GetByID(ctx, fund.ToAccountID)
	if err != nil {
		return nil, err
	}
	if err := fund.ValidateAccounts(from, to); err != nil {
		return nil, err
	}

	if err := uc.fundRepo.Post(ctx, &fund); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FundTransactions.WithLabelValues(string(fund.Type)).Inc()
	}
	log.Info().
		Str("type", string(fund.Type)).
		Int64("from", fund.FromAccountID).
		Int64("to", fund.ToAccountID).
		Str("total", fund.Total.StringFixed(2)).
		Msg("fund transaction posted")

	return &fund, nil
}

// ReferenceSuggestions lists open references of an account matching search.
// An empty search returns nothing without querying.
func (uc *FundUseCase) ReferenceSuggestions(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return []domain.RefBalance{}, nil
	}
	if accountID <= 0 {
		return nil, domain.ErrMissingAccount
	}
	return uc.fundRepo.ReferenceBalances(ctx, accountID, strings.TrimSpace(currentRef), search)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	sequences   SequenceRepository
	lookups     *LookupCache
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	sequences SequenceRepository,
	lookups *LookupCache,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		sequences:   sequences,
		lookups:     lookups,
		metrics:     metrics,
	}
}

// AccountInput represents input for creating or updating an account.
type AccountInput struct {
	Name           string
	GroupID        int
	OpeningBalance decimal.Decimal
	Contact        *domain.Contact
}

func (in AccountInput) toDomain(id int64) *domain.Account {
	return &domain.Account{
		ID:             id,
		Name:           in.Name,
		GroupID:        in.GroupID,
		OpeningBalance: in.OpeningBalance,
		Contact:        in.Contact,
	}
}

// CreateAccount allocates the next account id and stores the account and,
// for customers, its contact row in one transaction.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input AccountInput) (*domain.Account, error) {
	account := input.toDomain(0)
	if err := account.Validate(); err != nil {
		return nil, err
	}

	id, err := uc.sequences.NextID(ctx, accountsTable, accountIDColumn)
	if err != nil {
		return nil, fmt.Errorf("next account id: %w", err)
	}
	account.ID = id

	if err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		return uc.accountRepo.CreateTx(txCtx, tx, account)
	}); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.WithLabelValues(fmt.Sprint(account.GroupID)).Inc()
	}

	return account, nil
}

// UpdateAccount rewrites the account and upserts the contact of customers.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id int64, input AccountInput) (*domain.Account, error) {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	account := input.toDomain(id)
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		return uc.accountRepo.UpdateTx(txCtx, tx, account)
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account, with contact details for customers.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts, optionally restricted to one group.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, groupID int) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, groupID)
}

// ListGroups returns the account groups, served from the lookup cache.
func (uc *AccountUseCase) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	return readThrough(ctx, uc.lookups, lookupKeyGroups, uc.accountRepo.ListGroups)
}

// EligibilityInput selects the form and side an account picker serves.
// Exactly one of TradeType and FundType is set.
type EligibilityInput struct {
	TradeType domain.TradeType
	FundType  domain.FundType
	Side      domain.Side
}

// EligibleAccounts returns the accounts that may be picked on one side of a
// trade or fund form.
func (uc *AccountUseCase) EligibleAccounts(ctx context.Context, input EligibilityInput) ([]*domain.Account, error) {
	var (
		filter domain.GroupFilter
		err    error
	)
	switch {
	case input.TradeType != "":
		filter, err = input.TradeType.AccountFilter(input.Side)
	case input.FundType != "":
		filter, err = input.FundType.AccountFilter(input.Side)
	default:
		err = domain.ErrInvalidTradeType
	}
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	return filter.Filter(accounts), nil
}

func (uc *AccountUseCase) inTx(ctx context.Context, fn func(context.Context, Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

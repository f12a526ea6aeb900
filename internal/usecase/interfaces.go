package usecase

import (
	"context"
	"time"

	"github.com/iho/tradebook/internal/domain"
)

// AccountRepository defines data access for accounts and their contacts.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	UpdateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// List returns accounts ordered by id; groupID 0 means every group.
	List(ctx context.Context, groupID int) ([]*domain.Account, error)
	ListGroups(ctx context.Context) ([]domain.AccountGroup, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, term string, limit int) ([]*domain.Product, error)
}

// MasterRepository defines data access for categories, brands and units.
type MasterRepository interface {
	List(ctx context.Context, kind domain.MasterKind) ([]domain.Master, error)
	Create(ctx context.Context, master *domain.Master) error
}

// SequenceRepository hands out the next numeric id of a table.
type SequenceRepository interface {
	NextID(ctx context.Context, table, column string) (int64, error)
}

// TradeRepository posts and reads inventory transactions.
type TradeRepository interface {
	// Post records the trade and returns the transaction id assigned by
	// the backend.
	Post(ctx context.Context, trade *domain.Trade, refRowID string) (int64, error)
	List(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error)
}

// FundRepository posts money movements and looks up open references.
type FundRepository interface {
	Post(ctx context.Context, fund *domain.FundTransaction) error
	ReferenceBalances(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error)
}

// ReportRepository reads the financial reports computed by the backend.
type ReportRepository interface {
	ProfitLoss(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error)
	BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error)
	StockSummary(ctx context.Context) ([]domain.StockLine, error)
	StatementLines(ctx context.Context, accountID int64, period domain.DateRange) ([]domain.StatementLine, error)
	StatementSummary(ctx context.Context, accountID int64, period domain.DateRange) (domain.StatementSummary, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyPending is the value held by an idempotency key while its
// first request is still running.
const IdempotencyPending = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}

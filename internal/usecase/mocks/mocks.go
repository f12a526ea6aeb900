package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository whose methods can
// be overridden per test.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	Groups   []domain.AccountGroup

	CreateTxFunc   func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	UpdateTxFunc   func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Account, error)
	ListFunc       func(ctx context.Context, groupID int) ([]*domain.Account, error)
	ListGroupsFunc func(ctx context.Context) ([]domain.AccountGroup, error)
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{accounts: make(map[int64]*domain.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (m *MockAccountRepository) List(ctx context.Context, groupID int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, groupID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		if groupID == 0 || a.GroupID == groupID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockAccountRepository) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	if m.ListGroupsFunc != nil {
		return m.ListGroupsFunc(ctx)
	}
	return m.Groups, nil
}

// MockProductRepository is an in-memory ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product

	CreateFunc func(ctx context.Context, product *domain.Product) error
	SearchFunc func(ctx context.Context, term string, limit int) ([]*domain.Product, error)
}

func NewMockProductRepository(products ...*domain.Product) *MockProductRepository {
	m := &MockProductRepository{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *MockProductRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Product, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MockMasterRepository records master lists per kind and counts List calls.
type MockMasterRepository struct {
	mu        sync.Mutex
	masters   map[domain.MasterKind][]domain.Master
	ListCalls int
}

func NewMockMasterRepository() *MockMasterRepository {
	return &MockMasterRepository{masters: make(map[domain.MasterKind][]domain.Master)}
}

func (m *MockMasterRepository) List(ctx context.Context, kind domain.MasterKind) ([]domain.Master, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	return append([]domain.Master(nil), m.masters[kind]...), nil
}

func (m *MockMasterRepository) Create(ctx context.Context, master *domain.Master) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masters[master.Kind] = append(m.masters[master.Kind], *master)
	return nil
}

// MockTradeRepository records posted trades.
type MockTradeRepository struct {
	mu     sync.Mutex
	Posted []*domain.Trade
	RefIDs []string
	NextID int64

	PostFunc func(ctx context.Context, trade *domain.Trade, refRowID string) (int64, error)
	ListFunc func(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error)
}

func NewMockTradeRepository() *MockTradeRepository {
	return &MockTradeRepository{NextID: 1}
}

func (m *MockTradeRepository) Post(ctx context.Context, trade *domain.Trade, refRowID string) (int64, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, trade, refRowID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.NextID
	m.NextID++
	m.Posted = append(m.Posted, trade)
	m.RefIDs = append(m.RefIDs, refRowID)
	return id, nil
}

func (m *MockTradeRepository) List(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tradeType, accountID)
	}
	return nil, nil
}

// MockFundRepository records posted fund transactions.
type MockFundRepository struct {
	mu     sync.Mutex
	Posted []*domain.FundTransaction

	PostFunc              func(ctx context.Context, fund *domain.FundTransaction) error
	ReferenceBalancesFunc func(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error)
}

func NewMockFundRepository() *MockFundRepository {
	return &MockFundRepository{}
}

func (m *MockFundRepository) Post(ctx context.Context, fund *domain.FundTransaction) error {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, fund)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Posted = append(m.Posted, fund)
	return nil
}

func (m *MockFundRepository) ReferenceBalances(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error) {
	if m.ReferenceBalancesFunc != nil {
		return m.ReferenceBalancesFunc(ctx, accountID, currentRef, search)
	}
	return nil, nil
}

// MockReportRepository returns canned reports.
type MockReportRepository struct {
	ProfitLossFunc       func(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error)
	BalanceSheetFunc     func(ctx context.Context) (*domain.BalanceSheet, error)
	StockSummaryFunc     func(ctx context.Context) ([]domain.StockLine, error)
	StatementLinesFunc   func(ctx context.Context, accountID int64, period domain.DateRange) ([]domain.StatementLine, error)
	StatementSummaryFunc func(ctx context.Context, accountID int64, period domain.DateRange) (domain.StatementSummary, error)
}

func (m *MockReportRepository) ProfitLoss(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error) {
	if m.ProfitLossFunc != nil {
		return m.ProfitLossFunc(ctx, period)
	}
	return &domain.ProfitLoss{}, nil
}

func (m *MockReportRepository) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	if m.BalanceSheetFunc != nil {
		return m.BalanceSheetFunc(ctx)
	}
	return &domain.BalanceSheet{}, nil
}

func (m *MockReportRepository) StockSummary(ctx context.Context) ([]domain.StockLine, error) {
	if m.StockSummaryFunc != nil {
		return m.StockSummaryFunc(ctx)
	}
	return nil, nil
}

func (m *MockReportRepository) StatementLines(ctx context.Context, accountID int64, period domain.DateRange) ([]domain.StatementLine, error) {
	if m.StatementLinesFunc != nil {
		return m.StatementLinesFunc(ctx, accountID, period)
	}
	return nil, nil
}

func (m *MockReportRepository) StatementSummary(ctx context.Context, accountID int64, period domain.DateRange) (domain.StatementSummary, error) {
	if m.StatementSummaryFunc != nil {
		return m.StatementSummaryFunc(ctx, accountID, period)
	}
	return domain.StatementSummary{}, nil
}

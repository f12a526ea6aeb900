package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

// InvoiceSettings configure the printed invoice.
type InvoiceSettings struct {
	Company  domain.Company
	VATRate  decimal.Decimal
	Currency string
}

// TradeUseCase posts inventory transactions and builds their invoices.
type TradeUseCase struct {
	tradeRepo   TradeRepository
	accountRepo AccountRepository
	idGen       IDGenerator
	settings    InvoiceSettings
	metrics     *metrics.Metrics
}

// NewTradeUseCase creates a new TradeUseCase.
func NewTradeUseCase(
	tradeRepo TradeRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	settings InvoiceSettings,
	metrics *metrics.Metrics,
) *TradeUseCase {
	if settings.Currency == "" {
		settings.Currency = "AED"
	}
	return &TradeUseCase{
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
		settings:    settings,
		metrics:     metrics,
	}
}

// CreateTradeInput represents input for posting a trade.
type CreateTradeInput struct {
	Type      domain.TradeType
	Date      time.Time
	AccountID int64
	Reference string
	Lines     []domain.LineItem
}

// CreateTrade validates the trade, checks the party account belongs to a
// group allowed for the trade type and posts it.
func (uc *TradeUseCase) CreateTrade(ctx context.Context, input CreateTradeInput) (*domain.Trade, error) {
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	trade, err := domain.NewTrade(input.Type, input.Date, input.AccountID, input.Reference, input.Lines)
	if err != nil {
		return nil, err
	}

	party, err := uc.accountRepo.GetByID(ctx, trade.AccountID)
	if err != nil {
		return nil, err
	}
	filter, err := trade.Type.AccountFilter(domain.SideDebit)
	if err != nil {
		return nil, err
	}
	if !filter.Allows(party.GroupID) {
		return nil, fmt.Errorf("account %d for %s: %w", party.ID, trade.Type, domain.ErrAccountNotEligible)
	}

	id, err := uc.tradeRepo.Post(ctx, trade, uc.idGen.Generate())
	if err != nil {
		return nil, err
	}
	trade.ID = id

	if uc.metrics != nil {
		uc.metrics.TradesCreated.WithLabelValues(string(trade.Type)).Inc()
	}
	log.Info().
		Int64("trade_id", id).
		Str("type", string(trade.Type)).
		Int64("account_id", trade.AccountID).
		Str("total", trade.Total().StringFixed(2)).
		Msg("trade posted")

	return trade, nil
}

// ListTrades returns the trades of one type recorded against an account.
func (uc *TradeUseCase) ListTrades(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error) {
	if !tradeType.Valid() {
		return nil, domain.ErrInvalidTradeType
	}
	if accountID <= 0 {
		return nil, domain.ErrMissingAccount
	}
	return uc.tradeRepo.List(ctx, tradeType, accountID)
}

// Invoice builds the tax invoice of one trade.
func (uc *TradeUseCase) Invoice(ctx context.Context, tradeType domain.TradeType, accountID, tradeID int64) (*domain.Invoice, error) {
	trades, err := uc.ListTrades(ctx, tradeType, accountID)
	if err != nil {
		return nil, err
	}

	var trade *domain.Trade
	for _, t := range trades {
		if t.ID == tradeID {
			trade = t
			break
		}
	}
	if trade == nil {
		return nil, domain.ErrTradeNotFound
	}
	trade.Type = tradeType

	party, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	inv := domain.BuildInvoice(trade, party, uc.settings.Company, uc.settings.VATRate, uc.settings.Currency)
	inv.ID = uc.idGen.Generate()

	if uc.metrics != nil {
		uc.metrics.InvoicesRendered.Inc()
	}

	return inv, nil
}

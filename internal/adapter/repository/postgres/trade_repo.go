package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

const (
	procInsertTransaction = "insert_full_transaction"
	procFetchTransactions = "fetch_transactions"

	insertTransactionSQL = `SELECT insert_full_transaction($1, $2, $3, $4, $5, $6, $7)`
	fetchTransactionsSQL = `SELECT trsid, date, description, inventory FROM fetch_transactions($1, $2)`
)

// TradeRepository implements usecase.TradeRepository on the trade stored
// procedures.
type TradeRepository struct {
	db      querier
	retrier *Retrier
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(db DB, retrier *Retrier) *TradeRepository {
	return &TradeRepository{db: db, retrier: retrier}
}

// Post records the trade with insert_full_transaction and returns the
// transaction id.
func (r *TradeRepository) Post(ctx context.Context, trade *domain.Trade, refRowID string) (int64, error) {
	args, err := tradeArgs(trade, refRowID)
	if err != nil {
		return 0, err
	}

	var trsID int64
	err = r.retrier.Call(ctx, procInsertTransaction, func() error {
		return r.db.QueryRow(ctx, insertTransactionSQL, args...).Scan(&trsID)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", procInsertTransaction, err)
	}

	return trsID, nil
}

// List returns the trades of a type for one party account.
func (r *TradeRepository) List(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error) {
	var trades []*domain.Trade

	err := r.retrier.Call(ctx, procFetchTransactions, func() error {
		rows, err := r.db.Query(ctx, fetchTransactionsSQL, tradeType.Code(), accountID)
		if err != nil {
			return err
		}

		trades, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Trade, error) {
			return scanTrade(row, tradeType, accountID)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procFetchTransactions, err)
	}

	return trades, nil
}

func tradeArgs(trade *domain.Trade, refRowID string) ([]any, error) {
	debit, credit := trade.PartyEntry()

	entries, err := marshalPayload([]accountEntryPayload{{
		AccountID: trade.AccountID,
		Debit:     number(debit),
		Credit:    number(credit),
	}})
	if err != nil {
		return nil, err
	}

	items := make([]inventoryPayload, 0, len(trade.Lines))
	for _, l := range trade.Lines {
		items = append(items, inventoryPayload{
			ProductID: l.ProductID,
			QtyIn:     number(l.QtyIn),
			QtyOut:    number(l.QtyOut),
			Price:     number(l.Price),
		})
	}
	inventory, err := marshalPayload(items)
	if err != nil {
		return nil, err
	}

	refID, err := refRowNumber(refRowID)
	if err != nil {
		return nil, err
	}

	refs, err := marshalPayload([]refPayload{{
		ID:        refID,
		RefID:     trade.Reference,
		AccountID: trade.AccountID,
		Debit:     number(decimal.Zero),
		Credit:    number(trade.Total()),
	}})
	if err != nil {
		return nil, err
	}

	return []any{
		trade.Type.PostingCode(),
		trade.Description,
		trade.Date,
		trade.AccountID,
		entries,
		inventory,
		refs,
	}, nil
}

func scanTrade(row pgx.CollectableRow, tradeType domain.TradeType, accountID int64) (*domain.Trade, error) {
	var (
		id          int64
		date        time.Time
		description string
		inventory   []byte
	)

	if err := row.Scan(&id, &date, &description, &inventory); err != nil {
		return nil, err
	}

	var items []inventoryRow
	if len(inventory) > 0 {
		if err := json.Unmarshal(inventory, &items); err != nil {
			return nil, fmt.Errorf("trade %d inventory: %w", id, err)
		}
	}

	lines := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.LineItem{
			ProductName: it.ProductName,
			QtyIn:       it.QtyIn,
			QtyOut:      it.QtyOut,
			Price:       it.Price,
		})
	}

	reference := ""
	if ref, ok := strings.CutPrefix(description, tradeType.Label()+" - "); ok {
		reference = ref
	}

	return &domain.Trade{
		ID:          id,
		Type:        tradeType,
		Date:        date,
		AccountID:   accountID,
		Description: description,
		Reference:   reference,
		Lines:       lines,
	}, nil
}

// refRowNumber turns the reference row ULID into the numeric row id the
// procedure expects: its millisecond timestamp.
func refRowNumber(refRowID string) (int64, error) {
	id, err := ulid.ParseStrict(refRowID)
	if err != nil {
		return 0, fmt.Errorf("reference row id %q: %w", refRowID, err)
	}
	return int64(id.Time()), nil
}

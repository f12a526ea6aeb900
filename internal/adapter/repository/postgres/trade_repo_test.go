package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

func testRetrier() *Retrier {
	r := NewRetrier(nil)
	r.initialInterval = time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 100 * time.Millisecond
	return r
}

func TestTradeRepositoryPost(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewTradeRepository(mockPool, testRetrier())

	date := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	trade, err := domain.NewTrade(domain.TradeSales, date, 10, "INV-9", []domain.LineItem{
		{ProductID: 5, QtyOut: decimal.NewFromInt(3), Price: decimal.NewFromInt(20)},
	})
	if err != nil {
		t.Fatalf("unexpected error building trade: %v", err)
	}
	refRowID := ulid.MustNew(ulid.Timestamp(date), nil)

	mockPool.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(
			1,
			"Sales - INV-9",
			date,
			int64(10),
			`[{"AccountID":10,"Debit":0,"Credit":60}]`,
			`[{"Products_ID":5,"QtyIn":0,"QtyOut":3,"Price":20}]`,
			fmt.Sprintf(`[{"ID":%d,"REFID":"INV-9","AccountID":10,"Debit":0,"Credit":60}]`, date.UnixMilli()),
		).
		WillReturnRows(pgxmock.NewRows([]string{"insert_full_transaction"}).AddRow(int64(77)))

	id, err := repo.Post(context.Background(), trade, refRowID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 77 {
		t.Fatalf("expected trs id 77, got %d", id)
	}

	assertExpectations(t, mockPool)
}

func TestTradeRepositoryPostRetriesDeadlock(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewTradeRepository(mockPool, testRetrier())

	trade, err := domain.NewTrade(domain.TradePurchase, time.Now(), 11, "", []domain.LineItem{
		{ProductID: 5, QtyIn: decimal.NewFromInt(1), Price: decimal.NewFromInt(9)},
	})
	if err != nil {
		t.Fatalf("unexpected error building trade: %v", err)
	}

	anyArgs := []any{
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	}
	mockPool.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(anyArgs...).
		WillReturnError(&pgconn.PgError{Code: pgErrDeadlock})
	mockPool.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(anyArgs...).
		WillReturnRows(pgxmock.NewRows([]string{"insert_full_transaction"}).AddRow(int64(3)))

	id, err := repo.Post(context.Background(), trade, ulid.Make().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected trs id 3, got %d", id)
	}

	assertExpectations(t, mockPool)
}

func TestTradeRepositoryPostRejectsBadRefRowID(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewTradeRepository(mockPool, testRetrier())

	trade, err := domain.NewTrade(domain.TradeSales, time.Now(), 10, "", []domain.LineItem{
		{ProductID: 5, QtyOut: decimal.NewFromInt(1), Price: decimal.NewFromInt(9)},
	})
	if err != nil {
		t.Fatalf("unexpected error building trade: %v", err)
	}

	if _, err := repo.Post(context.Background(), trade, "not-a-ulid"); err == nil {
		t.Fatalf("expected error for malformed reference row id")
	}

	assertExpectations(t, mockPool)
}

func TestTradeRepositoryList(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewTradeRepository(mockPool, testRetrier())
	date := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery(regexp.QuoteMeta(fetchTransactionsSQL)).
		WithArgs(2, int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"trsid", "date", "description", "inventory"}).
			AddRow(int64(4), date, "Sales - INV-4", []byte(`[{"product_name":"Steel Pipe","qtyin":0,"qtyout":10,"price":"100.5"}]`)).
			AddRow(int64(5), date, "Sales", []byte(nil)))

	trades, err := repo.List(context.Background(), domain.TradeSales, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	first := trades[0]
	if first.ID != 4 || first.Reference != "INV-4" || first.AccountID != 10 || first.Type != domain.TradeSales {
		t.Errorf("unexpected trade: %+v", first)
	}
	if len(first.Lines) != 1 || !first.Total().Equal(decimal.NewFromInt(1005)) {
		t.Errorf("unexpected lines: %+v", first.Lines)
	}
	if trades[1].Reference != "" || len(trades[1].Lines) != 0 {
		t.Errorf("unexpected second trade: %+v", trades[1])
	}

	mockPool.ExpectQuery(regexp.QuoteMeta(fetchTransactionsSQL)).
		WithArgs(1, int64(11)).
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.List(context.Background(), domain.TradePurchase, 11); err == nil {
		t.Fatalf("expected error")
	}

	assertExpectations(t, mockPool)
}

package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

func TestFundRepositoryPost(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewFundRepository(mockPool, testRetrier())

	fund := &domain.FundTransaction{
		Type:          domain.FundReceipt,
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		FromAccountID: 1,
		ToAccountID:   10,
		Description:   "Cheque 889",
		Refs: []domain.RefRow{
			{RefID: "INV-1", Amount: decimal.NewFromInt(300)},
			{RefID: "INV-2", Amount: decimal.RequireFromString("45.5")},
		},
		Total: decimal.RequireFromString("345.5"),
	}

	mockPool.ExpectExec(regexp.QuoteMeta(insertFundSQL)).
		WithArgs(4, fund.Date, int64(1), int64(10), "Cheque 889",
			`[{"refid":"INV-1","amt":300},{"refid":"INV-2","amt":45.5}]`,
			fund.Total).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	if err := repo.Post(context.Background(), fund); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestFundRepositoryReferenceBalances(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewFundRepository(mockPool, testRetrier())

	mockPool.ExpectQuery(regexp.QuoteMeta(refDetailsSQL)).
		WithArgs(int64(10), "", "INV").
		WillReturnRows(pgxmock.NewRows([]string{"refid", "balance"}).
			AddRow("INV-1", "300").
			AddRow("INV-2", "45.50"))

	refs, err := repo.ReferenceBalances(context.Background(), 10, "", "INV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 || refs[1].RefID != "INV-2" || !refs[1].Balance.Equal(decimal.RequireFromString("45.5")) {
		t.Fatalf("unexpected refs: %+v", refs)
	}

	assertExpectations(t, mockPool)
}

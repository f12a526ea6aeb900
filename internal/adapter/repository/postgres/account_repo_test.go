package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

var accountColumns = []string{
	"accountid", "accountname", "actgroupid", "opbalance",
	"tel", "fax", "email", "contactname", "address", "trn",
}

func TestAccountRepositoryCreateTxWithContact(t *testing.T) {
	mockPool := newMockPool(t)
	ctx := context.Background()

	account := &domain.Account{
		ID:             101,
		Name:           "Gulf Traders",
		GroupID:        domain.GroupCustomers,
		OpeningBalance: decimal.NewFromInt(250),
		Contact:        &domain.Contact{Tel: "04-1234567", TRN: "100200300"},
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(insertAccountSQL)).
		WithArgs(int64(101), "Gulf Traders", domain.GroupCustomers, account.OpeningBalance).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(upsertContactSQL)).
		WithArgs(int64(101), "04-1234567", "", "", "", "", "100200300").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := NewAccountRepository(mockPool)
	if err := repo.CreateTx(ctx, tx, account); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("non-customer drops contact", func(t *testing.T) {
		mockPool := newMockPool(t)
		account := &domain.Account{ID: 5, Name: "Petty Cash", GroupID: domain.GroupCash}

		mockPool.ExpectBegin()
		mockPool.ExpectExec(regexp.QuoteMeta(updateAccountSQL)).
			WithArgs(int64(5), "Petty Cash", domain.GroupCash, account.OpeningBalance).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectExec(regexp.QuoteMeta(deleteContactSQL)).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
		if err != nil {
			t.Fatalf("begin failed: %v", err)
		}
		if err := NewAccountRepository(mockPool).UpdateTx(ctx, tx, account); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertExpectations(t, mockPool)
	})

	t.Run("missing account", func(t *testing.T) {
		mockPool := newMockPool(t)

		mockPool.ExpectBegin()
		mockPool.ExpectExec(regexp.QuoteMeta(updateAccountSQL)).
			WithArgs(int64(9), "Ghost", domain.GroupCash, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
		if err != nil {
			t.Fatalf("begin failed: %v", err)
		}
		err = NewAccountRepository(mockPool).UpdateTx(ctx, tx, &domain.Account{ID: 9, Name: "Ghost", GroupID: domain.GroupCash})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		assertExpectations(t, mockPool)
	})
}

func TestAccountRepositoryGetByID(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool)

	mockPool.ExpectQuery(regexp.QuoteMeta(getAccountSQL)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(10), "Gulf Traders", 10, "125.50", "04-1234567", "", "buyer@example.com", "Sam", "Dubai", "100200300"))

	account, err := repo.GetByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Gulf Traders" || account.GroupID != domain.GroupCustomers {
		t.Errorf("unexpected account: %+v", account)
	}
	if !account.OpeningBalance.Equal(decimal.RequireFromString("125.50")) {
		t.Errorf("unexpected opening balance %s", account.OpeningBalance)
	}
	if account.Contact == nil || account.Contact.TRN != "100200300" || account.Contact.Email != "buyer@example.com" {
		t.Errorf("unexpected contact: %+v", account.Contact)
	}

	mockPool.ExpectQuery(regexp.QuoteMeta(getAccountSQL)).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(accountColumns))

	if _, err := repo.GetByID(context.Background(), 404); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryListAndGroups(t *testing.T) {
	var none pgtype.Text
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool)

	mockPool.ExpectQuery(regexp.QuoteMeta(listAccountsSQL)).
		WithArgs(0).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(1), "Bank", 1, "0", none, none, none, none, none, none).
			AddRow(int64(2), "Cash", 2, "10", none, none, none, none, none, none))

	accounts, err := repo.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[1].Name != "Cash" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
	if accounts[0].Contact != nil {
		t.Errorf("expected no contact for a bank account")
	}

	mockPool.ExpectQuery(regexp.QuoteMeta(listGroupsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"actgroupid", "actgroupname"}).
			AddRow(1, "Bank").
			AddRow(10, "Customers"))

	groups, err := repo.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[1].ID != domain.GroupCustomers {
		t.Fatalf("unexpected groups: %+v", groups)
	}

	assertExpectations(t, mockPool)
}

package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseFundType(t *testing.T) {
	t.Parallel()

	got, err := ParseFundType("5")
	if err != nil || got != FundTransfer {
		t.Fatalf("expected transfer, got %s (%v)", got, err)
	}

	got, err = ParseFundType("Deposit")
	if err != nil || got != FundDeposit {
		t.Fatalf("expected deposit, got %s (%v)", got, err)
	}

	if _, err := ParseFundType("8"); !errors.Is(err, ErrInvalidFundType) {
		t.Fatalf("expected ErrInvalidFundType, got %v", err)
	}
}

func TestFundTransactionNormalize(t *testing.T) {
	t.Parallel()

	f := &FundTransaction{
		Type: FundReceipt,
		Refs: []RefRow{
			{RefID: " INV-1 ", Amount: decimal.NewFromInt(100)},
			{RefID: "", Amount: decimal.Zero},
			{RefID: "INV-2", Amount: decimal.RequireFromString("25.5")},
		},
		Total: decimal.NewFromInt(1),
	}
	f.Normalize()

	if len(f.Refs) != 2 {
		t.Fatalf("expected blank row to be dropped, got %d rows", len(f.Refs))
	}
	if f.Refs[0].RefID != "INV-1" {
		t.Errorf("expected trimmed ref id, got %q", f.Refs[0].RefID)
	}
	if !f.Total.Equal(decimal.RequireFromString("125.5")) {
		t.Errorf("expected total from refs, got %s", f.Total)
	}

	payment := &FundTransaction{Type: FundPayment, FromAccountID: 20, ToAccountID: 1, Total: decimal.NewFromInt(500)}
	payment.Normalize()
	if !payment.Total.IsZero() {
		t.Errorf("expected payment without references to total zero, got %s", payment.Total)
	}
	if err := payment.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for payment without references, got %v", err)
	}

	transfer := &FundTransaction{Type: FundTransfer, Total: decimal.NewFromInt(40)}
	transfer.Normalize()
	if !transfer.Total.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected entered total kept, got %s", transfer.Total)
	}
}

func TestFundTransactionValidate(t *testing.T) {
	t.Parallel()

	valid := func() *FundTransaction {
		return &FundTransaction{Type: FundTransfer, FromAccountID: 20, ToAccountID: 21, Total: decimal.NewFromInt(10)}
	}

	tests := []struct {
		name    string
		mutate  func(f *FundTransaction)
		wantErr error
	}{
		{"valid", func(f *FundTransaction) {}, nil},
		{"unknown type", func(f *FundTransaction) { f.Type = "loan" }, ErrInvalidFundType},
		{"missing from", func(f *FundTransaction) { f.FromAccountID = 0 }, ErrMissingAccount},
		{"missing to", func(f *FundTransaction) { f.ToAccountID = 0 }, ErrMissingAccount},
		{"zero total", func(f *FundTransaction) { f.Total = decimal.Zero }, ErrInvalidAmount},
		{"same account transfer", func(f *FundTransaction) { f.ToAccountID = 20 }, ErrSameAccount},
		{"same account deposit allowed", func(f *FundTransaction) { f.Type = FundDeposit; f.ToAccountID = 20 }, nil},
		{"negative ref", func(f *FundTransaction) {
			f.Refs = []RefRow{{RefID: "A", Amount: decimal.NewFromInt(-1)}}
		}, ErrInvalidAmount},
	}

	for _, tt := range tests {
		f := valid()
		tt.mutate(f)
		err := f.Validate()
		if tt.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestFundTransactionValidateAccounts(t *testing.T) {
	t.Parallel()

	bank := &Account{ID: 1, GroupID: GroupBank}
	cash := &Account{ID: 2, GroupID: GroupCash}
	customer := &Account{ID: 3, GroupID: GroupCustomers}

	tests := []struct {
		fundType FundType
		from, to *Account
		wantErr  bool
	}{
		{FundPayment, customer, bank, false},
		{FundPayment, bank, customer, true},
		{FundReceipt, cash, customer, false},
		{FundReceipt, customer, cash, true},
		{FundDeposit, cash, bank, false},
		{FundDeposit, bank, cash, true},
		{FundWithdrawal, bank, cash, false},
		{FundTransfer, customer, &Account{ID: 4, GroupID: GroupSuppliers}, false},
		{FundTransfer, bank, customer, true},
	}

	for _, tt := range tests {
		f := &FundTransaction{Type: tt.fundType}
		err := f.ValidateAccounts(tt.from, tt.to)
		if tt.wantErr && !errors.Is(err, ErrAccountNotEligible) {
			t.Errorf("%s %d->%d: expected ErrAccountNotEligible, got %v", tt.fundType, tt.from.ID, tt.to.ID, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s %d->%d: unexpected error %v", tt.fundType, tt.from.ID, tt.to.ID, err)
		}
	}
}

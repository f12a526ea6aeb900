package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FundType is the kind of money movement.
type FundType string

const (
	FundPayment    FundType = "payment"
	FundReceipt    FundType = "receipt"
	FundTransfer   FundType = "transfer"
	FundDeposit    FundType = "deposit"
	FundWithdrawal FundType = "withdrawal"
)

type fundRule struct {
	code    int
	label   string
	from    GroupFilter
	to      GroupFilter
	hasRefs bool
}

var fundRules = map[FundType]fundRule{
	FundPayment: {
		code:    3,
		label:   "Payment",
		from:    GroupFilter{Exclude: bankAndCash},
		to:      GroupFilter{Include: bankAndCash},
		hasRefs: true,
	},
	FundReceipt: {
		code:    4,
		label:   "Receipt",
		from:    GroupFilter{Include: bankAndCash},
		to:      GroupFilter{Exclude: bankAndCash},
		hasRefs: true,
	},
	FundTransfer: {
		code:  5,
		label: "Transfer",
		from:  GroupFilter{Exclude: bankAndCash},
		to:    GroupFilter{Exclude: bankAndCash},
	},
	FundDeposit: {
		code:  6,
		label: "Deposit",
		from:  GroupFilter{Include: []int{GroupCash}},
		to:    GroupFilter{Include: []int{GroupBank}},
	},
	FundWithdrawal: {
		code:  7,
		label: "Withdrawal",
		from:  GroupFilter{Include: []int{GroupBank}},
		to:    GroupFilter{Include: []int{GroupCash}},
	},
}

// ParseFundType accepts either the name ("receipt") or the numeric code ("4").
func ParseFundType(s string) (FundType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, r := range fundRules {
		if s == string(t) || s == fmt.Sprint(r.code) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFundType, s)
}

func (t FundType) Valid() bool {
	_, ok := fundRules[t]
	return ok
}

func (t FundType) Code() int {
	return fundRules[t].code
}

func (t FundType) Label() string {
	return fundRules[t].label
}

// UsesReferences is true for payments and receipts, whose total is the sum
// of the settled reference rows.
func (t FundType) UsesReferences() bool {
	return fundRules[t].hasRefs
}

// AccountFilter returns the groups allowed on the from or to side.
func (t FundType) AccountFilter(side Side) (GroupFilter, error) {
	r, ok := fundRules[t]
	if !ok {
		return GroupFilter{}, ErrInvalidFundType
	}
	if side == SideTo || side == SideCredit {
		return r.to, nil
	}
	return r.from, nil
}

// RefRow settles part of an outstanding reference (invoice) balance.
type RefRow struct {
	RefID  string
	Amount decimal.Decimal
}

// RefBalance is an outstanding reference offered as a suggestion.
type RefBalance struct {
	RefID   string
	Balance decimal.Decimal
}

// FundTransaction moves money between two accounts.
type FundTransaction struct {
	Type          FundType
	Date          time.Time
	FromAccountID int64
	ToAccountID   int64
	Description   string
	Refs          []RefRow
	Total         decimal.Decimal
}

// RefsTotal sums the reference rows.
func (f *FundTransaction) RefsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range f.Refs {
		total = total.Add(r.Amount)
	}
	return total
}

// Normalize drops blank reference rows and, for reference-driven types,
// derives the total from the rows.
func (f *FundTransaction) Normalize() {
	refs := f.Refs[:0]
	for _, r := range f.Refs {
		r.RefID = strings.TrimSpace(r.RefID)
		if r.RefID == "" && r.Amount.IsZero() {
			continue
		}
		refs = append(refs, r)
	}
	f.Refs = refs
	f.Description = strings.TrimSpace(f.Description)

	if f.Type.UsesReferences() {
		f.Total = f.RefsTotal()
	}
}

// Validate checks the required fields. Group eligibility of the two
// accounts is checked by ValidateAccounts once they are loaded.
func (f *FundTransaction) Validate() error {
	if !f.Type.Valid() {
		return ErrInvalidFundType
	}
	if f.FromAccountID <= 0 || f.ToAccountID <= 0 {
		return ErrMissingAccount
	}
	if !f.Total.IsPositive() {
		return ErrInvalidAmount
	}
	if f.Type == FundTransfer && f.FromAccountID == f.ToAccountID {
		return ErrSameAccount
	}
	for i, r := range f.Refs {
		if r.Amount.IsNegative() {
			return fmt.Errorf("reference %d: %w", i+1, ErrInvalidAmount)
		}
	}
	return nil
}

// ValidateAccounts checks both accounts against the side rules of the type.
func (f *FundTransaction) ValidateAccounts(from, to *Account) error {
	fromFilter, err := f.Type.AccountFilter(SideFrom)
	if err != nil {
		return err
	}
	toFilter, err := f.Type.AccountFilter(SideTo)
	if err != nil {
		return err
	}
	if !fromFilter.Allows(from.GroupID) {
		return fmt.Errorf("from account %d: %w", from.ID, ErrAccountNotEligible)
	}
	if !toFilter.Allows(to.GroupID) {
		return fmt.Errorf("to account %d: %w", to.ID, ErrAccountNotEligible)
	}
	return nil
}

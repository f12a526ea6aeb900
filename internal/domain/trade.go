package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeType is the kind of inventory transaction.
type TradeType string

const (
	TradePurchase       TradeType = "purchase"
	TradeSales          TradeType = "sales"
	TradePurchaseReturn TradeType = "purchase_return"
	TradeSalesReturn    TradeType = "sales_return"
)

type tradeRule struct {
	code    int
	label   string
	debit   GroupFilter
	credit  GroupFilter
	parties GroupFilter
}

var tradeRules = map[TradeType]tradeRule{
	TradePurchase: {
		code:    1,
		label:   "Purchase",
		debit:   GroupFilter{Include: []int{GroupSuppliers}},
		credit:  GroupFilter{Include: bankAndCash},
		parties: GroupFilter{Include: []int{GroupBank, GroupCash, GroupSuppliers, GroupExpenses}},
	},
	TradeSales: {
		code:    2,
		label:   "Sales",
		debit:   GroupFilter{Include: []int{GroupCustomers}},
		credit:  GroupFilter{Include: bankAndCash},
		parties: GroupFilter{Include: []int{GroupCustomers}},
	},
	TradePurchaseReturn: {
		code:    3,
		label:   "Purchase Return",
		debit:   GroupFilter{Include: bankAndCash},
		credit:  GroupFilter{Include: []int{GroupSuppliers}},
		parties: GroupFilter{Include: []int{GroupBank, GroupCash, GroupSuppliers, GroupExpenses}},
	},
	TradeSalesReturn: {
		code:    4,
		label:   "Sales Return",
		debit:   GroupFilter{Include: bankAndCash},
		credit:  GroupFilter{Include: []int{GroupCustomers}},
		parties: GroupFilter{Include: []int{GroupCustomers}},
	},
}

// ParseTradeType accepts either the name ("sales") or the numeric code ("2").
func ParseTradeType(s string) (TradeType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, r := range tradeRules {
		if s == string(t) || s == fmt.Sprint(r.code) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTradeType, s)
}

// Valid reports whether t is a known trade type.
func (t TradeType) Valid() bool {
	_, ok := tradeRules[t]
	return ok
}

// Code is the numeric type used when listing trades.
func (t TradeType) Code() int {
	return tradeRules[t].code
}

// PostingCode is the zero-based type expected by insert_full_transaction.
func (t TradeType) PostingCode() int {
	return tradeRules[t].code - 1
}

// Label is the human-readable name used in descriptions.
func (t TradeType) Label() string {
	return tradeRules[t].label
}

// IsPurchaseKind is true for purchases and purchase returns, whose lines
// move stock in.
func (t TradeType) IsPurchaseKind() bool {
	return t == TradePurchase || t == TradePurchaseReturn
}

// AccountFilter returns the groups allowed on the given side of the entry
// form.
func (t TradeType) AccountFilter(side Side) (GroupFilter, error) {
	r, ok := tradeRules[t]
	if !ok {
		return GroupFilter{}, ErrInvalidTradeType
	}
	switch side {
	case SideDebit:
		return r.debit, nil
	case SideCredit:
		return r.credit, nil
	case SideParty:
		return r.parties, nil
	default:
		return GroupFilter{}, fmt.Errorf("trade side %q: %w", side, ErrAccountNotEligible)
	}
}

// LineItem is one product row of a trade.
type LineItem struct {
	ProductID   int64
	ProductName string
	QtyIn       decimal.Decimal
	QtyOut      decimal.Decimal
	Price       decimal.Decimal
}

// Quantity returns the quantity that is relevant for the trade type.
func (l LineItem) Quantity(t TradeType) decimal.Decimal {
	if t.IsPurchaseKind() {
		return l.QtyIn
	}
	return l.QtyOut
}

// Amount is quantity times price.
func (l LineItem) Amount(t TradeType) decimal.Decimal {
	return l.Quantity(t).Mul(l.Price)
}

// Trade is an inventory transaction against a customer or supplier.
type Trade struct {
	ID          int64
	Type        TradeType
	Date        time.Time
	AccountID   int64
	Description string
	Reference   string
	Lines       []LineItem
}

// NewTrade builds a trade, normalising each line so only the quantity
// column of the trade type is populated.
func NewTrade(t TradeType, date time.Time, accountID int64, reference string, lines []LineItem) (*Trade, error) {
	if !t.Valid() {
		return nil, ErrInvalidTradeType
	}
	if accountID <= 0 {
		return nil, ErrMissingAccount
	}
	if len(lines) == 0 {
		return nil, ErrNoLineItems
	}

	normalized := make([]LineItem, len(lines))
	for i, l := range lines {
		qty := l.QtyIn
		if qty.IsZero() {
			qty = l.QtyOut
		}
		if l.ProductID <= 0 || !qty.IsPositive() || l.Price.IsNegative() {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrInvalidLineItem)
		}

		l.QtyIn, l.QtyOut = decimal.Zero, decimal.Zero
		if t.IsPurchaseKind() {
			l.QtyIn = qty
		} else {
			l.QtyOut = qty
		}
		normalized[i] = l
	}

	reference = strings.TrimSpace(reference)
	description := t.Label()
	if reference != "" {
		description += " - " + reference
	}

	return &Trade{
		Type:        t,
		Date:        date,
		AccountID:   accountID,
		Description: description,
		Reference:   reference,
		Lines:       normalized,
	}, nil
}

// Total is the sum of the line amounts, before tax.
func (tr *Trade) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range tr.Lines {
		total = total.Add(l.Amount(tr.Type))
	}
	return total
}

// PartyEntry returns the debit and credit amounts posted against the party
// account: sales kinds credit it, purchase kinds debit it.
func (tr *Trade) PartyEntry() (debit, credit decimal.Decimal) {
	total := tr.Total()
	if tr.Type.IsPurchaseKind() {
		return total, decimal.Zero
	}
	return decimal.Zero, total
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds a report, both ends inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Validate rejects ranges whose start is after their end.
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() || r.From.After(r.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// ProfitLoss is the trading and profit & loss statement for a period.
type ProfitLoss struct {
	Period       DateRange
	Sales        decimal.Decimal
	Purchases    decimal.Decimal
	Expenses     decimal.Decimal
	OtherIncome  decimal.Decimal
	OpeningStock decimal.Decimal
	ClosingStock decimal.Decimal
	GrossProfit  decimal.Decimal
	NetProfit    decimal.Decimal
}

// IncomeSide is sales (as a positive figure) plus closing stock.
func (p *ProfitLoss) IncomeSide() decimal.Decimal {
	return p.Sales.Abs().Add(p.ClosingStock)
}

// CostSide is opening stock plus purchases.
func (p *ProfitLoss) CostSide() decimal.Decimal {
	return p.OpeningStock.Add(p.Purchases)
}

func (p *ProfitLoss) IsProfit() bool {
	return !p.NetProfit.IsNegative()
}

// AccountBalance is one account line in a balance sheet group.
type AccountBalance struct {
	AccountID   int64
	AccountName string
	Balance     decimal.Decimal
}

// BalanceSheet groups account balances as of today.
type BalanceSheet struct {
	Capital      []AccountBalance
	Creditors    []AccountBalance
	Debtors      []AccountBalance
	Cash         []AccountBalance
	Bank         []AccountBalance
	ClosingStock decimal.Decimal
}

// SumBalances adds up a balance sheet group.
func SumBalances(lines []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Balance)
	}
	return total
}

// Liabilities is capital plus creditors.
func (b *BalanceSheet) Liabilities() decimal.Decimal {
	return SumBalances(b.Capital).Add(SumBalances(b.Creditors))
}

// Assets is bank, cash and debtors plus closing stock.
func (b *BalanceSheet) Assets() decimal.Decimal {
	return SumBalances(b.Bank).
		Add(SumBalances(b.Cash)).
		Add(SumBalances(b.Debtors)).
		Add(b.ClosingStock)
}

// StockLine is one product row of the stock summary.
type StockLine struct {
	ProductID        int64
	ProductName      string
	BrandName        string
	OpeningQty       decimal.Decimal
	QtyIn            decimal.Decimal
	QtyOut           decimal.Decimal
	ClosingQty       decimal.Decimal
	MinPrice         decimal.Decimal
	AvgPurchasePrice decimal.Decimal
	AvgSalePrice     decimal.Decimal
	ClosingValue     decimal.Decimal
}

// FilterStock keeps the lines whose product or brand name contains search,
// ignoring case. An empty search keeps everything.
func FilterStock(lines []StockLine, search string) []StockLine {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return lines
	}

	out := make([]StockLine, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l.ProductName), search) ||
			strings.Contains(strings.ToLower(l.BrandName), search) {
			out = append(out, l)
		}
	}
	return out
}

// StockValue sums the closing value of the lines.
func StockValue(lines []StockLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ClosingValue)
	}
	return total
}

// StatementLine is one posting in an account statement.
type StatementLine struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// StatementSummary carries the opening and closing figures of a statement.
type StatementSummary struct {
	OpeningBalance decimal.Decimal
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	FinalBalance   decimal.Decimal
}

// Columns splits a signed balance into the debit and credit columns of the
// statement: zero or negative balances print as credit, positive as debit.
func Columns(balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if balance.IsPositive() {
		return balance, decimal.Zero
	}
	return decimal.Zero, balance.Abs()
}

// Statement is an account statement for a date range.
type Statement struct {
	AccountID int64
	Period    DateRange
	Lines     []StatementLine
	Summary   StatementSummary
}

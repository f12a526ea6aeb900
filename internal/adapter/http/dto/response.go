package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// AmountWordsResponse carries the wording of an amount.
type AmountWordsResponse struct {
	Amount float64 `json:"amount"`
	Words  string  `json:"words"`
}

// ContactResponse represents customer contact details.
type ContactResponse struct {
	Tel         string `json:"tel"`
	Fax         string `json:"fax"`
	Email       string `json:"email"`
	ContactName string `json:"contact_name"`
	Address     string `json:"address"`
	TRN         string `json:"trn"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	GroupID        int              `json:"group_id"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	Contact        *ContactResponse `json:"contact,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		GroupID:        a.GroupID,
		OpeningBalance: a.OpeningBalance,
	}
	if c := a.Contact; c != nil {
		resp.Contact = &ContactResponse{
			Tel:         c.Tel,
			Fax:         c.Fax,
			Email:       c.Email,
			ContactName: c.ContactName,
			Address:     c.Address,
			TRN:         c.TRN,
		}
	}
	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// GroupResponse represents an account group.
type GroupResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GroupsFromDomain converts account groups to responses.
func GroupsFromDomain(groups []domain.AccountGroup) []GroupResponse {
	result := make([]GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = GroupResponse{ID: g.ID, Name: g.Name}
	}
	return result
}

// ProductResponse represents a product.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	BrandID      int64           `json:"brand_id"`
	UnitID       int64           `json:"unit_id"`
	OpeningQty   decimal.Decimal `json:"opening_qty"`
	OpeningPrice decimal.Decimal `json:"opening_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
}

// ProductFromDomain converts a domain product to response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		BrandID:      p.BrandID,
		UnitID:       p.UnitID,
		OpeningQty:   p.OpeningQty,
		OpeningPrice: p.OpeningPrice,
		SellPrice:    p.SellPrice,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// MasterResponse represents a category, brand or unit.
type MasterResponse struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// MastersFromDomain converts masters to responses.
func MastersFromDomain(masters []domain.Master) []MasterResponse {
	result := make([]MasterResponse, len(masters))
	for i, m := range masters {
		result[i] = MasterResponse{ID: m.ID, Kind: string(m.Kind), Name: m.Name}
	}
	return result
}

// LineResponse is one product row of a trade.
type LineResponse struct {
	ProductID   int64           `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	QtyIn       decimal.Decimal `json:"qty_in"`
	QtyOut      decimal.Decimal `json:"qty_out"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// TradeResponse represents a trade.
type TradeResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	AccountID   int64           `json:"account_id"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Lines       []LineResponse  `json:"lines"`
	Total       decimal.Decimal `json:"total"`
}

// TradeFromDomain converts a domain trade to response.
func TradeFromDomain(tr *domain.Trade) *TradeResponse {
	lines := make([]LineResponse, len(tr.Lines))
	for i, l := range tr.Lines {
		lines[i] = LineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			QtyIn:       l.QtyIn,
			QtyOut:      l.QtyOut,
			Price:       l.Price,
			Amount:      l.Amount(tr.Type),
		}
	}
	return &TradeResponse{
		ID:          tr.ID,
		Type:        string(tr.Type),
		Date:        tr.Date,
		AccountID:   tr.AccountID,
		Description: tr.Description,
		Reference:   tr.Reference,
		Lines:       lines,
		Total:       tr.Total(),
	}
}

// TradesFromDomain converts domain trades to responses.
func TradesFromDomain(trades []*domain.Trade) []*TradeResponse {
	result := make([]*TradeResponse, len(trades))
	for i, tr := range trades {
		result[i] = TradeFromDomain(tr)
	}
	return result
}

// InvoiceLineResponse is one line of an invoice.
type InvoiceLineResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice document.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	CompanyName   string                `json:"company_name"`
	CompanyTRN    string                `json:"company_trn,omitempty"`
	PartyName     string                `json:"party_name"`
	PartyTRN      string                `json:"party_trn,omitempty"`
	Number        int64                 `json:"number"`
	Date          time.Time             `json:"date"`
	TradeType     string                `json:"trade_type"`
	Currency      string                `json:"currency"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	VATRate       decimal.Decimal       `json:"vat_rate"`
	VAT           decimal.Decimal       `json:"vat"`
	Total         decimal.Decimal       `json:"total"`
	AmountInWords string                `json:"amount_in_words"`
}

// InvoiceFromDomain converts an invoice to response.
func InvoiceFromDomain(inv *domain.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Amount:      l.Amount,
		}
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		Title:         inv.Title,
		CompanyName:   inv.Company.Name,
		CompanyTRN:    inv.Company.TRN,
		PartyName:     inv.PartyName,
		PartyTRN:      inv.PartyTRN,
		Number:        inv.Number,
		Date:          inv.Date,
		TradeType:     string(inv.TradeType),
		Currency:      inv.Currency,
		Lines:         lines,
		Subtotal:      inv.Subtotal,
		VATRate:       inv.VATRate,
		VAT:           inv.VAT,
		Total:         inv.Total,
		AmountInWords: inv.AmountInWords,
	}
}

// FundResponse represents a posted fund transaction.
type FundResponse struct {
	Type          string          `json:"type"`
	Date          time.Time       `json:"date"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Description   string          `json:"description"`
	Refs          []RefRequest    `json:"refs"`
	Total         decimal.Decimal `json:"total"`
}

// FundFromDomain converts a fund transaction to response.
func FundFromDomain(f *domain.FundTransaction) *FundResponse {
	refs := make([]RefRequest, len(f.Refs))
	for i, r := range f.Refs {
		refs[i] = RefRequest{RefID: r.RefID, Amount: r.Amount}
	}
	return &FundResponse{
		Type:          string(f.Type),
		Date:          f.Date,
		FromAccountID: f.FromAccountID,
		ToAccountID:   f.ToAccountID,
		Description:   f.Description,
		Refs:          refs,
		Total:         f.Total,
	}
}

// RefBalanceResponse is an open reference suggestion.
type RefBalanceResponse struct {
	RefID   string          `json:"ref_id"`
	Balance decimal.Decimal `json:"balance"`
}

// RefBalancesFromDomain converts reference balances to responses.
func RefBalancesFromDomain(refs []domain.RefBalance) []RefBalanceResponse {
	result := make([]RefBalanceResponse, len(refs))
	for i, r := range refs {
		result[i] = RefBalanceResponse{RefID: r.RefID, Balance: r.Balance}
	}
	return result
}

// ProfitLossResponse is the trading and profit & loss statement.
type ProfitLossResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Sales        decimal.Decimal `json:"sales"`
	Purchases    decimal.Decimal `json:"purchases"`
	Expenses     decimal.Decimal `json:"expenses"`
	OtherIncome  decimal.Decimal `json:"other_income"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	IncomeSide   decimal.Decimal `json:"income_side"`
	CostSide     decimal.Decimal `json:"cost_side"`
	IsProfit     bool            `json:"is_profit"`
}

// ProfitLossFromDomain converts a profit and loss statement to response.
func ProfitLossFromDomain(p *domain.ProfitLoss) *ProfitLossResponse {
	return &ProfitLossResponse{
		From:         p.Period.From,
		To:           p.Period.To,
		Sales:        p.Sales,
		Purchases:    p.Purchases,
		Expenses:     p.Expenses,
		OtherIncome:  p.OtherIncome,
		OpeningStock: p.OpeningStock,
		ClosingStock: p.ClosingStock,
		GrossProfit:  p.GrossProfit,
		NetProfit:    p.NetProfit,
		IncomeSide:   p.IncomeSide(),
		CostSide:     p.CostSide(),
		IsProfit:     p.IsProfit(),
	}
}

// BalanceGroupResponse is one group of the balance sheet with its total.
type BalanceGroupResponse struct {
	Accounts []AccountBalanceResponse `json:"accounts"`
	Total    decimal.Decimal          `json:"total"`
}

// AccountBalanceResponse is one account line of the balance sheet.
type AccountBalanceResponse struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetResponse is the balance sheet.
type BalanceSheetResponse struct {
	Capital      BalanceGroupResponse `json:"capital"`
	Creditors    BalanceGroupResponse `json:"creditors"`
	Debtors      BalanceGroupResponse `json:"debtors"`
	Cash         BalanceGroupResponse `json:"cash"`
	Bank         BalanceGroupResponse `json:"bank"`
	ClosingStock decimal.Decimal      `json:"closing_stock"`
	Liabilities  decimal.Decimal      `json:"liabilities"`
	Assets       decimal.Decimal      `json:"assets"`
}

// BalanceSheetFromDomain converts a balance sheet to response.
func BalanceSheetFromDomain(b *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Capital:      balanceGroup(b.Capital),
		Creditors:    balanceGroup(b.Creditors),
		Debtors:      balanceGroup(b.Debtors),
		Cash:         balanceGroup(b.Cash),
		Bank:         balanceGroup(b.Bank),
		ClosingStock: b.ClosingStock,
		Liabilities:  b.Liabilities(),
		Assets:       b.Assets(),
	}
}

func balanceGroup(lines []domain.AccountBalance) BalanceGroupResponse {
	accounts := make([]AccountBalanceResponse, len(lines))
	for i, l := range lines {
		accounts[i] = AccountBalanceResponse{AccountID: l.AccountID, AccountName: l.AccountName, Balance: l.Balance}
	}
	return BalanceGroupResponse{Accounts: accounts, Total: domain.SumBalances(lines)}
}

// StockLineResponse is one product row of the stock summary.
type StockLineResponse struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	BrandName        string          `json:"brand_name"`
	OpeningQty       decimal.Decimal `json:"opening_qty"`
	QtyIn            decimal.Decimal `json:"qty_in"`
	QtyOut           decimal.Decimal `json:"qty_out"`
	ClosingQty       decimal.Decimal `json:"closing_qty"`
	MinPrice         decimal.Decimal `json:"min_price"`
	AvgPurchasePrice decimal.Decimal `json:"avg_purchase_price"`
	AvgSalePrice     decimal.Decimal `json:"avg_sale_price"`
	ClosingValue     decimal.Decimal `json:"closing_value"`
}

// StockSummaryResponse is the stock summary with its total value.
type StockSummaryResponse struct {
	Lines      []StockLineResponse `json:"lines"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// StockSummaryFromDomain converts stock lines to response.
func StockSummaryFromDomain(lines []domain.StockLine) *StockSummaryResponse {
	out := make([]StockLineResponse, len(lines))
	for i, l := range lines {
		out[i] = StockLineResponse{
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
			BrandName:        l.BrandName,
			OpeningQty:       l.OpeningQty,
			QtyIn:            l.QtyIn,
			QtyOut:           l.QtyOut,
			ClosingQty:       l.ClosingQty,
			MinPrice:         l.MinPrice,
			AvgPurchasePrice: l.AvgPurchasePrice,
			AvgSalePrice:     l.AvgSalePrice,
			ClosingValue:     l.ClosingValue,
		}
	}
	return &StockSummaryResponse{Lines: out, TotalValue: domain.StockValue(lines)}
}

// StatementLineResponse is one posting of a statement.
type StatementLineResponse struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// BalanceColumnsResponse shows a balance in its debit or credit column.
type BalanceColumnsResponse struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// StatementResponse is an account statement.
type StatementResponse struct {
	AccountID      int64                   `json:"account_id"`
	From           time.Time               `json:"from"`
	To             time.Time               `json:"to"`
	Lines          []StatementLineResponse `json:"lines"`
	OpeningBalance BalanceColumnsResponse  `json:"opening_balance"`
	TotalDebit     decimal.Decimal         `json:"total_debit"`
	TotalCredit    decimal.Decimal         `json:"total_credit"`
	FinalBalance   BalanceColumnsResponse  `json:"final_balance"`
}

// StatementFromDomain converts a statement to response.
func StatementFromDomain(st *domain.Statement) *StatementResponse {
	lines := make([]StatementLineResponse, len(st.Lines))
	for i, l := range st.Lines {
		lines[i] = StatementLineResponse{Date: l.Date, Description: l.Description, Debit: l.Debit, Credit: l.Credit}
	}
	return &StatementResponse{
		AccountID:      st.AccountID,
		From:           st.Period.From,
		To:             st.Period.To,
		Lines:          lines,
		OpeningBalance: columns(st.Summary.OpeningBalance),
		TotalDebit:     st.Summary.TotalDebit,
		TotalCredit:    st.Summary.TotalCredit,
		FinalBalance:   columns(st.Summary.FinalBalance),
	}
}

func columns(balance decimal.Decimal) BalanceColumnsResponse {
	debit, credit := domain.Columns(balance)
	return BalanceColumnsResponse{Debit: debit, Credit: credit}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

// DateLayout is the layout of date fields in requests and query strings.
const DateLayout = "2006-01-02"

// AmountWordsRequest asks for the wording of an amount.
type AmountWordsRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
}

// ContactRequest carries customer contact details.
type ContactRequest struct {
	Tel         string `json:"tel"`
	Fax         string `json:"fax"`
	Email       string `json:"email" validate:"omitempty,email"`
	ContactName string `json:"contact_name"`
	Address     string `json:"address"`
	TRN         string `json:"trn"`
}

// AccountRequest creates or updates an account.
type AccountRequest struct {
	Name           string          `json:"name" validate:"required"`
	GroupID        int             `json:"group_id" validate:"required,gt=0"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Contact        *ContactRequest `json:"contact,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AccountRequest) ToUseCaseInput() usecase.AccountInput {
	input := usecase.AccountInput{
		Name:           r.Name,
		GroupID:        r.GroupID,
		OpeningBalance: r.OpeningBalance,
	}
	if r.Contact != nil {
		input.Contact = &domain.Contact{
			Tel:         r.Contact.Tel,
			Fax:         r.Contact.Fax,
			Email:       r.Contact.Email,
			ContactName: r.Contact.ContactName,
			Address:     r.Contact.Address,
			TRN:         r.Contact.TRN,
		}
	}
	return input
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	CategoryID   int64           `json:"category_id" validate:"gte=0"`
	BrandID      int64           `json:"brand_id" validate:"gte=0"`
	UnitID       int64           `json:"unit_id" validate:"gte=0"`
	OpeningQty   decimal.Decimal `json:"opening_qty"`
	OpeningPrice decimal.Decimal `json:"opening_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
}

// ToDomain converts to a domain product.
func (r *ProductRequest) ToDomain() domain.Product {
	return domain.Product{
		Name:         r.Name,
		CategoryID:   r.CategoryID,
		BrandID:      r.BrandID,
		UnitID:       r.UnitID,
		OpeningQty:   r.OpeningQty,
		OpeningPrice: r.OpeningPrice,
		SellPrice:    r.SellPrice,
	}
}

// MasterRequest creates a category, brand or unit.
type MasterRequest struct {
	Name string `json:"name" validate:"required"`
}

// LineRequest is one product row of a trade.
type LineRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// TradeRequest posts a purchase, sale or return.
type TradeRequest struct {
	Type      string        `json:"type" validate:"required,oneof=purchase sales purchase_return sales_return"`
	Date      string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID int64         `json:"account_id" validate:"required,gt=0"`
	Reference string        `json:"reference"`
	Lines     []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input. The quantity goes to QtyIn;
// the trade normalises it into the column of its type.
func (r *TradeRequest) ToUseCaseInput() (usecase.CreateTradeInput, error) {
	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return usecase.CreateTradeInput{}, err
	}

	lines := make([]domain.LineItem, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.LineItem{ProductID: l.ProductID, QtyIn: l.Quantity, Price: l.Price}
	}

	return usecase.CreateTradeInput{
		Type:      domain.TradeType(r.Type),
		Date:      date,
		AccountID: r.AccountID,
		Reference: r.Reference,
		Lines:     lines,
	}, nil
}

// RefRequest settles part of an open reference.
type RefRequest struct {
	RefID  string          `json:"ref_id"`
	Amount decimal.Decimal `json:"amount"`
}

// FundRequest posts a payment, receipt, transfer, deposit or withdrawal.
type FundRequest struct {
	Type          string          `json:"type" validate:"required,oneof=payment receipt transfer deposit withdrawal"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FromAccountID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   int64           `json:"to_account_id" validate:"required,gt=0"`
	Description   string          `json:"description"`
	Refs          []RefRequest    `json:"refs"`
	Total         decimal.Decimal `json:"total"`
}

// ToDomain converts to a domain fund transaction.
func (r *FundRequest) ToDomain() (domain.FundTransaction, error) {
	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return domain.FundTransaction{}, err
	}

	refs := make([]domain.RefRow, len(r.Refs))
	for i, ref := range r.Refs {
		refs[i] = domain.RefRow{RefID: ref.RefID, Amount: ref.Amount}
	}

	return domain.FundTransaction{
		Type:          domain.FundType(r.Type),
		Date:          date,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Description:   r.Description,
		Refs:          refs,
		Total:         r.Total,
	}, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

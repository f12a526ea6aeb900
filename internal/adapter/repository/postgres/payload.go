package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Procedure payloads are passed as JSON text. Keys follow the column names
// the stored procedures read.

type accountEntryPayload struct {
	AccountID int64       `json:"AccountID"`
	Debit     json.Number `json:"Debit"`
	Credit    json.Number `json:"Credit"`
}

type inventoryPayload struct {
	ProductID int64       `json:"Products_ID"`
	QtyIn     json.Number `json:"QtyIn"`
	QtyOut    json.Number `json:"QtyOut"`
	Price     json.Number `json:"Price"`
}

type refPayload struct {
	ID        int64       `json:"ID"`
	RefID     string      `json:"REFID"`
	AccountID int64       `json:"AccountID"`
	Debit     json.Number `json:"Debit"`
	Credit    json.Number `json:"Credit"`
}

type fundRefPayload struct {
	RefID  string      `json:"refid"`
	Amount json.Number `json:"amt"`
}

type inventoryRow struct {
	ProductName string          `json:"product_name"`
	QtyIn       decimal.Decimal `json:"qtyin"`
	QtyOut      decimal.Decimal `json:"qtyout"`
	Price       decimal.Decimal `json:"price"`
}

type profitLossRow struct {
	Sales        decimal.Decimal `json:"sales"`
	Purchases    decimal.Decimal `json:"purchases"`
	Expenses     decimal.Decimal `json:"expenses"`
	OtherIncome  decimal.Decimal `json:"other_income"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

type balanceRow struct {
	AccountID   int64           `json:"accountid"`
	AccountName string          `json:"accountname"`
	Balance     decimal.Decimal `json:"balance"`
}

type balanceSheetRow struct {
	Capital      []balanceRow    `json:"capital"`
	Creditors    []balanceRow    `json:"creditors"`
	Debtors      []balanceRow    `json:"debtors"`
	Cash         []balanceRow    `json:"cash"`
	Bank         []balanceRow    `json:"bank"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
}

// number renders d as a bare JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func marshalPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode procedure payload: %w", err)
	}
	return string(b), nil
}

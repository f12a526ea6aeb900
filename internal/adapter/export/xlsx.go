// Package export writes reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/tradebook/internal/domain"
)

// ContentType is the media type of the files written by this package.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "02/01/2006"

var (
	stockHeaders = []string{
		"Product ID", "Product", "Brand", "Opening Qty", "Qty In", "Qty Out",
		"Closing Qty", "Min Price", "Avg Purchase Price", "Avg Sale Price", "Closing Value",
	}
	statementHeaders = []string{"Date", "Description", "Debit", "Credit"}
)

// StockSummary writes the stock summary with a closing value total row.
func StockSummary(w io.Writer, lines []domain.StockLine) error {
	f, sheet, err := newWorkbook("Stock Summary", stockHeaders)
	if err != nil {
		return err
	}
	defer f.Close()

	row := 2
	for _, l := range lines {
		values := []any{
			l.ProductID, l.ProductName, l.BrandName,
			num(l.OpeningQty), num(l.QtyIn), num(l.QtyOut), num(l.ClosingQty),
			num(l.MinPrice), num(l.AvgPurchasePrice), num(l.AvgSalePrice), num(l.ClosingValue),
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	total := make([]any, len(stockHeaders))
	total[1] = "Total"
	total[len(total)-1] = num(domain.StockValue(lines))
	if err := setRow(f, sheet, row, total); err != nil {
		return err
	}

	return f.Write(w)
}

// Statement writes an account statement: opening balance, postings, and
// the closing balance in its debit or credit column.
func Statement(w io.Writer, st *domain.Statement) error {
	f, sheet, err := newWorkbook(fmt.Sprintf("Account %d", st.AccountID), statementHeaders)
	if err != nil {
		return err
	}
	defer f.Close()

	row := 2
	put := func(values ...any) error {
		err := setRow(f, sheet, row, values)
		row++
		return err
	}

	debit, credit := domain.Columns(st.Summary.OpeningBalance)
	if err := put(st.Period.From.Format(dateLayout), "Opening Balance", num(debit), num(credit)); err != nil {
		return err
	}

	for _, l := range st.Lines {
		if err := put(l.Date.Format(dateLayout), l.Description, num(l.Debit), num(l.Credit)); err != nil {
			return err
		}
	}

	if err := put("", "Total", num(st.Summary.TotalDebit), num(st.Summary.TotalCredit)); err != nil {
		return err
	}

	debit, credit = domain.Columns(st.Summary.FinalBalance)
	if err := put(st.Period.To.Format(dateLayout), "Closing Balance", num(debit), num(credit)); err != nil {
		return err
	}

	return f.Write(w)
}

func newWorkbook(sheet string, headers []string) (*excelize.File, string, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("drop default sheet: %w", err)
	}

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		f.Close()
		return nil, "", err
	}

	return f, sheet, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// num stores money and quantities as numeric cells.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

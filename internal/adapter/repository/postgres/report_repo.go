package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

const (
	procProfitLoss       = "get_profit_loss"
	procBalanceSheet     = "get_balance_sheet"
	procStockSummary     = "get_stock_summary"
	procStatementLines   = "find_by_act_id_range"
	procStatementSummary = "find_by_total_act_id_range"

	profitLossSQL   = `SELECT get_profit_loss($1, $2)`
	balanceSheetSQL = `SELECT get_balance_sheet()`

	stockSummarySQL = `SELECT product_id, prod_name, brand_name, op_balance, tot_qty_in,
	tot_qty_out, closing_qty, min_price, avg_purchase_price, avg_sale_price, closing_value
FROM get_stock_summary()`

	statementLinesSQL = `SELECT date, trsdescription, debit, credit
FROM find_by_act_id_range($1, $2, $3)`

	statementSummarySQL = `SELECT opening_balance, total_credit, total_debit, final_balance
FROM find_by_total_act_id_range($1, $2, $3)
LIMIT 1`
)

// ReportRepository implements usecase.ReportRepository on the reporting
// functions of the database.
type ReportRepository struct {
	db      querier
	retrier *Retrier
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db DB, retrier *Retrier) *ReportRepository {
	return &ReportRepository{db: db, retrier: retrier}
}

// ProfitLoss reads the trading and profit & loss figures for a period.
func (r *ReportRepository) ProfitLoss(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error) {
	var row profitLossRow
	if err := r.queryJSON(ctx, procProfitLoss, &row, profitLossSQL, period.From, period.To); err != nil {
		return nil, err
	}

	return &domain.ProfitLoss{
		Period:       period,
		Sales:        row.Sales,
		Purchases:    row.Purchases,
		Expenses:     row.Expenses,
		OtherIncome:  row.OtherIncome,
		OpeningStock: row.OpeningStock,
		ClosingStock: row.ClosingStock,
		GrossProfit:  row.GrossProfit,
		NetProfit:    row.NetProfit,
	}, nil
}

// BalanceSheet reads the balance sheet groups as of today.
func (r *ReportRepository) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	var row balanceSheetRow
	if err := r.queryJSON(ctx, procBalanceSheet, &row, balanceSheetSQL); err != nil {
		return nil, err
	}

	return &domain.BalanceSheet{
		Capital:      toBalances(row.Capital),
		Creditors:    toBalances(row.Creditors),
		Debtors:      toBalances(row.Debtors),
		Cash:         toBalances(row.Cash),
		Bank:         toBalances(row.Bank),
		ClosingStock: row.ClosingStock,
	}, nil
}

// StockSummary reads one line per product.
func (r *ReportRepository) StockSummary(ctx context.Context) ([]domain.StockLine, error) {
	var lines []domain.StockLine

	err := r.retrier.Call(ctx, procStockSummary, func() error {
		rows, err := r.db.Query(ctx, stockSummarySQL)
		if err != nil {
			return err
		}
		lines, err = pgx.CollectRows(rows, scanStockLine)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procStockSummary, err)
	}

	return lines, nil
}

// StatementLines reads the postings of an account within a period.
func (r *ReportRepository) StatementLines(ctx context.Context, accountID int64, period domain.DateRange) ([]domain.StatementLine, error) {
	var lines []domain.StatementLine

	err := r.retrier.Call(ctx, procStatementLines, func() error {
		rows, err := r.db.Query(ctx, statementLinesSQL, accountID, period.From, period.To)
		if err != nil {
			return err
		}
		lines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StatementLine, error) {
			var (
				l             domain.StatementLine
				debit, credit decimal.NullDecimal
			)
			err := row.Scan(&l.Date, &l.Description, &debit, &credit)
			l.Debit, l.Credit = nullDecimal(debit), nullDecimal(credit)
			return l, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procStatementLines, err)
	}

	return lines, nil
}

// StatementSummary reads the opening, totals and final balance of an
// account within a period. An account without postings yields zeros.
func (r *ReportRepository) StatementSummary(ctx context.Context, accountID int64, period domain.DateRange) (domain.StatementSummary, error) {
	var summary domain.StatementSummary

	err := r.retrier.Call(ctx, procStatementSummary, func() error {
		var opening, credit, debit, final decimal.NullDecimal

		err := r.db.QueryRow(ctx, statementSummarySQL, accountID, period.From, period.To).
			Scan(&opening, &credit, &debit, &final)
		if errors.Is(err, pgx.ErrNoRows) {
			summary = domain.StatementSummary{}
			return nil
		}
		if err != nil {
			return err
		}

		summary = domain.StatementSummary{
			OpeningBalance: nullDecimal(opening),
			TotalDebit:     nullDecimal(debit),
			TotalCredit:    nullDecimal(credit),
			FinalBalance:   nullDecimal(final),
		}
		return nil
	})
	if err != nil {
		return domain.StatementSummary{}, fmt.Errorf("%s: %w", procStatementSummary, err)
	}

	return summary, nil
}

// queryJSON runs a function returning a single json value and decodes it
// into dst.
func (r *ReportRepository) queryJSON(ctx context.Context, procedure string, dst any, sql string, args ...any) error {
	var raw []byte

	err := r.retrier.Call(ctx, procedure, func() error {
		return r.db.QueryRow(ctx, sql, args...).Scan(&raw)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", procedure, err)
	}

	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: decode result: %w", procedure, err)
	}
	return nil
}

func toBalances(rows []balanceRow) []domain.AccountBalance {
	out := make([]domain.AccountBalance, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AccountBalance{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			Balance:     row.Balance,
		})
	}
	return out
}

func scanStockLine(row pgx.CollectableRow) (domain.StockLine, error) {
	var (
		line  domain.StockLine
		brand pgtype.Text
		nums  [8]decimal.NullDecimal
	)

	err := row.Scan(
		&line.ProductID, &line.ProductName, &brand,
		&nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5], &nums[6], &nums[7],
	)
	if err != nil {
		return line, err
	}

	line.BrandName = brand.String
	line.OpeningQty = nullDecimal(nums[0])
	line.QtyIn = nullDecimal(nums[1])
	line.QtyOut = nullDecimal(nums[2])
	line.ClosingQty = nullDecimal(nums[3])
	line.MinPrice = nullDecimal(nums[4])
	line.AvgPurchasePrice = nullDecimal(nums[5])
	line.AvgSalePrice = nullDecimal(nums[6])
	line.ClosingValue = nullDecimal(nums[7])

	return line, nil
}

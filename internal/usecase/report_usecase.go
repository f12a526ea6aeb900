package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iho/tradebook/internal/domain"
)

// ReportUseCase reads the financial reports.
type ReportUseCase struct {
	reportRepo ReportRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(reportRepo ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// ProfitLoss returns the profit and loss statement for a period.
func (uc *ReportUseCase) ProfitLoss(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	pl, err := uc.reportRepo.ProfitLoss(ctx, period)
	if err != nil {
		return nil, err
	}
	pl.Period = period
	return pl, nil
}

// BalanceSheet returns the current balance sheet.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	return uc.reportRepo.BalanceSheet(ctx)
}

// StockSummary returns the stock summary, filtered by product or brand name.
func (uc *ReportUseCase) StockSummary(ctx context.Context, search string) ([]domain.StockLine, error) {
	lines, err := uc.reportRepo.StockSummary(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterStock(lines, search), nil
}

// Statement returns the postings and summary of an account for a period.
// Both are fetched concurrently.
func (uc *ReportUseCase) Statement(ctx context.Context, accountID int64, period domain.DateRange) (*domain.Statement, error) {
	if accountID <= 0 {
		return nil, domain.ErrMissingAccount
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	st := &domain.Statement{AccountID: accountID, Period: period}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lines, err := uc.reportRepo.StatementLines(gctx, accountID, period)
		st.Lines = lines
		return err
	})
	g.Go(func() error {
		summary, err := uc.reportRepo.StatementSummary(gctx, accountID, period)
		st.Summary = summary
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if st.Lines == nil {
		st.Lines = []domain.StatementLine{}
	}
	return st, nil
}

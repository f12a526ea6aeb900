package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/tradebook/internal/domain"
)

const (
	procInsertFund = "insertfundtrs"
	procRefDetails = "get_ref_details"

	insertFundSQL = `SELECT insertfundtrs($1, $2, $3, $4, $5, $6, $7)`
	refDetailsSQL = `SELECT refid, balance FROM get_ref_details($1, $2, $3)`
)

// FundRepository implements usecase.FundRepository.
type FundRepository struct {
	db      querier
	retrier *Retrier
}

// NewFundRepository creates a new FundRepository.
func NewFundRepository(db DB, retrier *Retrier) *FundRepository {
	return &FundRepository{db: db, retrier: retrier}
}

// Post records a fund transaction with insertfundtrs.
func (r *FundRepository) Post(ctx context.Context, fund *domain.FundTransaction) error {
	rows := make([]fundRefPayload, 0, len(fund.Refs))
	for _, ref := range fund.Refs {
		rows = append(rows, fundRefPayload{RefID: ref.RefID, Amount: number(ref.Amount)})
	}
	refs, err := marshalPayload(rows)
	if err != nil {
		return err
	}

	err = r.retrier.Call(ctx, procInsertFund, func() error {
		_, err := r.db.Exec(ctx, insertFundSQL,
			fund.Type.Code(),
			fund.Date,
			fund.FromAccountID,
			fund.ToAccountID,
			fund.Description,
			refs,
			fund.Total,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", procInsertFund, err)
	}
	return nil
}

// ReferenceBalances lists the open references of an account matching search.
func (r *FundRepository) ReferenceBalances(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error) {
	var refs []domain.RefBalance

	err := r.retrier.Call(ctx, procRefDetails, func() error {
		rows, err := r.db.Query(ctx, refDetailsSQL, accountID, currentRef, search)
		if err != nil {
			return err
		}

		refs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RefBalance, error) {
			var ref domain.RefBalance
			err := row.Scan(&ref.RefID, &ref.Balance)
			return ref, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procRefDetails, err)
	}

	return refs, nil
}

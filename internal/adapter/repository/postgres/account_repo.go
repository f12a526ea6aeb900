package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

const (
	insertAccountSQL = `INSERT INTO accounts (accountid, accountname, actgroupid, opbalance)
VALUES ($1, $2, $3, $4)`

	updateAccountSQL = `UPDATE accounts SET accountname = $2, actgroupid = $3, opbalance = $4
WHERE accountid = $1`

	upsertContactSQL = `INSERT INTO customer (accountid, tel, fax, email, contactname, address, trn)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (accountid) DO UPDATE SET
	tel = EXCLUDED.tel, fax = EXCLUDED.fax, email = EXCLUDED.email,
	contactname = EXCLUDED.contactname, address = EXCLUDED.address, trn = EXCLUDED.trn`

	deleteContactSQL = `DELETE FROM customer WHERE accountid = $1`

	selectAccountSQL = `SELECT a.accountid, a.accountname, a.actgroupid, a.opbalance,
	c.tel, c.fax, c.email, c.contactname, c.address, c.trn
FROM accounts a
LEFT JOIN customer c ON c.accountid = a.accountid`

	getAccountSQL   = selectAccountSQL + ` WHERE a.accountid = $1`
	listAccountsSQL = selectAccountSQL + ` WHERE ($1 = 0 OR a.actgroupid = $1) ORDER BY a.accountid`

	listGroupsSQL = `SELECT actgroupid, actgroupname FROM actgroup ORDER BY actgroupid`
)

// AccountRepository implements usecase.AccountRepository on the accounts,
// customer and actgroup tables.
type AccountRepository struct {
	db querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateTx inserts the account and, for customers, its contact row.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, insertAccountSQL,
		account.ID, account.Name, account.GroupID, account.OpeningBalance,
	); err != nil {
		return err
	}

	if account.Contact == nil {
		return nil
	}
	return upsertContact(ctx, pgxTx, account.ID, account.Contact)
}

// UpdateTx rewrites the account and keeps the contact row in step with the
// group: customers get an upserted row, everyone else loses theirs.
func (r *AccountRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateAccountSQL,
		account.ID, account.Name, account.GroupID, account.OpeningBalance,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	if account.Contact == nil {
		_, err = pgxTx.Exec(ctx, deleteContactSQL, account.ID)
		return err
	}
	return upsertContact(ctx, pgxTx, account.ID, account.Contact)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	rows, err := r.db.Query(ctx, getAccountSQL, id)
	if err != nil {
		return nil, err
	}

	account, err := pgx.CollectExactlyOneRow(rows, scanAccount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// List lists accounts of a group ordered by id; groupID 0 lists all.
func (r *AccountRepository) List(ctx context.Context, groupID int) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, listAccountsSQL, groupID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanAccount)
}

// ListGroups lists the account groups.
func (r *AccountRepository) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	rows, err := r.db.Query(ctx, listGroupsSQL)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountGroup, error) {
		var g domain.AccountGroup
		err := row.Scan(&g.ID, &g.Name)
		return g, err
	})
}

func upsertContact(ctx context.Context, q querier, accountID int64, c *domain.Contact) error {
	_, err := q.Exec(ctx, upsertContactSQL,
		accountID, c.Tel, c.Fax, c.Email, c.ContactName, c.Address, c.TRN,
	)
	return err
}

func scanAccount(row pgx.CollectableRow) (*domain.Account, error) {
	var account domain.Account
	var opening decimal.NullDecimal
	var tel, fax, email, contactName, address, trn pgtype.Text

	if err := row.Scan(
		&account.ID, &account.Name, &account.GroupID, &opening,
		&tel, &fax, &email, &contactName, &address, &trn,
	); err != nil {
		return nil, err
	}

	account.OpeningBalance = nullDecimal(opening)

	// The join yields NULL contact columns for accounts without a customer row.
	if tel.Valid || fax.Valid || email.Valid || contactName.Valid || address.Valid || trn.Valid {
		account.Contact = &domain.Contact{
			Tel:         tel.String,
			Fax:         fax.String,
			Email:       email.String,
			ContactName: contactName.String,
			Address:     address.String,
			TRN:         trn.String,
		}
	}

	return &account, nil
}

func nullDecimal(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

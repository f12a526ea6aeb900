package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/tradebook/internal/domain"
)

// MasterRepository implements usecase.MasterRepository over the category,
// brands and units tables.
type MasterRepository struct {
	db querier
}

// NewMasterRepository creates a new MasterRepository.
func NewMasterRepository(db DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// List returns every entry of a master table ordered by name.
func (r *MasterRepository) List(ctx context.Context, kind domain.MasterKind) ([]domain.Master, error) {
	table, idColumn, nameColumn, err := kind.Table()
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		pgx.Identifier{idColumn}.Sanitize(),
		pgx.Identifier{nameColumn}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{nameColumn}.Sanitize(),
	)

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Master, error) {
		m := domain.Master{Kind: kind}
		err := row.Scan(&m.ID, &m.Name)
		return m, err
	})
}

// Create inserts a master entry.
func (r *MasterRepository) Create(ctx context.Context, m *domain.Master) error {
	table, idColumn, nameColumn, err := m.Kind.Table()
	if err != nil {
		return err
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{idColumn}.Sanitize(),
		pgx.Identifier{nameColumn}.Sanitize(),
	)

	_, err = r.db.Exec(ctx, sql, m.ID, m.Name)
	return err
}

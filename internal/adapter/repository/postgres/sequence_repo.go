package postgres

import (
	"context"
	"fmt"
)

// SequenceRepository implements usecase.SequenceRepository with the
// get_next_id database function.
type SequenceRepository struct {
	db querier
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(db DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextID returns the next free id of table.column.
func (r *SequenceRepository) NextID(ctx context.Context, table, column string) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `SELECT get_next_id($1, $2)`, table, column).Scan(&id); err != nil {
		return 0, fmt.Errorf("next id for %s.%s: %w", table, column, err)
	}
	return id, nil
}

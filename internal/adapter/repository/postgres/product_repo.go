package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
)

const (
	productColumns = `id, prodname, categoryid, brandid, unitid, opbalance, opprice, sellprice`

	insertProductSQL = `INSERT INTO products (` + productColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateProductSQL = `UPDATE products SET prodname = $2, categoryid = $3, brandid = $4,
	unitid = $5, opbalance = $6, opprice = $7, sellprice = $8
WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`

	getProductSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	searchProductsSQL = `SELECT ` + productColumns + ` FROM products
WHERE prodname ILIKE $1
ORDER BY prodname
LIMIT $2`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	db querier
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.Exec(ctx, insertProductSQL, productArgs(p)...)
	return err
}

// Update rewrites a product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.db.Exec(ctx, updateProductSQL, productArgs(p)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	rows, err := r.db.Query(ctx, getProductSQL, id)
	if err != nil {
		return nil, err
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Search returns products whose name contains term, case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, searchProductsSQL, "%"+likeEscaper.Replace(term)+"%", limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanProduct)
}

func productArgs(p *domain.Product) []any {
	return []any{
		p.ID, p.Name, p.CategoryID, p.BrandID, p.UnitID,
		p.OpeningQty, p.OpeningPrice, p.SellPrice,
	}
}

func scanProduct(row pgx.CollectableRow) (*domain.Product, error) {
	var p domain.Product
	var opQty, opPrice, sellPrice decimal.NullDecimal

	if err := row.Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.BrandID, &p.UnitID,
		&opQty, &opPrice, &sellPrice,
	); err != nil {
		return nil, err
	}

	p.OpeningQty = nullDecimal(opQty)
	p.OpeningPrice = nullDecimal(opPrice)
	p.SellPrice = nullDecimal(sellPrice)

	return &p, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/iho/tradebook/internal/domain"
)

// ProductUseCase handles products and their master lists.
type ProductUseCase struct {
	productRepo ProductRepository
	masterRepo  MasterRepository
	sequences   SequenceRepository
	lookups     *LookupCache
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, masterRepo MasterRepository, sequences SequenceRepository, lookups *LookupCache) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		masterRepo:  masterRepo,
		sequences:   sequences,
		lookups:     lookups,
	}
}

// CreateProduct assigns the next product id and stores the product.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	id, err := uc.sequences.NextID(ctx, productsTable, productIDColumn)
	if err != nil {
		return nil, fmt.Errorf("next product id: %w", err)
	}
	product.ID = id

	if err := uc.productRepo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct rewrites an existing product.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	product.ID = id
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return uc.productRepo.Delete(ctx, id)
}

// GetProduct retrieves a product by id.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// SearchProducts finds products whose name contains term, ignoring case.
func (uc *ProductUseCase) SearchProducts(ctx context.Context, term string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return uc.productRepo.Search(ctx, strings.TrimSpace(term), limit)
}

// ListMasters returns all categories, brands or units.
func (uc *ProductUseCase) ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.Master, error) {
	if _, _, _, err := kind.Table(); err != nil {
		return nil, err
	}
	return readThrough(ctx, uc.lookups, lookupKeyMaster+string(kind), func(ctx context.Context) ([]domain.Master, error) {
		return uc.masterRepo.List(ctx, kind)
	})
}

// CreateMaster adds a category, brand or unit and drops the cached list.
func (uc *ProductUseCase) CreateMaster(ctx context.Context, kind domain.MasterKind, name string) (*domain.Master, error) {
	master := &domain.Master{Kind: kind, Name: name}
	if err := master.Validate(); err != nil {
		return nil, err
	}

	table, idColumn, _, err := kind.Table()
	if err != nil {
		return nil, err
	}
	id, err := uc.sequences.NextID(ctx, table, idColumn)
	if err != nil {
		return nil, fmt.Errorf("next %s id: %w", kind, err)
	}
	master.ID = id

	if err := uc.masterRepo.Create(ctx, master); err != nil {
		return nil, err
	}

	uc.lookups.Invalidate(ctx, lookupKeyMaster+string(kind))
	return master, nil
}

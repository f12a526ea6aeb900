package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]*domain.Product, error)
	ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.Master, error)
	CreateMaster(ctx context.Context, kind domain.MasterKind, name string) (*domain.Master, error)
}

// ProductHandler handles product and master data requests.
type ProductHandler struct {
	productUC ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create creates a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create product", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Update replaces a product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", err.Error())
		return
	}

	var req dto.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), id, req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// Delete removes a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", err.Error())
		return
	}

	if err := h.productUC.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete product", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", err.Error())
		return
	}

	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// Search finds products by name.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)

	products, err := h.productUC.SearchProducts(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductsFromDomain(products))
}

// ListMasters lists the categories, brands or units.
func (h *ProductHandler) ListMasters(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseMasterKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown master kind", err.Error())
		return
	}

	masters, err := h.productUC.ListMasters(r.Context(), kind)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list masters", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MastersFromDomain(masters))
}

// CreateMaster adds a category, brand or unit.
func (h *ProductHandler) CreateMaster(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseMasterKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown master kind", err.Error())
		return
	}

	var req dto.MasterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	master, err := h.productUC.CreateMaster(r.Context(), kind, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create master", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MastersFromDomain([]domain.Master{*master})[0])
}

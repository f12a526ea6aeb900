package handler

import (
	"context"
	"net/http"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
)

// FundService defines the behavior needed by FundHandler.
type FundService interface {
	CreateFundTransaction(ctx context.Context, fund domain.FundTransaction) (*domain.FundTransaction, error)
	ReferenceSuggestions(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error)
}

// FundHandler handles money movements between accounts.
type FundHandler struct {
	fundUC FundService
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundUC FundService) *FundHandler {
	return &FundHandler{fundUC: fundUC}
}

// Create posts a fund transaction.
func (h *FundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fund, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	posted, err := h.fundUC.CreateFundTransaction(r.Context(), fund)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create fund transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FundFromDomain(posted))
}

// References suggests open references of an account with their balances.
func (h *FundHandler) References(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseInt64Query(r, "account")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account", err.Error())
		return
	}

	q := r.URL.Query()
	refs, err := h.fundUC.ReferenceSuggestions(r.Context(), accountID, q.Get("ref"), q.Get("q"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to look up references", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RefBalancesFromDomain(refs))
}

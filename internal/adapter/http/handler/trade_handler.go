package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

// TradeService defines the behavior needed by TradeHandler.
type TradeService interface {
	CreateTrade(ctx context.Context, input usecase.CreateTradeInput) (*domain.Trade, error)
	ListTrades(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error)
	Invoice(ctx context.Context, tradeType domain.TradeType, accountID, tradeID int64) (*domain.Invoice, error)
}

// TradeHandler handles purchases, sales, returns and their invoices.
type TradeHandler struct {
	tradeUC TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeUC TradeService) *TradeHandler {
	return &TradeHandler{tradeUC: tradeUC}
}

// Create posts a trade.
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	trade, err := h.tradeUC.CreateTrade(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create trade", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TradeFromDomain(trade))
}

// List lists the trades of one type for an account.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	tradeType, accountID, ok := tradeQuery(w, r)
	if !ok {
		return
	}

	trades, err := h.tradeUC.ListTrades(r.Context(), tradeType, accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list trades", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TradesFromDomain(trades))
}

// Invoice returns the tax invoice of a trade, as JSON or, with
// ?format=text, as the printable text rendition.
func (h *TradeHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	tradeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade ID", err.Error())
		return
	}
	tradeType, accountID, ok := tradeQuery(w, r)
	if !ok {
		return
	}

	inv, err := h.tradeUC.Invoice(r.Context(), tradeType, accountID, tradeID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build invoice", err.Error())
		return
	}

	if r.URL.Query().Get("format") != "text" {
		writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(inv))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := inv.RenderText(w); err != nil {
		log.Error().Err(err).Int64("trade_id", tradeID).Msg("failed to write invoice")
	}
}

func tradeQuery(w http.ResponseWriter, r *http.Request) (domain.TradeType, int64, bool) {
	tradeType, err := domain.ParseTradeType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade type", err.Error())
		return "", 0, false
	}
	accountID, err := parseInt64Query(r, "account")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account", err.Error())
		return "", 0, false
	}
	return tradeType, accountID, true
}

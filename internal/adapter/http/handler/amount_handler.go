package handler

import (
	"net/http"
	"strconv"

	"github.com/iho/tradebook/internal/adapter/http/dto"
)

// AmountService converts amounts to words.
type AmountService interface {
	InWords(amount float64) string
}

// AmountHandler serves the amount-to-words conversion.
type AmountHandler struct {
	amountUC AmountService
}

// NewAmountHandler creates a new AmountHandler.
func NewAmountHandler(amountUC AmountService) *AmountHandler {
	return &AmountHandler{amountUC: amountUC}
}

// Get converts the amount given in the query string.
func (h *AmountHandler) Get(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}
	h.respond(w, amount)
}

// Convert converts the amount given in the request body.
func (h *AmountHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountWordsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.respond(w, *req.Amount)
}

func (h *AmountHandler) respond(w http.ResponseWriter, amount float64) {
	words := h.amountUC.InWords(amount)
	if words == "" {
		writeError(w, http.StatusUnprocessableEntity, "amount cannot be expressed in words", "amount must be finite, non-negative and within range")
		return
	}

	writeJSON(w, http.StatusOK, dto.AmountWordsResponse{Amount: amount, Words: words})
}

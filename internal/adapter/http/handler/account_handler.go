package handler

import (
	"context"
	"net/http"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.AccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, input usecase.AccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, groupID int) ([]*domain.Account, error)
	ListGroups(ctx context.Context) ([]domain.AccountGroup, error)
	EligibleAccounts(ctx context.Context, input usecase.EligibilityInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Update replaces an account's name, group, opening balance and contact.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.AccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, optionally restricted to one group.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID := parseIntQuery(r, "group", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Groups lists the account groups.
func (h *AccountHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.accountUC.ListGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list account groups", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupsFromDomain(groups))
}

// Eligible lists the accounts allowed on one side of a trade or fund form.
func (h *AccountHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.EligibilityInput{Side: domain.Side(q.Get("side"))}

	var err error
	switch {
	case q.Get("trade_type") != "":
		input.TradeType, err = domain.ParseTradeType(q.Get("trade_type"))
	case q.Get("fund_type") != "":
		input.FundType, err = domain.ParseFundType(q.Get("fund_type"))
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form type", err.Error())
		return
	}

	accounts, err := h.accountUC.EligibleAccounts(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list eligible accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

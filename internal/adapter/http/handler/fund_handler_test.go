package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
)

type fundServiceStub struct {
	createFn     func(ctx context.Context, fund domain.FundTransaction) (*domain.FundTransaction, error)
	referencesFn func(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error)
}

func (s *fundServiceStub) CreateFundTransaction(ctx context.Context, fund domain.FundTransaction) (*domain.FundTransaction, error) {
	return s.createFn(ctx, fund)
}

func (s *fundServiceStub) ReferenceSuggestions(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error) {
	return s.referencesFn(ctx, accountID, currentRef, search)
}

func TestFundHandler_Create(t *testing.T) {
	handler := NewFundHandler(&fundServiceStub{
		createFn: func(ctx context.Context, fund domain.FundTransaction) (*domain.FundTransaction, error) {
			if fund.Type == domain.FundTransfer && fund.FromAccountID == fund.ToAccountID {
				return nil, domain.ErrSameAccount
			}
			fund.Normalize()
			return &fund, nil
		},
	})

	body := `{"type":"receipt","date":"2025-01-31","from_account_id":1,"to_account_id":10,
		"refs":[{"ref_id":"INV-1","amount":"300"},{"ref_id":"INV-2","amount":"45.5"}]}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/funds", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.FundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("345.5")), "total %s", resp.Total)
	assert.Len(t, resp.Refs, 2)

	rec = httptest.NewRecorder()
	body = `{"type":"transfer","from_account_id":10,"to_account_id":10,"total":"5"}`
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/funds", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	body = `{"type":"loan","from_account_id":1,"to_account_id":2}`
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/funds", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFundHandler_References(t *testing.T) {
	handler := NewFundHandler(&fundServiceStub{
		referencesFn: func(ctx context.Context, accountID int64, currentRef, search string) ([]domain.RefBalance, error) {
			assert.Equal(t, int64(10), accountID)
			assert.Equal(t, "INV-3", currentRef)
			assert.Equal(t, "INV", search)
			return []domain.RefBalance{{RefID: "INV-1", Balance: decimal.NewFromInt(300)}}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.References(rec, httptest.NewRequest(http.MethodGet, "/funds/references?account=10&ref=INV-3&q=INV", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.RefBalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "INV-1", resp[0].RefID)

	rec = httptest.NewRecorder()
	handler.References(rec, httptest.NewRequest(http.MethodGet, "/funds/references?q=INV", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

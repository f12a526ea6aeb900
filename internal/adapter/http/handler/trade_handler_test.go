package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/usecase"
)

type tradeServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreateTradeInput) (*domain.Trade, error)
	listFn    func(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error)
	invoiceFn func(ctx context.Context, tradeType domain.TradeType, accountID, tradeID int64) (*domain.Invoice, error)
}

func (s *tradeServiceStub) CreateTrade(ctx context.Context, input usecase.CreateTradeInput) (*domain.Trade, error) {
	return s.createFn(ctx, input)
}

func (s *tradeServiceStub) ListTrades(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error) {
	return s.listFn(ctx, tradeType, accountID)
}

func (s *tradeServiceStub) Invoice(ctx context.Context, tradeType domain.TradeType, accountID, tradeID int64) (*domain.Invoice, error) {
	return s.invoiceFn(ctx, tradeType, accountID, tradeID)
}

func sampleInvoice() *domain.Invoice {
	trade := &domain.Trade{
		ID:   2,
		Type: domain.TradeSales,
		Date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		Lines: []domain.LineItem{
			{ProductName: "Steel Pipe", QtyOut: decimal.NewFromInt(10), Price: decimal.NewFromInt(100)},
		},
	}
	party := &domain.Account{ID: 10, Name: "Gulf Traders"}
	return domain.BuildInvoice(trade, party, domain.Company{Name: "Example Trading LLC"}, domain.DefaultVATRate, "AED")
}

func TestTradeHandler_Create(t *testing.T) {
	var captured usecase.CreateTradeInput
	handler := NewTradeHandler(&tradeServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTradeInput) (*domain.Trade, error) {
			captured = input
			trade, err := domain.NewTrade(input.Type, input.Date, input.AccountID, input.Reference, input.Lines)
			if err != nil {
				return nil, err
			}
			trade.ID = 77
			return trade, nil
		},
	})

	body := `{"type":"sales","date":"2025-03-01","account_id":10,"reference":"INV-9",
		"lines":[{"product_id":5,"quantity":"3","price":"20"}]}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/trades", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, domain.TradeSales, captured.Type)
	assert.Equal(t, "INV-9", captured.Reference)

	var resp dto.TradeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "Sales - INV-9", resp.Description)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(60)))
}

func TestTradeHandler_Create_Errors(t *testing.T) {
	handler := NewTradeHandler(&tradeServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTradeInput) (*domain.Trade, error) {
			return nil, domain.ErrAccountNotEligible
		},
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"no lines", `{"type":"sales","account_id":10,"lines":[]}`, http.StatusBadRequest},
		{"bad type", `{"type":"gift","account_id":10,"lines":[{"product_id":1}]}`, http.StatusBadRequest},
		{"bad date", `{"type":"sales","date":"01/03/2025","account_id":10,"lines":[{"product_id":1}]}`, http.StatusBadRequest},
		{"party not eligible", `{"type":"sales","account_id":11,"lines":[{"product_id":1,"quantity":1,"price":1}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Create(rec, httptest.NewRequest(http.MethodPost, "/trades", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestTradeHandler_List(t *testing.T) {
	handler := NewTradeHandler(&tradeServiceStub{
		listFn: func(ctx context.Context, tradeType domain.TradeType, accountID int64) ([]*domain.Trade, error) {
			assert.Equal(t, domain.TradePurchase, tradeType)
			assert.Equal(t, int64(11), accountID)
			return []*domain.Trade{{ID: 1, Type: tradeType}}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/trades?type=1&account=11", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.TradeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)

	rec = httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/trades?type=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeHandler_Invoice(t *testing.T) {
	handler := NewTradeHandler(&tradeServiceStub{
		invoiceFn: func(ctx context.Context, tradeType domain.TradeType, accountID, tradeID int64) (*domain.Invoice, error) {
			if tradeID != 2 {
				return nil, domain.ErrTradeNotFound
			}
			return sampleInvoice(), nil
		},
	})

	newRequest := func(id, query string) *http.Request {
		return setChiURLParam(httptest.NewRequest(http.MethodGet, "/trades/"+id+"/invoice?"+query, nil), "id", id)
	}

	rec := httptest.NewRecorder()
	handler.Invoice(rec, newRequest("2", "type=sales&account=10"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Gulf Traders", resp.PartyName)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1050)), "total %s", resp.Total)
	assert.Equal(t, "AED ONE THOUSAND FIFTY ONLY", resp.AmountInWords)

	rec = httptest.NewRecorder()
	handler.Invoice(rec, newRequest("2", "type=sales&account=10&format=text"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "TAX INVOICE")
	assert.Contains(t, rec.Body.String(), "AED ONE THOUSAND FIFTY ONLY")

	rec = httptest.NewRecorder()
	handler.Invoice(rec, newRequest("3", "type=sales&account=10"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/usecase"
)

func TestAmountHandler_Get(t *testing.T) {
	handler := NewAmountHandler(usecase.NewAmountUseCase(nil))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantWords  string
	}{
		{"whole amount", "amount=1000", http.StatusOK, "One Thousand Only"},
		{"with fils", "amount=12.5", http.StatusOK, "Twelve and Fifty Fils Only"},
		{"negative", "amount=-1", http.StatusUnprocessableEntity, ""},
		{"not a number", "amount=ten", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Get(rec, httptest.NewRequest(http.MethodGet, "/amounts/words?"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantWords == "" {
				return
			}
			var resp dto.AmountWordsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantWords, resp.Words)
		})
	}
}

func TestAmountHandler_Convert(t *testing.T) {
	handler := NewAmountHandler(usecase.NewAmountUseCase(nil))

	rec := httptest.NewRecorder()
	handler.Convert(rec, httptest.NewRequest(http.MethodPost, "/amounts/words", bytes.NewBufferString(`{"amount":21}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AmountWordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Twenty One Only", resp.Words)

	rec = httptest.NewRecorder()
	handler.Convert(rec, httptest.NewRequest(http.MethodPost, "/amounts/words", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iho/tradebook/internal/adapter/export"
	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	ProfitLoss(ctx context.Context, period domain.DateRange) (*domain.ProfitLoss, error)
	BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error)
	StockSummary(ctx context.Context, search string) ([]domain.StockLine, error)
	Statement(ctx context.Context, accountID int64, period domain.DateRange) (*domain.Statement, error)
}

// ReportHandler serves the financial reports.
type ReportHandler struct {
	reportUC ReportService
	metrics  *metrics.Metrics
}

// NewReportHandler creates a new ReportHandler. m may be nil.
func NewReportHandler(reportUC ReportService, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, metrics: m}
}

// ProfitLoss returns the trading and profit & loss statement for ?from=&to=.
func (h *ReportHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	period, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	pl, err := h.reportUC.ProfitLoss(r.Context(), period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build profit and loss", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfitLossFromDomain(pl))
}

// BalanceSheet returns the balance sheet.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.reportUC.BalanceSheet(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// StockSummary returns the stock summary, optionally filtered by ?q= and
// exported with ?format=xlsx.
func (h *ReportHandler) StockSummary(w http.ResponseWriter, r *http.Request) {
	lines, err := h.reportUC.StockSummary(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build stock summary", err.Error())
		return
	}

	if wantsSpreadsheet(r) {
		h.writeSpreadsheet(w, "stock", "stock-summary.xlsx", func(out io.Writer) error {
			return export.StockSummary(out, lines)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.StockSummaryFromDomain(lines))
}

// Statement returns the statement of ?account= for ?from=&to=, exported
// with ?format=xlsx.
func (h *ReportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseInt64Query(r, "account")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account", err.Error())
		return
	}
	period, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	st, err := h.reportUC.Statement(r.Context(), accountID, period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build statement", err.Error())
		return
	}

	if wantsSpreadsheet(r) {
		filename := fmt.Sprintf("statement-%d.xlsx", accountID)
		h.writeSpreadsheet(w, "statement", filename, func(out io.Writer) error {
			return export.Statement(out, st)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(st))
}

func wantsSpreadsheet(r *http.Request) bool {
	return r.URL.Query().Get("format") == "xlsx"
}

func (h *ReportHandler) writeSpreadsheet(w http.ResponseWriter, report, filename string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export report", err.Error())
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("report", report).Msg("failed to send spreadsheet")
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsWritten.WithLabelValues(report).Inc()
	}
}

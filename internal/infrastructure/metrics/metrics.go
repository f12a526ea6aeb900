package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Document metrics
	AmountsConverted prometheus.Counter
	InvoicesRendered prometheus.Counter
	ExportsWritten   *prometheus.CounterVec

	// Posting metrics
	AccountsCreated  *prometheus.CounterVec
	TradesCreated    *prometheus.CounterVec
	FundTransactions *prometheus.CounterVec

	// Backend procedure metrics
	ProcedureCalls    *prometheus.CounterVec
	ProcedureDuration *prometheus.HistogramVec
	ProcedureRetries  *prometheus.CounterVec

	// Cache metrics
	LookupCache *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates the metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AmountsConverted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tradebook_amounts_converted_total",
			Help: "Total number of amounts converted to words",
		}),
		InvoicesRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "tradebook_invoices_rendered_total",
			Help: "Total number of invoices built",
		}),
		ExportsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_exports_written_total",
				Help: "Total number of spreadsheet exports by report",
			},
			[]string{"report"},
		),

		AccountsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_accounts_created_total",
				Help: "Total number of accounts created by group",
			},
			[]string{"group"},
		),
		TradesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_trades_created_total",
				Help: "Total number of trades posted by type",
			},
			[]string{"type"},
		),
		FundTransactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_fund_transactions_total",
				Help: "Total number of fund transactions posted by type",
			},
			[]string{"type"},
		),

		ProcedureCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_procedure_calls_total",
				Help: "Total backend procedure calls",
			},
			[]string{"procedure", "status"},
		),
		ProcedureDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradebook_procedure_duration_seconds",
				Help:    "Backend procedure call duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		ProcedureRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_procedure_retries_total",
				Help: "Total retried backend procedure calls",
			},
			[]string{"procedure"},
		),

		LookupCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebook_lookup_cache_total",
				Help: "Lookup cache reads by result",
			},
			[]string{"result"},
		),
	}
}

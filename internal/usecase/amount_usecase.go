package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/iho/tradebook/internal/domain"
	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

// AmountUseCase converts amounts to the wording printed on documents.
type AmountUseCase struct {
	metrics *metrics.Metrics
}

// NewAmountUseCase creates a new AmountUseCase. m may be nil.
func NewAmountUseCase(m *metrics.Metrics) *AmountUseCase {
	return &AmountUseCase{metrics: m}
}

// InWords spells out a float amount. Unrepresentable amounts yield "".
func (uc *AmountUseCase) InWords(amount float64) string {
	return uc.count(domain.AmountInWords(amount))
}

// DecimalInWords spells out a decimal amount.
func (uc *AmountUseCase) DecimalInWords(amount decimal.Decimal) string {
	return uc.count(domain.DecimalInWords(amount))
}

func (uc *AmountUseCase) count(words string) string {
	if uc.metrics != nil && words != "" {
		uc.metrics.AmountsConverted.Inc()
	}
	return words
}

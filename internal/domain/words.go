package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	zeroAmountPhrase = "Zero Dirhams Only"
	subUnitName      = "Fils"
	amountSuffix     = "Only"
)

var onesWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scaleWords covers every chunk of a uint64.
var scaleWords = [...]string{
	"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion", "Quintillion",
}

// MonetaryAmount is a non-negative amount split into whole units and
// hundredths (fils).
type MonetaryAmount struct {
	WholeUnits uint64
	SubUnits   uint8
}

// IsZero reports whether both parts are zero.
func (m MonetaryAmount) IsZero() bool {
	return m.WholeUnits == 0 && m.SubUnits == 0
}

// Words renders the amount as an English phrase, e.g.
// "One Thousand Two Hundred Thirty Four and Fifty Fils Only".
func (m MonetaryAmount) Words() string {
	if m.IsZero() {
		return zeroAmountPhrase
	}

	whole := integerWords(m.WholeUnits)
	if whole == "" {
		whole = "Zero"
	}

	var b strings.Builder
	b.WriteString(whole)
	if m.SubUnits > 0 {
		b.WriteString(" and ")
		b.WriteString(chunkWords(int(m.SubUnits)))
		b.WriteString(" ")
		b.WriteString(subUnitName)
	}
	b.WriteString(" ")
	b.WriteString(amountSuffix)

	return b.String()
}

// SplitAmount decomposes a plain base-10 representation ("1234.5") into
// whole units and sub-units. Fractional digits past the second are
// truncated, never rounded. Signs, exponents and anything that does not fit
// a uint64 are rejected.
func SplitAmount(canonical string) (MonetaryAmount, bool) {
	intPart, fracPart, _ := strings.Cut(canonical, ".")
	if intPart == "" || !allDigits(intPart) || !allDigits(fracPart) {
		return MonetaryAmount{}, false
	}

	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return MonetaryAmount{}, false
	}

	fracPart += "00"
	sub, _ := strconv.Atoi(fracPart[:2])

	return MonetaryAmount{WholeUnits: whole, SubUnits: uint8(sub)}, true
}

// AmountInWords converts a non-negative amount into its invoice phrase.
// NaN, infinities, negative values and values too large to represent
// produce an empty string.
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ""
	}
	if amount == 0 {
		amount = 0 // drop the sign of -0
	}

	m, ok := SplitAmount(strconv.FormatFloat(amount, 'f', -1, 64))
	if !ok {
		return ""
	}

	return m.Words()
}

// DecimalInWords is AmountInWords for decimal amounts.
func DecimalInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return ""
	}

	m, ok := SplitAmount(amount.String())
	if !ok {
		return ""
	}

	return m.Words()
}

func integerWords(n uint64) string {
	var groups []string
	for scale := 0; n > 0; scale++ {
		chunk := int(n % 1000)
		n /= 1000
		if chunk == 0 {
			continue
		}

		words := chunkWords(chunk)
		if scaleWords[scale] != "" {
			words += " " + scaleWords[scale]
		}
		groups = append([]string{words}, groups...)
	}

	return strings.Join(groups, " ")
}

// chunkWords spells out 0-999; zero yields "".
func chunkWords(n int) string {
	parts := make([]string, 0, 4)

	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}

	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, onesWords[n])
	default:
		parts = append(parts, tensWords[n/10])
		if n%10 != 0 {
			parts = append(parts, onesWords[n%10])
		}
	}

	return strings.Join(parts, " ")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency renders a decimal amount as a US-dollar string, e.g. "$1,234.56".
// Amounts are rounded half-up to two decimal places.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	negative := rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

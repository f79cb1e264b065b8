package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "zero", amount: "0", expected: "$0.00"},
		{name: "cents only", amount: "0.5", expected: "$0.50"},
		{name: "plain amount", amount: "38.39", expected: "$38.39"},
		{name: "thousands grouping", amount: "1234.56", expected: "$1,234.56"},
		{name: "millions grouping", amount: "1234567.89", expected: "$1,234,567.89"},
		{name: "rounds half up", amount: "9.995", expected: "$10.00"},
		{name: "negative", amount: "-42.5", expected: "-$42.50"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Currency(decimal.RequireFromString(test.amount))
			assert.EqualValues(t, test.expected, actual)
		})
	}
}

package etl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePriceString(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
	}{
		{raw: "$ 22.65", expected: 22.65},
		{raw: "23.88 GBP", expected: 23.88},
		{raw: "USD 22.00", expected: 22.0},
		{raw: "£14.00", expected: 14.0},
		{raw: "Â£51.77", expected: 51.77},
		{raw: "17.00", expected: 17.0},
		{raw: "  $20  ", expected: 20},
		{raw: "12.", expected: 12},
		{raw: "from 9.99 to 19.99", expected: 9.99},
		{raw: "no digits here", expected: 0},
		{raw: "", expected: 0},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizePriceString(test.raw), "raw %q", test.raw)
	}
}

func TestNormalizePriceNil(t *testing.T) {
	require.Equal(t, 0.0, NormalizePrice(nil))

	raw := "USD 22.00"
	require.Equal(t, 22.0, NormalizePrice(&raw))
}

func TestNormalizePriceNeverNegative(t *testing.T) {
	for _, raw := range []string{"-5.00", "price: -0.50 EUR", "−3"} {
		require.GreaterOrEqual(t, NormalizePriceString(raw), 0.0, "raw %q", raw)
	}
}

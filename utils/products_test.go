package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeProductKey(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "the requiem red", expected: "The Requiem Red"},
		{in: "THE REQUIEM RED", expected: "The Requiem Red"},
		{in: "  Olio \n", expected: "Olio"},
		{in: "set me free", expected: "Set Me Free"},
		{
			in:       "STARVING HEARTS (TRIANGULAR TRADE TRILOGY, #1)",
			expected: "Starving Hearts (Triangular Trade Trilogy, #1)",
		},
		{in: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeProductKey(test.in), "input %q", test.in)
	}
}

func TestNormalizeProductKeyIsStable(t *testing.T) {
	once := NormalizeProductKey("tipping the velvet")
	require.Equal(t, once, NormalizeProductKey(once))
}

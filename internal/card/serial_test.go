package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSerial(t *testing.T) {
	cases := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"1/99", "1/99", true},
		{"50/99", "/99", true},
		{"99/99", "99/99", true},
		{"/25", "/25", true},
		{"0/10", "/10", true},
		{"001/099", "1/99", true},
		{"099/199", "/199", true},
		{"12 / 99", "/99", true},
		{"#12/99 Gold", "/99", true},
		{"1 of 99", "1/99", true},
		{"7 OF 25", "/25", true},
		{"1of1", "1/1", true},
		{"of 10", "", false},
		{"5/0", "", false},
		{"/0", "", false},
		{"numbered", "", false},
		{"", "", false},
		{"none", "", false},
		{nil, "", false},
		{false, "", false},
		{99, "", false},
	}
	for _, tc := range cases {
		got, ok := FormatSerial(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %#v", tc.in)
		assert.Equal(t, tc.want, got, "input %#v", tc.in)
	}
}

func TestSerialDenominator(t *testing.T) {
	cases := map[string]string{
		"12/99":    "99",
		"1/99":     "99",
		"99/99":    "99",
		"/099":     "99",
		"99":       "99",
		"3 of 25":  "25",
		"12/99 RC": "",
		"abc":      "",
		"/0":       "",
		"0":        "",
		"":         "",
		"n/a":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SerialDenominator(in), "input %q", in)
	}
	assert.Equal(t, "", SerialDenominator(nil))
	assert.Equal(t, "", SerialDenominator(99))
}

func TestSerialDenominatorNeverReturnsNumerator(t *testing.T) {
	for _, in := range []string{"1/99", "99/99", "50/99", "1 of 99"} {
		assert.Equal(t, "99", SerialDenominator(in))
	}
}

package card

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	serialOfRe       = regexp.MustCompile(`(?i)(\d+)\s*of\s*(\d+)`)
	serialFractionRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	serialDenomRe    = regexp.MustCompile(`/\s*(\d+)`)
)

// FormatSerial renders a serial number the way eBay titles expect it:
// "1/99" and "99/99" keep the numerator, any other copy becomes "/99".
func FormatSerial(v any) (string, bool) {
	s := Normalize(v)
	if s == "" {
		return "", false
	}
	s = serialOfRe.ReplaceAllString(s, "$1/$2")

	if m := serialFractionRe.FindStringSubmatch(s); m != nil {
		first, err1 := strconv.Atoi(m[1])
		denom, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || denom <= 0 {
			return "", false
		}
		if first == 1 || first == denom {
			return strconv.Itoa(first) + "/" + strconv.Itoa(denom), true
		}
		return "/" + strconv.Itoa(denom), true
	}

	if m := serialDenomRe.FindStringSubmatch(s); m != nil {
		denom, err := strconv.Atoi(m[1])
		if err != nil || denom <= 0 {
			return "", false
		}
		return "/" + strconv.Itoa(denom), true
	}
	return "", false
}

// SerialDenominator returns the print run of a serial number without the
// slash ("12/99" -> "99"). A bare number is taken as the print run itself.
func SerialDenominator(v any) string {
	s := Normalize(v)
	if s == "" {
		return ""
	}
	s = serialOfRe.ReplaceAllString(s, "$1/$2")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	if !allDigits(s) {
		return ""
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

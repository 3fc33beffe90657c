package card

import "strings"

var blankWords = map[string]struct{}{
	"false": {},
	"no":    {},
	"none":  {},
	"n/a":   {},
	"na":    {},
}

// Normalize maps an optional card value to "" or a trimmed string. Only
// strings survive; numbers, lists and objects are never stringified here.
func Normalize(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, blank := blankWords[strings.ToLower(s)]; blank {
		return ""
	}
	return s
}

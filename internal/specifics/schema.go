package specifics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"card-listing/internal/card"
)

// Schema is the set of aspect names eBay defines for a category. Allowed
// values are not checked yet.
type Schema struct {
	names map[string]struct{}
}

func ParseSchema(raw []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Schema{}, fmt.Errorf("类目 schema 格式错误：%w", err)
	}
	return NewSchema(v), nil
}

// NewSchema accepts the decoded aspect list. Entries without a name are
// skipped; anything that is not a list yields an empty schema.
func NewSchema(v any) Schema {
	s := Schema{names: map[string]struct{}{}}
	list, ok := v.([]any)
	if !ok {
		return s
	}
	for _, it := range list {
		def, ok := it.(map[string]any)
		if !ok || !card.Truthy(def["name"]) {
			continue
		}
		name := card.Stringify(def["name"])
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprint(def["name"])
		}
		s.names[name] = struct{}{}
	}
	return s
}

func (s Schema) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s Schema) Len() int {
	return len(s.names)
}

// UnknownNames returns the sorted aspect names in item that the schema does
// not define. Callers keep those aspects; the list is for review only.
func UnknownNames(item ItemSpecifics, s Schema) []string {
	out := []string{}
	for k := range item {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

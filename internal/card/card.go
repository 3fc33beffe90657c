package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Card is one trading card record as supplied by the intake step. Keys are
// free-form; the engine reads the ones it knows and ignores the rest.
type Card map[string]any

func ParseFile(path string) (Card, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取卡片文件失败（%s）：%w", path, err)
	}
	c, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("卡片文件格式错误（%s）：%w", path, err)
	}
	return c, nil
}

// Decode reads a JSON object, keeping numbers as json.Number so that
// "year": 2023 round-trips as 2023 and stringifies without a decimal point.
func Decode(r io.Reader) (Card, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("顶层必须是 JSON 对象")
	}
	return Card(obj), nil
}

// Lookup returns the value of the first key present in c, even when that
// value is empty.
func (c Card) Lookup(keys ...string) any {
	for _, k := range keys {
		if v, ok := c[k]; ok {
			return v
		}
	}
	return nil
}

// First returns the first truthy value among keys.
func (c Card) First(keys ...string) any {
	for _, k := range keys {
		if v := c[k]; Truthy(v) {
			return v
		}
	}
	return nil
}

// Text is Lookup followed by Stringify and trimming.
func (c Card) Text(keys ...string) string {
	return strings.TrimSpace(Stringify(c.Lookup(keys...)))
}

func (c Card) PlayerName() string {
	first := strings.TrimSpace(Stringify(c.First("player_first", "player_first_name")))
	last := strings.TrimSpace(Stringify(c.First("player_last", "player_last_name")))
	return strings.TrimSpace(first + " " + last)
}

// Stringify renders strings and numbers. Booleans, lists, objects and nil
// render as "".
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// Truthy reports whether v counts as present when choosing between aliased
// keys: nil, false, "", zero numbers and empty collections do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// Collapse trims s and folds every whitespace run into one space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

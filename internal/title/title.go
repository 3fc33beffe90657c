package title

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"card-listing/internal/card"
)

// MaxLen is eBay's hard title limit.
const MaxLen = 80

type Group string

const (
	GroupInsert         Group = "insert"
	GroupParallel       Group = "parallel"
	GroupAutoPatch      Group = "auto_patch"
	GroupSerial         Group = "serial"
	GroupGradingCompany Group = "grading_company"
	GroupNumericalGrade Group = "numerical_grade"
	GroupTeamCity       Group = "team_city"
	GroupTeamName       Group = "team_name"
	GroupRookie         Group = "rookie"
)

// Rules fixes the token order and the order in which optional groups are
// sacrificed when the title runs over MaxLen.
type Rules struct {
	MaxLen       int
	Order        []Group
	DropPriority []Group
}

func DefaultRules() Rules {
	return Rules{
		MaxLen: MaxLen,
		Order: []Group{
			GroupInsert,
			GroupParallel,
			GroupAutoPatch,
			GroupSerial,
			GroupGradingCompany,
			GroupNumericalGrade,
			GroupTeamCity,
			GroupTeamName,
			GroupRookie,
		},
		DropPriority: []Group{
			GroupTeamCity,
			GroupTeamName,
			GroupNumericalGrade,
			GroupGradingCompany,
			GroupParallel,
			GroupInsert,
			GroupSerial,
			GroupAutoPatch,
			GroupRookie,
		},
	}
}

type Result struct {
	Title   string
	Dropped []Group
}

// OverflowError means the mandatory tokens alone do not fit. The title is
// never cut mid-word to make it fit.
type OverflowError struct {
	Title  string
	Length int
	Max    int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("删除全部可选字段后标题仍超过 %d 字符：%q（%d 字符）", e.Max, e.Title, e.Length)
}

var mandatoryKeys = [][]string{
	{"year"},
	{"brand"},
	{"set", "set_name"},
	{"player_first", "player_first_name"},
	{"player_last", "player_last_name"},
	{"card_number", "card_no"},
}

var groupKeys = map[Group][]string{
	GroupInsert:         {"insert", "insert_set"},
	GroupParallel:       {"parallel", "variety"},
	GroupAutoPatch:      {"auto_patch", "auto_patch_type"},
	GroupSerial:         {"serial", "serial_number"},
	GroupGradingCompany: {"grading_company", "grader"},
	GroupNumericalGrade: {"numerical_grade", "grade"},
	GroupTeamCity:       {"team_city"},
	GroupTeamName:       {"team_name", "team"},
	GroupRookie:         {"rookie", "rc"},
}

func Build(c card.Card, r Rules) (Result, error) {
	r = r.withDefaults()

	mandatory := make([]string, 0, len(mandatoryKeys))
	for _, keys := range mandatoryKeys {
		mandatory = append(mandatory, card.Collapse(c.Text(keys...)))
	}
	active := groupValues(c)

	dropped := []Group{}
	title := assemble(mandatory, r.Order, active)
	for _, g := range r.DropPriority {
		if runeLen(title) <= r.MaxLen {
			break
		}
		if active[g] == "" {
			continue
		}
		active[g] = ""
		dropped = append(dropped, g)
		title = assemble(mandatory, r.Order, active)
	}

	if n := runeLen(title); n > r.MaxLen {
		return Result{}, &OverflowError{Title: title, Length: n, Max: r.MaxLen}
	}
	return Result{Title: title, Dropped: dropped}, nil
}

func groupValues(c card.Card) map[Group]string {
	out := make(map[Group]string, len(groupKeys))
	for g, keys := range groupKeys {
		raw := c.Lookup(keys...)
		if g == GroupSerial {
			s, _ := card.FormatSerial(raw)
			out[g] = s
			continue
		}
		out[g] = card.Collapse(card.Normalize(raw))
	}
	return out
}

func assemble(mandatory []string, order []Group, active map[Group]string) string {
	tokens := make([]string, 0, len(mandatory)+len(order))
	tokens = append(tokens, mandatory...)
	for _, g := range order {
		if v := active[g]; v != "" {
			tokens = append(tokens, v)
		}
	}
	return card.Collapse(strings.Join(tokens, " "))
}

func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.MaxLen <= 0 {
		r.MaxLen = def.MaxLen
	}
	if len(r.Order) == 0 {
		r.Order = def.Order
	}
	if len(r.DropPriority) == 0 {
		r.DropPriority = def.DropPriority
	}
	return r
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

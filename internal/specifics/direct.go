package specifics

import (
	"sort"
	"strings"

	"card-listing/internal/card"
)

// PlayerNameSource stands for "first + last name" in an alias list.
const PlayerNameSource = "@player_name"

const (
	aspectFeatures = "Features"
	aspectParallel = "Parallel/Variety"
	aspectPrintRun = "Print Run"
	aspectInsert   = "Insert Set"
	aspectSport    = "Sport"
	aspectAuto     = "Autographed"
	aspectSignedBy = "Signed By"
	aspectAuthn    = "Autograph Authentication"
	aspectAuthnNum = "Autograph Authentication Number"
	aspectAutoFmt  = "Autograph Format"
)

type directField struct {
	Aspect  string
	Sources []string
}

// directFields lists, per aspect, the card keys tried left to right. The
// first truthy one wins.
var directFields = []directField{
	{"Player/Athlete", []string{"player_athlete", "Player/Athlete", PlayerNameSource}},
	{"Manufacturer", []string{"Manufacturer", "brand"}},
	{"Set", []string{"Set", "set", "set_name"}},
	{"Team", []string{"Team", "team_name", "team"}},
	{"Season", []string{"Season", "year"}},
	{"Year Manufactured", []string{"Year Manufactured", "year"}},
	{aspectParallel, []string{aspectParallel, "parallel"}},
	{aspectFeatures, []string{aspectFeatures}},
	{aspectInsert, []string{aspectInsert, "insert_set", "insert"}},
	{aspectAuto, []string{aspectAuto, "autographed"}},
	{"Professional Grader", []string{"Professional Grader", "grading_company", "grader"}},
	{"Grade", []string{"Grade", "grade", "numerical_grade"}},
	{aspectCardThickness, []string{aspectCardThickness}},
	{aspectEvent, []string{aspectEvent}},
	{aspectLeague, []string{aspectLeague}},
	{"Card Name", []string{"Card Name"}},
	{"Card Number", []string{"Card Number", "card_number"}},
	{aspectPrintRun, []string{aspectPrintRun}},
	{aspectSignedBy, []string{aspectSignedBy}},
	{aspectAuthn, []string{aspectAuthn}},
	{aspectAuthnNum, []string{aspectAuthnNum}},
	{aspectAutoFmt, []string{aspectAutoFmt}},
	{aspectProp65, []string{aspectProp65}},
	{aspectSport, []string{aspectSport, "sport"}},
	{"Type", []string{"Type"}},
}

// aliasTable merges the built-in alias lists with a direct_mapping override.
// Overridden aspects keep their position; new ones are appended sorted.
func aliasTable(override map[string][]string) []directField {
	out := make([]directField, 0, len(directFields)+len(override))
	seen := map[string]struct{}{}
	for _, f := range directFields {
		if keys, ok := override[f.Aspect]; ok {
			f = directField{Aspect: f.Aspect, Sources: keys}
		}
		seen[f.Aspect] = struct{}{}
		out = append(out, f)
	}
	extra := make([]string, 0)
	for aspect := range override {
		if _, ok := seen[aspect]; !ok {
			extra = append(extra, aspect)
		}
	}
	sort.Strings(extra)
	for _, aspect := range extra {
		out = append(out, directField{Aspect: aspect, Sources: override[aspect]})
	}
	return out
}

func resolveSources(c card.Card, sources []string) any {
	for _, src := range sources {
		var v any
		if src == PlayerNameSource {
			v = c.PlayerName()
		} else {
			v = c[src]
		}
		if card.Truthy(v) {
			return v
		}
	}
	return nil
}

func cleanFeatures(raw any) (any, bool) {
	switch t := raw.(type) {
	case []any:
		if len(t) == 0 {
			return nil, false
		}
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := strings.TrimSpace(card.Stringify(it)); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case []string:
		if len(t) == 0 {
			return nil, false
		}
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := strings.TrimSpace(it); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	default:
		return nil, false
	}
}

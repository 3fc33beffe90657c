package specifics

import (
	"fmt"
	"strings"

	"card-listing/internal/card"
)

// ItemSpecifics maps an eBay aspect name to a string or a list of strings.
// Values injected from configuration are passed through as decoded.
type ItemSpecifics map[string]any

// Input is what every layer reads. Layers never modify it.
type Input struct {
	Card     card.Card
	Defaults Defaults
	Rules    Rules
}

// Layer is one step of the derivation. Later layers overwrite earlier ones.
type Layer struct {
	Name  string
	Apply func(in Input, item ItemSpecifics) ItemSpecifics
}

func Layers() []Layer {
	return []Layer{
		{Name: "defaults", Apply: applyDefaults},
		{Name: "direct", Apply: applyDirect},
		{Name: "derive", Apply: applyDerive},
		{Name: "conditional", Apply: applyConditional},
		{Name: "autograph", Apply: applyAutograph},
		{Name: "fallback", Apply: applyFallback},
		{Name: "print_run", Apply: applyPrintRun},
		{Name: "insert_set", Apply: applyInsertSet},
	}
}

func Derive(c card.Card, defaults Defaults, rules Rules) ItemSpecifics {
	in := Input{Card: c, Defaults: defaults, Rules: rules}
	item := ItemSpecifics{}
	for _, l := range Layers() {
		item = l.Apply(in, item)
	}
	return item
}

func applyDefaults(in Input, item ItemSpecifics) ItemSpecifics {
	for k, v := range in.Defaults {
		item[k] = v
	}
	return item
}

func applyDirect(in Input, item ItemSpecifics) ItemSpecifics {
	for _, f := range aliasTable(in.Rules.DirectMapping) {
		raw := resolveSources(in.Card, f.Sources)
		if f.Aspect == aspectFeatures {
			if v, ok := cleanFeatures(raw); ok {
				item[f.Aspect] = v
			}
			continue
		}
		if f.Aspect == aspectAuto {
			if s := autographFlag(raw); s != "" {
				item[f.Aspect] = s
			}
			continue
		}
		if s := card.Normalize(raw); s != "" {
			item[f.Aspect] = s
		}
	}
	return item
}

// autographFlag keeps "No" as a real answer. The blank-word normalizer would
// erase it and the when_no rules could never fire.
func autographFlag(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true":
			return "Yes"
		case "no", "false":
			return "No"
		}
	}
	return card.Normalize(v)
}

var deriveSources = map[string]func(c card.Card) string{
	"player_name":   func(c card.Card) string { return c.PlayerName() },
	"card_number":   func(c card.Card) string { return strings.TrimSpace(card.Stringify(c["card_number"])) },
	"serial_number": func(c card.Card) string { return strings.TrimSpace(card.Stringify(c["serial_number"])) },
	"year":          func(c card.Card) string { return strings.TrimSpace(card.Stringify(c["year"])) },
}

var deriveTransforms = map[string]func(string) string{
	"strip_hash": stripHash,
	"serial_denominator_only_no_slash": func(s string) string {
		return card.SerialDenominator(s)
	},
}

func applyDerive(in Input, item ItemSpecifics) ItemSpecifics {
	for _, r := range in.Rules.DeriveAndEnforce {
		src, ok := deriveSources[r.From]
		if !ok {
			continue
		}
		val := src(in.Card)
		if xf, ok := deriveTransforms[r.Transform]; ok {
			val = xf(val)
		}
		if val = card.Normalize(val); val != "" {
			item[r.Target] = val
		}
	}
	return item
}

func stripHash(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return strings.TrimSpace(s[1:])
	}
	return s
}

func applyConditional(in Input, item ItemSpecifics) ItemSpecifics {
	ca := in.Rules.Conditional
	for _, aspect := range ca.Blank {
		item[aspect] = ""
	}

	if sport := currentString(item[aspectSport]); sport != "" {
		for _, aspect := range []string{aspectLeague, aspectEvent} {
			for _, r := range ca.BySport[aspect] {
				if when, _ := r.When[aspectSport].(string); when != sport {
					continue
				}
				if v := card.Normalize(r.Value); v != "" {
					item[aspect] = v
				}
				break
			}
		}
	}

	if ca.CardThickness != nil {
		if card.Normalize(item[aspectCardThickness]) == "" {
			if def := card.Normalize(ca.CardThickness.Default); def != "" {
				item[aspectCardThickness] = def
			}
		}
		// Memorabilia cards are thicker than any configured default.
		if strings.Contains(featuresText(item[aspectFeatures]), "Memorabilia") {
			item[aspectCardThickness] = ""
		}
	}
	return item
}

func applyAutograph(in Input, item ItemSpecifics) ItemSpecifics {
	ar := in.Rules.Autograph
	if ar == nil {
		return item
	}
	switch strings.ToLower(autographFlag(item[aspectAuto])) {
	case "no":
		for k, v := range ar.WhenNo {
			item[k] = v
		}
	case "yes":
		yes := ar.WhenYes
		if yes == nil {
			return item
		}
		if yes.SignedByFrom == "player_name" {
			item[aspectSignedBy] = in.Card.PlayerName()
		}
		if yes.HasAuthentication {
			item[aspectAuthn] = yes.Authentication
		}
		item[aspectAuthnNum] = ""
		current := card.Normalize(item[aspectAutoFmt])
		if current != "" && len(yes.AllowedFormats) > 0 && !contains(yes.AllowedFormats, current) {
			item[aspectAutoFmt] = ""
		}
	}
	return item
}

func applyFallback(in Input, item ItemSpecifics) ItemSpecifics {
	if pv := in.Rules.ParallelVariety; pv != nil && card.Normalize(item[aspectParallel]) == "" {
		if pv.Set {
			item[aspectParallel] = pv.Default
		} else {
			item[aspectParallel] = "[Base]"
		}
	}
	if fr := in.Rules.Features; fr != nil && !card.Truthy(item[aspectFeatures]) {
		if fr.Set {
			item[aspectFeatures] = fr.Default
		} else {
			item[aspectFeatures] = []string{"Base Set"}
		}
	}
	return item
}

// applyPrintRun always wins over typed values: print run is derived from the
// serial number, never hand-entered.
func applyPrintRun(in Input, item ItemSpecifics) ItemSpecifics {
	if denom := card.SerialDenominator(in.Card["serial_number"]); denom != "" {
		item[aspectPrintRun] = denom
	}
	return item
}

func applyInsertSet(in Input, item ItemSpecifics) ItemSpecifics {
	if ins := card.Normalize(in.Card.First("insert_set", "insert")); ins != "" {
		item[aspectInsert] = ins
	}
	return item
}

func currentString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func featuresText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, " ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			parts = append(parts, fmt.Sprint(it))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

package specifics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"card-listing/internal/card"
)

// Defaults are the category-wide aspect values injected before any card
// data is looked at.
type Defaults map[string]any

// Rules is the enforced-requirements document for one category. Every
// section is read on its own: a missing or malformed section only means that
// section has nothing to apply.
type Rules struct {
	DeriveAndEnforce []DeriveRule
	Conditional      ConditionalAspects
	Autograph        *AutographRules
	ParallelVariety  *FallbackRule
	Features         *FallbackRule
	DirectMapping    map[string][]string
}

type DeriveRule struct {
	Target    string
	From      string
	Transform string
}

type ConditionalAspects struct {
	// Blank lists aspects that must be sent as an explicit empty value.
	Blank []string
	// BySport holds the League and Event/Tournament tables keyed by aspect.
	BySport       map[string][]SportRule
	CardThickness *FallbackRule
}

type SportRule struct {
	When  map[string]any
	Value any
}

type AutographRules struct {
	WhenNo  map[string]any
	WhenYes *AutographYes
}

type AutographYes struct {
	SignedByFrom      string
	Authentication    any
	HasAuthentication bool
	// AllowedFormats is nil when no Autograph Format policy is configured.
	AllowedFormats []string
}

// FallbackRule carries an optional default. Set reports whether the default
// key was present at all.
type FallbackRule struct {
	Default any
	Set     bool
}

const (
	aspectProp65        = "California Prop 65 Warning"
	aspectLeague        = "League"
	aspectEvent         = "Event/Tournament"
	aspectCardThickness = "Card Thickness"
)

func ParseDefaults(raw []byte) (Defaults, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("全局默认值格式错误：%w", err)
	}
	return Defaults(obj), nil
}

func ParseRules(raw []byte) (Rules, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return Rules{}, fmt.Errorf("强制规则格式错误：%w", err)
	}
	return NewRules(obj), nil
}

func NewRules(doc map[string]any) Rules {
	return Rules{
		DeriveAndEnforce: parseDeriveRules(doc["derive_and_enforce"]),
		Conditional:      parseConditional(doc["conditional_aspects"]),
		Autograph:        parseAutograph(doc["autograph_rules"]),
		ParallelVariety:  parseFallback(doc["parallel_variety_rules"], "default"),
		Features:         parseFallback(doc["features_rules"], "default_if_none_detected"),
		DirectMapping:    parseDirectMapping(doc["direct_mapping"]),
	}
}

func parseDeriveRules(v any) []DeriveRule {
	section, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	targets := sortedKeys(section)
	out := make([]DeriveRule, 0, len(targets))
	for _, target := range targets {
		rule, ok := section[target].(map[string]any)
		if !ok {
			continue
		}
		from, _ := rule["from"].(string)
		transform, _ := rule["transform"].(string)
		out = append(out, DeriveRule{Target: target, From: from, Transform: transform})
	}
	return out
}

func parseConditional(v any) ConditionalAspects {
	out := ConditionalAspects{BySport: map[string][]SportRule{}}
	section, ok := v.(map[string]any)
	if !ok {
		return out
	}
	if _, ok := section[aspectProp65]; ok {
		out.Blank = append(out.Blank, aspectProp65)
	}
	for _, aspect := range []string{aspectLeague, aspectEvent} {
		entry, ok := section[aspect].(map[string]any)
		if !ok {
			continue
		}
		list, ok := entry["rules"].([]any)
		if !ok {
			continue
		}
		rules := make([]SportRule, 0, len(list))
		for _, item := range list {
			r, ok := item.(map[string]any)
			if !ok {
				continue
			}
			when, _ := r["when"].(map[string]any)
			rules = append(rules, SportRule{When: when, Value: r["value"]})
		}
		out.BySport[aspect] = rules
	}
	out.CardThickness = parseFallback(section[aspectCardThickness], "default")
	return out
}

func parseAutograph(v any) *AutographRules {
	section, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	block, ok := section["Autographed"].(map[string]any)
	if !ok {
		return nil
	}
	out := &AutographRules{}
	if whenNo, ok := block["when_no"].(map[string]any); ok {
		out.WhenNo = whenNo
	}

	rawYes, present := block["when_yes"]
	if !present {
		out.WhenYes = &AutographYes{}
		return out
	}
	whenYes, ok := rawYes.(map[string]any)
	if !ok {
		return out
	}
	yes := &AutographYes{}
	if sb, ok := whenYes["Signed By"].(map[string]any); ok {
		yes.SignedByFrom, _ = sb["from"].(string)
	}
	if aa, ok := whenYes["Autograph Authentication"].(map[string]any); ok {
		yes.Authentication, yes.HasAuthentication = aa["value"]
	}
	if af, ok := whenYes["Autograph Format"].(map[string]any); ok {
		allowed, _ := af["allowed_by_policy"].([]any)
		yes.AllowedFormats = make([]string, 0, len(allowed))
		for _, a := range allowed {
			if s, ok := a.(string); ok {
				yes.AllowedFormats = append(yes.AllowedFormats, s)
			}
		}
	}
	out.WhenYes = yes
	return out
}

func parseFallback(v any, key string) *FallbackRule {
	section, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	def, set := section[key]
	return &FallbackRule{Default: def, Set: set}
}

func parseDirectMapping(v any) map[string][]string {
	section, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := map[string][]string{}
	for field, raw := range section {
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(list))
		for _, k := range list {
			if s := card.Normalize(k); s != "" {
				keys = append(keys, s)
			}
		}
		if len(keys) > 0 {
			out[field] = keys
		}
	}
	return out
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("顶层必须是 JSON 对象")
	}
	return obj, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

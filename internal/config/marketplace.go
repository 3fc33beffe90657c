package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"card-listing/internal/specifics"
)

// Marketplace locates the eBay config files under one config_dir.
type Marketplace struct {
	Root       string
	CategoryID string
}

func (m Marketplace) ebayDir() string   { return filepath.Join(m.Root, "ebay") }
func (m Marketplace) schemaDir() string { return filepath.Join(m.ebayDir(), "schema") }

func (m Marketplace) SchemaIndexPath() string {
	return filepath.Join(m.schemaDir(), "index.json")
}

func (m Marketplace) GlobalDefaultsPath() string {
	return filepath.Join(m.schemaDir(), "global_defaults.json")
}

func (m Marketplace) EnforcedRulesPath() string {
	return filepath.Join(m.ebayDir(), "enforced_requirements", "cat_"+m.CategoryID+".json")
}

// SchemaPath prefers the file index.json lists for the category and falls
// back to cat_<id>.json.
func (m Marketplace) SchemaPath() string {
	fallback := filepath.Join(m.schemaDir(), "cat_"+m.CategoryID+".json")
	raw, err := os.ReadFile(m.SchemaIndexPath())
	if err != nil {
		return fallback
	}
	var idx SchemaIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return fallback
	}
	if entry, ok := idx.Categories[m.CategoryID]; ok && strings.TrimSpace(entry.File) != "" {
		return filepath.Join(m.schemaDir(), entry.File)
	}
	return fallback
}

type SchemaIndex struct {
	Categories map[string]SchemaIndexEntry `json:"categories"`
}

type SchemaIndexEntry struct {
	File string `json:"file"`
}

// Bundle is everything the engine needs for one category, loaded once.
type Bundle struct {
	CategoryID   string
	Schema       specifics.Schema
	Defaults     specifics.Defaults
	Rules        specifics.Rules
	SchemaPath   string
	DefaultsPath string
	RulesPath    string
}

func LoadBundle(m Marketplace) (*Bundle, error) {
	b := &Bundle{
		CategoryID:   m.CategoryID,
		SchemaPath:   m.SchemaPath(),
		DefaultsPath: m.GlobalDefaultsPath(),
		RulesPath:    m.EnforcedRulesPath(),
	}

	raw, err := ReadRequired(b.SchemaPath)
	if err != nil {
		return nil, err
	}
	if b.Schema, err = specifics.ParseSchema(raw); err != nil {
		return nil, fmt.Errorf("%s：%w", b.SchemaPath, err)
	}

	if raw, err = ReadRequired(b.DefaultsPath); err != nil {
		return nil, err
	}
	if b.Defaults, err = specifics.ParseDefaults(raw); err != nil {
		return nil, fmt.Errorf("%s：%w", b.DefaultsPath, err)
	}

	if raw, err = ReadRequired(b.RulesPath); err != nil {
		return nil, err
	}
	if b.Rules, err = specifics.ParseRules(raw); err != nil {
		return nil, fmt.Errorf("%s：%w", b.RulesPath, err)
	}
	return b, nil
}

package config

import "strings"

const DefaultCategoryID = "261328"

type Config struct {
	ConfigDir        string      `yaml:"config_dir" toml:"config_dir"`
	CategoryID       string      `yaml:"category_id" toml:"category_id"`
	LogFile          string      `yaml:"log_file" toml:"log_file"`
	Verbose          bool        `yaml:"verbose" toml:"verbose"`
	Ready            ReadyConfig `yaml:"ready" toml:"ready"`
	ScaffoldPatterns []string    `yaml:"scaffold_patterns" toml:"scaffold_patterns"`
}

type ReadyConfig struct {
	RandomLen int `yaml:"random_len" toml:"random_len"`
}

type Paths struct {
	HomeDir      string
	RootDir      string
	ConfigPath   string
	ConfigSource string
	// ConfigDir is the resolved root of the marketplace JSON config tree.
	ConfigDir string
	LogFile   string
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.ConfigDir) == "" {
		c.ConfigDir = "config"
	}
	if strings.TrimSpace(c.CategoryID) == "" {
		c.CategoryID = DefaultCategoryID
	}
	if c.Ready.RandomLen <= 0 {
		c.Ready.RandomLen = 8
	}
	if len(c.ScaffoldPatterns) == 0 {
		c.ScaffoldPatterns = []string{"ebay/schema/cat_*TEMPLATE*.json"}
	}
}

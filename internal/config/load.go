package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var embeddedDefaultConfig []byte

// ErrMissingFile marks a required configuration file that does not exist.
var ErrMissingFile = errors.New("缺少必需文件")

func Load(pathArg, cwd string) (*Config, *Paths, error) {
	paths, err := resolvePaths(pathArg)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureBootstrap(paths); err != nil {
		return nil, nil, err
	}

	cfg := &Config{}
	if isTOML(paths.ConfigPath) {
		if _, err := toml.DecodeFile(paths.ConfigPath, cfg); err != nil {
			return nil, nil, fmt.Errorf("配置文件格式错误（%s）：%w", paths.ConfigPath, err)
		}
	} else {
		raw, err := os.ReadFile(paths.ConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("读取配置文件失败（%s）：%w", paths.ConfigPath, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, nil, fmt.Errorf("配置文件格式错误（%s）：%w", paths.ConfigPath, err)
		}
	}
	cfg.applyDefaults()

	paths.ConfigSource = paths.ConfigPath
	paths.ConfigDir = expandPath(cfg.ConfigDir, paths.HomeDir, cwd)
	paths.LogFile = expandPath(cfg.LogFile, paths.HomeDir, cwd)
	return cfg, paths, nil
}

// Resolve re-expands the user-facing paths after flags changed cfg.
func (p *Paths) Resolve(cfg *Config, cwd string) {
	p.ConfigDir = expandPath(cfg.ConfigDir, p.HomeDir, cwd)
	p.LogFile = expandPath(cfg.LogFile, p.HomeDir, cwd)
}

func resolvePaths(configArg string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("读取用户目录失败：%w", err)
	}
	root := filepath.Join(home, ".card-listing")
	configPath := filepath.Join(root, "config.yaml")
	if strings.TrimSpace(configArg) != "" {
		configPath = expandPath(configArg, home, "")
	}
	return &Paths{
		HomeDir:    home,
		RootDir:    root,
		ConfigPath: configPath,
	}, nil
}

// ensureBootstrap writes the embedded yaml default on first run. A TOML
// settings file is never generated; it has to exist.
func ensureBootstrap(paths *Paths) error {
	if isTOML(paths.ConfigPath) {
		if _, err := os.Stat(paths.ConfigPath); err != nil {
			return fmt.Errorf("读取配置文件失败（%s）：%w", paths.ConfigPath, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(paths.ConfigPath), 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败：%w", err)
	}
	return ensureFile(paths.ConfigPath, embeddedDefaultConfig, 0o644)
}

func ensureFile(path string, data []byte, mode os.FileMode) error {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return nil
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("写入默认文件失败（%s）：%w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func expandPath(v, home, cwd string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if strings.HasPrefix(v, "~/") {
		return filepath.Join(home, v[2:])
	}
	if filepath.IsAbs(v) {
		return v
	}
	if strings.TrimSpace(cwd) != "" {
		return filepath.Join(cwd, v)
	}
	return v
}

// ReadRequired returns the raw bytes of a required JSON config file. A
// missing file wraps ErrMissingFile; an empty one is an error too.
func ReadRequired(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w：%s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("读取配置文件失败（%s）：%w", path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("配置文件为空：%s", path)
	}
	return raw, nil
}

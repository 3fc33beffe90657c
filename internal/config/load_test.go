package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBootstrapsDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cwd := t.TempDir()

	cfg, paths, err := Load("", cwd)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".card-listing", "config.yaml")); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.CategoryID != DefaultCategoryID {
		t.Fatalf("category mismatch: %q", cfg.CategoryID)
	}
	if paths.ConfigDir != filepath.Join(cwd, "config") {
		t.Fatalf("config dir mismatch: %s", paths.ConfigDir)
	}
	if cfg.Ready.RandomLen != 8 || len(cfg.ScaffoldPatterns) != 1 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if paths.ConfigSource != paths.ConfigPath {
		t.Fatalf("config source mismatch: %+v", paths)
	}
}

func TestLoadCustomYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(t.TempDir(), "settings.yaml")
	content := "config_dir: ~/ebay-config\ncategory_id: \"183454\"\nlog_file: logs/run.ndjson\nready:\n  random_len: 12\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cwd := "/work"
	cfg, paths, err := Load(p, cwd)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.CategoryID != "183454" || cfg.Ready.RandomLen != 12 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if paths.ConfigDir != filepath.Join(home, "ebay-config") {
		t.Fatalf("config dir mismatch: %s", paths.ConfigDir)
	}
	if paths.LogFile != filepath.Join(cwd, "logs/run.ndjson") {
		t.Fatalf("log file mismatch: %s", paths.LogFile)
	}
}

func TestLoadTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "settings.toml")
	content := "config_dir = \"/srv/config\"\ncategory_id = \"261328\"\nscaffold_patterns = [\"**/*_TEMPLATE.json\"]\n\n[ready]\nrandom_len = 6\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, paths, err := Load(p, "/work")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if paths.ConfigDir != "/srv/config" || cfg.Ready.RandomLen != 6 {
		t.Fatalf("unexpected cfg: %+v %+v", cfg, paths)
	}
	if len(cfg.ScaffoldPatterns) != 1 || cfg.ScaffoldPatterns[0] != "**/*_TEMPLATE.json" {
		t.Fatalf("scaffold patterns mismatch: %#v", cfg.ScaffoldPatterns)
	}
}

func TestLoadTOMLMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "/work")
	if err == nil || !strings.Contains(err.Error(), "读取配置文件失败") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	d := t.TempDir()
	bad := filepath.Join(d, "bad.yaml")
	if err := os.WriteFile(bad, []byte("config_dir: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad, d); err == nil || !strings.Contains(err.Error(), "配置文件格式错误") {
		t.Fatalf("unexpected err: %v", err)
	}
	badTOML := filepath.Join(d, "bad.toml")
	if err := os.WriteFile(badTOML, []byte("config_dir = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(badTOML, d); err == nil || !strings.Contains(err.Error(), "配置文件格式错误") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestPathsResolveAfterOverride(t *testing.T) {
	p := &Paths{HomeDir: "/home/u"}
	p.Resolve(&Config{ConfigDir: "~/cfg", LogFile: "/var/log/x.ndjson"}, "/work")
	if p.ConfigDir != "/home/u/cfg" || p.LogFile != "/var/log/x.ndjson" {
		t.Fatalf("resolve mismatch: %+v", p)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("", "/h", "/c"); got != "" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := expandPath("~/a", "/h", "/c"); got != "/h/a" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := expandPath("/abs", "/h", "/c"); got != "/abs" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := expandPath("rel", "/h", "/c"); got != "/c/rel" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := expandPath("rel", "/h", ""); got != "rel" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestReadRequired(t *testing.T) {
	d := t.TempDir()
	_, err := ReadRequired(filepath.Join(d, "nope.json"))
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
	empty := filepath.Join(d, "empty.json")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRequired(empty); err == nil || !strings.Contains(err.Error(), "配置文件为空") {
		t.Fatalf("unexpected err: %v", err)
	}
	ok := filepath.Join(d, "ok.json")
	if err := os.WriteFile(ok, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := ReadRequired(ok)
	if err != nil || string(raw) != "{}" {
		t.Fatalf("unexpected: %q %v", raw, err)
	}
}

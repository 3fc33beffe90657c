package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// RuntimePaths are the working directories of the listing pipeline, all
// under runtime_root from paths.json.
type RuntimePaths struct {
	Root          string
	IncomingRaw   string
	WorkAI        string
	AssetsFinal   string
	NeedsReview   string
	ReadyToUpload string
	Logs          string
}

type pathsFile struct {
	RuntimeRoot string `json:"runtime_root"`
}

func PathsFilePath(configDir string) string {
	return filepath.Join(configDir, "paths.json")
}

// LoadRuntimePaths reads paths.json. A relative runtime_root is taken
// relative to configDir.
func LoadRuntimePaths(configDir string) (RuntimePaths, error) {
	p := PathsFilePath(configDir)
	raw, err := ReadRequired(p)
	if err != nil {
		return RuntimePaths{}, err
	}
	var pf pathsFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return RuntimePaths{}, fmt.Errorf("配置文件格式错误（%s）：%w", p, err)
	}
	root := strings.TrimSpace(pf.RuntimeRoot)
	if root == "" {
		return RuntimePaths{}, fmt.Errorf("%s 缺少 runtime_root", p)
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(configDir, root)
	}
	return NewRuntimePaths(root), nil
}

func NewRuntimePaths(root string) RuntimePaths {
	return RuntimePaths{
		Root:          root,
		IncomingRaw:   filepath.Join(root, "incoming", "raw"),
		WorkAI:        filepath.Join(root, "work", "ai"),
		AssetsFinal:   filepath.Join(root, "assets", "final"),
		NeedsReview:   filepath.Join(root, "qc", "needs_review"),
		ReadyToUpload: filepath.Join(root, "outgoing", "ready_to_upload"),
		Logs:          filepath.Join(root, "logs"),
	}
}

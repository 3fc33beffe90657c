package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"card-listing/internal/card"
	"card-listing/internal/config"
	"card-listing/internal/logging"
	"card-listing/internal/output"
	"card-listing/internal/specifics"
	"card-listing/internal/title"
)

type Options struct {
	InputPath  string
	OutputPath string
	ConfigPath string
	ConfigDir  string
	CategoryID string
	LogFile    string
	Ready      bool
	Verbose    bool
	CWD        string
	Stdout     io.Writer
	Stderr     io.Writer
	// RandSrc feeds ready-file naming; nil means crypto/rand.
	RandSrc io.Reader
}

type Result struct {
	Payload    Payload
	OutputFile string
	ReadyFile  string
}

var ErrInputNotFound = errors.New("输入文件不存在")

// Settings are the loaded tool settings with command-line overrides applied.
type Settings struct {
	Config *config.Config
	Paths  *config.Paths
	CWD    string
}

func LoadSettings(opts Options) (Settings, error) {
	cwd := strings.TrimSpace(opts.CWD)
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("读取当前目录失败：%w", err)
		}
		cwd = wd
	}
	cfg, paths, err := config.Load(opts.ConfigPath, cwd)
	if err != nil {
		return Settings{}, err
	}
	overrideConfig(cfg, opts)
	paths.Resolve(cfg, cwd)
	return Settings{Config: cfg, Paths: paths, CWD: cwd}, nil
}

func Run(opts Options) (Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return Result{}, fmt.Errorf("缺少输入文件，请使用 --in 指定")
	}
	if opts.Ready && strings.TrimSpace(opts.OutputPath) != "" {
		return Result{}, fmt.Errorf("--out 与 --ready 只能二选一")
	}
	cwd := strings.TrimSpace(opts.CWD)
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Result{}, fmt.Errorf("读取当前目录失败：%w", err)
		}
		cwd = wd
	}
	opts.CWD = cwd
	inPath := absPath(cwd, opts.InputPath)
	if st, err := os.Stat(inPath); err != nil || st.IsDir() {
		return Result{}, fmt.Errorf("%w：%s", ErrInputNotFound, inPath)
	}

	s, err := LoadSettings(opts)
	if err != nil {
		return Result{}, err
	}
	cfg, paths := s.Config, s.Paths

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger, closer, err := logging.New(stderr, paths.LogFile, cfg.Verbose)
	if err != nil {
		return Result{}, fmt.Errorf("初始化日志失败：%w", err)
	}
	defer closer.Close()
	logger.Emit(logging.Event{Event: "config_loaded", Input: paths.ConfigSource, Category: cfg.CategoryID})

	c, err := card.ParseFile(inPath)
	if err != nil {
		logger.Emit(logging.Event{Level: "error", Event: "parse_failed", Input: inPath, Error: err.Error()})
		return Result{}, err
	}

	bundle, err := config.LoadBundle(config.Marketplace{Root: paths.ConfigDir, CategoryID: cfg.CategoryID})
	if err != nil {
		logger.Emit(logging.Event{Level: "error", Event: "config_failed", Category: cfg.CategoryID, Error: err.Error()})
		return Result{}, err
	}

	tr, err := title.Build(c, title.DefaultRules())
	if err != nil {
		logger.Emit(logging.Event{Level: "error", Event: "title_overflow", Input: inPath, Error: err.Error()})
		return Result{}, err
	}
	logger.Emit(logging.Event{Event: "title_built", Input: inPath, Title: tr.Title, TitleLen: len([]rune(tr.Title)), Dropped: groupNames(tr.Dropped)})

	item := specifics.Derive(c, bundle.Defaults, bundle.Rules)
	unknown := specifics.UnknownNames(item, bundle.Schema)
	if len(unknown) > 0 {
		logger.Emit(logging.Event{Level: "warn", Event: "unknown_item_specifics", Input: inPath, Category: cfg.CategoryID, Unknown: unknown})
	}

	res := Result{Payload: BuildPayload(cfg.CategoryID, c, tr, item, unknown)}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if err := output.Encode(stdout, res.Payload); err != nil {
		return res, fmt.Errorf("输出结果失败：%w", err)
	}

	if strings.TrimSpace(opts.OutputPath) != "" {
		res.OutputFile = absPath(cwd, opts.OutputPath)
		if err := output.WriteJSON(res.OutputFile, res.Payload); err != nil {
			logger.Emit(logging.Event{Level: "error", Event: "write_failed", OutputFile: res.OutputFile, Error: err.Error()})
			return res, err
		}
		logger.Emit(logging.Event{Event: "write_ok", Input: inPath, OutputFile: res.OutputFile})
	}

	if opts.Ready {
		res.ReadyFile, err = writeReady(paths.ConfigDir, cfg.Ready.RandomLen, opts.RandSrc, res.Payload)
		if err != nil {
			logger.Emit(logging.Event{Level: "error", Event: "ready_failed", Input: inPath, Error: err.Error()})
			return res, err
		}
		logger.Emit(logging.Event{Event: "ready_ok", Input: inPath, OutputFile: res.ReadyFile})
	}
	return res, nil
}

func writeReady(configDir string, randomLen int, randSrc io.Reader, p Payload) (string, error) {
	rp, err := config.LoadRuntimePaths(configDir)
	if err != nil {
		return "", err
	}
	if err := output.EnsureDir(rp.ReadyToUpload); err != nil {
		return "", fmt.Errorf("创建待上传目录失败：%w", err)
	}
	_, path, err := output.NextReady(rp.ReadyToUpload, randomLen, randSrc)
	if err != nil {
		return "", err
	}
	if err := output.WriteJSON(path, p); err != nil {
		return "", err
	}
	return path, nil
}

func overrideConfig(cfg *config.Config, opts Options) {
	if strings.TrimSpace(opts.ConfigDir) != "" {
		cfg.ConfigDir = opts.ConfigDir
	}
	if strings.TrimSpace(opts.CategoryID) != "" {
		cfg.CategoryID = strings.TrimSpace(opts.CategoryID)
	}
	if strings.TrimSpace(opts.LogFile) != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
}

func absPath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cwd, p)
}

func groupNames(gs []title.Group) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, string(g))
	}
	return out
}

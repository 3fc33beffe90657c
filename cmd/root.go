package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configArg    string
	configDirArg string
	logFileArg   string
	verboseArg   bool
}

func Execute() error {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(normalizeArgs(os.Args[1:]))
	return root.Execute()
}

func NewRootCmd(stdout, stderr *os.File) *cobra.Command {
	flags := &rootFlags{}
	showVersion := false

	root := &cobra.Command{
		Use:           "card-listing",
		Short:         "根据卡片 JSON 生成 eBay 标题与物品属性",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(stdout)
				return nil
			}
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.HiddenDefaultCmd = true
	bindRootFlags(root, flags)
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "显示版本信息")

	root.AddCommand(
		newBuildCmd(stdout, stderr, flags),
		newValidateCmd(stdout, flags),
		newPathsCmd(stdout, flags),
		newVersionCmd(stdout),
	)
	return root
}

func bindRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVar(&flags.configArg, "config", "", "工具配置文件路径（yaml 或 toml），默认 ~/.card-listing/config.yaml")
	cmd.PersistentFlags().StringVar(&flags.configDirArg, "config-dir", "", "eBay 配置目录，覆盖配置中的 config_dir")
	cmd.PersistentFlags().StringVar(&flags.logFileArg, "log-file", "", "NDJSON 日志文件路径")
	cmd.PersistentFlags().BoolVar(&flags.verboseArg, "verbose", false, "在 stderr 输出全部 NDJSON 事件")
}

// normalizeArgs routes a bare `card-listing --in card.json` to build.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "build", "validate-config", "paths", "version", "help", "completion":
		return args
	case "-h", "--help", "-v", "--version":
		return args
	}
	if !containsInputFlag(args) {
		return args
	}
	return append([]string{"build"}, args...)
}

func containsInputFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--in" || strings.HasPrefix(arg, "--in=") {
			return true
		}
	}
	return false
}

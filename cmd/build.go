package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"card-listing/internal/app"
)

type buildFlags struct {
	inArg       string
	outArg      string
	categoryArg string
	readyArg    bool
}

func newBuildCmd(stdout, stderr *os.File, root *rootFlags) *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:           "build --in <card.json>",
		Short:         "为一张卡片生成 eBay 上架数据",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("读取当前目录失败：%w", err)
			}
			_, err = app.Run(app.Options{
				InputPath:  flags.inArg,
				OutputPath: flags.outArg,
				ConfigPath: root.configArg,
				ConfigDir:  root.configDirArg,
				CategoryID: flags.categoryArg,
				LogFile:    root.logFileArg,
				Ready:      flags.readyArg,
				Verbose:    root.verboseArg,
				CWD:        cwd,
				Stdout:     stdout,
				Stderr:     stderr,
			})
			return err
		},
	}
	cmd.Flags().StringVar(&flags.inArg, "in", "", "卡片 JSON 文件路径（必填）")
	cmd.Flags().StringVarP(&flags.outArg, "out", "o", "", "同时写入的输出文件路径")
	cmd.Flags().StringVar(&flags.categoryArg, "category", "", "eBay 类目 ID，覆盖配置中的 category_id")
	cmd.Flags().BoolVar(&flags.readyArg, "ready", false, "同时写入运行目录 outgoing/ready_to_upload")
	return cmd
}

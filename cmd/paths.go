package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"card-listing/internal/app"
	"card-listing/internal/config"
)

func newPathsCmd(stdout *os.File, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:           "paths",
		Short:         "显示运行目录",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.LoadSettings(app.Options{ConfigPath: root.configArg, ConfigDir: root.configDirArg})
			if err != nil {
				return err
			}
			rp, err := config.LoadRuntimePaths(s.Paths.ConfigDir)
			if err != nil {
				return err
			}
			printRuntimePaths(stdout, rp)
			return nil
		},
	}
}

func printRuntimePaths(w io.Writer, rp config.RuntimePaths) {
	rows := [][2]string{
		{"runtime_root", rp.Root},
		{"incoming_raw", rp.IncomingRaw},
		{"work_ai", rp.WorkAI},
		{"assets_final", rp.AssetsFinal},
		{"needs_review", rp.NeedsReview},
		{"ready_to_upload", rp.ReadyToUpload},
		{"logs", rp.Logs},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-16s %s\n", r[0], r[1])
	}
}

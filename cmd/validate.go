package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"card-listing/internal/app"
	"card-listing/internal/validate"
)

var errValidationFailed = errors.New("配置校验未通过，已中止")

func newValidateCmd(stdout *os.File, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:           "validate-config",
		Short:         "校验 eBay 配置目录",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.LoadSettings(app.Options{ConfigPath: root.configArg, ConfigDir: root.configDirArg})
			if err != nil {
				return err
			}
			res := validate.New(s.Paths.ConfigDir, s.Config.ScaffoldPatterns).Validate()
			if !validate.Report(stdout, res, isTerminal(stdout)) {
				return errValidationFailed
			}
			return nil
		},
	}
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

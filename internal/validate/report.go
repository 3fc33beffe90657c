package validate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report prints the results. It returns false when validation failed.
func Report(w io.Writer, r Results, useColor bool) bool {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)
	for _, c := range []*color.Color{pass, fail, warn} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if r.OK() {
		pass.Fprintln(w, "配置校验通过")
	} else {
		fail.Fprintf(w, "配置校验失败（%d 项）\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, " - %s\n", e)
		}
	}
	if len(r.Warnings) > 0 {
		warn.Fprintln(w, "提示：")
		for _, m := range r.Warnings {
			fmt.Fprintf(w, " - %s\n", m)
		}
	}
	return r.OK()
}

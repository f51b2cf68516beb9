package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/errors"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that stub files on disk are up to date",
	Long: `Render every module in memory and compare it with the stub file on disk.
Nothing is written. Missing or differing files are listed with a line diff
and the command exits with an error, which makes it suitable for CI.

Examples:
  stubgen check
  stubgen check --manifest native.yaml`,
	RunE: runCheck,
}

func init() {
	addProjectFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	drift, err := p.info.Check(p.render)
	if err != nil {
		return err
	}
	if len(drift) == 0 {
		pterm.Success.Printfln("%d stub files are up to date", len(p.info.Modules))
		return nil
	}

	out := cmd.OutOrStdout()
	for _, d := range drift {
		if d.Missing {
			pterm.Warning.Printfln("%s: missing (module %s)", d.Path, d.Module)
			continue
		}
		pterm.Warning.Printfln("%s: differs (module %s)", d.Path, d.Module)
		fmt.Fprintln(out, d.Diff)
	}

	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%d of %d stub files", len(drift), len(p.info.Modules)),
		"run 'stubgen generate' to refresh them")
}

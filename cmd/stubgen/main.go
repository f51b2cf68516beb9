package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/cmd/stubgen/commands"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stubgen",
	Short: "Generate Python type stubs for native extension modules",
	Long: `stubgen - Python type stub (.pyi) generator for native extension modules.

Descriptors of classes, enums, functions and variables are read from a YAML
manifest and rendered as one stub file per Python module.

Available commands:
  generate - Write stub files
  check    - Compare stub files on disk with freshly rendered ones
  config   - Show or initialize stubgen configuration
  version  - Show version information

Examples:
  stubgen generate                       # Use stubgen.yaml and pyproject.toml
  stubgen generate --watch               # Regenerate when inputs change
  stubgen check                          # Fail when stubs are out of date
  stubgen config show --format yaml      # Show effective configuration`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: commands.InitLogger,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

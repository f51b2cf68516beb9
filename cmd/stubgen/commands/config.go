package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize stubgen configuration",
	Long: `Display and manage stubgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (STUBGEN_* prefix, e.g. STUBGEN_GENERATE_JOBS)
3. Project config (nearest stubgen.toml, searching up directories)
4. User config (~/.config/stubgen/stubgen.toml)
5. Default values

Examples:
  stubgen config show                   # Show effective configuration
  stubgen config show --format json     # Show configuration as JSON
  stubgen config show --sources         # Show where each value came from
  stubgen config init                   # Write a default stubgen.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default stubgen.toml",
	Long: `Write the default configuration to ./stubgen.toml, or to path.
An existing file is only replaced with --force; the previous contents are
kept as .back1, .back2 and .back3.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().String("format", config.FormatTOML, "Output format: toml, json, yaml")
	configShowCmd.Flags().Bool("sources", false, "List each setting with the source it came from")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	sources, _ := cmd.Flags().GetBool("sources")

	changed, err := bindFlags(cmd)
	if err != nil {
		return err
	}
	v := config.GetViper()

	var doc interface{}
	if sources {
		// TOML documents need a table at the top level
		doc = map[string]interface{}{"settings": config.Introspect(v, changed...)}
	} else {
		cfg, err := config.LoadWithViper(v)
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		doc = cfg
	}

	data, err := config.Marshal(doc, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.ConfigFileName
	if len(args) == 1 {
		path = args[0]
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, config.ConfigFileName)
		}
	}

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}

package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/manifest"
	"github.com/teranos/stubgen/pyproject"
	"github.com/teranos/stubgen/stub"
)

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"manifest":        "generate.manifest",
	"jobs":            "generate.jobs",
	"post-command":    "generate.post_command",
	"pyproject":       "project.pyproject",
	"module":          "project.module",
	"out":             "project.python_root",
	"requires-python": "project.requires_python",
	"verbose":         "log.verbosity",
	"json-log":        "log.json",
}

// bindFlags binds every known flag of cmd, including inherited ones, to the
// shared Viper instance. It returns the keys whose flags were set.
func bindFlags(cmd *cobra.Command) ([]string, error) {
	v := config.GetViper()
	var changed []string
	var err error
	visit := func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Wrapf(bindErr, "failed to bind --%s", f.Name)
			return
		}
		if f.Changed {
			changed = append(changed, key)
		}
	}
	cmd.Flags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	return changed, err
}

// InitLogger configures logging from -v, --json-log and the log.* settings.
func InitLogger(cmd *cobra.Command, _ []string) error {
	if _, err := bindFlags(cmd); err != nil {
		return err
	}
	v := config.GetViper()
	if err := logger.Initialize(v.GetBool("log.json"), v.GetInt("log.verbosity")); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// project is everything one generation run needs
type project struct {
	cfg    *config.Config
	info   *stub.StubInfo
	render stub.RenderConfig
}

// loadProject resolves configuration, reads pyproject.toml and the manifest,
// and builds the stub tree. The Self import strategy is computed once here.
func loadProject(cmd *cobra.Command) (*project, error) {
	if _, err := bindFlags(cmd); err != nil {
		return nil, err
	}
	cfg, err := config.LoadWithViper(config.GetViper())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	py, err := loadPyProject(cfg.Project.PyProject, cmd.Flags().Changed("pyproject"))
	if err != nil {
		return nil, err
	}
	cfg.Resolve(py)
	if cfg.Project.Module == "" {
		return nil, errors.WithHint(
			errors.New("no default module name"),
			"pass --module, set project.module in stubgen.toml, or add a pyproject.toml")
	}
	if cfg.Project.PythonRoot == "" {
		cfg.Project.PythonRoot = "."
	}

	m, err := manifest.Load(cfg.Generate.Manifest)
	if err != nil {
		return nil, err
	}
	reg := descriptor.NewRegistry()
	if err := m.Register(reg); err != nil {
		return nil, errors.Wrapf(err, "failed to register %s", cfg.Generate.Manifest)
	}

	info, err := stub.Build(reg, stub.Options{
		DefaultModule: cfg.Project.Module,
		PythonRoot:    cfg.Project.PythonRoot,
		Jobs:          cfg.Generate.Jobs,
	})
	if err != nil {
		return nil, err
	}

	render := stub.RenderConfig{SelfImport: cfg.SelfImport()}
	logger.Debugw("Project loaded",
		logger.FieldModule, cfg.Project.Module,
		logger.FieldPath, cfg.Project.PythonRoot,
		logger.FieldStrategy, render.SelfImport.String(),
		logger.FieldCount, reg.Len())

	return &project{cfg: cfg, info: info, render: render}, nil
}

// loadPyProject reads pyproject.toml. A missing file is only an error when
// it was named explicitly.
func loadPyProject(path string, explicit bool) (*pyproject.PyProject, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		logger.Debugw("No pyproject.toml, using configured values", logger.FieldPath, path)
		return nil, nil
	}
	return pyproject.Load(path)
}

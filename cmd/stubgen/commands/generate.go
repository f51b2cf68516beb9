package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/hook"
	"github.com/teranos/stubgen/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write Python stub files",
	Long: `Render one .pyi file per Python module described by the manifest.

The default module name, output directory and supported Python versions are
read from pyproject.toml ([project] and [tool.maturin]) unless set in
stubgen.toml, STUBGEN_* environment variables or flags.

Examples:
  stubgen generate
  stubgen generate --manifest native.yaml --out python/
  stubgen generate --requires-python ">=3.9"
  stubgen generate --watch`,
	RunE: runGenerate,
}

func init() {
	addProjectFlags(GenerateCmd)
	GenerateCmd.Flags().IntP("jobs", "j", config.DefaultJobs, "Number of stub files written concurrently")
	GenerateCmd.Flags().String("post-command", "", "Command run in the output directory after generation; {files} expands to the written files")
	GenerateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the manifest, stubgen.toml or pyproject.toml changes")
}

// addProjectFlags declares the flags that locate a project
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "m", config.DefaultManifest, "Descriptor manifest (YAML)")
	cmd.Flags().String("pyproject", config.DefaultPyProject, "Path to pyproject.toml")
	cmd.Flags().String("module", "", "Default module name (default: from pyproject.toml)")
	cmd.Flags().StringP("out", "o", "", "Directory stubs are written under (default: from pyproject.toml)")
	cmd.Flags().String("requires-python", "", "Supported Python versions, e.g. \">=3.9\" (default: from pyproject.toml)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	p, err := generateOnce(cmd)
	if err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndGenerate(ctx, cmd, p.cfg)
}

func generateOnce(cmd *cobra.Command) (*project, error) {
	p, err := loadProject(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	logger.Infow("Generating stubs",
		logger.FieldRun, runID,
		logger.FieldModule, p.cfg.Project.Module,
		logger.FieldCount, len(p.info.Modules))
	if err := p.info.Generate(ctx, p.render); err != nil {
		return nil, errors.Wrapf(err, "run %s", runID)
	}
	if err := runPostCommand(ctx, cmd, p); err != nil {
		return nil, err
	}
	pterm.Success.Printfln("Generated %d stub files under %s (Self from %s)",
		len(p.info.Modules), p.cfg.Project.PythonRoot, p.render.SelfImport.Module())
	return p, nil
}

func watchAndGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	w, err := config.NewWatcher(
		cfg.Generate.Manifest,
		cfg.Project.PyProject,
		config.FindProjectConfig(workingDir()),
	)
	if err != nil {
		return err
	}
	defer w.Stop()

	var mu sync.Mutex
	w.OnChange(func(path string) {
		mu.Lock()
		defer mu.Unlock()

		pterm.Info.Printfln("%s changed, regenerating", path)
		config.Reset()
		if _, err := generateOnce(cmd); err != nil {
			logger.Errorw("Regeneration failed", logger.FieldError, err)
			pterm.Error.Printfln("%v", err)
		}
	})
	w.Start()

	pterm.Info.Println("Watching for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

func runPostCommand(ctx context.Context, cmd *cobra.Command, p *project) error {
	post, err := hook.Parse(p.cfg.Generate.PostCommand)
	if err != nil || post == nil {
		return err
	}
	files := p.info.Files(p.render)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return post.Run(ctx, p.cfg.Project.PythonRoot, paths, cmd.ErrOrStderr())
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

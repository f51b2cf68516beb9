package stub

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// File is the rendered stub of one module.
type File struct {
	Module  string
	Path    string // relative to the python root
	Content string
}

// RelativePath is where the stub of module name is written, relative to the
// python root: pkg.sub becomes pkg/sub.pyi, or pkg/sub/__init__.pyi when
// pkg.sub has submodules.
func (s *StubInfo) RelativePath(name string) string {
	path := strings.ReplaceAll(strings.ReplaceAll(name, "-", "_"), ".", "/")
	if m, ok := s.Modules[name]; ok && len(m.Submodules) > 0 {
		return filepath.Join(filepath.FromSlash(path), "__init__.pyi")
	}
	return filepath.FromSlash(path) + ".pyi"
}

// OutputPath is RelativePath joined to the python root.
func (s *StubInfo) OutputPath(name string) string {
	return filepath.Join(s.PythonRoot, s.RelativePath(name))
}

// Files renders every module, ordered by module name.
func (s *StubInfo) Files(cfg RenderConfig) []File {
	names := slices.Sorted(maps.Keys(s.Modules))
	files := make([]File, 0, len(names))
	for _, name := range names {
		files = append(files, File{
			Module:  name,
			Path:    s.RelativePath(name),
			Content: s.Modules[name].Render(cfg),
		})
	}
	return files
}

// Generate writes one stub file per module. Files are written concurrently;
// the first failure is returned and files already written are left in place.
func (s *StubInfo) Generate(ctx context.Context, cfg RenderConfig) error {
	log := logger.ComponentLogger("stub.generate")
	log.Debugw("Writing stub files",
		logger.FieldCount, len(s.Modules),
		logger.FieldStrategy, cfg.SelfImport.String())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.jobs, 1))
	for _, f := range s.Files(cfg) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dest := filepath.Join(s.PythonRoot, f.Path)
			if err := writeFile(dest, f.Content); err != nil {
				return err
			}
			log.Infow("Generated stub file",
				logger.FieldModule, f.Module,
				logger.FieldPath, dest)
			return nil
		})
	}
	return g.Wait()
}

func writeFile(dest, content string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", dest)
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", dest)
	}
	return nil
}

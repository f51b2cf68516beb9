package stub

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/teranos/stubgen/errors"
)

// Drift is a module whose stub on disk is missing or differs from the
// rendered one.
type Drift struct {
	Module  string
	Path    string
	Missing bool
	// Diff is a line diff, - for disk and + for the rendered stub
	Diff string
}

// Check renders every module in memory and compares it with the file on
// disk. Nothing is written.
func (s *StubInfo) Check(cfg RenderConfig) ([]Drift, error) {
	var drift []Drift
	for _, f := range s.Files(cfg) {
		dest := filepath.Join(s.PythonRoot, f.Path)
		data, err := os.ReadFile(dest)
		if os.IsNotExist(err) {
			drift = append(drift, Drift{Module: f.Module, Path: dest, Missing: true})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", dest)
		}
		if string(data) == f.Content {
			continue
		}
		drift = append(drift, Drift{
			Module: f.Module,
			Path:   dest,
			Diff:   cmp.Diff(strings.Split(string(data), "\n"), strings.Split(f.Content, "\n")),
		})
	}
	return drift, nil
}

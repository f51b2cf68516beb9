// Package pyproject reads the parts of pyproject.toml that decide where stubs
// go and which Python versions they must support.
package pyproject

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/stubgen/errors"
)

// PyProject is the minimal pyproject.toml structure
type PyProject struct {
	Project struct {
		Name           string `toml:"name"`
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
	Tool struct {
		Maturin *Maturin `toml:"maturin"`
	} `toml:"tool"`

	dir string
}

// Maturin is the [tool.maturin] table
type Maturin struct {
	ModuleName   string `toml:"module-name"`
	PythonSource string `toml:"python-source"`
}

// Load parses the pyproject.toml at path.
func Load(path string) (*PyProject, error) {
	var p PyProject
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	p.dir = filepath.Dir(abs)
	if p.ModuleName() == "" {
		return nil, errors.WithHint(
			errors.Newf("%s declares neither project.name nor tool.maturin.module-name", path),
			"add a [project] table with a name")
	}
	return &p, nil
}

// ModuleName is the default module stubs are generated for:
// tool.maturin.module-name when set, else the project name with dashes
// replaced by underscores.
func (p *PyProject) ModuleName() string {
	if p.Tool.Maturin != nil && p.Tool.Maturin.ModuleName != "" {
		return p.Tool.Maturin.ModuleName
	}
	return strings.ReplaceAll(p.Project.Name, "-", "_")
}

// PythonRoot is the directory stub files are written under:
// tool.maturin.python-source relative to the pyproject directory, else the
// pyproject directory itself.
func (p *PyProject) PythonRoot() string {
	if p.Tool.Maturin != nil && p.Tool.Maturin.PythonSource != "" {
		return filepath.Join(p.dir, p.Tool.Maturin.PythonSource)
	}
	return p.dir
}

// Dir is the directory containing the pyproject.toml.
func (p *PyProject) Dir() string {
	return p.dir
}

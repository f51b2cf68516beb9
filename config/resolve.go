package config

import (
	"github.com/teranos/stubgen/pyproject"
	"github.com/teranos/stubgen/typeinfo"
)

// Resolve fills empty project settings from py. Explicit settings always
// win over pyproject.toml.
func (c *Config) Resolve(py *pyproject.PyProject) {
	if py == nil {
		return
	}
	if c.Project.Module == "" {
		c.Project.Module = py.ModuleName()
	}
	if c.Project.PythonRoot == "" {
		c.Project.PythonRoot = py.PythonRoot()
	}
	if c.Project.RequiresPython == "" {
		c.Project.RequiresPython = py.Project.RequiresPython
	}
}

// SelfImport is the Self import strategy for the configured Python versions.
func (c *Config) SelfImport() typeinfo.SelfImportStrategy {
	return typeinfo.StrategyFor(c.Project.RequiresPython)
}

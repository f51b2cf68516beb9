package config

import (
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/typeinfo"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Jobs: at least one writer, there is no "disabled" value
	if c.Generate.Jobs < 1 {
		return errors.Newf("generate.jobs must be >= 1, got %d", c.Generate.Jobs)
	}

	if c.Generate.Manifest == "" {
		return errors.New("generate.manifest cannot be empty")
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// Not fatal: with no minimum the run imports Self from typing
	if c.Project.RequiresPython != "" {
		if _, ok := typeinfo.ParseMinimumVersion(c.Project.RequiresPython); !ok {
			logger.Warnw("project.requires_python has no minimum version, importing Self from typing",
				"requires_python", c.Project.RequiresPython)
		}
	}

	if c.Project.Module != "" && !validModuleName(c.Project.Module) {
		return errors.Newf("project.module %q is not a dotted Python module name", c.Project.Module)
	}

	return nil
}

func validModuleName(name string) bool {
	start := true
	for _, r := range name {
		switch {
		case r == '.':
			if start {
				return false
			}
			start = true
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			start = false
		case r >= '0' && r <= '9':
			if start {
				return false
			}
		default:
			return false
		}
	}
	return !start
}

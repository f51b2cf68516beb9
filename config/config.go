// Package config loads stubgen settings from defaults, stubgen.toml files,
// STUBGEN_* environment variables and command line flags.
package config

// Config represents the stubgen configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project" toml:"project" yaml:"project" json:"project"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// ProjectConfig locates the Python project stubs are generated for.
// Empty values are taken from pyproject.toml.
type ProjectConfig struct {
	// PyProject is the path to pyproject.toml
	PyProject string `mapstructure:"pyproject" toml:"pyproject" yaml:"pyproject" json:"pyproject"`
	// Module is the default module name
	Module string `mapstructure:"module" toml:"module" yaml:"module" json:"module"`
	// PythonRoot is the directory stub files are written under
	PythonRoot string `mapstructure:"python_root" toml:"python_root" yaml:"python_root" json:"python_root"`
	// RequiresPython is a version specifier such as ">=3.9"
	RequiresPython string `mapstructure:"requires_python" toml:"requires_python" yaml:"requires_python" json:"requires_python"`
}

// GenerateConfig configures a generation run
type GenerateConfig struct {
	Manifest string `mapstructure:"manifest" toml:"manifest" yaml:"manifest" json:"manifest"`
	Jobs     int    `mapstructure:"jobs" toml:"jobs" yaml:"jobs" json:"jobs"`
	// PostCommand runs in the python root after every generation, e.g.
	// "ruff format {files}"
	PostCommand string `mapstructure:"post_command" toml:"post_command" yaml:"post_command" json:"post_command"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	// Verbosity is 0 for user output, 1 for info, 2 and above for debug
	Verbosity int `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

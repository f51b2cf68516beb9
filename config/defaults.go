package config

import (
	"github.com/spf13/viper"
)

// Default values
const (
	ConfigFileName   = "stubgen.toml"
	DefaultPyProject = "pyproject.toml"
	DefaultManifest  = "stubgen.yaml"
	DefaultJobs      = 4
	EnvPrefix        = "STUBGEN"
)

// SetDefaults configures default values for all configuration options.
// Every key gets a default so environment variables can override any of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project.pyproject", DefaultPyProject)
	v.SetDefault("project.module", "")
	v.SetDefault("project.python_root", "")
	v.SetDefault("project.requires_python", "")

	v.SetDefault("generate.manifest", DefaultManifest)
	v.SetDefault("generate.jobs", DefaultJobs)
	v.SetDefault("generate.post_command", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Defaults returns the configuration with only defaults applied.
func Defaults() *Config {
	return &Config{
		Project:  ProjectConfig{PyProject: DefaultPyProject},
		Generate: GenerateConfig{Manifest: DefaultManifest, Jobs: DefaultJobs},
	}
}

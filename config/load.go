package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the stubgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance so commands can bind their flags
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path.
// Environment variables are not consulted.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", configPath)
	}
	return cfg, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	Sources = map[string]SourceInfo{}
}

// NewViper returns a Viper instance with defaults and STUBGEN_* environment
// binding but no config files.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := NewViper()

	cwd, _ := os.Getwd()
	files := []File{{Path: UserConfigPath(), Source: SourceUser}}
	if project := FindProjectConfig(cwd); project != "" {
		files = append(files, File{Path: project, Source: SourceProject})
	}
	MergeConfigFiles(v, files...)

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.config/stubgen/stubgen.toml, or the platform
// equivalent. Empty when no config directory can be determined.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stubgen", ConfigFileName)
}

// FindProjectConfig searches for stubgen.toml by walking up the directory
// tree from start. Returns the empty string if none is found.
func FindProjectConfig(start string) string {
	if start == "" {
		return ""
	}
	dir := start
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// File is a config file and the layer it belongs to.
type File struct {
	Path   string
	Source ConfigSource
}

// MergeConfigFiles merges config files into v in order, later files winning.
// Files are merged as config values, not overrides, so STUBGEN_* variables
// and bound flags keep precedence. Missing files are skipped; unreadable
// ones are logged and skipped.
func MergeConfigFiles(v *viper.Viper, files ...File) {
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if _, err := os.Stat(f.Path); err != nil {
			continue
		}

		tmp := viper.New()
		tmp.SetConfigFile(f.Path)
		tmp.SetConfigType("toml")
		if err := tmp.ReadInConfig(); err != nil {
			logger.Warnw("Skipping unreadable config file",
				logger.FieldPath, f.Path,
				logger.FieldError, err)
			continue
		}

		settings := tmp.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			logger.Warnw("Skipping config file",
				logger.FieldPath, f.Path,
				logger.FieldError, err)
			continue
		}
		trackSources(settings, "", SourceInfo{Source: f.Source, Path: f.Path})
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/stubgen/pyproject"
	"github.com/teranos/stubgen/typeinfo"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithViper_Defaults(t *testing.T) {
	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestMergeConfigFiles(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	user := writeFile(t, filepath.Join(dir, "user", ConfigFileName), `
[generate]
jobs = 2
manifest = "user.yaml"

[log]
verbosity = 1
`)
	project := writeFile(t, filepath.Join(dir, "project", ConfigFileName), `
[generate]
manifest = "native.yaml"
`)

	v := NewViper()
	MergeConfigFiles(v, File{Path: user, Source: SourceUser}, File{Path: project, Source: SourceProject})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "native.yaml", cfg.Generate.Manifest, "project file wins over user file")
	assert.Equal(t, 2, cfg.Generate.Jobs)
	assert.Equal(t, 1, cfg.Log.Verbosity)
	assert.Equal(t, DefaultPyProject, cfg.Project.PyProject)

	assert.Equal(t, SourceInfo{Source: SourceProject, Path: project}, Sources["generate.manifest"])
	assert.Equal(t, SourceInfo{Source: SourceUser, Path: user}, Sources["generate.jobs"])
}

func TestMergeConfigFiles_EnvWins(t *testing.T) {
	Reset()
	defer Reset()

	path := writeFile(t, filepath.Join(t.TempDir(), ConfigFileName), "[generate]\njobs = 2\n")
	t.Setenv("STUBGEN_GENERATE_JOBS", "8")

	v := NewViper()
	MergeConfigFiles(v, File{Path: path, Source: SourceProject})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Generate.Jobs)

	var jobs SettingInfo
	for _, s := range Introspect(v) {
		if s.Key == "generate.jobs" {
			jobs = s
		}
	}
	assert.Equal(t, SourceEnvironment, jobs.Source)
	assert.Equal(t, "STUBGEN_GENERATE_JOBS", jobs.SourcePath)
}

func TestMergeConfigFiles_SkipsBadFiles(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	broken := writeFile(t, filepath.Join(dir, "broken.toml"), "[generate\n")

	v := NewViper()
	MergeConfigFiles(v,
		File{Path: filepath.Join(dir, "missing.toml"), Source: SourceUser},
		File{Path: broken, Source: SourceProject},
		File{},
	)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Empty(t, Sources)
}

func TestIntrospect(t *testing.T) {
	Reset()
	defer Reset()

	v := NewViper()
	settings := Introspect(v, "generate.manifest")

	keys := make([]string, 0, len(settings))
	bySource := make(map[string]ConfigSource)
	for _, s := range settings {
		keys = append(keys, s.Key)
		bySource[s.Key] = s.Source
	}
	assert.IsIncreasing(t, keys)
	assert.Equal(t, SourceFlag, bySource["generate.manifest"])
	assert.Equal(t, SourceDefault, bySource["project.pyproject"])
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, ConfigFileName), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, path, FindProjectConfig(nested))
	assert.Equal(t, path, FindProjectConfig(root))
	assert.Empty(t, FindProjectConfig(""))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, ConfigFileName), `
[project]
module = "geo._native"
requires_python = ">=3.9"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "geo._native", cfg.Project.Module)
	assert.Equal(t, ">=3.9", cfg.Project.RequiresPython)
	assert.Equal(t, DefaultJobs, cfg.Generate.Jobs)

	_, err = LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	invalid := writeFile(t, filepath.Join(dir, "invalid.toml"), "[generate]\njobs = 0\n")
	_, err = LoadFromFile(invalid)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero jobs is invalid", func(c *Config) { c.Generate.Jobs = 0 }, true},
		{"negative verbosity is invalid", func(c *Config) { c.Log.Verbosity = -1 }, true},
		{"empty manifest is invalid", func(c *Config) { c.Generate.Manifest = "" }, true},
		{"requires_python with minimum", func(c *Config) { c.Project.RequiresPython = ">=3.8, <4" }, false},
		{"requires_python without minimum", func(c *Config) { c.Project.RequiresPython = "<4" }, false},
		{"requires_python with spaced operator", func(c *Config) { c.Project.RequiresPython = ">= 3.9" }, false},
		{"dotted module", func(c *Config) { c.Project.Module = "geo._native" }, false},
		{"module with dash", func(c *Config) { c.Project.Module = "geo-tools" }, true},
		{"module with empty segment", func(c *Config) { c.Project.Module = "geo..x" }, true},
		{"module segment starting with digit", func(c *Config) { c.Project.Module = "geo.2d" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "pyproject.toml"), `
[project]
name = "geo-tools"
requires-python = ">=3.9"

[tool.maturin]
python-source = "python"
`)
	py, err := pyproject.Load(path)
	require.NoError(t, err)

	cfg := Defaults()
	cfg.Project.Module = "geo"
	cfg.Resolve(py)

	assert.Equal(t, "geo", cfg.Project.Module, "explicit module wins")
	assert.Equal(t, filepath.Join(filepath.Dir(path), "python"), cfg.Project.PythonRoot)
	assert.Equal(t, ">=3.9", cfg.Project.RequiresPython)
	assert.Equal(t, typeinfo.SelfFromTypingExtensions, cfg.SelfImport())

	cfg.Project.RequiresPython = ">=3.11"
	assert.Equal(t, typeinfo.SelfFromTyping, cfg.SelfImport())

	before := *cfg
	cfg.Resolve(nil)
	assert.Equal(t, before, *cfg)
}

func TestMarshal(t *testing.T) {
	cfg := Defaults()

	data, err := Marshal(cfg, FormatTOML)
	require.NoError(t, err)
	var fromTOML Config
	require.NoError(t, toml.Unmarshal(data, &fromTOML))
	assert.Equal(t, *cfg, fromTOML)

	data, err = Marshal(cfg, FormatYAML)
	require.NoError(t, err)
	var fromYAML Config
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, *cfg, fromYAML)

	data, err = Marshal(cfg, FormatJSON)
	require.NoError(t, err)
	var fromJSON Config
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, *cfg, fromJSON)

	_, err = Marshal(cfg, "ini")
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	require.NoError(t, WriteDefault(path, false))
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	assert.Error(t, WriteDefault(path, false), "existing file is kept without force")

	for i := 0; i < 4; i++ {
		require.NoError(t, WriteDefault(path, true))
	}
	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		assert.FileExists(t, path+suffix)
	}
	assert.NoFileExists(t, path+".back4")
}

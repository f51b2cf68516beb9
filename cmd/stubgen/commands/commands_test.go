package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/typeinfo"
	"github.com/teranos/stubgen/version"
)

const testManifest = `
classes:
  - name: Point
    module: geo
    getters:
      - {name: x, type: float}
methods:
  - class: geo.Point
    methods:
      - name: __new__
        kind: new
        params:
          - {name: x, type: float}
functions:
  - name: dist
    module: geo.math
    params:
      - {name: a, type: {class: geo.Point}}
    returns: float
`

const testPyProject = `
[project]
name = "geo"
requires-python = ">=3.9"

[tool.maturin]
python-source = "python"
`

// setupProject writes a project into a temporary directory and makes it the
// working directory.
func setupProject(t *testing.T, pyproject string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultManifest), []byte(testManifest), 0o644))
	if pyproject != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultPyProject), []byte(pyproject), 0o644))
	}
	t.Chdir(dir)
	config.Reset()
	t.Cleanup(config.Reset)
	return dir
}

func newProjectCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addProjectFlags(cmd)
	cmd.Flags().Int("jobs", config.DefaultJobs, "")
	cmd.Flags().String("post-command", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadProject(t *testing.T) {
	dir := setupProject(t, testPyProject)

	p, err := loadProject(newProjectCmd(t))
	require.NoError(t, err)

	assert.Equal(t, "geo", p.cfg.Project.Module)
	assert.Equal(t, filepath.Join(dir, "python"), p.cfg.Project.PythonRoot)
	assert.Equal(t, typeinfo.SelfFromTypingExtensions, p.render.SelfImport)
	assert.Contains(t, p.info.Modules, "geo")
	assert.Contains(t, p.info.Modules, "geo.math")
	assert.Contains(t, p.info.Modules["geo"].Submodules, "math")
}

func TestLoadProject_FlagsWin(t *testing.T) {
	setupProject(t, testPyProject)

	p, err := loadProject(newProjectCmd(t, "--requires-python", ">=3.12", "--out", "stubs"))
	require.NoError(t, err)

	assert.Equal(t, "stubs", p.cfg.Project.PythonRoot)
	assert.Equal(t, typeinfo.SelfFromTyping, p.render.SelfImport)
}

func TestLoadProject_RequiresPythonWithoutMinimum(t *testing.T) {
	tests := []string{"<3.12", ">= 3.9"}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			setupProject(t, testPyProject)
			p, err := loadProject(newProjectCmd(t, "--requires-python", spec))
			require.NoError(t, err)
			assert.Equal(t, spec, p.cfg.Project.RequiresPython)
			assert.Equal(t, typeinfo.SelfFromTyping, p.render.SelfImport)
		})
	}
}

func TestLoadProject_Errors(t *testing.T) {
	tests := []struct {
		name      string
		pyproject string
		args      []string
		contains  string
	}{
		{
			name:     "no module anywhere",
			contains: "no default module name",
		},
		{
			name:      "explicit pyproject missing",
			pyproject: testPyProject,
			args:      []string{"--pyproject", "missing.toml"},
			contains:  "missing.toml",
		},
		{
			name:      "manifest missing",
			pyproject: testPyProject,
			args:      []string{"--manifest", "missing.yaml"},
			contains:  "missing.yaml",
		},
		{
			name:      "no writers",
			pyproject: testPyProject,
			args:      []string{"--jobs", "0"},
			contains:  "generate.jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, tt.pyproject)
			_, err := loadProject(newProjectCmd(t, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestGenerateThenCheck(t *testing.T) {
	dir := setupProject(t, testPyProject)

	cmd := newProjectCmd(t)
	err := runCheck(cmd, nil)
	assert.True(t, errors.IsOutOfDate(err), "nothing generated yet, got %v", err)

	_, err = generateOnce(cmd)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "python", "geo", "__init__.pyi"))
	assert.FileExists(t, filepath.Join(dir, "python", "geo", "math.pyi"))

	require.NoError(t, runCheck(cmd, nil))

	stale := filepath.Join(dir, "python", "geo", "math.pyi")
	require.NoError(t, os.WriteFile(stale, []byte("def dist() -> None: ...\n"), 0o644))
	var out bytes.Buffer
	cmd.SetOut(&out)
	err = runCheck(cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
	assert.Contains(t, out.String(), "def dist() -> None: ...")
}

func TestGeneratePostCommand(t *testing.T) {
	dir := setupProject(t, testPyProject)

	cmd := newProjectCmd(t, "--post-command", "touch formatted {files}")
	_, err := generateOnce(cmd)
	require.NoError(t, err)

	root := filepath.Join(dir, "python")
	assert.FileExists(t, filepath.Join(root, "formatted"))
	assert.FileExists(t, filepath.Join(root, "geo", "math.pyi"))
}

func TestConfigShow(t *testing.T) {
	setupProject(t, "")

	var out bytes.Buffer
	ConfigCmd.SetOut(&out)
	ConfigCmd.SetArgs([]string{"show", "--format", "json"})
	require.NoError(t, ConfigCmd.Execute())

	var cfg config.Config
	require.NoError(t, json.Unmarshal(out.Bytes(), &cfg))
	assert.Equal(t, config.DefaultJobs, cfg.Generate.Jobs)
	assert.Equal(t, config.DefaultManifest, cfg.Generate.Manifest)
}

func TestConfigInit(t *testing.T) {
	dir := setupProject(t, "")

	ConfigCmd.SetArgs([]string{"init", dir})
	require.NoError(t, ConfigCmd.Execute())

	cfg, err := config.LoadFromFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	VersionCmd.SetArgs([]string{"--json"})
	require.NoError(t, VersionCmd.Execute())

	var info version.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, version.Get(), info)
}

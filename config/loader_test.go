package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoaderLayers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	nested := filepath.Join(project, "ontologies", "v2")
	require.NoError(t, os.MkdirAll(nested, 0755))

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "output:\n  format: markdown\n  language: de\n")
	writeFile(t, filepath.Join(project, ProjectConfigFile), "output:\n  format: json\n")

	cfg, err := NewLoaderAt(nil, home, nested).Load("")
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, cfg.Output.Format, "project file wins over user file")
	assert.Equal(t, "de", cfg.Output.Language, "user setting survives when project is silent")
}

func TestLoaderExplicitFile(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigFile), "output:\n  format: json\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "output:\n  format: markdown\n")

	cfg, err := NewLoaderAt(nil, "", project).Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, OutputMarkdown, cfg.Output.Format, "explicit file replaces the project lookup")

	_, err = NewLoaderAt(nil, "", project).Load(filepath.Join(project, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoaderSilentLayersKeepLowerValues(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile),
		"output:\n  language: de\n  description_length: 40\nexport:\n  format: ntriples\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "nats:\n  url: nats://localhost:4222\n")

	cfg, err := NewLoaderAt(nil, home, t.TempDir()).Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Output.Language)
	assert.Equal(t, 40, cfg.Output.DescriptionLength)
	assert.Equal(t, "ntriples", cfg.Export.Format)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, OutputText, cfg.Output.Format, "defaults fill what no layer sets")
	assert.Equal(t, DefaultConfig().NATS.Subject, cfg.NATS.Subject)
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.yaml")
	writeFile(t, path, "output:\n  language: fr\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Output.Language)
	assert.Equal(t, OutputText, cfg.Output.Format)
}

func TestLoaderDefaultsWithoutFiles(t *testing.T) {
	cfg, err := NewLoaderAt(nil, t.TempDir(), t.TempDir()).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigFile), "output:\n  format: html\n")

	_, err := NewLoaderAt(nil, "", project).Load("")
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	loader := NewLoaderAt(nil, home, "")

	path, err := loader.EnsureUserConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, UserConfigDir, UserConfigFile), path)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)

	// A second call leaves the existing file alone.
	writeFile(t, path, "output:\n  format: json\n")
	_, err = loader.EnsureUserConfig()
	require.NoError(t, err)
	loaded, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, loaded.Output.Format)
}

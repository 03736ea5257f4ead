package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanjiKun-Santhosh/PCMN/contact"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, contact.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, 0, cfg.ExclusionWindow)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, contact.ModeAny, mode)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
threshold = 0.45
exclusion_window = 2
filter_mode = "both"
residues = ["LYS171", "HIS201"]
workers = 4

[neo4j]
uri = "bolt://localhost:7687"
user = "neo4j"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.45, cfg.Threshold)
	assert.Equal(t, 2, cfg.ExclusionWindow)
	assert.Equal(t, []string{"LYS171", "HIS201"}, cfg.Residues)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, contact.ModeBoth, mode)

	opts := cfg.DetectOptions()
	assert.Equal(t, 0.45, opts.Threshold)
	assert.Equal(t, 2, opts.ExclusionWindow)
	assert.Equal(t, 4, opts.Workers)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.toml")
	require.NoError(t, os.WriteFile(path, []byte("exclusion_window = 1\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, contact.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, 1, cfg.ExclusionWindow)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

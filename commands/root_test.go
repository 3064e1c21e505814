package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratesift/cratesift/classify"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(RootCmd)

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, classify.DefaultGreeting, cfg.Greeting)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := "greeting: \"Hej, världen!\"\nworkers: 2\nmanifests:\n  - Cargo.toml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cratesift.yml"), []byte(config), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := loadConfig(RootCmd)

	require.NoError(t, err)
	assert.Equal(t, "Hej, världen!", cfg.Greeting)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"Cargo.toml"}, cfg.Manifests)
}

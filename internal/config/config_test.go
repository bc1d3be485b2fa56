package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "main.som"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.som")
	require.NoError(t, os.WriteFile(src, []byte(""), 0644))

	yamlContent := "compiler: clang++\ncompilerFlags:\n  - -O2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(yamlContent), 0644))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWd)

	cfg, err := Load(src)
	require.NoError(t, err)
	require.Equal(t, "clang++", cfg.Compiler)
	require.Equal(t, []string{"-O2"}, cfg.CompilerFlags)
	require.Equal(t, "something_work", cfg.WorkDir)
}

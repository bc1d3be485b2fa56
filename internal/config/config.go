// Package config loads the optional somc.yaml project file: compiler
// path override, extra compiler flags, and work directory name.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const fileName = "somc.yaml"

// Config holds project-level settings a somc.yaml file can override.
// CLI flags always win over these values.
type Config struct {
	Compiler      string   `yaml:"compiler"`
	CompilerFlags []string `yaml:"compilerFlags"`
	WorkDir       string   `yaml:"workDir"`
}

// Default returns the built-in defaults used when no somc.yaml is
// found.
func Default() Config {
	return Config{Compiler: "g++", WorkDir: "something_work"}
}

// Load looks for somc.yaml first in the current working directory,
// then alongside sourceFile, merging found values over the defaults.
// A missing file is not an error; a malformed one is.
func Load(sourceFile string) (Config, error) {
	cfg := Default()

	path, ok := find(sourceFile)
	if !ok {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return cfg, err
	}

	if fromFile.Compiler != "" {
		cfg.Compiler = fromFile.Compiler
	}
	if fromFile.WorkDir != "" {
		cfg.WorkDir = fromFile.WorkDir
	}
	if len(fromFile.CompilerFlags) > 0 {
		cfg.CompilerFlags = fromFile.CompilerFlags
	}
	return cfg, nil
}

func find(sourceFile string) (string, bool) {
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	if sourceFile != "" {
		candidate := filepath.Join(filepath.Dir(sourceFile), fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// Package driver owns the work-directory lifecycle: writing the
// generated C++, invoking the configured compiler, and optionally
// running the resulting binary (spec.md §6; original_source/utils/src/
// lib.rs make_work/clean_work/run_gen/make_lib).
package driver

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/somlang/somc/internal/config"
)

// Options controls one build invocation.
type Options struct {
	Dev bool // keep the work directory around after building
	Gen bool // stop after writing generated sources, skip g++
	Run bool // run the resulting binary after a successful build
	// RunArgs are forwarded to the binary when Run is true.
	RunArgs []string

	Stdout io.Writer
	Stderr io.Writer
}

// Result reports what a Build produced.
type Result struct {
	WorkDir    string
	BinaryPath string
	RanExit    int // valid only when Options.Run was set and the binary ran
}

// Build writes moduleCC/somStdCC into the work directory named by cfg
// (or its default), invokes cfg.Compiler against module.cc, and
// optionally runs the produced binary, propagating its exit code.
func Build(cfg config.Config, moduleCC, somStdCC string, opts Options) (Result, error) {
	workDir := filepath.Join(os.TempDir(), cfg.WorkDir)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create work directory: %w", err)
	}

	modulePath := filepath.Join(workDir, "module.cc")
	if err := os.WriteFile(modulePath, []byte(moduleCC), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write module: %w", err)
	}
	stdPath := filepath.Join(workDir, "som_std.cc")
	if err := os.WriteFile(stdPath, []byte(somStdCC), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write som_std: %w", err)
	}

	res := Result{WorkDir: workDir}

	if opts.Gen {
		return res, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return res, fmt.Errorf("failed to resolve current directory: %w", err)
	}
	binaryPath := filepath.Join(cwd, "som.out")
	res.BinaryPath = binaryPath

	args := []string{"-o", binaryPath, modulePath, "-static"}
	args = append(args, cfg.CompilerFlags...)

	build := exec.Command(cfg.Compiler, args...)
	build.Stdout = opts.Stdout
	build.Stderr = opts.Stderr
	if err := build.Run(); err != nil {
		return res, fmt.Errorf("%s failed: %w", cfg.Compiler, err)
	}

	if !opts.Dev {
		defer Clean(cfg)
	}

	if opts.Run {
		exitCode, err := run(binaryPath, opts.RunArgs, opts.Stdout, opts.Stderr)
		res.RanExit = exitCode
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

// Clean removes the work directory.
func Clean(cfg config.Config) error {
	return os.RemoveAll(filepath.Join(os.TempDir(), cfg.WorkDir))
}

// WriteLib writes an additional ext=true companion source (e.g. a
// headers-only runtime library) into the work directory under name.
func WriteLib(cfg config.Config, name, content string) error {
	workDir := filepath.Join(os.TempDir(), cfg.WorkDir)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	return os.WriteFile(filepath.Join(workDir, name+".cc"), []byte(content), 0644)
}

// run executes path with args, piping stdout/stderr through, and
// returns the child's exit code. A non-zero exit is reported as an
// error so callers propagate it as the process's own exit status.
func run(path string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), fmt.Errorf("program exited with status %d", exitErr.ExitCode())
	}
	return 1, fmt.Errorf("failed to run %s: %w", path, err)
}

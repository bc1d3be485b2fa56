package cmd

import (
	"fmt"
	"os"

	"github.com/somlang/somc/internal/codegen"
	"github.com/somlang/somc/internal/config"
	"github.com/somlang/somc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	buildDev     bool
	buildGen     bool
	buildRun     bool
	buildRunArgs []string
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a source file to a native executable",
	Long: `Lex, parse, generate C++, write it to a work directory, and invoke
g++ to produce "som.out" in the current directory.

Examples:
  # Build an executable
  somc build main.som

  # Keep the generated C++ around for inspection
  somc build main.som --dev

  # Stop after generating C++, skip invoking g++
  somc build main.som --gen

  # Build and immediately run, forwarding args to the program
  somc build main.som --run --arg hello --arg world`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVarP(&buildDev, "dev", "d", false, "keep the work directory after building")
	buildCmd.Flags().BoolVarP(&buildGen, "gen", "g", false, "only generate C++, do not invoke the compiler")
	buildCmd.Flags().BoolVarP(&buildRun, "run", "r", false, "run the built executable after compiling")
	buildCmd.Flags().BoolVar(&errorsJSON, "errors-json", false, "emit diagnostics as a JSON array")
	buildCmd.Flags().StringArrayVar(&buildRunArgs, "arg", nil, "argument to forward to the program with --run")
}

func runBuild(_ *cobra.Command, args []string) error {
	file := args[0]
	source, err := readSource(file)
	if err != nil {
		return err
	}

	_, program, p, lexErr := lexAndParse(source, file)
	if lexErr != nil {
		exitWithError("lex error: %v", lexErr)
	}

	if reportErrors(p) {
		os.Exit(1)
	}

	cfg, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("failed to load somc.yaml: %w", err)
	}

	moduleCC, somStdCC := codegen.GenProgram(program)

	if verbose {
		fmt.Fprintf(os.Stderr, "generated %d bytes of module.cc, %d bytes of som_std.cc\n", len(moduleCC), len(somStdCC))
	}

	res, err := driver.Build(cfg, moduleCC, somStdCC, driver.Options{
		Dev:     buildDev,
		Gen:     buildGen,
		Run:     buildRun,
		RunArgs: buildRunArgs,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if res.RanExit != 0 {
			os.Exit(res.RanExit)
		}
		os.Exit(1)
	}

	if buildRun {
		os.Exit(res.RanExit)
	}
	if buildGen && verbose {
		fmt.Fprintf(os.Stderr, "generated sources left in %s\n", res.WorkDir)
	}
	return nil
}

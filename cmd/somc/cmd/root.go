package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "somc [file]",
	Short: "somc - a tiny source-to-C++ compiler",
	Long: `somc compiles a small statically-typed language to portable C++ and
drives g++ to produce an executable.

Given a bare file argument, somc behaves exactly like "somc build <file>":
lex, parse, generate C++, write it to a work directory, and invoke g++.

Use one of the subcommands for everything else: "somc tokens" and
"somc ast" dump intermediate stages for debugging, "somc repl" opens an
interactive lex/parse loop.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runBuild(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// A bare "somc <file>" runs runBuild, so it takes the same flags as
	// "somc build".
	rootCmd.Flags().BoolVarP(&buildDev, "dev", "d", false, "keep the work directory after building")
	rootCmd.Flags().BoolVarP(&buildGen, "gen", "g", false, "only generate C++, do not invoke the compiler")
	rootCmd.Flags().BoolVarP(&buildRun, "run", "r", false, "run the built executable after compiling")
	rootCmd.Flags().BoolVar(&errorsJSON, "errors-json", false, "emit diagnostics as a JSON array")
	rootCmd.Flags().StringArrayVar(&buildRunArgs, "arg", nil, "argument to forward to the program with --run")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

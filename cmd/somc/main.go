// Command somc compiles a small statically-typed language to portable
// C++ and drives g++ to produce an executable.
package main

import (
	"fmt"
	"os"

	"github.com/somlang/somc/cmd/somc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/somlang/somc/internal/ast"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Parse a file and print its parse tree",
	Long: `Parse a source file and print the resulting tree of parse nodes,
indented by nesting depth.

This is a debugging aid for the parser.`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().BoolVar(&errorsJSON, "errors-json", false, "emit diagnostics as a JSON array")
}

func runAST(_ *cobra.Command, args []string) error {
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
		os.Exit(1) // reportErrors already printed diagnostics
	}

	for _, node := range program {
		dumpNode(node, 0)
	}
	return nil
}

func dumpNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.VarDefNode:
		fmt.Printf("%sVARDEF %s: %s\n", pad, n.Name, n.DeclType)
		dumpNode(n.Init, indent+1)
	case *ast.NumberNode:
		if n.IsFloat {
			fmt.Printf("%sNUMBER %g (%s)\n", pad, n.FloatVal, n.NumType)
		} else {
			fmt.Printf("%sNUMBER %d (%s)\n", pad, n.IntVal, n.NumType)
		}
	case *ast.StringNode:
		fmt.Printf("%sSTRING %q\n", pad, n.Content)
	case *ast.LabelNode:
		fmt.Printf("%sLABEL %s (%s)\n", pad, n.Name, n.VarType)
	case *ast.ExpNode:
		fmt.Printf("%sEXP (%s, %d segment(s))\n", pad, n.ExpType, len(n.Segments))
	case *ast.FnMakeNode:
		fmt.Printf("%sFNMAKE %s(%d param(s)): %s\n", pad, n.Name, len(n.Params), n.ReturnType)
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.FnCallNode:
		fmt.Printf("%sFNCALL %s (std=%v, %d arg(s))\n", pad, n.Name, n.IsStd, len(n.Args))
		for _, arg := range n.Args {
			dumpNode(arg, indent+1)
		}
	case *ast.FnReturnNode:
		fmt.Printf("%sFNRETURN\n", pad)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.CommaNode:
		fmt.Printf("%sCOMMA\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}

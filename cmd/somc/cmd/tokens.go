package cmd

import (
	"fmt"

	"github.com/somlang/somc/internal/lexer"
	"github.com/spf13/cobra"
)

var tokensShowPos bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Tokenize a file and print the resulting token stream",
	Long: `Tokenize a source file and print each token, one per line.

This is a debugging aid for the lexer.

Examples:
  # Show the token stream
  somc tokens main.som

  # Include each token's line:column
  somc tokens --show-pos main.som`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
	tokensCmd.Flags().BoolVar(&errorsJSON, "errors-json", false, "accepted for symmetry with build/ast; tokens prints lex errors as plain text")
}

func runTokens(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	l := lexer.New(source)
	toks, lexErr := l.Lex()
	if lexErr != nil {
		exitWithError("lex error: %v", lexErr)
	}

	for _, tok := range toks {
		printToken(tok)
	}
	return nil
}

func printToken(tok lexer.Token) {
	if tokensShowPos {
		fmt.Printf("[%-10s] %q @%s\n", tok.Type, tok.Content, tok.Pos)
		return
	}
	fmt.Printf("[%-10s] %q\n", tok.Type, tok.Content)
}

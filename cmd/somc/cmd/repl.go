package cmd

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/somlang/somc/internal/lexer"
	"github.com/somlang/somc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	replPrompt = "somc> "
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
	dimColor   = color.New(color.Faint)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive lex/parse loop",
	Long: `Open an interactive loop that lexes and parses each line as it is
entered, printing its token trace and parse result.

This is a convenience wrapper around the same lexer/parser "build"
uses, not a new execution model: there is no way to evaluate code
interactively, only to inspect how it is tokenized and parsed.

Type '.exit' or press Ctrl+D to quit.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	rl, err := readline.New(replPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	greenColor.Println("somc repl - lex/parse trace; type .exit to quit")

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("\nGood bye!")
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			break
		}
		rl.SaveHistory(line)

		replEval(line)
	}
	return nil
}

func replEval(line string) {
	l := lexer.New(line)
	tokens, lexErr := l.Lex()
	if lexErr != nil {
		redColor.Printf("lex error: %v\n", lexErr)
		return
	}

	for _, tok := range tokens {
		if tok.Type == lexer.EOF {
			continue
		}
		dimColor.Printf("  %s %q\n", tok.Type, tok.Content)
	}

	p := parser.New(tokens, "<repl>", line, parser.NewScope())
	nodes := p.ParseProgram()

	for _, perr := range p.Errors() {
		redColor.Println(perr.Error())
	}
	for _, node := range nodes {
		greenColor.Printf("=> %s\n", node.Kind())
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/somlang/somc/internal/ast"
	cerrors "github.com/somlang/somc/internal/errors"
	"github.com/somlang/somc/internal/lexer"
	"github.com/somlang/somc/internal/parser"
	"github.com/mattn/go-isatty"
)

var errorsJSON bool

// colorEnabled reports whether diagnostics should carry ANSI color,
// gated on stderr being a terminal (spec.md's CLI surface always
// writes diagnostics to stderr).
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

// readSource reads file, or returns an error naming it.
func readSource(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}

// lexAndParse runs the full front end over source, returning the raw
// token stream, the parsed program, and the parser (for Errors/Fatal).
func lexAndParse(source, file string) ([]lexer.Token, []ast.Node, *parser.Parser, error) {
	l := lexer.New(source)
	tokens, err := l.Lex()
	if err != nil {
		return nil, nil, nil, err
	}
	p := parser.New(tokens, file, source, parser.NewScope())
	program := p.ParseProgram()
	return tokens, program, p, nil
}

// reportErrors prints a parser's collected diagnostics to stderr,
// either as JSON (--errors-json) or the human-readable formatter, and
// reports whether any were halting.
func reportErrors(p *parser.Parser) bool {
	errs := p.Errors()
	if len(errs) == 0 {
		return false
	}
	if errorsJSON {
		out, err := cerrors.ToJSON(errs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode diagnostics: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, out)
		}
	} else {
		fmt.Fprint(os.Stderr, cerrors.FormatErrors(errs, colorEnabled()))
	}
	return p.Fatal()
}

package parser

import "github.com/somlang/somc/internal/lexer"

// opPrec gives the shunting-yard precedence of a lexical token
// (spec.md §4.2.1). Comparison/logical tokens carry a precedence for
// completeness, but the shunting-yard loop only treats the four
// arithmetic operators as operators (see isArithOp); any other token
// is passed to the output as an operand.
func opPrec(t lexer.TokenType) int {
	switch t {
	case lexer.PLUSBIN, lexer.SUBBIN:
		return 10
	case lexer.MULBIN, lexer.DIVBIN:
		return 20
	case lexer.GCMP, lexer.GECMP, lexer.LCMP, lexer.LECMP, lexer.ECMP, lexer.AND, lexer.OR:
		return 30
	case lexer.LPAREN, lexer.RPAREN:
		return 40
	default:
		return 0
	}
}

// isArithOp reports whether t is one of the four operators the
// shunting-yard pass folds into BinSegs.
func isArithOp(t lexer.TokenType) bool {
	switch t {
	case lexer.PLUSBIN, lexer.SUBBIN, lexer.MULBIN, lexer.DIVBIN:
		return true
	default:
		return false
	}
}

// Package parser implements the recursive-descent parser: lexical
// tokens to a tree of parse nodes, with an embedded shunting-yard pass
// for parenthesized arithmetic and inline type checking against a
// threaded lexical scope (spec.md §4.2).
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/somlang/somc/internal/ast"
	cerrors "github.com/somlang/somc/internal/errors"
	"github.com/somlang/somc/internal/lexer"
	"github.com/somlang/somc/internal/types"
)

// Parser walks a flat lexical token stream with one token of
// lookahead, threading a lexical Scope that grows as VARDEF/FNMAKE/
// FNPARAM nodes are parsed.
type Parser struct {
	tokens []lexer.Token
	idx    int
	tok    lexer.Token

	file   string
	source string
	scope  Scope

	errs  []*cerrors.CompilerError
	fatal bool
}

// New builds a parser over tokens. scope is not copied; callers that
// need isolation (e.g. a function body) should pass scope.Clone().
func New(tokens []lexer.Token, file, source string, scope Scope) *Parser {
	p := &Parser{tokens: tokens, file: file, source: source, scope: scope}
	if len(tokens) > 0 {
		p.tok = tokens[0]
	} else {
		p.tok = lexer.Token{Type: lexer.EOF}
	}
	return p
}

// Errors returns every diagnostic collected during parsing, halting
// and continuable alike.
func (p *Parser) Errors() []*cerrors.CompilerError { return p.errs }

// Fatal reports whether parsing hit a halting error (spec.md §7).
func (p *Parser) Fatal() bool { return p.fatal }

func (p *Parser) next() {
	p.idx++
	if p.idx >= len(p.tokens) {
		p.tok = lexer.Token{Type: lexer.EOF, Pos: p.lastPos()}
	} else {
		p.tok = p.tokens[p.idx]
	}
}

func (p *Parser) peek() lexer.Token {
	if p.idx+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF, Pos: p.lastPos()}
	}
	return p.tokens[p.idx+1]
}

func (p *Parser) lastPos() lexer.Position {
	if len(p.tokens) == 0 {
		return lexer.Position{}
	}
	return p.tokens[len(p.tokens)-1].Pos
}

func (p *Parser) addHalt(pos lexer.Position, msg string) {
	p.errs = append(p.errs, cerrors.New(pos, msg, p.source, p.file))
	p.fatal = true
}

func (p *Parser) addContinue(pos lexer.Position, msg string) {
	p.errs = append(p.errs, cerrors.NewContinuable(pos, msg, p.source, p.file))
}

// ParseProgram parses the whole token stream into a sequence of
// top-level statements, stopping early on the first halting error.
func (p *Parser) ParseProgram() []ast.Node {
	var out []ast.Node
	for {
		if p.fatal {
			break
		}
		node := p.parse()
		if node != nil {
			out = append(out, node)
		}
		if p.tok.Type == lexer.EOF {
			break
		}
	}
	return out
}

// parse dispatches on the current token (and sometimes peek), per the
// order spec.md §4.2 lists.
func (p *Parser) parse() ast.Node {
	switch {
	case p.tok.Type == lexer.LPAREN:
		return p.parseExp()

	case p.tok.Content == "RPN" && p.peek().Type == lexer.MMARK:
		return p.parseRPNExp()

	case p.tok.Type == lexer.LABEL && p.peek().Content == ":":
		return p.parseVarDef()

	case p.tok.Type == lexer.LABEL && p.peek().Type == lexer.LPAREN:
		return p.parseFnMake()

	case p.tok.Type == lexer.LABEL && p.peek().Type == lexer.MMARK:
		return p.parseFnCall()

	case p.tok.Type == lexer.MMARK && p.peek().Type == lexer.LPAREN:
		return p.parseFnCallAlt()

	case p.tok.Type == lexer.NUMBER || p.tok.Type == lexer.NEGNUMBER:
		return p.parseNumber()

	case p.tok.Type == lexer.LABEL && p.tok.Content == "ret":
		return p.parseReturn()

	case p.tok.Type == lexer.LABEL:
		return p.parseIdent()

	case isArithOp(p.tok.Type) || p.tok.Type == lexer.COLON:
		return p.parseOperand()

	case p.tok.Type == lexer.STRING:
		return p.parseString()

	case p.tok.Type == lexer.COMMA:
		node := &ast.CommaNode{Loc: p.tok.Pos}
		p.next()
		return node

	default:
		p.addHalt(p.tok.Pos, fmt.Sprintf("unexpected token %q of type %s", p.tok.Content, p.tok.Type))
		p.next()
		return nil
	}
}

// parseExp implements the shunting-yard pass over a balanced-paren
// subsequence (spec.md §4.2.1).
func (p *Parser) parseExp() ast.Node {
	startPos := p.tok.Pos
	parenCount := 0
	var subTree []lexer.Token
	endPos := startPos

	for {
		subTree = append(subTree, p.tok)
		switch p.tok.Type {
		case lexer.LPAREN:
			parenCount++
		case lexer.RPAREN:
			parenCount--
		}
		if p.tok.Type == lexer.RPAREN && parenCount == 0 {
			endPos = p.tok.Pos
			break
		}
		if p.tok.Type == lexer.EOF {
			p.addHalt(startPos, "unterminated parenthesized expression")
			return nil
		}
		p.next()
	}

	var stack []lexer.Token
	var opStack []lexer.Token

	for _, cur := range subTree {
		switch {
		case cur.Type == lexer.NUMBER || cur.Type == lexer.NEGNUMBER:
			stack = append(stack, cur)

		case isArithOp(cur.Type):
			for len(opStack) > 0 &&
				opPrec(cur.Type) <= opPrec(opStack[len(opStack)-1].Type) &&
				opStack[len(opStack)-1].Type != lexer.LPAREN {
				top := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				stack = append(stack, top)
			}
			opStack = append(opStack, cur)

		case cur.Type == lexer.LPAREN:
			opStack = append(opStack, cur)

		case cur.Type == lexer.RPAREN:
			foundMatch := false
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Type == lexer.LPAREN {
					opStack = opStack[:len(opStack)-1]
					foundMatch = true
					break
				}
				opStack = opStack[:len(opStack)-1]
				stack = append(stack, top)
			}
			if !foundMatch {
				var content strings.Builder
				for _, s := range subTree {
					content.WriteString(s.Content)
				}
				p.addContinue(cur.Pos, fmt.Sprintf("mismatched parentheses in expression: %s", content.String()))
			}

		default:
			stack = append(stack, cur)
		}
	}

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		if top.Type != lexer.LPAREN {
			stack = append(stack, top)
		}
	}

	synthetic := make([]lexer.Token, 0, len(stack)+2)
	synthetic = append(synthetic,
		lexer.Token{Type: lexer.LABEL, Content: "RPN", Pos: startPos},
		lexer.Token{Type: lexer.MMARK, Content: "!", Pos: startPos},
	)
	synthetic = append(synthetic, stack...)

	sub := New(synthetic, p.file, p.source, p.scope)
	out := sub.parse()
	p.errs = append(p.errs, sub.errs...)
	if sub.fatal {
		p.fatal = true
	}

	p.next() // consume the outer ')'

	rpnOut, ok := out.(*ast.RPNExpNode)
	if !ok {
		return nil
	}
	return &ast.ExpNode{
		Loc:      lexer.Position{Line: startPos.Line, LineStart: startPos.LineStart, StartCol: startPos.StartCol, EndCol: endPos.EndCol},
		ExpType:  rpnOut.ExpType,
		Segments: rpnOut.Segments,
	}
}

// parseRPNExp consumes the synthetic "RPN !" prefix and folds the
// remaining tokens into BinSegs (spec.md §4.2.2).
func (p *Parser) parseRPNExp() ast.Node {
	startPos := p.tok.Pos
	p.next() // eat "RPN"
	p.next() // eat "!"

	var expType types.Primitive
	var segments []ast.BinSeg
	var workingStack []ast.Node
	count := 0

	for {
		single := New([]lexer.Token{p.tok}, p.file, p.source, p.scope)
		parsed := single.parse()
		p.errs = append(p.errs, single.errs...)
		if single.fatal {
			p.fatal = true
			break
		}

		if count == 0 {
			switch t := parsed.(type) {
			case *ast.NumberNode:
				expType = t.NumType
			case *ast.StringNode:
				expType = types.StringType
			case *ast.LabelNode:
				expType = t.VarType
			}
		}

		tokPrim := getPrim(parsed)
		if !types.SameKind(tokPrim, expType) && !types.Equal(tokPrim, types.OperatorType) {
			p.addHalt(p.tok.Pos, fmt.Sprintf("cannot use type %s with type %s", tokPrim, expType))
			break
		}

		switch t := parsed.(type) {
		case *ast.NumberNode, *ast.LabelNode:
			workingStack = append(workingStack, parsed)
		case *ast.OperatorNode:
			var left, right ast.Node
			if n := len(workingStack); n > 0 {
				left = workingStack[n-1]
				workingStack = workingStack[:n-1]
			}
			if n := len(workingStack); n > 0 {
				right = workingStack[n-1]
				workingStack = workingStack[:n-1]
			}
			segments = append(segments, ast.BinSeg{Left: left, Right: right, Op: t.Op})
		}

		if p.peek().Type == lexer.EOF {
			break
		}
		count++
		p.next()
	}

	return &ast.RPNExpNode{Loc: startPos, ExpType: expType, Segments: segments}
}

// parseVarDef implements `name : type : expr ;` (spec.md §4.2.3).
func (p *Parser) parseVarDef() ast.Node {
	startPos := p.tok.Pos
	name := p.tok.Content
	p.next() // consume name, now at ':'

	if p.peek().Type != lexer.LABEL {
		p.addHalt(p.tok.Pos, fmt.Sprintf("expected a type name after ':', got %s", p.peek().Type))
		return nil
	}
	p.next() // consume ':', now at type label
	declType := types.ResolveKeyword(types.NewInScope(p.tok.Content))

	if p.peek().Type != lexer.COLON {
		p.addHalt(p.tok.Pos, fmt.Sprintf("expected ':' after type name, got %s", p.peek().Type))
		return nil
	}
	p.next() // consume type label, now at ':'
	p.next() // consume ':', now at initializer start

	if p.tok.Content == "print" && p.peek().Type == lexer.MMARK {
		p.addHalt(p.tok.Pos, "print does not return a value usable as a variable initializer")
	}

	var initTokens []lexer.Token
	for p.tok.Type != lexer.SEMCOLON && p.tok.Type != lexer.EOF {
		initTokens = append(initTokens, p.tok)
		p.next()
	}
	if p.tok.Type == lexer.SEMCOLON {
		p.next()
	}

	var init ast.Node
	if len(initTokens) > 0 {
		sub := New(initTokens, p.file, p.source, p.scope)
		init = sub.parse()
		// A ')' left over after the initializer has no matching '(';
		// report it without halting, like the shunting-yard pass does.
		for sub.tok.Type == lexer.RPAREN {
			sub.addContinue(sub.tok.Pos, "mismatched parentheses in expression: unmatched ')'")
			sub.next()
		}
		p.errs = append(p.errs, sub.errs...)
		if sub.fatal {
			p.fatal = true
		}
	}

	if init != nil && !types.SameKind(getPrim(init), declType) {
		p.addHalt(startPos, fmt.Sprintf("cannot initialize %q (%s) with value of type %s", name, declType, getPrim(init)))
	}

	node := &ast.VarDefNode{Loc: startPos, Name: name, DeclType: declType, Init: init}
	p.scope[name] = node
	return node
}

// parseFnMake implements `name (param type, …) : return_type body end`
// (spec.md §4.2.4). The FNMAKE record is installed under its own name
// before the body is parsed so recursive self-calls resolve; since Go
// structs are mutated through a pointer, filling in Body after the
// fact serves the same purpose as the original's placeholder-then-
// replace without a second map write.
func (p *Parser) parseFnMake() ast.Node {
	startPos := p.tok.Pos
	name := p.tok.Content
	p.next() // consume name, now at '('
	p.next() // consume '(', now at first param or ')'

	fn := &ast.FnMakeNode{Loc: startPos, Name: name}
	bodyScope := p.scope.Clone()

	for p.tok.Type != lexer.RPAREN && p.tok.Type != lexer.EOF {
		if p.tok.Type == lexer.COMMA {
			p.next()
			continue
		}
		paramPos := p.tok.Pos
		paramName := p.tok.Content
		p.next() // consume param name, now at its type label
		paramType := types.ResolveKeyword(types.NewInScope(p.tok.Content))
		param := &ast.FnParamNode{Loc: paramPos, Name: paramName, ParamType: paramType}
		fn.Params = append(fn.Params, param)
		bodyScope[paramName] = param
		p.next()
	}
	if p.tok.Type == lexer.RPAREN {
		p.next() // consume ')'
	}

	if p.tok.Type != lexer.COLON {
		p.addHalt(p.tok.Pos, fmt.Sprintf("expected ':' before return type, got %s", p.tok.Type))
		return nil
	}
	p.next() // consume ':', now at return type label
	fn.ReturnType = types.ResolveKeyword(types.NewInScope(p.tok.Content))
	p.next() // consume return type label, now at body start

	p.scope[name] = fn
	bodyScope[name] = fn
	bodyScope[SelfReturnKey] = fn

	savedScope := p.scope
	p.scope = bodyScope

	var body []ast.Node
	for !(p.tok.Type == lexer.LABEL && p.tok.Content == "end") {
		if p.fatal {
			break
		}
		if p.tok.Type == lexer.EOF {
			p.addHalt(startPos, fmt.Sprintf("unexpected end of input in body of %q, expected 'end'", name))
			break
		}
		node := p.parse()
		if node != nil {
			body = append(body, node)
		}
	}
	if p.tok.Type == lexer.LABEL && p.tok.Content == "end" {
		p.next() // consume 'end'
	}

	p.scope = savedScope
	fn.Body = body
	return fn
}

// parseFnCall implements the named call form `name ! arg1, arg2, …;`
// (spec.md §4.2.5).
func (p *Parser) parseFnCall() ast.Node {
	startPos := p.tok.Pos
	name := p.tok.Content
	p.next() // consume name, now at '!'
	p.next() // consume '!', now at first arg token or ';'

	var groups [][]lexer.Token
	var cur []lexer.Token
	for p.tok.Type != lexer.SEMCOLON && p.tok.Type != lexer.EOF {
		cur = append(cur, p.tok)
		if p.tok.Type == lexer.COMMA {
			groups = append(groups, cur)
			cur = nil
		}
		if p.peek().Type == lexer.SEMCOLON || p.peek().Type == lexer.EOF {
			groups = append(groups, cur)
			cur = nil
		}
		p.next()
	}
	if p.tok.Type == lexer.SEMCOLON {
		p.next()
	}

	call := &ast.FnCallNode{Loc: startPos, Name: name}
	for _, grp := range groups {
		if len(grp) == 0 {
			continue
		}
		sub := New(grp, p.file, p.source, p.scope)
		arg := sub.parse()
		p.errs = append(p.errs, sub.errs...)
		if sub.fatal {
			p.fatal = true
		}
		if arg != nil {
			call.Args = append(call.Args, arg)
		}
	}

	p.resolveCall(call)
	return call
}

// parseFnCallAlt implements the alternative call form
// `!( name arg1 arg2 … )` (spec.md §4.2.5).
func (p *Parser) parseFnCallAlt() ast.Node {
	startPos := p.tok.Pos
	p.next() // consume '!', now at '('
	p.next() // consume '(', now at name
	name := p.tok.Content
	p.next() // consume name

	call := &ast.FnCallNode{Loc: startPos, Name: name}
	for p.tok.Type != lexer.RPAREN && p.tok.Type != lexer.EOF {
		if p.fatal {
			break
		}
		if p.tok.Type == lexer.COMMA {
			p.next()
			continue
		}
		arg := p.parse()
		if arg != nil {
			call.Args = append(call.Args, arg)
		}
	}
	if p.tok.Type == lexer.RPAREN {
		p.next()
	}

	p.resolveCall(call)
	return call
}

// parseReturn implements `ret <expr> ;` (spec.md §4.2.6).
func (p *Parser) parseReturn() ast.Node {
	startPos := p.tok.Pos
	p.next() // consume 'ret'

	value := p.parse()
	if p.tok.Type == lexer.SEMCOLON {
		p.next()
	}

	node := &ast.FnReturnNode{Loc: startPos, Value: value}

	bound, ok := p.scope[SelfReturnKey]
	if !ok {
		p.addHalt(startPos, "'ret' used outside of a function body")
		return node
	}
	fn := bound.(*ast.FnMakeNode)
	if value != nil && !types.SameKind(getPrim(value), fn.ReturnType) {
		p.addHalt(startPos, fmt.Sprintf("return type %s does not match declared return type %s of %q", getPrim(value), fn.ReturnType, fn.Name))
	}
	return node
}

// parseNumber classifies a NUMBER/NEGNUMBER token by the presence of
// '.' and a leading '-' (spec.md §4.2).
func (p *Parser) parseNumber() ast.Node {
	pos := p.tok.Pos
	content := p.tok.Content
	node := &ast.NumberNode{Loc: pos}

	hasDot := strings.Contains(content, ".")
	isNeg := strings.HasPrefix(content, "-")

	switch {
	case hasDot:
		f, _ := strconv.ParseFloat(content, 64)
		node.NumType = types.NewFloat(32)
		node.FloatVal = f
		node.IsFloat = true
	case isNeg:
		i, _ := strconv.ParseInt(content, 10, 64)
		node.NumType = types.NewSigInt(32)
		node.IntVal = i
	default:
		i, _ := strconv.ParseInt(content, 10, 64)
		node.NumType = types.NewInt(32)
		node.IntVal = i
	}

	p.next()
	return node
}

// parseOperand turns a binary-operator token into an OPERATOR node.
func (p *Parser) parseOperand() ast.Node {
	pos := p.tok.Pos
	var op ast.BinOp
	switch p.tok.Type {
	case lexer.PLUSBIN:
		op = ast.PLUS
	case lexer.SUBBIN:
		op = ast.SUB
	case lexer.MULBIN:
		op = ast.MUL
	case lexer.DIVBIN:
		op = ast.DIV
	default:
		p.addHalt(pos, fmt.Sprintf("%s cannot stand alone as an operator", p.tok.Type))
		p.next()
		return nil
	}
	node := &ast.OperatorNode{Loc: pos, Op: op}
	p.next()
	return node
}

// parseIdent resolves a bare LABEL against the current scope.
func (p *Parser) parseIdent() ast.Node {
	pos := p.tok.Pos
	name := p.tok.Content

	bound, ok := p.scope[name]
	if !ok {
		p.addHalt(pos, fmt.Sprintf("undeclared variable: cannot find %q", name))
		p.next()
		return &ast.LabelNode{Loc: pos, Name: name}
	}

	var varType types.Primitive
	switch t := bound.(type) {
	case *ast.VarDefNode:
		varType = t.DeclType
	case *ast.FnParamNode:
		varType = t.ParamType
	case *ast.FnMakeNode:
		varType = t.ReturnType
	}

	node := &ast.LabelNode{Loc: pos, Name: name, VarType: varType}
	p.next()
	return node
}

// parseString strips the surrounding quotes the lexer preserved.
func (p *Parser) parseString() ast.Node {
	pos := p.tok.Pos
	content := strings.ReplaceAll(p.tok.Content, `"`, "")
	node := &ast.StringNode{Loc: pos, Content: content, Length: len(content)}
	p.next()
	return node
}

// getPrim resolves the Primitive a parsed node stands for, mirroring
// the original compiler's get_prim (used while type-checking RPN
// expressions and call arguments).
func getPrim(n ast.Node) types.Primitive {
	switch t := n.(type) {
	case *ast.NumberNode:
		return t.NumType
	case *ast.StringNode:
		return types.StringType
	case *ast.OperatorNode:
		return types.OperatorType
	case *ast.LabelNode:
		return t.VarType
	case *ast.ExpNode:
		return t.ExpType
	case *ast.RPNExpNode:
		return t.ExpType
	case *ast.FnCallNode:
		return t.ReturnType
	default:
		return types.Primitive{}
	}
}

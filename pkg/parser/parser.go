// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/scanner"
	"github.com/mleku/sprig/pkg/token"
)

// Parser is the hand-written recursive-descent parser of spec §4.4,
// grounded in original_source/src/interpreter/parser/parser.py. It
// consumes a token.Token stream through a Controller and emits a CST whose
// rule names match the grammar rules.
type Parser struct {
	ctl *Controller
}

// New builds a Parser. Call Parse once per run.
func New() *Parser {
	return &Parser{ctl: NewController()}
}

// Parse runs the parser over scan and returns the root "start" node. Any
// unexpected token or unconsumed trailing token is a fatal *diag.Error.
func (p *Parser) Parse(scan *scanner.Scanner) (*Tree, error) {
	p.ctl.Reload(scan)
	root, err := p.start()
	if err != nil {
		return nil, err
	}
	tok, err := p.ctl.Next()
	if err != nil {
		return nil, err
	}
	if tok != nil {
		return nil, unexpected(tok, "", "expected no more tokens")
	}
	return root, nil
}

func unexpected(tok *token.Token, expected, note string) error {
	msg := "unexpected token type found: " + string(tok.Kind) + " " + tok.Text
	if expected != "" {
		msg += ", expected to see: " + expected
	}
	if note != "" {
		msg += "\n" + note
	}
	return diag.New(diag.UnexpectedToken, tok.Line, tok.Column, "%s", msg)
}

func is(tok *token.Token, k token.Kind) bool {
	return tok.Is(k)
}

func (p *Parser) strictMatch(expected token.Kind, note string) (*token.Token, error) {
	tok, err := p.ctl.Next()
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Kind != expected {
		if tok == nil {
			return nil, diag.New(diag.UnexpectedToken, 0, 0, "expected %s, found end of input. %s", expected, note)
		}
		return nil, unexpected(tok, string(expected), note)
	}
	return tok, nil
}

func (p *Parser) peekIs(k token.Kind) (bool, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return false, err
	}
	return is(tok, k), nil
}

// start: function_declaration*
func (p *Parser) start() (*Tree, error) {
	var children []any
	for {
		tok, err := p.ctl.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		decl, err := p.functionDeclaration()
		if err != nil {
			return nil, err
		}
		children = append(children, decl)
	}
	return NewTree("start", children...), nil
}

// function_declaration: NAME "(" function_parameters? ")" function_return_type "{" statements_block "}"
func (p *Parser) functionDeclaration() (*Tree, error) {
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.LEFT_PAREN, ""); err != nil {
		return nil, err
	}

	isEmpty, err := p.peekIs(token.RIGHT_PAREN)
	if err != nil {
		return nil, err
	}
	var params *Tree
	if isEmpty {
		params = NewTree("function_parameters")
	} else {
		params, err = p.functionParameters()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.strictMatch(token.RIGHT_PAREN, ""); err != nil {
		return nil, err
	}

	retType, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}

	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}

	return NewTree("function_declaration", name, params, retType, block), nil
}

// function_parameters: function_parameter ("," function_parameter)*
func (p *Parser) functionParameters() (*Tree, error) {
	first, err := p.functionParameter()
	if err != nil {
		return nil, err
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, err := p.ctl.Next(); err != nil {
			return nil, err
		}
		param, err := p.functionParameter()
		if err != nil {
			return nil, err
		}
		children = append(children, param)
	}
	return NewTree("function_parameters", children...), nil
}

// function_parameter: NAME type
func (p *Parser) functionParameter() (*Tree, error) {
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	typ, err := p.typeNode()
	if err != nil {
		return nil, err
	}
	return NewTree("function_parameter", name, typ), nil
}

// type: NAME ("." NAME)*
func (p *Parser) typeNode() (*Tree, error) {
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	children := []any{name}
	for {
		tok, err := p.ctl.Peek()
		if err != nil {
			return nil, err
		}
		if !is(tok, token.DOT) {
			break
		}
		if _, err := p.ctl.Next(); err != nil {
			return nil, err
		}
		next, err := p.strictMatch(token.NAME, "")
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return NewTree("type", children...), nil
}

// statements_block: statement*
func (p *Parser) statementsBlock() (*Tree, error) {
	var children []any
	for {
		ok, err := p.peekIs(token.RIGHT_CURLY_BR)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	return NewTree("statements_block", children...), nil
}

// statement: jump | for | while | assignment | expression
func (p *Parser) statement() (any, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}
	switch {
	case is(tok, token.RETURN), is(tok, token.BREAK):
		return p.jumpStatement()
	case is(tok, token.FOR):
		return p.forStatement()
	case is(tok, token.WHILE):
		return p.whileStatement()
	case is(tok, token.VAR), is(tok, token.LET):
		return p.assignment(nil)
	default:
		expr, err := p.prefixUnaryExpression()
		if err != nil {
			return nil, err
		}
		ok, err := p.peekIs(token.ASSIGNMENT_AND_OPERATOR)
		if err != nil {
			return nil, err
		}
		if !ok {
			ok, err = p.peekIs(token.ASSIGNMENT_OPERATOR)
			if err != nil {
				return nil, err
			}
		}
		if ok {
			return p.assignment(expr)
		}
		return p.expression(expr)
	}
}

// jump_statement: return_statement | BREAK
func (p *Parser) jumpStatement() (any, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}
	if is(tok, token.RETURN) {
		return p.returnStatement()
	}
	return p.strictMatch(token.BREAK, "")
}

// expression: disjunction
func (p *Parser) expression(prebuilt any) (any, error) {
	return p.disjunction(prebuilt)
}

// return_statement: RETURN expression?
func (p *Parser) returnStatement() (*Tree, error) {
	if _, err := p.strictMatch(token.RETURN, ""); err != nil {
		return nil, err
	}

	var nextIsNewline bool
	_, err := p.ctl.IncludeNewlines(func() (bool, error) {
		tok, err := p.ctl.Peek()
		if err != nil {
			return false, err
		}
		nextIsNewline = is(tok, token.NEWLINE)
		if nextIsNewline {
			// Consume the NEWLINE so it does not stay buffered once
			// newline-hiding is restored.
			if _, err := p.ctl.Next(); err != nil {
				return false, err
			}
		}
		return nextIsNewline, nil
	})
	if err != nil {
		return nil, err
	}

	if nextIsNewline {
		return NewTree("return_statement"), nil
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	return NewTree("return_statement", expr), nil
}

// disjunction: conjunction (OR conjunction)*
func (p *Parser) disjunction(prebuilt any) (any, error) {
	first, err := p.conjunction(prebuilt)
	if err != nil {
		return nil, err
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.OR)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, err := p.ctl.Next(); err != nil {
			return nil, err
		}
		next, err := p.conjunction(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("disjunction", children...), nil
}

// conjunction: equality (AND equality)*
func (p *Parser) conjunction(prebuilt any) (any, error) {
	first, err := p.equality(prebuilt)
	if err != nil {
		return nil, err
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.AND)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, err := p.ctl.Next(); err != nil {
			return nil, err
		}
		next, err := p.equality(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("conjunction", children...), nil
}

// equality: comparison (EQUALITY_OPERATOR comparison)?
func (p *Parser) equality(prebuilt any) (any, error) {
	first, err := p.comparison(prebuilt)
	if err != nil {
		return nil, err
	}
	children := []any{first}
	ok, err := p.peekIs(token.EQUALITY_OPERATOR)
	if err != nil {
		return nil, err
	}
	if ok {
		op, err := p.ctl.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, op)
		next, err := p.comparison(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("equality", children...), nil
}

// comparison: additive_expression (COMPARISON_OPERATOR additive_expression)*
func (p *Parser) comparison(prebuilt any) (any, error) {
	first, err := p.additiveExpression(prebuilt)
	if err != nil {
		return nil, err
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.COMPARISON_OPERATOR)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		op, err := p.ctl.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, op)
		next, err := p.additiveExpression(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("comparison", children...), nil
}

// additive_expression: multiplicative_expression (ADDITIVE_OPERATOR multiplicative_expression)*
func (p *Parser) additiveExpression(prebuilt any) (any, error) {
	first, err := p.multiplicativeExpression(prebuilt)
	if err != nil {
		return nil, err
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.ADDITIVE_OPERATOR)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		op, err := p.ctl.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, op)
		next, err := p.multiplicativeExpression(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("additive_expression", children...), nil
}

// multiplicative_expression: prefix_unary_expression (MULTIPLICATIVE_OPERATOR prefix_unary_expression)*
func (p *Parser) multiplicativeExpression(prebuilt any) (any, error) {
	var first any
	var err error
	if prebuilt != nil {
		first = prebuilt
	} else {
		first, err = p.prefixUnaryExpression()
		if err != nil {
			return nil, err
		}
	}
	children := []any{first}
	for {
		ok, err := p.peekIs(token.MULTIPLICATIVE_OPERATOR)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		op, err := p.ctl.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, op)
		next, err := p.prefixUnaryExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("multiplicative_expression", children...), nil
}

// prefix_unary_expression: (NEGATION | ADDITIVE_OPERATOR)? postfix_unary_expression
func (p *Parser) prefixUnaryExpression() (any, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}
	var children []any
	if is(tok, token.NEGATION) || is(tok, token.ADDITIVE_OPERATOR) {
		op, err := p.ctl.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, op)
	}
	primary, err := p.postfixUnaryExpression()
	if err != nil {
		return nil, err
	}
	children = append(children, primary)
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("prefix_unary_expression", children...), nil
}

// postfix_unary_expression: primary_expression postfix_unary_suffix*
func (p *Parser) postfixUnaryExpression() (any, error) {
	primary, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}
	children := []any{primary}
	for {
		tok, err := p.ctl.Peek()
		if err != nil {
			return nil, err
		}
		if !(is(tok, token.LEFT_PAREN) || is(tok, token.LEFT_SQR_BR) || is(tok, token.DOT)) {
			break
		}
		suffix, err := p.postfixUnarySuffix()
		if err != nil {
			return nil, err
		}
		children = append(children, suffix)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return NewTree("postfix_unary_expression", children...), nil
}

// postfix_unary_suffix: call_suffix | indexing_suffix | navigation_suffix
func (p *Parser) postfixUnarySuffix() (*Tree, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}
	switch {
	case is(tok, token.LEFT_PAREN):
		return p.callSuffix()
	case is(tok, token.LEFT_SQR_BR):
		return p.indexingSuffix()
	default:
		if tok == nil || tok.Kind != token.DOT {
			if tok == nil {
				return nil, diag.New(diag.UnexpectedToken, 0, 0, "expected '(' or '[' or '.', found end of input")
			}
			return nil, unexpected(tok, "'(' or '[' or '.'",
				"tried to match postfix_unary_suffix, other possible tokens: '(' or '['")
		}
		return p.navigationSuffix()
	}
}

// call_suffix: "(" (expression ("," expression)*)? ")"
func (p *Parser) callSuffix() (*Tree, error) {
	var children []any
	if _, err := p.strictMatch(token.LEFT_PAREN, ""); err != nil {
		return nil, err
	}

	ok, err := p.peekIs(token.RIGHT_PAREN)
	if err != nil {
		return nil, err
	}
	if !ok {
		expr, err := p.expression(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}

	for {
		ok, err := p.peekIs(token.RIGHT_PAREN)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if _, err := p.strictMatch(token.COMMA, ""); err != nil {
			return nil, err
		}
		expr, err := p.expression(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}

	if _, err := p.strictMatch(token.RIGHT_PAREN, ""); err != nil {
		return nil, err
	}
	return NewTree("call_suffix", children...), nil
}

// indexing_suffix: "[" expression "]"
func (p *Parser) indexingSuffix() (*Tree, error) {
	if _, err := p.strictMatch(token.LEFT_SQR_BR, ""); err != nil {
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_SQR_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("indexing_suffix", expr), nil
}

// navigation_suffix: "." NAME
func (p *Parser) navigationSuffix() (*Tree, error) {
	if _, err := p.strictMatch(token.DOT, ""); err != nil {
		return nil, err
	}
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	return NewTree("navigation_suffix", name), nil
}

// primary_expression: "(" expression ")" | NAME | simple_literal | collection_literal | if_expression
func (p *Parser) primaryExpression() (any, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}

	if is(tok, token.NAME) {
		return p.ctl.Next()
	}
	if is(tok, token.LEFT_PAREN) {
		return p.parenthesizedExpression()
	}

	if lit, ok, err := p.tryBuildSimpleLiteral(); err != nil {
		return nil, err
	} else if ok {
		return lit, nil
	}

	if is(tok, token.LEFT_SQR_BR) {
		return p.collectionLiteral()
	}
	if is(tok, token.IF) {
		return p.ifExpression()
	}

	if tok == nil {
		return nil, diag.New(diag.PrimaryExpressionExpected, 0, 0, "primary expression cannot start with end of input")
	}
	return nil, diag.New(diag.PrimaryExpressionExpected, tok.Line, tok.Column,
		"primary expression cannot start with token: '%s' (%s)", tok.Text, tok.Kind)
}

var simpleLiteralKinds = []token.Kind{token.STRING, token.BOOLEAN, token.DEC_NUMBER, token.FLOAT_NUMBER}

func (p *Parser) tryBuildSimpleLiteral() (*token.Token, bool, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, false, err
	}
	for _, k := range simpleLiteralKinds {
		if is(tok, k) {
			next, err := p.ctl.Next()
			return next, true, err
		}
	}
	return nil, false, nil
}

func (p *Parser) parenthesizedExpression() (any, error) {
	if _, err := p.strictMatch(token.LEFT_PAREN, ""); err != nil {
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_PAREN, ""); err != nil {
		return nil, err
	}
	return NewTree("parenthesized_expression", expr), nil
}

// collection_literal: "[" (expression ("," expression)*)? "]"
func (p *Parser) collectionLiteral() (*Tree, error) {
	var children []any
	if _, err := p.strictMatch(token.LEFT_SQR_BR, ""); err != nil {
		return nil, err
	}

	ok, err := p.peekIs(token.RIGHT_SQR_BR)
	if err != nil {
		return nil, err
	}
	if !ok {
		expr, err := p.expression(nil)
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
		for {
			ok, err := p.peekIs(token.COMMA)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if _, err := p.ctl.Next(); err != nil {
				return nil, err
			}
			expr, err := p.expression(nil)
			if err != nil {
				return nil, err
			}
			children = append(children, expr)
		}
	}

	if _, err := p.strictMatch(token.RIGHT_SQR_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("collection_literal", children...), nil
}

// if_expression: IF expression "{" statements_block "}" elseif_expression* else_expression?
func (p *Parser) ifExpression() (*Tree, error) {
	var children []any
	if _, err := p.strictMatch(token.IF, ""); err != nil {
		return nil, err
	}
	cond, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	children = append(children, cond)

	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	children = append(children, block)

	for {
		ok, err := p.peekIs(token.ELIF)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		elif, err := p.elseifExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, elif)
	}

	ok, err := p.peekIs(token.ELSE)
	if err != nil {
		return nil, err
	}
	if ok {
		els, err := p.elseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, els)
	}

	return NewTree("if_expression", children...), nil
}

// else_expression: ELSE "{" statements_block "}"
func (p *Parser) elseExpression() (*Tree, error) {
	if _, err := p.ctl.Next(); err != nil { // ELSE
		return nil, err
	}
	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("else_expression", block), nil
}

// elseif_expression: ELIF expression "{" statements_block "}"
func (p *Parser) elseifExpression() (*Tree, error) {
	if _, err := p.ctl.Next(); err != nil { // ELIF
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("elseif_expression", expr, block), nil
}

// assignment: variable_declaration ASSIGNMENT_OPERATOR expression
//           | prefix_unary_expression (ASSIGNMENT_OPERATOR | ASSIGNMENT_AND_OPERATOR) expression
func (p *Parser) assignment(prebuilt any) (*Tree, error) {
	tok, err := p.ctl.Peek()
	if err != nil {
		return nil, err
	}
	if is(tok, token.VAR) || is(tok, token.LET) {
		decl, err := p.variableDeclaration()
		if err != nil {
			return nil, err
		}
		op, err := p.strictMatch(token.ASSIGNMENT_OPERATOR, "")
		if err != nil {
			return nil, err
		}
		expr, err := p.expression(nil)
		if err != nil {
			return nil, err
		}
		return NewTree("assignment", decl, op, expr), nil
	}

	var prefixExpr any
	if prebuilt != nil {
		prefixExpr = prebuilt
	} else {
		prefixExpr, err = p.prefixUnaryExpression()
		if err != nil {
			return nil, err
		}
	}
	opKind := token.ASSIGNMENT_AND_OPERATOR
	isPlain, err := p.peekIs(token.ASSIGNMENT_OPERATOR)
	if err != nil {
		return nil, err
	}
	if isPlain {
		opKind = token.ASSIGNMENT_OPERATOR
	}
	op, err := p.strictMatch(opKind, "")
	if err != nil {
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	return NewTree("assignment", prefixExpr, op, expr), nil
}

// variable_declaration: (VAR | LET) NAME type
func (p *Parser) variableDeclaration() (*Tree, error) {
	modifier, err := p.ctl.Next()
	if err != nil {
		return nil, err
	}
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	typ, err := p.typeNode()
	if err != nil {
		return nil, err
	}
	return NewTree("variable_declaration", modifier, name, typ), nil
}

// for_statement: FOR NAME IN expression "{" statements_block "}"
func (p *Parser) forStatement() (*Tree, error) {
	if _, err := p.strictMatch(token.FOR, ""); err != nil {
		return nil, err
	}
	name, err := p.strictMatch(token.NAME, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.IN, ""); err != nil {
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("for_statement", name, expr, block), nil
}

// while_statement: WHILE expression "{" statements_block "}"
func (p *Parser) whileStatement() (*Tree, error) {
	if _, err := p.strictMatch(token.WHILE, ""); err != nil {
		return nil, err
	}
	expr, err := p.expression(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.LEFT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	block, err := p.statementsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.strictMatch(token.RIGHT_CURLY_BR, ""); err != nil {
		return nil, err
	}
	return NewTree("while_statement", expr, block), nil
}

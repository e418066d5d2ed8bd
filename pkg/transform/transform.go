// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements C5, the tree transformer that lowers a
// parser.Tree CST into the tagged-variant ast defined in pkg/ast. Each
// CST rule name maps deterministically to one AST node kind; literal
// tokens are reshaped per the table in spec §4.5. Every node built here
// receives a fresh monotonically increasing id and the source line of
// its first token.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mleku/sprig/pkg/ast"
	"github.com/mleku/sprig/pkg/parser"
	"github.com/mleku/sprig/pkg/token"
)

// Transformer lowers one parsed CST into an AST, assigning ids as it
// goes. A Transformer is single-use: build one per run with New.
type Transformer struct {
	nextID int
}

// New builds a Transformer whose first assigned id is 0.
func New() *Transformer {
	return &Transformer{}
}

func (t *Transformer) id() int {
	id := t.nextID
	t.nextID++
	return id
}

func (t *Transformer) base(line int) ast.Base {
	return ast.Base{ID: t.id(), Line: line}
}

// Transform lowers root (the CST's "start" node) into an *ast.Start.
func (t *Transformer) Transform(root *parser.Tree) (*ast.Start, error) {
	if root == nil || root.Rule != "start" {
		return nil, fmt.Errorf("transform: expected start node, got %v", root)
	}
	funcs := make([]*ast.FunctionDecl, 0, len(root.Children))
	for _, child := range root.Children {
		sub, ok := child.(*parser.Tree)
		if !ok {
			return nil, fmt.Errorf("transform: expected function_declaration, got %T", child)
		}
		fn, err := t.functionDecl(sub)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return &ast.Start{Base: t.base(firstLine(root)), Functions: funcs}, nil
}

func (t *Transformer) functionDecl(tr *parser.Tree) (*ast.FunctionDecl, error) {
	nameTok := tr.Token(0)
	if nameTok == nil {
		return nil, fmt.Errorf("transform: function_declaration missing name")
	}
	params, err := t.functionParams(tr.Subtree(1))
	if err != nil {
		return nil, err
	}
	retTok := tr.Token(2)
	if retTok == nil {
		return nil, fmt.Errorf("transform: function_declaration missing return type")
	}
	body, err := t.statementsBlock(tr.Subtree(3))
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Base:       t.base(nameTok.Line),
		Name:       nameTok.Text,
		Params:     params,
		ReturnType: ast.ParseTypeName(retTok.Text),
		Body:       body,
	}, nil
}

func (t *Transformer) functionParams(tr *parser.Tree) ([]*ast.FunctionParam, error) {
	if tr == nil {
		return nil, nil
	}
	params := make([]*ast.FunctionParam, 0, len(tr.Children))
	for _, child := range tr.Children {
		sub, ok := child.(*parser.Tree)
		if !ok {
			return nil, fmt.Errorf("transform: expected function_parameter, got %T", child)
		}
		nameTok := sub.Token(0)
		if nameTok == nil {
			return nil, fmt.Errorf("transform: function_parameter missing name")
		}
		typ, err := t.typeNode(sub.Subtree(1))
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.FunctionParam{
			Base: t.base(nameTok.Line),
			Name: nameTok.Text,
			Type: typ,
		})
	}
	return params, nil
}

func (t *Transformer) typeNode(tr *parser.Tree) (ast.UnitType, error) {
	if tr == nil {
		return nil, fmt.Errorf("transform: missing type node")
	}
	names := make([]string, 0, len(tr.Children))
	for i := range tr.Children {
		tok := tr.Token(i)
		if tok == nil {
			return nil, fmt.Errorf("transform: type node child %d is not a token", i)
		}
		names = append(names, tok.Text)
	}
	return ast.ParseTypeName(strings.Join(names, ".")), nil
}

func (t *Transformer) statementsBlock(tr *parser.Tree) (*ast.StatementsBlock, error) {
	if tr == nil {
		return nil, fmt.Errorf("transform: missing statements_block")
	}
	stmts := make([]ast.Stmt, 0, len(tr.Children))
	for _, child := range tr.Children {
		stmt, err := t.stmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.StatementsBlock{Base: t.base(firstLine(tr)), Statements: stmts}, nil
}

func (t *Transformer) stmt(node any) (ast.Stmt, error) {
	if tok, ok := node.(*token.Token); ok {
		if tok.Kind == token.BREAK {
			return &ast.BreakStmt{Base: t.base(tok.Line)}, nil
		}
		expr, err := t.expr(node)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Base: t.base(tok.Line), X: expr}, nil
	}

	tr, ok := node.(*parser.Tree)
	if !ok {
		return nil, fmt.Errorf("transform: unexpected statement node %T", node)
	}

	switch tr.Rule {
	case "return_statement":
		return t.returnStmt(tr)
	case "for_statement":
		return t.forStmt(tr)
	case "while_statement":
		return t.whileStmt(tr)
	case "assignment":
		return t.assignment(tr)
	case "if_expression":
		return t.ifExpr(tr)
	default:
		expr, err := t.expr(node)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Base: t.base(firstLine(tr)), X: expr}, nil
	}
}

func (t *Transformer) returnStmt(tr *parser.Tree) (*ast.ReturnStmt, error) {
	stmt := &ast.ReturnStmt{Base: t.base(firstLine(tr))}
	if len(tr.Children) == 0 {
		return stmt, nil
	}
	expr, err := t.expr(tr.Children[0])
	if err != nil {
		return nil, err
	}
	stmt.Expr = expr
	return stmt, nil
}

func (t *Transformer) forStmt(tr *parser.Tree) (*ast.ForStmt, error) {
	nameTok := tr.Token(0)
	if nameTok == nil {
		return nil, fmt.Errorf("transform: for_statement missing loop variable")
	}
	iterable, err := t.expr(tr.Children[1])
	if err != nil {
		return nil, err
	}
	body, err := t.statementsBlock(tr.Subtree(2))
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Base:     t.base(nameTok.Line),
		VarName:  nameTok.Text,
		Iterable: iterable,
		Body:     body,
	}, nil
}

func (t *Transformer) whileStmt(tr *parser.Tree) (*ast.WhileStmt, error) {
	cond, err := t.expr(tr.Children[0])
	if err != nil {
		return nil, err
	}
	body, err := t.statementsBlock(tr.Subtree(1))
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: t.base(firstLine(tr)), Cond: cond, Body: body}, nil
}

func (t *Transformer) assignment(tr *parser.Tree) (*ast.Assignment, error) {
	if len(tr.Children) != 3 {
		return nil, fmt.Errorf("transform: assignment expects 3 children, got %d", len(tr.Children))
	}
	opTok := tr.Token(1)
	if opTok == nil {
		return nil, fmt.Errorf("transform: assignment missing operator")
	}
	right, err := t.expr(tr.Children[2])
	if err != nil {
		return nil, err
	}

	if leftTree, ok := tr.Children[0].(*parser.Tree); ok && leftTree.Rule == "variable_declaration" {
		left, err := t.variableDecl(leftTree)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Base: t.base(left.Line), Left: left, Operator: opTok.Text, Right: right}, nil
	}

	left, err := t.expr(tr.Children[0])
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Base: t.base(firstLine(tr)), Left: left, Operator: opTok.Text, Right: right}, nil
}

func (t *Transformer) variableDecl(tr *parser.Tree) (*ast.VariableDecl, error) {
	modTok := tr.Token(0)
	nameTok := tr.Token(1)
	if modTok == nil || nameTok == nil {
		return nil, fmt.Errorf("transform: variable_declaration missing modifier or name")
	}
	typ, err := t.typeNode(tr.Subtree(2))
	if err != nil {
		return nil, err
	}
	mode := ast.Var
	if modTok.Kind == token.LET {
		mode = ast.Let
	}
	return &ast.VariableDecl{
		Base:         t.base(nameTok.Line),
		Mode:         mode,
		Name:         nameTok.Text,
		DeclaredType: typ,
	}, nil
}

func (t *Transformer) ifExpr(tr *parser.Tree) (*ast.IfExpr, error) {
	if len(tr.Children) < 2 {
		return nil, fmt.Errorf("transform: if_expression expects at least 2 children")
	}
	cond, err := t.expr(tr.Children[0])
	if err != nil {
		return nil, err
	}
	then, err := t.statementsBlock(tr.Subtree(1))
	if err != nil {
		return nil, err
	}

	ifExpr := &ast.IfExpr{Base: t.base(firstLine(tr)), Cond: cond, Then: then}
	for i := 2; i < len(tr.Children); i++ {
		sub, ok := tr.Children[i].(*parser.Tree)
		if !ok {
			return nil, fmt.Errorf("transform: if_expression child %d has unexpected shape", i)
		}
		switch sub.Rule {
		case "elseif_expression":
			elifCond, err := t.expr(sub.Children[0])
			if err != nil {
				return nil, err
			}
			elifBlock, err := t.statementsBlock(sub.Subtree(1))
			if err != nil {
				return nil, err
			}
			ifExpr.Elifs = append(ifExpr.Elifs, &ast.ElifBranch{
				Base: t.base(firstLine(sub)), Cond: elifCond, Body: elifBlock,
			})
		case "else_expression":
			elseBlock, err := t.statementsBlock(sub.Subtree(0))
			if err != nil {
				return nil, err
			}
			ifExpr.Else = elseBlock
		default:
			return nil, fmt.Errorf("transform: unexpected if_expression tail rule %q", sub.Rule)
		}
	}
	return ifExpr, nil
}

// expr lowers any CST node appearing in expression position: a leaf
// token (literal or bare name) or one of the expression-rule subtrees.
func (t *Transformer) expr(node any) (ast.Expr, error) {
	switch v := node.(type) {
	case *token.Token:
		return t.literalOrName(v)
	case *parser.Tree:
		return t.exprTree(v)
	default:
		return nil, fmt.Errorf("transform: unexpected expression node %T", node)
	}
}

func (t *Transformer) literalOrName(tok *token.Token) (ast.Expr, error) {
	switch tok.Kind {
	case token.NAME:
		return &ast.Identifier{Base: t.base(tok.Line), Name: tok.Text}, nil
	case token.DEC_NUMBER:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("transform: invalid int literal %q: %w", tok.Text, err)
		}
		return &ast.IntLiteral{Base: t.base(tok.Line), Value: v}, nil
	case token.FLOAT_NUMBER:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("transform: invalid float literal %q: %w", tok.Text, err)
		}
		return &ast.FloatLiteral{Base: t.base(tok.Line), Value: v}, nil
	case token.BOOLEAN:
		return &ast.BoolLiteral{Base: t.base(tok.Line), Value: tok.Text == "true"}, nil
	case token.STRING:
		return &ast.StringLiteral{Base: t.base(tok.Line), Value: strings.Trim(tok.Text, `"`)}, nil
	default:
		return nil, fmt.Errorf("transform: token %s cannot appear in expression position", tok.Kind)
	}
}

func (t *Transformer) exprTree(tr *parser.Tree) (ast.Expr, error) {
	switch tr.Rule {
	case "disjunction":
		return t.fixedOpChain(tr, ast.OpDisjunction, "or")
	case "conjunction":
		return t.fixedOpChain(tr, ast.OpConjunction, "and")
	case "equality":
		return t.operatorChain(tr, ast.OpEquality)
	case "comparison":
		return t.operatorChain(tr, ast.OpComparison)
	case "additive_expression":
		return t.operatorChain(tr, ast.OpAdditive)
	case "multiplicative_expression":
		return t.operatorChain(tr, ast.OpMultiplicative)
	case "prefix_unary_expression":
		return t.prefixExpr(tr)
	case "postfix_unary_expression":
		return t.postfixExpr(tr)
	case "parenthesized_expression":
		inner, err := t.expr(tr.Children[0])
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Base: t.base(firstLine(tr)), Inner: inner}, nil
	case "collection_literal":
		return t.collectionLiteral(tr)
	case "if_expression":
		return t.ifExpr(tr)
	case "assignment":
		return t.assignment(tr)
	default:
		return nil, fmt.Errorf("transform: unexpected expression rule %q", tr.Rule)
	}
}

// fixedOpChain lowers disjunction/conjunction nodes, whose children are
// bare operands (the operator is the same token kind throughout, so the
// parser does not record it per-position).
func (t *Transformer) fixedOpChain(tr *parser.Tree, kind ast.BinOpKind, op string) (ast.Expr, error) {
	operands := make([]ast.Expr, 0, len(tr.Children))
	for _, child := range tr.Children {
		e, err := t.expr(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, e)
	}
	operators := make([]string, 0, len(operands)-1)
	for i := 0; i < len(operands)-1; i++ {
		operators = append(operators, op)
	}
	return &ast.BinaryExpr{Base: t.base(firstLine(tr)), Kind: kind, Operands: operands, Operators: operators}, nil
}

// operatorChain lowers equality/comparison/additive/multiplicative
// nodes, whose children alternate operand, operator token, operand, ...
func (t *Transformer) operatorChain(tr *parser.Tree, kind ast.BinOpKind) (ast.Expr, error) {
	if len(tr.Children)%2 != 1 {
		return nil, fmt.Errorf("transform: operator chain %q has even child count %d", tr.Rule, len(tr.Children))
	}
	var operands []ast.Expr
	var operators []string
	for i := 0; i < len(tr.Children); i += 2 {
		e, err := t.expr(tr.Children[i])
		if err != nil {
			return nil, err
		}
		operands = append(operands, e)
		if i+1 < len(tr.Children) {
			opTok, ok := tr.Children[i+1].(*token.Token)
			if !ok {
				return nil, fmt.Errorf("transform: operator chain %q expected operator token at %d", tr.Rule, i+1)
			}
			operators = append(operators, opTok.Text)
		}
	}
	return &ast.BinaryExpr{Base: t.base(firstLine(tr)), Kind: kind, Operands: operands, Operators: operators}, nil
}

func (t *Transformer) prefixExpr(tr *parser.Tree) (ast.Expr, error) {
	if len(tr.Children) != 2 {
		return nil, fmt.Errorf("transform: prefix_unary_expression expects 2 children, got %d", len(tr.Children))
	}
	opTok := tr.Token(0)
	if opTok == nil {
		return nil, fmt.Errorf("transform: prefix_unary_expression missing operator")
	}
	inner, err := t.expr(tr.Children[1])
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpr{Base: t.base(opTok.Line), Operator: opTok.Text, Inner: inner}, nil
}

func (t *Transformer) postfixExpr(tr *parser.Tree) (ast.Expr, error) {
	if len(tr.Children) == 0 {
		return nil, fmt.Errorf("transform: postfix_unary_expression has no children")
	}
	primary, err := t.expr(tr.Children[0])
	if err != nil {
		return nil, err
	}
	suffixes := make([]ast.Suffix, 0, len(tr.Children)-1)
	for _, child := range tr.Children[1:] {
		sub, ok := child.(*parser.Tree)
		if !ok {
			return nil, fmt.Errorf("transform: postfix suffix has unexpected shape %T", child)
		}
		suffix, err := t.suffix(sub)
		if err != nil {
			return nil, err
		}
		suffixes = append(suffixes, suffix)
	}
	return &ast.PostfixExpr{Base: t.base(firstLine(tr)), Primary: primary, Suffixes: suffixes}, nil
}

func (t *Transformer) suffix(tr *parser.Tree) (ast.Suffix, error) {
	switch tr.Rule {
	case "call_suffix":
		args := make([]ast.Expr, 0, len(tr.Children))
		for _, child := range tr.Children {
			arg, err := t.expr(child)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ast.CallSuffix{Base: t.base(firstLine(tr)), Args: args}, nil
	case "indexing_suffix":
		idx, err := t.expr(tr.Children[0])
		if err != nil {
			return nil, err
		}
		return &ast.IndexSuffix{Base: t.base(firstLine(tr)), Index: idx}, nil
	case "navigation_suffix":
		nameTok := tr.Token(0)
		if nameTok == nil {
			return nil, fmt.Errorf("transform: navigation_suffix missing name")
		}
		return &ast.NavSuffix{Base: t.base(nameTok.Line), Name: nameTok.Text}, nil
	default:
		return nil, fmt.Errorf("transform: unexpected suffix rule %q", tr.Rule)
	}
}

func (t *Transformer) collectionLiteral(tr *parser.Tree) (ast.Expr, error) {
	elements := make([]ast.Expr, 0, len(tr.Children))
	for _, child := range tr.Children {
		e, err := t.expr(child)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return &ast.CollectionLiteral{Base: t.base(firstLine(tr)), Elements: elements}, nil
}

// firstLine finds the source line of the first token reachable from
// node, depth-first, for assigning a representative line to nodes built
// from subtrees that carry no token of their own.
func firstLine(node any) int {
	switch v := node.(type) {
	case *token.Token:
		return v.Line
	case *parser.Tree:
		for _, child := range v.Children {
			if line := firstLine(child); line != 0 {
				return line
			}
		}
	}
	return 0
}

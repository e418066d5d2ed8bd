// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"testing"

	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/grammar"
	"github.com/mleku/sprig/pkg/scanner"
	"github.com/mleku/sprig/pkg/token"
)

func parse(t *testing.T, source string) (*Tree, error) {
	t.Helper()
	scan := scanner.New(grammar.Default, scanner.NewCharSource(source))
	return New().Parse(scan)
}

func mustParse(t *testing.T, source string) *Tree {
	t.Helper()
	tree, err := parse(t, source)
	if err != nil {
		t.Fatalf("parse(%q) error = %v", source, err)
	}
	return tree
}

// firstStatement digs out the single statement of main's body, for tests
// that only care about one expression or statement shape.
func firstStatement(t *testing.T, tree *Tree) any {
	t.Helper()
	fn := tree.Subtree(0)
	if fn == nil || fn.Rule != "function_declaration" {
		t.Fatalf("expected a function_declaration, got %+v", tree)
	}
	block := fn.Subtree(3)
	if block == nil || block.Rule != "statements_block" || len(block.Children) == 0 {
		t.Fatalf("expected a non-empty statements_block, got %+v", fn)
	}
	return block.Children[0]
}

func TestPrecedenceAdditiveOverComparison(t *testing.T) {
	tree := mustParse(t, "main() None { 1 + 2 < 3 * 4 }")
	stmt := firstStatement(t, tree)
	cmp, ok := stmt.(*Tree)
	if !ok || cmp.Rule != "comparison" {
		t.Fatalf("expected top-level comparison, got %+v", stmt)
	}
	left, ok := cmp.Children[0].(*Tree)
	if !ok || left.Rule != "additive_expression" {
		t.Fatalf("expected left side to be additive_expression, got %+v", cmp.Children[0])
	}
	right, ok := cmp.Children[2].(*Tree)
	if !ok || right.Rule != "multiplicative_expression" {
		t.Fatalf("expected right side to be multiplicative_expression, got %+v", cmp.Children[2])
	}
}

func TestPrecedenceMultiplicativeOverAdditive(t *testing.T) {
	tree := mustParse(t, "main() None { 2 + 3 * 4 }")
	stmt := firstStatement(t, tree)
	add, ok := stmt.(*Tree)
	if !ok || add.Rule != "additive_expression" {
		t.Fatalf("expected top-level additive_expression, got %+v", stmt)
	}
	if len(add.Children) != 3 {
		t.Fatalf("expected 3 children (left, op, right), got %d", len(add.Children))
	}
	right, ok := add.Children[2].(*Tree)
	if !ok || right.Rule != "multiplicative_expression" {
		t.Fatalf("expected right operand to be multiplicative_expression, got %+v", add.Children[2])
	}
}

func TestPrecedenceDisjunctionOverConjunction(t *testing.T) {
	tree := mustParse(t, "main() None { true and false or true }")
	stmt := firstStatement(t, tree)
	disj, ok := stmt.(*Tree)
	if !ok || disj.Rule != "disjunction" {
		t.Fatalf("expected top-level disjunction, got %+v", stmt)
	}
	left, ok := disj.Children[0].(*Tree)
	if !ok || left.Rule != "conjunction" {
		t.Fatalf("expected left disjunct to be a conjunction, got %+v", disj.Children[0])
	}
}

func TestPrecedenceUnaryBindsTighterThanMultiplicative(t *testing.T) {
	tree := mustParse(t, "main() None { -1 * 2 }")
	stmt := firstStatement(t, tree)
	mul, ok := stmt.(*Tree)
	if !ok || mul.Rule != "multiplicative_expression" {
		t.Fatalf("expected top-level multiplicative_expression, got %+v", stmt)
	}
	left, ok := mul.Children[0].(*Tree)
	if !ok || left.Rule != "prefix_unary_expression" {
		t.Fatalf("expected left operand to be prefix_unary_expression, got %+v", mul.Children[0])
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	tree := mustParse(t, "main() None { (1 + 2) * 3 }")
	stmt := firstStatement(t, tree)
	mul, ok := stmt.(*Tree)
	if !ok || mul.Rule != "multiplicative_expression" {
		t.Fatalf("expected top-level multiplicative_expression, got %+v", stmt)
	}
	left, ok := mul.Children[0].(*Tree)
	if !ok || left.Rule != "parenthesized_expression" {
		t.Fatalf("expected left operand to be parenthesized_expression, got %+v", mul.Children[0])
	}
}

func TestStatementStartVariableDeclarationDisambiguation(t *testing.T) {
	tree := mustParse(t, "main() None { let a int = 1 }")
	stmt := firstStatement(t, tree)
	assign, ok := stmt.(*Tree)
	if !ok || assign.Rule != "assignment" {
		t.Fatalf("expected top-level assignment for a let-statement, got %+v", stmt)
	}
	decl := assign.Subtree(0)
	if decl == nil || decl.Rule != "variable_declaration" {
		t.Fatalf("expected assignment's left side to be variable_declaration, got %+v", assign.Children[0])
	}
}

func TestStatementStartCompoundAssignmentDisambiguation(t *testing.T) {
	tree := mustParse(t, "main() None { x += 1 }")
	stmt := firstStatement(t, tree)
	assign, ok := stmt.(*Tree)
	if !ok || assign.Rule != "assignment" {
		t.Fatalf("expected top-level assignment for a compound-operator statement, got %+v", stmt)
	}
	op := assign.Token(1)
	if op == nil || op.Kind != token.ASSIGNMENT_AND_OPERATOR {
		t.Fatalf("expected assignment operator token, got %+v", assign.Children[1])
	}
}

func TestStatementStartBareExpressionDisambiguation(t *testing.T) {
	tree := mustParse(t, "main() None { print(1) }")
	stmt := firstStatement(t, tree)
	call, ok := stmt.(*Tree)
	if !ok || call.Rule != "postfix_unary_expression" {
		t.Fatalf("expected a bare call statement to parse as postfix_unary_expression, got %+v", stmt)
	}
}

func TestIfElifElseParses(t *testing.T) {
	tree := mustParse(t, `main() None { if x { 1 } elif y { 2 } else { 3 } }`)
	stmt := firstStatement(t, tree)
	ifExpr, ok := stmt.(*Tree)
	if !ok || ifExpr.Rule != "if_expression" {
		t.Fatalf("expected if_expression, got %+v", stmt)
	}
	var sawElif, sawElse bool
	for _, child := range ifExpr.Children {
		if sub, ok := child.(*Tree); ok {
			switch sub.Rule {
			case "elseif_expression":
				sawElif = true
			case "else_expression":
				sawElse = true
			}
		}
	}
	if !sawElif || !sawElse {
		t.Fatalf("expected both elseif_expression and else_expression children, got %+v", ifExpr.Children)
	}
}

func TestFunctionDeclarationWithParameters(t *testing.T) {
	tree := mustParse(t, "sum(a int, b int) int { ret a + b }")
	fn := tree.Subtree(0)
	if fn == nil || fn.Rule != "function_declaration" {
		t.Fatalf("expected function_declaration, got %+v", tree)
	}
	params := fn.Subtree(1)
	if params == nil || params.Rule != "function_parameters" || len(params.Children) != 2 {
		t.Fatalf("expected 2 function_parameters, got %+v", params)
	}
}

func TestNegativeScenarioUnexpectedTokenMissingReturnType(t *testing.T) {
	_, err := parse(t, `test() { ret a or b }`)
	assertDiagKind(t, err, diag.UnexpectedToken)
}

func TestNegativeScenarioPrimaryExpressionExpected(t *testing.T) {
	_, err := parse(t, `test() void { ret a,b }`)
	assertDiagKind(t, err, diag.PrimaryExpressionExpected)
}

func assertDiagKind(t *testing.T, err error, want diag.Kind) {
	t.Helper()
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *diag.Error", err, err)
	}
	if de.Kind != want {
		t.Errorf("error kind = %s, want %s", de.Kind, want)
	}
}

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval implements C9, the tree-walking evaluator. It executes an
// annotated AST against a closure stack, using a structured result
// (rather than exceptions) to propagate return and break through nested
// blocks — the reimplementation the spec's design notes call for in
// place of the reference interpreter's exception-driven control flow.
// Grounded in original_source/src/interpreter/interpretation.py's
// Interpreter class.
package eval

import (
	"fmt"
	"io"
	"math"

	"github.com/mleku/sprig/pkg/ast"
	"github.com/mleku/sprig/pkg/closure"
	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/value"
)

// execResult threads control flow up through nested statement execution.
// At most one of Returned/Broke is ever set for a given result.
type execResult struct {
	Returned    bool
	ReturnValue any
	Broke       bool
}

// Evaluator walks an annotated AST against a closure chain rooted at
// Root. Create one with New, then call Run.
type Evaluator struct {
	root *closure.Closure
	out  io.Writer
}

// New builds an Evaluator that executes against root (already populated
// with function declarations and builtins by the caller) and writes
// print() output to out.
func New(root *closure.Closure, out io.Writer) *Evaluator {
	return &Evaluator{root: root, out: out}
}

// Run locates the `main` function in the root closure and executes it.
func (e *Evaluator) Run() error {
	item, _, ok := e.root.Lookup("main")
	if !ok || item.Kind != closure.FunctionItem {
		return fmt.Errorf("eval: no main function declared")
	}
	_, err := e.callFunction(item, nil)
	return err
}

func (e *Evaluator) callFunction(item *closure.Item, args []any) (any, error) {
	if item.Native != nil {
		return item.Native(args)
	}
	fnClosure := closure.New(e.root)
	for i, p := range item.Params {
		var v any
		if i < len(args) {
			v = args[i]
		}
		fnClosure.Declare(&closure.Item{Kind: closure.VariableItem, Name: p.Name, Type: p.Type, IsBound: true, Value: v})
	}
	res, err := e.execBlock(item.Body, fnClosure)
	if err != nil {
		return nil, err
	}
	if res.Returned {
		return res.ReturnValue, nil
	}
	return nil, nil
}

func (e *Evaluator) execBlock(block *ast.StatementsBlock, cur *closure.Closure) (execResult, error) {
	for _, stmt := range block.Statements {
		res, err := e.execStmt(stmt, cur)
		if err != nil {
			return execResult{}, err
		}
		if res.Returned || res.Broke {
			return res, nil
		}
	}
	return execResult{}, nil
}

func (e *Evaluator) execStmt(stmt ast.Stmt, cur *closure.Closure) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return execResult{}, e.execAssignment(s, cur)
	case *ast.ReturnStmt:
		if s.Expr == nil {
			return execResult{Returned: true}, nil
		}
		v, err := e.evalExpr(s.Expr, cur)
		if err != nil {
			return execResult{}, err
		}
		return execResult{Returned: true, ReturnValue: v}, nil
	case *ast.BreakStmt:
		return execResult{Broke: true}, nil
	case *ast.ForStmt:
		return e.execFor(s, cur)
	case *ast.WhileStmt:
		return e.execWhile(s, cur)
	case *ast.IfExpr:
		_, res, err := e.execIf(s, cur)
		return res, err
	case *ast.ExprStmt:
		_, err := e.evalExpr(s.X, cur)
		return execResult{}, err
	default:
		return execResult{}, fmt.Errorf("eval: unexpected statement %T", stmt)
	}
}

func (e *Evaluator) execFor(s *ast.ForStmt, cur *closure.Closure) (execResult, error) {
	iterVal, err := e.evalExpr(s.Iterable, cur)
	if err != nil {
		return execResult{}, err
	}
	coll, ok := iterVal.(*value.Collection)
	if !ok {
		return execResult{}, diag.New(diag.NotIterable, s.Line, 0, "value is not iterable")
	}
	for _, elem := range coll.Elements {
		loopClosure := closure.New(cur)
		loopClosure.Declare(&closure.Item{Kind: closure.VariableItem, Name: s.VarName, Value: elem, IsBound: true})
		res, err := e.execBlock(s.Body, loopClosure)
		if err != nil {
			return execResult{}, err
		}
		if res.Returned {
			return res, nil
		}
		if res.Broke {
			break
		}
	}
	return execResult{}, nil
}

func (e *Evaluator) execWhile(s *ast.WhileStmt, cur *closure.Closure) (execResult, error) {
	for {
		condVal, err := e.evalExpr(s.Cond, cur)
		if err != nil {
			return execResult{}, err
		}
		cond, ok := condVal.(bool)
		if !ok {
			return execResult{}, diag.New(diag.ArithmeticTypeMismatch, s.Line, 0, "while condition is not bool")
		}
		if !cond {
			return execResult{}, nil
		}
		whileClosure := closure.New(cur)
		res, err := e.execBlock(s.Body, whileClosure)
		if err != nil {
			return execResult{}, err
		}
		if res.Returned {
			return res, nil
		}
		if res.Broke {
			return execResult{}, nil
		}
	}
}

// execIf runs the taken branch, if any, returning its value (the value
// of its last return statement) alongside the propagated control result.
func (e *Evaluator) execIf(s *ast.IfExpr, cur *closure.Closure) (any, execResult, error) {
	condVal, err := e.evalExpr(s.Cond, cur)
	if err != nil {
		return nil, execResult{}, err
	}
	cond, ok := condVal.(bool)
	if !ok {
		return nil, execResult{}, diag.New(diag.ArithmeticTypeMismatch, s.Line, 0, "if condition is not bool")
	}
	if cond {
		thenClosure := closure.New(cur)
		res, err := e.execBlock(s.Then, thenClosure)
		return res.ReturnValue, res, err
	}
	for _, elif := range s.Elifs {
		elifVal, err := e.evalExpr(elif.Cond, cur)
		if err != nil {
			return nil, execResult{}, err
		}
		elifCond, ok := elifVal.(bool)
		if !ok {
			return nil, execResult{}, diag.New(diag.ArithmeticTypeMismatch, elif.Line, 0, "elif condition is not bool")
		}
		if elifCond {
			elifClosure := closure.New(cur)
			res, err := e.execBlock(elif.Body, elifClosure)
			return res.ReturnValue, res, err
		}
	}
	if s.Else != nil {
		elseClosure := closure.New(cur)
		res, err := e.execBlock(s.Else, elseClosure)
		return res.ReturnValue, res, err
	}
	return nil, execResult{}, nil
}

func (e *Evaluator) execAssignment(s *ast.Assignment, cur *closure.Closure) error {
	rightVal, err := e.evalExpr(s.Right, cur)
	if err != nil {
		return err
	}
	switch left := s.Left.(type) {
	case *ast.VariableDecl:
		cur.AssignValue(left.Name, &closure.Item{
			Kind: closure.VariableItem, Type: left.DeclaredType,
			IsConst: left.Mode == ast.Let, IsBound: true, Value: rightVal,
		})
		return nil
	case *ast.Identifier:
		if s.Operator == "=" {
			return cur.ReassignValue(left.Name, rightVal)
		}
		item, _, ok := cur.Lookup(left.Name)
		if !ok {
			return diag.New(diag.DeclarationNotFound, s.Line, 0, "%q is not declared", left.Name)
		}
		op := s.Operator[:len(s.Operator)-1] // "+=" -> "+"
		newVal, err := applyArith(op, item.Value, rightVal, s.Line)
		if err != nil {
			return err
		}
		return cur.ReassignValue(left.Name, newVal)
	default:
		return fmt.Errorf("eval: unsupported assignment target %T", s.Left)
	}
}

func (e *Evaluator) evalExpr(node ast.Expr, cur *closure.Closure) (any, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return n.Value, nil
	case *ast.FloatLiteral:
		return n.Value, nil
	case *ast.BoolLiteral:
		return n.Value, nil
	case *ast.StringLiteral:
		return n.Value, nil
	case *ast.Identifier:
		item, _, ok := cur.Lookup(n.Name)
		if !ok {
			return nil, diag.New(diag.DeclarationNotFound, n.Line, 0, "%q is not declared", n.Name)
		}
		if item.Kind == closure.FunctionItem {
			return item, nil
		}
		return item.Value, nil
	case *ast.PrefixExpr:
		return e.evalPrefix(n, cur)
	case *ast.BinaryExpr:
		return e.evalBinary(n, cur)
	case *ast.ParenExpr:
		return e.evalExpr(n.Inner, cur)
	case *ast.CollectionLiteral:
		elems := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := e.evalExpr(el, cur)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewCollection(elems...), nil
	case *ast.PostfixExpr:
		return e.evalPostfix(n, cur)
	case *ast.IfExpr:
		v, _, err := e.execIf(n, cur)
		return v, err
	case *ast.Assignment:
		return nil, e.execAssignment(n, cur)
	default:
		return nil, fmt.Errorf("eval: cannot evaluate node %T", node)
	}
}

func (e *Evaluator) evalPrefix(n *ast.PrefixExpr, cur *closure.Closure) (any, error) {
	inner, err := e.evalExpr(n.Inner, cur)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "":
		return inner, nil
	case "+":
		switch inner.(type) {
		case int64, float64:
			return inner, nil
		}
		return nil, diag.New(diag.ArithmeticTypeMismatch, n.Line, 0, "unary + requires a number")
	case "-":
		switch v := inner.(type) {
		case int64:
			return -v, nil
		case float64:
			return -v, nil
		}
		return nil, diag.New(diag.ArithmeticTypeMismatch, n.Line, 0, "unary - requires a number")
	case "!":
		b, ok := inner.(bool)
		if !ok {
			return nil, diag.New(diag.ArithmeticTypeMismatch, n.Line, 0, "! requires a bool")
		}
		return !b, nil
	default:
		return nil, fmt.Errorf("eval: unknown prefix operator %q", n.Operator)
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr, cur *closure.Closure) (any, error) {
	switch n.Kind {
	case ast.OpDisjunction:
		return e.evalShortCircuit(n, cur, true)
	case ast.OpConjunction:
		return e.evalShortCircuit(n, cur, false)
	}

	vals := make([]any, len(n.Operands))
	for i, op := range n.Operands {
		v, err := e.evalExpr(op, cur)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	switch n.Kind {
	case ast.OpEquality:
		eq := value.Equal(vals[0], vals[1])
		if n.Operators[0] == "!=" {
			return !eq, nil
		}
		return eq, nil
	case ast.OpComparison:
		acc := vals[0]
		result := true
		for i, op := range n.Operators {
			ok, err := compare(op, acc, vals[i+1], n.Line)
			if err != nil {
				return nil, err
			}
			result = result && ok
			acc = vals[i+1]
		}
		return result, nil
	case ast.OpAdditive, ast.OpMultiplicative:
		acc := vals[0]
		for i, op := range n.Operators {
			v, err := applyArith(op, acc, vals[i+1], n.Line)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("eval: unknown binary expression kind %d", n.Kind)
	}
}

func (e *Evaluator) evalShortCircuit(n *ast.BinaryExpr, cur *closure.Closure, isOr bool) (any, error) {
	result, err := e.evalBool(n.Operands[0], cur)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(n.Operands); i++ {
		if isOr && result {
			return true, nil
		}
		if !isOr && !result {
			return false, nil
		}
		next, err := e.evalBool(n.Operands[i], cur)
		if err != nil {
			return nil, err
		}
		if isOr {
			result = result || next
		} else {
			result = result && next
		}
	}
	return result, nil
}

func (e *Evaluator) evalBool(expr ast.Expr, cur *closure.Closure) (bool, error) {
	v, err := e.evalExpr(expr, cur)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, diag.New(diag.ArithmeticTypeMismatch, 0, 0, "operand is not a bool")
	}
	return b, nil
}

func (e *Evaluator) evalPostfix(n *ast.PostfixExpr, cur *closure.Closure) (any, error) {
	val, err := e.evalExpr(n.Primary, cur)
	if err != nil {
		return nil, err
	}
	for _, suf := range n.Suffixes {
		switch s := suf.(type) {
		case *ast.CallSuffix:
			item, ok := val.(*closure.Item)
			if !ok || item.Kind != closure.FunctionItem {
				return nil, diag.New(diag.NotCallable, s.Line, 0, "value is not callable")
			}
			args := make([]any, 0, len(s.Args))
			for _, a := range s.Args {
				v, err := e.evalExpr(a, cur)
				if err != nil {
					return nil, err
				}
				args = append(args, v)
			}
			result, err := e.callFunction(item, args)
			if err != nil {
				return nil, err
			}
			val = result
		case *ast.IndexSuffix:
			idxVal, err := e.evalExpr(s.Index, cur)
			if err != nil {
				return nil, err
			}
			idx, ok := idxVal.(int64)
			if !ok {
				return nil, diag.New(diag.ArithmeticTypeMismatch, s.Line, 0, "index must be an int")
			}
			coll, ok := val.(*value.Collection)
			if !ok {
				return nil, diag.New(diag.NotIterable, s.Line, 0, "value is not indexable")
			}
			if idx < 0 || int(idx) >= len(coll.Elements) {
				return nil, diag.New(diag.IndexOutOfRange, s.Line, 0, "index %d out of range", idx)
			}
			val = coll.Elements[idx]
		case *ast.NavSuffix:
			return nil, diag.New(diag.NotImplemented, s.Line, 0, "navigation suffix is not implemented")
		}
	}
	return val, nil
}

func compare(op string, a, b any, line int) (bool, error) {
	lt, err := lessThan(a, b, line)
	if err != nil {
		return false, err
	}
	switch op {
	case "<":
		return lt, nil
	case ">":
		gt, err := lessThan(b, a, line)
		return gt, err
	case "<=":
		gt, err := lessThan(b, a, line)
		if err != nil {
			return false, err
		}
		return !gt, nil
	case ">=":
		return !lt, nil
	default:
		return false, fmt.Errorf("eval: unknown comparison operator %q", op)
	}
}

func lessThan(a, b any, line int) (bool, error) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av < bv, nil
		case float64:
			return float64(av) < bv, nil
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return av < float64(bv), nil
		case float64:
			return av < bv, nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv, nil
		}
	}
	return false, diag.New(diag.ArithmeticTypeMismatch, line, 0, "cannot compare %T and %T", a, b)
}

func applyArith(op string, a, b any, line int) (any, error) {
	if op == "+" {
		if as, ok := a.(string); ok {
			if bs, ok := b.(string); ok {
				return as + bs, nil
			}
		}
	}

	af, aInt, aok := numeric(a)
	bf, bInt, bok := numeric(b)
	if !aok || !bok {
		return nil, diag.New(diag.ArithmeticTypeMismatch, line, 0, "cannot apply %q to %T and %T", op, a, b)
	}

	if aInt && bInt {
		ai, bi := a.(int64), b.(int64)
		switch op {
		case "+":
			return ai + bi, nil
		case "-":
			return ai - bi, nil
		case "*":
			return ai * bi, nil
		case "/":
			if bi == 0 {
				return nil, diag.New(diag.DivideByZero, line, 0, "division by zero")
			}
			return ai / bi, nil
		case "%":
			if bi == 0 {
				return nil, diag.New(diag.DivideByZero, line, 0, "division by zero")
			}
			return ai % bi, nil
		}
	}

	switch op {
	case "+":
		return af + bf, nil
	case "-":
		return af - bf, nil
	case "*":
		return af * bf, nil
	case "/":
		if bf == 0 {
			return nil, diag.New(diag.DivideByZero, line, 0, "division by zero")
		}
		return af / bf, nil
	case "%":
		if bf == 0 {
			return nil, diag.New(diag.DivideByZero, line, 0, "division by zero")
		}
		return math.Mod(af, bf), nil
	}
	return nil, fmt.Errorf("eval: unknown arithmetic operator %q", op)
}

func numeric(v any) (f float64, isInt bool, ok bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true, true
	case float64:
		return n, false, true
	default:
		return 0, false, false
	}
}

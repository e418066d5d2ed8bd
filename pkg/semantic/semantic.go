// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package semantic implements C8, the two-pass semantic analyzer: an
// eager top-down declaration pass that installs bindings into a closure
// chain mirroring run-time scoping, and a delayed validation pass that
// runs the checks queued during the declaration walk in registration
// order. Grounded in
// original_source/src/interpreter/semantic_analyzer.py's delayed_tasks
// pattern.
package semantic

import (
	"github.com/mleku/sprig/pkg/ast"
	"github.com/mleku/sprig/pkg/closure"
	"github.com/mleku/sprig/pkg/diag"
)

// blockReturn records, for a statements block whose last statement is a
// return, the returned expression (possibly nil for a bare `ret`) and
// the closure it was evaluated in — the side table spec §4.6 uses so
// if-expression type resolution never needs a direct node pointer back
// into the tree.
type blockReturn struct {
	expr ast.Expr
	in   *closure.Closure
}

// Analyzer is the two-pass semantic analyzer. Create one per run with
// New and call Analyze once.
type Analyzer struct {
	root         *closure.Closure
	blockReturns map[int]blockReturn
	delayed      []func() error
}

// New builds an Analyzer with a fresh, empty root closure.
func New() *Analyzer {
	return NewWithRoot(closure.New(nil))
}

// NewWithRoot builds an Analyzer whose program-level bindings are
// declared into root, which the caller may have already pre-populated
// (e.g. with runtime.Install's builtins) so their names resolve during
// analysis.
func NewWithRoot(root *closure.Closure) *Analyzer {
	return &Analyzer{root: root, blockReturns: make(map[int]blockReturn)}
}

// Root returns the root closure, pre-populated before Analyze runs and
// carrying function bindings after — so the evaluator can continue
// execution against the same closure rather than re-declaring anything.
func (a *Analyzer) Root() *closure.Closure { return a.root }

// Analyze type-checks prog, installing function bindings into the root
// closure supplied at construction. It returns the first *diag.Error
// encountered; per spec §7 there is no recovery.
func (a *Analyzer) Analyze(prog *ast.Start) error {
	a.blockReturns = make(map[int]blockReturn)
	a.delayed = nil

	for _, fn := range prog.Functions {
		a.root.Declare(&closure.Item{
			Kind:       closure.FunctionItem,
			Name:       fn.Name,
			Params:     fn.Params,
			ReturnType: fn.ReturnType,
			Body:       fn.Body,
		})
	}

	for _, fn := range prog.Functions {
		fnClosure := closure.New(a.root)
		for _, p := range fn.Params {
			fnClosure.Declare(&closure.Item{
				Kind: closure.VariableItem, Name: p.Name, Type: p.Type, IsBound: true,
			})
		}
		if err := a.visitBlock(fn.Body, fnClosure, fn.ReturnType); err != nil {
			return err
		}
	}

	// Indexed so that tasks queued while draining (a for body's checks
	// are registered by the for statement's own delayed task) also run.
	for i := 0; i < len(a.delayed); i++ {
		if err := a.delayed[i](); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitBlock(block *ast.StatementsBlock, cur *closure.Closure, fnRet ast.UnitType) error {
	for _, stmt := range block.Statements {
		if err := a.visitStmt(stmt, cur, fnRet); err != nil {
			return err
		}
	}
	if n := len(block.Statements); n > 0 {
		if ret, ok := block.Statements[n-1].(*ast.ReturnStmt); ok {
			a.blockReturns[block.ID] = blockReturn{expr: ret.Expr, in: cur}
		}
	}
	return nil
}

func (a *Analyzer) visitStmt(stmt ast.Stmt, cur *closure.Closure, fnRet ast.UnitType) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return a.visitAssignment(s, cur)
	case *ast.ForStmt:
		return a.visitFor(s, cur, fnRet)
	case *ast.WhileStmt:
		return a.visitWhile(s, cur, fnRet)
	case *ast.ReturnStmt:
		return a.visitReturn(s, cur, fnRet)
	case *ast.BreakStmt:
		return nil
	case *ast.IfExpr:
		return a.visitIf(s, cur, fnRet)
	case *ast.ExprStmt:
		a.delayTypeCheck(s.X, cur)
		return nil
	default:
		return nil
	}
}

func (a *Analyzer) visitFor(s *ast.ForStmt, cur *closure.Closure, fnRet ast.UnitType) error {
	a.delayed = append(a.delayed, func() error {
		iterType, err := a.resolveType(s.Iterable, cur)
		if err != nil {
			return err
		}
		itemType := ast.UnitType(nil)
		if it, ok := iterType.(ast.IterableType); ok {
			itemType = it.Item
		}
		loopClosure := closure.New(cur)
		loopClosure.Declare(&closure.Item{Kind: closure.VariableItem, Name: s.VarName, Type: itemType, IsBound: true})
		return a.visitBlock(s.Body, loopClosure, fnRet)
	})
	return nil
}

func (a *Analyzer) visitWhile(s *ast.WhileStmt, cur *closure.Closure, fnRet ast.UnitType) error {
	a.delayTypeCheck(s.Cond, cur)
	whileClosure := closure.New(cur)
	return a.visitBlock(s.Body, whileClosure, fnRet)
}

func (a *Analyzer) visitReturn(s *ast.ReturnStmt, cur *closure.Closure, fnRet ast.UnitType) error {
	if s.Expr == nil {
		return nil
	}
	expr := s.Expr
	line := s.Line
	a.delayed = append(a.delayed, func() error {
		got, err := a.resolveType(expr, cur)
		if err != nil {
			return err
		}
		if fnRet != nil && got != nil && !ast.Equal(fnRet, got) {
			return diag.New(diag.TypeMismatch, line, 0,
				"return expression has type %s, function declares %s", got, fnRet)
		}
		return nil
	})
	return nil
}

func (a *Analyzer) visitIf(s *ast.IfExpr, cur *closure.Closure, fnRet ast.UnitType) error {
	a.delayTypeCheck(s.Cond, cur)
	thenClosure := closure.New(cur)
	if err := a.visitBlock(s.Then, thenClosure, fnRet); err != nil {
		return err
	}
	for _, elif := range s.Elifs {
		a.delayTypeCheck(elif.Cond, cur)
		elifClosure := closure.New(cur)
		if err := a.visitBlock(elif.Body, elifClosure, fnRet); err != nil {
			return err
		}
	}
	if s.Else != nil {
		elseClosure := closure.New(cur)
		if err := a.visitBlock(s.Else, elseClosure, fnRet); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitAssignment(as *ast.Assignment, cur *closure.Closure) error {
	switch left := as.Left.(type) {
	case *ast.VariableDecl:
		return a.visitDeclarationAssignment(as, left, cur)
	case *ast.Identifier:
		return a.visitReassignment(as, left, cur)
	default:
		a.delayTypeCheck(as.Right, cur)
		return nil
	}
}

func (a *Analyzer) visitDeclarationAssignment(as *ast.Assignment, decl *ast.VariableDecl, cur *closure.Closure) error {
	prevItem, hadLocal := cur.Local(decl.Name)

	item := &closure.Item{
		Kind:    closure.VariableItem,
		Name:    decl.Name,
		Type:    decl.DeclaredType,
		IsConst: decl.Mode == ast.Let,
	}
	cur.Declare(item)

	right := as.Right
	line := as.Line
	a.delayed = append(a.delayed, func() error {
		rightType, err := a.resolveType(right, cur)
		if err != nil {
			return err
		}
		if it, ok := item.Type.(ast.IterableType); ok && it.IsUnknown() {
			item.Type = rightType
			decl.DeclaredType = rightType
		}
		if !ast.Equal(item.Type, rightType) {
			return diag.New(diag.TypeMismatch, line, 0,
				"cannot assign %s to %s %s %s", rightType, decl.Mode, decl.Name, item.Type)
		}
		if hadLocal && prevItem.IsConst && prevItem.IsBound {
			return diag.New(diag.InvalidRedeclaration, line, 0, "%q is already declared in this scope", decl.Name)
		}
		item.IsBound = true
		return nil
	})
	return nil
}

func (a *Analyzer) visitReassignment(as *ast.Assignment, ident *ast.Identifier, cur *closure.Closure) error {
	right := as.Right
	line := as.Line
	a.delayed = append(a.delayed, func() error {
		target, _, found := cur.Lookup(ident.Name)
		if !found {
			return diag.New(diag.DeclarationNotFound, line, 0, "%q is not declared", ident.Name)
		}
		rightType, err := a.resolveType(right, cur)
		if err != nil {
			return err
		}
		effective := target.Type
		if it, ok := target.Type.(ast.IterableType); ok && it.IsUnknown() {
			target.Type = rightType
			effective = rightType
		}
		if !ast.Equal(effective, rightType) {
			return diag.New(diag.TypeMismatch, line, 0, "cannot assign %s to %q %s", rightType, ident.Name, effective)
		}
		if target.IsConst && target.IsBound {
			return diag.New(diag.Reassign, line, 0, "cannot reassign let binding %q", ident.Name)
		}
		target.IsBound = true
		return nil
	})
	return nil
}

// delayTypeCheck enqueues a best-effort resolution of expr purely to
// surface DeclarationNotFound for names referenced outside of an
// assignment (e.g. a bare function-call statement, a loop or branch
// condition).
func (a *Analyzer) delayTypeCheck(expr ast.Expr, cur *closure.Closure) {
	a.delayed = append(a.delayed, func() error {
		_, err := a.resolveType(expr, cur)
		return err
	})
}

// resolveType is the single-dispatch type resolver of spec §4.6.
func (a *Analyzer) resolveType(node ast.Expr, cur *closure.Closure) (ast.UnitType, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return ast.Int, nil
	case *ast.FloatLiteral:
		return ast.Float, nil
	case *ast.BoolLiteral:
		return ast.Bool, nil
	case *ast.StringLiteral:
		return ast.Str, nil
	case *ast.VariableDecl:
		return n.DeclaredType, nil
	case *ast.Identifier:
		item, _, found := cur.Lookup(n.Name)
		if !found {
			return nil, diag.New(diag.DeclarationNotFound, n.Line, 0, "%q is not declared", n.Name)
		}
		if item.Kind == closure.FunctionItem {
			ft := item.FuncType()
			return ft, nil
		}
		return item.Type, nil
	case *ast.PrefixExpr:
		return a.resolveType(n.Inner, cur)
	case *ast.BinaryExpr:
		if len(n.Operands) == 0 {
			return nil, nil
		}
		return a.resolveType(n.Operands[0], cur)
	case *ast.ParenExpr:
		return a.resolveType(n.Inner, cur)
	case *ast.CollectionLiteral:
		if len(n.Elements) == 0 {
			return ast.IterableType{}, nil
		}
		item, err := a.resolveType(n.Elements[0], cur)
		if err != nil {
			return nil, err
		}
		return ast.IterableType{Item: item}, nil
	case *ast.PostfixExpr:
		return a.resolvePostfixType(n, cur)
	case *ast.IfExpr:
		rec, ok := a.blockReturns[n.Then.ID]
		if !ok || rec.expr == nil {
			return nil, nil
		}
		return a.resolveType(rec.expr, rec.in)
	case *ast.Assignment:
		return a.resolveType(n.Right, cur)
	default:
		return nil, nil
	}
}

func (a *Analyzer) resolvePostfixType(n *ast.PostfixExpr, cur *closure.Closure) (ast.UnitType, error) {
	cur0, err := a.resolveType(n.Primary, cur)
	if err != nil {
		return nil, err
	}
	curType := cur0
	for _, suf := range n.Suffixes {
		switch s := suf.(type) {
		case *ast.CallSuffix:
			for _, arg := range s.Args {
				if _, err := a.resolveType(arg, cur); err != nil {
					return nil, err
				}
			}
			if ft, ok := curType.(ast.FunctionType); ok {
				curType = ft.Return
			} else {
				curType = nil
			}
		case *ast.IndexSuffix:
			if _, err := a.resolveType(s.Index, cur); err != nil {
				return nil, err
			}
			if it, ok := curType.(ast.IterableType); ok {
				curType = it.Item
			} else {
				curType = nil
			}
		case *ast.NavSuffix:
			curType = nil
		}
	}
	return curType, nil
}

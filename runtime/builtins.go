// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime installs the evaluator's bootstrap functions (spec
// §4.7) into a root closure: print, str, len, range, append, remove, and
// the test-capture variant test_print. Grounded in
// original_source/src/interpreter/interpretation.py's Interpreter.interpret,
// which installs the same set before running a program.
package runtime

import (
	"fmt"
	"io"

	"github.com/mleku/sprig/pkg/ast"
	"github.com/mleku/sprig/pkg/closure"
	"github.com/mleku/sprig/pkg/value"
)

// param is a shorthand for building a placeholder *ast.FunctionParam;
// argument types are not enforced at call sites, so only Name documents
// intent.
func param(name string) *ast.FunctionParam {
	return &ast.FunctionParam{Name: name}
}

// Install declares every builtin in root. out receives real print()
// output; sink, if non-nil, accumulates test_print() output for
// test-capture mode. Either may be nil when Install is used purely for
// type-checking (the semantic analyzer never invokes Native).
func Install(root *closure.Closure, out io.Writer, sink *[]string) {
	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "print",
		Params: []*ast.FunctionParam{param("value")}, ReturnType: ast.None,
		Native: func(args []any) (any, error) {
			if out != nil {
				fmt.Fprintln(out, value.Display(arg(args, 0)))
			}
			return nil, nil
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "str",
		Params: []*ast.FunctionParam{param("value")}, ReturnType: ast.Str,
		Native: func(args []any) (any, error) {
			return value.Display(arg(args, 0)), nil
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "len",
		Params: []*ast.FunctionParam{param("iterable")}, ReturnType: ast.Int,
		Native: func(args []any) (any, error) {
			switch v := arg(args, 0).(type) {
			case *value.Collection:
				return int64(len(v.Elements)), nil
			case string:
				return int64(len(v)), nil
			default:
				return nil, fmt.Errorf("runtime: len: value of type %T has no length", v)
			}
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "range",
		Params: []*ast.FunctionParam{param("n")}, ReturnType: ast.IterableType{Item: ast.Int},
		Native: func(args []any) (any, error) {
			n, ok := arg(args, 0).(int64)
			if !ok {
				return nil, fmt.Errorf("runtime: range: expected int argument")
			}
			elems := make([]any, n)
			for i := range elems {
				elems[i] = int64(i)
			}
			return value.NewCollection(elems...), nil
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "append",
		Params: []*ast.FunctionParam{param("value"), param("iterable")}, ReturnType: ast.None,
		Native: func(args []any) (any, error) {
			coll, ok := arg(args, 1).(*value.Collection)
			if !ok {
				return nil, fmt.Errorf("runtime: append: second argument is not a collection")
			}
			coll.Append(arg(args, 0))
			return nil, nil
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "remove",
		Params: []*ast.FunctionParam{param("value"), param("iterable")}, ReturnType: ast.None,
		Native: func(args []any) (any, error) {
			coll, ok := arg(args, 1).(*value.Collection)
			if !ok {
				return nil, fmt.Errorf("runtime: remove: second argument is not a collection")
			}
			coll.Remove(arg(args, 0))
			return nil, nil
		},
	})

	root.Declare(&closure.Item{
		Kind: closure.FunctionItem, Name: "test_print",
		Params: []*ast.FunctionParam{param("value")}, ReturnType: ast.None,
		Native: func(args []any) (any, error) {
			if sink != nil {
				*sink = append(*sink, value.Display(arg(args, 0)))
			}
			return nil, nil
		},
	})
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp wires the five pipeline stages — scanner, parser, tree
// transformer, semantic analyzer, evaluator — behind the embedding
// surface of spec §6.4: a test-capture entry point returning the
// test_print sink, and a real-output entry point that prints to a
// caller-supplied writer. Grounded in
// original_source/src/interpreter/interpretation.py's top-level
// `interpret` function, which performs the same five-stage wiring.
package interp

import (
	"io"

	"github.com/mleku/sprig/pkg/closure"
	"github.com/mleku/sprig/pkg/eval"
	"github.com/mleku/sprig/pkg/parser"
	"github.com/mleku/sprig/pkg/scanner"
	"github.com/mleku/sprig/pkg/semantic"
	"github.com/mleku/sprig/pkg/transform"
	"github.com/mleku/sprig/runtime"
)

// Run scans, parses, transforms, analyzes, and evaluates sourceText under
// grammarText, writing print() output to out. It returns the first
// error encountered at any stage (typically a *diag.Error).
func Run(grammarText, sourceText string, out io.Writer) error {
	_, err := pipeline(grammarText, sourceText, out, nil)
	return err
}

// Interpret runs the same pipeline in test-capture mode: test_print
// appends to the returned slice instead of reaching any writer. This is
// the `interpret(grammar_text, source_text) -> list<string>` entry point
// of spec §6.4.
func Interpret(grammarText, sourceText string) ([]string, error) {
	sink := &[]string{}
	out, err := pipeline(grammarText, sourceText, nil, sink)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pipeline(grammarText, sourceText string, out io.Writer, sink *[]string) ([]string, error) {
	scan := scanner.New(grammarText, scanner.NewCharSource(sourceText))
	tree, err := parser.New().Parse(scan)
	if err != nil {
		return nil, err
	}

	prog, err := transform.New().Transform(tree)
	if err != nil {
		return nil, err
	}

	root := closure.New(nil)
	runtime.Install(root, out, sink)

	analyzer := semantic.NewWithRoot(root)
	if err := analyzer.Analyze(prog); err != nil {
		return nil, err
	}

	if err := eval.New(analyzer.Root(), out).Run(); err != nil {
		return nil, err
	}
	if sink != nil {
		return *sink, nil
	}
	return nil, nil
}

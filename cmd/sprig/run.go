// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/grammar"
	"github.com/mleku/sprig/pkg/interp"
	"github.com/mleku/sprig/pkg/scanner"
)

func loadGrammar(path string) (string, error) {
	if path == "" {
		return grammar.Default, nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading grammar file: %w", err)
	}
	return string(text), nil
}

func loadSource(path string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source file: %w", err)
	}
	return string(text), nil
}

// dumpTokens logs every token the scanner produces, including NEWLINE,
// for the --keep-newlines debug flag. It never affects the real pipeline,
// which always hides newlines behind the token controller except where a
// grammar production momentarily exposes them.
func dumpTokens(grammarText, sourceText string) {
	scan := scanner.New(grammarText, scanner.NewCharSource(sourceText), scanner.KeepWS(), scanner.KeepComments())
	for {
		tok, err := scan.Next()
		if err != nil {
			logger.Info("token scan error", "err", err)
			return
		}
		if tok == nil {
			return
		}
		logger.Info("token", "kind", string(tok.Kind), "text", tok.Text, "line", tok.Line, "column", tok.Column)
	}
}

func reportDiag(err error) {
	if d, ok := err.(*diag.Error); ok {
		fmt.Fprintf(os.Stderr, "%s: %s (%d:%d)\n", d.Kind, d.Message, d.Line, d.Column)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.spg>",
		Short: "scan, parse, and evaluate a program, printing its real output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarText, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			sourceText, err := loadSource(args[0])
			if err != nil {
				return err
			}
			if keepNewlines {
				dumpTokens(grammarText, sourceText)
			}

			logger.Info("run starting", "file", args[0])
			if err := interp.Run(grammarText, sourceText, os.Stdout); err != nil {
				reportDiag(err)
				os.Exit(1)
			}
			logger.Info("run complete", "file", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to a custom grammar file (default: embedded grammar)")
	cmd.Flags().BoolVar(&keepNewlines, "keep-newlines", false, "log the raw token stream, including NEWLINE, before running")
	return cmd
}

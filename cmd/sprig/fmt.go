// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mleku/sprig/pkg/parser"
	"github.com/mleku/sprig/pkg/scanner"
)

func newFmtCmd() *cobra.Command {
	var fmtGrammarPath string
	cmd := &cobra.Command{
		Use:   "fmt <file.spg>",
		Short: "pretty-print the parsed CST back to source text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarText, err := loadGrammar(fmtGrammarPath)
			if err != nil {
				return err
			}
			sourceText, err := loadSource(args[0])
			if err != nil {
				return err
			}

			scan := scanner.New(grammarText, scanner.NewCharSource(sourceText))
			tree, err := parser.New().Parse(scan)
			if err != nil {
				reportDiag(err)
				os.Exit(1)
			}
			fmt.Print(parser.Print(tree))
			return nil
		},
	}
	cmd.Flags().StringVar(&fmtGrammarPath, "grammar", "", "path to a custom grammar file (default: embedded grammar)")
	return cmd
}

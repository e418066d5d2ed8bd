// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mleku/sprig/pkg/interp"
)

func newTestCmd() *cobra.Command {
	var testGrammarPath string
	cmd := &cobra.Command{
		Use:   "test <file.spg>",
		Short: "run a program in test-capture mode, printing each test_print line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarText, err := loadGrammar(testGrammarPath)
			if err != nil {
				return err
			}
			sourceText, err := loadSource(args[0])
			if err != nil {
				return err
			}

			logger.Info("test starting", "file", args[0])
			lines, err := interp.Interpret(grammarText, sourceText)
			if err != nil {
				reportDiag(err)
				os.Exit(1)
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			logger.Info("test complete", "file", args[0], "captured", len(lines))
			return nil
		},
	}
	cmd.Flags().StringVar(&testGrammarPath, "grammar", "", "path to a custom grammar file (default: embedded grammar)")
	return cmd
}

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sprig is the CLI front end for the interpreter: run, test,
// fmt, watch, and version, built on cobra the way the rest of the
// retrieval pack builds its command-line tools. Replaces the teacher's
// hand-rolled switch over os.Args (cmd/moxie/main.go) with a cobra
// command tree.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	grammarPath   string
	keepNewlines  bool
	logger        *slog.Logger
	moduleVersion = "0.1.0"
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "sprig",
		Short:         "sprig runs and inspects the interpreter's tree-walking language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mleku/sprig/pkg/interp"
)

// debounce coalesces the burst of write events a single save can produce
// into one rerun, the same window the teacher's watcher uses
// (cmd/moxie/watch.go).
const debounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		watchGrammarPath string
		testMode         bool
	)
	cmd := &cobra.Command{
		Use:   "watch <file.spg>",
		Short: "rerun on every write to file.spg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			grammarText, err := loadGrammar(watchGrammarPath)
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer watcher.Close()

			dir := filepath.Dir(file)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}

			var runMu sync.Mutex
			rerun := func() {
				runMu.Lock()
				defer runMu.Unlock()
				sourceText, err := loadSource(file)
				if err != nil {
					logger.Error("reading source", "err", err)
					return
				}
				logger.Info("rerunning", "file", file, "mode", watchModeName(testMode))
				if testMode {
					lines, err := interp.Interpret(grammarText, sourceText)
					if err != nil {
						reportDiag(err)
						return
					}
					for _, line := range lines {
						fmt.Println(line)
					}
					return
				}
				if err := interp.Run(grammarText, sourceText, os.Stdout); err != nil {
					reportDiag(err)
				}
			}

			rerun()

			var timer *time.Timer
			logger.Info("watching", "file", file)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(file) {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, rerun)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watch error", "err", err)
				}
			}
		},
	}
	cmd.Flags().StringVar(&watchGrammarPath, "grammar", "", "path to a custom grammar file (default: embedded grammar)")
	cmd.Flags().BoolVar(&testMode, "test", false, "rerun in test-capture mode instead of real-output mode")
	return cmd
}

func watchModeName(testMode bool) string {
	if testMode {
		return "test"
	}
	return "run"
}

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/mleku/sprig/pkg/scanner"
	"github.com/mleku/sprig/pkg/token"
)

// Controller is the token controller of spec §4.3: a one-token lookahead
// buffer over the scanner's stream, with a mode flag that transparently
// hides NEWLINE tokens from Peek/Next unless a production temporarily
// exposes them via IncludeNewlines.
type Controller struct {
	scan *scanner.Scanner

	buf      *token.Token
	bufValid bool

	ignoreNewlines bool
	delivered      []*token.Token
}

// NewController builds a Controller with newline-hiding on (the default).
func NewController() *Controller {
	return &Controller{ignoreNewlines: true}
}

// Reload resets the controller state for a new run over scan.
func (c *Controller) Reload(scan *scanner.Scanner) {
	c.scan = scan
	c.buf = nil
	c.bufValid = false
	c.ignoreNewlines = true
	c.delivered = nil
}

func (c *Controller) fill() error {
	if c.bufValid {
		return nil
	}
	for {
		tok, err := c.scan.Next()
		if err != nil {
			return err
		}
		if tok == nil {
			c.buf = nil
			c.bufValid = true
			return nil
		}
		if c.ignoreNewlines && tok.Kind == token.NEWLINE {
			continue
		}
		c.buf = tok
		c.bufValid = true
		return nil
	}
}

// Peek returns the next logical token without consuming it, or nil at end
// of input.
func (c *Controller) Peek() (*token.Token, error) {
	if err := c.fill(); err != nil {
		return nil, err
	}
	return c.buf, nil
}

// Next consumes and returns the next logical token, or nil at end of
// input.
func (c *Controller) Next() (*token.Token, error) {
	if err := c.fill(); err != nil {
		return nil, err
	}
	tok := c.buf
	c.buf, c.bufValid = nil, false
	if tok != nil {
		c.delivered = append(c.delivered, tok)
	}
	return tok, nil
}

// IncludeNewlines runs f with the newline-hiding flag cleared, restoring
// the previous flag unconditionally afterward (spec §5's pairing
// requirement for include_newlines). Callers must invoke it only when
// nothing is already buffered (i.e. right after a Next()), since any token
// already sitting in the lookahead buffer was fetched under the prior
// mode and will not retroactively expose a newline it had already
// skipped past.
func (c *Controller) IncludeNewlines(f func() (bool, error)) (bool, error) {
	prev := c.ignoreNewlines
	c.ignoreNewlines = false
	defer func() { c.ignoreNewlines = prev }()
	return f()
}

// Delivered returns every token consumed so far via Next, for debugging
// and error-context reporting.
func (c *Controller) Delivered() []*token.Token {
	return c.delivered
}

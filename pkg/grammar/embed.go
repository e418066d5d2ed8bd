// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grammar

import _ "embed"

// Default is the terminal table shipped with the interpreter (spec §6.2's
// "ships with one"). Embedding it keeps the CLI and library entry points
// working from a plain `go install` with no data files to locate at
// runtime.
//
//go:embed default.grammar
var Default string

// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/grammar"
	"github.com/mleku/sprig/pkg/interp"
)

func TestInterpretPositiveScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "variable and builtin conversion",
			source: `main() None { let a int = 10  test_print(str(a)) }`,
			want:   []string{"10"},
		},
		{
			name: "recursive-looking function calls",
			source: `sum(a int, b int) int { ret a + b }
main() None { test_print(str(sum(sum(1,2),3))) }`,
			want: []string{"6"},
		},
		{
			name:   "for loop over a string list",
			source: `main() None { for x in ["Hello","world"] { test_print(x) } }`,
			want:   []string{"Hello", "world"},
		},
		{
			name: "while loop counting up",
			source: `main() None { var x int = 0  while x < 5 { test_print(str(x))  x = x + 1 } }`,
			want: []string{"0", "1", "2", "3", "4"},
		},
		{
			name: "break exits the enclosing loop only",
			source: `main() None { var x int = 0  while x < 5 { if x > 2 { break }  test_print(str(x))  x = x + 1 } }`,
			want: []string{"0", "1", "2"},
		},
		{
			name:   "append mutates a declared list",
			source: `main() None { let xs IntList = [1,2]  append(3, xs)  test_print(str(xs)) }`,
			want:   []string{"[1, 2, 3]"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := interp.Interpret(grammar.Default, c.source)
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Interpret() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestInterpretNegativeScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   diag.Kind
	}{
		{
			name:   "assigning a string to an int-typed let",
			source: `main() None { let a int = "x" }`,
			want:   diag.TypeMismatch,
		},
		{
			name:   "reassigning a let binding",
			source: `main() None { let a int = 1  a = 2 }`,
			want:   diag.Reassign,
		},
		{
			name:   "function declared without a return type",
			source: `test() { ret a or b }`,
			want:   diag.UnexpectedToken,
		},
		{
			name:   "return statement with a bare comma expression",
			source: `test() void { ret a,b }`,
			want:   diag.PrimaryExpressionExpected,
		},
		{
			name:   "input with no matching token",
			source: `$$$`,
			want:   diag.CandidatesNotFound,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := interp.Interpret(grammar.Default, c.source)
			if err == nil {
				t.Fatalf("Interpret() expected an error of kind %s, got nil", c.want)
			}
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("Interpret() error = %v (%T), want *diag.Error", err, err)
			}
			if de.Kind != c.want {
				t.Errorf("Interpret() kind = %s, want %s", de.Kind, c.want)
			}
		})
	}
}

func TestRunWritesToOutput(t *testing.T) {
	var buf writerStub
	source := `main() None { print("hi") }`
	if err := interp.Run(grammar.Default, source, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if buf.String() != "hi\n" {
		t.Errorf("Run() wrote %q, want %q", buf.String(), "hi\n")
	}
}

type writerStub struct {
	data []byte
}

func (w *writerStub) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writerStub) String() string { return string(w.data) }

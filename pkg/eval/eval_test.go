// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"errors"
	"testing"

	"github.com/mleku/sprig/pkg/diag"
)

func TestApplyArithIntegers(t *testing.T) {
	cases := []struct {
		op   string
		a, b int64
		want int64
	}{
		{"+", 2, 3, 5},
		{"-", 5, 3, 2},
		{"*", 4, 3, 12},
		{"/", 7, 2, 3},
		{"%", 7, 2, 1},
	}
	for _, c := range cases {
		got, err := applyArith(c.op, c.a, c.b, 1)
		if err != nil {
			t.Fatalf("applyArith(%q, %d, %d) error = %v", c.op, c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("applyArith(%q, %d, %d) = %v, want %v", c.op, c.a, c.b, got, c.want)
		}
	}
}

func TestApplyArithFloatPromotion(t *testing.T) {
	got, err := applyArith("+", int64(2), 1.5, 1)
	if err != nil {
		t.Fatalf("applyArith error = %v", err)
	}
	if got != 3.5 {
		t.Errorf("applyArith(+, 2, 1.5) = %v, want 3.5", got)
	}
}

func TestApplyArithStringConcat(t *testing.T) {
	got, err := applyArith("+", "foo", "bar", 1)
	if err != nil {
		t.Fatalf("applyArith error = %v", err)
	}
	if got != "foobar" {
		t.Errorf("applyArith(+, foo, bar) = %v, want foobar", got)
	}
}

func TestApplyArithDivideByZero(t *testing.T) {
	for _, op := range []string{"/", "%"} {
		_, err := applyArith(op, int64(1), int64(0), 1)
		assertDiagKind(t, err, diag.DivideByZero)
	}
}

func TestApplyArithTypeMismatch(t *testing.T) {
	_, err := applyArith("+", int64(1), true, 1)
	assertDiagKind(t, err, diag.ArithmeticTypeMismatch)
}

func TestCompare(t *testing.T) {
	cases := []struct {
		op   string
		a, b any
		want bool
	}{
		{"<", int64(1), int64(2), true},
		{">", int64(2), int64(1), true},
		{"<=", int64(2), int64(2), true},
		{">=", int64(2), int64(2), true},
		{"<", "apple", "banana", true},
		{"<", float64(1.5), int64(2), true},
	}
	for _, c := range cases {
		got, err := compare(c.op, c.a, c.b, 1)
		if err != nil {
			t.Fatalf("compare(%q, %v, %v) error = %v", c.op, c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("compare(%q, %v, %v) = %v, want %v", c.op, c.a, c.b, got, c.want)
		}
	}
}

func TestCompareTypeMismatch(t *testing.T) {
	_, err := compare("<", int64(1), "x", 1)
	assertDiagKind(t, err, diag.ArithmeticTypeMismatch)
}

func assertDiagKind(t *testing.T, err error, want diag.Kind) {
	t.Helper()
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("error = %v (%T), want *diag.Error", err, err)
	}
	if de.Kind != want {
		t.Errorf("error kind = %s, want %s", de.Kind, want)
	}
}

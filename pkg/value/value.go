// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value holds the runtime value representations the evaluator
// and builtins exchange: the host's native int64/float64/bool/string for
// scalars, and Collection for the language's one composite type.
package value

import (
	"strconv"
	"strings"
)

// Collection is the runtime representation of a collection literal: an
// ordered, mutable sequence. append/remove mutate Elements in place so
// that a binding shared across calls observes the change, matching the
// spec's "append(3, xs)" example.
type Collection struct {
	Elements []any
}

// NewCollection builds a Collection over elems, taking ownership of the
// slice's backing array.
func NewCollection(elems ...any) *Collection {
	return &Collection{Elements: elems}
}

// Append adds v to the end of the collection.
func (c *Collection) Append(v any) {
	c.Elements = append(c.Elements, v)
}

// Remove deletes the first element equal to v, reporting whether one was
// found.
func (c *Collection) Remove(v any) bool {
	for i, e := range c.Elements {
		if Equal(e, v) {
			c.Elements = append(c.Elements[:i], c.Elements[i+1:]...)
			return true
		}
	}
	return false
}

// Equal reports value equality between two runtime values, recursing
// into Collection elements.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case float64:
			return float64(av) == bv
		}
		return false
	case float64:
		switch bv := b.(type) {
		case int64:
			return av == float64(bv)
		case float64:
			return av == bv
		}
		return false
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case *Collection:
		bv, ok := b.(*Collection)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

// Display renders v the way str()/test_print/print do: scalars render
// bare (no quotes around strings), collections render bracketed with
// comma-space separators and quote their string elements, Python-repr
// style.
func Display(v any) string {
	if c, ok := v.(*Collection); ok {
		return collectionRepr(c)
	}
	return scalarDisplay(v)
}

func scalarDisplay(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}

func collectionRepr(c *Collection) string {
	parts := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		switch v := e.(type) {
		case string:
			parts[i] = "'" + v + "'"
		case *Collection:
			parts[i] = collectionRepr(v)
		default:
			parts[i] = scalarDisplay(e)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

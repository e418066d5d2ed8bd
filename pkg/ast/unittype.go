// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "strings"

// UnitType is the interpreter's internal representation of a resolved
// source type (spec §3). Equality is structural and name-sensitive, so
// callers compare with Equal rather than ==.
type UnitType interface {
	unitType()
	String() string
}

// Reserved simple type names (spec §6.3).
const (
	Int   = SimpleType("int")
	Float = SimpleType("float")
	Bool  = SimpleType("bool")
	Str   = SimpleType("str")
	None  = SimpleType("None")
)

// SimpleType is a named scalar type, including any user-facing type name
// that is not an iterable or function type.
type SimpleType string

func (SimpleType) unitType()        {}
func (s SimpleType) String() string { return string(s) }

// IterableType is a homogeneous sequence type. Item is nil exactly when
// the item type is still UNKNOWN (spec §3's `IterableType(UNKNOWN)`),
// which the semantic analyzer may refine exactly once.
type IterableType struct {
	Item UnitType
}

func (IterableType) unitType() {}
func (t IterableType) String() string {
	if t.Item == nil {
		return "List"
	}
	return t.Item.String() + "List"
}

// IsUnknown reports whether the iterable's item type has not yet been
// refined.
func (t IterableType) IsUnknown() bool { return t.Item == nil }

// FunctionType synthesizes a callable's type from its parameter types and
// return type, used when resolving the type of an identifier bound to a
// function declaration.
type FunctionType struct {
	Params []UnitType
	Return UnitType
}

func (FunctionType) unitType() {}
func (t FunctionType) String() string {
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.String()
	}
	ret := "None"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "(" + strings.Join(names, ", ") + ") " + ret
}

// Equal reports structural, name-sensitive equality between two unit
// types. A nil item in an IterableType (still UNKNOWN) is equal only to
// another unresolved IterableType.
func Equal(a, b UnitType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case SimpleType:
		bv, ok := b.(SimpleType)
		return ok && av == bv
	case IterableType:
		bv, ok := b.(IterableType)
		if !ok {
			return false
		}
		if av.Item == nil || bv.Item == nil {
			return av.Item == nil && bv.Item == nil
		}
		return Equal(av.Item, bv.Item)
	case FunctionType:
		bv, ok := b.(FunctionType)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	default:
		return false
	}
}

// ParseTypeName resolves a surface type name (spec §6.3) to a UnitType.
// An identifier ending in "List" denotes an iterable whose item type is
// the lowercased prefix; the bare name "List" denotes an iterable of
// unknown item type.
func ParseTypeName(name string) UnitType {
	if name == "List" {
		return IterableType{}
	}
	if strings.HasSuffix(name, "List") && name != "List" {
		prefix := strings.TrimSuffix(name, "List")
		return IterableType{Item: SimpleType(strings.ToLower(prefix))}
	}
	return SimpleType(name)
}

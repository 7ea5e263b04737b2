// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types defines the Type Tree: the structural description of a SCALE
// type that drives the decoding engine. A Type is constructed once per
// (chain, spec version, symbol) and shared read-only afterwards.
package types

import (
	"fmt"
	"strings"
)

// Type defines and describes SCALE types, both named and built-in. Desc
// carries the details; checking Kind() tells code how to interpret the rest.
type Type struct {
	Desc TypeDesc
}

func (t *Type) Kind() TypeKind {
	return t.Desc.Kind()
}

// IsResolved reports whether the tree is free of Generic and Named nodes and
// therefore safe to hand to the decoding engine. Ref nodes count as resolved;
// they carry their own resolver.
func (t *Type) IsResolved() bool {
	return isResolved(t)
}

func isResolved(t *Type) bool {
	switch desc := t.Desc.(type) {
	case GenericDesc, NamedDesc:
		return false
	case CompactDesc:
		return isResolved(desc.Inner)
	case SequenceDesc:
		return isResolved(desc.Elem)
	case ArrayDesc:
		return isResolved(desc.Elem)
	case TupleDesc:
		for _, e := range desc.Elems {
			if !isResolved(e) {
				return false
			}
		}
		return true
	case StructDesc:
		for _, f := range desc.Fields {
			if !isResolved(f.Type) {
				return false
			}
		}
		return true
	case EnumDesc:
		for _, v := range desc.Variants {
			if v.Type != nil && !isResolved(v.Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Equals reports structural equality. Ref nodes compare by identifier; the
// graphs behind them are not traversed, which keeps Equals total on cyclic
// types.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t == other {
		return true
	}
	if t.Kind() != other.Kind() {
		return false
	}
	switch desc := t.Desc.(type) {
	case PrimitiveDesc:
		return true
	case CompactDesc:
		return desc.Inner.Equals(other.Desc.(CompactDesc).Inner)
	case SequenceDesc:
		return desc.Elem.Equals(other.Desc.(SequenceDesc).Elem)
	case ArrayDesc:
		o := other.Desc.(ArrayDesc)
		return desc.Size == o.Size && desc.Elem.Equals(o.Elem)
	case TupleDesc:
		o := other.Desc.(TupleDesc)
		if len(desc.Elems) != len(o.Elems) {
			return false
		}
		for i, e := range desc.Elems {
			if !e.Equals(o.Elems[i]) {
				return false
			}
		}
		return true
	case StructDesc:
		o := other.Desc.(StructDesc)
		if len(desc.Fields) != len(o.Fields) {
			return false
		}
		for i, f := range desc.Fields {
			if f.Name != o.Fields[i].Name || !f.Type.Equals(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case EnumDesc:
		o := other.Desc.(EnumDesc)
		if len(desc.Variants) != len(o.Variants) {
			return false
		}
		for i, v := range desc.Variants {
			ov := o.Variants[i]
			if v.Name != ov.Name || v.Index != ov.Index {
				return false
			}
			if (v.Type == nil) != (ov.Type == nil) {
				return false
			}
			if v.Type != nil && !v.Type.Equals(ov.Type) {
				return false
			}
		}
		return true
	case BitSequenceDesc:
		return true
	case GenericDesc:
		o := other.Desc.(GenericDesc)
		if desc.Name != o.Name || len(desc.Params) != len(o.Params) {
			return false
		}
		for i, p := range desc.Params {
			if !p.Equals(o.Params[i]) {
				return false
			}
		}
		return true
	case NamedDesc:
		return desc.Symbol == other.Desc.(NamedDesc).Symbol
	case RefDesc:
		return desc.ID == other.Desc.(RefDesc).ID
	default:
		return false
	}
}

// String renders the type in the textual grammar the parser accepts, where
// one exists for the kind.
func (t *Type) String() string {
	switch desc := t.Desc.(type) {
	case PrimitiveDesc:
		return TypeKind(desc).String()
	case CompactDesc:
		return fmt.Sprintf("Compact<%s>", desc.Inner)
	case SequenceDesc:
		return fmt.Sprintf("Vec<%s>", desc.Elem)
	case ArrayDesc:
		return fmt.Sprintf("[%s; %d]", desc.Elem, desc.Size)
	case TupleDesc:
		parts := make([]string, len(desc.Elems))
		for i, e := range desc.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case StructDesc:
		parts := make([]string, len(desc.Fields))
		for i, f := range desc.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
		}
		return "struct { " + strings.Join(parts, ", ") + " }"
	case EnumDesc:
		parts := make([]string, len(desc.Variants))
		for i, v := range desc.Variants {
			if v.Type == nil {
				parts[i] = fmt.Sprintf("%s = %d", v.Name, v.Index)
			} else {
				parts[i] = fmt.Sprintf("%s(%s) = %d", v.Name, v.Type, v.Index)
			}
		}
		return "enum { " + strings.Join(parts, ", ") + " }"
	case BitSequenceDesc:
		return "BitVec"
	case GenericDesc:
		parts := make([]string, len(desc.Params))
		for i, p := range desc.Params {
			parts[i] = p.String()
		}
		return desc.Name + "<" + strings.Join(parts, ", ") + ">"
	case NamedDesc:
		return desc.Symbol
	case RefDesc:
		return fmt.Sprintf("#%d", desc.ID)
	default:
		return "unknown"
	}
}

var primitiveTypes = func() map[TypeKind]*Type {
	m := make(map[TypeKind]*Type)
	for k := Uint8Kind; k <= NullKind; k++ {
		m[k] = &Type{PrimitiveDesc(k)}
	}
	return m
}()

// MakePrimitiveType returns the shared, immutable Type for a primitive kind.
func MakePrimitiveType(k TypeKind) *Type {
	t, ok := primitiveTypes[k]
	if !ok {
		panic(fmt.Sprintf("not a primitive kind: %d", k))
	}
	return t
}

func MakeNullType() *Type {
	return MakePrimitiveType(NullKind)
}

func MakeStrType() *Type {
	return MakePrimitiveType(StrKind)
}

func MakeCompactType(inner *Type) *Type {
	return &Type{CompactDesc{Inner: inner}}
}

func MakeSequenceType(elem *Type) *Type {
	return &Type{SequenceDesc{Elem: elem}}
}

func MakeArrayType(elem *Type, size uint32) *Type {
	return &Type{ArrayDesc{Elem: elem, Size: size}}
}

func MakeTupleType(elems ...*Type) *Type {
	return &Type{TupleDesc{Elems: elems}}
}

func MakeStructType(fields ...StructField) *Type {
	return &Type{StructDesc{Fields: fields}}
}

func MakeEnumType(variants ...EnumVariant) *Type {
	return &Type{EnumDesc{Variants: variants}}
}

func MakeBitSequenceType() *Type {
	return &Type{BitSequenceDesc{}}
}

func MakeGenericType(name string, params ...*Type) *Type {
	return &Type{GenericDesc{Name: name, Params: params}}
}

func MakeNamedType(symbol string) *Type {
	return &Type{NamedDesc{Symbol: symbol}}
}

func MakeRefType(id uint32, resolver RefResolver) *Type {
	return &Type{RefDesc{ID: id, Resolver: resolver}}
}

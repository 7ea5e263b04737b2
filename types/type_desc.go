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

package types

// TypeDesc describes a type of the kind returned by Kind(), e.g. a primitive,
// a length-prefixed sequence, or a struct with ordered fields.
type TypeDesc interface {
	Kind() TypeKind
}

// PrimitiveDesc implements TypeDesc for the standalone kinds: fixed-width
// integers, bool, str and Null.
type PrimitiveDesc TypeKind

func (p PrimitiveDesc) Kind() TypeKind {
	return TypeKind(p)
}

// CompactDesc describes a SCALE compact-encoded integer wrapping an unsigned
// primitive (possibly through single-field composite layers).
type CompactDesc struct {
	Inner *Type
}

func (c CompactDesc) Kind() TypeKind {
	return CompactKind
}

// SequenceDesc describes a length-prefixed homogeneous list.
type SequenceDesc struct {
	Elem *Type
}

func (s SequenceDesc) Kind() TypeKind {
	return SequenceKind
}

// ArrayDesc describes exactly Size elements with no length prefix.
type ArrayDesc struct {
	Elem *Type
	Size uint32
}

func (a ArrayDesc) Kind() TypeKind {
	return ArrayKind
}

// TupleDesc describes an ordered, heterogeneous group of types.
type TupleDesc struct {
	Elems []*Type
}

func (t TupleDesc) Kind() TypeKind {
	return TupleKind
}

// StructField is one named field of a struct. Field order is wire order and
// is never reordered; names are presentation only.
type StructField struct {
	Name string
	Type *Type
}

// StructDesc describes a struct with fields in declaration order.
type StructDesc struct {
	Fields []StructField
}

func (s StructDesc) Kind() TypeKind {
	return StructKind
}

// IterFields calls cb for each field in wire order.
func (s StructDesc) IterFields(cb func(name string, t *Type)) {
	for _, f := range s.Fields {
		cb(f.Name, f.Type)
	}
}

// EnumVariant is one variant of an enum. Index is the wire discriminant;
// historical schemas may leave gaps, so variants are matched by Index, never
// by position. A nil Type marks a unit variant.
type EnumVariant struct {
	Name  string
	Index uint8
	Type  *Type
}

// EnumDesc describes a tagged union with a one-byte discriminant.
type EnumDesc struct {
	Variants []EnumVariant
}

func (e EnumDesc) Kind() TypeKind {
	return EnumKind
}

// Variant returns the variant declared with the given discriminant.
func (e EnumDesc) Variant(index uint8) (EnumVariant, bool) {
	for _, v := range e.Variants {
		if v.Index == index {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// BitSequenceDesc describes a compact-length-prefixed bit vector, packed
// least significant bit first.
type BitSequenceDesc struct{}

func (b BitSequenceDesc) Kind() TypeKind {
	return BitSequenceKind
}

// GenericDesc is an unresolved generic application, e.g. Foo<Bar>. It must be
// substituted away by the registry before decoding.
type GenericDesc struct {
	Name   string
	Params []*Type
}

func (g GenericDesc) Kind() TypeKind {
	return GenericKind
}

// NamedDesc is a symbolic reference to be resolved through a TypeDetective.
// It is the terminal pre-resolution leaf in the legacy era.
type NamedDesc struct {
	Symbol string
}

func (n NamedDesc) Kind() TypeKind {
	return NamedKind
}

// RefResolver resolves a portable type graph identifier to its Type. Implement
// on the graph so Ref nodes stay O(1) to construct and cycles stay expressible.
type RefResolver interface {
	ResolveRef(id uint32) (*Type, error)
}

// RefDesc is a lazy back-reference into a portable type graph. Unlike Generic
// and Named it is legal at decode time; the engine resolves it on demand.
type RefDesc struct {
	ID       uint32
	Resolver RefResolver
}

func (r RefDesc) Kind() TypeKind {
	return RefKind
}

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

// Package value defines the Value Tree produced by decoding: an immutable,
// self-describing mirror of the Type Tree. Every node carries the type it was
// decoded from and owns its data; nothing aliases the input buffer.
package value

import (
	"math/big"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/descale/types"
)

// NumericOverflow is returned by the checked narrowing accessors when a
// decoded value does not fit the requested width.
var NumericOverflow = errors.NewKind("numeric overflow: %s does not fit %s")

// Value is one node of a decoded value tree.
type Value interface {
	// Kind returns the kind of the type this value was decoded from.
	Kind() types.TypeKind

	// Type returns the type this value was decoded from.
	Type() *types.Type
}

// Primitive holds one scalar. 128-bit integers live in a big.Int; everything
// narrower lives inline.
type Primitive struct {
	typ *types.Type

	u   uint64
	i   int64
	big *big.Int
	b   bool
	s   string
}

func NewUint(t *types.Type, v uint64) *Primitive {
	return &Primitive{typ: t, u: v}
}

func NewInt(t *types.Type, v int64) *Primitive {
	return &Primitive{typ: t, i: v}
}

func NewBig(t *types.Type, v *big.Int) *Primitive {
	return &Primitive{typ: t, big: new(big.Int).Set(v)}
}

func NewBool(t *types.Type, v bool) *Primitive {
	return &Primitive{typ: t, b: v}
}

func NewStr(t *types.Type, v string) *Primitive {
	return &Primitive{typ: t, s: v}
}

func NewNull(t *types.Type) *Primitive {
	return &Primitive{typ: t}
}

func (p *Primitive) Kind() types.TypeKind {
	return p.typ.Kind()
}

func (p *Primitive) Type() *types.Type {
	return p.typ
}

// Uint64 returns the value of an unsigned primitive narrower than 128 bits.
func (p *Primitive) Uint64() uint64 {
	return p.u
}

// Int64 returns the value of a signed primitive narrower than 128 bits.
func (p *Primitive) Int64() int64 {
	return p.i
}

// Big returns the value as a big integer regardless of width. The caller owns
// the returned copy.
func (p *Primitive) Big() *big.Int {
	if p.big != nil {
		return new(big.Int).Set(p.big)
	}
	if types.IsUnsignedKind(p.Kind()) || p.Kind() == types.CompactKind {
		return new(big.Int).SetUint64(p.u)
	}
	return big.NewInt(p.i)
}

func (p *Primitive) Bool() bool {
	return p.b
}

func (p *Primitive) Str() string {
	return p.s
}

// Compact wraps the primitive a compact-encoded integer decoded to.
type Compact struct {
	typ *types.Type
	Val *Primitive
}

func NewCompact(t *types.Type, v *Primitive) *Compact {
	return &Compact{typ: t, Val: v}
}

func (c *Compact) Kind() types.TypeKind {
	return types.CompactKind
}

func (c *Compact) Type() *types.Type {
	return c.typ
}

// Sequence holds the elements of a Vec or fixed array.
type Sequence struct {
	typ   *types.Type
	Elems []Value
}

func NewSequence(t *types.Type, elems []Value) *Sequence {
	return &Sequence{typ: t, Elems: elems}
}

func (s *Sequence) Kind() types.TypeKind {
	return s.typ.Kind()
}

func (s *Sequence) Type() *types.Type {
	return s.typ
}

func (s *Sequence) Len() int {
	return len(s.Elems)
}

// Tuple holds heterogeneous positional elements.
type Tuple struct {
	typ   *types.Type
	Elems []Value
}

func NewTuple(t *types.Type, elems []Value) *Tuple {
	return &Tuple{typ: t, Elems: elems}
}

func (t *Tuple) Kind() types.TypeKind {
	return types.TupleKind
}

func (t *Tuple) Type() *types.Type {
	return t.typ
}

// Field is one named member of a decoded struct.
type Field struct {
	Name  string
	Value Value
}

// Struct holds named fields in wire order.
type Struct struct {
	typ    *types.Type
	fields []Field
}

func NewStruct(t *types.Type, fields []Field) *Struct {
	return &Struct{typ: t, fields: fields}
}

func (s *Struct) Kind() types.TypeKind {
	return types.StructKind
}

func (s *Struct) Type() *types.Type {
	return s.typ
}

func (s *Struct) Len() int {
	return len(s.fields)
}

// Field returns the named field's value.
func (s *Struct) Field(name string) (Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// IterFields calls cb for each field in wire order.
func (s *Struct) IterFields(cb func(name string, v Value)) {
	for _, f := range s.fields {
		cb(f.Name, f.Value)
	}
}

// Enum holds a decoded variant. Payload is nil for unit variants.
type Enum struct {
	typ     *types.Type
	Variant string
	Index   uint8
	Payload Value
}

func NewEnum(t *types.Type, variant string, index uint8, payload Value) *Enum {
	return &Enum{typ: t, Variant: variant, Index: index, Payload: payload}
}

func (e *Enum) Kind() types.TypeKind {
	return types.EnumKind
}

func (e *Enum) Type() *types.Type {
	return e.typ
}

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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveTypesAreShared(t *testing.T) {
	assert.Same(t, MakePrimitiveType(Uint32Kind), MakePrimitiveType(Uint32Kind))
	assert.Panics(t, func() { MakePrimitiveType(SequenceKind) })
}

func TestEquals(t *testing.T) {
	a := MakeStructType(
		StructField{Name: "x", Type: MakePrimitiveType(Uint8Kind)},
		StructField{Name: "y", Type: MakeSequenceType(MakePrimitiveType(BoolKind))},
	)
	b := MakeStructType(
		StructField{Name: "x", Type: MakePrimitiveType(Uint8Kind)},
		StructField{Name: "y", Type: MakeSequenceType(MakePrimitiveType(BoolKind))},
	)
	assert.True(t, a.Equals(b))

	c := MakeStructType(
		StructField{Name: "x", Type: MakePrimitiveType(Uint16Kind)},
		StructField{Name: "y", Type: MakeSequenceType(MakePrimitiveType(BoolKind))},
	)
	assert.False(t, a.Equals(c))

	assert.False(t, MakeArrayType(MakePrimitiveType(Uint8Kind), 32).
		Equals(MakeArrayType(MakePrimitiveType(Uint8Kind), 16)))
}

func TestEqualsRefComparesByID(t *testing.T) {
	// Refs compare by id alone so Equals stays total on cyclic graphs.
	a := MakeRefType(7, nil)
	b := MakeRefType(7, nil)
	c := MakeRefType(8, nil)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestIsResolved(t *testing.T) {
	assert.True(t, MakePrimitiveType(Uint8Kind).IsResolved())
	assert.True(t, MakeRefType(1, nil).IsResolved())
	assert.False(t, MakeNamedType("Balance").IsResolved())
	assert.False(t, MakeGenericType("Foo", MakePrimitiveType(Uint8Kind)).IsResolved())
	assert.False(t, MakeSequenceType(MakeNamedType("Balance")).IsResolved())
	assert.False(t, MakeStructType(
		StructField{Name: "a", Type: MakeCompactType(MakeNamedType("Balance"))},
	).IsResolved())
	assert.True(t, MakeEnumType(
		EnumVariant{Name: "None", Index: 0},
		EnumVariant{Name: "Some", Index: 1, Type: MakePrimitiveType(Uint32Kind)},
	).IsResolved())
}

func TestString(t *testing.T) {
	assert.Equal(t, "u32", MakePrimitiveType(Uint32Kind).String())
	assert.Equal(t, "Vec<u8>", MakeSequenceType(MakePrimitiveType(Uint8Kind)).String())
	assert.Equal(t, "[u8; 32]", MakeArrayType(MakePrimitiveType(Uint8Kind), 32).String())
	assert.Equal(t, "Compact<u128>", MakeCompactType(MakePrimitiveType(Uint128Kind)).String())
	assert.Equal(t, "(u8, bool)", MakeTupleType(MakePrimitiveType(Uint8Kind), MakePrimitiveType(BoolKind)).String())
	assert.Equal(t, "struct { a: u8 }", MakeStructType(StructField{Name: "a", Type: MakePrimitiveType(Uint8Kind)}).String())
	assert.Equal(t, "enum { None = 0, Some(u32) = 1 }", MakeEnumType(
		EnumVariant{Name: "None", Index: 0},
		EnumVariant{Name: "Some", Index: 1, Type: MakePrimitiveType(Uint32Kind)},
	).String())
	assert.Equal(t, "Foo<Bar>", MakeGenericType("Foo", MakeNamedType("Bar")).String())
	assert.Equal(t, "#3", MakeRefType(3, nil).String())
}

func TestFixedWidth(t *testing.T) {
	assert.Equal(t, 1, FixedWidth(Uint8Kind))
	assert.Equal(t, 2, FixedWidth(Int16Kind))
	assert.Equal(t, 4, FixedWidth(Float32Kind))
	assert.Equal(t, 8, FixedWidth(Uint64Kind))
	assert.Equal(t, 16, FixedWidth(Int128Kind))
	assert.Equal(t, 0, FixedWidth(NullKind))
	assert.Equal(t, -1, FixedWidth(StrKind))
	assert.Equal(t, -1, FixedWidth(SequenceKind))
}

func TestEnumVariantLookup(t *testing.T) {
	e := EnumDesc{Variants: []EnumVariant{
		{Name: "A", Index: 0},
		{Name: "C", Index: 5},
	}}
	v, ok := e.Variant(5)
	assert.True(t, ok)
	assert.Equal(t, "C", v.Name)
	_, ok = e.Variant(1)
	assert.False(t, ok)
}

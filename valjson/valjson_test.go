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

package valjson

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/descale/types"
	"github.com/dolthub/descale/value"
)

func marshalString(t *testing.T, v value.Value) string {
	t.Helper()
	out, err := Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestMarshalPrimitives(t *testing.T) {
	u8 := types.MakePrimitiveType(types.Uint8Kind)
	assert.Equal(t, "42", marshalString(t, value.NewUint(u8, 42)))

	i32 := types.MakePrimitiveType(types.Int32Kind)
	assert.Equal(t, "-7", marshalString(t, value.NewInt(i32, -7)))

	b := types.MakePrimitiveType(types.BoolKind)
	assert.Equal(t, "true", marshalString(t, value.NewBool(b, true)))

	s := types.MakeStrType()
	assert.Equal(t, `"hi"`, marshalString(t, value.NewStr(s, "hi")))

	assert.Equal(t, "null", marshalString(t, value.NewNull(types.MakeNullType())))
}

func TestMarshalU128AsDecimalString(t *testing.T) {
	u128 := types.MakePrimitiveType(types.Uint128Kind)
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	assert.Equal(t, `"340282366920938463463374607431768211455"`,
		marshalString(t, value.NewBig(u128, huge)))
}

func TestMarshalStruct(t *testing.T) {
	u8 := types.MakePrimitiveType(types.Uint8Kind)
	typ := types.MakeStructType(
		types.StructField{Name: "a", Type: u8},
		types.StructField{Name: "b", Type: u8},
	)
	v := value.NewStruct(typ, []value.Field{
		{Name: "a", Value: value.NewUint(u8, 1)},
		{Name: "b", Value: value.NewUint(u8, 2)},
	})
	assert.JSONEq(t, `{"a":1,"b":2}`, marshalString(t, v))
}

func TestMarshalSequenceAndTuple(t *testing.T) {
	u8 := types.MakePrimitiveType(types.Uint8Kind)
	seq := value.NewSequence(types.MakeSequenceType(u8), []value.Value{
		value.NewUint(u8, 1), value.NewUint(u8, 2),
	})
	assert.Equal(t, "[1,2]", marshalString(t, seq))

	b := types.MakePrimitiveType(types.BoolKind)
	tup := value.NewTuple(types.MakeTupleType(u8, b), []value.Value{
		value.NewUint(u8, 9), value.NewBool(b, false),
	})
	assert.Equal(t, "[9,false]", marshalString(t, tup))
}

func TestMarshalEnum(t *testing.T) {
	u32 := types.MakePrimitiveType(types.Uint32Kind)
	typ := types.MakeEnumType(
		types.EnumVariant{Name: "None", Index: 0},
		types.EnumVariant{Name: "Some", Index: 1, Type: u32},
	)

	unit := value.NewEnum(typ, "None", 0, nil)
	assert.Equal(t, `"None"`, marshalString(t, unit))

	some := value.NewEnum(typ, "Some", 1, value.NewUint(u32, 42))
	assert.JSONEq(t, `{"Some":42}`, marshalString(t, some))
}

func TestMarshalCompact(t *testing.T) {
	u32 := types.MakePrimitiveType(types.Uint32Kind)
	c := value.NewCompact(types.MakeCompactType(u32), value.NewUint(u32, 1000))
	assert.Equal(t, "1000", marshalString(t, c))
}

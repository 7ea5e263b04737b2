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

package portable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/descale/types"
)

func testGraph() *Graph {
	return NewGraph(map[uint32]Node{
		0: {Def: PrimitiveDef{Kind: types.Uint32Kind}},
		1: {Def: PrimitiveDef{Kind: types.Uint8Kind}},
		2: {Def: SequenceDef{Elem: 1}},
		3: {Path: []string{"sp_core", "crypto", "AccountId32"}, Def: CompositeDef{
			Fields: []Field{{Type: 4}},
		}},
		4: {Def: ArrayDef{Len: 32, Elem: 1}},
		5: {Path: []string{"pallet_balances", "AccountData"}, Def: CompositeDef{
			Fields: []Field{{Name: "free", Type: 6}, {Name: "reserved", Type: 6}},
		}},
		6: {Def: PrimitiveDef{Kind: types.Uint128Kind}},
		7: {Def: CompactDef{Elem: 0}},
		8: {Def: TupleDef{Elems: []uint32{0, 2}}},
		9: {Path: []string{"Option"}, Def: VariantDef{Variants: []Variant{
			{Name: "None", Index: 0},
			{Name: "Some", Index: 1, Fields: []Field{{Type: 0}}},
		}}},
		10: {Def: BitSequenceDef{}},
		// A cons list: each node holds a value and refers back to itself.
		11: {Path: []string{"List"}, Def: VariantDef{Variants: []Variant{
			{Name: "Nil", Index: 0},
			{Name: "Cons", Index: 1, Fields: []Field{
				{Name: "head", Type: 1},
				{Name: "tail", Type: 11},
			}}},
		}},
	})
}

func TestResolvePrimitive(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(0)
	require.NoError(t, err)
	assert.True(t, typ.Equals(types.MakePrimitiveType(types.Uint32Kind)))
}

func TestResolveSequenceIsLazy(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(2)
	require.NoError(t, err)
	require.Equal(t, types.SequenceKind, typ.Kind())

	elem := typ.Desc.(types.SequenceDesc).Elem
	require.Equal(t, types.RefKind, elem.Kind())
	ref := elem.Desc.(types.RefDesc)
	assert.Equal(t, uint32(1), ref.ID)

	inner, err := ref.Resolver.ResolveRef(ref.ID)
	require.NoError(t, err)
	assert.True(t, inner.Equals(types.MakePrimitiveType(types.Uint8Kind)))
}

func TestNewtypeCompositeCollapses(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(3)
	require.NoError(t, err)
	require.Equal(t, types.RefKind, typ.Kind())
	assert.Equal(t, uint32(4), typ.Desc.(types.RefDesc).ID)
}

func TestNamedCompositeIsStruct(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(5)
	require.NoError(t, err)
	require.Equal(t, types.StructKind, typ.Kind())
	desc := typ.Desc.(types.StructDesc)
	require.Len(t, desc.Fields, 2)
	assert.Equal(t, "free", desc.Fields[0].Name)
	assert.Equal(t, "reserved", desc.Fields[1].Name)
}

func TestResolveVariant(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(9)
	require.NoError(t, err)
	require.Equal(t, types.EnumKind, typ.Kind())
	desc := typ.Desc.(types.EnumDesc)

	none, ok := desc.Variant(0)
	require.True(t, ok)
	assert.Equal(t, "None", none.Name)
	assert.Nil(t, none.Type)

	some, ok := desc.Variant(1)
	require.True(t, ok)
	require.NotNil(t, some.Type)
	assert.Equal(t, types.RefKind, some.Type.Kind())
}

func TestRecursiveNodeResolvesWithoutExpansion(t *testing.T) {
	g := testGraph()
	typ, err := g.ResolveType(11)
	require.NoError(t, err)
	require.Equal(t, types.EnumKind, typ.Kind())

	cons, ok := typ.Desc.(types.EnumDesc).Variant(1)
	require.True(t, ok)
	require.Equal(t, types.StructKind, cons.Type.Kind())
	tail := cons.Type.Desc.(types.StructDesc).Fields[1].Type
	require.Equal(t, types.RefKind, tail.Kind())
	assert.Equal(t, uint32(11), tail.Desc.(types.RefDesc).ID)
}

func TestCompactAndTupleAndBitSeq(t *testing.T) {
	g := testGraph()

	typ, err := g.ResolveType(7)
	require.NoError(t, err)
	assert.Equal(t, types.CompactKind, typ.Kind())

	typ, err = g.ResolveType(8)
	require.NoError(t, err)
	require.Equal(t, types.TupleKind, typ.Kind())
	assert.Len(t, typ.Desc.(types.TupleDesc).Elems, 2)

	typ, err = g.ResolveType(10)
	require.NoError(t, err)
	assert.Equal(t, types.BitSequenceKind, typ.Kind())
}

func TestUnknownID(t *testing.T) {
	g := testGraph()
	_, err := g.ResolveType(999)
	assert.True(t, ErrUnknownTypeID.Is(err))
}

func TestConcurrentResolve(t *testing.T) {
	g := testGraph()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := uint32(0); id < 12; id++ {
				_, err := g.ResolveType(id)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

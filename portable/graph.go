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

// Package portable translates the modern era's self-describing type graph,
// a mapping of numeric ids to node descriptions, into the unified type tree.
// Ids a node references become lazy Ref nodes carrying the graph as their
// resolver, so resolving one id costs only its own description and cyclic
// graphs are expressible without expansion.
package portable

import (
	"strings"
	"sync"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/descale/types"
)

var (
	// ErrUnknownTypeID is returned when a graph has no node for an id.
	ErrUnknownTypeID = errors.NewKind("portable type graph has no type with id %d")

	// ErrBadNode is returned for a node with a nil or foreign definition.
	ErrBadNode = errors.NewKind("portable type graph node %q has no usable definition")
)

// Field is one field of a composite or variant node. An empty Name marks a
// positional field.
type Field struct {
	Name string
	Type uint32
}

// Variant is one variant of a variant node. Index is the wire discriminant.
type Variant struct {
	Name   string
	Index  uint8
	Fields []Field
}

// Def describes the shape of one graph node. Exactly one concrete Def type
// applies per node.
type Def interface {
	isDef()
}

type PrimitiveDef struct {
	Kind types.TypeKind
}

type CompositeDef struct {
	Fields []Field
}

type VariantDef struct {
	Variants []Variant
}

type SequenceDef struct {
	Elem uint32
}

type ArrayDef struct {
	Len  uint32
	Elem uint32
}

type TupleDef struct {
	Elems []uint32
}

type CompactDef struct {
	Elem uint32
}

type BitSequenceDef struct{}

func (PrimitiveDef) isDef()   {}
func (CompositeDef) isDef()   {}
func (VariantDef) isDef()     {}
func (SequenceDef) isDef()    {}
func (ArrayDef) isDef()       {}
func (TupleDef) isDef()       {}
func (CompactDef) isDef()     {}
func (BitSequenceDef) isDef() {}

// Node is one entry of the graph. Path is the node's namespaced name from the
// source metadata; the last segment names structs and enums in rendering.
type Node struct {
	Path []string
	Def  Def
}

// Graph is an immutable portable type graph. Safe for concurrent use; the
// per-id memo is the only mutable state.
type Graph struct {
	nodes map[uint32]Node

	mu   sync.RWMutex
	memo map[uint32]*types.Type
}

var _ types.RefResolver = (*Graph)(nil)

func NewGraph(nodes map[uint32]Node) *Graph {
	g := &Graph{
		nodes: make(map[uint32]Node, len(nodes)),
		memo:  make(map[uint32]*types.Type, len(nodes)),
	}
	for id, n := range nodes {
		g.nodes[id] = n
	}
	return g
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ResolveType translates the node with the given id into a type tree. Child
// ids become lazy Ref nodes; only the node itself is translated.
func (g *Graph) ResolveType(id uint32) (*types.Type, error) {
	g.mu.RLock()
	if t, ok := g.memo[id]; ok {
		g.mu.RUnlock()
		return t, nil
	}
	g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return nil, ErrUnknownTypeID.New(id)
	}
	t, err := g.translate(node)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.memo[id] = t
	g.mu.Unlock()
	return t, nil
}

// ResolveRef implements types.RefResolver for the decoding engine.
func (g *Graph) ResolveRef(id uint32) (*types.Type, error) {
	return g.ResolveType(id)
}

func (g *Graph) ref(id uint32) *types.Type {
	return types.MakeRefType(id, g)
}

func (g *Graph) translate(node Node) (*types.Type, error) {
	switch def := node.Def.(type) {
	case PrimitiveDef:
		return types.MakePrimitiveType(def.Kind), nil
	case CompactDef:
		return types.MakeCompactType(g.ref(def.Elem)), nil
	case SequenceDef:
		return types.MakeSequenceType(g.ref(def.Elem)), nil
	case ArrayDef:
		return types.MakeArrayType(g.ref(def.Elem), def.Len), nil
	case TupleDef:
		elems := make([]*types.Type, len(def.Elems))
		for i, e := range def.Elems {
			elems[i] = g.ref(e)
		}
		return types.MakeTupleType(elems...), nil
	case CompositeDef:
		return g.translateFields(def.Fields), nil
	case VariantDef:
		variants := make([]types.EnumVariant, len(def.Variants))
		for i, v := range def.Variants {
			ev := types.EnumVariant{Name: v.Name, Index: v.Index}
			if len(v.Fields) > 0 {
				ev.Type = g.translateFields(v.Fields)
			}
			variants[i] = ev
		}
		return types.MakeEnumType(variants...), nil
	case BitSequenceDef:
		return types.MakeBitSequenceType(), nil
	default:
		return nil, ErrBadNode.New(strings.Join(node.Path, "::"))
	}
}

// translateFields maps a field list onto the tree: named fields become a
// struct, unnamed fields a tuple, and a single unnamed field collapses to
// the field's type itself.
func (g *Graph) translateFields(fields []Field) *types.Type {
	named := false
	for _, f := range fields {
		if f.Name != "" {
			named = true
			break
		}
	}
	if named {
		sfs := make([]types.StructField, len(fields))
		for i, f := range fields {
			sfs[i] = types.StructField{Name: f.Name, Type: g.ref(f.Type)}
		}
		return types.MakeStructType(sfs...)
	}
	if len(fields) == 1 {
		return g.ref(fields[0].Type)
	}
	elems := make([]*types.Type, len(fields))
	for i, f := range fields {
		elems[i] = g.ref(f.Type)
	}
	return types.MakeTupleType(elems...)
}

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

// Package valjson renders decoded value trees as JSON: structs become
// objects, sequences and tuples arrays, payload-carrying enum variants
// single-key objects and unit variants plain strings. Integers wider than
// 64 bits render as decimal strings so consumers never lose precision.
package valjson

import (
	"github.com/goccy/go-json"

	"github.com/dolthub/descale/types"
	"github.com/dolthub/descale/value"
)

// Marshal renders one value tree.
func Marshal(v value.Value) ([]byte, error) {
	tree, err := build(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

type builder struct {
	out interface{}
}

var _ value.Visitor = (*builder)(nil)

func build(v value.Value) (interface{}, error) {
	b := &builder{}
	if err := value.Walk(v, b); err != nil {
		return nil, err
	}
	return b.out, nil
}

func (b *builder) VisitPrimitive(p *value.Primitive) error {
	switch k := p.Kind(); {
	case k == types.BoolKind:
		b.out = p.Bool()
	case k == types.StrKind:
		b.out = p.Str()
	case k == types.NullKind:
		b.out = nil
	case k == types.Uint128Kind || k == types.Int128Kind:
		b.out = p.Big().String()
	case types.IsUnsignedKind(k):
		b.out = p.Uint64()
	default:
		b.out = p.Int64()
	}
	return nil
}

func (b *builder) VisitCompact(c *value.Compact) error {
	return b.VisitPrimitive(c.Val)
}

func (b *builder) VisitSequence(s *value.Sequence) error {
	return b.visitElems(s.Elems)
}

func (b *builder) VisitTuple(t *value.Tuple) error {
	return b.visitElems(t.Elems)
}

func (b *builder) visitElems(elems []value.Value) error {
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		child, err := build(e)
		if err != nil {
			return err
		}
		out[i] = child
	}
	b.out = out
	return nil
}

func (b *builder) VisitStruct(s *value.Struct) error {
	out := make(map[string]interface{}, s.Len())
	var walkErr error
	s.IterFields(func(name string, v value.Value) {
		if walkErr != nil {
			return
		}
		child, err := build(v)
		if err != nil {
			walkErr = err
			return
		}
		out[name] = child
	})
	if walkErr != nil {
		return walkErr
	}
	b.out = out
	return nil
}

func (b *builder) VisitEnum(e *value.Enum) error {
	if e.Payload == nil {
		b.out = e.Variant
		return nil
	}
	child, err := build(e.Payload)
	if err != nil {
		return err
	}
	b.out = map[string]interface{}{e.Variant: child}
	return nil
}

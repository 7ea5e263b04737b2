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

package typeexpr

import (
	"github.com/dolthub/descale/types"
)

// FieldExpr is one field of a structured struct descriptor, the shape override
// documents use instead of a flat expression string.
type FieldExpr struct {
	Name string
	Expr string
}

// VariantExpr is one variant of a structured enum descriptor. An empty Expr
// marks a unit variant. Index, when set, fixes the wire discriminant; later
// variants without one continue counting from it.
type VariantExpr struct {
	Name  string
	Expr  string
	Index *uint8
}

// ParseStructDescriptor builds a struct type from pre-tokenized fields, each
// field type being a full expression parsed recursively. Field order is wire
// order.
func ParseStructDescriptor(fields []FieldExpr) (*types.Type, error) {
	sfs := make([]types.StructField, len(fields))
	for i, f := range fields {
		ft, err := ParseType(f.Expr)
		if err != nil {
			return nil, err
		}
		sfs[i] = types.StructField{Name: f.Name, Type: ft}
	}
	return types.MakeStructType(sfs...), nil
}

// ParseEnumDescriptor builds an enum type from pre-tokenized variants.
// Discriminants default to declaration order but an explicit Index restarts
// the count, so index-keyed enum objects with gaps round-trip exactly.
func ParseEnumDescriptor(variants []VariantExpr) (*types.Type, error) {
	evs := make([]types.EnumVariant, len(variants))
	next := uint8(0)
	for i, v := range variants {
		if v.Index != nil {
			next = *v.Index
		}
		ev := types.EnumVariant{Name: v.Name, Index: next}
		if v.Expr != "" {
			vt, err := ParseType(v.Expr)
			if err != nil {
				return nil, err
			}
			ev.Type = vt
		}
		evs[i] = ev
		next++
	}
	return types.MakeEnumType(evs...), nil
}

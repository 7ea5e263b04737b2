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

package value

import "fmt"

// Visitor receives one callback per node kind. Serializers implement it so
// this package depends on no output format.
type Visitor interface {
	VisitPrimitive(p *Primitive) error
	VisitCompact(c *Compact) error
	VisitSequence(s *Sequence) error
	VisitTuple(t *Tuple) error
	VisitStruct(s *Struct) error
	VisitEnum(e *Enum) error
}

// Walk dispatches v to the visitor. Traversal into children is the visitor's
// call; composite callbacks receive the whole node.
func Walk(v Value, visitor Visitor) error {
	switch val := v.(type) {
	case *Primitive:
		return visitor.VisitPrimitive(val)
	case *Compact:
		return visitor.VisitCompact(val)
	case *Sequence:
		return visitor.VisitSequence(val)
	case *Tuple:
		return visitor.VisitTuple(val)
	case *Struct:
		return visitor.VisitStruct(val)
	case *Enum:
		return visitor.VisitEnum(val)
	default:
		return fmt.Errorf("walk: unhandled value %T", v)
	}
}

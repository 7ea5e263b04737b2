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

// TypeKind allows a TypeDesc to indicate what kind of type is described.
type TypeKind uint8

// All supported kinds of SCALE types are enumerated here. The primitive
// kinds (Uint8 through Null) stand alone; every other kind carries more
// detail in its TypeDesc.
const (
	UnknownKind TypeKind = iota

	Uint8Kind
	Uint16Kind
	Uint32Kind
	Uint64Kind
	Uint128Kind
	Int8Kind
	Int16Kind
	Int32Kind
	Int64Kind
	Int128Kind
	Float32Kind
	Float64Kind
	BoolKind
	StrKind
	NullKind

	CompactKind
	SequenceKind
	ArrayKind
	TupleKind
	StructKind
	EnumKind
	BitSequenceKind

	// GenericKind and NamedKind only exist pre-resolution. RefKind is a lazy
	// back-reference into a portable type graph and is legal at decode time.
	GenericKind
	NamedKind
	RefKind
)

var KindToString = map[TypeKind]string{
	UnknownKind:     "unknown",
	Uint8Kind:       "u8",
	Uint16Kind:      "u16",
	Uint32Kind:      "u32",
	Uint64Kind:      "u64",
	Uint128Kind:     "u128",
	Int8Kind:        "i8",
	Int16Kind:       "i16",
	Int32Kind:       "i32",
	Int64Kind:       "i64",
	Int128Kind:      "i128",
	Float32Kind:     "f32",
	Float64Kind:     "f64",
	BoolKind:        "bool",
	StrKind:         "str",
	NullKind:        "Null",
	CompactKind:     "Compact",
	SequenceKind:    "Vec",
	ArrayKind:       "Array",
	TupleKind:       "Tuple",
	StructKind:      "Struct",
	EnumKind:        "Enum",
	BitSequenceKind: "BitVec",
	GenericKind:     "Generic",
	NamedKind:       "Named",
	RefKind:         "Ref",
}

// String returns the name of the kind.
func (k TypeKind) String() string {
	return KindToString[k]
}

// IsPrimitiveKind returns true if k stands alone on the wire with no child
// types: fixed-width integers, bool, str, and the zero-width Null.
func IsPrimitiveKind(k TypeKind) bool {
	return k >= Uint8Kind && k <= NullKind
}

// IsUnsignedKind returns true for the unsigned integer kinds, the only kinds
// a Compact may wrap.
func IsUnsignedKind(k TypeKind) bool {
	return k >= Uint8Kind && k <= Uint128Kind
}

// FixedWidth returns the encoded byte width of a fixed-width primitive kind,
// or -1 if the kind has no fixed width (str is length-prefixed, Null is
// zero-width but handled separately).
func FixedWidth(k TypeKind) int {
	switch k {
	case Uint8Kind, Int8Kind, BoolKind:
		return 1
	case Uint16Kind, Int16Kind:
		return 2
	case Uint32Kind, Int32Kind, Float32Kind:
		return 4
	case Uint64Kind, Int64Kind, Float64Kind:
		return 8
	case Uint128Kind, Int128Kind:
		return 16
	case NullKind:
		return 0
	default:
		return -1
	}
}

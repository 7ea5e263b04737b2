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

// Package scale decodes SCALE-encoded payloads against resolved type trees.
// The engine is era-agnostic: legacy registry output and portable graph
// output drive it identically.
package scale

import (
	"math/big"

	"go.uber.org/zap"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/descale/types"
	"github.com/dolthub/descale/value"
)

var (
	// UnknownVariant is returned when a discriminant byte matches no
	// declared variant.
	UnknownVariant = errors.NewKind("unknown variant discriminant %d for %s")

	// ErrUnresolvedType is returned when a Generic or Named node reaches the
	// engine; resolution must happen first.
	ErrUnresolvedType = errors.NewKind("cannot decode unresolved type %s")

	// ErrUnsupportedType is returned for types with no SCALE decode rule,
	// such as floats.
	ErrUnsupportedType = errors.NewKind("no decode rule for type %s")

	// CyclicTypeDefinition is returned when following type references makes
	// no byte progress, the data-free cycle a malformed graph can express.
	CyclicTypeDefinition = errors.NewKind("type reference cycle with no data progress at id %d")
)

// Decoder decodes payloads. Stateless between calls; safe for concurrent use.
type Decoder struct {
	logger *zap.Logger
}

type Option func(*Decoder)

// WithLogger injects a logger for decode tracing. Default is a Nop.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeBytes decodes one payload from its start. Trailing bytes are
// reported, never treated as an error; callers with framing knowledge decide.
func (d *Decoder) DecodeBytes(data []byte, t *types.Type) (value.Value, int, error) {
	r := NewReader(data)
	v, err := d.Decode(r, t)
	if err != nil {
		return nil, 0, err
	}
	if rem := r.Remaining(); rem > 0 {
		d.logger.Debug("payload has trailing bytes",
			zap.Int("trailing", rem), zap.Stringer("type", t))
	}
	return v, r.Remaining(), nil
}

// Decode decodes one value of type t at the reader's cursor.
func (d *Decoder) Decode(r *Reader, t *types.Type) (value.Value, error) {
	return d.decode(r, t, &refGuard{pos: -1})
}

// refGuard catches reference chains that loop without consuming input. The
// seen set resets whenever the cursor moves; revisiting an id at the same
// offset means the graph describes an infinitely nested value.
type refGuard struct {
	pos  int
	seen map[uint32]bool
}

func (g *refGuard) enter(id uint32, pos int) error {
	if pos != g.pos {
		g.pos = pos
		g.seen = nil
	}
	if g.seen[id] {
		return CyclicTypeDefinition.New(id)
	}
	if g.seen == nil {
		g.seen = make(map[uint32]bool)
	}
	g.seen[id] = true
	return nil
}

func (d *Decoder) decode(r *Reader, t *types.Type, g *refGuard) (value.Value, error) {
	switch desc := t.Desc.(type) {
	case types.PrimitiveDesc:
		return d.decodePrimitive(r, t)
	case types.CompactDesc:
		return d.decodeCompact(r, t, desc)
	case types.SequenceDesc:
		n, err := ReadCompact(r)
		if err != nil {
			return nil, err
		}
		// A length the remaining bytes cannot satisfy fails before any
		// allocation happens.
		if !n.IsUint64() || n.Uint64() > uint64(r.Remaining()) {
			return nil, UnexpectedEof.New(n, r.Pos(), r.Remaining())
		}
		return d.decodeElems(r, t, desc.Elem, int(n.Uint64()), g)
	case types.ArrayDesc:
		return d.decodeElems(r, t, desc.Elem, int(desc.Size), g)
	case types.TupleDesc:
		elems := make([]value.Value, len(desc.Elems))
		for i, et := range desc.Elems {
			ev, err := d.decode(r, et, g)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return value.NewTuple(t, elems), nil
	case types.StructDesc:
		fields := make([]value.Field, len(desc.Fields))
		for i, f := range desc.Fields {
			fv, err := d.decode(r, f.Type, g)
			if err != nil {
				return nil, err
			}
			fields[i] = value.Field{Name: f.Name, Value: fv}
		}
		return value.NewStruct(t, fields), nil
	case types.EnumDesc:
		idx, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		variant, ok := desc.Variant(idx)
		if !ok {
			return nil, UnknownVariant.New(idx, t)
		}
		var payload value.Value
		if variant.Type != nil {
			payload, err = d.decode(r, variant.Type, g)
			if err != nil {
				return nil, err
			}
		}
		return value.NewEnum(t, variant.Name, variant.Index, payload), nil
	case types.BitSequenceDesc:
		return d.decodeBitSequence(r, t)
	case types.RefDesc:
		if err := g.enter(desc.ID, r.Pos()); err != nil {
			return nil, err
		}
		resolved, err := desc.Resolver.ResolveRef(desc.ID)
		if err != nil {
			return nil, err
		}
		return d.decode(r, resolved, g)
	case types.GenericDesc, types.NamedDesc:
		return nil, ErrUnresolvedType.New(t)
	default:
		return nil, ErrUnsupportedType.New(t)
	}
}

func (d *Decoder) decodeElems(r *Reader, t, elem *types.Type, n int, g *refGuard) (value.Value, error) {
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		ev, err := d.decode(r, elem, g)
		if err != nil {
			return nil, err
		}
		elems[i] = ev
	}
	return value.NewSequence(t, elems), nil
}

func (d *Decoder) decodePrimitive(r *Reader, t *types.Type) (value.Value, error) {
	switch t.Kind() {
	case types.Uint8Kind:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return value.NewUint(t, uint64(b)), nil
	case types.Uint16Kind:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return value.NewUint(t, uint64(v)), nil
	case types.Uint32Kind:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return value.NewUint(t, uint64(v)), nil
	case types.Uint64Kind:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return value.NewUint(t, v), nil
	case types.Uint128Kind:
		le, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		return value.NewBig(t, new(big.Int).SetBytes(reverse(le))), nil
	case types.Int8Kind:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return value.NewInt(t, int64(int8(b))), nil
	case types.Int16Kind:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return value.NewInt(t, int64(int16(v))), nil
	case types.Int32Kind:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return value.NewInt(t, int64(int32(v))), nil
	case types.Int64Kind:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return value.NewInt(t, int64(v)), nil
	case types.Int128Kind:
		le, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(reverse(le))
		if le[15]&0x80 != 0 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
		}
		return value.NewBig(t, v), nil
	case types.BoolKind:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b > 1 {
			return nil, UnknownVariant.New(b, t)
		}
		return value.NewBool(t, b == 1), nil
	case types.StrKind:
		n, err := ReadCompact(r)
		if err != nil {
			return nil, err
		}
		if !n.IsUint64() || n.Uint64() > uint64(r.Remaining()) {
			return nil, UnexpectedEof.New(n, r.Pos(), r.Remaining())
		}
		raw, err := r.ReadBytes(int(n.Uint64()))
		if err != nil {
			return nil, err
		}
		return value.NewStr(t, string(raw)), nil
	case types.NullKind:
		return value.NewNull(t), nil
	default:
		return nil, ErrUnsupportedType.New(t)
	}
}

var compactMax = map[types.TypeKind]*big.Int{
	types.Uint8Kind:   new(big.Int).SetUint64(0xff),
	types.Uint16Kind:  new(big.Int).SetUint64(0xffff),
	types.Uint32Kind:  new(big.Int).SetUint64(0xffffffff),
	types.Uint64Kind:  new(big.Int).SetUint64(^uint64(0)),
	types.Uint128Kind: new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)),
}

func (d *Decoder) decodeCompact(r *Reader, t *types.Type, desc types.CompactDesc) (value.Value, error) {
	inner, err := unwrapCompactInner(desc.Inner)
	if err != nil {
		return nil, err
	}
	v, err := ReadCompact(r)
	if err != nil {
		return nil, err
	}
	max := compactMax[inner.Kind()]
	if v.Cmp(max) > 0 {
		return nil, value.NumericOverflow.New(v, inner)
	}
	var prim *value.Primitive
	if inner.Kind() == types.Uint128Kind {
		prim = value.NewBig(inner, v)
	} else {
		prim = value.NewUint(inner, v.Uint64())
	}
	return value.NewCompact(t, prim), nil
}

// unwrapCompactInner chases the compact's target down to the unsigned
// primitive it encodes, through refs and newtype layers.
func unwrapCompactInner(t *types.Type) (*types.Type, error) {
	for depth := 0; depth < 32; depth++ {
		switch desc := t.Desc.(type) {
		case types.PrimitiveDesc:
			if !types.IsUnsignedKind(t.Kind()) {
				return nil, ErrUnsupportedType.New(t)
			}
			return t, nil
		case types.RefDesc:
			resolved, err := desc.Resolver.ResolveRef(desc.ID)
			if err != nil {
				return nil, err
			}
			t = resolved
		case types.CompactDesc:
			t = desc.Inner
		case types.TupleDesc:
			if len(desc.Elems) != 1 {
				return nil, ErrUnsupportedType.New(t)
			}
			t = desc.Elems[0]
		case types.StructDesc:
			if len(desc.Fields) != 1 {
				return nil, ErrUnsupportedType.New(t)
			}
			t = desc.Fields[0].Type
		default:
			return nil, ErrUnsupportedType.New(t)
		}
	}
	return nil, ErrUnsupportedType.New(t)
}

func (d *Decoder) decodeBitSequence(r *Reader, t *types.Type) (value.Value, error) {
	bits, err := ReadCompact(r)
	if err != nil {
		return nil, err
	}
	if !bits.IsUint64() || (bits.Uint64()+7)/8 > uint64(r.Remaining()) {
		return nil, UnexpectedEof.New(bits, r.Pos(), r.Remaining())
	}
	n := int(bits.Uint64())
	packed, err := r.ReadBytes((n + 7) / 8)
	if err != nil {
		return nil, err
	}
	boolType := types.MakePrimitiveType(types.BoolKind)
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		set := packed[i/8]&(1<<(i%8)) != 0
		elems[i] = value.NewBool(boolType, set)
	}
	return value.NewSequence(t, elems), nil
}

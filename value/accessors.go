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

import (
	"math"
	"math/big"

	"github.com/dolthub/descale/types"
)

// Checked conversions. Widening always succeeds; a value that does not fit
// the requested width fails with NumericOverflow instead of truncating.

func (p *Primitive) AsUint8() (uint8, error) {
	v, err := p.asUint(math.MaxUint8, "u8")
	return uint8(v), err
}

func (p *Primitive) AsUint16() (uint16, error) {
	v, err := p.asUint(math.MaxUint16, "u16")
	return uint16(v), err
}

func (p *Primitive) AsUint32() (uint32, error) {
	v, err := p.asUint(math.MaxUint32, "u32")
	return uint32(v), err
}

func (p *Primitive) AsUint64() (uint64, error) {
	return p.asUint(math.MaxUint64, "u64")
}

func (p *Primitive) asUint(max uint64, name string) (uint64, error) {
	if p.big != nil {
		if p.big.Sign() < 0 || !p.big.IsUint64() || p.big.Uint64() > max {
			return 0, NumericOverflow.New(p.big, name)
		}
		return p.big.Uint64(), nil
	}
	if isSignedKind(p.Kind()) {
		if p.i < 0 || uint64(p.i) > max {
			return 0, NumericOverflow.New(big.NewInt(p.i), name)
		}
		return uint64(p.i), nil
	}
	if p.u > max {
		return 0, NumericOverflow.New(new(big.Int).SetUint64(p.u), name)
	}
	return p.u, nil
}

func (p *Primitive) AsInt8() (int8, error) {
	v, err := p.asInt(math.MinInt8, math.MaxInt8, "i8")
	return int8(v), err
}

func (p *Primitive) AsInt16() (int16, error) {
	v, err := p.asInt(math.MinInt16, math.MaxInt16, "i16")
	return int16(v), err
}

func (p *Primitive) AsInt32() (int32, error) {
	v, err := p.asInt(math.MinInt32, math.MaxInt32, "i32")
	return int32(v), err
}

func (p *Primitive) AsInt64() (int64, error) {
	return p.asInt(math.MinInt64, math.MaxInt64, "i64")
}

func (p *Primitive) asInt(min, max int64, name string) (int64, error) {
	if p.big != nil {
		if !p.big.IsInt64() || p.big.Int64() < min || p.big.Int64() > max {
			return 0, NumericOverflow.New(p.big, name)
		}
		return p.big.Int64(), nil
	}
	if !isSignedKind(p.Kind()) {
		if max >= 0 && p.u > uint64(max) {
			return 0, NumericOverflow.New(new(big.Int).SetUint64(p.u), name)
		}
		return int64(p.u), nil
	}
	if p.i < min || p.i > max {
		return 0, NumericOverflow.New(big.NewInt(p.i), name)
	}
	return p.i, nil
}

func isSignedKind(k types.TypeKind) bool {
	return k >= types.Int8Kind && k <= types.Int128Kind
}

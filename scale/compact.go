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

package scale

import (
	"encoding/binary"
	"math/big"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrCompactRange is returned when a value cannot be compact-encoded:
// negative, or wider than the format's 536-bit ceiling.
var ErrCompactRange = errors.NewKind("value %s is outside the compact encodable range")

// ReadCompact reads one compact-encoded unsigned integer. The two low bits
// of the first byte select the mode: 0 packs the value in the remaining six
// bits, 1 and 2 extend to two and four little-endian bytes shifted right by
// two, and 3 prefixes a little-endian big integer whose byte count is the
// remaining six bits plus four. Non-canonical encodings are accepted;
// historical payloads contain them.
func ReadCompact(r *Reader) (*big.Int, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch b0 & 0x03 {
	case 0:
		return new(big.Int).SetUint64(uint64(b0 >> 2)), nil
	case 1:
		b1, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		v := (uint64(b0) | uint64(b1)<<8) >> 2
		return new(big.Int).SetUint64(v), nil
	case 2:
		rest, err := r.ReadBytes(3)
		if err != nil {
			return nil, err
		}
		v := (uint64(b0) | uint64(rest[0])<<8 | uint64(rest[1])<<16 | uint64(rest[2])<<24) >> 2
		return new(big.Int).SetUint64(v), nil
	default:
		n := int(b0>>2) + 4
		le, err := r.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetBytes(reverse(le)), nil
	}
}

// AppendCompactUint64 appends the compact encoding of v, choosing the
// smallest mode that fits.
func AppendCompactUint64(dst []byte, v uint64) []byte {
	switch {
	case v < 1<<6:
		return append(dst, byte(v)<<2)
	case v < 1<<14:
		return binary.LittleEndian.AppendUint16(dst, uint16(v)<<2|0x01)
	case v < 1<<30:
		return binary.LittleEndian.AppendUint32(dst, uint32(v)<<2|0x02)
	default:
		le := make([]byte, 8)
		binary.LittleEndian.PutUint64(le, v)
		n := 8
		for n > 4 && le[n-1] == 0 {
			n--
		}
		dst = append(dst, byte(n-4)<<2|0x03)
		return append(dst, le[:n]...)
	}
}

// AppendCompact appends the compact encoding of v.
func AppendCompact(dst []byte, v *big.Int) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, ErrCompactRange.New(v)
	}
	if v.IsUint64() {
		return AppendCompactUint64(dst, v.Uint64()), nil
	}
	be := v.Bytes()
	if len(be) > 67 {
		return nil, ErrCompactRange.New(v)
	}
	dst = append(dst, byte(len(be)-4)<<2|0x03)
	return append(dst, reverse(be)...), nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

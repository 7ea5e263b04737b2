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

	"gopkg.in/src-d/go-errors.v1"
)

// UnexpectedEof is returned when the input ends mid-type.
var UnexpectedEof = errors.NewKind("unexpected end of input: need %d byte(s) at offset %d, %d remaining")

// Reader is an explicit cursor over one payload. Reads never alias the
// buffer; multi-byte integers are little-endian.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current byte offset.
func (r *Reader) Pos() int {
	return r.off
}

// Remaining returns the count of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, UnexpectedEof.New(1, r.off, 0)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadBytes returns the next n bytes, copied out of the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, UnexpectedEof.New(n, r.off, r.Remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, UnexpectedEof.New(2, r.off, r.Remaining())
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, UnexpectedEof.New(4, r.off, r.Remaining())
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, UnexpectedEof.New(8, r.off, r.Remaining())
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

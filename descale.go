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

// Package descale decodes SCALE-encoded binary payloads into self-describing
// value trees, for chains whose type schemas change across runtime spec
// versions. Legacy-era payloads resolve type names through override tables;
// modern-era payloads resolve numeric ids through a portable type graph. The
// decoding engine under both is the same.
package descale

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/descale/portable"
	"github.com/dolthub/descale/registry"
	"github.com/dolthub/descale/scale"
	"github.com/dolthub/descale/value"
)

// ErrWrongEra is returned when a type reference's addressing mode does not
// match the decoder's era.
var ErrWrongEra = errors.NewKind("type reference %s is not addressable by this decoder")

// TypeRef addresses a type in either era: by module-scoped symbol in the
// legacy era, by graph id in the modern one.
type TypeRef struct {
	module string
	symbol string
	id     uint32
	byID   bool
}

// SymbolRef addresses a legacy-era type by module and symbol.
func SymbolRef(module, symbol string) TypeRef {
	return TypeRef{module: module, symbol: symbol}
}

// IDRef addresses a modern-era type by its portable graph id.
func IDRef(id uint32) TypeRef {
	return TypeRef{id: id, byID: true}
}

func (r TypeRef) String() string {
	if r.byID {
		return fmt.Sprintf("#%d", r.id)
	}
	return r.module + "::" + r.symbol
}

// Decoder decodes payloads for one chain at one point in its history.
type Decoder interface {
	// DecodeValue decodes one payload against the referenced type. The int
	// is the count of trailing bytes left undecoded, which is advisory.
	DecodeValue(ctx context.Context, ref TypeRef, data []byte) (value.Value, int, error)
}

type options struct {
	logger *zap.Logger
}

type Option func(*options)

// WithLogger injects a logger into the decoder stack. Default is a Nop.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type legacyDecoder struct {
	detective registry.TypeDetective
	chain     string
	spec      uint64
	engine    *scale.Decoder
	logger    *zap.Logger
}

// NewLegacy returns a decoder for one chain at one spec version, resolving
// type names through the detective.
func NewLegacy(detective registry.TypeDetective, chain string, spec uint64, opts ...Option) Decoder {
	o := newOptions(opts)
	return &legacyDecoder{
		detective: detective,
		chain:     chain,
		spec:      spec,
		engine:    scale.NewDecoder(scale.WithLogger(o.logger)),
		logger:    o.logger,
	}
}

func (d *legacyDecoder) DecodeValue(ctx context.Context, ref TypeRef, data []byte) (value.Value, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if ref.byID {
		return nil, 0, ErrWrongEra.New(ref)
	}
	t, err := d.detective.GetType(d.chain, d.spec, ref.module, ref.symbol, nil)
	if err != nil {
		return nil, 0, err
	}
	v, trailing, err := d.engine.DecodeBytes(data, t)
	if err == nil {
		return v, trailing, nil
	}
	// Some symbols declare a fallback shape for payloads their primary
	// definition predates. Retry once from the start of the payload.
	fb, ok := d.detective.TryFallback(ref.module, ref.symbol)
	if !ok {
		return nil, 0, err
	}
	d.logger.Debug("retrying decode with fallback type",
		zap.Stringer("ref", ref), zap.Stringer("fallback", fb), zap.Error(err))
	return d.engine.DecodeBytes(data, fb)
}

type currentDecoder struct {
	graph  *portable.Graph
	engine *scale.Decoder
}

// NewCurrent returns a decoder over a portable type graph.
func NewCurrent(graph *portable.Graph, opts ...Option) Decoder {
	o := newOptions(opts)
	return &currentDecoder{
		graph:  graph,
		engine: scale.NewDecoder(scale.WithLogger(o.logger)),
	}
}

func (d *currentDecoder) DecodeValue(ctx context.Context, ref TypeRef, data []byte) (value.Value, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if !ref.byID {
		return nil, 0, ErrWrongEra.New(ref)
	}
	t, err := d.graph.ResolveType(ref.id)
	if err != nil {
		return nil, 0, err
	}
	return d.engine.DecodeBytes(data, t)
}

// Result is the outcome of decoding one payload of a batch.
type Result struct {
	Value    value.Value
	Trailing int
	Err      error
}

// DecodeBatch decodes independent payloads of one type concurrently. A
// payload's failure lands in its Result and never aborts the others.
func DecodeBatch(ctx context.Context, dec Decoder, ref TypeRef, payloads [][]byte) []Result {
	results := make([]Result, len(payloads))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, data := range payloads {
		i, data := i, data
		eg.Go(func() error {
			v, trailing, err := dec.DecodeValue(ctx, ref, data)
			results[i] = Result{Value: v, Trailing: trailing, Err: err}
			return nil
		})
	}
	// Workers never return errors; failures live in the results.
	_ = eg.Wait()
	return results
}

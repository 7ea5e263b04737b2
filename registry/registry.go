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

// Package registry resolves legacy-era type names to fully resolved type
// trees, layering chain and module override tables over the global module
// definitions. Resolution is pure over the immutable tables; an lru memo is
// the only shared mutable state.
package registry

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/descale/overrides"
	"github.com/dolthub/descale/typeexpr"
	"github.com/dolthub/descale/types"
)

var (
	// UnknownType is returned when every resolution step comes up empty.
	UnknownType = errors.NewKind("unknown type %s in module %s (chain %s, spec %d)")

	// CyclicTypeDefinition is returned when a definition refers back to a
	// symbol already being resolved in the same call.
	CyclicTypeDefinition = errors.NewKind("cyclic type definition resolving %s")

	// GenericArityMismatch is returned when a generic definition's declared
	// parameter count disagrees with the supplied arguments.
	GenericArityMismatch = errors.NewKind("generic %s expects %d type argument(s), got %d")
)

// TypeDetective resolves symbolic type references for one era of one chain
// family. It is the registry's consumer-facing capability; the decoding
// facade depends on it, never on the tables behind it.
type TypeDetective interface {
	// GetType resolves (module, symbol) under (chain, spec) to a tree free of
	// Generic and Named nodes. args bind the symbol's type parameters.
	GetType(chain string, spec uint64, module, symbol string, args []*types.Type) (*types.Type, error)

	// TryFallback returns the declared fallback type for a symbol whose
	// primary definition failed to decode a payload, if one exists.
	TryFallback(module, symbol string) (*types.Type, bool)
}

const defaultCacheSize = 4096

// Registry implements TypeDetective over override tables and module
// definitions. Safe for concurrent use.
type Registry struct {
	overrides *overrides.Overrides
	defs      *overrides.Modules
	renames   overrides.Renames
	memo      *lru.Cache[string, *types.Type]
	logger    *zap.Logger
}

var _ TypeDetective = (*Registry)(nil)

type Option func(*Registry)

// WithLogger injects a logger for resolution tracing. Default is a Nop.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithCacheSize sizes the resolution memo.
func WithCacheSize(n int) Option {
	return func(r *Registry) {
		c, err := lru.New[string, *types.Type](n)
		if err == nil {
			r.memo = c
		}
	}
}

func NewRegistry(ov *overrides.Overrides, defs *overrides.Modules, renames overrides.Renames, opts ...Option) *Registry {
	memo, _ := lru.New[string, *types.Type](defaultCacheSize)
	r := &Registry{
		overrides: ov,
		defs:      defs,
		renames:   renames,
		memo:      memo,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type resolveCtx struct {
	chain  string
	spec   uint64
	module string

	// inProgress guards against definitions that refer back to a symbol
	// currently being resolved in this call.
	inProgress map[string]bool
}

func (r *Registry) GetType(chain string, spec uint64, module, symbol string, args []*types.Type) (*types.Type, error) {
	symbol = SanitizeSymbol(symbol)
	module = strings.ToLower(module)

	key := memoKey(chain, spec, module, symbol, args)
	if t, ok := r.memo.Get(key); ok {
		return t, nil
	}

	c := &resolveCtx{
		chain:      chain,
		spec:       spec,
		module:     module,
		inProgress: make(map[string]bool),
	}
	tree, err := typeexpr.ParseType(symbol)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		if named, ok := tree.Desc.(types.NamedDesc); ok {
			tree = types.MakeGenericType(named.Symbol, args...)
		}
	}
	resolved, err := r.resolveTree(c, tree)
	if err != nil {
		r.logger.Debug("type resolution failed",
			zap.String("chain", chain), zap.Uint64("spec", spec),
			zap.String("module", module), zap.String("symbol", symbol),
			zap.Error(err))
		return nil, err
	}
	r.logger.Debug("resolved type",
		zap.String("chain", chain), zap.Uint64("spec", spec),
		zap.String("module", module), zap.String("symbol", symbol),
		zap.Stringer("type", resolved))

	// Concurrent resolutions of the same key converge structurally; last
	// insert wins and either value is correct.
	r.memo.Add(key, resolved)
	return resolved, nil
}

func (r *Registry) TryFallback(module, symbol string) (*types.Type, bool) {
	module = strings.ToLower(module)
	e, ok := r.defs.Fallback(module, SanitizeSymbol(symbol))
	if !ok {
		return nil, false
	}
	tree, err := e.ResolveType()
	if err != nil {
		return nil, false
	}
	c := &resolveCtx{module: module, inProgress: make(map[string]bool)}
	resolved, err := r.resolveTree(c, tree)
	if err != nil {
		return nil, false
	}
	return resolved, true
}

// resolveTree rewrites a parsed tree into a resolved one, chasing Named
// references through the tables and binding Generic applications.
func (r *Registry) resolveTree(c *resolveCtx, t *types.Type) (*types.Type, error) {
	switch desc := t.Desc.(type) {
	case types.NamedDesc:
		return r.resolveSymbol(c, desc.Symbol, nil)
	case types.GenericDesc:
		params := make([]*types.Type, len(desc.Params))
		for i, p := range desc.Params {
			rp, err := r.resolveTree(c, p)
			if err != nil {
				return nil, err
			}
			params[i] = rp
		}
		return r.resolveSymbol(c, desc.Name, params)
	case types.CompactDesc:
		inner, err := r.resolveTree(c, desc.Inner)
		if err != nil {
			return nil, err
		}
		return types.MakeCompactType(inner), nil
	case types.SequenceDesc:
		elem, err := r.resolveTree(c, desc.Elem)
		if err != nil {
			return nil, err
		}
		return types.MakeSequenceType(elem), nil
	case types.ArrayDesc:
		elem, err := r.resolveTree(c, desc.Elem)
		if err != nil {
			return nil, err
		}
		return types.MakeArrayType(elem, desc.Size), nil
	case types.TupleDesc:
		elems := make([]*types.Type, len(desc.Elems))
		for i, e := range desc.Elems {
			re, err := r.resolveTree(c, e)
			if err != nil {
				return nil, err
			}
			elems[i] = re
		}
		return types.MakeTupleType(elems...), nil
	case types.StructDesc:
		fields := make([]types.StructField, len(desc.Fields))
		for i, f := range desc.Fields {
			ft, err := r.resolveTree(c, f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.StructField{Name: f.Name, Type: ft}
		}
		return types.MakeStructType(fields...), nil
	case types.EnumDesc:
		variants := make([]types.EnumVariant, len(desc.Variants))
		for i, v := range desc.Variants {
			variants[i] = v
			if v.Type != nil {
				vt, err := r.resolveTree(c, v.Type)
				if err != nil {
					return nil, err
				}
				variants[i].Type = vt
			}
		}
		return types.MakeEnumType(variants...), nil
	default:
		return t, nil
	}
}

// resolveSymbol walks the resolution pipeline for one symbol: rename,
// module-scoped override, chain/spec override, the module's own definitions,
// the runtime module, any module. Parser-level builtins never reach here.
func (r *Registry) resolveSymbol(c *resolveCtx, symbol string, args []*types.Type) (*types.Type, error) {
	symbol = r.renames.Apply(c.module, symbol)

	key := c.module + "::" + symbol
	if c.inProgress[key] {
		return nil, CyclicTypeDefinition.New(key)
	}
	c.inProgress[key] = true
	defer delete(c.inProgress, key)

	e, ok := r.lookup(c, symbol)
	if !ok {
		return nil, UnknownType.New(symbol, c.module, c.chain, c.spec)
	}
	tree, err := e.ResolveType()
	if err != nil {
		return nil, err
	}
	if len(e.Params) > 0 {
		if len(args) != len(e.Params) {
			return nil, GenericArityMismatch.New(symbol, len(e.Params), len(args))
		}
		bindings := make(map[string]*types.Type, len(e.Params))
		for i, p := range e.Params {
			bindings[p] = args[i]
		}
		tree = substitute(tree, bindings)
	}
	return r.resolveTree(c, tree)
}

func (r *Registry) lookup(c *resolveCtx, symbol string) (overrides.Entry, bool) {
	if e, ok := r.overrides.ModuleType(c.module, symbol); ok {
		return e, true
	}
	if e, ok := r.overrides.ChainType(c.chain, c.spec, symbol); ok {
		return e, true
	}
	if e, ok := r.defs.Type(c.module, symbol); ok {
		return e, true
	}
	if e, ok := r.defs.Type("runtime", symbol); ok {
		return e, true
	}
	return r.defs.Any(symbol)
}

// substitute rebuilds a tree with bound parameter references replaced by
// their arguments. Arguments are already resolved; they pass through the
// pipeline untouched afterwards.
func substitute(t *types.Type, bindings map[string]*types.Type) *types.Type {
	switch desc := t.Desc.(type) {
	case types.NamedDesc:
		if bound, ok := bindings[desc.Symbol]; ok {
			return bound
		}
		return t
	case types.GenericDesc:
		params := make([]*types.Type, len(desc.Params))
		for i, p := range desc.Params {
			params[i] = substitute(p, bindings)
		}
		return types.MakeGenericType(desc.Name, params...)
	case types.CompactDesc:
		return types.MakeCompactType(substitute(desc.Inner, bindings))
	case types.SequenceDesc:
		return types.MakeSequenceType(substitute(desc.Elem, bindings))
	case types.ArrayDesc:
		return types.MakeArrayType(substitute(desc.Elem, bindings), desc.Size)
	case types.TupleDesc:
		elems := make([]*types.Type, len(desc.Elems))
		for i, e := range desc.Elems {
			elems[i] = substitute(e, bindings)
		}
		return types.MakeTupleType(elems...)
	case types.StructDesc:
		fields := make([]types.StructField, len(desc.Fields))
		for i, f := range desc.Fields {
			fields[i] = types.StructField{Name: f.Name, Type: substitute(f.Type, bindings)}
		}
		return types.MakeStructType(fields...)
	case types.EnumDesc:
		variants := make([]types.EnumVariant, len(desc.Variants))
		for i, v := range desc.Variants {
			variants[i] = v
			if v.Type != nil {
				variants[i].Type = substitute(v.Type, bindings)
			}
		}
		return types.MakeEnumType(variants...)
	default:
		return t
	}
}

// SanitizeSymbol strips qualified-path noise off symbols as they appear in
// historical metadata, e.g. "<T as Trait>::Balance" becomes "Balance".
func SanitizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if strings.HasPrefix(symbol, "<") {
		if i := strings.Index(symbol, ">::"); i >= 0 {
			symbol = symbol[i+3:]
		}
	}
	return symbol
}

func memoKey(chain string, spec uint64, module, symbol string, args []*types.Type) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%d|%s|%s", chain, spec, module, symbol)
	for _, a := range args {
		sb.WriteByte('|')
		sb.WriteString(a.String())
	}
	return sb.String()
}

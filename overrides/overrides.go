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

// Package overrides holds the per-chain, version-ranged type override tables
// and the global module definitions used to resolve legacy-era type names.
// The data arrives already parsed from its documents; this package only
// layers, merges and looks it up. All structures are immutable after
// construction and safe for concurrent readers.
package overrides

import (
	"math"
	"sort"
	"strings"

	"github.com/dolthub/descale/types"
	"github.com/dolthub/descale/typeexpr"
)

// Entry is one override: either a raw type expression string, parsed lazily
// at first use, or a pre-built type tree. A malformed raw expression is not
// detected at load time.
//
// Params declares the entry's type parameters for generic definitions; the
// tree refers to them as plain named references and the registry substitutes
// arguments positionally.
type Entry struct {
	Raw    string
	Type   *types.Type
	Params []string
}

// ResolveType returns the entry's type tree, parsing Raw when no pre-built
// tree was supplied. Callers memoize; this does not.
func (e Entry) ResolveType() (*types.Type, error) {
	if e.Type != nil {
		return e.Type, nil
	}
	return typeexpr.ParseType(e.Raw)
}

// TypeRange carries the overrides active for spec versions in [Min, Max].
// A nil Max leaves the range unbounded above.
type TypeRange struct {
	Min   uint64
	Max   *uint64
	Types map[string]Entry
}

// Contains reports whether spec falls inside the range.
func (r TypeRange) Contains(spec uint64) bool {
	if spec < r.Min {
		return false
	}
	return r.Max == nil || spec <= *r.Max
}

func (r TypeRange) span() uint64 {
	if r.Max == nil {
		return math.MaxUint64
	}
	return *r.Max - r.Min
}

// ModuleTypes is the definition set of one module: its symbol table plus
// per-symbol fallback types to retry with when the primary definition fails
// to decode a payload.
type ModuleTypes struct {
	Types     map[string]Entry
	Fallbacks map[string]Entry
}

// Merge returns a ModuleTypes where other's entries overwrite m's.
func (m ModuleTypes) Merge(other ModuleTypes) ModuleTypes {
	out := ModuleTypes{
		Types:     make(map[string]Entry, len(m.Types)+len(other.Types)),
		Fallbacks: make(map[string]Entry, len(m.Fallbacks)+len(other.Fallbacks)),
	}
	for k, v := range m.Types {
		out.Types[k] = v
	}
	for k, v := range other.Types {
		out.Types[k] = v
	}
	for k, v := range m.Fallbacks {
		out.Fallbacks[k] = v
	}
	for k, v := range other.Fallbacks {
		out.Fallbacks[k] = v
	}
	return out
}

// Overrides layers chain-scoped, version-ranged overrides over module-scoped
// ones. Chain and module names are case-normalized on construction and on
// lookup.
type Overrides struct {
	chains  map[string][]TypeRange
	modules map[string]ModuleTypes
}

func NewOverrides(chains map[string][]TypeRange, modules map[string]ModuleTypes) *Overrides {
	o := &Overrides{
		chains:  make(map[string][]TypeRange, len(chains)),
		modules: make(map[string]ModuleTypes, len(modules)),
	}
	for name, ranges := range chains {
		o.chains[strings.ToLower(name)] = ranges
	}
	for name, mt := range modules {
		o.modules[strings.ToLower(name)] = mt
	}
	return o
}

// ChainTypes merges every range of the chain that contains spec. Broader
// ranges lay down first so narrower ones overwrite them; ranges of equal
// span apply in declaration order, later declared winning. The merge is
// deterministic for any declaration order of the ranges.
func (o *Overrides) ChainTypes(chain string, spec uint64) map[string]Entry {
	ranges := o.chains[strings.ToLower(chain)]
	matched := make([]TypeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Contains(spec) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].span() > matched[j].span()
	})
	merged := make(map[string]Entry)
	for _, r := range matched {
		for sym, e := range r.Types {
			merged[sym] = e
		}
	}
	return merged
}

// ChainType resolves a single symbol through ChainTypes.
func (o *Overrides) ChainType(chain string, spec uint64, symbol string) (Entry, bool) {
	e, ok := o.ChainTypes(chain, spec)[symbol]
	return e, ok
}

// ModuleType looks a symbol up in the module-scoped overrides.
func (o *Overrides) ModuleType(module, symbol string) (Entry, bool) {
	mt, ok := o.modules[strings.ToLower(module)]
	if !ok {
		return Entry{}, false
	}
	e, ok := mt.Types[symbol]
	return e, ok
}

// Modules is the global definitions table, module name to its symbols. It
// backs the last resolution steps: the queried module, the runtime module,
// then any module at all.
type Modules struct {
	modules map[string]ModuleTypes
	names   []string
}

func NewModules(defs map[string]ModuleTypes) *Modules {
	m := &Modules{
		modules: make(map[string]ModuleTypes, len(defs)),
		names:   make([]string, 0, len(defs)),
	}
	for name, mt := range defs {
		lower := strings.ToLower(name)
		m.modules[lower] = mt
		m.names = append(m.names, lower)
	}
	sort.Strings(m.names)
	return m
}

// Type looks a symbol up in one module's definitions.
func (m *Modules) Type(module, symbol string) (Entry, bool) {
	mt, ok := m.modules[strings.ToLower(module)]
	if !ok {
		return Entry{}, false
	}
	e, ok := mt.Types[symbol]
	return e, ok
}

// Fallback returns the declared fallback type for a symbol, if any.
func (m *Modules) Fallback(module, symbol string) (Entry, bool) {
	mt, ok := m.modules[strings.ToLower(module)]
	if !ok {
		return Entry{}, false
	}
	e, ok := mt.Fallbacks[symbol]
	return e, ok
}

// Any scans every module for the symbol. Modules are visited in sorted name
// order so the answer does not depend on map iteration.
func (m *Modules) Any(symbol string) (Entry, bool) {
	for _, name := range m.names {
		if e, ok := m.modules[name].Types[symbol]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Renames redirects lookups of old symbol names, keyed by module then old
// name. Only the lookup key changes; the definition lives under the new name.
type Renames map[string]map[string]string

// Apply returns the symbol to look up in place of the given one.
func (r Renames) Apply(module, symbol string) string {
	if byMod, ok := r[strings.ToLower(module)]; ok {
		if renamed, ok := byMod[symbol]; ok {
			return renamed
		}
	}
	return symbol
}

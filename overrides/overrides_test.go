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

package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/descale/types"
	"github.com/dolthub/descale/typeexpr"
)

func u64p(v uint64) *uint64 {
	return &v
}

func TestRangeContains(t *testing.T) {
	r := TypeRange{Min: 1020, Max: u64p(1031)}
	assert.False(t, r.Contains(1019))
	assert.True(t, r.Contains(1020))
	assert.True(t, r.Contains(1031))
	assert.False(t, r.Contains(1032))

	unbounded := TypeRange{Min: 2000}
	assert.True(t, unbounded.Contains(2000))
	assert.True(t, unbounded.Contains(1<<40))
	assert.False(t, unbounded.Contains(1999))
}

func TestChainTypesNarrowerRangeWins(t *testing.T) {
	o := NewOverrides(map[string][]TypeRange{
		"Kusama": {
			{Min: 0, Types: map[string]Entry{
				"Address": {Raw: "AccountId"},
				"Weight":  {Raw: "u32"},
			}},
			{Min: 1050, Max: u64p(1056), Types: map[string]Entry{
				"Address": {Raw: "MultiAddress"},
			}},
		},
	}, nil)

	merged := o.ChainTypes("kusama", 1053)
	assert.Equal(t, "MultiAddress", merged["Address"].Raw)
	assert.Equal(t, "u32", merged["Weight"].Raw)

	before := o.ChainTypes("kusama", 1049)
	assert.Equal(t, "AccountId", before["Address"].Raw)
}

func TestChainTypesEqualSpanLaterDeclaredWins(t *testing.T) {
	// Two ranges with the same span both contain the spec; declaration
	// order breaks the tie, not map ordering.
	o := NewOverrides(map[string][]TypeRange{
		"polkadot": {
			{Min: 10, Max: u64p(20), Types: map[string]Entry{"Balance": {Raw: "u64"}}},
			{Min: 15, Max: u64p(25), Types: map[string]Entry{"Balance": {Raw: "u128"}}},
		},
	}, nil)

	for i := 0; i < 64; i++ {
		merged := o.ChainTypes("Polkadot", 18)
		require.Equal(t, "u128", merged["Balance"].Raw)
	}
}

func TestChainTypesNoMatch(t *testing.T) {
	o := NewOverrides(map[string][]TypeRange{
		"kusama": {{Min: 100, Max: u64p(200), Types: map[string]Entry{"X": {Raw: "u8"}}}},
	}, nil)
	assert.Empty(t, o.ChainTypes("kusama", 99))
	assert.Empty(t, o.ChainTypes("westend", 150))
}

func TestModuleScopedOverride(t *testing.T) {
	o := NewOverrides(nil, map[string]ModuleTypes{
		"Balances": {Types: map[string]Entry{"VestingSchedule": {Raw: "(u64, u64, u64)"}}},
	})
	e, ok := o.ModuleType("balances", "VestingSchedule")
	require.True(t, ok)
	typ, err := e.ResolveType()
	require.NoError(t, err)
	assert.Equal(t, types.TupleKind, typ.Kind())

	_, ok = o.ModuleType("balances", "Missing")
	assert.False(t, ok)
}

func TestEntryLazyParse(t *testing.T) {
	bad := Entry{Raw: "Vec<"}
	_, err := bad.ResolveType()
	assert.True(t, typeexpr.ParseError.Is(err))

	pre := Entry{Type: types.MakeStrType()}
	typ, err := pre.ResolveType()
	require.NoError(t, err)
	assert.Equal(t, types.StrKind, typ.Kind())
}

func TestModulesLookupOrder(t *testing.T) {
	m := NewModules(map[string]ModuleTypes{
		"treasury": {Types: map[string]Entry{"Proposal": {Raw: "TreasuryProposal"}}},
		"runtime":  {Types: map[string]Entry{"Header": {Raw: "Vec<u8>"}}},
		"staking":  {Types: map[string]Entry{"Exposure": {Raw: "u32"}}},
		"session":  {Types: map[string]Entry{"Exposure": {Raw: "u64"}}},
	})

	e, ok := m.Type("Treasury", "Proposal")
	require.True(t, ok)
	assert.Equal(t, "TreasuryProposal", e.Raw)

	_, ok = m.Type("treasury", "Exposure")
	assert.False(t, ok)

	// Any visits modules in sorted name order: session before staking.
	e, ok = m.Any("Exposure")
	require.True(t, ok)
	assert.Equal(t, "u64", e.Raw)
}

func TestModulesFallback(t *testing.T) {
	m := NewModules(map[string]ModuleTypes{
		"balances": {
			Types:     map[string]Entry{"BalanceLock": {Raw: "BalanceLockTo212"}},
			Fallbacks: map[string]Entry{"BalanceLock": {Raw: "BalanceLock"}},
		},
	})
	e, ok := m.Fallback("balances", "BalanceLock")
	require.True(t, ok)
	assert.Equal(t, "BalanceLock", e.Raw)

	_, ok = m.Fallback("balances", "Other")
	assert.False(t, ok)
}

func TestRenames(t *testing.T) {
	r := Renames{"treasury": {"Proposal": "TreasuryProposal"}}
	assert.Equal(t, "TreasuryProposal", r.Apply("Treasury", "Proposal"))
	assert.Equal(t, "Proposal", r.Apply("democracy", "Proposal"))
	assert.Equal(t, "Bounty", r.Apply("treasury", "Bounty"))
}

func TestModuleTypesMerge(t *testing.T) {
	base := ModuleTypes{Types: map[string]Entry{"A": {Raw: "u8"}, "B": {Raw: "u16"}}}
	over := ModuleTypes{Types: map[string]Entry{"B": {Raw: "u32"}, "C": {Raw: "u64"}}}
	merged := base.Merge(over)
	assert.Equal(t, "u8", merged.Types["A"].Raw)
	assert.Equal(t, "u32", merged.Types["B"].Raw)
	assert.Equal(t, "u64", merged.Types["C"].Raw)
}

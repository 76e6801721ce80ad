// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package category

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/larder/pkg/header"
	"github.com/mchmarny/larder/pkg/trait"
)

func testIndex() *trait.Index {
	return trait.NewIndex(trait.Table{
		"Carrot":   {"Vegetable"},
		"Corn":     {"Vegetable"},
		"Apple":    {"Fruit", "Sweet"},
		"Banana":   {"Fruit", "Sweet"},
		"Rose":     {"Flower"},
		"Foxglove": {"Flower", "Toxic"},
		"Mint":     {"Herb"},
		"Oak":      {"Woody"},
	})
}

func testTables() Tables {
	return Synthesize(map[string][]string{
		"Bread":  {"Bread Loaf", "Bun"},
		"Meat":   {"Steak", "Bacon"},
		"Leafy":  {"Lettuce"},
		"Fruit":  {"Dragonfruit"},
		"Pastry": {"Croissant"},
	})
}

func testResolver() *Resolver {
	return NewResolver(testIndex(), testTables(), DefaultRules())
}

func TestResolve(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"fixed", "Bread", []string{"Bread Loaf", "Bun"}},
		{"fixed alias", "Cone", []string{"Bread Loaf", "Bun"}},
		{"trait", "Vegetable", []string{"Carrot", "Corn"}},
		{"trait alias", "Cream", []string{"Apple", "Banana"}},
		{"trait plus fixed", "Fruit", []string{"Apple", "Banana", "Dragonfruit"}},
		{"stick", "Stick", []string{"Oak"}},
		{"herbal base", "HerbalBase", []string{"Mint", "Rose"}},
		{"filling", "Filling", []string{"Bacon", "Carrot", "Corn", "Steak"}},
		{"main", "Main", []string{"Bacon", "Carrot", "Corn", "Steak"}},
		{"rice", "Rice", []string{"Bread Loaf", "Bun", "Coconut"}},
		{"wrap", "Wrap", []string{"Lettuce"}},
		{"any", "Any", []string{"Apple", "Banana", "Carrot", "Corn", "Foxglove", "Mint", "Oak", "Rose"}},
		{"unknown", "Nope", []string{}},
		{"empty synthesized", "Vegetables", []string{"Carrot", "Corn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.category))
		})
	}
}

func TestResolveKeepsFixedEntries(t *testing.T) {
	r := testResolver()
	for _, name := range r.Categories() {
		got := r.Resolve(name)
		for _, item := range r.Tables()[name] {
			assert.Contains(t, got, item, "category %s lost fixed item %s", name, item)
		}
	}
}

func TestResolveMainIsMeatPlusVegetable(t *testing.T) {
	r := testResolver()
	want := map[string]struct{}{}
	for _, it := range r.Resolve("Meat") {
		want[it] = struct{}{}
	}
	for _, it := range r.ResolveTrait("Vegetable") {
		want[it] = struct{}{}
	}
	assert.Equal(t, sortedKeys(want), r.Resolve("Main"))
}

func TestResolveIsIdempotent(t *testing.T) {
	r := testResolver()
	first := r.Resolve("Filling")
	first[0] = "mutated"
	assert.Equal(t, []string{"Bacon", "Carrot", "Corn", "Steak"}, r.Resolve("Filling"))
	assert.Equal(t, r.Resolve("Filling"), r.Resolve("Filling"))
}

func TestResolveConcurrent(t *testing.T) {
	r := testResolver()
	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve("HerbalBase")
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, []string{"Mint", "Rose"}, got)
	}
}

func TestResolveHerbalBaseWithoutMint(t *testing.T) {
	idx := trait.NewIndex(trait.Table{"Rose": {"Flower"}})
	r := NewResolver(idx, nil, nil)
	assert.Equal(t, []string{"Rose"}, r.Resolve("HerbalBase"))
}

func TestResolveRefs(t *testing.T) {
	rules := DefaultRules().Merge(Rules{
		"Topping": Union(Ref("Sweet"), Items("Sprinkle")),
		"Loop":    Ref("Loop2"),
		"Loop2":   Ref("Loop"),
	})
	tables := Tables{"Loop2": {"Marker"}}
	r := NewResolver(testIndex(), tables, rules)

	assert.Equal(t, []string{"Apple", "Banana", "Sprinkle"}, r.Resolve("Topping"))
	assert.Equal(t, []string{"Marker"}, r.Resolve("Loop"))
	assert.Equal(t, []string{"Marker"}, r.Resolve("Loop2"))
}

func TestResolverCopiesInputs(t *testing.T) {
	tables := Tables{"Bread": {"Bun"}}
	r := NewResolver(testIndex(), tables, nil)
	tables["Bread"][0] = "changed"
	assert.Equal(t, []string{"Bun"}, r.Resolve("Bread"))
}

func TestResolverRule(t *testing.T) {
	r := testResolver()
	rule, ok := r.Rule("Main")
	require.True(t, ok)
	assert.Equal(t, "union(fixed(Meat), trait(Vegetable))", rule.String())

	_, ok = r.Rule("Nope")
	assert.False(t, ok)
}

func TestResolveTraitUnknownIsEmptyList(t *testing.T) {
	got := testResolver().ResolveTrait("Metal")
	require.NotNil(t, got)
	assert.Empty(t, got)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestSynthesize(t *testing.T) {
	got := Synthesize(map[string][]string{
		"Bread": {"Bun", "Coconut"},
		"Leafy": {"Lettuce"},
		"Main":  {"Ignored"},
	})
	assert.Equal(t, []string{"Bun", "Coconut"}, got["Rice"])
	assert.Equal(t, []string{"Bun", "Coconut"}, got["Pasta"])
	assert.Equal(t, []string{"Lettuce"}, got["Wrap"])
	assert.Equal(t, []string{"Bamboo"}, got["Bamboo"])
	assert.Equal(t, []string{"Corn", "Violet Corn"}, got["Batter"])
	assert.Len(t, got["Apple"], 4)
	assert.Empty(t, got["Main"])
	assert.NotNil(t, got["Vegetables"])

	empty := Synthesize(nil)
	assert.Equal(t, []string{"Coconut"}, empty["Rice"])
	assert.NotNil(t, empty["Pasta"])
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"fixed", Fixed("Bread"), false},
		{"fixed without table", Rule{Kind: KindFixed}, true},
		{"trait without name", Rule{Kind: KindTrait}, true},
		{"items empty", Rule{Kind: KindItems}, true},
		{"ref empty", Rule{Kind: KindRef}, true},
		{"union empty", Rule{Kind: KindUnion}, true},
		{"nested bad operand", Union(Fixed("Bread"), Rule{Kind: KindTrait}), true},
		{"difference", Difference(Trait("Flower"), Trait("Toxic")), false},
		{"all", All(), false},
		{"unknown kind", Rule{Kind: "magic"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultRulesValid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())
	for _, name := range []string{"Bread", "Cone", "Base", "Sauce", "Stick", "HerbalBase", "Filling", "Main", "Any"} {
		assert.Contains(t, rules, name)
	}

	cols, rows := rules.TableRows()
	assert.Equal(t, []string{"CATEGORY", "KIND", "FORMULA"}, cols)
	assert.Len(t, rows, len(rules))
}

func TestRulesMerge(t *testing.T) {
	base := Rules{"A": Fixed("A")}
	merged := base.Merge(Rules{"A": Trait("X"), "B": All()})
	assert.Equal(t, KindTrait, merged["A"].Kind)
	assert.Equal(t, KindFixed, base["A"].Kind)
	assert.Equal(t, []string{"A", "B"}, merged.Names())
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	t.Run("override", func(t *testing.T) {
		p := write("override.yaml", `kind: CategoryRules
apiVersion: larder.dev/v1
rules:
  Sauce:
    kind: union
    operands:
      - kind: trait
        trait: Fruit
      - kind: items
        items: [Chili]
`)
		rules, err := LoadRules(context.Background(), p, DefaultRules())
		require.NoError(t, err)
		assert.Equal(t, KindUnion, rules["Sauce"].Kind)
		assert.Contains(t, rules, "Main")

		r := NewResolver(testIndex(), nil, rules)
		assert.Equal(t, []string{"Apple", "Banana", "Chili"}, r.Resolve("Sauce"))
	})

	t.Run("replace", func(t *testing.T) {
		p := write("replace.yaml", `kind: CategoryRules
replace: true
rules:
  Only:
    kind: all
`)
		rules, err := LoadRules(context.Background(), p, DefaultRules())
		require.NoError(t, err)
		assert.Equal(t, []string{"Only"}, rules.Names())
	})

	t.Run("wrong kind", func(t *testing.T) {
		p := write("kind.yaml", "kind: RecipeRegistry\nrules: {}\n")
		_, err := LoadRules(context.Background(), p, DefaultRules())
		assert.Error(t, err)
	})

	t.Run("invalid rule", func(t *testing.T) {
		p := write("invalid.yaml", "kind: CategoryRules\nrules:\n  Bad:\n    kind: fixed\n")
		_, err := LoadRules(context.Background(), p, DefaultRules())
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadRules(context.Background(), filepath.Join(dir, "nope.yaml"), DefaultRules())
		assert.Error(t, err)
	})
}

func TestNewRuleFile(t *testing.T) {
	f := NewRuleFile(DefaultRules(), "v1.2.3")
	assert.Equal(t, header.KindCategoryRules, f.Kind)
	ts, ok := f.Timestamp()
	assert.True(t, ok)
	assert.False(t, ts.IsZero())

	rules, err := f.Apply(nil)
	require.NoError(t, err)
	assert.Len(t, rules, len(DefaultRules()))
}

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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/mchmarny/larder/pkg/catalog"
	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/serializer"
)

// run executes the root command against the testdata script.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &buf
	cmd.ErrWriter = io.Discard
	argv := append([]string{name, "--data-dir", "testdata", "--from-script", "--log-level", "error"}, args...)
	err := cmd.Run(context.Background(), argv)
	return buf.String(), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{"yaml", "yaml", serializer.FormatYAML, false},
		{"json", "json", serializer.FormatJSON, false},
		{"table", "table", serializer.FormatTable, false},
		{"mixed case", "JSON", serializer.FormatJSON, false},
		{"xml", "xml", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{&cli.StringFlag{Name: "format", Value: tt.format}},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestRecipesCmd(t *testing.T) {
	out, err := run(t, "recipes", "--format", "json")
	require.NoError(t, err)

	var list []catalog.Projection
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 5)
	assert.Equal(t, "Sandwich", list[0].Key)

	out, err = run(t, "recipes", "--shop-only", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	for _, p := range list {
		assert.True(t, p.IsObtainable, p.Key)
	}
}

func TestRecipeCmd(t *testing.T) {
	t.Run("by display name", func(t *testing.T) {
		out, err := run(t, "recipe", "--shop-only", "--format", "json", "hot", "dog")
		require.NoError(t, err)

		var p catalog.Projection
		require.NoError(t, json.Unmarshal([]byte(out), &p))
		assert.Equal(t, "HotDog", p.Key)
		assert.Equal(t, int64(1), p.Combinations)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := run(t, "recipe", "Salda")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := run(t, "recipe")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
	})

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "recipe", "Salad")
		require.NoError(t, err)
		assert.Contains(t, out, "SLOT")
		assert.Contains(t, out, "Cherry Tomato")
	})
}

func TestResolveCmd(t *testing.T) {
	out, err := run(t, "resolve", "--format", "json", "main")
	require.NoError(t, err)

	var v catalog.CategoryView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Main", v.Name)
	assert.True(t, v.Known)
	assert.Equal(t, []string{"Bacon", "Carrot", "Corn", "Steak"}, v.Items)
}

func TestStatsAndItemsCmd(t *testing.T) {
	out, err := run(t, "stats", "--format", "json")
	require.NoError(t, err)
	var st catalog.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 5, st.TotalRecipes)
	assert.Equal(t, 1, st.SkippedRegistrations)

	out, err = run(t, "items")
	require.NoError(t, err)
	assert.Contains(t, out, "ITEM")
	assert.Contains(t, out, "Carrot")
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "convert", "--out-dir", dir, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "recipes: 5")
	assert.FileExists(t, filepath.Join(dir, defaults.RecipesFile))
	assert.FileExists(t, filepath.Join(dir, defaults.CategoriesFile))
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "validate", "--format", "json")
	require.NoError(t, err)

	var r validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 5, r.Recipes)
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, "Pie", r.Skipped[0].Name)

	_, err = run(t, "validate", "--fail-on-defects", "--format", "table")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestRulesCmd(t *testing.T) {
	out, err := run(t, "rules", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: CategoryRules")
	assert.Contains(t, out, "HerbalBase")

	out, err = run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "FORMULA")
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	out, err := run(t, "stats", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "total_recipes")
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "stats", "--format", "xml")
	assert.Error(t, err)
}

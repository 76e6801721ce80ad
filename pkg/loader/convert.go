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

package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/recipe"
	"github.com/mchmarny/larder/pkg/script"
	"github.com/mchmarny/larder/pkg/serializer"
)

// Conversion reports what Convert wrote.
type Conversion struct {
	Recipes        int                 `json:"recipes" yaml:"recipes"`
	Invalid        []string            `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	Skipped        []string            `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Categories     []string            `json:"categories" yaml:"categories"`
	Diagnostics    []script.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	RecipesPath    string              `json:"recipes_path" yaml:"recipes_path"`
	CategoriesPath string              `json:"categories_path" yaml:"categories_path"`
}

// TableRows implements serializer.TableRower.
func (c *Conversion) TableRows() ([]string, [][]string) {
	rows := [][]string{
		{"recipes", fmt.Sprint(c.Recipes)},
		{"invalid", fmt.Sprint(len(c.Invalid))},
		{"skipped", fmt.Sprint(len(c.Skipped))},
		{"categories", fmt.Sprint(len(c.Categories))},
		{"diagnostics", fmt.Sprint(len(c.Diagnostics))},
		{"recipes file", c.RecipesPath},
		{"categories file", c.CategoriesPath},
	}
	return []string{"FIELD", "VALUE"}, rows
}

// Convert parses the recipe script in opts.DataDir and writes the recipe
// registry and the fixed category tables into outDir (the data directory
// when empty). The script and the trait table must exist even when the
// load is not strict.
func Convert(ctx context.Context, opts Options, outDir string) (*Conversion, error) {
	opts.FromScript = true

	d, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	for _, kind := range []Source{SourceScript, SourceTraits} {
		if d.IsMissing(kind) {
			missing := &MissingSourceFileError{Path: opts.path(fileFor(kind)), Kind: kind}
			return nil, errors.WrapWithContext(errors.ErrCodeMissingSource, "conversion input is missing", missing,
				map[string]any{"path": missing.Path, "kind": string(kind)})
		}
	}

	if outDir == "" {
		outDir = opts.path("")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create output directory", err)
	}

	res := &Conversion{
		Recipes:        d.Registry.Len(),
		Invalid:        d.Registry.Invalid(),
		Categories:     []string{},
		Diagnostics:    d.Diagnostics,
		RecipesPath:    filepath.Join(outDir, defaults.RecipesFile),
		CategoriesPath: filepath.Join(outDir, defaults.CategoriesFile),
	}
	for _, sk := range d.Registry.Skipped {
		res.Skipped = append(res.Skipped, sk.Name)
	}
	sort.Strings(res.Skipped)
	for name := range d.Fixed {
		res.Categories = append(res.Categories, name)
	}
	sort.Strings(res.Categories)

	doc := recipe.NewDocument(d.Registry, opts.Version, d.Source)
	if err := writeFile(res.RecipesPath, doc); err != nil {
		return nil, err
	}
	if err := writeFile(res.CategoriesPath, d.Fixed); err != nil {
		return nil, err
	}

	slog.Info("recipe script converted",
		"recipes", res.Recipes,
		"invalid", len(res.Invalid),
		"skipped", len(res.Skipped),
		"categories", len(res.Categories),
		"output", outDir,
	)
	return res, nil
}

func fileFor(kind Source) string {
	switch kind {
	case SourceTraits:
		return defaults.TraitsFile
	case SourceShop:
		return defaults.ShopFile
	case SourceScript:
		return defaults.ScriptFile
	case SourceRecipes:
		return defaults.RecipesFile
	default:
		return defaults.CategoriesFile
	}
}

func writeFile(path string, v any) error {
	if err := serializer.WriteFile(path, v); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write converted data", err,
			map[string]any{"path": path})
	}
	return nil
}

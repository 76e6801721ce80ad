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
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/larder/pkg/catalog"
	"github.com/mchmarny/larder/pkg/category"
	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/header"
	"github.com/mchmarny/larder/pkg/recipe"
	"github.com/mchmarny/larder/pkg/script"
	"github.com/mchmarny/larder/pkg/serializer"
	"github.com/mchmarny/larder/pkg/trait"
	"github.com/mchmarny/larder/pkg/version"
)

const (
	modeScript    = "script"
	modeDocuments = "documents"
)

// Options controls where inputs are read from and how absent inputs are
// treated.
type Options struct {
	// DataDir holds the input files. Defaults to defaults.DataDir.
	DataDir string
	// Strict makes a missing input fatal instead of degrading it to empty data.
	Strict bool
	// SyntaxCheck compiles the script before parsing it. Only used with FromScript.
	SyntaxCheck bool
	// FromScript parses the recipe script instead of reading the converted
	// documents.
	FromScript bool
	// RulesFile overrides the category rule file. When empty, the data
	// directory's category_rules.yaml is used if it exists.
	RulesFile string
	// DisplayNamesFile overrides the display-name file. When empty, the data
	// directory's display_names.yaml is used if it exists.
	DisplayNamesFile string
	// Dialect overrides the script aliases. Nil means script.DefaultDialect.
	Dialect *script.Dialect
	// Version is the running release. Convert stamps it into the documents
	// it writes, and Load compares it with the release that wrote them.
	Version string
}

func (o Options) path(name string) string {
	dir := o.DataDir
	if dir == "" {
		dir = defaults.DataDir
	}
	return filepath.Join(dir, name)
}

// optional returns the path of an optional file and whether it was named
// explicitly.
func (o Options) optional(explicit, name string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	return o.path(name), false
}

func (o Options) dialect() script.Dialect {
	if o.Dialect != nil {
		return *o.Dialect
	}
	return script.DefaultDialect()
}

// Data is everything needed to build a catalog. It is read-only once Load
// returns.
type Data struct {
	Traits       trait.Table
	Index        *trait.Index
	ShopSeeds    []string
	Fixed        map[string][]string
	Tables       category.Tables
	Rules        category.Rules
	Registry     *recipe.Registry
	DisplayNames catalog.DisplayNames
	Diagnostics  []script.Diagnostic
	Updated      time.Time
	Source       string
	Missing      []Source
}

// Catalog builds the query surface over d.
func (d *Data) Catalog(opts ...catalog.Option) *catalog.Catalog {
	res := category.NewResolver(d.Index, d.Tables, d.Rules)
	base := []catalog.Option{
		catalog.WithShopSeeds(d.ShopSeeds...),
		catalog.WithTraitTable(d.Traits),
		catalog.WithDisplayNames(d.DisplayNames),
		catalog.WithSourcePath(d.Source),
	}
	if !d.Updated.IsZero() {
		base = append(base, catalog.WithLastUpdated(d.Updated))
	}
	return catalog.New(d.Registry, res, append(base, opts...)...)
}

// IsMissing reports whether the given input was absent at load.
func (d *Data) IsMissing(s Source) bool {
	return slices.Contains(d.Missing, s)
}

type shopFile struct {
	ShopSeeds []string `json:"shopseeds" yaml:"shopseeds"`
}

type loader struct {
	opts Options
	mu   sync.Mutex
	data *Data
}

// Load reads the input files concurrently and builds the trait index, the
// recipe registry, and the category tables. A missing input degrades to
// empty data with a warning unless opts.Strict is set. Malformed inputs
// are always fatal.
func Load(ctx context.Context, opts Options) (*Data, error) {
	start := time.Now()
	mode := modeDocuments
	if opts.FromScript {
		mode = modeScript
	}
	defer func() {
		loadDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, defaults.LoadTimeout)
	defer cancel()

	l := &loader{
		opts: opts,
		data: &Data{
			Traits:       trait.Table{},
			ShopSeeds:    []string{},
			Fixed:        map[string][]string{},
			Rules:        category.DefaultRules(),
			Registry:     recipe.NewRegistry(),
			DisplayNames: catalog.DefaultDisplayNames(),
		},
	}

	var (
		src []byte
		doc *recipe.Document
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return l.fetch(gctx, SourceTraits, opts.path(defaults.TraitsFile), func(ctx context.Context, p string) error {
			t, err := serializer.FromFile[trait.Table](ctx, p)
			if err != nil {
				return err
			}
			if *t != nil {
				l.data.Traits = *t
			}
			return nil
		})
	})

	g.Go(func() error {
		return l.fetch(gctx, SourceShop, opts.path(defaults.ShopFile), func(ctx context.Context, p string) error {
			s, err := serializer.FromFile[shopFile](ctx, p)
			if err != nil {
				return err
			}
			if s.ShopSeeds != nil {
				l.data.ShopSeeds = s.ShopSeeds
			}
			return nil
		})
	})

	if opts.FromScript {
		g.Go(func() error {
			return l.fetch(gctx, SourceScript, opts.path(defaults.ScriptFile), func(ctx context.Context, p string) error {
				raw, err := serializer.ReadRaw(ctx, p)
				if err != nil {
					return err
				}
				src = raw
				return nil
			})
		})
	} else {
		g.Go(func() error {
			return l.fetch(gctx, SourceRecipes, opts.path(defaults.RecipesFile), func(ctx context.Context, p string) error {
				raw, err := serializer.ReadRaw(ctx, p)
				if err != nil {
					return err
				}
				d, err := recipe.DecodeDocument(raw)
				if err != nil {
					return fmt.Errorf("%s: %w", p, err)
				}
				doc = d
				return nil
			})
		})
		g.Go(func() error {
			return l.fetch(gctx, SourceCategories, opts.path(defaults.CategoriesFile), func(ctx context.Context, p string) error {
				f, err := serializer.FromFile[map[string][]string](ctx, p)
				if err != nil {
					return err
				}
				if *f != nil {
					l.data.Fixed = *f
				}
				return nil
			})
		})
	}

	g.Go(func() error {
		rules, err := Rules(gctx, opts)
		if err != nil {
			return err
		}
		l.data.Rules = rules
		return nil
	})

	g.Go(func() error {
		names, err := DisplayNames(gctx, opts)
		if err != nil {
			return err
		}
		l.data.DisplayNames = names
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := l.data
	if err := d.Traits.Validate(); err != nil {
		slog.Warn("trait table has invalid entries, skipping them", "error", err)
	}
	d.Index = trait.NewIndex(d.Traits)

	if opts.FromScript {
		if err := l.parse(src); err != nil {
			return nil, err
		}
	} else if doc != nil {
		d.Registry = doc.Registry()
		d.Source = opts.path(defaults.RecipesFile)
		if ts, ok := doc.Timestamp(); ok {
			d.Updated = ts
		}
		checkProducer(doc.Metadata[header.MetadataVersion], opts.Version)
	}
	d.Tables = category.Synthesize(d.Fixed)

	slices.Sort(d.Missing)
	slog.Info("recipe data loaded",
		"mode", mode,
		"recipes", d.Registry.Len(),
		"skipped", len(d.Registry.Skipped),
		"items", d.Index.Len(),
		"shopSeeds", len(d.ShopSeeds),
		"tables", len(d.Tables),
		"rules", len(d.Rules),
		"missing", d.Missing,
		"duration", time.Since(start),
	)
	return d, nil
}

// Rules returns the default category rules with the configured overrides
// applied. A missing default rule file is not an error; a missing explicit
// one is.
func Rules(ctx context.Context, opts Options) (category.Rules, error) {
	p, explicit := opts.optional(opts.RulesFile, defaults.RulesFile)
	rules, err := category.LoadRules(ctx, p, category.DefaultRules())
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("no category rule overrides", "path", p)
			return category.DefaultRules(), nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load category rules", err,
			map[string]any{"path": p})
	}
	return rules, nil
}

// DisplayNames returns the default display names with the configured
// overrides applied, following the same missing-file rule as Rules.
func DisplayNames(ctx context.Context, opts Options) (catalog.DisplayNames, error) {
	p, explicit := opts.optional(opts.DisplayNamesFile, defaults.DisplayNamesFile)
	names, err := catalog.LoadDisplayNames(ctx, p)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("no display name overrides", "path", p)
			return catalog.DefaultDisplayNames(), nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load display names", err,
			map[string]any{"path": p})
	}
	return names, nil
}

// parse turns the script into the registry and the fixed tables it defines.
// A nil src means the script was missing and leaves both empty.
func (l *loader) parse(src []byte) error {
	if src == nil {
		return nil
	}
	d := l.data
	name := l.opts.path(defaults.ScriptFile)

	if l.opts.SyntaxCheck {
		if err := script.CheckSyntax(filepath.Base(name), string(src)); err != nil {
			return errors.WrapWithContext(errors.ErrCodeParse, "script failed syntax check", err,
				map[string]any{"path": name})
		}
	}

	dialect := l.opts.dialect()
	b, err := script.Parse(string(src), d.Index, script.WithDialect(dialect))
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeParse, "failed to parse recipe script", err,
			map[string]any{"path": name})
	}

	d.Registry = recipe.Extract(b)
	d.Fixed = b.Sequences(dialect.CategoryAliases)
	d.Diagnostics = slices.Clone(b.Diagnostics)
	d.Source = name
	return nil
}

// checkProducer warns when the registry was written by a newer release than
// the one reading it.
func checkProducer(produced, running string) {
	if newer, ok := version.Newer(produced, running); ok && newer {
		slog.Warn("recipe registry was written by a newer larder release",
			"registry", produced, "running", running)
	}
}

// fetch runs read against path and applies the missing-file policy when the
// file does not exist.
func (l *loader) fetch(ctx context.Context, kind Source, path string, read func(context.Context, string) error) error {
	err := read(ctx, path)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.WrapWithContext(errors.ErrCodeInternal, fmt.Sprintf("failed to load %s", kind), err,
			map[string]any{"path": path})
	}

	missingSources.WithLabelValues(string(kind)).Inc()
	missing := &MissingSourceFileError{Path: path, Kind: kind}
	if l.opts.Strict {
		return errors.WrapWithContext(errors.ErrCodeMissingSource, "required input is missing", missing,
			map[string]any{"path": path, "kind": string(kind)})
	}

	slog.Warn("input file missing, using empty data", "kind", kind, "path", path)
	l.mu.Lock()
	l.data.Missing = append(l.data.Missing, kind)
	l.mu.Unlock()
	return nil
}

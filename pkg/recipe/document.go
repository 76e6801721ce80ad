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

package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mchmarny/larder/pkg/header"
	"github.com/mchmarny/larder/pkg/script"
)

// Document is the persisted form of a Registry (recipes.json).
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipes map[string]*Record           `json:"recipes" yaml:"recipes"`
	Skipped []script.SkippedRegistration `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewDocument wraps reg with a RecipeRegistry header stamped now.
func NewDocument(reg *Registry, version, source string) *Document {
	opts := []header.Option{header.WithKind(header.KindRecipeRegistry)}
	if version != "" {
		opts = append(opts, header.WithMetadata(header.MetadataVersion, version))
	}
	if source != "" {
		opts = append(opts, header.WithMetadata(header.MetadataSource, source))
	}
	d := &Document{
		Header:  *header.New(opts...),
		Recipes: map[string]*Record{},
	}
	if reg != nil {
		d.Recipes = reg.Recipes
		d.Skipped = slices.Clone(reg.Skipped)
	}
	return d
}

// Registry returns the document contents as a Registry with defaults filled.
func (d *Document) Registry() *Registry {
	reg := NewRegistry()
	for name, rec := range d.Recipes {
		if rec == nil {
			rec = &Record{}
		}
		rec.normalize(name)
		reg.Recipes[name] = rec
	}
	reg.Skipped = slices.Clone(d.Skipped)
	return reg
}

// DecodeDocument parses a registry file. Besides the enveloped Document it
// accepts a bare name-to-record object, which older converters wrote; such a
// document gets a header without a timestamp.
func DecodeDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return NewDocument(nil, "", ""), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe registry: %w", err)
	}

	if _, enveloped := probe["kind"]; enveloped {
		var d Document
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to decode recipe registry: %w", err)
		}
		if d.Kind != header.KindRecipeRegistry {
			return nil, fmt.Errorf("unexpected document kind %q, want %q", d.Kind, header.KindRecipeRegistry)
		}
		if d.Recipes == nil {
			d.Recipes = map[string]*Record{}
		}
		return &d, nil
	}

	recipes := make(map[string]*Record, len(probe))
	for name, raw := range probe {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode recipe %q: %w", name, err)
		}
		recipes[name] = &rec
	}
	return &Document{
		Header:  header.Header{Kind: header.KindRecipeRegistry, APIVersion: header.DefaultAPIVersion},
		Recipes: recipes,
	}, nil
}

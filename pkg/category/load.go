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
	"fmt"

	"github.com/mchmarny/larder/pkg/header"
	"github.com/mchmarny/larder/pkg/serializer"
)

// RuleFile is the on-disk form of a rule table (category_rules.yaml).
type RuleFile struct {
	header.Header `json:",inline" yaml:",inline"`

	// Replace discards the base rules instead of overriding them by name.
	Replace bool  `json:"replace,omitempty" yaml:"replace,omitempty"`
	Rules   Rules `json:"rules" yaml:"rules"`
}

// NewRuleFile wraps rules in a CategoryRules document.
func NewRuleFile(rules Rules, version string) *RuleFile {
	f := &RuleFile{Rules: rules}
	f.Init(header.KindCategoryRules, version)
	return f
}

// Apply returns base with the file's rules applied and validated.
func (f *RuleFile) Apply(base Rules) (Rules, error) {
	if f.Kind != "" && f.Kind != header.KindCategoryRules {
		return nil, fmt.Errorf("unexpected document kind %q, want %q", f.Kind, header.KindCategoryRules)
	}
	out := base.Merge(f.Rules)
	if f.Replace {
		out = f.Rules.Merge(nil)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid category rules: %w", err)
	}
	return out, nil
}

// LoadRules reads a rule file from a local path or URL and applies it to base.
func LoadRules(ctx context.Context, path string, base Rules) (Rules, error) {
	f, err := serializer.FromFile[RuleFile](ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}
	rules, err := f.Apply(base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

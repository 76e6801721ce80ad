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

package catalog

import (
	"context"
	"fmt"
	"maps"

	"github.com/mchmarny/larder/pkg/serializer"
)

// DisplayNames maps registry names to the names shown to users.
type DisplayNames map[string]string

// DefaultDisplayNames returns the built-in display names.
func DefaultDisplayNames() DisplayNames {
	return DisplayNames{
		"CandyApple": "Candy Apple",
		"HotDog":     "Hot Dog",
		"IceCream":   "Ice Cream",
		"SweetTea":   "Sweet Tea",
		"Corndog":    "Corn Dog",
	}
}

// Display returns the display name for a registry name, or the name itself.
func (d DisplayNames) Display(name string) string {
	if v, ok := d[name]; ok && v != "" {
		return v
	}
	return name
}

// Merge returns a copy of d with overrides applied.
func (d DisplayNames) Merge(overrides DisplayNames) DisplayNames {
	out := maps.Clone(d)
	if out == nil {
		out = DisplayNames{}
	}
	maps.Copy(out, overrides)
	return out
}

// LoadDisplayNames reads a flat name-to-display-name file and applies it on
// top of the defaults.
func LoadDisplayNames(ctx context.Context, path string) (DisplayNames, error) {
	overrides, err := serializer.FromFile[DisplayNames](ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load display names: %w", err)
	}
	return DefaultDisplayNames().Merge(*overrides), nil
}

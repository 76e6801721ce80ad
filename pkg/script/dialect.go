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

package script

import "maps"

// Dialect names the aliases and helper functions the parser gives special
// meaning to. The defaults match the shipped recipe data file.
type Dialect struct {
	// TraitsAlias is the alias whose ".Traits.<Name>" members are trait lookups.
	TraitsAlias string `json:"traitsAlias" yaml:"traitsAlias"`
	// HelperAlias is the alias that owns the set helper functions.
	HelperAlias string `json:"helperAlias" yaml:"helperAlias"`
	// MakeTable is the name of the union helper.
	MakeTable string `json:"makeTable" yaml:"makeTable"`
	// SetSubtract is the name of the difference helper.
	SetSubtract string `json:"setSubtract" yaml:"setSubtract"`
	// RegistryAlias is the alias recipes are registered into.
	RegistryAlias string `json:"registryAlias" yaml:"registryAlias"`
	// CategoryAliases maps an alias to the fixed category its list defines.
	CategoryAliases map[string]string `json:"categoryAliases" yaml:"categoryAliases"`
}

// DefaultDialect returns the dialect of the shipped recipe data file.
func DefaultDialect() Dialect {
	return Dialect{
		TraitsAlias:   "v2",
		HelperAlias:   "v3",
		MakeTable:     "MakeTable",
		SetSubtract:   "SetSubtract",
		RegistryAlias: "v10",
		CategoryAliases: map[string]string{
			"v5": "Bread",
			"v6": "Meat",
			"v7": "Leafy",
			"v8": "Pastry",
			"v9": "Tomato",
		},
	}
}

func (d Dialect) clone() Dialect {
	d.CategoryAliases = maps.Clone(d.CategoryAliases)
	return d
}

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
	"fmt"
)

// Source names one of the input files the loader reads.
type Source string

const (
	// SourceTraits is the item to traits table.
	SourceTraits Source = "traits"
	// SourceShop is the purchasable item list.
	SourceShop Source = "shop"
	// SourceScript is the declarative recipe script.
	SourceScript Source = "script"
	// SourceRecipes is the converted recipe registry.
	SourceRecipes Source = "recipes"
	// SourceCategories is the converted fixed category tables.
	SourceCategories Source = "categories"
)

// MissingSourceFileError reports an input file that does not exist.
type MissingSourceFileError struct {
	Path string
	Kind Source
}

func (e *MissingSourceFileError) Error() string {
	return fmt.Sprintf("%s source file not found: %s", e.Kind, e.Path)
}

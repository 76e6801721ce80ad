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

// Package serializer reads and writes larder data in JSON, YAML, and table form.
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, recipes); err != nil {
//	    return err
//	}
//
// Values that implement TableRower render as aligned columns in table
// format; anything else is flattened into dotted FIELD/VALUE pairs.
//
// Reading, from a local path or an http(s) URL:
//
//	traits, err := serializer.FromFile[trait.Table](ctx, "data/plant_traits.json")
//
// A missing local file or a remote 404 wraps fs.ErrNotExist.
//
// Persisting a document atomically:
//
//	err := serializer.WriteFile("data/recipes.json", doc)
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer

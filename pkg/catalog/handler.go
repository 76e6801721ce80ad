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
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/serializer"
	"github.com/mchmarny/larder/pkg/server"
)

// Handlers returns the catalog routes keyed by mux pattern.
func (c *Catalog) Handlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/recipes":           c.HandleRecipes,
		"/v1/recipes/{name}":    c.HandleRecipe,
		"/v1/categories/{name}": c.HandleCategory,
		"/v1/stats":             c.HandleStats,
		"/v1/items":             c.HandleItems,
	}
}

// HandleRecipes serves GET /v1/recipes[?shop_only=true].
func (c *Catalog) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if !server.RequireGet(w, r) {
		return
	}
	shopOnly, ok := parseShopOnly(w, r)
	if !ok {
		return
	}

	list := c.Recipes(Query{ShopOnly: shopOnly})
	slog.Debug("recipes", "shop_only", shopOnly, "count", len(list))

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, list)
}

// HandleRecipe serves GET /v1/recipes/{name}[?shop_only=true].
func (c *Catalog) HandleRecipe(w http.ResponseWriter, r *http.Request) {
	if !server.RequireGet(w, r) {
		return
	}
	shopOnly, ok := parseShopOnly(w, r)
	if !ok {
		return
	}

	p, err := c.Recipe(r.PathValue("name"), shopOnly)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to find recipe", nil)
		return
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, p)
}

// HandleCategory serves GET /v1/categories/{name}[?shop_only=true].
func (c *Catalog) HandleCategory(w http.ResponseWriter, r *http.Request) {
	if !server.RequireGet(w, r) {
		return
	}
	shopOnly, ok := parseShopOnly(w, r)
	if !ok {
		return
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, c.Category(r.PathValue("name"), shopOnly))
}

// HandleStats serves GET /v1/stats.
func (c *Catalog) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !server.RequireGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, c.Stats())
}

// HandleItems serves GET /v1/items.
func (c *Catalog) HandleItems(w http.ResponseWriter, r *http.Request) {
	if !server.RequireGet(w, r) {
		return
	}
	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, c.Items())
}

func parseShopOnly(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("shop_only")
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid shop_only value", false, map[string]any{
				"shop_only": raw,
				"error":     err.Error(),
			})
		return false, false
	}
	return v, true
}

func setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.CatalogCacheTTL.Seconds())))
}

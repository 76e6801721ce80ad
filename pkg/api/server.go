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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/mchmarny/larder/pkg/catalog"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/loader"
	"github.com/mchmarny/larder/pkg/logging"
	"github.com/mchmarny/larder/pkg/server"
)

const (
	name           = "larderd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mchmarny/larder/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type loadFunc func(context.Context, loader.Options) (*loader.Data, error)

// Service answers catalog requests. Until the data is loaded every catalog
// route responds 503.
type Service struct {
	cfg     Config
	load    loadFunc
	current atomic.Pointer[catalog.Catalog]
}

// NewService returns a Service that loads its data with loader.Load.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, load: loader.Load}
}

// Load reads the data and publishes the catalog. It is called once, before
// the server reports ready.
func (s *Service) Load(ctx context.Context) error {
	d, err := s.load(ctx, s.cfg.LoaderOptions())
	if err != nil {
		return err
	}
	c := d.Catalog()
	s.current.Store(c)

	st := c.Stats()
	slog.Info("catalog ready",
		"recipes", st.TotalRecipes,
		"shopOnly", st.ShopOnlyRecipes,
		"invalid", st.InvalidRecipes,
		"skipped", st.SkippedRegistrations,
		"categories", st.Categories,
	)
	return nil
}

// Catalog returns the loaded catalog, or nil before Load succeeds.
func (s *Service) Catalog() *catalog.Catalog {
	return s.current.Load()
}

// Handlers returns the catalog routes keyed by mux pattern.
func (s *Service) Handlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/recipes":           s.serve((*catalog.Catalog).HandleRecipes),
		"/v1/recipes/{name}":    s.serve((*catalog.Catalog).HandleRecipe),
		"/v1/categories/{name}": s.serve((*catalog.Catalog).HandleCategory),
		"/v1/stats":             s.serve((*catalog.Catalog).HandleStats),
		"/v1/items":             s.serve((*catalog.Catalog).HandleItems),
	}
}

func (s *Service) serve(h func(*catalog.Catalog, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.current.Load()
		if c == nil {
			w.Header().Set("Retry-After", "1")
			server.WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
				"recipe data is still loading", true, nil)
			return
		}
		h(c, w, r)
	}
}

// Serve starts larderd and blocks until shutdown. The server comes up
// immediately and reports ready once the data has loaded; a load failure
// stops the server.
func Serve() error {
	ctx := context.Background()

	cfg, err := NewConfig()
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"dataDir", cfg.DataDir,
		"fromScript", cfg.FromScript,
		"strict", cfg.Strict,
	)

	svc := NewService(cfg)
	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(svc.Handlers()),
		server.WithDeferredReady(),
	)

	err = s.Run(ctx, func(ctx context.Context) error {
		if err := svc.Load(ctx); err != nil {
			slog.Error("failed to load recipe data", "error", err)
			return err
		}
		s.SetReady(true)
		return nil
	})
	if err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

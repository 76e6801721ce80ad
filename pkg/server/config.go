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

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/time/rate"

	"github.com/mchmarny/larder/pkg/defaults"
)

// Config holds server configuration. Fields with an env tag can be set from
// the environment.
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server, keyed by mux pattern
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string `env:"ADDRESS"`
	Port    int    `env:"PORT"`

	// Rate limiting configuration
	RateLimit      rate.Limit `env:"RATE_LIMIT"`       // requests per second
	RateLimitBurst int        `env:"RATE_LIMIT_BURST"` // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// ShutdownTimeoutSeconds overrides ShutdownTimeout when positive, to
	// match the eviction grace period of the host.
	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// NewConfig returns a new Config with defaults and environment overrides.
func NewConfig() *Config {
	return parseConfig()
}

func defaultConfig() *Config {
	return &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              8080,
		RateLimit:         100, // 100 req/s
		RateLimitBurst:    200, // burst of 200
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// parseConfig returns the defaults overlaid with the environment. An
// environment that fails to parse leaves the defaults untouched.
func parseConfig() *Config {
	cfg := defaultConfig()

	parsed := *cfg
	if err := env.Parse(&parsed); err != nil {
		slog.Warn("invalid server environment, using defaults", "error", err)
		return cfg
	}

	if parsed.ShutdownTimeoutSeconds > 0 {
		parsed.ShutdownTimeout = time.Duration(parsed.ShutdownTimeoutSeconds) * time.Second
	}
	if parsed.Port <= 0 {
		parsed.Port = cfg.Port
	}
	if parsed.RateLimit <= 0 {
		parsed.RateLimit = cfg.RateLimit
	}
	if parsed.RateLimitBurst <= 0 {
		parsed.RateLimitBurst = cfg.RateLimitBurst
	}
	return &parsed
}

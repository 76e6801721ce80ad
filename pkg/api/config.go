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
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/loader"
)

// Config is the larderd process configuration. Server networking settings
// are read separately by pkg/server.
type Config struct {
	DataDir          string `env:"LARDER_DATA_DIR"`
	Strict           bool   `env:"LARDER_STRICT"`
	FromScript       bool   `env:"LARDER_FROM_SCRIPT"`
	SyntaxCheck      bool   `env:"LARDER_SYNTAX_CHECK"`
	RulesFile        string `env:"LARDER_RULES_FILE"`
	DisplayNamesFile string `env:"LARDER_DISPLAY_NAMES_FILE"`
	LogLevel         string `env:"LOG_LEVEL"`
}

// NewConfig reads the configuration from the environment.
func NewConfig() (Config, error) {
	cfg := Config{
		DataDir:  defaults.DataDir,
		LogLevel: "info",
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return cfg, nil
}

// LoaderOptions maps the configuration onto loader options.
func (c Config) LoaderOptions() loader.Options {
	return loader.Options{
		DataDir:          c.DataDir,
		Strict:           c.Strict,
		FromScript:       c.FromScript,
		SyntaxCheck:      c.SyntaxCheck,
		RulesFile:        c.RulesFile,
		DisplayNamesFile: c.DisplayNamesFile,
		Version:          version,
	}
}

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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/larder/pkg/defaults"
	"github.com/mchmarny/larder/pkg/logging"
	"github.com/mchmarny/larder/pkg/serializer"
)

const (
	name           = "larder"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to this file instead of stdout",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func shopOnlyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "shop-only",
		Aliases: []string{"s"},
		Usage:   "Restrict ingredients to items purchasable from the shop",
	}
}

// Execute runs the larder CLI with the process arguments and exits non-zero
// on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Recipe catalog tooling",
		Description: `Convert the recipe script into a registry and query the recipe catalog:
recipes and their ingredient combinations, category resolution, shop
availability, and the rules behind each category.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Value:   defaults.DataDir,
				Usage:   "Directory holding the input files",
				Sources: cli.EnvVars("LARDER_DATA_DIR"),
			},
			&cli.BoolFlag{
				Name:    "from-script",
				Usage:   "Parse the recipe script instead of reading the converted registry",
				Sources: cli.EnvVars("LARDER_FROM_SCRIPT"),
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Fail when an input file is missing",
				Sources: cli.EnvVars("LARDER_STRICT"),
			},
			&cli.BoolFlag{
				Name:    "syntax-check",
				Usage:   "Compile the recipe script before parsing it",
				Sources: cli.EnvVars("LARDER_SYNTAX_CHECK"),
			},
			&cli.StringFlag{
				Name:    "rules-file",
				Usage:   "Category rule overrides (default: <data-dir>/" + defaults.RulesFile + " when present)",
				Sources: cli.EnvVars("LARDER_RULES_FILE"),
			},
			&cli.StringFlag{
				Name:    "display-names-file",
				Usage:   "Display-name overrides (default: <data-dir>/" + defaults.DisplayNamesFile + " when present)",
				Sources: cli.EnvVars("LARDER_DISPLAY_NAMES_FILE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			convertCmd(),
			recipesCmd(),
			recipeCmd(),
			resolveCmd(),
			statsCmd(),
			itemsCmd(),
			validateCmd(),
			rulesCmd(),
		},
	}
}

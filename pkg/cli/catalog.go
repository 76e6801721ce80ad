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

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/larder/pkg/catalog"
)

func recipesCmd() *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "List every recipe with its ingredient combinations",
		Description: `List recipes ordered by priority, highest first. With --shop-only, only
recipes that can be made from shop items are listed and their combinations
are counted over shop items alone.`,
		Flags: []cli.Flag{
			shopOnlyFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, c.Recipes(catalog.Query{ShopOnly: cmd.Bool("shop-only")}))
		},
	}
}

func recipeCmd() *cli.Command {
	return &cli.Command{
		Name:      "recipe",
		Usage:     "Show one recipe with its resolved ingredients",
		ArgsUsage: "<name>",
		Description: `Show a recipe by key or display name (case-insensitive). Unknown names
fail with suggestions for the closest matches.`,
		Flags: []cli.Flag{
			shopOnlyFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n, err := requireArg(cmd, "recipe")
			if err != nil {
				return err
			}
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			p, err := c.Recipe(n, cmd.Bool("shop-only"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, p)
		},
	}
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve an ingredient category to concrete items",
		ArgsUsage: "<category>",
		Description: `Resolve a category the way ingredient slots do: its rule unioned with any
fixed table of the same name. Unknown categories resolve to no items.`,
		Flags: []cli.Flag{
			shopOnlyFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n, err := requireArg(cmd, "category")
			if err != nil {
				return err
			}
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, c.Category(n, cmd.Bool("shop-only")))
		},
	}
}

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog totals",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, c.Stats())
		},
	}
}

func itemsCmd() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "List known items with their traits and shop availability",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, c.Items())
		},
	}
}

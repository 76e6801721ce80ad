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

	"github.com/mchmarny/larder/pkg/loader"
)

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert the recipe script into the recipe registry",
		Description: `Parse FoodRecipeData.lua from the data directory and write recipes.json
and cooking.json. Later commands read these files unless --from-script is set.
The script and plant_traits.json must exist.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory to write the converted files to (default: the data directory)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			res, err := loader.Convert(ctx, loaderOptions(cmd), cmd.String("out-dir"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

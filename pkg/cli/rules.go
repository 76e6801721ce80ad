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

	"github.com/mchmarny/larder/pkg/category"
	"github.com/mchmarny/larder/pkg/loader"
	"github.com/mchmarny/larder/pkg/serializer"
)

func rulesCmd() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "List the category resolution rules in effect",
		Description: `List every category rule after overrides are applied. JSON and YAML output
is a CategoryRules document that can be edited and passed back with
--rules-file.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			rules, err := loader.Rules(ctx, loaderOptions(cmd))
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				return writeOutput(ctx, cmd, rules)
			}
			return writeOutput(ctx, cmd, category.NewRuleFile(rules, version))
		},
	}
}

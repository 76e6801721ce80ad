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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/larder/pkg/catalog"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/loader"
	"github.com/mchmarny/larder/pkg/serializer"
)

// loaderOptions maps the global flags onto loader options.
func loaderOptions(cmd *cli.Command) loader.Options {
	return loader.Options{
		DataDir:          cmd.String("data-dir"),
		Strict:           cmd.Bool("strict"),
		FromScript:       cmd.Bool("from-script"),
		SyntaxCheck:      cmd.Bool("syntax-check"),
		RulesFile:        cmd.String("rules-file"),
		DisplayNamesFile: cmd.String("display-names-file"),
		Version:          version,
	}
}

func loadCatalog(ctx context.Context, cmd *cli.Command) (*catalog.Catalog, error) {
	d, err := loader.Load(ctx, loaderOptions(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe data: %w", err)
	}
	return d.Catalog(), nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// requireArg returns the command's single positional argument.
func requireArg(cmd *cli.Command, what string) (string, error) {
	arg := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if arg == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("%s name is required", what))
	}
	return arg, nil
}

// writeOutput serializes v to the --output file, or to the root command's
// writer when none is given.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var w *serializer.Writer
	if path := cmd.String("output"); path != "" {
		w = serializer.NewFileWriterOrStdout(format, path)
	} else {
		w = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}

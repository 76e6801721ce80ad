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
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/larder/pkg/catalog"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/loader"
	"github.com/mchmarny/larder/pkg/script"
)

// validationReport summarizes what a strict parse of the script found.
type validationReport struct {
	Script      string                       `json:"script" yaml:"script"`
	Recipes     int                          `json:"recipes" yaml:"recipes"`
	Invalid     map[string][]string          `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	Uncraftable []string                     `json:"uncraftable,omitempty" yaml:"uncraftable,omitempty"`
	Skipped     []script.SkippedRegistration `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Diagnostics []script.Diagnostic          `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Rules       int                          `json:"rules" yaml:"rules"`
}

func (r *validationReport) defects() int {
	return len(r.Invalid) + len(r.Skipped)
}

// TableRows lists one row per finding.
func (r *validationReport) TableRows() ([]string, [][]string) {
	rows := [][]string{}
	names := make([]string, 0, len(r.Invalid))
	for n := range r.Invalid {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		for _, issue := range r.Invalid[n] {
			rows = append(rows, []string{"invalid", n, "", issue})
		}
	}
	for _, n := range r.Uncraftable {
		rows = append(rows, []string{"uncraftable", n, "", "an ingredient slot resolves to no items"})
	}
	for _, s := range r.Skipped {
		rows = append(rows, []string{"skipped", s.Name, fmt.Sprint(s.Line), s.Reason})
	}
	for _, d := range r.Diagnostics {
		rows = append(rows, []string{string(d.Kind), "", fmt.Sprint(d.Line), d.Message})
	}
	return []string{"FINDING", "RECIPE", "LINE", "DETAIL"}, rows
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the recipe script and report defective recipes",
		Description: `Compile the recipe script, parse it, and build the catalog, then report
recipes without ingredient slots, recipes with a slot that resolves to no
items, registrations skipped because their variable was unbound, and every
parser diagnostic. A syntax or parse error always fails; defects fail only
with --fail-on-defects.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail-on-defects",
				Usage: "Exit non-zero when any recipe is invalid or skipped",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			opts := loaderOptions(cmd)
			opts.FromScript = true
			opts.SyntaxCheck = true
			opts.Strict = true

			d, err := loader.Load(ctx, opts)
			if err != nil {
				return err
			}

			report := newValidationReport(d, d.Catalog())
			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}
			if cmd.Bool("fail-on-defects") && report.defects() > 0 {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("%d recipe defects found", report.defects()),
					map[string]any{"invalid": len(report.Invalid), "skipped": len(report.Skipped)})
			}
			return nil
		},
	}
}

func newValidationReport(d *loader.Data, c *catalog.Catalog) *validationReport {
	r := &validationReport{
		Script:      d.Source,
		Recipes:     d.Registry.Len(),
		Invalid:     map[string][]string{},
		Skipped:     d.Registry.Skipped,
		Diagnostics: d.Diagnostics,
		Rules:       len(d.Rules),
	}
	for _, n := range d.Registry.Invalid() {
		rec, _ := d.Registry.Get(n)
		r.Invalid[n] = rec.Issues
	}
	for _, p := range c.Recipes(catalog.Query{}) {
		if len(p.Ingredients) > 0 && !p.IsObtainable {
			r.Uncraftable = append(r.Uncraftable, p.Key)
		}
	}
	sort.Strings(r.Uncraftable)
	return r
}

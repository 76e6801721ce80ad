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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "larder_recipe_extracted_total",
			Help: "Total number of recipe records extracted from parsed scripts",
		},
	)
	recipeDefects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "larder_recipe_defects_total",
			Help: "Total number of defects flagged on extracted recipe records",
		},
	)
	skippedRegistrations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "larder_recipe_skipped_registrations",
			Help: "Registrations skipped in the most recent extraction because their alias was unbound",
		},
	)
)

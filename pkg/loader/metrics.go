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

package loader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "larder_loader_load_duration_seconds",
			Help:    "Time spent loading and building the recipe data",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	missingSources = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "larder_loader_missing_sources_total",
			Help: "Total number of input files that were absent at load",
		},
		[]string{"kind"},
	)
)

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

// Package defaults provides centralized configuration constants for larder.
//
// This package defines timeout values, input file names, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Loader timeouts: For the one-time bulk read of the input tables
//   - Data files: Names of the input and output documents in the data directory
//
// # Usage
//
//	import "github.com/mchmarny/larder/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.LoadTimeout)
//	defer cancel()
package defaults

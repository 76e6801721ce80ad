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

package defaults

import "time"

// CatalogCacheTTL is the client cache duration advertised for catalog responses.
// The catalog is immutable for the life of the process.
const CatalogCacheTTL = 10 * time.Minute

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Loader timeouts.
const (
	// LoadTimeout bounds the startup read of all input tables.
	LoadTimeout = 30 * time.Second
)

// HTTP client timeouts for reading remote data files.
const (
	// HTTPClientTimeout is the total timeout for one remote read.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing a connection.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPKeepAlive is the keep-alive period for client connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for the TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for the first response header.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is how long idle client connections are kept.
	HTTPIdleConnTimeout = 90 * time.Second
)

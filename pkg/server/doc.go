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

// Package server provides the HTTP server that larderd runs: routing,
// middleware, health probes, metrics, and structured error responses.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("larderd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/recipes": c.HandleRecipes,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Handlers are keyed by net/http mux pattern, so path wildcards such as
// "/v1/recipes/{name}" are available through r.PathValue. Every API handler
// runs behind the same middleware chain: metrics, API version negotiation,
// request ID, panic recovery, rate limiting, and debug request logging.
//
// # Configuration
//
// NewConfig reads PORT, ADDRESS, RATE_LIMIT, RATE_LIMIT_BURST and
// SHUTDOWN_TIMEOUT_SECONDS from the environment on top of the defaults in
// pkg/defaults.
//
// # System Endpoints
//
//	GET /health   always 200 while the process runs
//	GET /ready    200 once SetReady(true), 503 before and during shutdown
//	GET /metrics  Prometheus exposition
//	GET /         service name, version, readiness, and routes
//
// # Errors
//
// Every error is returned as an ErrorResponse:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "recipe \"Pie\" not found",
//	  "details": {"name": "Pie", "suggestions": ["Pies"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status and code from a StructuredError in
// the error chain.
//
// # Request Tracking
//
// Requests may carry an X-Request-Id header in UUID form; otherwise one is
// generated. Rate limit state is reported in X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset, and rejected requests get
// 429 with Retry-After.
package server

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

package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/larder/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code errors.ErrorCode
		want int
	}{
		{"invalid request", errors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"parse", errors.ErrCodeParse, http.StatusBadRequest},
		{"unresolved reference", errors.ErrCodeUnresolvedReference, http.StatusBadRequest},
		{"not found", errors.ErrCodeNotFound, http.StatusNotFound},
		{"missing source", errors.ErrCodeMissingSource, http.StatusNotFound},
		{"method not allowed", errors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", errors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"internal", errors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", errors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want bool
	}{
		{errors.ErrCodeInvalidRequest, false},
		{errors.ErrCodeNotFound, false},
		{errors.ErrCodeMethodNotAllowed, false},
		{errors.ErrCodeParse, false},
		{errors.ErrCodeUnavailable, true},
		{errors.ErrCodeRateLimitExceeded, true},
		{errors.ErrCodeInternal, true},
		{errors.ErrorCode("SOMETHING_ELSE"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, map[string]any{}))

	a := map[string]any{"a": 1, "shared": "old"}
	b := map[string]any{"b": 2, "shared": "new"}
	got := mergeDetails(a, b)
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "shared": "new"}, got)
	assert.Equal(t, "old", a["shared"])
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, errors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, errors.ErrCodeInvalidRequest, resp.Code)
	assert.Equal(t, "bad request", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, "v", resp.Details["k"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteErrorGeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, errors.ErrCodeNotFound, "missing", false, nil)
	assert.NotEmpty(t, decodeError(t, w).RequestID)
}

func TestWriteErrorFromErr(t *testing.T) {
	t.Run("structured error maps status and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		cause := stderrors.New("data dir unreadable")
		err := errors.WrapWithContext(errors.ErrCodeUnavailable, "catalog not loaded", cause, map[string]any{"component": "loader"})

		WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/", nil), err, "fallback", map[string]any{"extra": "yes"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, errors.ErrCodeUnavailable, resp.Code)
		assert.Equal(t, "catalog not loaded", resp.Message)
		assert.True(t, resp.Retryable)
		assert.Equal(t, "loader", resp.Details["component"])
		assert.Equal(t, "yes", resp.Details["extra"])
		assert.Equal(t, "data dir unreadable", resp.Details["error"])
	})

	t.Run("wrapped structured error", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := stderrors.Join(errors.New(errors.ErrCodeNotFound, "recipe \"Pie\" not found"))

		WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/", nil), err, "fallback", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, decodeError(t, w).Retryable)
	})

	t.Run("plain error falls back to internal", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/", nil), stderrors.New("boom"), "fallback", map[string]any{"x": "y"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, errors.ErrCodeInternal, resp.Code)
		assert.Equal(t, "fallback", resp.Message)
		assert.True(t, resp.Retryable)
		assert.Equal(t, "y", resp.Details["x"])
		assert.Equal(t, "boom", resp.Details["error"])
	})
}

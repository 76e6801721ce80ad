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

package availability

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAndCount(t *testing.T) {
	tests := []struct {
		name       string
		resolved   map[string][]string
		avail      Set
		wantCount  int64
		wantOK     bool
		wantFilter map[string][]string
	}{
		{
			name:       "unrestricted",
			resolved:   map[string][]string{"A": {"x", "y"}, "B": {"p", "q", "r"}},
			avail:      nil,
			wantCount:  6,
			wantOK:     true,
			wantFilter: map[string][]string{"A": {"x", "y"}, "B": {"p", "q", "r"}},
		},
		{
			name:       "full availability",
			resolved:   map[string][]string{"A": {"x", "y"}, "B": {"p", "q", "r"}},
			avail:      NewSet("x", "y", "p", "q", "r", "z"),
			wantCount:  6,
			wantOK:     true,
			wantFilter: map[string][]string{"A": {"x", "y"}, "B": {"p", "q", "r"}},
		},
		{
			name:       "partial availability",
			resolved:   map[string][]string{"A": {"x", "y"}, "B": {"p", "q", "r"}},
			avail:      NewSet("x", "q", "r"),
			wantCount:  2,
			wantOK:     true,
			wantFilter: map[string][]string{"A": {"x"}, "B": {"q", "r"}},
		},
		{
			name:       "slot filtered empty",
			resolved:   map[string][]string{"A": {"x", "y"}, "B": {"p"}},
			avail:      NewSet("x"),
			wantCount:  0,
			wantOK:     false,
			wantFilter: map[string][]string{"A": {"x"}, "B": {}},
		},
		{
			name:       "unrestricted empty slot",
			resolved:   map[string][]string{"A": {"x", "y"}, "B": {}},
			avail:      nil,
			wantCount:  0,
			wantOK:     false,
			wantFilter: map[string][]string{"A": {"x", "y"}, "B": {}},
		},
		{
			name:       "no slots",
			resolved:   map[string][]string{},
			avail:      nil,
			wantCount:  0,
			wantOK:     false,
			wantFilter: map[string][]string{},
		},
		{
			name:       "empty set admits nothing",
			resolved:   map[string][]string{"A": {"x"}},
			avail:      NewSet(),
			wantCount:  0,
			wantOK:     false,
			wantFilter: map[string][]string{"A": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndCount(tt.resolved, tt.avail)
			assert.Equal(t, tt.wantCount, got.Combinations)
			assert.Equal(t, tt.wantOK, got.Obtainable)
			assert.Equal(t, tt.wantFilter, got.Slots)
		})
	}
}

func TestCountSaturates(t *testing.T) {
	big := make([]string, 1<<16)
	for i := range big {
		big[i] = strconv.Itoa(i)
	}
	slots := map[string][]string{"a": big, "b": big, "c": big, "d": big, "e": big}
	assert.Equal(t, int64(math.MaxInt64), Count(slots))

	slots["f"] = nil
	assert.Equal(t, int64(0), Count(slots))
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "", "a")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Items())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.False(t, s.Unrestricted())

	var all Set
	assert.True(t, all.Unrestricted())
	assert.True(t, all.Contains("anything"))
	assert.Equal(t, []string{"b", "c"}, all.Filter([]string{"b", "c"}))
	assert.Equal(t, []string{"a"}, s.Filter([]string{"c", "a"}))
}

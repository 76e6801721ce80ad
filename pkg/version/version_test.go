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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{"1", NewVersion(1, 0, 0), nil},
		{"v1.2", NewVersion(1, 2, 0), nil},
		{"1.2.3", NewVersion(1, 2, 3), nil},
		{"v0.4.1-rc.1", Version{Major: 0, Minor: 4, Patch: 1, Extras: "-rc.1"}, nil},
		{"2.0.0+abc123", Version{Major: 2, Extras: "+abc123"}, nil},
		{"", Version{}, ErrEmptyVersion},
		{"v", Version{}, ErrEmptyVersion},
		{"dev", Version{}, ErrNonNumeric},
		{"1..2", Version{}, ErrNonNumeric},
		{"1.-2", Version{}, ErrNonNumeric},
		{"1.2.3.4", Version{}, ErrTooManyComponents},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3.0", "1.2.9", 1},
		{"2", "1.9.9", 1},
		{"1.2.3-rc.1", "1.2.3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			a, err := ParseVersion(tt.a)
			require.NoError(t, err)
			b, err := ParseVersion(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, tt.want > 0, a.IsNewer(b))
		})
	}
}

func TestNewer(t *testing.T) {
	newer, ok := Newer("v1.3.0", "v1.2.0")
	assert.True(t, ok)
	assert.True(t, newer)

	newer, ok = Newer("v1.2.0", "v1.2.0")
	assert.True(t, ok)
	assert.False(t, newer)

	_, ok = Newer("v1.3.0", "dev")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.2.3", NewVersion(1, 2, 3).String())
	assert.Equal(t, "0.4.1-rc.1", Version{Minor: 4, Patch: 1, Extras: "-rc.1"}.String())
}

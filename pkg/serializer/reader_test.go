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

package serializer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"recipes.json", FormatJSON},
		{"RULES.YAML", FormatYAML},
		{"rules.yml", FormatYAML},
		{"out.table", FormatTable},
		{"out.txt", FormatTable},
		{"FoodRecipeData.lua", FormatJSON},
		{"https://example.com/data/cooking.json", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestNewReaderRejectsTable(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestReaderDeserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"shopseeds": ["Carrot", "Corn"]}`},
		{"yaml", FormatYAML, "shopseeds:\n  - Carrot\n  - Corn\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			require.NoError(t, err)
			defer r.Close()

			var got struct {
				ShopSeeds []string `json:"shopseeds" yaml:"shopseeds"`
			}
			require.NoError(t, r.Deserialize(&got))
			assert.Equal(t, []string{"Carrot", "Corn"}, got.ShopSeeds)
		})
	}
}

func TestReaderDeserializeInvalid(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader("{"))
	require.NoError(t, err)
	var v map[string]any
	assert.Error(t, r.Deserialize(&v))

	var nilReader *Reader
	assert.Error(t, nilReader.Deserialize(&v))
	assert.NoError(t, nilReader.Close())
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant_traits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Carrot": ["Vegetable"]}`), 0o600))

	got, err := FromFile[map[string][]string](context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegetable"}, (*got)["Carrot"])
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile[map[string]any](context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadRawLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "FoodRecipeData.lua")
	require.NoError(t, os.WriteFile(path, []byte("local v1 = {}\n"), 0o600))

	data, err := ReadRaw(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "local v1 = {}\n", string(data))

	_, err = ReadRaw(context.Background(), path+".missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

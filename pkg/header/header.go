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

package header

import (
	"time"
)

// Kind identifies the type of a persisted larder document.
type Kind string

const (
	// KindRecipeRegistry is the converted recipe registry (recipes.json).
	KindRecipeRegistry Kind = "RecipeRegistry"
	// KindCategoryRules is a category rule override file.
	KindCategoryRules Kind = "CategoryRules"
)

// DefaultAPIVersion is written into documents produced by this module.
const DefaultAPIVersion = "larder.dev/v1"

const (
	// MetadataTimestamp is the RFC 3339 creation time of the document.
	MetadataTimestamp = "timestamp"
	// MetadataVersion is the version of the tool that produced the document.
	MetadataVersion = "version"
	// MetadataSource is the input the document was derived from.
	MetadataSource = "source"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindRecipeRegistry, KindCategoryRules:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithTimestamp stamps the Header with t in UTC.
func WithTimestamp(t time.Time) Option {
	return WithMetadata(MetadataTimestamp, t.UTC().Format(time.RFC3339))
}

// New creates a new Header instance with the provided functional options.
// APIVersion defaults to DefaultAPIVersion and the timestamp to now.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: DefaultAPIVersion,
		Metadata: map[string]string{
			MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header carries the kind, schema version, and provenance of a persisted document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init resets the Header to kind with a fresh timestamp and the producing
// tool version.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = DefaultAPIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Timestamp parses the creation time recorded in the metadata.
func (h *Header) Timestamp() (time.Time, bool) {
	if h == nil || h.Metadata == nil {
		return time.Time{}, false
	}
	raw, ok := h.Metadata[MetadataTimestamp]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

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
	"math/bits"
	"sort"
)

// Set is a read-only set of obtainable item identifiers. A nil Set means
// no restriction: every item is available.
type Set map[string]struct{}

// NewSet builds a Set from items. Empty identifiers are ignored. The result
// is never nil, so an empty input yields a set that admits nothing.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		s[it] = struct{}{}
	}
	return s
}

// Unrestricted reports whether the set admits every item.
func (s Set) Unrestricted() bool { return s == nil }

// Contains reports whether item is available.
func (s Set) Contains(item string) bool {
	if s == nil {
		return true
	}
	_, ok := s[item]
	return ok
}

// Len returns the number of items in the set.
func (s Set) Len() int { return len(s) }

// Items returns the set members, sorted.
func (s Set) Items() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// Filter returns the items that are available, preserving order.
func (s Set) Filter(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s.Contains(it) {
			out = append(out, it)
		}
	}
	return out
}

// Result is the outcome of filtering a recipe's resolved slots.
type Result struct {
	// Slots holds each slot's items after filtering.
	Slots map[string][]string `json:"slots" yaml:"slots"`
	// Combinations is the number of distinct ingredient picks.
	Combinations int64 `json:"combinations" yaml:"combinations"`
	// Obtainable is true when every slot has at least one item.
	Obtainable bool `json:"obtainable" yaml:"obtainable"`
}

// FilterAndCount intersects every resolved slot with avail and counts the
// combinations left. A recipe without slots is not obtainable, and a slot
// left empty forces the count to zero.
func FilterAndCount(resolved map[string][]string, avail Set) Result {
	res := Result{
		Slots:      make(map[string][]string, len(resolved)),
		Obtainable: len(resolved) > 0,
	}
	for name, items := range resolved {
		kept := avail.Filter(items)
		if len(kept) == 0 {
			res.Obtainable = false
		}
		res.Slots[name] = kept
	}
	res.Combinations = Count(res.Slots)
	return res
}

// Count returns the product of the slot sizes. An empty slot makes the
// product zero, no slots count as zero, and the product saturates at
// math.MaxInt64.
func Count(slots map[string][]string) int64 {
	if len(slots) == 0 {
		return 0
	}
	var total uint64 = 1
	saturated := false
	for _, items := range slots {
		n := uint64(len(items))
		if n == 0 {
			return 0
		}
		if saturated {
			continue
		}
		hi, lo := bits.Mul64(total, n)
		if hi != 0 || lo > math.MaxInt64 {
			saturated = true
			continue
		}
		total = lo
	}
	if saturated {
		return math.MaxInt64
	}
	return int64(total)
}

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
)

func FuzzParseVersion(f *testing.F) {
	for _, s := range []string{"1", "v1.2", "1.2.3", "v0.4.1-rc.1", "", ".", "1.", "1..2", "vv1", "-1", "a.b.c", "1.2.3.4", " 1.2.3 ", "1.2.3+"} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}
		if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Errorf("ParseVersion(%q) returned a negative component: %+v", input, v)
		}

		v2, err := ParseVersion(v.String())
		if err != nil {
			t.Fatalf("re-parsing %q (from %q) failed: %v", v.String(), input, err)
		}
		if v.Compare(v2) != 0 || v.Extras != v2.Extras {
			t.Errorf("round trip mismatch for %q: %+v != %+v", input, v, v2)
		}
	})
}

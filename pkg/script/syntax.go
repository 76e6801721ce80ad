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

package script

import (
	"fmt"

	"github.com/Shopify/go-lua"
)

// CheckSyntax compiles src with a real Lua front end without running it.
// It catches malformed files that the line-oriented parser would only notice
// partway through. The returned error wraps ErrSyntax.
func CheckSyntax(name, src string) error {
	l := lua.NewState()
	if err := lua.LoadBuffer(l, src, "@"+name, ""); err != nil {
		msg := err.Error()
		if s, ok := l.ToString(-1); ok && s != "" {
			msg = s
		}
		return fmt.Errorf("%w: %s", ErrSyntax, msg)
	}
	l.Pop(1)
	return nil
}

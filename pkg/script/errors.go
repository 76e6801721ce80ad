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
	"errors"
	"fmt"
	"strings"
)

// ErrParse matches any *ParseError via errors.Is.
var ErrParse = errors.New("script parse error")

// ErrUnresolvedReference matches any *UnresolvedReferenceError via errors.Is.
var ErrUnresolvedReference = errors.New("unresolved reference")

// ErrSyntax is returned by CheckSyntax when the script does not compile.
var ErrSyntax = errors.New("script syntax error")

// ParseError reports a line outside the recognized grammar. It aborts the
// parse pass.
type ParseError struct {
	Line   int
	Text   string
	Reason string
	// Open lists the tables that were still open, outermost first.
	Open []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: %s", e.Line, e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, ": %q", e.Text)
	}
	if len(e.Open) > 0 {
		fmt.Fprintf(&b, " (inside %s)", strings.Join(e.Open, " > "))
	}
	return b.String()
}

// Is makes errors.Is(err, ErrParse) succeed.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnresolvedReferenceError reports an alias used before it was bound.
// Forward references are never retried.
type UnresolvedReferenceError struct {
	Alias string
	Line  int
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("line %d: %q is referenced before it is bound", e.Line, e.Alias)
}

// Is makes errors.Is(err, ErrUnresolvedReference) succeed.
func (e *UnresolvedReferenceError) Is(target error) bool { return target == ErrUnresolvedReference }

// DiagnosticKind classifies a non-fatal parser finding.
type DiagnosticKind string

const (
	// DiagUnresolvedReference marks an assignment dropped because an alias was unbound.
	DiagUnresolvedReference DiagnosticKind = "unresolved-reference"
	// DiagVerbatimFallback marks an expression kept as its raw text.
	DiagVerbatimFallback DiagnosticKind = "verbatim-fallback"
	// DiagSkippedAssignment marks a property assignment into something that is not a table.
	DiagSkippedAssignment DiagnosticKind = "skipped-assignment"
	// DiagSkippedRegistration marks a registry entry whose alias was not bound.
	DiagSkippedRegistration DiagnosticKind = "skipped-registration"
)

// Diagnostic is a non-fatal finding recorded during a parse pass.
type Diagnostic struct {
	Line    int            `json:"line" yaml:"line"`
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}

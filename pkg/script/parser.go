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
	"log/slog"
	"strings"
)

// TraitSource supplies the items carrying a trait. *trait.Index satisfies it.
type TraitSource interface {
	Items(trait string) []string
}

// Option configures a parse pass.
type Option func(*parser)

// WithDialect overrides the alias and helper names the parser recognizes.
func WithDialect(d Dialect) Option {
	return func(p *parser) {
		p.dialect = d.clone()
	}
}

type frame struct {
	name string
	line int
}

type parser struct {
	dialect Dialect
	traits  TraitSource
	lines   []line
	pos     int
	stack   []frame
	out     *Bindings
}

// Parse scans the script top to bottom and returns its variable bindings.
// A line outside the recognized grammar aborts the pass with a *ParseError.
// Unbound aliases, verbatim fallbacks, and skipped registrations do not abort;
// they are recorded on the returned Bindings.
func Parse(src string, traits TraitSource, opts ...Option) (*Bindings, error) {
	lines, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		dialect: DefaultDialect(),
		traits:  traits,
		lines:   lines,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.out = newBindings(p.dialect)

	for p.pos = 0; p.pos < len(p.lines); p.pos++ {
		if err := p.statement(p.lines[p.pos]); err != nil {
			parseFailures.Inc()
			return nil, err
		}
	}

	slog.Debug("script parsed",
		"lines", len(lines),
		"bindings", p.out.Len(),
		"registrations", len(p.out.Registrations),
		"skipped", len(p.out.Skipped),
		"diagnostics", len(p.out.Diagnostics),
	)
	return p.out, nil
}

func (p *parser) statement(ln line) error {
	toks := ln.toks
	switch {
	case toks[0].is(tokIdent, "local"):
		return p.local(ln)
	case toks[0].is(tokIdent, "return"):
		return nil
	case toks[0].kind == tokIdent:
		if path, rhs, ok := splitAssignment(toks); ok {
			return p.property(ln, path, rhs)
		}
	}
	return p.errorf(ln, "unrecognized statement")
}

// local handles "local <alias> = <expr>", including the multi-line table form.
func (p *parser) local(ln line) error {
	toks := ln.toks
	if len(toks) < 4 || toks[1].kind != tokIdent || !toks[2].punct("=") || toks[3].punct("=") {
		return p.errorf(ln, "malformed local declaration")
	}
	alias := toks[1].text
	rhs := trimSeparators(toks[3:])

	if len(rhs) == 2 && rhs[0].punct("{") && rhs[1].punct("}") {
		p.out.bind(alias, Mapping())
		return nil
	}

	v, err := p.rhs(ln, alias, rhs)
	if err != nil {
		return p.soften(ln, err)
	}
	p.out.bind(alias, v)
	return nil
}

// property handles "<alias>.<field>[.<field>...] = <expr>" and registry hooks.
func (p *parser) property(ln line, path []string, rhs []token) error {
	alias := path[0]
	rhs = trimSeparators(rhs)
	if len(rhs) == 0 {
		return p.errorf(ln, "missing value")
	}

	if alias == p.dialect.RegistryAlias && len(path) == 2 &&
		len(rhs) == 1 && rhs[0].kind == tokIdent && !isKeyword(rhs[0].text) {
		p.register(ln, path[1], rhs[0].text)
		return nil
	}

	// The value is parsed before the target is checked so that a multi-line
	// table body is consumed even when the assignment is dropped.
	v, err := p.rhs(ln, strings.Join(path, "."), rhs)
	if err != nil {
		return p.soften(ln, err)
	}

	target, ok := p.out.vars[alias]
	if !ok {
		p.diag(ln, DiagUnresolvedReference,
			fmt.Sprintf("assignment to %s dropped: %q is not bound", strings.Join(path, "."), alias))
		return nil
	}
	if err := assignPath(&target, path[1:], v); err != nil {
		p.diag(ln, DiagSkippedAssignment, fmt.Sprintf("%s: %v", strings.Join(path, "."), err))
		return nil
	}
	p.out.vars[alias] = target
	return nil
}

func (p *parser) register(ln line, name, alias string) {
	v, ok := p.out.vars[alias]
	if !ok {
		p.out.Skipped = append(p.out.Skipped, SkippedRegistration{
			Name:   name,
			Alias:  alias,
			Line:   ln.num,
			Reason: fmt.Sprintf("%q is not bound before line %d", alias, ln.num),
		})
		skippedRegistrations.Inc()
		p.diag(ln, DiagSkippedRegistration,
			fmt.Sprintf("recipe %q refers to %q before it is bound", name, alias))
		return
	}

	p.out.Registrations = append(p.out.Registrations, Registration{
		Name:  name,
		Alias: alias,
		Line:  ln.num,
		Value: v.Clone(),
	})

	if reg, ok := p.out.vars[p.dialect.RegistryAlias]; ok {
		if err := reg.Set(name, v); err == nil {
			p.out.vars[p.dialect.RegistryAlias] = reg
		}
	}
}

// rhs resolves an assigned expression. A "{" that is not closed on the same
// line opens a multi-line table; entries after it on that line belong to it.
func (p *parser) rhs(ln line, name string, rhs []token) (Value, error) {
	if rhs[0].punct("{") && closing(rhs) < 0 {
		return p.table(ln, name, rhs[1:])
	}
	return p.resolve(ln, rhs)
}

// table parses a table body whose first entries are head (the tokens after
// "{" on ln) and whose remaining lines follow ln. It returns once the line
// beginning with "}" is consumed; p.pos is left on that line.
func (p *parser) table(ln line, name string, head []token) (Value, error) {
	p.stack = append(p.stack, frame{name: name, line: ln.num})
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	var tb tableBuilder
	if err := p.head(ln, head, &tb); err != nil {
		return Value{}, err
	}
	for p.pos++; p.pos < len(p.lines); p.pos++ {
		cur := p.lines[p.pos]
		if cur.toks[0].punct("}") {
			if rest := trimSeparators(cur.toks[1:]); len(rest) != 0 {
				return Value{}, p.errorf(cur, "unexpected tokens after table close")
			}
			return tb.value(), nil
		}
		if err := p.entry(cur, &tb); err != nil {
			return Value{}, err
		}
	}

	return Value{}, &ParseError{
		Line:   ln.num,
		Text:   strings.TrimSpace(ln.text),
		Reason: "table is never closed",
		Open:   p.openNames(),
	}
}

// head feeds the entries that share a line with their table's "{". Each
// top-level comma separated part is one entry; a part that itself opens a
// nested table must be the last one on the line.
func (p *parser) head(ln line, toks []token, tb *tableBuilder) error {
	toks = trimSeparators(toks)
	if len(toks) == 0 {
		return nil
	}
	depth, start := 0, 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) {
			t := toks[i]
			if t.kind != tokPunct {
				continue
			}
			switch t.text {
			case "{", "(", "[":
				depth++
				continue
			case "}", ")", "]":
				depth--
				continue
			case ",", ";":
				if depth != 0 {
					continue
				}
			default:
				continue
			}
		}
		if part := toks[start:i]; len(part) != 0 {
			if err := p.entry(line{num: ln.num, text: ln.text, toks: part}, tb); err != nil {
				return err
			}
		}
		start = i + 1
	}
	return nil
}

// entry handles one line of a table body.
func (p *parser) entry(ln line, tb *tableBuilder) error {
	toks := trimSeparators(ln.toks)

	key, rhs, keyed := splitField(toks)
	if !keyed {
		parts, ok := splitTopLevel(toks)
		if !ok || len(parts) == 0 {
			return p.errorf(ln, "unrecognized table entry")
		}
		for _, part := range parts {
			if len(part) != 1 || part[0].kind != tokString {
				return p.errorf(ln, "unrecognized table entry")
			}
		}
		for _, part := range parts {
			tb.add(String(part[0].text))
		}
		return nil
	}

	if len(rhs) == 0 {
		return p.errorf(ln, "missing value")
	}
	v, err := p.rhs(ln, key, rhs)
	if err != nil {
		return p.soften(ln, err)
	}
	tb.set(key, v)
	return nil
}

// soften turns an unresolved reference into a diagnostic so the dependent
// assignment is skipped; every other error is returned unchanged.
func (p *parser) soften(ln line, err error) error {
	var ue *UnresolvedReferenceError
	if errors.As(err, &ue) {
		p.diag(ln, DiagUnresolvedReference, ue.Error())
		return nil
	}
	return err
}

func (p *parser) diag(ln line, kind DiagnosticKind, msg string) {
	p.out.Diagnostics = append(p.out.Diagnostics, Diagnostic{Line: ln.num, Kind: kind, Message: msg})
	diagnosticsTotal.WithLabelValues(string(kind)).Inc()
	slog.Warn("script diagnostic", "line", ln.num, "kind", kind, "message", msg)
}

func (p *parser) errorf(ln line, reason string) *ParseError {
	return &ParseError{
		Line:   ln.num,
		Text:   strings.TrimSpace(ln.text),
		Reason: reason,
		Open:   p.openNames(),
	}
}

func (p *parser) openNames() []string {
	if len(p.stack) == 0 {
		return nil
	}
	out := make([]string, len(p.stack))
	for i, f := range p.stack {
		out[i] = fmt.Sprintf("%s@%d", f.name, f.line)
	}
	return out
}

// splitAssignment matches IDENT ('.' IDENT)+ '=' rhs.
func splitAssignment(toks []token) ([]string, []token, bool) {
	path := []string{toks[0].text}
	i := 1
	for i+1 < len(toks) && toks[i].punct(".") && toks[i+1].kind == tokIdent {
		path = append(path, toks[i+1].text)
		i += 2
	}
	if len(path) < 2 || i >= len(toks) || !toks[i].punct("=") {
		return nil, nil, false
	}
	if i+1 < len(toks) && toks[i+1].punct("=") {
		return nil, nil, false
	}
	return path, toks[i+1:], true
}

// splitField matches ["key"] = rhs or key = rhs.
func splitField(toks []token) (string, []token, bool) {
	if len(toks) >= 4 && toks[0].punct("[") && toks[1].kind == tokString &&
		toks[2].punct("]") && toks[3].punct("=") {
		return toks[1].text, toks[4:], true
	}
	if len(toks) >= 2 && toks[0].kind == tokIdent && toks[1].punct("=") &&
		(len(toks) == 2 || !toks[2].punct("=")) {
		return toks[0].text, toks[2:], true
	}
	return "", nil, false
}

func assignPath(target *Value, keys []string, v Value) error {
	if len(keys) == 1 {
		return target.Set(keys[0], v)
	}
	child, ok := target.Get(keys[0])
	if !ok {
		child = Mapping()
	}
	if err := assignPath(&child, keys[1:], v); err != nil {
		return err
	}
	return target.Set(keys[0], child)
}

// tableBuilder accumulates a table body. The result is a sequence unless a
// keyed field was seen; positional entries of a keyed table get the keys
// "1", "2", ... after the named fields.
type tableBuilder struct {
	seq   []Value
	m     Value
	keyed bool
}

func (tb *tableBuilder) add(v Value) { tb.seq = append(tb.seq, v) }

func (tb *tableBuilder) set(key string, v Value) {
	if !tb.keyed {
		tb.m = Mapping()
		tb.keyed = true
	}
	_ = tb.m.Set(key, v)
}

func (tb *tableBuilder) value() Value {
	if !tb.keyed {
		return Sequence(tb.seq...)
	}
	for i, e := range tb.seq {
		_ = tb.m.Set(fmt.Sprint(i+1), e)
	}
	return tb.m
}

func isKeyword(s string) bool {
	switch s {
	case "true", "false", "nil", "function", "end", "not", "and", "or":
		return true
	}
	return false
}

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
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// resolve evaluates a single-line expression, trying in order: inline table,
// quoted string, integer, real, bound alias, trait lookup, set helpers. Anything
// else is kept as its raw text with a verbatim-fallback diagnostic.
func (p *parser) resolve(ln line, toks []token) (Value, error) {
	toks = trimSeparators(toks)
	if len(toks) == 0 {
		return Value{}, p.errorf(ln, "missing expression")
	}

	if toks[0].punct("{") && closing(toks) == len(toks)-1 {
		return p.inlineTable(ln, toks[1:len(toks)-1])
	}

	if len(toks) == 1 {
		t := toks[0]
		switch t.kind {
		case tokString:
			return String(t.text), nil
		case tokNumber:
			if v, ok := number(t.text); ok {
				return v, nil
			}
		case tokIdent:
			if v, ok := p.out.vars[t.text]; ok {
				return v.Clone(), nil
			}
			if !isKeyword(t.text) {
				return Value{}, &UnresolvedReferenceError{Alias: t.text, Line: ln.num}
			}
		}
		return p.verbatim(ln, toks), nil
	}

	if name, ok := p.traitRef(toks); ok {
		var items []string
		if p.traits != nil {
			items = p.traits.Items(name)
		}
		return Strings(items...), nil
	}

	if helper, args, ok := p.helperCall(toks); ok {
		switch helper {
		case p.dialect.MakeTable:
			return p.makeTable(ln, args)
		case p.dialect.SetSubtract:
			return p.setSubtract(ln, args)
		}
	}

	return p.verbatim(ln, toks), nil
}

func number(s string) (Value, bool) {
	if integerPattern.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Real(f), true
	}
	return Value{}, false
}

// traitRef matches <traits>.Traits.<Name>.
func (p *parser) traitRef(toks []token) (string, bool) {
	if len(toks) != 5 ||
		!toks[0].is(tokIdent, p.dialect.TraitsAlias) ||
		!toks[1].punct(".") ||
		!toks[2].is(tokIdent, "Traits") ||
		!toks[3].punct(".") ||
		toks[4].kind != tokIdent {
		return "", false
	}
	return toks[4].text, true
}

// helperCall matches <helper>:<Name>(args) or <helper>.<Name>(args) where the
// call spans the whole expression.
func (p *parser) helperCall(toks []token) (string, []token, bool) {
	if len(toks) < 5 ||
		!toks[0].is(tokIdent, p.dialect.HelperAlias) ||
		!(toks[1].punct(":") || toks[1].punct(".")) ||
		toks[2].kind != tokIdent ||
		!toks[3].punct("(") {
		return "", nil, false
	}
	if closing(toks[3:]) != len(toks)-4 {
		return "", nil, false
	}
	return toks[2].text, toks[4 : len(toks)-1], true
}

// makeTable returns the union of its arguments with first-seen order kept and
// duplicates removed.
func (p *parser) makeTable(ln line, args []token) (Value, error) {
	parts, ok := splitTopLevel(args)
	if !ok {
		return Value{}, p.errorf(ln, "unbalanced arguments to "+p.dialect.MakeTable)
	}
	seen := map[string]struct{}{}
	var out []Value
	for _, part := range parts {
		if len(trimSeparators(part)) == 0 {
			continue
		}
		v, err := p.resolve(ln, part)
		if err != nil {
			return Value{}, err
		}
		for _, e := range scalars(v) {
			key := scalarKey(e)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}
	return Sequence(out...), nil
}

// setSubtract returns the elements of its first argument that do not appear
// in its second, without duplicates. An operand that is not a sequence counts
// as empty.
func (p *parser) setSubtract(ln line, args []token) (Value, error) {
	parts, ok := splitTopLevel(args)
	if !ok {
		return Value{}, p.errorf(ln, "unbalanced arguments to "+p.dialect.SetSubtract)
	}
	if len(parts) != 2 {
		return Value{}, p.errorf(ln, fmt.Sprintf("%s takes exactly two arguments, got %d", p.dialect.SetSubtract, len(parts)))
	}
	a, err := p.resolve(ln, parts[0])
	if err != nil {
		return Value{}, err
	}
	b, err := p.resolve(ln, parts[1])
	if err != nil {
		return Value{}, err
	}

	a, b = asSequence(a), asSequence(b)

	drop := map[string]struct{}{}
	for _, e := range scalars(b) {
		drop[e.Text()] = struct{}{}
	}
	var out []Value
	for _, e := range scalars(a) {
		if _, skip := drop[e.Text()]; skip {
			continue
		}
		drop[e.Text()] = struct{}{}
		out = append(out, e)
	}
	return Sequence(out...), nil
}

// scalars flattens the scalar members of a sequence. A lone scalar yields
// itself and mappings yield nothing.
func scalars(v Value) []Value {
	switch {
	case v.IsScalar():
		return []Value{v}
	case v.Kind() == KindSequence:
		var out []Value
		for _, e := range v.seq {
			out = append(out, scalars(e)...)
		}
		return out
	default:
		return nil
	}
}

func asSequence(v Value) Value {
	if v.Kind() != KindSequence {
		return Value{}
	}
	return v
}

func scalarKey(v Value) string {
	return v.Kind().String() + ":" + v.Text()
}

// inlineTable evaluates the inside of a one-line "{ ... }".
func (p *parser) inlineTable(ln line, inner []token) (Value, error) {
	parts, ok := splitTopLevel(inner)
	if !ok {
		return Value{}, p.errorf(ln, "unbalanced table literal")
	}
	var tb tableBuilder
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		if key, rhs, keyed := splitField(part); keyed {
			if len(rhs) == 0 {
				return Value{}, p.errorf(ln, fmt.Sprintf("missing value for %q", key))
			}
			v, err := p.resolve(ln, rhs)
			if err != nil {
				return Value{}, err
			}
			tb.set(key, v)
			continue
		}
		v, err := p.resolve(ln, part)
		if err != nil {
			return Value{}, err
		}
		tb.add(v)
	}
	return tb.value(), nil
}

func (p *parser) verbatim(ln line, toks []token) Value {
	text := strings.TrimSpace(ln.text[toks[0].pos:toks[len(toks)-1].end])
	p.diag(ln, DiagVerbatimFallback, fmt.Sprintf("expression %q kept as text", text))
	return String(text)
}

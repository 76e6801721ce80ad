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
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string // unquoted payload for strings
	pos  int    // byte offset of the token within its line
	end  int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) punct(s string) bool { return t.is(tokPunct, s) }

// line is one source line reduced to its tokens. Blank and comment-only lines
// never reach the parser.
type line struct {
	num  int
	text string
	toks []token
}

// lexer turns source text into a line stream. Block comments may span lines.
type lexer struct {
	lines   []string
	inBlock bool
}

func tokenize(src string) ([]line, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lx := &lexer{lines: strings.Split(src, "\n")}

	var out []line
	for i, raw := range lx.lines {
		toks, err := lx.scan(raw, i+1)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}
		out = append(out, line{num: i + 1, text: raw, toks: toks})
	}
	if lx.inBlock {
		return nil, &ParseError{Line: len(lx.lines), Reason: "unterminated block comment"}
	}
	return out, nil
}

func (lx *lexer) scan(s string, num int) ([]token, error) {
	var toks []token
	i := 0
	if lx.inBlock {
		end := strings.Index(s, "]]")
		if end < 0 {
			return nil, nil
		}
		lx.inBlock = false
		i = end + 2
	}

	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '-' && i+1 < len(s) && s[i+1] == '-':
			if strings.HasPrefix(s[i+2:], "[[") {
				end := strings.Index(s[i+4:], "]]")
				if end < 0 {
					lx.inBlock = true
					return toks, nil
				}
				i += 4 + end + 2
				continue
			}
			return toks, nil

		case c == '"' || c == '\'':
			text, n, ok := scanString(s[i:])
			if !ok {
				return nil, &ParseError{Line: num, Text: strings.TrimSpace(s), Reason: "unterminated string"}
			}
			toks = append(toks, token{kind: tokString, text: text, pos: i, end: i + n})
			i += n

		case isDigit(c) || (c == '-' && i+1 < len(s) && isDigit(s[i+1]) && negativeAllowed(toks)):
			j := i + 1
			for j < len(s) && (isDigit(s[j]) || s[j] == '.' || s[j] == 'e' || s[j] == 'E' ||
				((s[j] == '-' || s[j] == '+') && (s[j-1] == 'e' || s[j-1] == 'E'))) {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], pos: i, end: j})
			i = j

		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j], pos: i, end: j})
			i = j

		default:
			toks = append(toks, token{kind: tokPunct, text: string(c), pos: i, end: i + 1})
			i++
		}
	}
	return toks, nil
}

// scanString reads a quoted string starting at s[0] and returns its unescaped
// payload and the number of bytes consumed.
func scanString(s string) (string, int, bool) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		case c == quote:
			return b.String(), i + 1, true
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, false
}

// negativeAllowed reports whether a '-' at this point starts a number rather
// than acting as an operator.
func negativeAllowed(prev []token) bool {
	if len(prev) == 0 {
		return true
	}
	last := prev[len(prev)-1]
	if last.kind != tokPunct {
		return false
	}
	switch last.text {
	case ")", "]", "}":
		return false
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// trimSeparators drops trailing field separators from an expression.
func trimSeparators(toks []token) []token {
	for len(toks) > 0 {
		last := toks[len(toks)-1]
		if !last.punct(",") && !last.punct(";") {
			break
		}
		toks = toks[:len(toks)-1]
	}
	return toks
}

// splitTopLevel splits toks on commas that are not nested inside braces,
// brackets, or parentheses. A trailing empty element is dropped.
func splitTopLevel(toks []token) ([][]token, bool) {
	var parts [][]token
	depth, start := 0, 0
	for i, t := range toks {
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
			if depth < 0 {
				return nil, false
			}
		case ",", ";":
			if depth == 0 {
				parts = append(parts, toks[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	if start < len(toks) {
		parts = append(parts, toks[start:])
	}
	return parts, true
}

// closing returns the index of the token that closes the opener at toks[0].
func closing(toks []token) int {
	if len(toks) == 0 || toks[0].kind != tokPunct {
		return -1
	}
	open := toks[0].text
	var shut string
	switch open {
	case "{":
		shut = "}"
	case "(":
		shut = ")"
	case "[":
		shut = "]"
	default:
		return -1
	}
	depth := 0
	for i, t := range toks {
		if t.punct(open) {
			depth++
		} else if t.punct(shut) {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

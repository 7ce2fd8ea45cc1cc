// Copyright 2015 Google Inc. All rights reserved.
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

package cctoolchain

import "strings"

// A chunk is one piece of a parsed template: either a literal run of text
// or a reference to a variable by name. A template expands by concatenating
// the expansion of each of its chunks in order.
type chunk struct {
	literal  string
	variable string // "" for a literal chunk
}

func (c chunk) isVariable() bool { return c.variable != "" }

// template is a parsed %{name}/%% string, ready to be expanded repeatedly
// against different scopes without re-parsing.
type template struct {
	chunks    []chunk
	variables []string // names referenced by variable chunks, in order of first appearance
}

// parseTemplate parses s into a template. The grammar is: a run of
// ordinary text is literal; %{NAME} denotes a reference to variable NAME;
// %% denotes a literal '%'; any other '%' is a parse error. NAME is
// whatever appears between '{' and the next '}'; an empty NAME is a parse
// error. Parsing is one-pass and always terminates.
func parseTemplate(s string) (template, error) {
	var t template
	seen := map[string]bool{}

	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			t.chunks = append(t.chunks, chunk{literal: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '%' {
			literal.WriteByte(c)
			i++
			continue
		}

		// c == '%'
		if i+1 >= len(s) {
			return template{}, configErrorf("template %q: '%%' at byte %d not followed by '%%' or '{'", s, i)
		}
		switch s[i+1] {
		case '%':
			literal.WriteByte('%')
			i += 2
			continue
		case '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end == -1 {
				return template{}, configErrorf("template %q: unterminated '%%{' starting at byte %d", s, i)
			}
			name := s[i+2 : i+2+end]
			if name == "" {
				return template{}, configErrorf("template %q: empty variable name at byte %d", s, i)
			}
			flushLiteral()
			t.chunks = append(t.chunks, chunk{variable: name})
			if !seen[name] {
				seen[name] = true
				t.variables = append(t.variables, name)
			}
			i += 2 + end + 1
			continue
		default:
			return template{}, configErrorf("template %q: '%%' at byte %d not followed by '%%' or '{'", s, i)
		}
	}
	flushLiteral()

	return t, nil
}

// mustParseTemplate is for call sites that already validated s (for
// example a second parse of a template string known to have parsed once).
func mustParseTemplate(s string) template {
	t, err := parseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

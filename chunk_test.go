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

import (
	"testing"
)

func expandTemplateString(t *testing.T, s string, scope *VariableScope) string {
	tmpl, err := parseTemplate(s)
	if err != nil {
		t.Fatalf("parseTemplate(%q): %v", s, err)
	}
	got, err := expandTemplate(tmpl, scope, nil)
	if err != nil {
		t.Fatalf("expandTemplate(%q): %v", s, err)
	}
	return got
}

func TestParseTemplate_roundTrip(t *testing.T) {
	// templates with no variable references expand to themselves (after
	// %% -> % normalization, which is a no-op here).
	for _, s := range []string{"", "-f", "a/b/c.o", "no percent here"} {
		got := expandTemplateString(t, s, emptyScope())
		if got != s {
			t.Errorf("expand(%q) = %q; want %q", s, got, s)
		}
	}
}

func TestParseTemplate_escapeLaw(t *testing.T) {
	// %%{x} expands to literal %{x} whether or not x is bound.
	for _, scope := range []*VariableScope{emptyScope(), newScopeWithString(nil, "x", "bound")} {
		got := expandTemplateString(t, "%%{x}", scope)
		if got != "%{x}" {
			t.Errorf("expand(%%%%{x}) = %q; want %%{x}", got)
		}
	}
}

func TestParseTemplate_variableReference(t *testing.T) {
	scope := newScopeWithString(nil, "name", "bar")
	got := expandTemplateString(t, "-f %{name}", scope)
	if got != "-f bar" {
		t.Errorf("expand(-f %%{name}) = %q; want -f bar", got)
	}
}

func TestParseTemplate_errors(t *testing.T) {
	testCases := []string{
		"100%",
		"100% done",
		"%{}",
		"%{unterminated",
	}
	for _, s := range testCases {
		if _, err := parseTemplate(s); err == nil {
			t.Errorf("parseTemplate(%q): expected error, got nil", s)
		}
	}
}

func TestParseTemplate_variablesList(t *testing.T) {
	tmpl, err := parseTemplate("%{a}-%{b}-%{a}")
	if err != nil {
		t.Fatalf("parseTemplate: %v", err)
	}
	want := []string{"a", "b"}
	if len(tmpl.variables) != len(want) {
		t.Fatalf("variables = %v; want %v", tmpl.variables, want)
	}
	for i := range want {
		if tmpl.variables[i] != want[i] {
			t.Errorf("variables[%d] = %q; want %q", i, tmpl.variables[i], want[i])
		}
	}
}

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

// VariableScope is an immutable name -> VariableValue mapping with an
// optional parent. Lookup tries the scope's own bindings first, then its
// parent chain. Two disjoint sub-mappings exist within a single scope: bare
// strings (the cheap, common path) and arbitrarily typed values; bare
// strings are tried first.
type VariableScope struct {
	parent  *VariableScope
	strings map[string]string
	typed   map[string]VariableValue
}

// NewVariableScope builds a scope with the given parent and bindings.
// Either map may be nil.
func NewVariableScope(parent *VariableScope, strings map[string]string, typed map[string]VariableValue) *VariableScope {
	return &VariableScope{parent: parent, strings: strings, typed: typed}
}

func emptyScope() *VariableScope {
	return NewVariableScope(nil, nil, nil)
}

func newScopeWithString(parent *VariableScope, name, value string) *VariableScope {
	return NewVariableScope(parent, map[string]string{name: value}, nil)
}

// childScope returns a new scope with a single typed binding and parent as
// its parent, used to shadow an iterate_over variable with the current
// element inside a flag group.
func childScope(parent *VariableScope, name string, value VariableValue) *VariableScope {
	return NewVariableScope(parent, nil, map[string]VariableValue{name: value})
}

// getNonStructured looks up name as a single key, with no dotted field
// access: the scope's own strings, then its own typed values, then the
// parent chain. It never fails; a miss returns (nil, false).
func (s *VariableScope) getNonStructured(name string) (VariableValue, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if str, ok := scope.strings[name]; ok {
			return StringValue(str), true
		}
		if v, ok := scope.typed[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// getStructured resolves a dotted name by greedily matching the longest
// prefix that resolves as a non-structured lookup, then walking the
// remaining dot-separated suffixes as field accesses from outermost to
// innermost. It returns (nil, false, nil) if name has no dot,
// and (nil, false, err) if a field access along the way fails.
func (s *VariableScope) getStructured(name string, expander ArtifactExpander) (VariableValue, bool, error) {
	if !strings.Contains(name, ".") {
		return nil, false, nil
	}

	var fields []string
	prefix := name
	var value VariableValue
	var ok bool
	for {
		dot := strings.LastIndex(prefix, ".")
		fields = append(fields, prefix[dot+1:])
		prefix = prefix[:dot]
		value, ok = s.getNonStructured(prefix)
		if ok || !strings.Contains(prefix, ".") {
			break
		}
	}
	if !ok {
		return nil, false, nil
	}

	// fields was appended rightmost-first; walk it in reverse to apply
	// outermost field first.
	structPath := prefix
	for i := len(fields) - 1; i >= 0; i-- {
		field := fields[i]
		next, err := value.fieldValue(structPath, field, expander)
		if err != nil {
			return nil, false, err
		}
		if next == nil {
			return nil, false, expansionErrorf(
				"cannot expand variable '%s.%s': structure %s doesn't have a field named '%s'",
				structPath, field, structPath, field)
		}
		value = next
		structPath = structPath + "." + field
	}
	return value, true, nil
}

// Get resolves name against the scope, consulting expander for any
// LibraryToLink field access that needs to expand a tree artifact. It
// fails with an ExpansionError if name cannot be resolved.
func (s *VariableScope) Get(name string, expander ArtifactExpander) (VariableValue, error) {
	if v, ok := s.getNonStructured(name); ok {
		return v, nil
	}
	if v, ok, err := s.getStructured(name, expander); err != nil {
		return nil, err
	} else if ok {
		return v, nil
	}
	return nil, expansionErrorf("cannot find variable named '%s'", name)
}

// IsAvailable reports whether Get(name, expander) would succeed, without
// raising an error.
func (s *VariableScope) IsAvailable(name string, expander ArtifactExpander) bool {
	if _, ok := s.getNonStructured(name); ok {
		return true
	}
	v, ok, err := s.getStructured(name, expander)
	return err == nil && ok && v != nil
}

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

// expandTemplate concatenates t's chunks, resolving each variable chunk
// against scope. It requires a scalar (string or integer) view of the
// referenced variable.
func expandTemplate(t template, scope *VariableScope, expander ArtifactExpander) (string, error) {
	var b strings.Builder
	for _, c := range t.chunks {
		if !c.isVariable() {
			b.WriteString(c.literal)
			continue
		}
		v, err := scope.Get(c.variable, expander)
		if err != nil {
			return "", err
		}
		s, err := v.stringValue(c.variable)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// Flag is a single parsed flag or environment-value template.
type Flag struct {
	tmpl template
}

// NewFlag parses s into a Flag.
func NewFlag(s string) (*Flag, error) {
	t, err := parseTemplate(s)
	if err != nil {
		return nil, err
	}
	return &Flag{tmpl: t}, nil
}

func (f *Flag) value(scope *VariableScope, expander ArtifactExpander) (string, error) {
	return expandTemplate(f.tmpl, scope, expander)
}

// expand appends f's single expansion to out.
func (f *Flag) expand(scope *VariableScope, expander ArtifactExpander, out *[]string) error {
	s, err := f.value(scope, expander)
	if err != nil {
		return err
	}
	*out = append(*out, s)
	return nil
}

// FeatureSet is a with_feature predicate: the set of feature names that
// must all be enabled, and the set of feature names none of which may be
// enabled.
type FeatureSet struct {
	Features    []string
	NotFeatures []string
}

// isWithFeaturesSatisfied reports whether enabled satisfies at least one of
// sets, or there are no sets at all.
func isWithFeaturesSatisfied(sets []FeatureSet, enabled map[string]bool) bool {
	if len(sets) == 0 {
		return true
	}
	for _, fs := range sets {
		negative := false
		for _, nf := range fs.NotFeatures {
			if enabled[nf] {
				negative = true
				break
			}
		}
		if negative {
			continue
		}
		positive := true
		for _, f := range fs.Features {
			if !enabled[f] {
				positive = false
				break
			}
		}
		if positive {
			return true
		}
	}
	return false
}

// ExpandIfEqual names an expand_if_equal(variable, literal) gate.
type ExpandIfEqual struct {
	Variable string
	Value    string
}

// FlagGroupConfig declares a FlagGroup. Flags and Groups must not both be
// non-empty.
type FlagGroupConfig struct {
	Flags                 []string
	Groups                []*FlagGroup
	IterateOver           string
	ExpandIfAllAvailable  []string
	ExpandIfNoneAvailable []string
	ExpandIfTrue          string
	ExpandIfFalse         string
	ExpandIfEqual         *ExpandIfEqual
}

// FlagGroup is a gated list of flag templates or nested flag groups,
// optionally iterating over a sequence-typed variable.
type FlagGroup struct {
	flags  []*Flag
	groups []*FlagGroup

	iterateOver string

	expandIfAllAvailable  []string
	expandIfNoneAvailable []string
	expandIfTrue          string
	expandIfFalse         string
	expandIfEqual         *ExpandIfEqual
}

// NewFlagGroup validates and builds a FlagGroup from cfg.
func NewFlagGroup(cfg FlagGroupConfig) (*FlagGroup, error) {
	if len(cfg.Flags) > 0 && len(cfg.Groups) > 0 {
		return nil, expansionErrorf("a flag group must not contain both a flag and a nested flag group")
	}
	fg := &FlagGroup{
		groups:                cfg.Groups,
		iterateOver:           cfg.IterateOver,
		expandIfAllAvailable:  cfg.ExpandIfAllAvailable,
		expandIfNoneAvailable: cfg.ExpandIfNoneAvailable,
		expandIfTrue:          cfg.ExpandIfTrue,
		expandIfFalse:         cfg.ExpandIfFalse,
		expandIfEqual:         cfg.ExpandIfEqual,
	}
	for _, s := range cfg.Flags {
		f, err := NewFlag(s)
		if err != nil {
			return nil, err
		}
		fg.flags = append(fg.flags, f)
	}
	return fg, nil
}

func (fg *FlagGroup) gatesSatisfied(scope *VariableScope, expander ArtifactExpander) (bool, error) {
	for _, v := range fg.expandIfAllAvailable {
		if !scope.IsAvailable(v, expander) {
			return false, nil
		}
	}
	for _, v := range fg.expandIfNoneAvailable {
		if scope.IsAvailable(v, expander) {
			return false, nil
		}
	}
	if fg.expandIfTrue != "" {
		if !scope.IsAvailable(fg.expandIfTrue, expander) {
			return false, nil
		}
		v, err := scope.Get(fg.expandIfTrue, expander)
		if err != nil {
			return false, err
		}
		if !v.isTruthy() {
			return false, nil
		}
	}
	if fg.expandIfFalse != "" {
		if !scope.IsAvailable(fg.expandIfFalse, expander) {
			return false, nil
		}
		v, err := scope.Get(fg.expandIfFalse, expander)
		if err != nil {
			return false, err
		}
		if v.isTruthy() {
			return false, nil
		}
	}
	if fg.expandIfEqual != nil {
		if !scope.IsAvailable(fg.expandIfEqual.Variable, expander) {
			return false, nil
		}
		v, err := scope.Get(fg.expandIfEqual.Variable, expander)
		if err != nil {
			return false, err
		}
		s, err := v.stringValue(fg.expandIfEqual.Variable)
		if err != nil {
			return false, err
		}
		if s != fg.expandIfEqual.Value {
			return false, nil
		}
	}
	return true, nil
}

// expand evaluates fg's gates and, if satisfied, expands its flags or
// nested groups into out — once against scope, or once per element of
// iterateOver's sequence if set.
func (fg *FlagGroup) expand(scope *VariableScope, expander ArtifactExpander, out *[]string) error {
	ok, err := fg.gatesSatisfied(scope, expander)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if fg.iterateOver == "" {
		return fg.expandChildren(scope, expander, out)
	}

	seq, err := scope.Get(fg.iterateOver, expander)
	if err != nil {
		return err
	}
	elems, err := seq.sequenceValue(fg.iterateOver, expander)
	if err != nil {
		return err
	}
	for _, elem := range elems {
		child := childScope(scope, fg.iterateOver, elem)
		if err := fg.expandChildren(child, expander, out); err != nil {
			return err
		}
	}
	return nil
}

func (fg *FlagGroup) expandChildren(scope *VariableScope, expander ArtifactExpander, out *[]string) error {
	if len(fg.flags) > 0 {
		for _, f := range fg.flags {
			if err := f.expand(scope, expander, out); err != nil {
				return err
			}
		}
		return nil
	}
	for _, g := range fg.groups {
		if err := g.expand(scope, expander, out); err != nil {
			return err
		}
	}
	return nil
}

// FlagSetConfig declares a FlagSet. Leave Actions empty when the FlagSet
// belongs to an ActionConfig — NewActionConfig forces it to that config's
// action implicitly and rejects an explicit list.
type FlagSetConfig struct {
	Actions              []string
	ExpandIfAllAvailable []string
	WithFeatures         []FeatureSet
	FlagGroups           []*FlagGroup
}

// FlagSet is a gated list of flag groups applicable to a set of actions.
type FlagSet struct {
	actions              map[string]bool
	expandIfAllAvailable []string
	withFeatures         []FeatureSet
	groups               []*FlagGroup
}

// NewFlagSet builds a FlagSet for a feature. cfg.Actions is the explicit
// set of actions it applies to.
func NewFlagSet(cfg FlagSetConfig) (*FlagSet, error) {
	return newFlagSet(cfg, cfg.Actions)
}

func newFlagSet(cfg FlagSetConfig, actions []string) (*FlagSet, error) {
	actionSet := make(map[string]bool, len(actions))
	for _, a := range actions {
		actionSet[a] = true
	}
	return &FlagSet{
		actions:              actionSet,
		expandIfAllAvailable: cfg.ExpandIfAllAvailable,
		withFeatures:         cfg.WithFeatures,
		groups:               cfg.FlagGroups,
	}, nil
}

func (fs *FlagSet) expand(action string, scope *VariableScope, enabled map[string]bool, expander ArtifactExpander, out *[]string) error {
	for _, v := range fs.expandIfAllAvailable {
		if !scope.IsAvailable(v, expander) {
			return nil
		}
	}
	if !isWithFeaturesSatisfied(fs.withFeatures, enabled) {
		return nil
	}
	if !fs.actions[action] {
		return nil
	}
	for _, g := range fs.groups {
		if err := g.expand(scope, expander, out); err != nil {
			return err
		}
	}
	return nil
}

// EnvEntryConfig declares a single environment key/value-template pair.
type EnvEntryConfig struct {
	Key   string
	Value string
}

// EnvEntry is one (key, value-template) pair within an EnvSet.
type EnvEntry struct {
	key   string
	value *Flag
}

// NewEnvEntry parses cfg.Value into an EnvEntry.
func NewEnvEntry(cfg EnvEntryConfig) (*EnvEntry, error) {
	f, err := NewFlag(cfg.Value)
	if err != nil {
		return nil, err
	}
	return &EnvEntry{key: cfg.Key, value: f}, nil
}

// EnvSetConfig declares an EnvSet.
type EnvSetConfig struct {
	Actions      []string
	WithFeatures []FeatureSet
	Entries      []*EnvEntry
}

// EnvSet is a gated, ordered list of environment entries applicable to a
// set of actions.
type EnvSet struct {
	actions      map[string]bool
	withFeatures []FeatureSet
	entries      []*EnvEntry
}

// NewEnvSet builds an EnvSet from cfg.
func NewEnvSet(cfg EnvSetConfig) (*EnvSet, error) {
	actionSet := make(map[string]bool, len(cfg.Actions))
	for _, a := range cfg.Actions {
		actionSet[a] = true
	}
	return &EnvSet{
		actions:      actionSet,
		withFeatures: cfg.WithFeatures,
		entries:      cfg.Entries,
	}, nil
}

func (es *EnvSet) expand(action string, scope *VariableScope, enabled map[string]bool, expander ArtifactExpander, out map[string]string) error {
	if !es.actions[action] {
		return nil
	}
	if !isWithFeaturesSatisfied(es.withFeatures, enabled) {
		return nil
	}
	for _, e := range es.entries {
		v, err := e.value.value(scope, expander)
		if err != nil {
			return err
		}
		out[e.key] = v
	}
	return nil
}

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
	"sort"
	"strings"

	"github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// defaultResolveCacheSize is a reasonable default LRU capacity for the
// resolved-configuration cache.
const defaultResolveCacheSize = 10000

// BuildFeatureTableConfig is the input to BuildFeatureTable: a fully typed
// toolchain declaration, as an external loader would produce it
// from a parsed schema.
type BuildFeatureTableConfig struct {
	Features      []*Feature
	ActionConfigs []*ActionConfig

	// Implies, Requires, and Provides are the implies/requires/provides graph
	// keyed by selectable name. Requires is a disjunction of conjunctions:
	// a selectable is satisfied if it requires nothing, or if every name in
	// at least one of its inner slices is enabled.
	Implies  map[string][]string
	Requires map[string][][]string
	Provides map[string][]string

	// CacheSize bounds the resolved-configuration memoization cache. Zero
	// means defaultResolveCacheSize.
	CacheSize int
}

// FeatureTable is an immutable, indexed view of a toolchain's selectables
// and their implies/requires/provides graph, able to resolve a requested
// selectable-name set into a FeatureConfiguration.
type FeatureTable struct {
	selectables []Selectable
	byName      map[string]int

	features      map[string]*Feature
	actionConfigs map[string]*ActionConfig
	byAction      map[string]*ActionConfig

	implies    [][]int
	impliedBy  [][]int
	requires   [][][]int
	requiredBy [][]int
	provides   map[string][]int

	cache *lru.Cache[string, *resolveOutcome]
	group singleflight.Group
}

type resolveOutcome struct {
	fc  *FeatureConfiguration
	err error
}

// BuildFeatureTable validates cfg and builds the index-keyed graph the
// resolver walks. All name references in Implies/Requires/Provides must
// resolve to a declared Feature or ActionConfig.
func BuildFeatureTable(cfg BuildFeatureTableConfig) (*FeatureTable, error) {
	t := &FeatureTable{
		features:      map[string]*Feature{},
		actionConfigs: map[string]*ActionConfig{},
		byAction:      map[string]*ActionConfig{},
		byName:        map[string]int{},
		provides:      map[string][]int{},
	}

	for _, f := range cfg.Features {
		if _, dup := t.byName[f.Name()]; dup {
			return nil, configErrorf("duplicate selectable name %q", f.Name())
		}
		t.byName[f.Name()] = len(t.selectables)
		t.selectables = append(t.selectables, f)
		t.features[f.Name()] = f
	}
	for _, a := range cfg.ActionConfigs {
		if _, dup := t.byName[a.ConfigName()]; dup {
			return nil, configErrorf("duplicate selectable name %q", a.ConfigName())
		}
		if _, dup := t.byAction[a.ActionName()]; dup {
			return nil, configErrorf("duplicate action name %q among action configs", a.ActionName())
		}
		t.byName[a.ConfigName()] = len(t.selectables)
		t.selectables = append(t.selectables, a)
		t.actionConfigs[a.ConfigName()] = a
		t.byAction[a.ActionName()] = a
	}

	n := len(t.selectables)
	t.implies = make([][]int, n)
	t.impliedBy = make([][]int, n)
	t.requires = make([][][]int, n)
	t.requiredBy = make([][]int, n)

	resolveIndex := func(name string) (int, error) {
		idx, ok := t.byName[name]
		if !ok {
			return 0, configErrorf("undefined selectable %q referenced in implies/requires/provides", name)
		}
		return idx, nil
	}

	for name, implied := range cfg.Implies {
		idx, err := resolveIndex(name)
		if err != nil {
			return nil, err
		}
		for _, impliedName := range implied {
			j, err := resolveIndex(impliedName)
			if err != nil {
				return nil, err
			}
			t.implies[idx] = append(t.implies[idx], j)
			t.impliedBy[j] = append(t.impliedBy[j], idx)
		}
	}
	for name, groups := range cfg.Requires {
		idx, err := resolveIndex(name)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			indices := make([]int, 0, len(group))
			for _, reqName := range group {
				j, err := resolveIndex(reqName)
				if err != nil {
					return nil, err
				}
				indices = append(indices, j)
				t.requiredBy[j] = append(t.requiredBy[j], idx)
			}
			t.requires[idx] = append(t.requires[idx], indices)
		}
	}
	for symbol, names := range cfg.Provides {
		for _, name := range names {
			idx, err := resolveIndex(name)
			if err != nil {
				return nil, err
			}
			t.provides[symbol] = append(t.provides[symbol], idx)
		}
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultResolveCacheSize
	}
	cache, err := lru.New[string, *resolveOutcome](size)
	if err != nil {
		return nil, err
	}
	t.cache = cache

	return t, nil
}

func cacheKeyFor(requested []string) string {
	names := append([]string(nil), requested...)
	sort.Strings(names)
	return strings.Join(names, "\x00")
}

// Resolve computes the enabled selectable set for requested, memoizing by
// requested's contents (order-independent). Concurrent calls for the same
// set are deduplicated via a singleflight group, so the saturate/prune walk
// runs at most once per distinct request in flight.
func (t *FeatureTable) Resolve(requested []string) (*FeatureConfiguration, error) {
	key := cacheKeyFor(requested)
	if out, ok := t.cache.Get(key); ok {
		return out.fc, out.err
	}

	v, _, _ := t.group.Do(key, func() (interface{}, error) {
		fc, err := t.resolve(requested)
		out := &resolveOutcome{fc: fc, err: err}
		t.cache.Add(key, out)
		return out, nil
	})
	out := v.(*resolveOutcome)
	return out.fc, out.err
}

// resolve runs the saturate-then-prune selection algorithm.
func (t *FeatureTable) resolve(requested []string) (*FeatureConfiguration, error) {
	requestedIdx := map[int]bool{}
	for _, name := range requested {
		if idx, ok := t.byName[name]; ok {
			requestedIdx[idx] = true
		}
	}

	enabled := map[int]bool{}
	for idx := range requestedIdx {
		t.enableAllImpliedBy(idx, enabled)
	}

	t.pruneUnsatisfied(enabled, requestedIdx)

	var order []int
	for i := range t.selectables {
		if enabled[i] {
			order = append(order, i)
		}
	}

	if err := t.checkCollidingProvides(enabled); err != nil {
		return nil, err
	}

	return t.buildConfiguration(order), nil
}

// enableAllImpliedBy marks idx and everything reachable from it along
// implies edges as enabled.
func (t *FeatureTable) enableAllImpliedBy(idx int, enabled map[int]bool) {
	if enabled[idx] {
		return
	}
	enabled[idx] = true
	for _, j := range t.implies[idx] {
		t.enableAllImpliedBy(j, enabled)
	}
}

// pruneUnsatisfied repeatedly removes enabled selectables that are no
// longer satisfied, requeuing their implies/impliedBy/requiredBy neighbors
// whenever a removal might change their own satisfaction.
func (t *FeatureTable) pruneUnsatisfied(enabled map[int]bool, requestedIdx map[int]bool) {
	queue := make([]int, 0, len(enabled))
	for idx := range enabled {
		queue = append(queue, idx)
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if !enabled[idx] {
			continue
		}
		if t.isSatisfied(idx, enabled, requestedIdx) {
			continue
		}
		enabled[idx] = false
		queue = append(queue, t.impliedBy[idx]...)
		queue = append(queue, t.requiredBy[idx]...)
		queue = append(queue, t.implies[idx]...)
	}
}

func (t *FeatureTable) isSatisfied(idx int, enabled, requestedIdx map[int]bool) bool {
	directlyOrImplied := requestedIdx[idx]
	if !directlyOrImplied {
		for _, j := range t.impliedBy[idx] {
			if enabled[j] {
				directlyOrImplied = true
				break
			}
		}
	}
	if !directlyOrImplied {
		return false
	}
	if !t.allImplicationsEnabled(idx, enabled) {
		return false
	}
	return t.allRequirementsMet(idx, enabled)
}

func (t *FeatureTable) allImplicationsEnabled(idx int, enabled map[int]bool) bool {
	for _, j := range t.implies[idx] {
		if !enabled[j] {
			return false
		}
	}
	return true
}

func (t *FeatureTable) allRequirementsMet(idx int, enabled map[int]bool) bool {
	groups := t.requires[idx]
	if len(groups) == 0 {
		return true
	}
	for _, group := range groups {
		met := true
		for _, j := range group {
			if !enabled[j] {
				met = false
				break
			}
		}
		if met {
			return true
		}
	}
	return false
}

// checkCollidingProvides fails if more than one enabled selectable claims
// the same symbol.
func (t *FeatureTable) checkCollidingProvides(enabled map[int]bool) error {
	symbols := make([]string, 0, len(t.provides))
	for symbol := range t.provides {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		var providers []string
		for _, idx := range t.provides[symbol] {
			if enabled[idx] {
				providers = append(providers, t.selectables[idx].SelectableName())
			}
		}
		if len(providers) > 1 {
			return &CollidingProvidesError{Symbol: symbol, Selectables: providers}
		}
	}
	return nil
}

// buildConfiguration partitions the enabled indices, in declaration order,
// into the feature/action-config shapes FeatureConfiguration needs.
func (t *FeatureTable) buildConfiguration(order []int) *FeatureConfiguration {
	fc := &FeatureConfiguration{
		table:                t,
		enabledNames:         map[string]bool{},
		enabledActionConfigs: map[string]*ActionConfig{},
	}
	for _, idx := range order {
		s := t.selectables[idx]
		fc.enabledNames[s.SelectableName()] = true
		switch v := s.(type) {
		case *Feature:
			fc.enabledFeatures = append(fc.enabledFeatures, v)
		case *ActionConfig:
			fc.enabledActionConfigs[v.ActionName()] = v
		}
	}
	return fc
}

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

// Selectable is the common interface of Feature and ActionConfig: anything
// the resolver can enable or disable by name.
type Selectable interface {
	SelectableName() string
}

// Feature is a named, ordered bundle of flag-sets and env-sets that the
// resolver can turn on or off.
type Feature struct {
	name     string
	flagSets []*FlagSet
	envSets  []*EnvSet
}

// NewFeature builds a Feature. flagSets and envSets apply in the order
// given.
func NewFeature(name string, flagSets []*FlagSet, envSets []*EnvSet) *Feature {
	return &Feature{name: name, flagSets: flagSets, envSets: envSets}
}

func (f *Feature) SelectableName() string { return f.name }
func (f *Feature) Name() string           { return f.name }
func (f *Feature) FlagSets() []*FlagSet   { return f.flagSets }
func (f *Feature) EnvSets() []*EnvSet     { return f.envSets }

// ToolConfig declares a Tool.
type ToolConfig struct {
	Path                  string
	WithFeatures          []FeatureSet
	ExecutionRequirements []string
}

// Tool is one candidate executable for an action, gated by a with_feature
// predicate. ExecutionRequirements is opaque metadata (e.g. "requires-kvm")
// passed through unevaluated to the caller that actually launches the
// action; this package never interprets it.
type Tool struct {
	path                  string
	withFeatures          []FeatureSet
	executionRequirements []string
}

// NewTool builds a Tool from cfg.
func NewTool(cfg ToolConfig) *Tool {
	return &Tool{
		path:                  cfg.Path,
		withFeatures:          cfg.WithFeatures,
		executionRequirements: cfg.ExecutionRequirements,
	}
}

func (t *Tool) Path() string                    { return t.path }
func (t *Tool) ExecutionRequirements() []string { return t.executionRequirements }

// ActionConfigConfig declares an ActionConfig. Each entry of FlagSets must
// leave Actions empty — NewActionConfig forces it to ActionName and rejects
// an explicit list (a flag-set inside an action-config carries
// no actions list of its own).
type ActionConfigConfig struct {
	ConfigName string
	ActionName string
	Tools      []*Tool
	FlagSets   []FlagSetConfig
}

// ActionConfig is a named configuration for a single build action: the
// tools that can perform it and the flags always passed when it runs.
type ActionConfig struct {
	configName string
	actionName string
	tools      []*Tool
	flagSets   []*FlagSet
}

// NewActionConfig validates and builds an ActionConfig from cfg.
func NewActionConfig(cfg ActionConfigConfig) (*ActionConfig, error) {
	var sets []*FlagSet
	for _, fc := range cfg.FlagSets {
		if len(fc.Actions) > 0 {
			return nil, configErrorf(
				"action_config %s specifies actions. An action_config's flag sets automatically apply to the configured action. Thus, you must not specify action lists in an action_config's flag set.",
				cfg.ConfigName)
		}
		fs, err := newFlagSet(fc, []string{cfg.ActionName})
		if err != nil {
			return nil, err
		}
		sets = append(sets, fs)
	}
	return &ActionConfig{
		configName: cfg.ConfigName,
		actionName: cfg.ActionName,
		tools:      cfg.Tools,
		flagSets:   sets,
	}, nil
}

func (a *ActionConfig) SelectableName() string { return a.configName }
func (a *ActionConfig) ConfigName() string     { return a.configName }
func (a *ActionConfig) ActionName() string     { return a.actionName }
func (a *ActionConfig) FlagSets() []*FlagSet   { return a.flagSets }

// Tool returns the first tool in declared order whose with_feature
// predicate is satisfied by enabled. It fails if none matches.
func (a *ActionConfig) Tool(enabled map[string]bool) (*Tool, error) {
	for _, t := range a.tools {
		if isWithFeaturesSatisfied(t.withFeatures, enabled) {
			return t, nil
		}
	}
	return nil, configErrorf("action %s: no tool matches the currently enabled features", a.actionName)
}

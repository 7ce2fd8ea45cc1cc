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

// FeatureExpansion is one selectable's contribution to a command line,
// returned by FeatureConfiguration.PerFeatureExpansions.
type FeatureExpansion struct {
	Name  string
	Flags []string
}

// FeatureConfiguration is the resolved, queryable result of
// FeatureTable.Resolve: which selectables are enabled, and how to expand
// them for a given action.
type FeatureConfiguration struct {
	table *FeatureTable

	enabledNames         map[string]bool
	enabledFeatures      []*Feature
	enabledActionConfigs map[string]*ActionConfig
}

// IsEnabled reports whether the selectable named name (a Feature or an
// ActionConfig) is enabled in this configuration.
func (fc *FeatureConfiguration) IsEnabled(name string) bool {
	return fc.enabledNames[name]
}

// ActionIsConfigured reports whether some enabled ActionConfig configures
// action.
func (fc *FeatureConfiguration) ActionIsConfigured(action string) bool {
	_, ok := fc.enabledActionConfigs[action]
	return ok
}

// CommandLine expands action's command line: the action config's own
// flag-sets first (if the action is configured), then each enabled
// feature's flag-sets for action, in declaration order.
func (fc *FeatureConfiguration) CommandLine(action string, scope *VariableScope, expander ArtifactExpander) ([]string, error) {
	var out []string
	if ac, ok := fc.enabledActionConfigs[action]; ok {
		for _, fs := range ac.FlagSets() {
			if err := fs.expand(action, scope, fc.enabledNames, expander, &out); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range fc.enabledFeatures {
		for _, fs := range f.FlagSets() {
			if err := fs.expand(action, scope, fc.enabledNames, expander, &out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// PerFeatureExpansions is CommandLine's computation, but keeping each
// contributing selectable's flags in its own bucket, action config first.
func (fc *FeatureConfiguration) PerFeatureExpansions(action string, scope *VariableScope, expander ArtifactExpander) ([]FeatureExpansion, error) {
	var out []FeatureExpansion
	if ac, ok := fc.enabledActionConfigs[action]; ok {
		var flags []string
		for _, fs := range ac.FlagSets() {
			if err := fs.expand(action, scope, fc.enabledNames, expander, &flags); err != nil {
				return nil, err
			}
		}
		out = append(out, FeatureExpansion{Name: ac.ConfigName(), Flags: flags})
	}
	for _, f := range fc.enabledFeatures {
		var flags []string
		for _, fs := range f.FlagSets() {
			if err := fs.expand(action, scope, fc.enabledNames, expander, &flags); err != nil {
				return nil, err
			}
		}
		out = append(out, FeatureExpansion{Name: f.Name(), Flags: flags})
	}
	return out, nil
}

// EnvironmentVariables merges each enabled feature's matching env-sets for
// action, in declaration order; a later feature's key overwrites an
// earlier one's.
func (fc *FeatureConfiguration) EnvironmentVariables(action string, scope *VariableScope) (map[string]string, error) {
	out := map[string]string{}
	for _, f := range fc.enabledFeatures {
		for _, es := range f.EnvSets() {
			if err := es.expand(action, scope, fc.enabledNames, nil, out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ToolForAction returns the tool selected for action, failing if action is
// not configured by any enabled ActionConfig.
func (fc *FeatureConfiguration) ToolForAction(action string) (*Tool, error) {
	ac, ok := fc.enabledActionConfigs[action]
	if !ok {
		return nil, configErrorf("action %s is not configured by any enabled action config", action)
	}
	return ac.Tool(fc.enabledNames)
}

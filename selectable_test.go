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

import "testing"

func TestNewActionConfig_rejectsExplicitActions(t *testing.T) {
	_, err := NewActionConfig(ActionConfigConfig{
		ConfigName: "c-compile-config",
		ActionName: "c-compile",
		FlagSets: []FlagSetConfig{
			{Actions: []string{"c-compile"}, FlagGroups: nil},
		},
	})
	if err == nil {
		t.Fatal("NewActionConfig: expected error for a flag set declaring its own actions")
	}
}

func TestNewActionConfig_forcesImplicitAction(t *testing.T) {
	fg, err := NewFlagGroup(FlagGroupConfig{Flags: []string{"-c"}})
	if err != nil {
		t.Fatalf("NewFlagGroup: %v", err)
	}
	ac, err := NewActionConfig(ActionConfigConfig{
		ConfigName: "c-compile-config",
		ActionName: "c-compile",
		FlagSets: []FlagSetConfig{
			{FlagGroups: []*FlagGroup{fg}},
		},
	})
	if err != nil {
		t.Fatalf("NewActionConfig: %v", err)
	}

	var out []string
	if err := ac.FlagSets()[0].expand("c-compile", emptyScope(), nil, nil, &out); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != 1 || out[0] != "-c" {
		t.Errorf("expand() = %v; want [-c] for the config's own action", out)
	}

	out = nil
	if err := ac.FlagSets()[0].expand("c++-compile", emptyScope(), nil, nil, &out); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expand() = %v; want empty for an action other than the config's own", out)
	}
}

func TestActionConfig_toolSelection(t *testing.T) {
	gcc := NewTool(ToolConfig{Path: "/usr/bin/gcc"})
	clang := NewTool(ToolConfig{
		Path:         "/usr/bin/clang",
		WithFeatures: []FeatureSet{{Features: []string{"use_clang"}}},
	})
	ac, err := NewActionConfig(ActionConfigConfig{
		ConfigName: "c-compile-config",
		ActionName: "c-compile",
		Tools:      []*Tool{clang, gcc},
	})
	if err != nil {
		t.Fatalf("NewActionConfig: %v", err)
	}

	tool, err := ac.Tool(map[string]bool{"use_clang": true})
	if err != nil {
		t.Fatalf("Tool: %v", err)
	}
	if tool.Path() != "/usr/bin/clang" {
		t.Errorf("Tool() = %q; want clang when use_clang is enabled", tool.Path())
	}

	tool, err = ac.Tool(map[string]bool{})
	if err != nil {
		t.Fatalf("Tool: %v", err)
	}
	if tool.Path() != "/usr/bin/gcc" {
		t.Errorf("Tool() = %q; want the first unconditional tool as fallback", tool.Path())
	}
}

func TestActionConfig_toolSelectionFailsWithNoMatch(t *testing.T) {
	clang := NewTool(ToolConfig{
		Path:         "/usr/bin/clang",
		WithFeatures: []FeatureSet{{Features: []string{"use_clang"}}},
	})
	ac, err := NewActionConfig(ActionConfigConfig{
		ConfigName: "c-compile-config",
		ActionName: "c-compile",
		Tools:      []*Tool{clang},
	})
	if err != nil {
		t.Fatalf("NewActionConfig: %v", err)
	}
	if _, err := ac.Tool(map[string]bool{}); err == nil {
		t.Fatal("Tool: expected error when no tool's predicate is satisfied")
	}
}

func TestSelectableName(t *testing.T) {
	f := NewFeature("opt", nil, nil)
	ac, err := NewActionConfig(ActionConfigConfig{ConfigName: "c-compile-config", ActionName: "c-compile"})
	if err != nil {
		t.Fatalf("NewActionConfig: %v", err)
	}

	var selectables = []Selectable{f, ac}
	want := []string{"opt", "c-compile-config"}
	for i, s := range selectables {
		if got := s.SelectableName(); got != want[i] {
			t.Errorf("SelectableName() = %q; want %q", got, want[i])
		}
	}
}

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
	"reflect"
	"testing"
)

func buildTestTable(t *testing.T) *FeatureTable {
	t.Helper()

	commonFlags := mustFlagGroup(t, FlagGroupConfig{Flags: []string{"-Wall"}})
	commonFlagSet, err := NewFlagSet(FlagSetConfig{
		Actions:    []string{"c-compile"},
		FlagGroups: []*FlagGroup{commonFlags},
	})
	if err != nil {
		t.Fatalf("NewFlagSet: %v", err)
	}
	warnings := NewFeature("warnings", []*FlagSet{commonFlagSet}, nil)

	optFlags := mustFlagGroup(t, FlagGroupConfig{Flags: []string{"-O2"}})
	optFlagSet, err := NewFlagSet(FlagSetConfig{
		Actions:    []string{"c-compile"},
		FlagGroups: []*FlagGroup{optFlags},
	})
	if err != nil {
		t.Fatalf("NewFlagSet: %v", err)
	}
	optEnvEntry, err := NewEnvEntry(EnvEntryConfig{Key: "CFLAGS_MODE", Value: "opt"})
	if err != nil {
		t.Fatalf("NewEnvEntry: %v", err)
	}
	optEnvSet, err := NewEnvSet(EnvSetConfig{Actions: []string{"c-compile"}, Entries: []*EnvEntry{optEnvEntry}})
	if err != nil {
		t.Fatalf("NewEnvSet: %v", err)
	}
	opt := NewFeature("opt", []*FlagSet{optFlagSet}, []*EnvSet{optEnvSet})

	configFlags := mustFlagGroup(t, FlagGroupConfig{Flags: []string{"-c"}})
	ac, err := NewActionConfig(ActionConfigConfig{
		ConfigName: "c-compile-config",
		ActionName: "c-compile",
		Tools:      []*Tool{NewTool(ToolConfig{Path: "/usr/bin/gcc"})},
		FlagSets:   []FlagSetConfig{{FlagGroups: []*FlagGroup{configFlags}}},
	})
	if err != nil {
		t.Fatalf("NewActionConfig: %v", err)
	}

	table, err := BuildFeatureTable(BuildFeatureTableConfig{
		Features:      []*Feature{warnings, opt},
		ActionConfigs: []*ActionConfig{ac},
	})
	if err != nil {
		t.Fatalf("BuildFeatureTable: %v", err)
	}
	return table
}

func TestFeatureConfiguration_commandLineOrder(t *testing.T) {
	// the action config's own flags come first, then features in declaration order.
	table := buildTestTable(t)
	fc, err := table.Resolve([]string{"c-compile-config", "warnings", "opt"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	out, err := fc.CommandLine("c-compile", emptyScope(), nil)
	if err != nil {
		t.Fatalf("CommandLine: %v", err)
	}
	want := []string{"-c", "-Wall", "-O2"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("CommandLine() = %v; want %v", out, want)
	}
}

func TestFeatureConfiguration_perFeatureExpansions(t *testing.T) {
	table := buildTestTable(t)
	fc, err := table.Resolve([]string{"c-compile-config", "warnings", "opt"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	expansions, err := fc.PerFeatureExpansions("c-compile", emptyScope(), nil)
	if err != nil {
		t.Fatalf("PerFeatureExpansions: %v", err)
	}
	if len(expansions) != 3 {
		t.Fatalf("len(expansions) = %d; want 3", len(expansions))
	}
	if expansions[0].Name != "c-compile-config" || !reflect.DeepEqual(expansions[0].Flags, []string{"-c"}) {
		t.Errorf("expansions[0] = %+v; want config-first with [-c]", expansions[0])
	}
	if expansions[1].Name != "warnings" || !reflect.DeepEqual(expansions[1].Flags, []string{"-Wall"}) {
		t.Errorf("expansions[1] = %+v", expansions[1])
	}
	if expansions[2].Name != "opt" || !reflect.DeepEqual(expansions[2].Flags, []string{"-O2"}) {
		t.Errorf("expansions[2] = %+v", expansions[2])
	}
}

func TestFeatureConfiguration_environmentVariables(t *testing.T) {
	table := buildTestTable(t)
	fc, err := table.Resolve([]string{"warnings", "opt"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	env, err := fc.EnvironmentVariables("c-compile", emptyScope())
	if err != nil {
		t.Fatalf("EnvironmentVariables: %v", err)
	}
	if got, want := env["CFLAGS_MODE"], "opt"; got != want {
		t.Errorf("CFLAGS_MODE = %q; want %q", got, want)
	}
}

func TestFeatureConfiguration_actionIsConfigured(t *testing.T) {
	table := buildTestTable(t)

	fc, err := table.Resolve([]string{"c-compile-config"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !fc.ActionIsConfigured("c-compile") {
		t.Error("ActionIsConfigured(c-compile) = false; want true")
	}
	if fc.ActionIsConfigured("c++-compile") {
		t.Error("ActionIsConfigured(c++-compile) = true; want false")
	}

	fc, err = table.Resolve([]string{"warnings"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fc.ActionIsConfigured("c-compile") {
		t.Error("ActionIsConfigured(c-compile) = true; want false when the action config wasn't requested")
	}
}

func TestFeatureConfiguration_toolForAction(t *testing.T) {
	table := buildTestTable(t)
	fc, err := table.Resolve([]string{"c-compile-config"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	tool, err := fc.ToolForAction("c-compile")
	if err != nil {
		t.Fatalf("ToolForAction: %v", err)
	}
	if tool.Path() != "/usr/bin/gcc" {
		t.Errorf("ToolForAction().Path() = %q; want /usr/bin/gcc", tool.Path())
	}

	if _, err := fc.ToolForAction("c++-compile"); err == nil {
		t.Error("ToolForAction(c++-compile): expected error, action is not configured")
	}
}

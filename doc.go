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

// Package cctoolchain resolves which features and action configs of a C/C++
// toolchain are enabled for a requested set of names, and expands the
// resulting flag and environment templates into a concrete command line.
//
// A toolchain declares a set of selectables — features and action configs —
// that imply, require, and provide one another. Given the subset of
// selectables a caller requests, BuildFeatureTable's FeatureTable.Resolve
// method decides the full enabled set by propagating implications and then
// pruning anything whose requirements end up unmet:
//
//	table, err := cctoolchain.BuildFeatureTable(cctoolchain.BuildFeatureTableConfig{
//		Features:      features,
//		ActionConfigs: actionConfigs,
//		Implies:       implies,
//		Requires:      requires,
//		Provides:      provides,
//	})
//	config, err := table.Resolve([]string{"opt", "pic"})
//	args, err := config.CommandLine("c++-compile", scope, nil)
//
// Flags and environment entries are written as templates containing
// %{name} references into a hierarchical variable scope:
//
//	flags: ["-I%{include_dirs}"]
//
// Scopes nest: a flag group iterating over a sequence variable builds one
// child scope per element, shadowing the iteration variable for its
// children while leaving the parent scope's bindings visible to everything
// else. Variable values are typed — strings, integers, sequences,
// structures, and a few toolchain-specific shapes like library-to-link
// descriptors — and a dotted name such as %{lib.name} walks into a
// structure's fields.
//
// The package does no I/O and reads no configuration format itself; it
// operates entirely on Go values built by a caller (typically by decoding a
// protocol buffer toolchain definition, which is out of scope here). The
// only external collaborator it calls back into is an optional
// ArtifactExpander, used to expand a tree artifact into its constituent
// files when a LibraryToLink variable needs them.
package cctoolchain

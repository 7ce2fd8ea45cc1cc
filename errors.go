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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A ConfigurationError describes a problem in a toolchain's declaration:
// an unknown selectable referenced by implies/requires (BuildFeatureTable),
// a duplicate selectable or action name (BuildFeatureTable), a flag set
// inside an action config declaring its own actions (NewActionConfig), a
// template parse error (NewFlag and the constructors built on it), a
// missing artifact_name_pattern (ArtifactNameForCategory), or an
// unconfigured action or unmatched tool (ToolForAction, ActionConfig.Tool).
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string { return e.Err.Error() }
func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Err: errors.Wrapf(fmt.Errorf(format, args...), "toolchain configuration")}
}

// An ExpansionError describes a problem found while expanding a template
// against a VariableScope: a missing variable, a type mismatch between the
// view requested and the variable's actual type, a missing structure field,
// or a flag group declaring both flags and nested flag groups (reported
// when NewFlagGroup builds it).
// ExpansionErrors indicate a bug in the toolchain definition or the caller
// and are not recovered locally; they bubble out of CommandLine,
// EnvironmentVariables, and ArtifactNameForCategory.
type ExpansionError struct {
	Err error
}

func (e *ExpansionError) Error() string { return e.Err.Error() }
func (e *ExpansionError) Unwrap() error { return e.Err }

func expansionErrorf(format string, args ...interface{}) *ExpansionError {
	return &ExpansionError{Err: fmt.Errorf(format, args...)}
}

// A CollidingProvidesError is returned by FeatureTable.Resolve when two or
// more enabled selectables provide the same symbol.
type CollidingProvidesError struct {
	Symbol      string
	Selectables []string
}

func (e *CollidingProvidesError) Error() string {
	return fmt.Sprintf("symbol %s is provided by all of the following features: %s",
		e.Symbol, strings.Join(e.Selectables, " "))
}

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
	"strings"

	"github.com/google/cctoolchain/pathtools"
)

// ArtifactCategory names one of a closed enumeration of artifact kinds
// shared with the surrounding build system. This package only
// ever compares categories by string equality; the canonical list of valid
// values lives outside this engine. The constants below name the ones the
// original toolchain-feature schema defines, for callers that want them.
type ArtifactCategory string

const (
	StaticLibraryArtifact     ArtifactCategory = "STATIC_LIBRARY"
	AlwaysLinkLibraryArtifact ArtifactCategory = "ALWAYSLINK_STATIC_LIBRARY"
	DynamicLibraryArtifact    ArtifactCategory = "DYNAMIC_LIBRARY"
	InterfaceLibraryArtifact  ArtifactCategory = "INTERFACE_LIBRARY"
	ExecutableArtifact        ArtifactCategory = "EXECUTABLE"
	ObjectFileArtifact        ArtifactCategory = "OBJECT_FILE"
	PicObjectFileArtifact     ArtifactCategory = "PIC_OBJECT_FILE"
)

// ArtifactNamePatternConfig declares a per-category naming template.
type ArtifactNamePatternConfig struct {
	Category ArtifactCategory
	Template string
}

// ArtifactNamePattern maps an artifact category to the template used to
// derive a concrete file name for it.
type ArtifactNamePattern struct {
	category ArtifactCategory
	tmpl     template
}

// NewArtifactNamePattern parses cfg.Template and builds an
// ArtifactNamePattern.
func NewArtifactNamePattern(cfg ArtifactNamePatternConfig) (*ArtifactNamePattern, error) {
	t, err := parseTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}
	return &ArtifactNamePattern{category: cfg.Category, tmpl: t}, nil
}

// ArtifactNameTable resolves artifact categories to name patterns and
// expands them against an output name.
type ArtifactNameTable struct {
	byCategory map[ArtifactCategory]*ArtifactNamePattern
}

// NewArtifactNameTable indexes patterns by category. A later pattern for a
// category already seen replaces the earlier one.
func NewArtifactNameTable(patterns []*ArtifactNamePattern) *ArtifactNameTable {
	byCategory := make(map[ArtifactCategory]*ArtifactNamePattern, len(patterns))
	for _, p := range patterns {
		byCategory[p.category] = p
	}
	return &ArtifactNameTable{byCategory: byCategory}
}

// HasPatternForArtifactCategory reports whether category has a registered
// pattern.
func (t *ArtifactNameTable) HasPatternForArtifactCategory(category ArtifactCategory) bool {
	_, ok := t.byCategory[category]
	return ok
}

// ArtifactNameForCategory expands category's pattern against outputName,
// deriving base_name and output_directory from it, and stripping a single
// leading '/' from the result if present.
func (t *ArtifactNameTable) ArtifactNameForCategory(category ArtifactCategory, outputName string) (string, error) {
	p, ok := t.byCategory[category]
	if !ok {
		return "", configErrorf("no artifact name pattern registered for category %s", category)
	}

	scope := NewVariableScope(nil, map[string]string{
		"output_name":      outputName,
		"base_name":        pathtools.BaseName(outputName),
		"output_directory": pathtools.OutputDirectory(outputName),
	}, nil)

	name, err := expandTemplate(p.tmpl, scope, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(name, "/"), nil
}

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
	"strconv"
)

// Artifact is the minimal view of a build artifact this package needs: a
// path that can be substituted into a flag. The concrete artifact type
// lives in the surrounding build system; this interface is the boundary
// contract.
type Artifact interface {
	Path() string
}

// ArtifactExpander expands a tree artifact into the individual files it
// contains. It is an external collaborator: the engine calls it
// synchronously while expanding a LibraryToLink's object_files field and
// does not retry or time it out.
type ArtifactExpander interface {
	Expand(tree Artifact) ([]Artifact, error)
}

// VariableValue is a typed, immutable value a VariableScope can hold.
// Exactly one of String, Integer, StringSequence, Sequence, Structure,
// StructureSequence, LazyStringSequence, or LibraryToLink values
// implements it.
type VariableValue interface {
	typeName() string
	isTruthy() bool
	stringValue(name string) (string, error)
	sequenceValue(name string, expander ArtifactExpander) ([]VariableValue, error)
	fieldValue(name, field string, expander ArtifactExpander) (VariableValue, error)
}

func errNotString(name, typeName string) error {
	return expansionErrorf("cannot expand variable '%s': expected string, found %s", name, typeName)
}

func errNotSequence(name, typeName string) error {
	return expansionErrorf("cannot expand variable '%s': expected sequence, found %s", name, typeName)
}

func errNotStructure(name, field, typeName string) error {
	return expansionErrorf("cannot expand variable '%s.%s': variable '%s' is %s, expected structure",
		name, field, name, typeName)
}

// StringValue is a scalar string. It is truthy iff non-empty.
type StringValue string

func NewStringValue(s string) VariableValue { return StringValue(s) }

func (v StringValue) typeName() string { return "string" }
func (v StringValue) isTruthy() bool   { return v != "" }
func (v StringValue) stringValue(name string) (string, error) { return string(v), nil }
func (v StringValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	return nil, errNotSequence(name, v.typeName())
}
func (v StringValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// IntegerValue is a scalar integer. Its string view is its decimal
// representation; it is truthy iff nonzero.
type IntegerValue int

func NewIntegerValue(n int) VariableValue { return IntegerValue(n) }

func (v IntegerValue) typeName() string { return "integer" }
func (v IntegerValue) isTruthy() bool   { return v != 0 }
func (v IntegerValue) stringValue(name string) (string, error) {
	return strconv.Itoa(int(v)), nil
}
func (v IntegerValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	return nil, errNotSequence(name, v.typeName())
}
func (v IntegerValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// StringSequenceValue is a sequence of plain strings. Each element is
// exposed on iteration as a StringValue leaf. Truthy iff non-empty.
type StringSequenceValue []string

func NewStringSequenceValue(xs []string) VariableValue { return StringSequenceValue(xs) }

func (v StringSequenceValue) typeName() string { return "sequence" }
func (v StringSequenceValue) isTruthy() bool   { return len(v) != 0 }
func (v StringSequenceValue) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v StringSequenceValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	out := make([]VariableValue, len(v))
	for i, s := range v {
		out[i] = StringValue(s)
	}
	return out, nil
}
func (v StringSequenceValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// SequenceValue is a sequence of arbitrary VariableValues, truthy iff
// non-empty, matching every other sequence variant here.
type SequenceValue []VariableValue

func NewSequenceValue(xs []VariableValue) VariableValue { return SequenceValue(xs) }

func (v SequenceValue) typeName() string { return "sequence" }
func (v SequenceValue) isTruthy() bool   { return len(v) != 0 }
func (v SequenceValue) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v SequenceValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	return []VariableValue(v), nil
}
func (v SequenceValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// StructureValue is a named bag of fields. Truthy iff non-empty.
type StructureValue map[string]VariableValue

func NewStructureValue(fields map[string]VariableValue) VariableValue { return StructureValue(fields) }

func (v StructureValue) typeName() string { return "structure" }
func (v StructureValue) isTruthy() bool   { return len(v) != 0 }
func (v StructureValue) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v StructureValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	return nil, errNotSequence(name, v.typeName())
}
func (v StructureValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	value, ok := v[field]
	if !ok {
		return nil, nil
	}
	return value, nil
}

// StructureSequenceValue is a sequence of structures, represented as a list
// of field maps rather than a list of StructureValue to avoid per-element
// wrapper overhead; StructureValues are materialized on iteration.
type StructureSequenceValue []map[string]VariableValue

func NewStructureSequenceValue(xs []map[string]VariableValue) VariableValue {
	return StructureSequenceValue(xs)
}

func (v StructureSequenceValue) typeName() string { return "sequence" }
func (v StructureSequenceValue) isTruthy() bool   { return len(v) != 0 }
func (v StructureSequenceValue) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v StructureSequenceValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	out := make([]VariableValue, len(v))
	for i, fields := range v {
		out[i] = StructureValue(fields)
	}
	return out, nil
}
func (v StructureSequenceValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// LazyStringSequenceValue is a string sequence materialized on first
// demand by a pure supplier, then cached. The supplier must not capture
// anything whose lifetime is shorter than the VariableScope it is bound
// into.
type LazyStringSequenceValue struct {
	supplier func() ([]string, error)
	cached   []string
	err      error
	done     bool
}

func NewLazyStringSequenceValue(supplier func() ([]string, error)) VariableValue {
	return &LazyStringSequenceValue{supplier: supplier}
}

func (v *LazyStringSequenceValue) materialize() ([]string, error) {
	if !v.done {
		v.cached, v.err = v.supplier()
		v.done = true
	}
	return v.cached, v.err
}

func (v *LazyStringSequenceValue) typeName() string { return "sequence" }
func (v *LazyStringSequenceValue) isTruthy() bool {
	xs, err := v.materialize()
	return err == nil && len(xs) != 0
}
func (v *LazyStringSequenceValue) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v *LazyStringSequenceValue) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	xs, err := v.materialize()
	if err != nil {
		return nil, err
	}
	out := make([]VariableValue, len(xs))
	for i, s := range xs {
		out[i] = StringValue(s)
	}
	return out, nil
}
func (v *LazyStringSequenceValue) fieldValue(name, field string, _ ArtifactExpander) (VariableValue, error) {
	return nil, errNotStructure(name, field, v.typeName())
}

// LibraryToLinkType enumerates the kinds of library a LibraryToLink value
// can describe.
type LibraryToLinkType string

const (
	ObjectFile              LibraryToLinkType = "object_file"
	ObjectFileGroup         LibraryToLinkType = "object_file_group"
	InterfaceLibrary        LibraryToLinkType = "interface_library"
	StaticLibrary           LibraryToLinkType = "static_library"
	DynamicLibrary          LibraryToLinkType = "dynamic_library"
	VersionedDynamicLibrary LibraryToLinkType = "versioned_dynamic_library"
)

// LibraryToLink is a specialized structure describing one library to pass
// to the linker. Exactly one of ObjectFiles or Directory is meaningful,
// depending on Type: for ObjectFileGroup, object_files is computed either
// from the explicit ObjectFiles list or, if that is empty, by expanding
// Directory via an ArtifactExpander (falling back to Directory's own path
// if no expander is available). Name is unavailable (the "name" field
// access returns absent) when Type is ObjectFileGroup.
type LibraryToLink struct {
	Name           string
	Directory      Artifact
	ObjectFiles    []string
	IsWholeArchive bool
	Type           LibraryToLinkType
}

func NewDynamicLibraryToLink(name string) *LibraryToLink {
	return &LibraryToLink{Name: name, Type: DynamicLibrary}
}

func NewVersionedDynamicLibraryToLink(name string) *LibraryToLink {
	return &LibraryToLink{Name: name, Type: VersionedDynamicLibrary}
}

func NewInterfaceLibraryToLink(name string) *LibraryToLink {
	return &LibraryToLink{Name: name, Type: InterfaceLibrary}
}

func NewStaticLibraryToLink(name string, isWholeArchive bool) *LibraryToLink {
	return &LibraryToLink{Name: name, IsWholeArchive: isWholeArchive, Type: StaticLibrary}
}

func NewObjectFileToLink(name string, isWholeArchive bool) *LibraryToLink {
	return &LibraryToLink{Name: name, IsWholeArchive: isWholeArchive, Type: ObjectFile}
}

func NewObjectFileGroupToLink(objects []string, isWholeArchive bool) *LibraryToLink {
	return &LibraryToLink{ObjectFiles: objects, IsWholeArchive: isWholeArchive, Type: ObjectFileGroup}
}

func NewObjectDirectoryToLink(directory Artifact, isWholeArchive bool) *LibraryToLink {
	return &LibraryToLink{Directory: directory, IsWholeArchive: isWholeArchive, Type: ObjectFileGroup}
}

const libraryToLinkTypeName = "structure (LibraryToLink)"

func (v *LibraryToLink) typeName() string { return libraryToLinkTypeName }
func (v *LibraryToLink) isTruthy() bool   { return true }
func (v *LibraryToLink) stringValue(name string) (string, error) {
	return "", errNotString(name, v.typeName())
}
func (v *LibraryToLink) sequenceValue(name string, _ ArtifactExpander) ([]VariableValue, error) {
	return nil, errNotSequence(name, v.typeName())
}

func (v *LibraryToLink) fieldValue(name, field string, expander ArtifactExpander) (VariableValue, error) {
	switch {
	case field == "name" && v.Type != ObjectFileGroup:
		return StringValue(v.Name), nil
	case field == "object_files" && v.Type == ObjectFileGroup:
		return v.expandObjectFiles(expander)
	case field == "type":
		return StringValue(v.Type), nil
	case field == "is_whole_archive":
		if v.IsWholeArchive {
			return IntegerValue(1), nil
		}
		return IntegerValue(0), nil
	default:
		return nil, nil
	}
}

func (v *LibraryToLink) expandObjectFiles(expander ArtifactExpander) (VariableValue, error) {
	if len(v.ObjectFiles) > 0 {
		return StringSequenceValue(v.ObjectFiles), nil
	}
	if v.Directory == nil {
		return StringSequenceValue(nil), nil
	}
	if expander == nil {
		return StringSequenceValue([]string{v.Directory.Path()}), nil
	}
	artifacts, err := expander.Expand(v.Directory)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path()
	}
	return StringSequenceValue(paths), nil
}

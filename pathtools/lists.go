// Copyright 2014 Google Inc. All rights reserved.
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

// Package pathtools provides the small set of path-splitting helpers the
// artifact name resolver needs to turn an output path into the base_name and
// output_directory variables it expands artifact_name_pattern templates
// against.
package pathtools

import (
	"path"
	"strings"
)

// BaseName returns the final path component of outputName, matching the
// PathFragment.getBaseName() convention: everything after the last slash,
// including any extension.
func BaseName(outputName string) string {
	clean := strings.TrimSuffix(outputName, "/")
	if clean == "" {
		return ""
	}
	return path.Base(clean)
}

// OutputDirectory returns the parent directory of outputName, or "" if
// outputName has no directory component. Unlike path.Dir, a path with no
// slash yields "" rather than ".".
func OutputDirectory(outputName string) string {
	dir := path.Dir(strings.TrimSuffix(outputName, "/"))
	if dir == "." {
		return ""
	}
	return dir
}

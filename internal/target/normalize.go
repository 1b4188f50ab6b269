// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"net/url"
	"path/filepath"
)

// Normalize converts a grammar or input target into the form expected by the
// file system implementations.
//
// Targets may be any valid URI or file path. File paths and file URIs become
// absolute paths rooted at "/" so that each search root resolves them relative
// to itself. Other URIs are returned unchanged for some other FileSystem to
// handle.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		return filepath.Join("/", target)
	}
	return filepath.Clean(target)
}

// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"path/filepath"

	"gopkg.microglot.org/peg.go/internal/fs"
	"gopkg.microglot.org/peg.go/internal/idl"
)

// NewDefaultFS searches the shared grammar directories of the platform, with
// any PEGC_PATH entries first.
func NewDefaultFS(lookup func(string) (string, bool)) (idl.FileSystem, error) {
	roots := append(getSearchPath(lookup), getDefaultRoots(lookup)...)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			return nil, errAbs
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}

func getSearchPath(lookup func(string) (string, bool)) []string {
	v, ok := lookup("PEGC_PATH")
	if !ok || v == "" {
		return nil
	}
	var roots []string
	for _, root := range filepath.SplitList(v) {
		if root != "" {
			roots = append(roots, root)
		}
	}
	return roots
}

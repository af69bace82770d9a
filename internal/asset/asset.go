// Package asset defines the identity of file-like build inputs and outputs.
package asset

import (
	"fmt"
	"path"
	"strings"
)

// ID identifies a file-like unit by the package that owns it and its
// path relative to the package root. Paths always use forward slashes.
// IDs are plain values; two IDs are equal iff both components are equal.
type ID struct {
	Package string
	Path    string
}

// New constructs an asset ID.
func New(pkg, p string) ID {
	return ID{Package: pkg, Path: p}
}

// Parse reads the canonical "package|path" form produced by String.
func Parse(s string) (ID, error) {
	pkg, p, ok := strings.Cut(s, "|")
	if !ok || pkg == "" || p == "" {
		return ID{}, fmt.Errorf("invalid asset id %q: expected package|path", s)
	}
	return ID{Package: pkg, Path: p}, nil
}

// Extension returns the file extension of the asset path, including the dot.
func (id ID) Extension() string {
	return path.Ext(id.Path)
}

// ChangeExtension returns a copy of the ID with the path extension replaced.
func (id ID) ChangeExtension(ext string) ID {
	p := strings.TrimSuffix(id.Path, path.Ext(id.Path)) + ext
	return ID{Package: id.Package, Path: p}
}

func (id ID) String() string {
	return id.Package + "|" + id.Path
}

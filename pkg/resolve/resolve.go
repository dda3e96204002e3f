// Package resolve turns a template reference into a full template path.
// Resolution is string manipulation only: it never touches the filesystem.
package resolve

import (
	"path/filepath"
	"strings"
)

// Resolver computes the full path of a template reference.
type Resolver interface {
	Resolve(ref, path, suffix string) string
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ref, path, suffix string) string

// Resolve calls f(ref, path, suffix).
func (f ResolverFunc) Resolve(ref, path, suffix string) string {
	return f(ref, path, suffix)
}

// Default is the resolver used when none is configured.
var Default Resolver = ResolverFunc(Resolve)

// Resolve prepends path unless ref is already absolute, and appends suffix
// unless ref already ends with it. Both steps are decided on ref alone, so
// they can be skipped independently. A separator is added between path and
// ref when path does not end with one.
func Resolve(ref, path, suffix string) string {
	out := ref
	if path != "" && !IsAbs(ref) {
		if strings.HasSuffix(path, "/") {
			out = path + ref
		} else {
			out = path + "/" + ref
		}
	}
	if suffix != "" && !strings.HasSuffix(ref, suffix) {
		out += suffix
	}
	return out
}

// IsAbs reports whether ref is rooted and must not receive the base path.
func IsAbs(ref string) bool {
	return strings.HasPrefix(ref, "/") || filepath.IsAbs(ref)
}

package model

import (
	"strings"
)

const (
	// ClassNameProperty holds the fully qualified type identifier of a stored object
	ClassNameProperty = "class.name"

	// ClassVersionProperty holds the version of the stored type, at write time
	ClassVersionProperty = "class.version"

	// ClassBodyProperty names the body member, when the stored object has one.
	// Empty content with this property set is an empty body, not an absent one.
	ClassBodyProperty = "class.body"

	// FieldPropertyPrefix namespaces member properties
	FieldPropertyPrefix = "field."

	pathSeparator = "/"
)

// FieldProperty yields the property name holding some member field
func FieldProperty(fieldName string) string {
	return FieldPropertyPrefix + fieldName
}

// CleanPath normalizes a repository path, relative to the root, "/" separated.
//
// Leading and trailing separators are dropped. Empty, "." and ".." segments,
// as well as NUL characters, are rejected.
func CleanPath(p string) (string, error) {
	trimmed := strings.Trim(p, pathSeparator)
	if trimmed == "" {
		return "", ErrInvalidPath.WrapMessage("empty path %q", p)
	}
	if strings.ContainsRune(trimmed, 0) {
		return "", ErrInvalidPath.WrapMessage("path %q contains NUL", p)
	}
	for _, segment := range strings.Split(trimmed, pathSeparator) {
		switch segment {
		case "", ".", "..":
			return "", ErrInvalidPath.WrapMessage("path %q has an invalid segment %q", p, segment)
		}
	}
	return trimmed, nil
}

// Ancestors yields the parent directories of a clean path, shallowest first.
// The path itself is excluded: Ancestors("a/b/c") is ["a", "a/b"].
func Ancestors(p string) []string {
	parts := strings.Split(p, pathSeparator)
	ancestors := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		ancestors = append(ancestors, strings.Join(parts[:i], pathSeparator))
	}
	return ancestors
}

// Parent yields the parent directory of a clean path, "" for the root
func Parent(p string) string {
	i := strings.LastIndex(p, pathSeparator)
	if i < 0 {
		return ""
	}
	return p[:i]
}

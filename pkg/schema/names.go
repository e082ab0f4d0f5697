package schema

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	getterPrefix = "Get"
	setterPrefix = "Set"
)

// FieldName derives the stored field name from an accessor name:
// a "Get" prefix followed by an upper-case letter is stripped, and the first letter is lower-cased.
//
// It returns "" for malformed accessor names.
func FieldName(accessor string) string {
	if !token.IsIdentifier(accessor) {
		return ""
	}
	base := accessor
	if rest := strings.TrimPrefix(base, getterPrefix); rest != base {
		if next, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(next) {
			base = rest
		}
	}
	r, size := utf8.DecodeRuneInString(base)
	return string(unicode.ToLower(r)) + base[size:]
}

// MutatorName yields the name of the mutator matching an accessor, e.g. "SetTitle" for "GetTitle"
func MutatorName(accessor string) string {
	field := FieldName(accessor)
	if field == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(field)
	return setterPrefix + string(unicode.ToUpper(r)) + field[size:]
}

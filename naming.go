package gorecord

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Camelize turns a snake_case keyword into a type name: the first character
// and every character following a run of underscores is upper-cased and the
// underscores are dropped ("nested_class_1" -> "NestedClass1").
func Camelize(s string) string {
	b := strings.Builder{}
	b.Grow(len(s))
	upper := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package ident holds identifier helpers shared by the model and the diff
// engine: case conversion, case folding and content hashing.
package ident

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rules is the inflection ruleset used for phpName and plural forms.
var rules = inflect.NewDefaultRuleset()

// Snake converts a name to snake_case. Existing underscores are kept and
// runs of upper-case letters are treated as one word.
//
//	Snake("BookAuthor") // book_author
//	Snake("HTTPCode")   // http_code
//	Snake("Foo_Table")  // foo_table
func Snake(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		if r == '-' || r == ' ' {
			r = '_'
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Camelize converts a name to its UpperCamelCase form, e.g. "book_author"
// becomes "BookAuthor".
func Camelize(s string) string {
	if s == "" {
		return s
	}
	return rules.Camelize(s)
}

// Pluralize returns the plural form of a name.
func Pluralize(s string) string {
	if s == "" {
		return s
	}
	return rules.Pluralize(s)
}

// Singularize returns the singular form of a name.
func Singularize(s string) string {
	if s == "" {
		return s
	}
	return rules.Singularize(s)
}

// Lower folds an identifier to lower case. A new Caser is created per call
// because cases.Caser is stateful.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Upper folds an identifier to upper case.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Equal compares two identifiers, optionally ignoring case.
func Equal(a, b string, caseInsensitive bool) bool {
	if caseInsensitive {
		return Lower(a) == Lower(b)
	}
	return a == b
}

// ShortHash returns the first six hex characters of the md5 digest of the
// lower-cased, colon-joined parts. It is used for content-stable names only.
func ShortHash(parts ...string) string {
	sum := md5.Sum([]byte(Lower(strings.Join(parts, ":"))))
	return hex.EncodeToString(sum[:])[:6]
}

// Truncate cuts name to at most max characters, keeping the leftmost ones.
// A non-positive max leaves the name untouched.
func Truncate(name string, max int) string {
	if max <= 0 || utf8.RuneCountInString(name) <= max {
		return name
	}
	return string([]rune(name)[:max])
}

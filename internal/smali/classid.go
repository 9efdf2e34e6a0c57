// Package smali implements the small part of the smali listing grammar the
// patch engine needs: method declarations, instructions, labels and class
// identifiers. It is deliberately line oriented; no full parser is built.
package smali

import "strings"

// ListingExtension is the file extension baksmali gives every class listing.
const ListingExtension = ".smali"

// NormalizeClassID turns any spelling of a class name into the canonical
// slash form used as ClassIndex key.
//
// Accepted spellings: android.util.Foo, android/util/Foo, android/util.Foo,
// android.util.Foo$Bar, android/util/Foo.smali and Landroid/util/Foo;.
func NormalizeClassID(id string) string {
	s := strings.TrimSpace(id)
	s = strings.TrimSuffix(s, ListingExtension)

	if len(s) > 2 && s[0] == 'L' && s[len(s)-1] == ';' {
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.ReplaceAll(s, ".", "/")

	return strings.Trim(s, "/")
}

// ClassBaseName returns the last path element of a normalized class id,
// including any $Inner suffix.
func ClassBaseName(id string) string {
	canonical := NormalizeClassID(id)
	if i := strings.LastIndexByte(canonical, '/'); i >= 0 {
		return canonical[i+1:]
	}

	return canonical
}

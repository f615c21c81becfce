// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package naming implements the identifier conversions shared by every
// generator package: the snake_case rule used for filenames, table names,
// and column names (spec.md §6), and the PascalCase rule used for Rust
// type and enum-variant names.
package naming

import "strings"

// Snake converts an identifier to snake_case: lower-case letters pass
// through; upper-case letters become lower-case with a preceding
// underscore unless at position zero or immediately after another
// underscore; digits pass through unchanged.
func Snake(s string) string {
	var b strings.Builder
	prevUnderscore := true // position zero behaves as "after an underscore"
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if !prevUnderscore {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevUnderscore = false
		case r == '_':
			b.WriteRune('_')
			prevUnderscore = true
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return b.String()
}

// Pascal converts a snake_case or mixed-case identifier to PascalCase, the
// convention used for Rust struct, enum, and variant names. A segment with
// no lower-case letters (as in SCREAMING_SNAKE enum values) is lower-cased
// before its first letter is capitalized.
func Pascal(s string) string {
	var b strings.Builder
	segs := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	for _, seg := range segs {
		if strings.ToUpper(seg) == seg {
			seg = strings.ToLower(seg)
		}
		rs := []rune(seg)
		b.WriteRune(toUpper(rs[0]))
		b.WriteString(string(rs[1:]))
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

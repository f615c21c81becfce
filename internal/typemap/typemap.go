// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typemap implements the ordered proto-field-to-Rust-type mapping
// described in spec.md §4.2: repeated fields become sequences, embedded
// messages become nested structs, non-embedded messages become relation
// placeholders carrying no column of their own, enums resolve to their
// emitted Rust type, and everything else falls back to a fixed scalar
// table, all subject to an explicit column_type override and a final
// nullability pass.
package typemap

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/codegen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

// Mapping is the resolved type of one message field.
type Mapping struct {
	// RustType is the Rust type to use for this field's column, already
	// wrapped in Option<> if Nullable and in Vec<> if Repeated.
	RustType string
	// Nullable reports whether the column should be Option<T>.
	Nullable bool
	// Repeated reports whether the field is `repeated` (mapped to a
	// sequence rather than a single column).
	Repeated bool
	// IsRelation reports whether this field is a non-embedded message
	// reference: it produces no column of its own and is handled
	// instead by internal/relation.
	IsRelation bool
	// IsEmbedded reports whether this field is an embedded message,
	// emitted as a nested struct field rather than a relation.
	IsEmbedded bool
	// EnumRustType, when non-empty, is the Rust type name of the emitted
	// enum this field refers to.
	EnumRustType string
}

var scalarTable = map[protoreflect.Kind]string{
	protoreflect.DoubleKind:   "f64",
	protoreflect.FloatKind:    "f32",
	protoreflect.Int32Kind:    "i32",
	protoreflect.Int64Kind:    "i64",
	protoreflect.Uint32Kind:   "u32",
	protoreflect.Uint64Kind:   "u64",
	protoreflect.Sint32Kind:   "i32",
	protoreflect.Sint64Kind:   "i64",
	protoreflect.Fixed32Kind:  "u32",
	protoreflect.Fixed64Kind:  "u64",
	protoreflect.Sfixed32Kind: "i32",
	protoreflect.Sfixed64Kind: "i64",
	protoreflect.BoolKind:     "bool",
	protoreflect.StringKind:   "String",
	protoreflect.BytesKind:    "Vec<u8>",
}

// Map resolves the type of a field. enumRustName looks up the Rust type
// name already assigned to an enum (by internal/enumgen); it may be
// called for an enum this mapping hasn't generated yet, so it is passed
// in rather than computed here.
//
// A non-nil error is always a *codegen.Error (Entity left blank for the
// caller to fill in) carrying either InvalidConfig — an embed flag paired
// with an explicit column-type override, a self-contradictory combination
// spec.md §7 calls out by name — or UnknownFieldType, defensive coverage
// for a proto Kind outside the fixed scalar table (spec.md §4.2 step 5);
// every Kind protoc itself can produce is covered, so this path is not
// expected to be reachable in practice.
func Map(f protoreflect.FieldDescriptor, opts options.ColumnOptions, enumRustName func(protoreflect.EnumDescriptor) string) (Mapping, error) {
	m := Mapping{Repeated: f.IsList()}

	switch {
	case f.Kind() == protoreflect.MessageKind || f.Kind() == protoreflect.GroupKind:
		if opts.Embed && opts.ColumnType != "" {
			return Mapping{}, codegen.New(codegen.InvalidConfig, "", fmt.Errorf(
				"field %q: embed and column_type are mutually exclusive", f.Name()))
		}
		if opts.Embed {
			m.IsEmbedded = true
			m.RustType = embeddedStructName(f.Message())
		} else {
			m.IsRelation = true
			return m, nil
		}
	case f.Kind() == protoreflect.EnumKind:
		m.EnumRustType = enumRustName(f.Enum())
		m.RustType = m.EnumRustType
	default:
		t, ok := scalarTable[f.Kind()]
		if !ok {
			return Mapping{}, codegen.New(codegen.UnknownFieldType, "", fmt.Errorf(
				"field %q: unrecognized proto kind %v", f.Name(), f.Kind()))
		}
		m.RustType = t
	}

	m.Nullable = nullable(f, opts)

	if m.Repeated {
		m.RustType = "Vec<" + m.RustType + ">"
	} else if m.Nullable {
		m.RustType = "Option<" + m.RustType + ">"
	}
	return m, nil
}

// nullable derives column nullability: repeated fields are never
// individually nullable (an empty sequence represents absence); otherwise
// an explicit seaorm.field.nullable wins outright, and failing that proto3
// explicit presence (the `optional` keyword, compiled to a synthetic oneof)
// makes the column nullable.
func nullable(f protoreflect.FieldDescriptor, opts options.ColumnOptions) bool {
	if f.IsList() {
		return false
	}
	if opts.Nullable != nil {
		return *opts.Nullable
	}
	return f.HasOptionalKeyword()
}

func embeddedStructName(m protoreflect.MessageDescriptor) string {
	return naming.Pascal(string(m.Name()))
}

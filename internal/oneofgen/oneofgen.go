// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oneofgen compiles a proto oneof into entity columns, under one
// of three storage strategies (spec.md §4.4): flatten (the default — one
// nullable column per variant), json (a single JSON column), or tagged (a
// discriminator column plus a single text value column). Synthetic
// oneofs, the compiler-generated wrapper around every proto3 `optional`
// scalar field, are never passed to this package — internal/options skips
// them when extracting oneof options, and internal/entitygen skips their
// lone member field when deciding whether a field belongs to a real
// oneof.
package oneofgen

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
	"github.com/seaormgen/protoc-gen-seaorm/internal/typemap"
)

// Column is one emitted column belonging to a compiled oneof.
type Column struct {
	Name       string
	RustType   string
	Nullable   bool
	Discriminator bool
}

// Compile resolves the columns produced by one oneof under its declared
// (or default) strategy.
func Compile(o protoreflect.OneofDescriptor, opts options.OneofOptions, fieldOpts func(protoreflect.FieldDescriptor) options.ColumnOptions, enumRustName func(protoreflect.EnumDescriptor) string) []Column {
	strategy := opts.Strategy
	if strategy == options.OneofStrategyUnspecified {
		strategy = options.Flatten
	}

	switch strategy {
	case options.JSON:
		return []Column{{
			Name:     naming.Snake(string(o.Name())),
			RustType: "sea_orm::prelude::Json",
			Nullable: true,
		}}
	case options.Tagged:
		disc := opts.DiscriminatorColumn
		if disc == "" {
			disc = naming.Snake(string(o.Name())) + "_type"
		}
		return []Column{
			{Name: disc, RustType: "String", Nullable: true, Discriminator: true},
			{Name: naming.Snake(string(o.Name())) + "_value", RustType: "String", Nullable: true},
		}
	default: // Flatten
		fields := o.Fields()
		cols := make([]Column, 0, fields.Len())
		for i := 0; i < fields.Len(); i++ {
			f := fields.Get(i)
			m, _ := typemap.Map(f, fieldOpts(f), enumRustName)
			if m.IsRelation {
				// A message-typed member without embed: true is a
				// relation placeholder, not a flattenable column.
				continue
			}
			name := naming.Snake(string(f.Name()))
			if opts.ColumnPrefix != "" {
				name = opts.ColumnPrefix + "_" + name
			}
			rustType := m.RustType
			if !m.Nullable {
				rustType = "Option<" + rustType + ">"
			}
			cols = append(cols, Column{Name: name, RustType: rustType, Nullable: true})
		}
		return cols
	}
}

// IsMember reports whether a field is a non-synthetic oneof member,
// meaning internal/entitygen should skip it when walking plain fields —
// it is instead handled by the compiled oneof's own columns.
func IsMember(f protoreflect.FieldDescriptor) bool {
	o := f.ContainingOneof()
	return o != nil && !o.IsSynthetic()
}

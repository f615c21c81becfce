// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package enumgen renders a proto enum as a SeaORM DeriveActiveEnum
// (spec.md §4.5), storing each value as either its name (the default) or
// an explicit integer, per seaorm.enum_opt.storage.
package enumgen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

// Enum is the resolved shape of one emitted Rust enum.
type Enum struct {
	RustName string
	Storage  options.EnumStorageKind
	Values   []Value
}

// Value is one emitted enum variant.
type Value struct {
	VariantName string
	StringValue string
	IntValue    int64
}

// ValueOptionsFunc resolves the seaorm.enum_value options attached to a
// single enum value descriptor.
type ValueOptionsFunc func(protoreflect.EnumValueDescriptor) options.EnumValueOptions

// Build resolves one proto enum's values and storage strategy. ok is
// false when the enum is marked skip.
func Build(e protoreflect.EnumDescriptor, opts options.EnumOptions, valueOpts ValueOptionsFunc) (Enum, bool) {
	if opts.Skip {
		return Enum{}, false
	}

	rustName := opts.RustType
	if rustName == "" {
		rustName = naming.Pascal(string(e.Name()))
	}

	storage := opts.Storage
	if storage == options.EnumStorageUnspecified {
		storage = options.EnumStorageString
	}

	values := e.Values()
	out := Enum{RustName: rustName, Storage: storage}
	for i := 0; i < values.Len(); i++ {
		v := values.Get(i)
		vo := valueOpts(v)

		variant := vo.Rename
		if variant == "" {
			variant = naming.Pascal(string(v.Name()))
		}

		sv := vo.StringValue
		if sv == "" {
			sv = string(v.Name())
		}

		iv := int64(v.Number())
		if vo.IntValue != nil {
			iv = *vo.IntValue
		}

		out.Values = append(out.Values, Value{VariantName: variant, StringValue: sv, IntValue: iv})
	}
	return out, true
}

// Render produces the Rust source for one enum.
func Render(en Enum) string {
	var b strings.Builder
	b.WriteString("#[derive(Debug, Clone, PartialEq, Eq, EnumIter, DeriveActiveEnum)]\n")
	switch en.Storage {
	case options.EnumStorageInteger:
		b.WriteString("#[sea_orm(rs_type = \"i32\", db_type = \"Integer\")]\n")
	default:
		b.WriteString("#[sea_orm(rs_type = \"String\", db_type = \"String(None)\")]\n")
	}
	fmt.Fprintf(&b, "pub enum %s {\n", en.RustName)
	for _, v := range en.Values {
		switch en.Storage {
		case options.EnumStorageInteger:
			fmt.Fprintf(&b, "    #[sea_orm(num_value = %d)]\n", v.IntValue)
		default:
			fmt.Fprintf(&b, "    #[sea_orm(string_value = %q)]\n", v.StringValue)
		}
		fmt.Fprintf(&b, "    %s,\n", v.VariantName)
	}
	b.WriteString("}\n")
	return b.String()
}

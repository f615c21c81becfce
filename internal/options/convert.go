// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// The functions below project a decoded dynamicpb.Message (the value of a
// seaorm.* extension) onto the plain record structs in records.go. Each
// reads fields defensively by name: a field absent from the descriptor (it
// never will be, since the schema is built in-process) simply yields its
// zero value rather than panicking, matching the "never fails" contract of
// the options cache (spec.md §4.1).

func str(m protoreflect.Message, name protoreflect.Name) string {
	fd := fieldByName(m, name)
	if fd == nil {
		return ""
	}
	return m.Get(fd).String()
}

func boolean(m protoreflect.Message, name protoreflect.Name) bool {
	fd := fieldByName(m, name)
	if fd == nil {
		return false
	}
	return m.Get(fd).Bool()
}

func integer(m protoreflect.Message, name protoreflect.Name) int64 {
	fd := fieldByName(m, name)
	if fd == nil {
		return 0
	}
	return m.Get(fd).Int()
}

func optionalBool(m protoreflect.Message, name protoreflect.Name) *bool {
	fd := fieldByName(m, name)
	if fd == nil || !m.Has(fd) {
		return nil
	}
	v := m.Get(fd).Bool()
	return &v
}

func optionalInt64(m protoreflect.Message, name protoreflect.Name) *int64 {
	fd := fieldByName(m, name)
	if fd == nil || !m.Has(fd) {
		return nil
	}
	v := m.Get(fd).Int()
	return &v
}

func optionalUint32(m protoreflect.Message, name protoreflect.Name) *uint32 {
	fd := fieldByName(m, name)
	if fd == nil || !m.Has(fd) {
		return nil
	}
	v := uint32(m.Get(fd).Uint())
	return &v
}

func repeatedStrings(m protoreflect.Message, name protoreflect.Name) []string {
	fd := fieldByName(m, name)
	if fd == nil {
		return nil
	}
	l := m.Get(fd).List()
	out := make([]string, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = l.Get(i).String()
	}
	return out
}

func fieldByName(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func convertModelOptions(m protoreflect.Message) ModelOptions {
	opt := ModelOptions{
		TableName: str(m, "table_name"),
		Skip:      boolean(m, "skip"),
	}
	if fd := fieldByName(m, "indexes"); fd != nil {
		l := m.Get(fd).List()
		for i := 0; i < l.Len(); i++ {
			im := l.Get(i).Message()
			opt.Indexes = append(opt.Indexes, IndexDef{
				Name:    str(im, "name"),
				Columns: repeatedStrings(im, "columns"),
				Unique:  boolean(im, "unique"),
			})
		}
	}
	if fd := fieldByName(m, "relations"); fd != nil {
		l := m.Get(fd).List()
		for i := 0; i < l.Len(); i++ {
			rm := l.Get(i).Message()
			opt.Relations = append(opt.Relations, RelationRecord{
				Name:       str(rm, "name"),
				Type:       RelationType(integer(rm, "type")),
				Related:    str(rm, "related"),
				ForeignKey: str(rm, "foreign_key"),
				References: str(rm, "references"),
				Through:    str(rm, "through"),
			})
		}
	}
	return opt
}

func convertColumnOptions(m protoreflect.Message) ColumnOptions {
	return ColumnOptions{
		PrimaryKey:    boolean(m, "primary_key"),
		AutoIncrement: boolean(m, "auto_increment"),
		Unique:        boolean(m, "unique"),
		Nullable:      optionalBool(m, "nullable"),
		ColumnName:    str(m, "column_name"),
		ColumnType:    str(m, "column_type"),
		DefaultValue:  str(m, "default_value"),
		Embed:         boolean(m, "embed"),
		BelongsTo:     str(m, "belongs_to"),
		BelongsToFrom: str(m, "belongs_to_from"),
		BelongsToTo:   str(m, "belongs_to_to"),
		HasOne:        str(m, "has_one"),
		HasMany:       str(m, "has_many"),
		HasManyVia:    str(m, "has_many_via"),
	}
}

func convertEnumOptions(m protoreflect.Message) EnumOptions {
	return EnumOptions{
		RustType: str(m, "rust_type"),
		Storage:  EnumStorageKind(integer(m, "storage")),
		Skip:     boolean(m, "skip"),
	}
}

func convertEnumValueOptions(m protoreflect.Message) EnumValueOptions {
	return EnumValueOptions{
		Rename:      str(m, "rename"),
		StringValue: str(m, "string_value"),
		IntValue:    optionalInt64(m, "int_value"),
	}
}

func convertOneofOptions(m protoreflect.Message) OneofOptions {
	return OneofOptions{
		Strategy:            OneofStrategy(integer(m, "strategy")),
		ColumnPrefix:        str(m, "column_prefix"),
		DiscriminatorColumn: str(m, "discriminator_column"),
	}
}

func convertServiceOptions(m protoreflect.Message) ServiceOptions {
	return ServiceOptions{
		GenerateStorage: boolean(m, "generate_storage"),
		TraitName:       str(m, "trait_name"),
	}
}

func convertInputMessageOptions(m protoreflect.Message) InputMessageOptions {
	return InputMessageOptions{
		DomainType:      str(m, "domain_type"),
		GenerateTryFrom: boolean(m, "generate_try_from"),
	}
}

func convertInputFieldOptions(m protoreflect.Message) InputFieldOptions {
	return InputFieldOptions{
		Email:     boolean(m, "email"),
		URL:       boolean(m, "url"),
		ASCII:     boolean(m, "ascii"),
		MinLength: optionalUint32(m, "min_length"),
		MaxLength: optionalUint32(m, "max_length"),
		Min:       optionalInt64(m, "min"),
		Max:       optionalInt64(m, "max"),
		Pattern:   str(m, "pattern"),
	}
}

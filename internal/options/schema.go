// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package options implements the options-extraction layer: recovering the
// seaorm.* protobuf extensions from a CodeGeneratorRequest via a
// precompiled descriptor pool, with a text-format fallback for hosts that
// elide resolved extensions before invoking the plugin.
package options

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Extension field numbers within the standard *Options messages. These are
// part of the external contract (spec.md section 6): changing them changes
// what .proto files compiled against this plugin must write.
const (
	extModel        = 50001
	extField        = 50002
	extEnumOpt      = 50003
	extEnumValue    = 50004
	extOneof        = 50005
	extService      = 50006
	extInputMessage = 50007
	extInput        = 50008
)

// buildSchema assembles the seaorm/options.proto extension schema as a
// FileDescriptorProto, the in-process equivalent of the descriptor set a
// build step would produce by invoking protoc --descriptor_set_out against
// a real proto/seaorm/options.proto source file.
func buildSchema() *descriptorpb.FileDescriptorProto {
	relationType := enumType("RelationType", []enumVal{
		{"RELATION_UNSPECIFIED", 0},
		{"BELONGS_TO", 1},
		{"HAS_ONE", 2},
		{"HAS_MANY", 3},
		{"MANY_TO_MANY", 4},
	})
	enumStorageKind := enumType("EnumStorageKind", []enumVal{
		{"ENUM_STORAGE_UNSPECIFIED", 0},
		{"STRING", 1},
		{"INTEGER", 2},
	})
	oneofStrategy := enumType("OneofStrategy", []enumVal{
		{"ONEOF_STRATEGY_UNSPECIFIED", 0},
		{"FLATTEN", 1},
		{"JSON", 2},
		{"TAGGED", 3},
	})

	indexDef := message("IndexDef")
	addString(indexDef, "name", 1)
	addRepeatedString(indexDef, "columns", 2)
	addBool(indexDef, "unique", 3)

	relationRecord := message("RelationRecord")
	addString(relationRecord, "name", 1)
	addEnum(relationRecord, "type", 2, ".seaorm.RelationType")
	addString(relationRecord, "related", 3)
	addString(relationRecord, "foreign_key", 4)
	addString(relationRecord, "references", 5)
	addString(relationRecord, "through", 6)

	modelOptions := message("ModelOptions")
	addString(modelOptions, "table_name", 1)
	addBool(modelOptions, "skip", 2)
	addRepeatedMessage(modelOptions, "indexes", 3, ".seaorm.IndexDef")
	addRepeatedMessage(modelOptions, "relations", 4, ".seaorm.RelationRecord")

	columnOptions := message("ColumnOptions")
	addBool(columnOptions, "primary_key", 1)
	addBool(columnOptions, "auto_increment", 2)
	addBool(columnOptions, "unique", 3)
	addOptionalBool(columnOptions, "nullable", 4)
	addString(columnOptions, "column_name", 5)
	addString(columnOptions, "column_type", 6)
	addString(columnOptions, "default_value", 7)
	addBool(columnOptions, "embed", 8)
	addString(columnOptions, "belongs_to", 9)
	addString(columnOptions, "belongs_to_from", 10)
	addString(columnOptions, "belongs_to_to", 11)
	addString(columnOptions, "has_one", 12)
	addString(columnOptions, "has_many", 13)
	addString(columnOptions, "has_many_via", 14)

	enumOptions := message("EnumOptions")
	addString(enumOptions, "rust_type", 1)
	addEnum(enumOptions, "storage", 2, ".seaorm.EnumStorageKind")
	addBool(enumOptions, "skip", 3)

	enumValueOptions := message("EnumValueOptions")
	addString(enumValueOptions, "rename", 1)
	addString(enumValueOptions, "string_value", 2)
	addOptionalInt64(enumValueOptions, "int_value", 3)

	oneofOptions := message("OneofOptions")
	addEnum(oneofOptions, "strategy", 1, ".seaorm.OneofStrategy")
	addString(oneofOptions, "column_prefix", 2)
	addString(oneofOptions, "discriminator_column", 3)

	serviceOptions := message("ServiceOptions")
	addBool(serviceOptions, "generate_storage", 1)
	addString(serviceOptions, "trait_name", 2)

	inputMessageOptions := message("InputMessageOptions")
	addString(inputMessageOptions, "domain_type", 1)
	addBool(inputMessageOptions, "generate_try_from", 2)

	inputFieldOptions := message("InputFieldOptions")
	addBool(inputFieldOptions, "email", 1)
	addBool(inputFieldOptions, "url", 2)
	addBool(inputFieldOptions, "ascii", 3)
	addOptionalUint32(inputFieldOptions, "min_length", 4)
	addOptionalUint32(inputFieldOptions, "max_length", 5)
	addOptionalInt64(inputFieldOptions, "min", 6)
	addOptionalInt64(inputFieldOptions, "max", 7)
	addString(inputFieldOptions, "pattern", 8)

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String("seaorm/options.proto"),
		Package:    proto.String("seaorm"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/descriptor.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			indexDef, relationRecord, modelOptions, columnOptions,
			enumOptions, enumValueOptions, oneofOptions, serviceOptions,
			inputMessageOptions, inputFieldOptions,
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			relationType, enumStorageKind, oneofStrategy,
		},
		Extension: []*descriptorpb.FieldDescriptorProto{
			extensionField("model", extModel, ".google.protobuf.MessageOptions", ".seaorm.ModelOptions"),
			extensionField("field", extField, ".google.protobuf.FieldOptions", ".seaorm.ColumnOptions"),
			extensionField("enum_opt", extEnumOpt, ".google.protobuf.EnumOptions", ".seaorm.EnumOptions"),
			extensionField("enum_value", extEnumValue, ".google.protobuf.EnumValueOptions", ".seaorm.EnumValueOptions"),
			extensionField("oneof", extOneof, ".google.protobuf.OneofOptions", ".seaorm.OneofOptions"),
			extensionField("service", extService, ".google.protobuf.ServiceOptions", ".seaorm.ServiceOptions"),
			extensionField("input_message", extInputMessage, ".google.protobuf.MessageOptions", ".seaorm.InputMessageOptions"),
			extensionField("input", extInput, ".google.protobuf.FieldOptions", ".seaorm.InputFieldOptions"),
		},
	}
}

type enumVal struct {
	name   string
	number int32
}

func enumType(name string, values []enumVal) *descriptorpb.EnumDescriptorProto {
	e := &descriptorpb.EnumDescriptorProto{Name: proto.String(name)}
	for _, v := range values {
		e.Value = append(e.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.name),
			Number: proto.Int32(v.number),
		})
	}
	return e
}

func message(name string) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name)}
}

func addString(m *descriptorpb.DescriptorProto, name string, number int32) {
	m.Field = append(m.Field, scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_STRING))
}

func addBool(m *descriptorpb.DescriptorProto, name string, number int32) {
	m.Field = append(m.Field, scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_BOOL))
}

func addRepeatedString(m *descriptorpb.DescriptorProto, name string, number int32) {
	f := scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_STRING)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	m.Field = append(m.Field, f)
}

func addRepeatedMessage(m *descriptorpb.DescriptorProto, name string, number int32, typeName string) {
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
	}
	m.Field = append(m.Field, f)
}

func addEnum(m *descriptorpb.DescriptorProto, name string, number int32, typeName string) {
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
		TypeName: proto.String(typeName),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
	m.Field = append(m.Field, f)
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
}

// addProto3Optional appends a field with a synthetic singleton oneof, the
// shape every proto3 "optional" scalar field compiles to (spec.md
// section 3, section 4.2 step 7; section 9 "Synthetic oneofs").
func addProto3Optional(m *descriptorpb.DescriptorProto, name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) {
	idx := int32(len(m.OneofDecl))
	m.OneofDecl = append(m.OneofDecl, &descriptorpb.OneofDescriptorProto{
		Name: proto.String("_" + name),
	})
	f := scalarField(name, number, typ)
	f.OneofIndex = proto.Int32(idx)
	f.Proto3Optional = proto.Bool(true)
	m.Field = append(m.Field, f)
}

func addOptionalBool(m *descriptorpb.DescriptorProto, name string, number int32) {
	addProto3Optional(m, name, number, descriptorpb.FieldDescriptorProto_TYPE_BOOL)
}

func addOptionalInt64(m *descriptorpb.DescriptorProto, name string, number int32) {
	addProto3Optional(m, name, number, descriptorpb.FieldDescriptorProto_TYPE_INT64)
}

func addOptionalUint32(m *descriptorpb.DescriptorProto, name string, number int32) {
	addProto3Optional(m, name, number, descriptorpb.FieldDescriptorProto_TYPE_UINT32)
}

func extensionField(name string, number int32, extendee, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Extendee: proto.String(extendee),
	}
}

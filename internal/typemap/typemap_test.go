// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typemap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/seaormgen/protoc-gen-seaorm/internal/codegen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
}

func buildTestFile(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()

	repeated := scalarField("tags", 10, descriptorpb.FieldDescriptorProto_TYPE_STRING)
	repeated.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()

	msg := &descriptorpb.DescriptorProto{
		Name: proto.String("Widget"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("count", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			{
				Name:     proto.String("status"),
				Number:   proto.Int32(3),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				TypeName: proto.String(".test.Status"),
			},
			{
				Name:     proto.String("parent"),
				Number:   proto.Int32(4),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				TypeName: proto.String(".test.Widget"),
			},
			{
				Name:     proto.String("detail"),
				Number:   proto.Int32(5),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				TypeName: proto.String(".test.Detail"),
			},
			repeated,
		},
	}
	detail := &descriptorpb.DescriptorProto{
		Name: proto.String("Detail"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("note", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		},
	}
	status := &descriptorpb.EnumDescriptorProto{
		Name: proto.String("Status"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("ACTIVE"), Number: proto.Int32(0)},
		},
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:        proto.String("test.proto"),
		Package:     proto.String("test"),
		Syntax:      proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{msg, detail},
		EnumType:    []*descriptorpb.EnumDescriptorProto{status},
	}

	fd, err := protodesc.NewFile(fdp, &protoregistry.Files{})
	require.NoError(t, err)
	return fd
}

func fieldByName(t *testing.T, m protoreflect.MessageDescriptor, name string) protoreflect.FieldDescriptor {
	t.Helper()
	f := m.Fields().ByName(protoreflect.Name(name))
	require.NotNil(t, f, "field %q not found", name)
	return f
}

func noopEnumName(e protoreflect.EnumDescriptor) string { return "Status" }

func TestMapScalarFields(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "name"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.Equal(t, "String", m.RustType)
	require.False(t, m.Nullable)

	m, err = Map(fieldByName(t, widget, "count"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.Equal(t, "i32", m.RustType)
}

func TestMapRepeatedField(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "tags"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.True(t, m.Repeated)
	require.Equal(t, "Vec<String>", m.RustType)
}

func TestMapEnumField(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "status"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.Equal(t, "Status", m.RustType)
	require.Equal(t, "Status", m.EnumRustType)
}

func TestMapMessageFieldIsRelationByDefault(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "parent"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.True(t, m.IsRelation)
	require.Empty(t, m.RustType)
}

func TestMapEmbeddedMessageField(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "detail"), options.ColumnOptions{Embed: true}, noopEnumName)
	require.NoError(t, err)
	require.True(t, m.IsEmbedded)
	require.Equal(t, "Detail", m.RustType)
}

func TestMapNullableExplicitOverride(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	yes := true
	m, err := Map(fieldByName(t, widget, "name"), options.ColumnOptions{Nullable: &yes}, noopEnumName)
	require.NoError(t, err)
	require.True(t, m.Nullable)
	require.Equal(t, "Option<String>", m.RustType)
}

func TestMapEmbedAndColumnTypeIsInvalidConfig(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	_, err := Map(fieldByName(t, widget, "detail"), options.ColumnOptions{Embed: true, ColumnType: "jsonb"}, noopEnumName)
	require.Error(t, err)
	ce, ok := err.(*codegen.Error)
	require.True(t, ok)
	require.Equal(t, codegen.InvalidConfig, ce.Kind)
}

func TestMapRepeatedNeverIndividuallyNullable(t *testing.T) {
	fd := buildTestFile(t)
	widget := fd.Messages().ByName("Widget")

	m, err := Map(fieldByName(t, widget, "tags"), options.ColumnOptions{}, noopEnumName)
	require.NoError(t, err)
	require.False(t, m.Nullable)
}

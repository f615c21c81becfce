// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enumgen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

func buildStatusEnum(t *testing.T) protoreflect.EnumDescriptor {
	t.Helper()
	e := &descriptorpb.EnumDescriptorProto{
		Name: proto.String("Status"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("STATUS_PENDING"), Number: proto.Int32(0)},
			{Name: proto.String("STATUS_ACTIVE"), Number: proto.Int32(1)},
		},
	}
	fdp := &descriptorpb.FileDescriptorProto{
		Name:     proto.String("status.proto"),
		Package:  proto.String("test_enum"),
		Syntax:   proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{e},
	}
	fd, err := protodesc.NewFile(fdp, &protoregistry.Files{})
	require.NoError(t, err)
	return fd.Enums().ByName("Status")
}

func noValueOpts(protoreflect.EnumValueDescriptor) options.EnumValueOptions {
	return options.EnumValueOptions{}
}

func TestBuildSkipped(t *testing.T) {
	e := buildStatusEnum(t)
	_, ok := Build(e, options.EnumOptions{Skip: true}, noValueOpts)
	require.False(t, ok)
}

func TestBuildDefaultsToStringStorage(t *testing.T) {
	e := buildStatusEnum(t)
	en, ok := Build(e, options.EnumOptions{}, noValueOpts)
	require.True(t, ok)
	require.Equal(t, options.EnumStorageString, en.Storage)
	require.Equal(t, "Status", en.RustName)
	require.Len(t, en.Values, 2)
	require.Equal(t, "StatusPending", en.Values[0].VariantName)
	require.Equal(t, "STATUS_PENDING", en.Values[0].StringValue)
}

func TestBuildIntegerStorageAndOverrides(t *testing.T) {
	e := buildStatusEnum(t)
	valueOpts := func(v protoreflect.EnumValueDescriptor) options.EnumValueOptions {
		if v.Name() == "STATUS_ACTIVE" {
			iv := int64(9)
			return options.EnumValueOptions{Rename: "Live", IntValue: &iv}
		}
		return options.EnumValueOptions{}
	}
	en, ok := Build(e, options.EnumOptions{Storage: options.EnumStorageInteger, RustType: "MyStatus"}, valueOpts)
	require.True(t, ok)
	require.Equal(t, "MyStatus", en.RustName)
	require.Equal(t, options.EnumStorageInteger, en.Storage)
	require.Equal(t, "Live", en.Values[1].VariantName)
	require.EqualValues(t, 9, en.Values[1].IntValue)
}

func TestRenderStringStorage(t *testing.T) {
	en := Enum{
		RustName: "Status",
		Storage:  options.EnumStorageString,
		Values: []Value{
			{VariantName: "Pending", StringValue: "STATUS_PENDING"},
		},
	}
	out := Render(en)
	require.Contains(t, out, "DeriveActiveEnum")
	require.Contains(t, out, `rs_type = "String"`)
	require.Contains(t, out, `string_value = "STATUS_PENDING"`)
	require.Contains(t, out, "pub enum Status {")
	require.Contains(t, out, "Pending,")
}

func TestRenderIntegerStorage(t *testing.T) {
	en := Enum{
		RustName: "Status",
		Storage:  options.EnumStorageInteger,
		Values: []Value{
			{VariantName: "Pending", IntValue: 0},
		},
	}
	out := Render(en)
	require.Contains(t, out, `rs_type = "i32"`)
	require.Contains(t, out, "num_value = 0")
}

// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/seaormgen/protoc-gen-seaorm/protogen"
)

func uninterpretedExt(name, aggregate string) *descriptorpb.UninterpretedOption {
	return &descriptorpb.UninterpretedOption{
		Name: []*descriptorpb.UninterpretedOption_NamePart{
			{NamePart: proto.String(name), IsExtension: proto.Bool(true)},
		},
		AggregateValue: proto.String(aggregate),
	}
}

func modelOpts(aggregate string) *descriptorpb.MessageOptions {
	return &descriptorpb.MessageOptions{
		UninterpretedOption: []*descriptorpb.UninterpretedOption{uninterpretedExt("seaorm.model", aggregate)},
	}
}

func fieldOpts(aggregate string) *descriptorpb.FieldOptions {
	return &descriptorpb.FieldOptions{
		UninterpretedOption: []*descriptorpb.UninterpretedOption{uninterpretedExt("seaorm.field", aggregate)},
	}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
}

func buildPlugin(t *testing.T) *protogen.Plugin {
	t.Helper()

	idField := scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)
	idField.Options = fieldOpts(`primary_key: true`)

	account := &descriptorpb.DescriptorProto{
		Name:    proto.String("Account"),
		Options: modelOpts(`table_name: "accounts"`),
		Field:   []*descriptorpb.FieldDescriptorProto{idField},
		NestedType: []*descriptorpb.DescriptorProto{
			{
				Name:    proto.String("Profile"),
				Options: modelOpts(`table_name: "profiles"`),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("bio", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
		},
	}

	status := &descriptorpb.EnumDescriptorProto{
		Name: proto.String("Status"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("STATUS_ACTIVE"), Number: proto.Int32(0)},
		},
	}

	notAModel := &descriptorpb.DescriptorProto{
		Name: proto.String("Unannotated"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("x", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		},
	}

	svc := &descriptorpb.ServiceDescriptorProto{
		Name: proto.String("AccountService"),
		Method: []*descriptorpb.MethodDescriptorProto{
			{
				Name:       proto.String("GetAccount"),
				InputType:  proto.String(".test_orch.Unannotated"),
				OutputType: proto.String(".test_orch.Account"),
			},
		},
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:        proto.String("account.proto"),
		Package:     proto.String("test_orch"),
		Syntax:      proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{account, notAModel},
		EnumType:    []*descriptorpb.EnumDescriptorProto{status},
		Service:     []*descriptorpb.ServiceDescriptorProto{svc},
	}

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"account.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{fdp},
	}
	gen, err := protogen.New(req, nil)
	require.NoError(t, err)
	return gen
}

func fileNames(gen *protogen.Plugin) []string {
	var names []string
	for _, f := range gen.OutputFiles() {
		names = append(names, f.GetName())
	}
	return names
}

func TestGenerateEmitsEntityAndNestedEntityAndEnum(t *testing.T) {
	gen := buildPlugin(t)
	require.NoError(t, Generate(gen))

	names := fileNames(gen)
	require.Contains(t, names, "account.rs")
	require.Contains(t, names, "profile.rs")
	require.Contains(t, names, "status.rs")
}

func TestGenerateSkipsUnannotatedMessageAndUnannotatedService(t *testing.T) {
	gen := buildPlugin(t)
	require.NoError(t, Generate(gen))

	names := fileNames(gen)
	require.NotContains(t, names, "unannotated.rs")
	require.NotContains(t, names, "account_service_storage.rs")
	require.NotContains(t, names, "storage_error.rs", "no storage trait emitted means no shared error file either")
	require.NotContains(t, names, "domain_error.rs")
}

func TestGenerateResponseCarriesNoErrorsOnCleanInput(t *testing.T) {
	gen := buildPlugin(t)
	require.NoError(t, Generate(gen))
	resp := gen.Response()
	require.Empty(t, resp.GetError())
	require.NotEmpty(t, resp.File)
}

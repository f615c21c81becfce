// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/seaormgen/protoc-gen-seaorm/internal/domaingen"
)

// TestDomaingenBuildSkipsUnembeddedMessageField exercises domaingen.Build
// against a real input_message extension with a nested message field that
// carries no embed: true (a relation placeholder per spec.md §4.2 step 3),
// confirming it is skipped rather than rendered with an empty Rust type.
func TestDomaingenBuildSkipsUnembeddedMessageField(t *testing.T) {
	require.NoError(t, globalPool.init())

	profileField := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String("profile"),
		Number:   proto.Int32(2),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		TypeName: proto.String(".test_domaingen_opts.Profile"),
	}

	signUp := &descriptorpb.DescriptorProto{
		Name: proto.String("SignUp"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{
				Name:   proto.String("email"),
				Number: proto.Int32(1),
				Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
				Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			},
			profileField,
		},
	}
	signUp.Options = &descriptorpb.MessageOptions{}
	setDynamicExt(t, signUp.Options, globalPool.inputMessage, `domain_type: "SignUpData"`)

	profile := &descriptorpb.DescriptorProto{
		Name: proto.String("Profile"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{
				Name:   proto.String("bio"),
				Number: proto.Int32(1),
				Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
				Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			},
		},
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:        proto.String("signup.proto"),
		Package:     proto.String("test_domaingen_opts"),
		Syntax:      proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{signUp, profile},
	}

	fd, err := protodesc.NewFile(fdp, &protoregistry.Files{})
	require.NoError(t, err)

	cache, err := Build([]*descriptorpb.FileDescriptorProto{fdp})
	require.NoError(t, err)

	msg := fd.Messages().ByName("SignUp")
	dom, ok := domaingen.Build(msg, domaingen.Deps{
		Cache:        cache,
		EnumRustName: func(protoreflect.EnumDescriptor) string { return "" },
	})
	require.True(t, ok)
	require.Equal(t, "SignUpData", dom.RustName)

	var names []string
	for _, f := range dom.Fields {
		names = append(names, f.Name)
		require.NotEmpty(t, f.RustType, "field %q must not carry an empty Rust type", f.Name)
	}
	require.Contains(t, names, "email")
	require.NotContains(t, names, "profile", "unembedded message field is a relation placeholder, not a domain field")
}

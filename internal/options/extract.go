// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Build walks every file in a CodeGeneratorRequest's proto_file list (which
// protoc topologically sorts, dependencies first) and populates a Cache
// with every seaorm.* option record found, trying the compiled extension
// first and falling back to a hand-rolled uninterpreted_option parse
// (spec.md §4.1). Build never fails on a missing or malformed individual
// option — a message simply gets no cache entry, and downstream
// generators skip it (spec.md §7 Options decode failure semantics) —
// but it does fail if the schema itself cannot be assembled, which
// would indicate a bug in this package rather than bad input.
func Build(files []*descriptorpb.FileDescriptorProto) (*Cache, error) {
	if err := globalPool.init(); err != nil {
		return nil, err
	}

	reg := &protoregistry.Files{}
	c := newCache()

	for _, fdp := range files {
		fd, err := protodesc.NewFile(fdp, reg)
		if err != nil {
			return nil, fmt.Errorf("options: resolving %s: %w", fdp.GetName(), err)
		}
		if err := reg.RegisterFile(fd); err != nil {
			return nil, fmt.Errorf("options: registering %s: %w", fdp.GetName(), err)
		}
		walkFile(c, fd)
	}
	return c, nil
}

func walkFile(c *Cache, fd protoreflect.FileDescriptor) {
	walkMessages(c, fd.Messages())
	walkEnums(c, fd.Enums())
	walkServices(c, fd.Services())
}

func walkMessages(c *Cache, msgs protoreflect.MessageDescriptors) {
	for i := 0; i < msgs.Len(); i++ {
		m := msgs.Get(i)
		extractMessage(c, m)
		walkMessages(c, m.Messages())
		walkEnums(c, m.Enums())
	}
}

func extractMessage(c *Cache, m protoreflect.MessageDescriptor) {
	name := string(m.FullName())
	opts, _ := m.Options().(*descriptorpb.MessageOptions)

	if mo, ok := decodeModelOptions(opts); ok {
		c.messages[name] = mo
	} else if mo, ok := legacyModelOptions(opts); ok {
		c.messages[name] = mo
	}

	if io, ok := decodeInputMessageOptions(opts); ok {
		c.inputMsgs[name] = io
	}

	fields := m.Fields()
	for i := 0; i < fields.Len(); i++ {
		f := fields.Get(i)
		fopts, _ := f.Options().(*descriptorpb.FieldOptions)
		if co, ok := decodeColumnOptions(fopts); ok {
			c.fields[fieldKey{name, int32(f.Number())}] = co
		} else if co, ok := legacyColumnOptions(fopts); ok {
			c.fields[fieldKey{name, int32(f.Number())}] = co
		}
		if ifo, ok := decodeInputFieldOptions(fopts); ok {
			c.inputFlds[fieldKey{name, int32(f.Number())}] = ifo
		}
	}

	oneofs := m.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		o := oneofs.Get(i)
		if o.IsSynthetic() {
			continue
		}
		oopts, _ := o.Options().(*descriptorpb.OneofOptions)
		if oo, ok := decodeOneofOptions(oopts); ok {
			c.oneofs[oneofKey{name, int32(o.Index())}] = oo
		}
	}
}

func walkEnums(c *Cache, enums protoreflect.EnumDescriptors) {
	for i := 0; i < enums.Len(); i++ {
		e := enums.Get(i)
		name := string(e.FullName())
		eopts, _ := e.Options().(*descriptorpb.EnumOptions)
		if eo, ok := decodeEnumOptions(eopts); ok {
			c.enums[name] = eo
		}

		values := e.Values()
		for j := 0; j < values.Len(); j++ {
			v := values.Get(j)
			vopts, _ := v.Options().(*descriptorpb.EnumValueOptions)
			if vo, ok := decodeEnumValueOptions(vopts); ok {
				c.enumValues[fieldKey{name, int32(v.Number())}] = vo
			}
		}
	}
}

func walkServices(c *Cache, services protoreflect.ServiceDescriptors) {
	for i := 0; i < services.Len(); i++ {
		s := services.Get(i)
		name := string(s.FullName())
		sopts, _ := s.Options().(*descriptorpb.ServiceOptions)
		if so, ok := decodeServiceOptions(sopts); ok {
			c.services[name] = so
		}
	}
}

func decodeModelOptions(opts *descriptorpb.MessageOptions) (ModelOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.model) {
		return ModelOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.model).(protoreflect.ProtoMessage)
	if !ok {
		return ModelOptions{}, false
	}
	return convertModelOptions(msg.ProtoReflect()), true
}

func decodeInputMessageOptions(opts *descriptorpb.MessageOptions) (InputMessageOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.inputMessage) {
		return InputMessageOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.inputMessage).(protoreflect.ProtoMessage)
	if !ok {
		return InputMessageOptions{}, false
	}
	return convertInputMessageOptions(msg.ProtoReflect()), true
}

func decodeColumnOptions(opts *descriptorpb.FieldOptions) (ColumnOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.field) {
		return ColumnOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.field).(protoreflect.ProtoMessage)
	if !ok {
		return ColumnOptions{}, false
	}
	return convertColumnOptions(msg.ProtoReflect()), true
}

func decodeInputFieldOptions(opts *descriptorpb.FieldOptions) (InputFieldOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.input) {
		return InputFieldOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.input).(protoreflect.ProtoMessage)
	if !ok {
		return InputFieldOptions{}, false
	}
	return convertInputFieldOptions(msg.ProtoReflect()), true
}

func decodeEnumOptions(opts *descriptorpb.EnumOptions) (EnumOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.enumOpt) {
		return EnumOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.enumOpt).(protoreflect.ProtoMessage)
	if !ok {
		return EnumOptions{}, false
	}
	return convertEnumOptions(msg.ProtoReflect()), true
}

func decodeEnumValueOptions(opts *descriptorpb.EnumValueOptions) (EnumValueOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.enumValue) {
		return EnumValueOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.enumValue).(protoreflect.ProtoMessage)
	if !ok {
		return EnumValueOptions{}, false
	}
	return convertEnumValueOptions(msg.ProtoReflect()), true
}

func decodeOneofOptions(opts *descriptorpb.OneofOptions) (OneofOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.oneof) {
		return OneofOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.oneof).(protoreflect.ProtoMessage)
	if !ok {
		return OneofOptions{}, false
	}
	return convertOneofOptions(msg.ProtoReflect()), true
}

func decodeServiceOptions(opts *descriptorpb.ServiceOptions) (ServiceOptions, bool) {
	if opts == nil || !proto.HasExtension(opts, globalPool.service) {
		return ServiceOptions{}, false
	}
	msg, ok := proto.GetExtension(opts, globalPool.service).(protoreflect.ProtoMessage)
	if !ok {
		return ServiceOptions{}, false
	}
	return convertServiceOptions(msg.ProtoReflect()), true
}

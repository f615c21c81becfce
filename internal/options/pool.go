// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
)

// pool lazily resolves the seaorm extension schema against the global
// descriptor registry and builds a dynamicpb.ExtensionType per extension
// field, so extensions unknown to any statically-linked Go struct can
// still be decoded off a *pluginpb.CodeGeneratorRequest by number.
type pool struct {
	once sync.Once
	err  error

	file protoreflect.FileDescriptor

	model        protoreflect.ExtensionType
	field        protoreflect.ExtensionType
	enumOpt      protoreflect.ExtensionType
	enumValue    protoreflect.ExtensionType
	oneof        protoreflect.ExtensionType
	service      protoreflect.ExtensionType
	inputMessage protoreflect.ExtensionType
	input        protoreflect.ExtensionType
}

var globalPool pool

func (p *pool) init() error {
	p.once.Do(func() {
		fd := buildSchema()
		f, err := protodesc.NewFile(fd, protoregistry.GlobalFiles)
		if err != nil {
			p.err = fmt.Errorf("options: building seaorm extension schema: %w", err)
			return
		}
		p.file = f

		exts := f.Extensions()
		byName := make(map[protoreflect.Name]protoreflect.ExtensionDescriptor, exts.Len())
		for i := 0; i < exts.Len(); i++ {
			e := exts.Get(i)
			byName[e.Name()] = e
		}

		lookup := func(name protoreflect.Name) (protoreflect.ExtensionType, error) {
			d, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("options: extension %q missing from built schema", name)
			}
			return dynamicpb.NewExtensionType(d), nil
		}

		assign := func(dst *protoreflect.ExtensionType, name protoreflect.Name) {
			if p.err != nil {
				return
			}
			et, err := lookup(name)
			if err != nil {
				p.err = err
				return
			}
			*dst = et
		}

		assign(&p.model, "model")
		assign(&p.field, "field")
		assign(&p.enumOpt, "enum_opt")
		assign(&p.enumValue, "enum_value")
		assign(&p.oneof, "oneof")
		assign(&p.service, "service")
		assign(&p.inputMessage, "input_message")
		assign(&p.input, "input")
	})
	return p.err
}

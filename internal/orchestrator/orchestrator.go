// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orchestrator implements spec.md §4.9: it walks the files named
// in a CodeGeneratorRequest's file_to_generate list, dispatches every
// message, enum, and service to its generator, and accumulates the
// resulting files (and any entity-scoped errors) into the plugin's
// response without letting one bad declaration abort the rest of the
// run.
//
// It is the merge point of the teacher's top-level dispatch loop
// (cmd/protoc-gen-go/main.go: "for _, f := range gen.Files { if
// f.Generate { gengo.GenerateFile(gen, f) } }") and the original source's
// per-kind dispatch functions (generate_entity/generate_enum/
// generate_service/generate_domain in codegen/mod.rs), collapsed into one
// recursive descriptor walk since this plugin emits one file per
// message/enum/service/domain-type rather than one file per .proto
// source file (spec.md §8's testable properties name the output by
// entity, not by source file).
package orchestrator

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/domaingen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/entitygen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/enumgen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
	"github.com/seaormgen/protoc-gen-seaorm/internal/storagegen"
	"github.com/seaormgen/protoc-gen-seaorm/protogen"
)

// Generate is the protogen.Run callback: it builds the options cache once
// (spec.md §4.1), then walks every file marked for generation.
//
// A non-nil return is process-scoped (options.Build failing means the
// seaorm extension schema itself could not be assembled — spec.md §4.1's
// "malformed descriptor-set bytes" case) and becomes a Fatal response
// with no files at all. Everything discovered while walking entities is
// instead recorded via gen.AddFile/gen.AddError, so one bad message never
// suppresses the rest (spec.md §7).
func Generate(gen *protogen.Plugin) error {
	cache, err := options.Build(gen.Request.GetProtoFile())
	if err != nil {
		return err
	}

	enumRustName := func(e protoreflect.EnumDescriptor) string {
		eo, _ := cache.Enum(string(e.FullName()))
		if eo.RustType != "" {
			return eo.RustType
		}
		return naming.Pascal(string(e.Name()))
	}
	domainTypeFor := func(fullName string) (string, bool) {
		imo, ok := cache.InputMessage(fullName)
		if !ok {
			return "", false
		}
		if imo.DomainType != "" {
			return imo.DomainType, true
		}
		return naming.Pascal(lastComponent(fullName)), true
	}

	w := &walker{
		gen:           gen,
		cache:         cache,
		entDeps:       entitygen.Deps{Cache: cache, EnumRustName: enumRustName},
		domDeps:       domaingen.Deps{Cache: cache, EnumRustName: enumRustName},
		domainTypeFor: domainTypeFor,
	}

	for _, f := range gen.Files {
		if !f.Generate {
			continue
		}
		w.walkMessages(f.Desc.Messages())
		w.walkEnums(f.Desc.Enums())
		w.walkServices(f.Desc.Services())
	}

	if w.anyStorage {
		gen.AddFile("storage_error.rs", storagegen.RenderStorageError())
	}
	if w.anyTryFrom {
		gen.AddFile("domain_error.rs", domaingen.RenderDomainError())
	}
	return nil
}

type walker struct {
	gen           *protogen.Plugin
	cache         *options.Cache
	entDeps       entitygen.Deps
	domDeps       domaingen.Deps
	domainTypeFor storagegen.DomainTypeFor

	anyStorage bool
	anyTryFrom bool
}

func (w *walker) walkMessages(msgs protoreflect.MessageDescriptors) {
	for i := 0; i < msgs.Len(); i++ {
		m := msgs.Get(i)

		if ent, ok, err := entitygen.Build(m, w.entDeps); err != nil {
			w.gen.AddError(err)
		} else if ok {
			w.gen.AddFile(naming.Snake(ent.ModuleName)+".rs", entitygen.Render(ent))
		}

		if dom, ok := domaingen.Build(m, w.domDeps); ok {
			w.gen.AddFile(naming.Snake(dom.RustName)+".rs", domaingen.Render(dom))
			if dom.GenerateTryFrom {
				w.anyTryFrom = true
			}
		}

		w.walkMessages(m.Messages())
		w.walkEnums(m.Enums())
	}
}

func (w *walker) walkEnums(enums protoreflect.EnumDescriptors) {
	for i := 0; i < enums.Len(); i++ {
		e := enums.Get(i)
		eo, _ := w.cache.Enum(string(e.FullName()))

		valueOpts := func(v protoreflect.EnumValueDescriptor) options.EnumValueOptions {
			vo, _ := w.cache.EnumValue(string(e.FullName()), int32(v.Number()))
			return vo
		}

		en, ok := enumgen.Build(e, eo, valueOpts)
		if !ok {
			continue
		}
		w.gen.AddFile(naming.Snake(en.RustName)+".rs", enumgen.Render(en))
	}
}

func (w *walker) walkServices(services protoreflect.ServiceDescriptors) {
	for i := 0; i < services.Len(); i++ {
		s := services.Get(i)
		trait, ok := storagegen.Build(s, w.cache, w.domainTypeFor)
		if !ok {
			continue
		}
		w.anyStorage = true
		filename := naming.Snake(string(s.Name())) + "_storage.rs"
		w.gen.AddFile(filename, storagegen.Render(trait))
	}
}

// lastComponent returns the final dot-separated segment of a protobuf
// full name — exactly protoreflect.FullName.Name(), recovered from the
// plain string the options cache is keyed by (spec.md §3: cache keys are
// textual names, not retained descriptors).
func lastComponent(fullName string) string {
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

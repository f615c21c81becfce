// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storagegen renders one async storage trait per annotated
// service: one method per RPC, taking the domain type generated for the
// request message when one exists (falling back to the wire type
// otherwise) and returning Result<ResponseType, StorageError> (spec.md
// §4.8).
package storagegen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

// Method is one emitted trait method.
type Method struct {
	Name       string
	InputType  string
	OutputType string
}

// Trait is the resolved shape of one storage trait.
type Trait struct {
	RustName string
	Methods  []Method
}

// DomainTypeFor resolves the Rust domain-type name for a message's full
// name, if seaorm.input_message generated one.
type DomainTypeFor func(fullName string) (string, bool)

// Build resolves one service's trait shape. ok is false unless
// seaorm.service.generate_storage is set.
func Build(s protoreflect.ServiceDescriptor, cache *options.Cache, domainTypeFor DomainTypeFor) (Trait, bool) {
	so, ok := cache.Service(string(s.FullName()))
	if !ok || !so.GenerateStorage {
		return Trait{}, false
	}

	rustName := so.TraitName
	if rustName == "" {
		rustName = naming.Pascal(string(s.Name())) + "Storage"
	}

	t := Trait{RustName: rustName}
	methods := s.Methods()
	for i := 0; i < methods.Len(); i++ {
		mth := methods.Get(i)

		input := naming.Pascal(string(mth.Input().Name()))
		if dt, ok := domainTypeFor(string(mth.Input().FullName())); ok {
			input = dt
		}

		t.Methods = append(t.Methods, Method{
			Name:       naming.Snake(string(mth.Name())),
			InputType:  input,
			OutputType: naming.Pascal(string(mth.Output().Name())),
		})
	}
	return t, true
}

// Render produces the Rust source for one storage trait. The StorageError
// type its methods return is not included; RenderStorageError produces it.
func Render(t Trait) string {
	var b strings.Builder
	b.WriteString("#[async_trait::async_trait]\n")
	fmt.Fprintf(&b, "pub trait %s {\n", t.RustName)
	for _, m := range t.Methods {
		fmt.Fprintf(&b, "    async fn %s(&self, request: %s) -> Result<%s, StorageError>;\n", m.Name, m.InputType, m.OutputType)
	}
	b.WriteString("}\n")
	return b.String()
}

// RenderStorageError produces the shared StorageError taxonomy: NotFound,
// InvalidArgument, Database, Conflict, and a catch-all Other variant
// (spec.md §4.8).
func RenderStorageError() string {
	return `#[derive(Debug, thiserror::Error)]
pub enum StorageError {
    #[error("not found")]
    NotFound,
    #[error("invalid argument: {0}")]
    InvalidArgument(String),
    #[error("database error: {0}")]
    Database(String),
    #[error("conflict: {0}")]
    Conflict(String),
    #[error("{0}")]
    Other(String),
}
`
}

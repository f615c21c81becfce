// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domaingen renders validated domain types: plain Rust structs
// carrying declarative `#[garde(...)]` constraint attributes, plus a
// fallible TryFrom conversion from the wire message that constructs the
// value field-by-field and then calls validate() (spec.md §4.7). Storage-
// trait methods accept these domain types instead of the raw wire type,
// pushing validation to the edge of the system.
package domaingen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
	"github.com/seaormgen/protoc-gen-seaorm/internal/typemap"
)

// Field is one domain-type member along with the declarative validation
// clauses attached to it.
type Field struct {
	Name      string
	RustType  string
	Clauses   []string // each a single #[garde(...)] inner clause
	WireField string
}

// Domain is the resolved shape of one validated domain type.
type Domain struct {
	RustName        string
	WireType        string
	Fields          []Field
	GenerateTryFrom bool
}

type Deps struct {
	Cache        *options.Cache
	EnumRustName func(protoreflect.EnumDescriptor) string
}

// Build resolves one message's domain-type shape. ok is false when the
// message carries no seaorm.input_message option.
func Build(m protoreflect.MessageDescriptor, deps Deps) (Domain, bool) {
	fullName := string(m.FullName())
	imo, ok := deps.Cache.InputMessage(fullName)
	if !ok {
		return Domain{}, false
	}

	rustName := imo.DomainType
	if rustName == "" {
		rustName = naming.Pascal(string(m.Name()))
	}

	d := Domain{RustName: rustName, WireType: naming.Pascal(string(m.Name())), GenerateTryFrom: imo.GenerateTryFrom}

	fields := m.Fields()
	for i := 0; i < fields.Len(); i++ {
		f := fields.Get(i)
		ifo, _ := deps.Cache.InputField(fullName, int32(f.Number()))
		co, _ := deps.Cache.Column(fullName, int32(f.Number()))
		mapping, _ := typemap.Map(f, co, deps.EnumRustName)
		if mapping.IsRelation {
			// A message-typed field without embed: true is a relation
			// placeholder (spec.md §4.2 step 3), not a domain value —
			// domain types have no relation machinery to resolve it
			// against, so it carries no field here.
			continue
		}

		wireField := naming.Snake(string(f.Name()))
		df := Field{
			Name:      wireField,
			RustType:  mapping.RustType,
			WireField: wireField,
			Clauses:   clausesFor(f, ifo),
		}
		d.Fields = append(d.Fields, df)
	}
	return d, true
}

// clausesFor renders the declarative validate() clauses for one field,
// per spec.md §4.7 step 2: email/url/ascii are flag-form, length carries
// an unsigned 32-bit literal suffix regardless of the wire field's own
// type, range carries a suffix matching the wire field's integer width,
// and pattern is a parenthesized regex clause.
func clausesFor(f protoreflect.FieldDescriptor, ifo options.InputFieldOptions) []string {
	var clauses []string
	if ifo.Email {
		clauses = append(clauses, "email")
	}
	if ifo.URL {
		clauses = append(clauses, "url")
	}
	if ifo.ASCII {
		clauses = append(clauses, "ascii")
	}
	if ifo.MinLength != nil || ifo.MaxLength != nil {
		var parts []string
		if ifo.MinLength != nil {
			parts = append(parts, fmt.Sprintf("min = %du32", *ifo.MinLength))
		}
		if ifo.MaxLength != nil {
			parts = append(parts, fmt.Sprintf("max = %du32", *ifo.MaxLength))
		}
		clauses = append(clauses, fmt.Sprintf("length(%s)", strings.Join(parts, ", ")))
	}
	if ifo.Min != nil || ifo.Max != nil {
		suffix := intSuffix(f)
		var parts []string
		if ifo.Min != nil {
			parts = append(parts, fmt.Sprintf("min = %d%s", *ifo.Min, suffix))
		}
		if ifo.Max != nil {
			parts = append(parts, fmt.Sprintf("max = %d%s", *ifo.Max, suffix))
		}
		clauses = append(clauses, fmt.Sprintf("range(%s)", strings.Join(parts, ", ")))
	}
	if ifo.Pattern != "" {
		clauses = append(clauses, fmt.Sprintf("pattern(%q)", ifo.Pattern))
	}
	return clauses
}

// intSuffix matches the integer literal suffix to the wire field's width,
// so range checks compile against i32 fields as readily as i64 ones
// (spec.md §8: "on a 32-bit field, the emitted suffixes are i32").
func intSuffix(f protoreflect.FieldDescriptor) string {
	switch f.Kind() {
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return "i64"
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return "u32"
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return "u64"
	default:
		return "i32"
	}
}

// Render produces the Rust source for one domain type and, when
// GenerateTryFrom is set, its fallible TryFrom conversion from the wire
// type (spec.md §4.7 step 3, default false).
func Render(d Domain) string {
	var b strings.Builder
	b.WriteString("#[derive(Debug, Clone, PartialEq, Validate)]\n")
	fmt.Fprintf(&b, "pub struct %s {\n", d.RustName)
	for _, f := range d.Fields {
		if len(f.Clauses) == 0 {
			b.WriteString("    #[garde(skip)]\n")
		}
		for _, clause := range f.Clauses {
			fmt.Fprintf(&b, "    #[garde(%s)]\n", clause)
		}
		fmt.Fprintf(&b, "    pub %s: %s,\n", f.Name, f.RustType)
	}
	b.WriteString("}\n")

	if !d.GenerateTryFrom {
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "impl TryFrom<%s> for %s {\n", d.WireType, d.RustName)
	b.WriteString("    type Error = DomainError;\n\n")
	fmt.Fprintf(&b, "    fn try_from(value: %s) -> Result<Self, Self::Error> {\n", d.WireType)
	b.WriteString("        let domain = Self {\n")
	for _, f := range d.Fields {
		fmt.Fprintf(&b, "            %s: value.%s,\n", f.Name, f.WireField)
	}
	b.WriteString("        };\n")
	b.WriteString("        domain.validate(&()).map_err(DomainError::Validation)?;\n")
	b.WriteString("        Ok(domain)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// RenderDomainError produces the shared taxonomized conversion-error type
// that TryFrom impls return on a failed validate() call (spec.md §4.7
// step 3).
func RenderDomainError() string {
	return `#[derive(Debug, thiserror::Error)]
pub enum DomainError {
    #[error(transparent)]
    Validation(#[from] garde::Report),
}
`
}

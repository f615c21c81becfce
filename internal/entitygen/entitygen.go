// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entitygen assembles the Rust source for one SeaORM entity
// module: the DeriveEntityModel struct, its columns, its dense relation
// members, and any embedded nested structs (spec.md §4.6). A message with
// no seaorm.model option produces nothing at all; one with skip set
// likewise produces nothing.
package entitygen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/seaormgen/protoc-gen-seaorm/internal/codegen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/oneofgen"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
	"github.com/seaormgen/protoc-gen-seaorm/internal/relation"
	"github.com/seaormgen/protoc-gen-seaorm/internal/typemap"
)

// Column is one plain (non-relation) member of the Model struct.
type Column struct {
	FieldName string
	RustType  string
	Attrs     []string
}

// Entity is the fully resolved shape of one entity module.
type Entity struct {
	ModuleName string
	TableName  string
	Columns    []Column
	Oneofs     []OneofBlock
	Relations  []relation.Resolved
	Indexes    []options.IndexDef
	Embeds     []EmbeddedStruct
}

// EmbeddedStruct is a plain, JSON-serializable struct emitted for a
// message field carrying the embed flag (spec.md §4.6 step 4): it is
// rendered inside the referencing entity's module regardless of whether
// the embedded message also has its own seaorm.model options.
type EmbeddedStruct struct {
	RustName string
	Fields   []EmbeddedField
}

// EmbeddedField is one member of an embedded struct.
type EmbeddedField struct {
	Name     string
	RustType string
}

// OneofBlock is one compiled oneof's columns, kept grouped for rendering
// clarity (they remain plain, unprefixed Model fields in the generated
// struct).
type OneofBlock struct {
	Columns []oneofgen.Column
}

// Deps lets Build call back into sibling caches without importing
// internal/options' Cache type directly into every call site.
type Deps struct {
	Cache        *options.Cache
	EnumRustName func(protoreflect.EnumDescriptor) string
}

// Build resolves one message's entity shape. ok is false when the message
// carries no seaorm.model option, or is explicitly skipped. A non-nil
// error is a *codegen.Error scoped to this message's full name (spec.md
// §7: InvalidConfig and UnknownFieldType are entity-scoped — the whole
// entity is skipped, not just the offending field, so a caller can report
// it and move on to the next message).
func Build(m protoreflect.MessageDescriptor, deps Deps) (Entity, bool, error) {
	fullName := string(m.FullName())
	mo, hasModel := deps.Cache.Model(fullName)
	if !hasModel || mo.Skip {
		return Entity{}, false, nil
	}

	moduleName := naming.Snake(string(m.Name()))
	tableName := mo.TableName
	if tableName == "" {
		tableName = moduleName
	}

	ent := Entity{
		ModuleName: moduleName,
		TableName:  tableName,
		Indexes:    mo.Indexes,
	}

	fieldOpts := func(f protoreflect.FieldDescriptor) options.ColumnOptions {
		co, _ := deps.Cache.Column(fullName, int32(f.Number()))
		return co
	}

	var hints []relation.FieldHint
	handledOneofs := map[protoreflect.Name]bool{}
	seenEmbeds := map[string]bool{}

	fields := m.Fields()
	for i := 0; i < fields.Len(); i++ {
		f := fields.Get(i)
		co := fieldOpts(f)

		if oneofgen.IsMember(f) {
			oname := f.ContainingOneof().Name()
			if handledOneofs[oname] {
				continue
			}
			handledOneofs[oname] = true
			oo, _ := deps.Cache.Oneof(fullName, int32(f.ContainingOneof().Index()))
			cols := oneofgen.Compile(f.ContainingOneof(), oo, fieldOpts, deps.EnumRustName)
			ent.Oneofs = append(ent.Oneofs, OneofBlock{Columns: cols})
			continue
		}

		if co.BelongsTo != "" || co.HasOne != "" || co.HasMany != "" {
			hints = append(hints, relation.FieldHint{
				FieldName:     string(f.Name()),
				BelongsTo:     co.BelongsTo,
				BelongsToFrom: co.BelongsToFrom,
				BelongsToTo:   co.BelongsToTo,
				HasOne:        co.HasOne,
				HasMany:       co.HasMany,
				HasManyVia:    co.HasManyVia,
			})
			continue
		}

		mapping, err := typemap.Map(f, co, deps.EnumRustName)
		if err != nil {
			if ce, ok := err.(*codegen.Error); ok {
				ce.Entity = fullName
			}
			return Entity{}, false, err
		}
		if mapping.IsRelation {
			// Non-embedded message references with no explicit
			// relation hint carry no column and no relation: the
			// field is simply not representable without annotation.
			continue
		}

		if mapping.IsEmbedded {
			collectEmbedded(f.Message(), deps, seenEmbeds, &ent.Embeds)
		}

		ent.Columns = append(ent.Columns, buildColumn(f, co, mapping))
	}

	ent.Relations = relation.Resolve(string(m.Name()), mo.Relations, hints)

	return ent, true, nil
}

// collectEmbedded renders one message as a plain JSON-serializable struct
// and appends it to out, recursing into any of its own message-typed
// fields (an embedded struct has no relation machinery available to it,
// so nested message fields are always embedded too, regardless of
// whether the inner field repeats the embed flag).
func collectEmbedded(m protoreflect.MessageDescriptor, deps Deps, seen map[string]bool, out *[]EmbeddedStruct) {
	rustName := naming.Pascal(string(m.Name()))
	if seen[rustName] {
		return
	}
	seen[rustName] = true

	fullName := string(m.FullName())
	es := EmbeddedStruct{RustName: rustName}
	fields := m.Fields()
	for i := 0; i < fields.Len(); i++ {
		f := fields.Get(i)
		co, _ := deps.Cache.Column(fullName, int32(f.Number()))
		mapping, _ := typemap.Map(f, co, deps.EnumRustName)
		if mapping.IsRelation {
			// No relation machinery inside a JSON blob: treat it as
			// nested embedding instead.
			mapping.IsEmbedded = true
			mapping.RustType = naming.Pascal(string(f.Message().Name()))
			if mapping.Nullable {
				mapping.RustType = "Option<" + mapping.RustType + ">"
			}
		}
		if mapping.IsEmbedded {
			collectEmbedded(f.Message(), deps, seen, out)
		}
		es.Fields = append(es.Fields, EmbeddedField{
			Name:     naming.Snake(string(f.Name())),
			RustType: mapping.RustType,
		})
	}
	*out = append(*out, es)
}

func buildColumn(f protoreflect.FieldDescriptor, co options.ColumnOptions, mapping typemap.Mapping) Column {
	colName := co.ColumnName
	if colName == "" {
		colName = naming.Snake(string(f.Name()))
	}

	var attrs []string
	if co.PrimaryKey {
		attrs = append(attrs, "primary_key")
	}
	if co.AutoIncrement {
		attrs = append(attrs, "auto_increment")
	}
	if co.Unique {
		attrs = append(attrs, "unique")
	}
	if colName != naming.Snake(string(f.Name())) {
		attrs = append(attrs, fmt.Sprintf("column_name = %q", colName))
	}
	if co.ColumnType != "" {
		attrs = append(attrs, fmt.Sprintf("column_type = %q", co.ColumnType))
	}
	if co.DefaultValue != "" {
		attrs = append(attrs, fmt.Sprintf("default_value = %q", co.DefaultValue))
	}
	if mapping.Nullable {
		attrs = append(attrs, "nullable")
	}

	return Column{
		FieldName: naming.Snake(string(f.Name())),
		RustType:  mapping.RustType,
		Attrs:     attrs,
	}
}

// Render produces the Rust source for one entity module.
func Render(e Entity) string {
	var b strings.Builder
	b.WriteString("use sea_orm::entity::prelude::*;\n\n")
	for _, es := range e.Embeds {
		renderEmbedded(&b, es)
	}
	b.WriteString("#[derive(Clone, Debug, PartialEq, DeriveEntityModel)]\n")
	fmt.Fprintf(&b, "#[sea_orm(table_name = %q)]\n", e.TableName)
	b.WriteString("pub struct Model {\n")
	for _, c := range e.Columns {
		if len(c.Attrs) > 0 {
			fmt.Fprintf(&b, "    #[sea_orm(%s)]\n", strings.Join(c.Attrs, ", "))
		}
		fmt.Fprintf(&b, "    pub %s: %s,\n", c.FieldName, c.RustType)
	}
	for _, ob := range e.Oneofs {
		for _, c := range ob.Columns {
			attr := "column_name = " + quote(c.Name)
			if c.Discriminator {
				attr += ", column_type = \"String(None)\""
			}
			fmt.Fprintf(&b, "    #[sea_orm(%s)]\n", attr)
			fmt.Fprintf(&b, "    pub %s: %s,\n", c.Name, c.RustType)
		}
	}
	for _, r := range e.Relations {
		renderRelationField(&b, r)
	}
	b.WriteString("}\n")
	return b.String()
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// renderEmbedded emits one nested struct definition for an embedded
// message field: plain data carried as a JSON column rather than a
// relation, so it derives serialization and SeaORM's JSON-query trait
// instead of the entity-model macro.
func renderEmbedded(b *strings.Builder, es EmbeddedStruct) {
	b.WriteString("#[derive(Clone, Debug, PartialEq, Serialize, Deserialize, FromJsonQueryResult)]\n")
	fmt.Fprintf(b, "pub struct %s {\n", es.RustName)
	for _, f := range es.Fields {
		fmt.Fprintf(b, "    pub %s: %s,\n", f.Name, f.RustType)
	}
	b.WriteString("}\n\n")
}

func renderRelationField(b *strings.Builder, r relation.Resolved) {
	target := "super::" + r.TargetEntity + "::Entity"
	if r.SelfRef {
		target = "Entity"
	}

	var attrs []string
	switch r.Type {
	case options.BelongsTo:
		if r.SelfRef {
			attrs = append(attrs, "self_ref", fmt.Sprintf("relation_enum = %q", r.EnumName))
			if r.ReversePartner != "" {
				attrs = append(attrs, fmt.Sprintf("relation_reverse = %q", r.ReversePartner))
			}
		} else {
			attrs = append(attrs, "belongs_to")
		}
		attrs = append(attrs, fmt.Sprintf("from = %q", "Column::"+naming.Pascal(r.FromColumn)))
		attrs = append(attrs, fmt.Sprintf("to = %q", target+"::Column::"+naming.Pascal(r.ToColumn)))
		fmt.Fprintf(b, "    #[sea_orm(%s)]\n", strings.Join(attrs, ", "))
		fmt.Fprintf(b, "    pub %s: HasOne<%s>,\n", r.Name, target)
	case options.HasOne:
		attrs = append(attrs, "has_one")
		if r.SelfRef {
			attrs = append(attrs, fmt.Sprintf("relation_enum = %q", r.EnumName))
			if r.ReversePartner != "" {
				attrs = append(attrs, fmt.Sprintf("relation_reverse = %q", r.ReversePartner))
			}
		}
		fmt.Fprintf(b, "    #[sea_orm(%s)]\n", strings.Join(attrs, ", "))
		fmt.Fprintf(b, "    pub %s: HasOne<%s>,\n", r.Name, target)
	case options.HasMany, options.ManyToMany:
		attrs = append(attrs, "has_many")
		if r.Via != "" {
			attrs = append(attrs, fmt.Sprintf("via = %q", "super::"+r.Via))
		}
		if r.SelfRef {
			attrs = append(attrs, fmt.Sprintf("relation_enum = %q", r.EnumName))
			if r.ReversePartner != "" {
				attrs = append(attrs, fmt.Sprintf("relation_reverse = %q", r.ReversePartner))
			}
		}
		fmt.Fprintf(b, "    #[sea_orm(%s)]\n", strings.Join(attrs, ", "))
		fmt.Fprintf(b, "    pub %s: HasMany<%s>,\n", r.Name, target)
	}
}

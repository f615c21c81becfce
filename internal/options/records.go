// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

// RelationType mirrors the seaorm.RelationType enum (spec.md §3).
type RelationType int

const (
	RelationUnspecified RelationType = iota
	BelongsTo
	HasOne
	HasMany
	ManyToMany
)

// EnumStorageKind mirrors seaorm.EnumStorageKind.
type EnumStorageKind int

const (
	EnumStorageUnspecified EnumStorageKind = iota
	EnumStorageString
	EnumStorageInteger
)

// OneofStrategy mirrors seaorm.OneofStrategy. Flatten is the default used
// whenever a oneof carries no explicit seaorm.oneof option (spec.md §4.4).
type OneofStrategy int

const (
	OneofStrategyUnspecified OneofStrategy = iota
	Flatten
	JSON
	Tagged
)

// IndexDef is one entry of ModelOptions.indexes.
type IndexDef struct {
	Name    string
	Columns []string
	Unique  bool
}

// RelationRecord is one entry of ModelOptions.relations, the message-level
// relation declaration form (spec.md §4.3, original_source
// generate_relation_from_def).
type RelationRecord struct {
	Name       string
	Type       RelationType
	Related    string
	ForeignKey string
	References string
	Through    string
}

// ModelOptions is the decoded form of seaorm.model (a MessageOptions
// extension).
type ModelOptions struct {
	TableName string
	Skip      bool
	Indexes   []IndexDef
	Relations []RelationRecord
}

// ColumnOptions is the decoded form of seaorm.field (a FieldOptions
// extension). It also carries the legacy per-field relation hints
// (BelongsTo/HasOne/HasMany) alongside the message-level Relations form.
type ColumnOptions struct {
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	Nullable      *bool
	ColumnName    string
	ColumnType    string
	DefaultValue  string
	Embed         bool

	BelongsTo     string
	BelongsToFrom string
	BelongsToTo   string
	HasOne        string
	HasMany       string
	HasManyVia    string
}

// EnumOptions is the decoded form of seaorm.enum_opt (an EnumOptions
// extension).
type EnumOptions struct {
	RustType string
	Storage  EnumStorageKind
	Skip     bool
}

// EnumValueOptions is the decoded form of seaorm.enum_value.
type EnumValueOptions struct {
	Rename      string
	StringValue string
	IntValue    *int64
}

// OneofOptions is the decoded form of seaorm.oneof.
type OneofOptions struct {
	Strategy             OneofStrategy
	ColumnPrefix         string
	DiscriminatorColumn string
}

// ServiceOptions is the decoded form of seaorm.service.
type ServiceOptions struct {
	GenerateStorage bool
	TraitName       string
}

// InputMessageOptions is the decoded form of seaorm.input_message.
type InputMessageOptions struct {
	DomainType       string
	GenerateTryFrom  bool
}

// InputFieldOptions is the decoded form of seaorm.input (a FieldOptions
// extension distinct from seaorm.field; attached to fields of messages
// that declare seaorm.input_message).
type InputFieldOptions struct {
	Email     bool
	URL       bool
	ASCII     bool
	MinLength *uint32
	MaxLength *uint32
	Min       *int64
	Max       *int64
	Pattern   string
}

// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

// fieldKey identifies a field or enum value within its parent, by the
// parent's fully-qualified name plus the field/enum-value number. Numbers,
// not indices, are used because a field's position in source order can
// differ across proto revisions while its number is the stable identity
// (spec.md §3).
type fieldKey struct {
	parent string
	number int32
}

// oneofKey identifies a oneof within its parent message by declaration
// index, since oneofs (unlike fields) have no wire number of their own.
type oneofKey struct {
	parent string
	index  int32
}

// Cache holds every seaorm option record recovered from one
// CodeGeneratorRequest, keyed for O(1) lookup during code generation. It is
// populated once up front (Build) and is read-only for the remainder of a
// run (spec.md §4.1, §5 concurrency model: safe for concurrent readers
// once built).
type Cache struct {
	messages   map[string]ModelOptions
	fields     map[fieldKey]ColumnOptions
	enums      map[string]EnumOptions
	enumValues map[fieldKey]EnumValueOptions
	oneofs     map[oneofKey]OneofOptions
	services   map[string]ServiceOptions
	inputMsgs  map[string]InputMessageOptions
	inputFlds  map[fieldKey]InputFieldOptions
}

func newCache() *Cache {
	return &Cache{
		messages:   make(map[string]ModelOptions),
		fields:     make(map[fieldKey]ColumnOptions),
		enums:      make(map[string]EnumOptions),
		enumValues: make(map[fieldKey]EnumValueOptions),
		oneofs:     make(map[oneofKey]OneofOptions),
		services:   make(map[string]ServiceOptions),
		inputMsgs:  make(map[string]InputMessageOptions),
		inputFlds:  make(map[fieldKey]InputFieldOptions),
	}
}

// Model returns the decoded seaorm.model options for a message, identified
// by fully-qualified name, and whether any were present at all (neither an
// extension nor a matching uninterpreted_option).
func (c *Cache) Model(fullName string) (ModelOptions, bool) {
	o, ok := c.messages[fullName]
	return o, ok
}

// Column returns the decoded seaorm.field options for a field, identified
// by its parent message's fully-qualified name and field number.
func (c *Cache) Column(parent string, number int32) (ColumnOptions, bool) {
	o, ok := c.fields[fieldKey{parent, number}]
	return o, ok
}

// Enum returns the decoded seaorm.enum_opt options for an enum type.
func (c *Cache) Enum(fullName string) (EnumOptions, bool) {
	o, ok := c.enums[fullName]
	return o, ok
}

// EnumValue returns the decoded seaorm.enum_value options for an enum
// value, identified by the parent enum's fully-qualified name and the
// value's number.
func (c *Cache) EnumValue(parentEnum string, number int32) (EnumValueOptions, bool) {
	o, ok := c.enumValues[fieldKey{parentEnum, number}]
	return o, ok
}

// Oneof returns the decoded seaorm.oneof options for a oneof, identified
// by the parent message's fully-qualified name and the oneof's
// declaration index.
func (c *Cache) Oneof(parent string, index int32) (OneofOptions, bool) {
	o, ok := c.oneofs[oneofKey{parent, index}]
	return o, ok
}

// Service returns the decoded seaorm.service options for a service.
func (c *Cache) Service(fullName string) (ServiceOptions, bool) {
	o, ok := c.services[fullName]
	return o, ok
}

// InputMessage returns the decoded seaorm.input_message options for a
// message.
func (c *Cache) InputMessage(fullName string) (InputMessageOptions, bool) {
	o, ok := c.inputMsgs[fullName]
	return o, ok
}

// InputField returns the decoded seaorm.input options for a field of an
// input message.
func (c *Cache) InputField(parent string, number int32) (InputFieldOptions, bool) {
	o, ok := c.inputFlds[fieldKey{parent, number}]
	return o, ok
}

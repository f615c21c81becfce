// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen defines the output and error types shared by every
// generator package: the (path, content) pairs written into the
// CodeGeneratorResponse, and the error taxonomy distinguishing
// entity-scoped failures (collected, so one bad message doesn't abort
// the whole run) from process-scoped ones (abort immediately) — spec.md
// §7.
package codegen

import (
	"errors"
	"fmt"
)

// Kind classifies a generation error.
type Kind int

const (
	// OptionsParse: a seaorm option could not be decoded (entity-scoped).
	OptionsParse Kind = iota
	// UnknownFieldType: typemap encountered a field kind it cannot map
	// (entity-scoped).
	UnknownFieldType
	// InvalidConfig: an option combination is self-contradictory, e.g. an
	// embed flag paired with a column_type override (entity-scoped).
	InvalidConfig
	// CodeGenFailure: rendering a resolved entity/enum/domain/trait
	// shape into Rust source failed (entity-scoped).
	CodeGenFailure
	// Decode: the CodeGeneratorRequest itself could not be unmarshaled
	// (process-scoped; aborts the run).
	Decode
)

func (k Kind) String() string {
	switch k {
	case OptionsParse:
		return "options parse error"
	case UnknownFieldType:
		return "unknown field type"
	case InvalidConfig:
		return "invalid configuration"
	case CodeGenFailure:
		return "code generation failed"
	case Decode:
		return "decode error"
	default:
		return "error"
	}
}

// Error is a single generation failure, optionally scoped to the
// full name of the message/enum/service that produced it.
type Error struct {
	Kind   Kind
	Entity string
	Err    error
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an entity-scoped Error.
func New(kind Kind, entity string, err error) *Error {
	return &Error{Kind: kind, Entity: entity, Err: err}
}

// Collector accumulates entity-scoped errors across a run without
// aborting it; Err reports them all joined into one error (spec.md §7: "a malformed message is skipped with an error
// recorded against it; unrelated messages still generate").
type Collector struct {
	errs []error
}

// Add records an entity-scoped error.
func (c *Collector) Add(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

// Err returns the joined error, or nil if nothing was collected.
func (c *Collector) Err() error {
	return errors.Join(c.errs...)
}

// Len reports how many errors have been collected.
func (c *Collector) Len() int { return len(c.errs) }

// EmittedFile is one (path, content) pair destined for the
// CodeGeneratorResponse.
type EmittedFile struct {
	Name    string
	Content string
}

// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"strconv"
	"strings"
	"unicode"

	"google.golang.org/protobuf/types/descriptorpb"
)

// legacy.go implements the fallback path: decoding seaorm options from
// uninterpreted_option when the extension was not resolved against a
// known descriptor (some protoc frontends strip or never attach compiled
// extension definitions for plugin-private options, leaving only the raw
// text-format aggregate that was written in the .proto source — spec.md
// §4.1). The parser below is a small hand-written tokenizer over that
// aggregate text, not a general text-format parser: it supports exactly
// the literal shapes the seaorm option messages use (quoted strings,
// bare identifiers, integers, booleans, comma-separated bracketed arrays,
// and brace-delimited sub-records).

// value is the generic parse result of one aggregate_value body: either a
// scalar (string/bool/int64), a nested record (map), or an array of
// values.
type value struct {
	kind   valueKind
	str    string
	b      bool
	num    int64
	record map[string]value
	list   []value
}

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindRecord
	kindList
)

func findUninterpreted(opts []*descriptorpb.UninterpretedOption, extensionName string) (string, bool) {
	for _, o := range opts {
		parts := o.GetName()
		if len(parts) != 1 {
			continue
		}
		if !parts[0].GetIsExtension() || parts[0].GetNamePart() != extensionName {
			continue
		}
		return o.GetAggregateValue(), true
	}
	return "", false
}

func parseAggregate(text string) map[string]value {
	p := &parser{toks: tokenize(text)}
	return p.record()
}

type token struct {
	kind tokKind
	text string
}

type tokKind int

const (
	tokIdent tokKind = iota
	tokString
	tokNumber
	tokColon
	tokComma
	tokLBrace
	tokRBrace
	tokLBrack
	tokRBrack
)

func tokenize(s string) []token {
	var toks []token
	r := []rune(s)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == ':':
			toks = append(toks, token{tokColon, ":"})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case c == '{':
			toks = append(toks, token{tokLBrace, "{"})
			i++
		case c == '}':
			toks = append(toks, token{tokRBrace, "}"})
			i++
		case c == '[':
			toks = append(toks, token{tokLBrack, "["})
			i++
		case c == ']':
			toks = append(toks, token{tokRBrack, "]"})
			i++
		case c == '"' || c == '\'':
			quote := c
			j := i + 1
			var sb strings.Builder
			for j < len(r) && r[j] != quote {
				if r[j] == '\\' && j+1 < len(r) {
					j++
				}
				sb.WriteRune(r[j])
				j++
			}
			toks = append(toks, token{tokString, sb.String()})
			i = j + 1
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(r) && (unicode.IsLetter(r[j]) || unicode.IsDigit(r[j]) || r[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(r[i:j])})
			i = j
		case unicode.IsDigit(c) || c == '-':
			j := i + 1
			for j < len(r) && (unicode.IsDigit(r[j]) || r[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(r[i:j])})
			i = j
		default:
			i++
		}
	}
	return toks
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// record parses a sequence of `ident [:] value [,]` pairs until input is
// exhausted or a closing brace is encountered (the brace itself is left
// for the caller).
func (p *parser) record() map[string]value {
	out := make(map[string]value)
	for {
		t, ok := p.peek()
		if !ok || t.kind == tokRBrace {
			return out
		}
		if t.kind == tokComma {
			p.next()
			continue
		}
		key, ok := p.next()
		if !ok || key.kind != tokIdent {
			return out
		}
		if t2, ok := p.peek(); ok && t2.kind == tokColon {
			p.next()
		}
		v, ok := p.parseValue()
		if !ok {
			return out
		}
		out[key.text] = v
	}
}

func (p *parser) parseValue() (value, bool) {
	t, ok := p.next()
	if !ok {
		return value{}, false
	}
	switch t.kind {
	case tokString:
		return value{kind: kindString, str: t.text}, true
	case tokIdent:
		switch t.text {
		case "true":
			return value{kind: kindBool, b: true}, true
		case "false":
			return value{kind: kindBool, b: false}, true
		default:
			return value{kind: kindString, str: t.text}, true
		}
	case tokNumber:
		n, _ := strconv.ParseInt(t.text, 10, 64)
		return value{kind: kindInt, num: n}, true
	case tokLBrace:
		r := p.record()
		if t2, ok := p.peek(); ok && t2.kind == tokRBrace {
			p.next()
		}
		return value{kind: kindRecord, record: r}, true
	case tokLBrack:
		var list []value
		for {
			t2, ok := p.peek()
			if !ok || t2.kind == tokRBrack {
				if ok {
					p.next()
				}
				break
			}
			if t2.kind == tokComma {
				p.next()
				continue
			}
			v, ok := p.parseValue()
			if !ok {
				break
			}
			list = append(list, v)
		}
		return value{kind: kindList, list: list}, true
	default:
		return value{}, false
	}
}

func vstr(rec map[string]value, key string) string {
	if f, ok := rec[key]; ok && f.kind == kindString {
		return f.str
	}
	return ""
}

func vbool(rec map[string]value, key string) bool {
	if f, ok := rec[key]; ok && f.kind == kindBool {
		return f.b
	}
	return false
}

func vboolPtr(rec map[string]value, key string) *bool {
	if f, ok := rec[key]; ok && f.kind == kindBool {
		b := f.b
		return &b
	}
	return nil
}

func vint64Ptr(rec map[string]value, key string) *int64 {
	if f, ok := rec[key]; ok && f.kind == kindInt {
		n := f.num
		return &n
	}
	return nil
}

func vuint32Ptr(rec map[string]value, key string) *uint32 {
	if f, ok := rec[key]; ok && f.kind == kindInt {
		n := uint32(f.num)
		return &n
	}
	return nil
}

func vstrings(rec map[string]value, key string) []string {
	f, ok := rec[key]
	if !ok || f.kind != kindList {
		return nil
	}
	out := make([]string, 0, len(f.list))
	for _, e := range f.list {
		if e.kind == kindString {
			out = append(out, e.str)
		}
	}
	return out
}

func vrecords(rec map[string]value, key string) []map[string]value {
	f, ok := rec[key]
	if !ok || f.kind != kindList {
		return nil
	}
	out := make([]map[string]value, 0, len(f.list))
	for _, e := range f.list {
		if e.kind == kindRecord {
			out = append(out, e.record)
		}
	}
	return out
}

func legacyModelOptions(opts *descriptorpb.MessageOptions) (ModelOptions, bool) {
	if opts == nil {
		return ModelOptions{}, false
	}
	text, ok := findUninterpreted(opts.GetUninterpretedOption(), "seaorm.model")
	if !ok {
		return ModelOptions{}, false
	}
	rec := parseAggregate(text)
	mo := ModelOptions{
		TableName: vstr(rec, "table_name"),
		Skip:      vbool(rec, "skip"),
	}
	for _, ir := range vrecords(rec, "indexes") {
		mo.Indexes = append(mo.Indexes, IndexDef{
			Name:    vstr(ir, "name"),
			Columns: vstrings(ir, "columns"),
			Unique:  vbool(ir, "unique"),
		})
	}
	for _, rr := range vrecords(rec, "relations") {
		mo.Relations = append(mo.Relations, RelationRecord{
			Name:       vstr(rr, "name"),
			Type:       relationTypeFromString(vstr(rr, "type")),
			Related:    vstr(rr, "related"),
			ForeignKey: vstr(rr, "foreign_key"),
			References: vstr(rr, "references"),
			Through:    vstr(rr, "through"),
		})
	}
	return mo, true
}

func legacyColumnOptions(opts *descriptorpb.FieldOptions) (ColumnOptions, bool) {
	if opts == nil {
		return ColumnOptions{}, false
	}
	text, ok := findUninterpreted(opts.GetUninterpretedOption(), "seaorm.field")
	if !ok {
		return ColumnOptions{}, false
	}
	rec := parseAggregate(text)
	return ColumnOptions{
		PrimaryKey:    vbool(rec, "primary_key"),
		AutoIncrement: vbool(rec, "auto_increment"),
		Unique:        vbool(rec, "unique"),
		Nullable:      vboolPtr(rec, "nullable"),
		ColumnName:    vstr(rec, "column_name"),
		ColumnType:    vstr(rec, "column_type"),
		DefaultValue:  vstr(rec, "default_value"),
		Embed:         vbool(rec, "embed"),
		BelongsTo:     vstr(rec, "belongs_to"),
		BelongsToFrom: vstr(rec, "belongs_to_from"),
		BelongsToTo:   vstr(rec, "belongs_to_to"),
		HasOne:        vstr(rec, "has_one"),
		HasMany:       vstr(rec, "has_many"),
		HasManyVia:    vstr(rec, "has_many_via"),
	}, true
}

func relationTypeFromString(s string) RelationType {
	switch strings.ToUpper(s) {
	case "BELONGS_TO":
		return BelongsTo
	case "HAS_ONE":
		return HasOne
	case "HAS_MANY":
		return HasMany
	case "MANY_TO_MANY":
		return ManyToMany
	default:
		return RelationUnspecified
	}
}

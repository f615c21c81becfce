// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relation resolves seaorm relation declarations — both the
// message-level seaorm.model.relations list and the legacy per-field
// belongs_to/has_one/has_many hints on seaorm.field — into fully defaulted
// relation descriptors ready for entity-code emission, including
// self-referential pairing (spec.md §4.3).
package relation

import (
	"strings"

	"github.com/seaormgen/protoc-gen-seaorm/internal/naming"
	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

// Resolved is one fully defaulted relation ready for emission.
type Resolved struct {
	Name           string // snake_case field name
	EnumName       string // PascalCase relation-enum / attribute name
	Type           options.RelationType
	TargetEntity   string // snake_case target entity module name
	FromColumn     string
	ToColumn       string
	Via            string // snake_case junction module name, many-to-many only
	SelfRef        bool
	ReversePartner string // PascalCase name of the complementary self-ref relation, if any
}

// FieldHint is a legacy per-field relation declaration, carried on
// seaorm.field rather than seaorm.model.relations.
type FieldHint struct {
	FieldName  string
	BelongsTo  string
	BelongsToFrom string
	BelongsToTo   string
	HasOne     string
	HasMany    string
	HasManyVia string
}

// Resolve builds the full set of relations declared for one message, by
// combining the modern message-level records with the legacy field
// hints, defaulting foreign keys, and pairing up self-referential
// relations.
func Resolve(currentEntity string, records []options.RelationRecord, hints []FieldHint) []Resolved {
	currentSnake := naming.Snake(currentEntity)

	var out []Resolved
	for _, r := range records {
		if res, ok := fromRecord(r); ok {
			out = append(out, res)
		}
	}
	for _, h := range hints {
		out = append(out, fromHints(h)...)
	}

	for i := range out {
		out[i].SelfRef = naming.Snake(out[i].TargetEntity) == currentSnake
	}
	pairSelfReferences(out)
	return out
}

func fromRecord(r options.RelationRecord) (Resolved, bool) {
	if r.Type == options.RelationUnspecified || r.Related == "" || r.Name == "" {
		return Resolved{}, false
	}
	res := Resolved{
		Name:         naming.Snake(r.Name),
		EnumName:     naming.Pascal(r.Name),
		Type:         r.Type,
		TargetEntity: naming.Snake(r.Related),
		Via:          naming.Snake(r.Through),
	}
	switch r.Type {
	case options.BelongsTo:
		res.FromColumn = r.ForeignKey
		if res.FromColumn == "" {
			res.FromColumn = naming.Snake(r.Related) + "_id"
		}
		res.ToColumn = r.References
		if res.ToColumn == "" {
			res.ToColumn = "id"
		}
	default:
		res.FromColumn = r.ForeignKey
		res.ToColumn = r.References
	}
	return res, true
}

// fromHints ports the legacy per-field form: a single seaorm.field option
// may set at most one of belongs_to/has_one/has_many, naming the relation
// after the field it annotates.
func fromHints(h FieldHint) []Resolved {
	var out []Resolved
	add := func(target string, typ options.RelationType, via string) {
		if target == "" {
			return
		}
		res := Resolved{
			Name:         naming.Snake(h.FieldName),
			EnumName:     naming.Pascal(h.FieldName),
			Type:         typ,
			TargetEntity: naming.Snake(target),
			Via:          naming.Snake(via),
		}
		if typ == options.BelongsTo {
			res.FromColumn = h.BelongsToFrom
			if res.FromColumn == "" {
				res.FromColumn = naming.Snake(target) + "_id"
			}
			res.ToColumn = h.BelongsToTo
			if res.ToColumn == "" {
				res.ToColumn = "id"
			}
		}
		out = append(out, res)
	}
	add(h.BelongsTo, options.BelongsTo, "")
	add(h.HasOne, options.HasOne, "")
	if h.HasManyVia != "" {
		add(h.HasMany, options.ManyToMany, h.HasManyVia)
	} else {
		add(h.HasMany, options.HasMany, "")
	}
	return out
}

// complementary reports whether two relation kinds form a valid
// self-referential pair: belongs-to pairs with either has-one or
// has-many on the other side.
func complementary(a, b options.RelationType) bool {
	pair := func(x, y options.RelationType) bool {
		return (a == x && b == y) || (a == y && b == x)
	}
	return pair(options.BelongsTo, options.HasOne) || pair(options.BelongsTo, options.HasMany)
}

// pairSelfReferences implements the self-referential matching algorithm:
// for every self-referential relation, find a different, complementary,
// also-self-referential relation on the same message and record its name
// as the reverse partner, so the emitted attributes can wire them
// together instead of as two independent relations (spec.md §4.3).
func pairSelfReferences(rs []Resolved) {
	for i := range rs {
		if !rs[i].SelfRef {
			continue
		}
		for j := range rs {
			if i == j || !rs[j].SelfRef {
				continue
			}
			if strings.EqualFold(rs[i].Name, rs[j].Name) {
				continue
			}
			if !complementary(rs[i].Type, rs[j].Type) {
				continue
			}
			if rs[i].FromColumn != "" && rs[j].FromColumn != "" && rs[i].FromColumn != rs[j].FromColumn {
				continue
			}
			rs[i].ReversePartner = rs[j].EnumName
			break
		}
	}
}

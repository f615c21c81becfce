// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seaormgen/protoc-gen-seaorm/internal/options"
)

func TestResolveFromRecordDefaultsForeignKey(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "author", Type: options.BelongsTo, Related: "User"},
	}
	out := Resolve("Post", records, nil)
	require.Len(t, out, 1)
	require.Equal(t, "author", out[0].Name)
	require.Equal(t, "user_id", out[0].FromColumn)
	require.Equal(t, "id", out[0].ToColumn)
	require.Equal(t, "user", out[0].TargetEntity)
}

func TestResolveFromRecordExplicitKeys(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "author", Type: options.BelongsTo, Related: "User", ForeignKey: "writer_id", References: "uuid"},
	}
	out := Resolve("Post", records, nil)
	require.Len(t, out, 1)
	require.Equal(t, "writer_id", out[0].FromColumn)
	require.Equal(t, "uuid", out[0].ToColumn)
}

func TestResolveIgnoresIncompleteRecords(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "", Type: options.BelongsTo, Related: "User"},
		{Name: "author", Type: options.RelationUnspecified, Related: "User"},
		{Name: "author", Type: options.BelongsTo, Related: ""},
	}
	out := Resolve("Post", records, nil)
	require.Empty(t, out)
}

func TestResolveFromLegacyFieldHints(t *testing.T) {
	hints := []FieldHint{
		{FieldName: "author", BelongsTo: "User"},
		{FieldName: "comments", HasMany: "Comment"},
	}
	out := Resolve("Post", nil, hints)
	require.Len(t, out, 2)

	var names []string
	for _, r := range out {
		names = append(names, r.Name)
	}
	require.ElementsMatch(t, []string{"author", "comments"}, names)
}

func TestResolveHasManyViaProducesManyToMany(t *testing.T) {
	hints := []FieldHint{
		{FieldName: "tags", HasMany: "Tag", HasManyVia: "PostTag"},
	}
	out := Resolve("Post", nil, hints)
	require.Len(t, out, 1)
	require.Equal(t, options.ManyToMany, out[0].Type)
	require.Equal(t, "post_tag", out[0].Via)
}

func TestResolveSelfReferencePairing(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "parent", Type: options.BelongsTo, Related: "Category", ForeignKey: "parent_id"},
		{Name: "children", Type: options.HasMany, Related: "Category", ForeignKey: "parent_id"},
	}
	out := Resolve("Category", records, nil)
	require.Len(t, out, 2)

	byName := map[string]Resolved{}
	for _, r := range out {
		require.True(t, r.SelfRef)
		byName[r.Name] = r
	}
	require.Equal(t, "Children", byName["parent"].ReversePartner)
	require.Equal(t, "Parent", byName["children"].ReversePartner)
}

func TestResolveSelfReferenceNotPairedAcrossDifferentKeys(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "parent", Type: options.BelongsTo, Related: "Category", ForeignKey: "parent_id"},
		{Name: "mentor", Type: options.HasMany, Related: "Category", ForeignKey: "mentor_id"},
	}
	out := Resolve("Category", records, nil)
	require.Len(t, out, 2)
	for _, r := range out {
		require.Empty(t, r.ReversePartner)
	}
}

func TestResolveNonSelfReferenceHasNoReversePartner(t *testing.T) {
	records := []options.RelationRecord{
		{Name: "author", Type: options.BelongsTo, Related: "User"},
	}
	out := Resolve("Post", records, nil)
	require.Len(t, out, 1)
	require.False(t, out[0].SelfRef)
	require.Empty(t, out[0].ReversePartner)
}

package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/model"
)

func TestNormalizeAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want model.Action
	}{
		{"", model.ActionNone},
		{"none", model.ActionNone},
		{"cascade", model.ActionCascade},
		{"setnull", model.ActionSetNull},
		{"set  null", model.ActionSetNull},
		{"SETDEFAULT", model.ActionSetDefault},
		{"restrict", model.ActionRestrict},
		{"no action", model.ActionNoAction},
		{"whatever", model.Action("WHATEVER")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, model.NormalizeAction(tt.in))
		})
	}
}

func TestNormalizeJoinType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, model.JoinInner, model.NormalizeJoinType(""))
	assert.Equal(t, model.JoinLeft, model.NormalizeJoinType("left"))
	assert.Equal(t, model.JoinRight, model.NormalizeJoinType("RIGHT JOIN"))
}

func TestForeignKeyAutoNaming(t *testing.T) {
	t.Parallel()

	build := func(foreign string, pairs ...string) *model.ForeignKey {
		db := model.NewDatabase("bookstore")
		tbl := table(t, db, "book", model.NewColumn("author_id"), model.NewColumn("editor_id"))
		return foreignKey(t, tbl, foreign, pairs...)
	}

	a := build("author", "author_id", "id")
	b := build("author", "author_id", "id")
	assert.Equal(t, a.Name(), b.Name())
	assert.True(t, strings.HasPrefix(a.Name(), "book_fk_"))
	assert.Len(t, a.Name(), len("book_fk_")+6)

	assert.NotEqual(t, a.Name(), build("person", "author_id", "id").Name())
	assert.NotEqual(t, a.Name(), build("author", "editor_id", "id").Name())
	assert.NotEqual(t, a.Name(), build("author", "author_id", "code").Name())

	fk := model.NewForeignKey("")
	fk.SetName("book_author")
	fk.AddReference("x", "y")
	assert.Equal(t, "book_author", fk.Name())
}

func TestForeignKeyDefaults(t *testing.T) {
	t.Parallel()
	fk := model.NewForeignKey("")
	fk.LoadMapping(model.Attributes{"foreignTable": "author"})
	assert.Equal(t, model.ActionNone, fk.OnUpdate())
	assert.Equal(t, model.ActionNone, fk.OnDelete())
	assert.False(t, fk.HasOnDelete())
	assert.Equal(t, model.JoinInner, fk.DefaultJoin())
	assert.False(t, fk.IsSkipSQL())
	assert.Nil(t, fk.ForeignTable())
}

func TestForeignKeyLazyResolution(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	book := table(t, db, "book", pkColumn("id"), column("author_id", model.TypeInteger))
	fk := foreignKey(t, book, "author", "author_id", "id")

	assert.Nil(t, fk.ForeignTable(), "author is not part of the database yet")
	_, err := fk.ForeignColumnObjects()
	assert.True(t, relgraph.IsResolutionError(err))

	author := table(t, db, "author", pkColumn("id"))
	assert.Same(t, author, fk.ForeignTable())
	assert.Equal(t, []*model.ForeignKey{fk}, author.Referrers())
	assert.True(t, author.Column("id").HasReferrer(fk))

	local, err := fk.LocalColumnObjects()
	require.NoError(t, err)
	assert.Equal(t, []*model.Column{book.Column("author_id")}, local)
	foreign, err := fk.ForeignColumnObjects()
	require.NoError(t, err)
	assert.Equal(t, []*model.Column{author.Column("id")}, foreign)

	assert.True(t, fk.IsForeignPrimaryKey())
	assert.False(t, fk.IsLocalPrimaryKey())
	assert.True(t, book.Column("author_id").IsForeignKey())
	assert.Equal(t, map[string]string{"author_id": "id"}, fk.LocalForeignMapping())
	assert.Equal(t, map[string]string{"id": "author_id"}, fk.ForeignLocalMapping())
	assert.Equal(t, "id", fk.MappedForeignColumn("author_id"))
	assert.Equal(t, "author_id", fk.MappedLocalColumn("id"))
}

func TestForeignKeyReferrersWhenTargetExists(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	author := table(t, db, "author", pkColumn("id"))
	book := table(t, db, "book", column("author_id", model.TypeInteger))
	fk := foreignKey(t, book, "author", "author_id", "id")
	assert.True(t, author.HasReferrer(fk))

	assert.True(t, book.RemoveForeignKey(fk))
	assert.False(t, author.HasReferrer(fk))
	assert.False(t, author.Column("id").HasReferrer(fk))
}

func TestForeignKeyResolutionErrors(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	table(t, db, "author", pkColumn("id"))
	book := table(t, db, "book", column("author_id", model.TypeInteger))

	t.Run("LocalColumn", func(t *testing.T) {
		fk := foreignKey(t, book, "author", "writer_id", "id")
		_, err := fk.LocalColumnObjects()
		var re *relgraph.ResolutionError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "local column", re.Kind)
		assert.Equal(t, "writer_id", re.Name)
	})

	t.Run("ForeignColumn", func(t *testing.T) {
		fk := foreignKey(t, book, "author", "author_id", "code")
		_, err := fk.ForeignColumnObjects()
		var re *relgraph.ResolutionError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "foreign column", re.Kind)
	})

	t.Run("DottedRelation", func(t *testing.T) {
		ok := model.NewForeignKey("ok")
		ok.SetForeignTableName("author")
		ok.AddReference("author_id", "author.id")
		book.AddForeignKey(ok)
		cols, err := ok.ForeignColumnObjects()
		require.NoError(t, err)
		assert.Equal(t, "id", cols[0].Name())

		bad := model.NewForeignKey("bad")
		bad.SetForeignTableName("author")
		bad.AddReference("author_id", "writer.id")
		book.AddForeignKey(bad)
		_, err = bad.ForeignColumnObjects()
		var re *relgraph.ResolutionError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "relation", re.Kind)
		assert.Equal(t, "writer", re.Name)
	})
}

func TestAddForeignKeyKeepsDuplicates(t *testing.T) {
	t.Parallel()
	book := table(t, nil, "book", column("author_id", model.TypeInteger))
	first := foreignKey(t, book, "author", "author_id", "id")
	second := foreignKey(t, book, "author", "author_id", "id")

	assert.Equal(t, first.Name(), second.Name())
	assert.Same(t, book, second.Table())
	require.Len(t, book.ForeignKeys(), 2)
	assert.Same(t, first, book.ForeignKey(first.Name()))
}

func TestForeignKeyRelatedBySuffix(t *testing.T) {
	t.Parallel()

	t.Run("SingleKey", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("bookstore")
		table(t, db, "author", pkColumn("id"))
		book := table(t, db, "book", column("author_id", model.TypeInteger))
		fk := foreignKey(t, book, "author", "author_id", "id")
		suffix, err := fk.RelatedBySuffix()
		require.NoError(t, err)
		assert.Empty(t, suffix)
	})

	t.Run("SiblingKeys", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("bookstore")
		table(t, db, "person", pkColumn("id"))
		book := table(t, db, "book", column("author_id", model.TypeInteger), column("editor_id", model.TypeInteger))
		author := foreignKey(t, book, "person", "author_id", "id")
		editor := foreignKey(t, book, "person", "editor_id", "id")

		suffix, err := author.RelatedBySuffix()
		require.NoError(t, err)
		assert.Equal(t, "RelatedByAuthorId", suffix)
		suffix, err = editor.RefRelatedBySuffix()
		require.NoError(t, err)
		assert.Equal(t, "RelatedByEditorId", suffix)
	})

	t.Run("SelfReference", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("bookstore")
		emp := table(t, db, "employee", pkColumn("id"), column("manager_id", model.TypeInteger))
		fk := foreignKey(t, emp, "employee", "manager_id", "id")
		assert.True(t, fk.IsSelfReferencing())

		suffix, err := fk.RelatedBySuffix()
		require.NoError(t, err)
		assert.Equal(t, "RelatedById", suffix)
		suffix, err = fk.RefRelatedBySuffix()
		require.NoError(t, err)
		assert.Equal(t, "RelatedByManagerId", suffix)
	})

	t.Run("Unresolved", func(t *testing.T) {
		t.Parallel()
		book := table(t, model.NewDatabase("bookstore"), "book", column("author_id", model.TypeInteger))
		fk := foreignKey(t, book, "author", "author_id", "id")
		_, err := fk.RelatedBySuffix()
		assert.True(t, relgraph.IsResolutionError(err))
	})
}

func TestForeignKeyInverse(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	a := table(t, db, "a", pkColumn("id"), column("b_id", model.TypeInteger))
	b := table(t, db, "b", pkColumn("id"), column("a_id", model.TypeInteger))
	ab := foreignKey(t, a, "b", "b_id", "id")
	foreignKey(t, b, "a", "a_id", "id")
	assert.Nil(t, ab.InverseFK())

	inv := foreignKey(t, b, "a", "id", "b_id")
	assert.Same(t, inv, ab.InverseFK())
	assert.True(t, ab.IsMatchedByInverseFK())
	assert.Len(t, ab.OtherFKs(), 0)
}

func TestForeignKeyRequiredColumns(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	table(t, db, "user", pkColumn("id"))
	uid := column("user_id", model.TypeInteger)
	uid.SetPrimaryKey(true)
	note := column("note_id", model.TypeInteger)
	link := table(t, db, "user_note", uid, note)
	fk := foreignKey(t, link, "user", "user_id", "id", "note_id", "id")

	assert.True(t, fk.IsComposite())
	assert.True(t, fk.IsAtLeastOneLocalColumnRequired())
	assert.False(t, fk.IsLocalColumnsRequired())
	assert.True(t, fk.IsAtLeastOneLocalPrimaryKeyIsRequired())
	assert.Equal(t, []*model.Column{uid}, fk.LocalPrimaryKeys())

	uid.SetDefault("0")
	assert.False(t, fk.IsAtLeastOneLocalPrimaryKeyIsRequired(), "a default makes the key optional")
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/model"
)

func TestTableNames(t *testing.T) {
	t.Parallel()
	tbl := model.NewTable("BookAuthor")
	assert.Equal(t, "book_author", tbl.TableName())
	assert.Equal(t, "BookAuthor", tbl.PhpName())
	assert.Equal(t, "BookAuthor", tbl.FullName())

	db := model.NewDatabase("bookstore")
	db.SetTablePrefix("bs_")
	db.SetSchema("library")
	require.NoError(t, db.AddTable(tbl))
	assert.Equal(t, "bs_book_author", tbl.TableName())
	assert.Equal(t, "library.BookAuthor", tbl.FullName())
	assert.Equal(t, "library.bs_book_author", tbl.FullTableName())

	db.SetPlatform(&stubPlatform{maxLen: 64, schemas: false})
	assert.Equal(t, "BookAuthor", tbl.FullName(), "platform without schemas")

	tbl.SetTableName("authors_of_books")
	assert.Equal(t, "authors_of_books", tbl.TableName())
}

func TestTableAddColumn(t *testing.T) {
	t.Parallel()
	tbl := table(t, nil, "book", pkColumn("id"), column("title", model.TypeVarchar))

	err := tbl.AddColumn(model.NewColumn("title"))
	require.Error(t, err)
	var be *relgraph.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "column", be.Kind)
	assert.Equal(t, "title", be.Name)
	assert.Equal(t, 2, tbl.NumColumns(), "the graph is left untouched")

	require.NoError(t, tbl.AddColumn(model.NewColumn("Title")), "names are case-sensitive")
	assert.True(t, tbl.HasColumn("TITLE", true))
	assert.False(t, tbl.HasColumn("TITLE", false))
	assert.Equal(t, 3, tbl.Column("Title").Position())

	require.NoError(t, tbl.RemoveColumn("title"))
	assert.Equal(t, 2, tbl.Column("Title").Position())
	assert.True(t, relgraph.IsBuildError(tbl.RemoveColumn("title")))

	assert.Error(t, tbl.AddColumn(model.NewColumn("")))
	assert.Same(t, tbl.Column("id"), tbl.ColumnByPhpName("Id"))
}

func TestTablePrimaryKey(t *testing.T) {
	t.Parallel()
	a := column("a", model.TypeInteger)
	a.SetPrimaryKey(true)
	b := column("b", model.TypeInteger)
	b.SetPrimaryKey(true)
	tbl := table(t, nil, "pair", a, column("x", model.TypeVarchar), b)

	assert.Equal(t, []*model.Column{a, b}, tbl.PrimaryKey())
	assert.True(t, tbl.HasCompositePrimaryKey())
	assert.Same(t, a, tbl.FirstPrimaryKeyColumn())
	assert.False(t, tbl.HasAutoIncrementPrimaryKey())

	single := table(t, nil, "book", pkColumn("id"))
	assert.True(t, single.HasAutoIncrementPrimaryKey())
	assert.False(t, single.HasCompositePrimaryKey())
}

func TestTableIndices(t *testing.T) {
	t.Parallel()
	tbl := table(t, nil, "book", pkColumn("id"), column("isbn", model.TypeVarchar), column("title", model.TypeVarchar))

	t.Run("Empty", func(t *testing.T) {
		err := tbl.AddIndex(model.NewIndex("empty"))
		require.Error(t, err)
		assert.True(t, relgraph.IsBuildError(err))
		assert.False(t, tbl.HasIndex("empty"))
	})

	t.Run("DuplicateName", func(t *testing.T) {
		idx := model.NewIndex("by_title")
		require.NoError(t, idx.AddColumn("title"))
		require.NoError(t, tbl.AddIndex(idx))

		u := model.NewUnique("by_title")
		require.NoError(t, u.AddColumn("isbn"))
		assert.True(t, relgraph.IsBuildError(tbl.AddUnique(u)), "plain and unique indices share names")
	})

	t.Run("Unique", func(t *testing.T) {
		u, err := tbl.AddUniqueFromAttributes(model.Attributes{}, model.Attributes{"name": "isbn"})
		require.NoError(t, err)
		assert.True(t, u.IsUnique())
		assert.Equal(t, []*model.Index{u}, tbl.Uniques())
		assert.Same(t, u, tbl.Index(u.Name()))
	})

	t.Run("IsUnique", func(t *testing.T) {
		assert.True(t, tbl.IsUnique([]string{"id"}))
		assert.True(t, tbl.IsUnique([]string{"isbn"}))
		assert.False(t, tbl.IsUnique([]string{"title"}))
		assert.False(t, tbl.IsUnique(nil))

		tbl.Column("title").SetUnique(true)
		assert.True(t, tbl.IsUnique([]string{"title"}))
	})

	t.Run("Remove", func(t *testing.T) {
		assert.True(t, tbl.RemoveIndex("by_title"))
		assert.False(t, tbl.RemoveIndex("by_title"))
	})
}

func TestTableSetDatabaseDetaches(t *testing.T) {
	t.Parallel()
	first := model.NewDatabase("first")
	second := model.NewDatabase("second")
	tbl := table(t, first, "book")

	require.NoError(t, tbl.SetDatabase(second))
	assert.Same(t, second, tbl.Database())
	assert.False(t, first.HasTable("book", false))
	assert.True(t, second.HasTable("book", false))

	require.NoError(t, tbl.SetDatabase(nil))
	assert.Nil(t, tbl.Database())
	assert.Zero(t, second.NumTables())
}

func TestTableBehaviors(t *testing.T) {
	t.Parallel()
	tbl := model.NewTable("book")
	b, err := tbl.AddBehaviorFromAttributes(model.Attributes{"name": "sluggable", "id": "slug"},
		model.Attributes{"name": "column", "value": "slug"})
	require.NoError(t, err)
	assert.Equal(t, "slug", b.ID())
	assert.Same(t, tbl, b.Table())
	v, ok := b.Parameter("column")
	assert.True(t, ok)
	assert.Equal(t, "slug", v)

	replacement := model.NewBehavior("sluggable")
	replacement.SetID("slug")
	require.NoError(t, tbl.AddBehavior(replacement))
	assert.Equal(t, []*model.Behavior{replacement}, tbl.Behaviors())

	assert.Error(t, tbl.AddBehavior(model.NewBehavior("")))
}

func TestTableHeavyIndexing(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	db.SetHeavyIndexing(true)
	var cols []*model.Column
	for _, n := range []string{"a", "b", "c"} {
		c := column(n, model.TypeInteger)
		c.SetPrimaryKey(true)
		cols = append(cols, c)
	}
	tbl := table(t, db, "triple", cols...)
	require.NoError(t, tbl.DoFinalInitialization())

	var got [][]string
	for _, idx := range tbl.Indices() {
		got = append(got, idx.Columns())
	}
	assert.Equal(t, [][]string{{"b", "c"}, {"c"}}, got)

	require.NoError(t, tbl.DoFinalInitialization())
	assert.Len(t, tbl.Indices(), 2, "final initialization is idempotent")
}

func TestTableForeignKeyIndices(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	db.SetPlatform(&stubPlatform{maxLen: 64, requireFKIndex: true})
	author := table(t, db, "author", pkColumn("id"), column("code", model.TypeVarchar))
	book := table(t, db, "book", pkColumn("id"), column("author_code", model.TypeVarchar), column("author_id", model.TypeInteger))
	foreignKey(t, book, "author", "author_code", "code")
	foreignKey(t, book, "author", "author_id", "id")

	require.NoError(t, book.DoFinalInitialization())
	require.NoError(t, author.DoFinalInitialization())

	require.Len(t, book.Indices(), 2)
	assert.Equal(t, []string{"author_code"}, book.Indices()[0].Columns())
	assert.Equal(t, []string{"author_id"}, book.Indices()[1].Columns())
	require.Len(t, author.Indices(), 1, "the referenced primary key is already indexed")
	assert.Equal(t, []string{"code"}, author.Indices()[0].Columns())
}

func TestTableCopy(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	table(t, db, "author", pkColumn("id"))
	book := table(t, db, "book", pkColumn("id"), column("author_id", model.TypeInteger))
	book.SetSkipSQL(true)
	fk := foreignKey(t, book, "author", "author_id", "id")
	idx := model.NewIndex("")
	require.NoError(t, idx.AddColumn("author_id"))
	require.NoError(t, book.AddIndex(idx))
	require.NoError(t, book.AddBehavior(model.NewBehavior("versionable")))

	c := book.Copy()
	assert.Nil(t, c.Database())
	assert.True(t, c.IsSkipSQL())
	assert.Equal(t, book.NumColumns(), c.NumColumns())
	assert.NotSame(t, book.Column("id"), c.Column("id"))
	assert.Same(t, c, c.Column("id").Table())
	require.Len(t, c.ForeignKeys(), 1)
	assert.Equal(t, fk.Name(), c.ForeignKeys()[0].Name())
	assert.Same(t, c, c.ForeignKeys()[0].Table())
	require.Len(t, c.Indices(), 1)
	assert.Equal(t, idx.Name(), c.Indices()[0].Name())
	require.Len(t, c.Behaviors(), 1)
	assert.Same(t, c, c.Behaviors()[0].Table())

	c.Column("id").SetSize(11)
	assert.False(t, book.Column("id").HasSize())
}

func TestTableLoadMapping(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	db.SetIdentifierQuoting(true)
	db.SetPlatform(&stubPlatform{maxLen: 64})
	tbl, err := db.AddTableFromAttributes(model.Attributes{
		"name":           "book",
		"phpName":        "Volume",
		"isCrossRef":     "true",
		"skipSql":        "false",
		"readOnly":       "true",
		"reloadOnInsert": "true",
		"description":    "Books",
	})
	require.NoError(t, err)
	assert.Equal(t, "Volume", tbl.PhpName())
	assert.True(t, tbl.IsCrossRef())
	assert.True(t, tbl.IsReadOnly())
	assert.True(t, tbl.IsReloadOnInsert())
	assert.False(t, tbl.IsReloadOnUpdate())
	assert.False(t, tbl.IsAbstract())
	tbl.SetAbstract(true)
	assert.True(t, tbl.IsAbstract())
	assert.Equal(t, "Books", tbl.Description())
	assert.Equal(t, model.IDMethodNative, tbl.IDMethod())
	assert.Equal(t, "`book`", tbl.QuoteIdentifier("book"))

	tbl.SetIdentifierQuoting(false)
	assert.Equal(t, "book", tbl.QuoteIdentifier("book"))
	assert.Same(t, tbl, db.TableByPhpName("Volume"))
}

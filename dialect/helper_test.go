package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/dialect"
	"github.com/syssam/relgraph/model"
)

func platform(t *testing.T, name string, opts ...dialect.Option) *dialect.Platform {
	t.Helper()
	p, err := dialect.New(name, opts...)
	require.NoError(t, err)
	return p
}

func column(name, typ string, size int) *model.Column {
	c := model.NewColumn(name)
	c.SetType(typ)
	if size > 0 {
		c.SetSize(size)
	}
	return c
}

func pkColumn(name string) *model.Column {
	c := column(name, model.TypeInteger, 0)
	c.SetPrimaryKey(true)
	c.SetAutoIncrement(true)
	return c
}

func notNull(c *model.Column) *model.Column {
	c.SetNotNull(true)
	return c
}

func table(t *testing.T, db *model.Database, name string, cols ...*model.Column) *model.Table {
	t.Helper()
	tbl := model.NewTable(name)
	for _, c := range cols {
		require.NoError(t, tbl.AddColumn(c))
	}
	if db != nil {
		require.NoError(t, db.AddTable(tbl))
	}
	return tbl
}

func index(t *testing.T, tbl *model.Table, name string, unique bool, cols ...string) *model.Index {
	t.Helper()
	idx := model.NewIndex(name)
	if unique {
		idx = model.NewUnique(name)
	}
	require.NoError(t, idx.SetColumns(cols...))
	require.NoError(t, tbl.AddIndex(idx))
	return idx
}

func foreignKey(t *testing.T, tbl *model.Table, name, foreign string, pairs ...string) *model.ForeignKey {
	t.Helper()
	fk := model.NewForeignKey(name)
	fk.SetForeignTableName(foreign)
	for i := 0; i+1 < len(pairs); i += 2 {
		fk.AddReference(pairs[i], pairs[i+1])
	}
	tbl.AddForeignKey(fk)
	return fk
}

// bookstore returns a database with an author table and a book table
// referencing it.
func bookstore(t *testing.T, p model.Platform) *model.Database {
	t.Helper()
	db := model.NewDatabase("bookstore")
	db.SetPlatform(p)
	table(t, db, "author",
		pkColumn("id"),
		notNull(column("name", model.TypeVarchar, 100)),
	)
	title := notNull(column("title", model.TypeVarchar, 255))
	title.SetDefault("Untitled")
	created := column("created_at", model.TypeTimestamp, 0)
	created.SetDefaultExpr("CURRENT_TIMESTAMP")
	book := table(t, db, "book",
		pkColumn("id"),
		title,
		column("author_id", model.TypeInteger, 0),
		created,
	)
	index(t, book, "book_title", true, "title")
	index(t, book, "book_author", false, "author_id")
	fk := foreignKey(t, book, "book_fk_author", "author", "author_id", "id")
	fk.SetOnDelete("cascade")
	return db
}

package diff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/diff"
	"github.com/syssam/relgraph/model"
)

func column(name, typ string) *model.Column {
	c := model.NewColumn(name)
	c.SetType(typ)
	return c
}

func varchar(name string, size int) *model.Column {
	c := column(name, model.TypeVarchar)
	c.SetSize(size)
	return c
}

func pkColumn(name string) *model.Column {
	c := column(name, model.TypeInteger)
	c.SetPrimaryKey(true)
	c.SetAutoIncrement(true)
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

func comparator(t *testing.T, opts ...diff.Option) *diff.Comparator {
	t.Helper()
	c, err := diff.NewComparator(opts...)
	require.NoError(t, err)
	return c
}

// ddlPlatform renders column DDL from the name and SQL type only.
type ddlPlatform struct {
	normalized []string
}

func (p *ddlPlatform) Name() string                       { return "ddl" }
func (p *ddlPlatform) QuoteIdentifier(name string) string { return `"` + name + `"` }
func (p *ddlPlatform) Quote(text string) string           { return "'" + text + "'" }
func (p *ddlPlatform) MaxIdentifierLength() int           { return 64 }
func (p *ddlPlatform) IsReservedWord(string) bool         { return false }
func (p *ddlPlatform) SupportsSchemas() bool              { return false }
func (p *ddlPlatform) SupportsIndexSize() bool            { return false }
func (p *ddlPlatform) RequiresForeignKeyIndices() bool    { return false }
func (p *ddlPlatform) DefaultTypeSize(string) int         { return 0 }
func (p *ddlPlatform) DomainForType(typ string) *model.Domain {
	return model.NewDomain(typ)
}
func (p *ddlPlatform) DefaultValueDDL(*model.Column) string { return "" }

func (p *ddlPlatform) ColumnDDL(c *model.Column) string {
	return c.Name() + " " + c.SQLType()
}

func (p *ddlPlatform) NormalizeTable(t *model.Table) {
	p.normalized = append(p.normalized, t.Name())
}

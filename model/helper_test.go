package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/model"
)

// column returns a column of the given type.
func column(name, typ string) *model.Column {
	c := model.NewColumn(name)
	c.SetType(typ)
	return c
}

// pkColumn returns an auto-increment integer primary key.
func pkColumn(name string) *model.Column {
	c := column(name, model.TypeInteger)
	c.SetPrimaryKey(true)
	c.SetAutoIncrement(true)
	return c
}

// table builds a table with the given columns and adds it to db when db
// is not nil.
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

// foreignKey adds a foreign key from tbl to foreign over the column pairs
// local0, foreign0, local1, foreign1...
func foreignKey(t *testing.T, tbl *model.Table, foreign string, pairs ...string) *model.ForeignKey {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	fk := model.NewForeignKey("")
	fk.SetForeignTableName(foreign)
	for i := 0; i < len(pairs); i += 2 {
		fk.AddReference(pairs[i], pairs[i+1])
	}
	tbl.AddForeignKey(fk)
	return fk
}

// stubPlatform is a minimal model.Platform.
type stubPlatform struct {
	maxLen         int
	schemas        bool
	indexSize      bool
	requireFKIndex bool
}

func (p *stubPlatform) Name() string                       { return "stub" }
func (p *stubPlatform) QuoteIdentifier(name string) string { return "`" + name + "`" }
func (p *stubPlatform) Quote(text string) string           { return "'" + text + "'" }
func (p *stubPlatform) MaxIdentifierLength() int           { return p.maxLen }
func (p *stubPlatform) IsReservedWord(string) bool         { return false }
func (p *stubPlatform) SupportsSchemas() bool              { return p.schemas }
func (p *stubPlatform) SupportsIndexSize() bool            { return p.indexSize }
func (p *stubPlatform) RequiresForeignKeyIndices() bool    { return p.requireFKIndex }
func (p *stubPlatform) DefaultTypeSize(string) int         { return 0 }
func (p *stubPlatform) NormalizeTable(*model.Table)        {}

func (p *stubPlatform) DomainForType(typ string) *model.Domain {
	d := model.NewDomain(typ)
	if typ == model.TypeBoolean {
		d.SQLType = "TINYINT"
	}
	return d
}

func (p *stubPlatform) ColumnDDL(c *model.Column) string {
	return c.Name() + " " + c.SQLType() + c.SizeDefinition()
}

func (p *stubPlatform) DefaultValueDDL(c *model.Column) string {
	if !c.HasDefaultValue() {
		return ""
	}
	return "DEFAULT " + c.DefaultValueString()
}

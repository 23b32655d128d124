package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/model"
)

func TestColumnDefaults(t *testing.T) {
	t.Parallel()
	c := model.NewColumn("author_id")
	assert.Equal(t, "author_id", c.Name())
	assert.Equal(t, "AuthorId", c.PhpName())
	assert.False(t, c.IsNotNull())
	assert.False(t, c.IsPrimaryKey())
	assert.False(t, c.HasSize())
	assert.False(t, c.HasDefaultValue())
	assert.Equal(t, "null", c.DefaultValueString())
	assert.Equal(t, model.InheritanceNone, c.InheritanceType())
	assert.False(t, c.IsInheritance())
	assert.Nil(t, c.Table())
	assert.Nil(t, c.Platform())
	assert.Equal(t, "author_id", c.FullyQualifiedName())
}

func TestColumnPrimaryKeyImpliesNotNull(t *testing.T) {
	t.Parallel()
	c := model.NewColumn("id")
	c.SetPrimaryKey(true)
	assert.True(t, c.IsPrimaryKey())
	assert.True(t, c.IsNotNull())

	c.SetPrimaryKey(false)
	assert.True(t, c.IsNotNull(), "clearing the primary key keeps NOT NULL")
}

func TestColumnDomain(t *testing.T) {
	t.Parallel()
	c := column("price", "decimal")
	c.SetSize(10)
	c.SetScale(2)
	assert.Equal(t, model.TypeDecimal, c.Type())
	assert.Equal(t, model.TypeDecimal, c.SQLType())
	assert.Equal(t, "(10,2)", c.SizeDefinition())
	assert.True(t, c.IsNumericType())
	assert.False(t, c.IsTextType())

	c.SetSQLType("numeric")
	assert.Equal(t, "numeric", c.SQLType())
	assert.Equal(t, model.TypeDecimal, c.Type())

	c.ClearSize()
	assert.Equal(t, "", c.SizeDefinition())
	assert.Equal(t, 0, c.Size())
}

func TestColumnSetDomainCopies(t *testing.T) {
	t.Parallel()
	d := model.NewDomain(model.TypeVarchar)
	d.Size = new(int)
	*d.Size = 255
	c := model.NewColumn("title")
	c.SetDomain(d)
	*d.Size = 10
	assert.Equal(t, 255, c.Size())
}

func TestColumnDefaultValueString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		col  func() *model.Column
		want string
	}{
		{
			name: "text",
			col: func() *model.Column {
				c := column("title", model.TypeVarchar)
				c.SetDefault("it's")
				return c
			},
			want: "'it''s'",
		},
		{
			name: "number",
			col: func() *model.Column {
				c := column("qty", model.TypeInteger)
				c.SetDefault("0")
				return c
			},
			want: "0",
		},
		{
			name: "expression",
			col: func() *model.Column {
				c := column("created_at", model.TypeTimestamp)
				c.SetDefaultExpr("CURRENT_TIMESTAMP")
				return c
			},
			want: "CURRENT_TIMESTAMP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.col().DefaultValueString())
		})
	}
}

func TestColumnSetTypeUsesPlatform(t *testing.T) {
	t.Parallel()
	db := model.NewDatabase("bookstore")
	db.SetPlatform(&stubPlatform{maxLen: 64})
	tbl := table(t, db, "book")
	c := model.NewColumn("active")
	require.NoError(t, tbl.AddColumn(c))
	c.SetType("boolean")
	assert.Equal(t, model.TypeBoolean, c.Type())
	assert.Equal(t, "TINYINT", c.SQLType())
	assert.True(t, c.IsBooleanType())
	assert.Equal(t, "book.active", c.FullyQualifiedName())
	assert.Equal(t, 1, c.Position())
}

func TestColumnValueSet(t *testing.T) {
	t.Parallel()
	c := column("status", model.TypeEnum)
	values := []string{"draft", "published"}
	c.SetValueSet(values)
	values[0] = "changed"
	assert.Equal(t, []string{"draft", "published"}, c.ValueSet())
	assert.True(t, c.IsEnumType())
	assert.False(t, c.IsSetType())
}

func TestColumnInheritance(t *testing.T) {
	t.Parallel()
	c := column("class_key", model.TypeInteger)
	c.SetInheritanceType(model.InheritanceSingle)
	inh := c.AddInheritanceFromAttributes(model.Attributes{"key": "1", "class": "Novel", "extends": "Book"})
	assert.True(t, c.IsInheritance())
	require.Len(t, c.Inheritances(), 1)
	assert.Same(t, c, inh.Column())
	assert.Equal(t, "1", inh.Key)
	assert.Equal(t, "Novel", inh.Class)
	assert.Equal(t, "Book", inh.Extends)
}

func TestColumnLoadMapping(t *testing.T) {
	t.Parallel()

	t.Run("Attributes", func(t *testing.T) {
		t.Parallel()
		tbl := model.NewTable("book")
		c, err := tbl.AddColumnFromAttributes(model.Attributes{
			"name":          "title",
			"phpName":       "Headline",
			"type":          "varchar",
			"size":          "255",
			"required":      "true",
			"defaultValue":  "untitled",
			"valueSet":      "a, b ,c",
			"lazyLoad":      "yes",
			"unknown":       "ignored",
			"autoIncrement": "false",
		})
		require.NoError(t, err)
		assert.Equal(t, "title", c.Name())
		assert.Equal(t, "Headline", c.PhpName())
		assert.Equal(t, model.TypeVarchar, c.Type())
		assert.Equal(t, 255, c.Size())
		assert.True(t, c.IsNotNull())
		assert.True(t, c.IsLazyLoad())
		assert.False(t, c.IsAutoIncrement())
		assert.Equal(t, []string{"a", "b", "c"}, c.ValueSet())
		require.NotNil(t, c.DefaultValue())
		assert.Equal(t, "untitled", c.DefaultValue().Value)
		assert.Same(t, c, tbl.Column("title"))
	})

	t.Run("PrimaryKeyIsRequired", func(t *testing.T) {
		t.Parallel()
		tbl := model.NewTable("book")
		c, err := tbl.AddColumnFromAttributes(model.Attributes{"name": "id", "primaryKey": "1"})
		require.NoError(t, err)
		assert.True(t, c.IsPrimaryKey())
		assert.True(t, c.IsNotNull())
	})

	t.Run("Domain", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("bookstore")
		_, err := db.AddDomainFromAttributes(model.Attributes{"name": "Price", "type": "DECIMAL", "size": "8", "scale": "2"})
		require.NoError(t, err)
		tbl := table(t, db, "book")
		c, err := tbl.AddColumnFromAttributes(model.Attributes{"name": "price", "domain": "Price"})
		require.NoError(t, err)
		assert.Equal(t, model.TypeDecimal, c.Type())
		assert.Equal(t, "(8,2)", c.SizeDefinition())

		c.SetSize(10)
		assert.Equal(t, 8, *db.Domain("Price").Size, "columns copy the domain")
	})

	t.Run("UnknownDomain", func(t *testing.T) {
		t.Parallel()
		tbl := table(t, model.NewDatabase("bookstore"), "book")
		_, err := tbl.AddColumnFromAttributes(model.Attributes{"name": "price", "domain": "Money"})
		require.Error(t, err)
		assert.True(t, relgraph.IsResolutionError(err))
	})

	t.Run("BadSize", func(t *testing.T) {
		t.Parallel()
		_, err := model.NewTable("book").AddColumnFromAttributes(model.Attributes{"name": "title", "size": "big"})
		require.Error(t, err)
		assert.True(t, relgraph.IsBuildError(err))
	})
}

func TestDefaultValueEquals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b *model.ColumnDefaultValue
		want bool
	}{
		{"same value", model.NewColumnDefaultValue("1", ""), model.NewColumnDefaultValue("1", model.DefaultValue), true},
		{"different value", model.NewColumnDefaultValue("1", ""), model.NewColumnDefaultValue("2", ""), false},
		{"different type", model.NewColumnDefaultValue("1", model.DefaultValue), model.NewColumnDefaultValue("1", model.DefaultExpr), false},
		{"now and current_timestamp", model.NewColumnDefaultValue("now()", model.DefaultExpr), model.NewColumnDefaultValue("CURRENT_TIMESTAMP", model.DefaultExpr), true},
		{"both nil", nil, nil, true},
		{"one nil", model.NewColumnDefaultValue("1", ""), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
			assert.Equal(t, tt.want, tt.b.Equals(tt.a))
		})
	}
}

func TestTypeCatalog(t *testing.T) {
	t.Parallel()
	assert.True(t, model.IsValidType("varchar"))
	assert.False(t, model.IsValidType("money"))
	assert.True(t, model.IsTextType(model.TypeDate), "temporal values are quoted")
	assert.True(t, model.IsTemporalType(model.TypeTimestamp))
	assert.True(t, model.IsLobType(model.TypeBlob))
	assert.True(t, model.IsBooleanType(model.TypeBooleanEmu))
	assert.False(t, model.IsNumericType(model.TypeVarchar))
}

func TestAttributes(t *testing.T) {
	t.Parallel()
	attrs := model.Attributes{"Name": "book", "size": " 12 ", "flag": "Y", "list": " a,,b "}
	assert.Equal(t, "book", attrs.Get("name"), "keys match ignoring case")
	assert.Equal(t, "x", attrs.GetDefault("missing", "x"))
	assert.True(t, attrs.Bool("flag", false))
	assert.True(t, attrs.Bool("missing", true))
	assert.Equal(t, []string{"a", "b"}, attrs.List("list"))

	n, err := attrs.Int("size")
	require.NoError(t, err)
	assert.Equal(t, 12, *n)

	n, err = attrs.Int("missing")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestVendorInfo(t *testing.T) {
	t.Parallel()
	tbl := model.NewTable("book")
	tbl.AddVendorInfoFromAttributes(model.Attributes{"type": "mysql"},
		model.Attributes{"name": "Engine", "value": "InnoDB"},
		model.Attributes{"name": "Charset", "value": "utf8"},
	)
	vi := model.NewVendorInfo("mysql")
	vi.SetParameter("Engine", "MyISAM")
	tbl.AddVendorInfo(vi)

	got := tbl.VendorInfoForType("mysql")
	assert.Equal(t, []string{"Engine", "Charset"}, got.ParameterNames())
	engine, ok := got.Parameter("Engine")
	assert.True(t, ok)
	assert.Equal(t, "MyISAM", engine)
	assert.Len(t, tbl.VendorInfos(), 1)
	assert.True(t, tbl.VendorInfoForType("pgsql").IsEmpty())
}

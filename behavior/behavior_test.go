package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/behavior"
	"github.com/syssam/relgraph/model"
)

func newTable(t *testing.T, db *model.Database, name string, cols ...string) *model.Table {
	t.Helper()
	tbl := model.NewTable(name)
	for _, c := range cols {
		col := model.NewColumn(c)
		col.SetType(model.TypeVarchar)
		require.NoError(t, tbl.AddColumn(col))
	}
	require.NoError(t, db.AddTable(tbl))
	return tbl
}

func columnNames(t *model.Table) []string {
	var names []string
	for _, c := range t.Columns() {
		names = append(names, c.Name())
	}
	return names
}

func TestRegistered(t *testing.T) {
	t.Parallel()
	names := model.RegisteredBehaviors()
	assert.Contains(t, names, behavior.Timestampable)
	assert.Contains(t, names, behavior.AutoAddPK)
	assert.NotNil(t, model.NewBehavior(behavior.Timestampable).Hooks())
}

func TestTimestampable(t *testing.T) {
	t.Parallel()

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("blog")
		post := newTable(t, db, "post", "title")
		require.NoError(t, post.AddBehavior(model.NewBehavior(behavior.Timestampable)))
		require.NoError(t, db.DoFinalInitialization())

		assert.Equal(t, []string{"title", "created_at", "updated_at"}, columnNames(post))
		assert.Equal(t, model.TypeTimestamp, post.Column("created_at").Type())
		assert.True(t, post.Behavior(behavior.Timestampable).IsTableModified())
	})

	t.Run("Parameters", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("blog")
		post := newTable(t, db, "post", "title", "Created")
		b := model.NewBehavior(behavior.Timestampable)
		b.SetParameter("create_column", "created")
		b.SetParameter("disable_updated_at", "true")
		require.NoError(t, post.AddBehavior(b))
		require.NoError(t, db.DoFinalInitialization())

		assert.Equal(t, []string{"title", "Created"}, columnNames(post))
		assert.Equal(t, model.TypeVarchar, post.Column("Created").Type())
	})

	t.Run("DatabaseScope", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("blog")
		post := newTable(t, db, "post", "title")
		comment := newTable(t, db, "comment", "body")
		require.NoError(t, db.AddBehavior(model.NewBehavior(behavior.Timestampable)))
		require.NoError(t, db.DoFinalInitialization())

		for _, tbl := range []*model.Table{post, comment} {
			assert.True(t, tbl.HasColumn("created_at", false), tbl.Name())
			assert.True(t, tbl.HasColumn("updated_at", false), tbl.Name())
		}
	})
}

func TestAutoAddPK(t *testing.T) {
	t.Parallel()

	t.Run("AddsColumn", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("shop")
		tag := newTable(t, db, "tag", "label")
		require.NoError(t, db.AddBehavior(model.NewBehavior(behavior.AutoAddPK)))
		require.NoError(t, db.DoFinalInitialization())

		id := tag.Column("id")
		require.NotNil(t, id)
		assert.True(t, id.IsPrimaryKey())
		assert.True(t, id.IsNotNull())
		assert.True(t, id.IsAutoIncrement())
		assert.Equal(t, model.TypeInteger, id.Type())
		assert.True(t, tag.HasAutoIncrementPrimaryKey())
	})

	t.Run("KeepsExistingKey", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("shop")
		country := newTable(t, db, "country", "code")
		country.Column("code").SetPrimaryKey(true)
		require.NoError(t, country.AddBehavior(model.NewBehavior(behavior.AutoAddPK)))
		require.NoError(t, db.DoFinalInitialization())

		assert.Equal(t, []string{"code"}, columnNames(country))
	})

	t.Run("PromotesNamedColumn", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("shop")
		item := newTable(t, db, "item", "sku", "label")
		b := model.NewBehavior(behavior.AutoAddPK)
		b.SetParameter("name", "sku")
		require.NoError(t, item.AddBehavior(b))
		require.NoError(t, db.DoFinalInitialization())

		require.Len(t, item.PrimaryKey(), 1)
		assert.Equal(t, "sku", item.PrimaryKey()[0].Name())
		assert.Equal(t, []string{"sku", "label"}, columnNames(item))
	})

	t.Run("CustomType", func(t *testing.T) {
		t.Parallel()
		db := model.NewDatabase("shop")
		item := newTable(t, db, "item", "label")
		b := model.NewBehavior(behavior.AutoAddPK)
		b.SetParameter("name", "item_id")
		b.SetParameter("type", model.TypeBigInt)
		b.SetParameter("autoIncrement", "false")
		require.NoError(t, item.AddBehavior(b))
		require.NoError(t, db.DoFinalInitialization())

		id := item.Column("item_id")
		require.NotNil(t, id)
		assert.Equal(t, model.TypeBigInt, id.Type())
		assert.False(t, id.IsAutoIncrement())
	})
}

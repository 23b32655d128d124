package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/model"
)

// userRoleSchema builds User, Role and the UserXRole junction table.
func userRoleSchema(t *testing.T) (user, role, junction *model.Table) {
	t.Helper()
	db := model.NewDatabase("acl")
	user = table(t, db, "User", pkColumn("id"))
	role = table(t, db, "Role", pkColumn("id"))

	userID := column("user_id", model.TypeInteger)
	userID.SetPrimaryKey(true)
	roleID := column("role_id", model.TypeInteger)
	roleID.SetPrimaryKey(true)
	junction = table(t, db, "UserXRole", userID, roleID)
	junction.SetCrossRef(true)
	foreignKey(t, junction, "User", "user_id", "id")
	foreignKey(t, junction, "Role", "role_id", "id")
	return user, role, junction
}

func TestCrossForeignKeys(t *testing.T) {
	t.Parallel()

	t.Run("Plain", func(t *testing.T) {
		t.Parallel()
		user, role, junction := userRoleSchema(t)

		xs := user.CrossForeignKeys()
		require.Len(t, xs, 1)
		x := xs[0]
		assert.Same(t, user, x.Table())
		assert.Same(t, junction, x.MiddleTable())
		assert.Equal(t, "User", x.IncomingForeignKey().ForeignTableName())
		require.Len(t, x.ForeignKeys(), 1)
		assert.Same(t, role, x.ForeignKeys()[0].ForeignTable())
		assert.Empty(t, x.UnclassifiedPrimaryKeys())
		assert.False(t, x.IsPolymorphic())

		assert.True(t, role.HasCrossForeignKeys())
	})

	t.Run("UnclassifiedPrimaryKey", func(t *testing.T) {
		t.Parallel()
		user, _, junction := userRoleSchema(t)
		typ := column("type", model.TypeVarchar)
		typ.SetPrimaryKey(true)
		require.NoError(t, junction.AddColumn(typ))

		xs := user.CrossForeignKeys()
		require.Len(t, xs, 1)
		assert.Equal(t, []*model.Column{typ}, xs[0].UnclassifiedPrimaryKeys())
		assert.True(t, xs[0].IsPolymorphic())
	})

	t.Run("NotCrossRef", func(t *testing.T) {
		t.Parallel()
		user, _, junction := userRoleSchema(t)
		junction.SetCrossRef(false)
		assert.Empty(t, user.CrossForeignKeys())
	})

	t.Run("DerivedOnEveryCall", func(t *testing.T) {
		t.Parallel()
		user, _, junction := userRoleSchema(t)
		require.Len(t, user.CrossForeignKeys(), 1)

		db := junction.Database()
		table(t, db, "Group", pkColumn("id"))
		groupID := column("group_id", model.TypeInteger)
		groupID.SetPrimaryKey(true)
		require.NoError(t, junction.AddColumn(groupID))
		foreignKey(t, junction, "Group", "group_id", "id")

		xs := user.CrossForeignKeys()
		require.Len(t, xs, 1)
		assert.Len(t, xs[0].ForeignKeys(), 2)
		assert.True(t, xs[0].IsPolymorphic())
	})

	t.Run("OptionalKeyIgnored", func(t *testing.T) {
		t.Parallel()
		user, _, junction := userRoleSchema(t)
		table(t, junction.Database(), "Tag", pkColumn("id"))
		require.NoError(t, junction.AddColumn(column("tag_id", model.TypeInteger)))
		foreignKey(t, junction, "Tag", "tag_id", "id")

		xs := user.CrossForeignKeys()
		require.Len(t, xs, 1)
		assert.Len(t, xs[0].ForeignKeys(), 1, "keys without a required primary key are not part of the relation")
	})
}

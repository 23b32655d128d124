package behavior

import (
	"maps"

	"github.com/syssam/relgraph/model"
)

type autoAddPK struct{}

func (*autoAddPK) DefaultParameters() map[string]string {
	return map[string]string{
		"name":          "id",
		"autoIncrement": "true",
		"type":          model.TypeInteger,
	}
}

// ModifyTable gives a table without primary key one. A column already
// carrying the configured name is promoted instead of duplicated. Tables
// using concrete inheritance get their key from the parent.
func (*autoAddPK) ModifyTable(b *model.Behavior, t *model.Table) error {
	if t.HasPrimaryKey() || t.HasBehavior("concrete_inheritance") {
		return nil
	}
	p := params(b)
	name := p.GetDefault("name", "id")
	if c := t.Column(name); c != nil {
		c.SetPrimaryKey(true)
		return nil
	}
	attrs := model.Attributes{"primaryKey": "true"}
	maps.Copy(attrs, p)
	_, err := t.AddColumnFromAttributes(attrs)
	return err
}

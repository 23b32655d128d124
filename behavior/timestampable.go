package behavior

import "github.com/syssam/relgraph/model"

type timestampable struct{}

func (*timestampable) DefaultParameters() map[string]string {
	return map[string]string{
		"create_column":      "created_at",
		"update_column":      "updated_at",
		"disable_created_at": "false",
		"disable_updated_at": "false",
	}
}

// ModifyTable adds the timestamp columns the table lacks. Existing columns
// are matched case-insensitively and left untouched.
func (*timestampable) ModifyTable(b *model.Behavior, t *model.Table) error {
	p := params(b)
	if !p.Bool("disable_created_at", false) {
		if err := addTimestamp(t, p.GetDefault("create_column", "created_at")); err != nil {
			return err
		}
	}
	if !p.Bool("disable_updated_at", false) {
		if err := addTimestamp(t, p.GetDefault("update_column", "updated_at")); err != nil {
			return err
		}
	}
	return nil
}

func addTimestamp(t *model.Table, name string) error {
	if t.HasColumn(name, true) {
		return nil
	}
	_, err := t.AddColumnFromAttributes(model.Attributes{"name": name, "type": model.TypeTimestamp})
	return err
}

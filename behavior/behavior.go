package behavior

import "github.com/syssam/relgraph/model"

// Built-in behavior names.
const (
	Timestampable = "timestampable"
	AutoAddPK     = "auto_add_pk"
)

func init() {
	model.RegisterBehavior(Timestampable, func() any { return &timestampable{} })
	model.RegisterBehavior(AutoAddPK, func() any { return &autoAddPK{} })
}

// params exposes behavior parameters through the attribute getters.
func params(b *model.Behavior) model.Attributes {
	return model.Attributes(b.Parameters())
}

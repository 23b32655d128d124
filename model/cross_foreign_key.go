package model

// CrossForeignKey describes a many-to-many relation through a junction
// table. It is derived from the referrers of a table on every call to
// Table.CrossForeignKeys and never stored.
type CrossForeignKey struct {
	incoming *ForeignKey
	table    *Table
	outgoing []*ForeignKey
}

// NewCrossForeignKey returns the relation reached from table through the
// junction table owning incoming.
func NewCrossForeignKey(incoming *ForeignKey, table *Table) *CrossForeignKey {
	return &CrossForeignKey{incoming: incoming, table: table}
}

// IncomingForeignKey returns the key from the junction table to Table.
func (x *CrossForeignKey) IncomingForeignKey() *ForeignKey { return x.incoming }

// Table returns the table the relation starts from.
func (x *CrossForeignKey) Table() *Table { return x.table }

// MiddleTable returns the junction table.
func (x *CrossForeignKey) MiddleTable() *Table { return x.incoming.Table() }

// ForeignKeys returns the outgoing keys of the junction table.
func (x *CrossForeignKey) ForeignKeys() []*ForeignKey { return x.outgoing }

// AddForeignKey appends an outgoing key.
func (x *CrossForeignKey) AddForeignKey(fk *ForeignKey) { x.outgoing = append(x.outgoing, fk) }

// HasForeignKeys reports whether any outgoing key was classified.
func (x *CrossForeignKey) HasForeignKeys() bool { return len(x.outgoing) > 0 }

// IsAtLeastOneLocalPrimaryKeyNotCovered reports whether fk has a local
// primary key column not yet covered by a classified outgoing key.
func (x *CrossForeignKey) IsAtLeastOneLocalPrimaryKeyNotCovered(fk *ForeignKey) bool {
	for _, pk := range fk.LocalPrimaryKeys() {
		if !x.covers(pk) {
			return true
		}
	}
	return false
}

func (x *CrossForeignKey) covers(c *Column) bool {
	for _, fk := range x.outgoing {
		if fk.HasLocalColumn(c) {
			return true
		}
	}
	return false
}

// UnclassifiedPrimaryKeys returns the junction primary key columns covered
// neither by the incoming key nor by an outgoing key.
func (x *CrossForeignKey) UnclassifiedPrimaryKeys() []*Column {
	var pks []*Column
	for _, pk := range x.MiddleTable().PrimaryKey() {
		if x.incoming.HasLocalColumn(pk) || x.covers(pk) {
			continue
		}
		pks = append(pks, pk)
	}
	return pks
}

// IsPolymorphic reports whether the relation carries more than one outgoing
// key or extra primary key columns.
func (x *CrossForeignKey) IsPolymorphic() bool {
	return len(x.outgoing) > 1 || len(x.UnclassifiedPrimaryKeys()) > 0
}

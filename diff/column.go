package diff

import (
	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// Column property names recorded by CompareColumns.
const (
	PropertySize              = "size"
	PropertyScale             = "scale"
	PropertySQLType           = "sqlType"
	PropertyType              = "type"
	PropertyNotNull           = "notNull"
	PropertyDefaultValueType  = "defaultValueType"
	PropertyDefaultValueValue = "defaultValueValue"
	PropertyAutoIncrement     = "autoIncrement"
)

// ColumnChange is one changed column property.
type ColumnChange struct {
	Property string
	From     any
	To       any
}

// ColumnChanges lists changed properties in comparison order.
type ColumnChanges []ColumnChange

// Get returns the change recorded for property.
func (cs ColumnChanges) Get(property string) (ColumnChange, bool) {
	for _, c := range cs {
		if c.Property == property {
			return c, true
		}
	}
	return ColumnChange{}, false
}

// Properties returns the changed property names.
func (cs ColumnChanges) Properties() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Property
	}
	return names
}

// Reverse swaps From and To of every change.
func (cs ColumnChanges) Reverse() ColumnChanges {
	if cs == nil {
		return nil
	}
	out := make(ColumnChanges, len(cs))
	for i, c := range cs {
		out[i] = ColumnChange{Property: c.Property, From: c.To, To: c.From}
	}
	return out
}

// CompareColumns returns the properties that differ between two columns,
// or nil if they are equivalent. When either column belongs to a platform
// and both render to the same DDL, the columns are equivalent whatever the
// logical differences.
func CompareColumns(from, to *model.Column) ColumnChanges {
	var changes ColumnChanges
	add := func(property string, f, t any) {
		changes = append(changes, ColumnChange{Property: property, From: f, To: t})
	}
	fd, td := from.Domain(), to.Domain()
	if !model.IntPtrEqual(fd.Size, td.Size) {
		add(PropertySize, intValue(fd.Size), intValue(td.Size))
	}
	if !model.IntPtrEqual(fd.Scale, td.Scale) {
		add(PropertyScale, intValue(fd.Scale), intValue(td.Scale))
	}
	if !ident.Equal(from.SQLType(), to.SQLType(), true) {
		add(PropertySQLType, from.SQLType(), to.SQLType())
		if from.Type() != to.Type() {
			add(PropertyType, from.Type(), to.Type())
		}
	}
	if from.IsNotNull() != to.IsNotNull() {
		add(PropertyNotNull, from.IsNotNull(), to.IsNotNull())
	}
	fdv, tdv := from.DefaultValue(), to.DefaultValue()
	switch {
	case fdv != nil && tdv == nil:
		add(PropertyDefaultValueType, string(fdv.Type), nil)
		add(PropertyDefaultValueValue, fdv.Value, nil)
	case fdv == nil && tdv != nil:
		add(PropertyDefaultValueType, nil, string(tdv.Type))
		add(PropertyDefaultValueValue, nil, tdv.Value)
	case fdv != nil && !fdv.Equals(tdv):
		if fdv.Type != tdv.Type {
			add(PropertyDefaultValueType, string(fdv.Type), string(tdv.Type))
		}
		if fdv.Value != tdv.Value {
			add(PropertyDefaultValueValue, fdv.Value, tdv.Value)
		}
	}
	if from.IsAutoIncrement() != to.IsAutoIncrement() {
		add(PropertyAutoIncrement, from.IsAutoIncrement(), to.IsAutoIncrement())
	}
	if len(changes) == 0 {
		return nil
	}
	p := from.Platform()
	if p == nil {
		p = to.Platform()
	}
	if p != nil && p.ColumnDDL(from) == p.ColumnDDL(to) {
		return nil
	}
	return changes
}

func intValue(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// ColumnDiff is the difference between two versions of a column.
type ColumnDiff struct {
	From    *model.Column
	To      *model.Column
	Changes ColumnChanges
}

// ComputeColumnDiff returns the diff between two columns, or nil if they
// are equivalent.
func ComputeColumnDiff(from, to *model.Column) *ColumnDiff {
	changes := CompareColumns(from, to)
	if len(changes) == 0 {
		return nil
	}
	return &ColumnDiff{From: from, To: to, Changes: changes}
}

// Reverse returns the diff that undoes d.
func (d *ColumnDiff) Reverse() *ColumnDiff {
	if d == nil {
		return nil
	}
	return &ColumnDiff{From: d.To, To: d.From, Changes: d.Changes.Reverse()}
}

// String returns the changed properties of the column.
func (d *ColumnDiff) String() string {
	var b writer
	b.line(0, d.From.FullyQualifiedName()+":")
	b.line(1, "modifiedProperties:")
	for _, c := range d.Changes {
		b.linef(2, "%s: %v => %v", c.Property, c.From, c.To)
	}
	return b.String()
}

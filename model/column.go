package model

import (
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Inheritance types of a column.
const (
	InheritanceNone   = "false"
	InheritanceSingle = "single"
)

// Column is a typed attribute of a table.
type Column struct {
	vendorPart
	name        string
	phpName     string
	description string
	table       *Table
	position    int
	domain      *Domain

	notNull       bool
	primaryKey    bool
	unique        bool
	autoIncrement bool
	lazyLoad      bool
	valueSet      []string

	inheritanceType string
	inheritances    []*Inheritance
	referrers       []*ForeignKey
}

// NewColumn returns a column with the given name and an untyped domain.
func NewColumn(name string) *Column {
	return &Column{name: name, domain: &Domain{}, inheritanceType: InheritanceNone}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// PhpName returns the explicit phpName or the camelized column name.
func (c *Column) PhpName() string {
	if c.phpName != "" {
		return c.phpName
	}
	return ident.Camelize(c.name)
}

// SetPhpName overrides the camelized name.
func (c *Column) SetPhpName(name string) { c.phpName = name }

// PluralPhpName returns the plural of PhpName.
func (c *Column) PluralPhpName() string { return ident.Pluralize(c.PhpName()) }

// IsNamePlural reports whether the column name is already plural.
func (c *Column) IsNamePlural() bool {
	return ident.Singularize(c.name) != c.name
}

// Description returns the column comment.
func (c *Column) Description() string { return c.description }

// SetDescription sets the column comment.
func (c *Column) SetDescription(d string) { c.description = d }

// Table returns the owning table, or nil.
func (c *Column) Table() *Table { return c.table }

// TableName returns the name of the owning table, or "".
func (c *Column) TableName() string {
	if c.table == nil {
		return ""
	}
	return c.table.Name()
}

// FullyQualifiedName returns "table.column".
func (c *Column) FullyQualifiedName() string {
	if c.table == nil {
		return c.name
	}
	return c.table.TableName() + "." + c.name
}

// Position returns the 1-based position of the column in its table.
func (c *Column) Position() int { return c.position }

// Platform returns the platform of the owning database, or nil.
func (c *Column) Platform() Platform {
	if c.table == nil {
		return nil
	}
	return c.table.Platform()
}

// Domain returns the column domain. It is never nil.
func (c *Column) Domain() *Domain { return c.domain }

// SetDomain replaces the column domain by a copy of d.
func (c *Column) SetDomain(d *Domain) {
	if d == nil {
		d = &Domain{}
	}
	c.domain = d.Copy()
}

// Type returns the logical type.
func (c *Column) Type() string { return c.domain.Type }

// SetType sets the logical type. When a platform is reachable its domain
// for the type supplies the SQL type.
func (c *Column) SetType(typ string) {
	typ = ident.Upper(typ)
	if p := c.Platform(); p != nil {
		if pd := p.DomainForType(typ); pd != nil {
			c.domain.SQLType = pd.SQLType
		}
	}
	c.domain.Type = typ
}

// SQLType returns the platform type, falling back to the logical type.
func (c *Column) SQLType() string { return c.domain.SQLTypeOrType() }

// SetSQLType sets the platform type.
func (c *Column) SetSQLType(s string) { c.domain.SQLType = s }

// Size returns the column size, or 0 when unset.
func (c *Column) Size() int {
	if c.domain.Size == nil {
		return 0
	}
	return *c.domain.Size
}

// HasSize reports whether a size is set.
func (c *Column) HasSize() bool { return c.domain.Size != nil }

// SetSize sets the column size.
func (c *Column) SetSize(n int) { c.domain.Size = intPtr(n) }

// ClearSize unsets the column size.
func (c *Column) ClearSize() { c.domain.Size = nil }

// Scale returns the column scale, or 0 when unset.
func (c *Column) Scale() int {
	if c.domain.Scale == nil {
		return 0
	}
	return *c.domain.Scale
}

// SetScale sets the column scale.
func (c *Column) SetScale(n int) { c.domain.Scale = intPtr(n) }

// SizeDefinition returns "(size)", "(size,scale)" or "".
func (c *Column) SizeDefinition() string { return c.domain.SizeDefinition() }

// DefaultValue returns the column default, or nil.
func (c *Column) DefaultValue() *ColumnDefaultValue { return c.domain.Default }

// SetDefaultValue sets the column default.
func (c *Column) SetDefaultValue(d *ColumnDefaultValue) { c.domain.Default = d }

// SetDefault sets a literal default value.
func (c *Column) SetDefault(value string) {
	c.domain.Default = NewColumnDefaultValue(value, DefaultValue)
}

// SetDefaultExpr sets an SQL expression default.
func (c *Column) SetDefaultExpr(expr string) {
	c.domain.Default = NewColumnDefaultValue(expr, DefaultExpr)
}

// HasDefaultValue reports whether a default is set.
func (c *Column) HasDefaultValue() bool { return c.domain.Default != nil }

// DefaultValueString returns the default as text, or "null".
func (c *Column) DefaultValueString() string {
	d := c.domain.Default
	if d == nil {
		return "null"
	}
	if d.IsExpression() || !IsTextType(c.Type()) {
		return d.Value
	}
	return "'" + strings.ReplaceAll(d.Value, "'", "''") + "'"
}

// IsNotNull reports whether the column rejects NULL.
func (c *Column) IsNotNull() bool { return c.notNull }

// SetNotNull sets the NOT NULL flag.
func (c *Column) SetNotNull(v bool) { c.notNull = v }

// IsPrimaryKey reports whether the column is part of the primary key.
func (c *Column) IsPrimaryKey() bool { return c.primaryKey }

// SetPrimaryKey sets the primary key flag. Primary key columns are NOT NULL.
func (c *Column) SetPrimaryKey(v bool) {
	c.primaryKey = v
	if v {
		c.notNull = true
	}
}

// IsUnique reports whether the column carries the unique flag.
func (c *Column) IsUnique() bool { return c.unique }

// SetUnique sets the unique flag.
func (c *Column) SetUnique(v bool) { c.unique = v }

// IsAutoIncrement reports whether values are generated by the database.
func (c *Column) IsAutoIncrement() bool { return c.autoIncrement }

// SetAutoIncrement sets the auto-increment flag.
func (c *Column) SetAutoIncrement(v bool) { c.autoIncrement = v }

// IsLazyLoad reports whether the column is loaded on demand.
func (c *Column) IsLazyLoad() bool { return c.lazyLoad }

// SetLazyLoad sets the lazy-load flag.
func (c *Column) SetLazyLoad(v bool) { c.lazyLoad = v }

// ValueSet returns the allowed values of an ENUM or SET column.
func (c *Column) ValueSet() []string { return c.valueSet }

// SetValueSet sets the allowed values of an ENUM or SET column.
func (c *Column) SetValueSet(values []string) {
	c.valueSet = append([]string(nil), values...)
}

// IsEnumType reports whether the column is an ENUM.
func (c *Column) IsEnumType() bool { return c.Type() == TypeEnum }

// IsSetType reports whether the column is a SET.
func (c *Column) IsSetType() bool { return c.Type() == TypeSet }

// IsTextType reports whether the column type is rendered as quoted text.
func (c *Column) IsTextType() bool { return IsTextType(c.Type()) }

// IsNumericType reports whether the column type is numeric.
func (c *Column) IsNumericType() bool { return IsNumericType(c.Type()) }

// IsTemporalType reports whether the column type is a date or time type.
func (c *Column) IsTemporalType() bool { return IsTemporalType(c.Type()) }

// IsLobType reports whether the column type is a large object.
func (c *Column) IsLobType() bool { return IsLobType(c.Type()) }

// IsBooleanType reports whether the column type is boolean.
func (c *Column) IsBooleanType() bool { return IsBooleanType(c.Type()) }

// InheritanceType returns "single" for a discriminator column, else "false".
func (c *Column) InheritanceType() string { return c.inheritanceType }

// SetInheritanceType sets the inheritance marker.
func (c *Column) SetInheritanceType(t string) {
	if t == "" {
		t = InheritanceNone
	}
	c.inheritanceType = t
}

// IsInheritance reports whether the column is a single-table inheritance
// discriminator.
func (c *Column) IsInheritance() bool { return c.inheritanceType != InheritanceNone }

// AddInheritance registers a discriminator value.
func (c *Column) AddInheritance(inh *Inheritance) {
	inh.column = c
	c.inheritances = append(c.inheritances, inh)
}

// AddInheritanceFromAttributes registers a discriminator value from an
// attribute bag.
func (c *Column) AddInheritanceFromAttributes(attrs Attributes) *Inheritance {
	inh := &Inheritance{}
	inh.LoadMapping(attrs)
	c.AddInheritance(inh)
	return inh
}

// Inheritances returns the discriminator values.
func (c *Column) Inheritances() []*Inheritance { return c.inheritances }

// Referrers returns the foreign keys whose foreign columns include this column.
func (c *Column) Referrers() []*ForeignKey { return c.referrers }

// HasReferrer reports whether fk references this column.
func (c *Column) HasReferrer(fk *ForeignKey) bool {
	for _, r := range c.referrers {
		if r == fk {
			return true
		}
	}
	return false
}

func (c *Column) addReferrer(fk *ForeignKey) {
	if !c.HasReferrer(fk) {
		c.referrers = append(c.referrers, fk)
	}
}

func (c *Column) removeReferrer(fk *ForeignKey) {
	for i, r := range c.referrers {
		if r == fk {
			c.referrers = append(c.referrers[:i], c.referrers[i+1:]...)
			return
		}
	}
}

// ForeignKeys returns the outgoing foreign keys this column is local to.
func (c *Column) ForeignKeys() []*ForeignKey {
	if c.table == nil {
		return nil
	}
	return c.table.ColumnForeignKeys(c.name)
}

// IsForeignKey reports whether the column is local to a foreign key.
func (c *Column) IsForeignKey() bool { return len(c.ForeignKeys()) > 0 }

// LoadMapping reads the column attributes. The column must already point at
// its table so that domains and platform types can be resolved.
func (c *Column) LoadMapping(attrs Attributes) error {
	if name, ok := attrs.Lookup("name"); ok {
		c.name = name
	}
	if dn := attrs.Get("domain"); dn != "" {
		var d *Domain
		if c.table != nil && c.table.Database() != nil {
			d = c.table.Database().Domain(dn)
		}
		if d == nil {
			return relgraph.NewResolutionError("domain", dn, c.TableName(), "column "+c.name)
		}
		c.SetDomain(d)
	}
	c.phpName = attrs.Get("phpName")
	c.description = attrs.Get("description")
	if t := attrs.Get("type"); t != "" {
		c.SetType(t)
	}
	if s := attrs.Get("sqlType"); s != "" {
		c.domain.SQLType = s
	}
	size, err := attrs.Int("size")
	if err != nil {
		return err
	}
	if size != nil {
		c.domain.Size = size
	}
	scale, err := attrs.Int("scale")
	if err != nil {
		return err
	}
	if scale != nil {
		c.domain.Scale = scale
	}
	if v, ok := attrs.Lookup("defaultValue"); ok {
		c.SetDefault(v)
	} else if v, ok := attrs.Lookup("default"); ok {
		c.SetDefault(v)
	}
	if v, ok := attrs.Lookup("defaultExpr"); ok {
		c.SetDefaultExpr(v)
	}
	c.primaryKey = attrs.Bool("primaryKey", false)
	c.notNull = attrs.Bool("required", false) || c.primaryKey
	c.unique = attrs.Bool("unique", false)
	c.autoIncrement = attrs.Bool("autoIncrement", false)
	c.lazyLoad = attrs.Bool("lazyLoad", false)
	c.valueSet = attrs.List("valueSet")
	c.SetInheritanceType(attrs.Get("inheritance"))
	return nil
}

// Inheritance is one discriminator value of a single-table inheritance column.
type Inheritance struct {
	Key     string
	Class   string
	Package string
	Extends string
	column  *Column
}

// Column returns the discriminator column.
func (i *Inheritance) Column() *Column { return i.column }

// LoadMapping reads the inheritance attributes.
func (i *Inheritance) LoadMapping(attrs Attributes) {
	i.Key = attrs.Get("key")
	i.Class = attrs.Get("class")
	i.Package = attrs.Get("package")
	i.Extends = attrs.Get("extends")
}

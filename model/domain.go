package model

import (
	"strconv"

	"github.com/syssam/relgraph/internal/ident"
)

// DefaultValueType tells whether a default is a literal value or an SQL
// expression.
type DefaultValueType string

const (
	// DefaultValue is a literal default, quoted according to the column type.
	DefaultValue DefaultValueType = "VALUE"
	// DefaultExpr is an SQL expression, rendered verbatim.
	DefaultExpr DefaultValueType = "EXPR"
)

// equivalentExprs are default expressions treated as equal.
var equivalentExprs = []string{"CURRENT_TIMESTAMP", "NOW()"}

// ColumnDefaultValue is the default of a column.
type ColumnDefaultValue struct {
	Value string
	Type  DefaultValueType
}

// NewColumnDefaultValue returns a default of the given type. An empty type
// means DefaultValue.
func NewColumnDefaultValue(value string, typ DefaultValueType) *ColumnDefaultValue {
	if typ == "" {
		typ = DefaultValue
	}
	return &ColumnDefaultValue{Value: value, Type: typ}
}

// IsExpression reports whether the default is an SQL expression.
func (d *ColumnDefaultValue) IsExpression() bool { return d.Type == DefaultExpr }

// Equals reports whether two defaults have the same type and value.
// CURRENT_TIMESTAMP and NOW() are equivalent.
func (d *ColumnDefaultValue) Equals(other *ColumnDefaultValue) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Type != other.Type {
		return false
	}
	if d.Value == other.Value {
		return true
	}
	return isEquivalentExpr(d.Value) && isEquivalentExpr(other.Value)
}

func isEquivalentExpr(v string) bool {
	v = ident.Upper(v)
	for _, e := range equivalentExprs {
		if v == e {
			return true
		}
	}
	return false
}

// Domain groups the type information of a column. Databases keep named
// domains that columns copy as templates.
type Domain struct {
	// Name of a reusable domain; empty for column-local domains.
	Name string
	// Type is the logical type, e.g. VARCHAR.
	Type string
	// SQLType is the platform type, e.g. "character varying". Empty means
	// the logical type.
	SQLType string
	// OriginSQLType is the SQL type as read from a live database, if any.
	OriginSQLType string
	Size          *int
	Scale         *int
	Default       *ColumnDefaultValue
	Description   string
}

// NewDomain returns a domain for the given logical type.
func NewDomain(typ string) *Domain {
	return &Domain{Type: ident.Upper(typ)}
}

// Copy returns a deep copy of d.
func (d *Domain) Copy() *Domain {
	if d == nil {
		return nil
	}
	c := *d
	if d.Size != nil {
		c.Size = intPtr(*d.Size)
	}
	if d.Scale != nil {
		c.Scale = intPtr(*d.Scale)
	}
	if d.Default != nil {
		def := *d.Default
		c.Default = &def
	}
	return &c
}

// SQLTypeOrType returns SQLType, falling back to the logical type.
func (d *Domain) SQLTypeOrType() string {
	if d.SQLType != "" {
		return d.SQLType
	}
	return d.Type
}

// SizeDefinition returns "(size)" or "(size,scale)", or "" when no size is set.
func (d *Domain) SizeDefinition() string {
	if d.Size == nil {
		return ""
	}
	if d.Scale != nil {
		return "(" + strconv.Itoa(*d.Size) + "," + strconv.Itoa(*d.Scale) + ")"
	}
	return "(" + strconv.Itoa(*d.Size) + ")"
}

// LoadMapping reads a domain declaration.
func (d *Domain) LoadMapping(attrs Attributes) error {
	d.Name = attrs.Get("name")
	if t := attrs.Get("type"); t != "" {
		d.Type = ident.Upper(t)
	}
	d.SQLType = attrs.Get("sqlType")
	d.Description = attrs.Get("description")
	size, err := attrs.Int("size")
	if err != nil {
		return err
	}
	scale, err := attrs.Int("scale")
	if err != nil {
		return err
	}
	d.Size, d.Scale = size, scale
	if v, ok := attrs.Lookup("defaultValue"); ok {
		d.Default = NewColumnDefaultValue(v, DefaultValue)
	} else if v, ok := attrs.Lookup("defaultExpr"); ok {
		d.Default = NewColumnDefaultValue(v, DefaultExpr)
	}
	return nil
}

func intPtr(n int) *int { return &n }

// IntPtrEqual reports whether two optional integers are equal.
func IntPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

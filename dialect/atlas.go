package dialect

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// AtlasType returns the atlas column type of c. MySQL and PostgreSQL
// types are parsed by the atlas drivers; other dialects are mapped from
// the logical type.
func (p *Platform) AtlasType(c *model.Column) (*schema.ColumnType, error) {
	raw := lowerTypeName(p.ColumnType(c))
	ct := &schema.ColumnType{Raw: raw, Null: !c.IsNotNull()}
	var err error
	switch p.flavor.name {
	case MySQL:
		ct.Type, err = mysql.ParseType(raw)
	case Postgres:
		ct.Type, err = postgres.ParseType(raw)
	default:
		ct.Type = logicalType(c, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("dialect: column %s: parse type %q: %w", c.FullyQualifiedName(), raw, err)
	}
	return ct, nil
}

// lowerTypeName lower-cases the type name and keeps its arguments, so
// enum values survive.
func lowerTypeName(raw string) string {
	i := strings.IndexByte(raw, '(')
	if i < 0 {
		return ident.Lower(raw)
	}
	return ident.Lower(raw[:i]) + raw[i:]
}

func logicalType(c *model.Column, raw string) schema.Type {
	name := raw
	if i := strings.IndexByte(raw, '('); i >= 0 {
		name = raw[:i]
	}
	switch typ := c.Type(); {
	case c.IsBooleanType():
		return &schema.BoolType{T: name}
	case typ == model.TypeTinyInt, typ == model.TypeSmallInt, typ == model.TypeInteger, typ == model.TypeBigInt:
		return &schema.IntegerType{T: name}
	case typ == model.TypeDecimal, typ == model.TypeNumeric:
		return &schema.DecimalType{T: name, Precision: c.Size(), Scale: c.Scale()}
	case typ == model.TypeReal, typ == model.TypeFloat, typ == model.TypeDouble:
		return &schema.FloatType{T: name}
	case c.IsTemporalType():
		return &schema.TimeType{T: name}
	case typ == model.TypeJSON:
		return &schema.JSONType{T: name}
	case typ == model.TypeUUID:
		return &schema.UUIDType{T: name}
	case c.IsTextType(), c.IsEnumType(), c.IsSetType():
		return &schema.StringType{T: name, Size: c.Size()}
	case typ == model.TypeBinary, typ == model.TypeVarBinary, c.IsLobType():
		return &schema.BinaryType{T: name}
	}
	return &schema.UnsupportedType{T: name}
}

// AtlasColumn converts c into an atlas column.
func (p *Platform) AtlasColumn(c *model.Column) (*schema.Column, error) {
	ct, err := p.AtlasType(c)
	if err != nil {
		return nil, err
	}
	col := &schema.Column{Name: c.Name(), Type: ct}
	if d := c.DefaultValue(); d != nil {
		if d.IsExpression() {
			col.Default = &schema.RawExpr{X: d.Value}
		} else {
			col.Default = &schema.Literal{V: strings.TrimPrefix(p.DefaultValueDDL(c), "DEFAULT ")}
		}
	}
	if c.IsAutoIncrement() {
		switch p.flavor.name {
		case MySQL:
			col.AddAttrs(&mysql.AutoIncrement{})
		case SQLite:
			col.AddAttrs(&sqlite.AutoIncrement{})
		}
	}
	return col, nil
}

// AtlasTable converts t into an atlas table without foreign keys; those
// need the referenced tables and are attached by Export.
func (p *Platform) AtlasTable(t *model.Table) (*schema.Table, error) {
	at := &schema.Table{Name: t.Name()}
	var errs []error
	for _, c := range t.Columns() {
		col, err := p.AtlasColumn(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		at.Columns = append(at.Columns, col)
	}
	if err := relgraph.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	if pk := t.PrimaryKey(); len(pk) > 0 {
		names := make([]string, len(pk))
		for i, c := range pk {
			names[i] = c.Name()
		}
		at.PrimaryKey = &schema.Index{Unique: true, Table: at, Parts: p.indexParts(at, nil, names)}
	}
	for _, idx := range append(t.Uniques(), t.Indices()...) {
		at.Indexes = append(at.Indexes, p.AtlasIndex(at, idx))
	}
	return at, nil
}

// AtlasIndex converts idx into an index of at.
func (p *Platform) AtlasIndex(at *schema.Table, idx *model.Index) *schema.Index {
	return &schema.Index{
		Name:   idx.Name(),
		Unique: idx.IsUnique(),
		Table:  at,
		Parts:  p.indexParts(at, idx, idx.Columns()),
	}
}

func (p *Platform) indexParts(at *schema.Table, idx *model.Index, names []string) []*schema.IndexPart {
	parts := make([]*schema.IndexPart, 0, len(names))
	for i, n := range names {
		col, ok := at.Column(n)
		if !ok {
			continue
		}
		part := &schema.IndexPart{SeqNo: i + 1, C: col}
		if idx != nil && p.SupportsIndexSize() {
			if size := idx.ColumnSize(n, false); size > 0 {
				part.Attrs = append(part.Attrs, &mysql.SubPart{Len: size})
			}
		}
		parts = append(parts, part)
	}
	return parts
}

// AtlasForeignKey converts fk into a foreign key of at referencing ref.
func (p *Platform) AtlasForeignKey(at, ref *schema.Table, fk *model.ForeignKey) (*schema.ForeignKey, error) {
	afk := &schema.ForeignKey{
		Symbol:   fk.Name(),
		Table:    at,
		RefTable: ref,
		OnUpdate: referenceOption(fk.OnUpdate()),
		OnDelete: referenceOption(fk.OnDelete()),
	}
	for _, n := range fk.LocalColumns() {
		c, ok := at.Column(n)
		if !ok {
			return nil, relgraph.NewResolutionError("column", n, at.Name, fk.Name())
		}
		afk.Columns = append(afk.Columns, c)
	}
	for _, n := range fk.ForeignColumns() {
		c, ok := ref.Column(n)
		if !ok {
			return nil, relgraph.NewResolutionError("column", n, ref.Name, fk.Name())
		}
		afk.RefColumns = append(afk.RefColumns, c)
	}
	return afk, nil
}

func referenceOption(a model.Action) schema.ReferenceOption {
	switch a {
	case model.ActionCascade:
		return schema.Cascade
	case model.ActionSetNull:
		return schema.SetNull
	case model.ActionSetDefault:
		return schema.SetDefault
	case model.ActionRestrict:
		return schema.Restrict
	case model.ActionNoAction:
		return schema.NoAction
	}
	return ""
}

// Export converts db into an atlas schema named after the database
// schema, so statements stay unqualified when it is empty. Tables and
// foreign keys flagged skipSql are left out; a foreign key to a table
// outside the export is a resolution error.
func (p *Platform) Export(db *model.Database) (*schema.Schema, error) {
	s := &schema.Schema{Name: db.Schema()}
	tables := make(map[string]*schema.Table)
	var errs []error
	for _, t := range db.Tables() {
		if t.IsSkipSQL() {
			continue
		}
		at, err := p.AtlasTable(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		at.Schema = s
		s.Tables = append(s.Tables, at)
		tables[t.Name()] = at
	}
	for _, t := range db.Tables() {
		at, ok := tables[t.Name()]
		if !ok {
			continue
		}
		for _, fk := range t.ForeignKeys() {
			if fk.IsSkipSQL() {
				continue
			}
			ref, ok := tables[fk.ForeignTableCommonName()]
			if !ok {
				errs = append(errs, relgraph.NewResolutionError("table", fk.ForeignTableName(), t.Name(), fk.Name()))
				continue
			}
			afk, err := p.AtlasForeignKey(at, ref, fk)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			at.ForeignKeys = append(at.ForeignKeys, afk)
		}
	}
	if err := relgraph.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

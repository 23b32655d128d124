package dialect

import (
	"strconv"
	"strings"

	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

var serialTypes = map[string]string{
	"SMALLINT": "SMALLSERIAL",
	"INTEGER":  "SERIAL",
	"BIGINT":   "BIGSERIAL",
}

// ColumnDDL renders the column definition used in CREATE TABLE:
// name, type, default, nullability and the auto-increment keyword.
func (p *Platform) ColumnDDL(c *model.Column) string {
	parts := []string{p.identifier(c.Table(), c.Name()), p.ColumnType(c)}
	if d := p.DefaultValueDDL(c); d != "" {
		parts = append(parts, d)
	}
	if c.IsNotNull() {
		parts = append(parts, "NOT NULL")
	}
	if c.IsAutoIncrement() && p.flavor.autoIncrement != "" {
		parts = append(parts, p.flavor.autoIncrement)
	}
	return strings.Join(parts, " ")
}

// ColumnType renders the SQL type of a column including its size.
func (p *Platform) ColumnType(c *model.Column) string {
	sqlType := c.Domain().SQLType
	if sqlType == "" {
		sqlType = p.SQLType(c.Type())
	}
	if p.flavor.serial && c.IsAutoIncrement() {
		if s, ok := serialTypes[ident.Upper(sqlType)]; ok {
			return s
		}
	}
	if p.flavor.nativeEnum && (c.IsEnumType() || c.IsSetType()) && len(c.ValueSet()) > 0 {
		values := make([]string, len(c.ValueSet()))
		for i, v := range c.ValueSet() {
			values[i] = p.Quote(v)
		}
		return c.Type() + "(" + strings.Join(values, ",") + ")"
	}
	if strings.Contains(sqlType, "(") || !p.HasSize(sqlType) {
		return sqlType
	}
	return sqlType + c.SizeDefinition()
}

// DefaultValueDDL renders the DEFAULT clause of a column, or "".
// Expressions are rendered verbatim, text values are quoted and boolean
// values use the dialect's boolean literals.
func (p *Platform) DefaultValueDDL(c *model.Column) string {
	d := c.DefaultValue()
	if d == nil {
		return ""
	}
	switch {
	case d.IsExpression():
		return "DEFAULT " + d.Value
	case c.IsBooleanType():
		return "DEFAULT " + p.BooleanString(d.Value)
	case c.IsTextType(), c.IsEnumType(), c.IsSetType():
		return "DEFAULT " + p.Quote(d.Value)
	}
	return "DEFAULT " + d.Value
}

// CreateTableSQL returns the statements creating t: the CREATE TABLE
// statement followed by one CREATE INDEX per non-unique index.
// Unique indices and foreign keys are declared inline.
func (p *Platform) CreateTableSQL(t *model.Table) []string {
	var lines []string
	for _, c := range t.Columns() {
		lines = append(lines, p.ColumnDDL(c))
	}
	if pk := t.PrimaryKey(); len(pk) > 0 {
		names := make([]string, len(pk))
		for i, c := range pk {
			names[i] = c.Name()
		}
		lines = append(lines, "PRIMARY KEY ("+p.identifiers(t, names)+")")
	}
	for _, u := range t.Uniques() {
		lines = append(lines, "CONSTRAINT "+p.identifier(t, u.Name())+" UNIQUE ("+p.identifiers(t, u.Columns())+")")
	}
	for _, fk := range t.ForeignKeys() {
		if fk.IsSkipSQL() {
			continue
		}
		lines = append(lines, p.ForeignKeyDDL(fk))
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(p.identifier(t, t.FullName()))
	b.WriteString("\n(\n    ")
	b.WriteString(strings.Join(lines, ",\n    "))
	b.WriteString("\n)")
	stmts := []string{b.String()}
	for _, idx := range t.Indices() {
		stmts = append(stmts, p.IndexDDL(idx))
	}
	return stmts
}

// DropTableSQL returns the statement dropping t.
func (p *Platform) DropTableSQL(t *model.Table) string {
	if p.flavor.name == Generic {
		return "DROP TABLE " + p.identifier(t, t.FullName())
	}
	return "DROP TABLE IF EXISTS " + p.identifier(t, t.FullName())
}

// IndexDDL renders a CREATE INDEX statement. Column prefix sizes are kept
// only when the dialect supports them.
func (p *Platform) IndexDDL(idx *model.Index) string {
	t := idx.Table()
	cols := idx.Columns()
	for i, c := range cols {
		cols[i] = p.identifier(t, c)
		if size := idx.ColumnSize(c, false); size > 0 && p.SupportsIndexSize() {
			cols[i] += "(" + strconv.Itoa(size) + ")"
		}
	}
	kind := "INDEX"
	if idx.IsUnique() {
		kind = "UNIQUE INDEX"
	}
	table := ""
	if t != nil {
		table = p.identifier(t, t.FullName())
	}
	return "CREATE " + kind + " " + p.identifier(t, idx.Name()) + " ON " + table + " (" + strings.Join(cols, ",") + ")"
}

// ForeignKeyDDL renders the inline constraint of a foreign key.
func (p *Platform) ForeignKeyDDL(fk *model.ForeignKey) string {
	t := fk.Table()
	var b strings.Builder
	b.WriteString("CONSTRAINT ")
	b.WriteString(p.identifier(t, fk.Name()))
	b.WriteString(" FOREIGN KEY (")
	b.WriteString(p.identifiers(t, fk.LocalColumns()))
	b.WriteString(") REFERENCES ")
	b.WriteString(p.identifier(t, fk.ForeignTableName()))
	b.WriteString(" (")
	b.WriteString(p.identifiers(t, fk.ForeignColumns()))
	b.WriteString(")")
	if fk.HasOnUpdate() {
		b.WriteString(" ON UPDATE " + string(fk.OnUpdate()))
	}
	if fk.HasOnDelete() {
		b.WriteString(" ON DELETE " + string(fk.OnDelete()))
	}
	return b.String()
}

// identifier quotes name when the table enables identifier quoting.
func (p *Platform) identifier(t *model.Table, name string) string {
	if t != nil && t.IsIdentifierQuotingEnabled() {
		return p.QuoteIdentifier(name)
	}
	return name
}

func (p *Platform) identifiers(t *model.Table, names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = p.identifier(t, n)
	}
	return strings.Join(quoted, ",")
}

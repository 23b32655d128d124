package load

import (
	"strconv"

	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// NewDocument returns the serialized form of s. Derived values that a
// reader would compute again, such as auto-generated index names, are
// left out.
func NewDocument(s *model.Schema) *Document {
	d := &Document{Name: s.Name()}
	for _, db := range s.Databases() {
		d.Databases = append(d.Databases, NewDatabase(db))
	}
	return d
}

// NewDatabase returns the serialized form of db.
func NewDatabase(db *model.Database) *Database {
	dd := &Database{Attrs: attrs{}.
		set("name", db.Name()).
		set("schema", db.Schema()).
		set("namespace", db.Namespace()).
		set("tablePrefix", db.TablePrefix()).
		setUnless("defaultIdMethod", db.DefaultIDMethod(), model.IDMethodNative).
		flag("identifierQuoting", db.IsIdentifierQuotingEnabled()).
		flag("heavyIndexing", db.IsHeavyIndexing()),
	}
	if p := db.Platform(); p != nil {
		dd.Attrs["platform"] = p.Name()
	}
	for _, dom := range db.Domains() {
		dd.Domains = append(dd.Domains, domainAttrs(dom))
	}
	for _, t := range db.Tables() {
		dd.Tables = append(dd.Tables, newTable(db, t))
	}
	for _, b := range db.Behaviors() {
		dd.Behaviors = append(dd.Behaviors, newBehavior(b))
	}
	dd.Vendor = newVendor(db.VendorInfos())
	return dd
}

func newTable(db *model.Database, t *model.Table) *Table {
	a := attrs{}.
		set("name", t.Name()).
		setUnless("tableName", t.TableName(), db.TablePrefix()+ident.Snake(t.Name())).
		setUnless("phpName", t.PhpName(), ident.Camelize(t.Name())).
		setUnless("schema", t.Schema(), db.Schema()).
		setUnless("namespace", t.Namespace(), db.Namespace()).
		set("description", t.Description()).
		setUnless("idMethod", t.IDMethod(), db.DefaultIDMethod()).
		flag("readOnly", t.IsReadOnly()).
		flag("skipSql", t.IsSkipSQL()).
		flag("isCrossRef", t.IsCrossRef()).
		flag("abstract", t.IsAbstract()).
		flag("reloadOnInsert", t.IsReloadOnInsert()).
		flag("reloadOnUpdate", t.IsReloadOnUpdate())
	if t.IsHeavyIndexing() != db.IsHeavyIndexing() {
		a["heavyIndexing"] = strconv.FormatBool(t.IsHeavyIndexing())
	}
	if t.IsIdentifierQuotingEnabled() != db.IsIdentifierQuotingEnabled() {
		a["identifierQuoting"] = strconv.FormatBool(t.IsIdentifierQuotingEnabled())
	}
	td := &Table{Attrs: a}
	for _, c := range t.Columns() {
		td.Columns = append(td.Columns, newColumn(c))
	}
	for _, fk := range t.ForeignKeys() {
		td.ForeignKeys = append(td.ForeignKeys, newForeignKey(fk))
	}
	for _, idx := range t.Indices() {
		td.Indices = append(td.Indices, newIndex(idx))
	}
	for _, idx := range t.Uniques() {
		td.Uniques = append(td.Uniques, newIndex(idx))
	}
	for _, b := range t.Behaviors() {
		td.Behaviors = append(td.Behaviors, newBehavior(b))
	}
	td.Vendor = newVendor(t.VendorInfos())
	return td
}

func newColumn(c *model.Column) *Column {
	dom := c.Domain()
	a := attrs{}.
		set("name", c.Name()).
		setUnless("phpName", c.PhpName(), ident.Camelize(c.Name())).
		set("description", c.Description()).
		set("type", dom.Type).
		set("sqlType", dom.SQLType).
		size("size", dom.Size).
		size("scale", dom.Scale).
		flag("primaryKey", c.IsPrimaryKey()).
		flag("required", c.IsNotNull() && !c.IsPrimaryKey()).
		flag("unique", c.IsUnique()).
		flag("autoIncrement", c.IsAutoIncrement()).
		flag("lazyLoad", c.IsLazyLoad()).
		setUnless("inheritance", c.InheritanceType(), model.InheritanceNone)
	if dv := c.DefaultValue(); dv != nil {
		if dv.IsExpression() {
			a["defaultExpr"] = dv.Value
		} else {
			a["defaultValue"] = dv.Value
		}
	}
	cd := &Column{Attrs: a, ValueSet: c.ValueSet(), Vendor: newVendor(c.VendorInfos())}
	for _, inh := range c.Inheritances() {
		cd.Inheritances = append(cd.Inheritances, attrs{}.
			set("key", inh.Key).
			set("class", inh.Class).
			set("package", inh.Package).
			set("extends", inh.Extends))
	}
	return cd
}

func newForeignKey(fk *model.ForeignKey) *ForeignKey {
	a := attrs{}.
		set("foreignTable", fk.ForeignTableCommonName()).
		set("foreignSchema", fk.ForeignSchemaName()).
		set("phpName", fk.PhpName()).
		set("refPhpName", fk.RefPhpName()).
		setUnless("onUpdate", string(fk.OnUpdate()), string(model.ActionNone)).
		setUnless("onDelete", string(fk.OnDelete()), string(model.ActionNone)).
		setUnless("defaultJoin", string(fk.DefaultJoin()), string(model.JoinInner)).
		flag("skipSql", fk.IsSkipSQL())
	if !fk.IsAutoNamed() {
		a["name"] = fk.Name()
	}
	fd := &ForeignKey{Attrs: a, Vendor: newVendor(fk.VendorInfos())}
	foreign := fk.ForeignColumns()
	for i, local := range fk.LocalColumns() {
		fd.References = append(fd.References, map[string]string{"local": local, "foreign": foreign[i]})
	}
	return fd
}

func newIndex(idx *model.Index) *Index {
	id := &Index{Attrs: attrs{}, Vendor: newVendor(idx.VendorInfos())}
	if !idx.IsAutoNamed() {
		id.Attrs["name"] = idx.Name()
	}
	for _, c := range idx.Columns() {
		id.Columns = append(id.Columns, IndexColumn{Name: c, Size: idx.ColumnSize(c, false)})
	}
	return id
}

func newBehavior(b *model.Behavior) *Behavior {
	bd := &Behavior{Attrs: attrs{}.
		set("name", b.Name()).
		setUnless("id", b.ID(), b.Name()).
		setUnless("order", strconv.Itoa(b.TableModificationOrder()), strconv.Itoa(model.NewBehavior(b.Name()).TableModificationOrder())),
	}
	for _, name := range b.ParameterNames() {
		v, _ := b.Parameter(name)
		bd.Parameters = append(bd.Parameters, Parameter{Name: name, Value: v})
	}
	return bd
}

func newVendor(infos []*model.VendorInfo) []*Vendor {
	var out []*Vendor
	for _, vi := range infos {
		v := &Vendor{Type: vi.Type()}
		for _, name := range vi.ParameterNames() {
			value, _ := vi.Parameter(name)
			v.Parameters = append(v.Parameters, Parameter{Name: name, Value: value})
		}
		out = append(out, v)
	}
	return out
}

func domainAttrs(dom *model.Domain) map[string]string {
	a := attrs{}.
		set("name", dom.Name).
		set("type", dom.Type).
		set("sqlType", dom.SQLType).
		set("description", dom.Description).
		size("size", dom.Size).
		size("scale", dom.Scale)
	if dv := dom.Default; dv != nil {
		if dv.IsExpression() {
			a["defaultExpr"] = dv.Value
		} else {
			a["defaultValue"] = dv.Value
		}
	}
	return a
}

// attrs builds attribute maps, leaving out empty and default values.
type attrs map[string]string

func (a attrs) set(key, value string) attrs {
	if value != "" {
		a[key] = value
	}
	return a
}

func (a attrs) setUnless(key, value, def string) attrs {
	if value != def {
		a[key] = value
	}
	return a
}

func (a attrs) flag(key string, v bool) attrs {
	if v {
		a[key] = "true"
	}
	return a
}

func (a attrs) size(key string, n *int) attrs {
	if n != nil {
		a[key] = strconv.Itoa(*n)
	}
	return a
}

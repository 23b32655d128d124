package model

import (
	"slices"
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Table is the aggregate root of one relation.
type Table struct {
	vendorPart
	name        string
	tableName   string
	phpName     string
	schema      string
	namespace   string
	description string
	idMethod    string
	database    *Database

	columns     []*Column
	foreignKeys []*ForeignKey
	referrers   []*ForeignKey
	indices     []*Index
	uniques     []*Index
	behaviors   []*Behavior

	readOnly          bool
	skipSQL           bool
	crossRef          bool
	abstract          bool
	reloadOnInsert    bool
	reloadOnUpdate    bool
	heavyIndexing     *bool
	identifierQuoting *bool
}

// NewTable returns an empty table.
func NewTable(name string) *Table {
	return &Table{name: name}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// SetName renames the table.
func (t *Table) SetName(name string) { t.name = name }

// TableName returns the SQL table name: the explicit one, or the database
// table prefix followed by the snake_case name.
func (t *Table) TableName() string {
	if t.tableName != "" {
		return t.tableName
	}
	prefix := ""
	if t.database != nil {
		prefix = t.database.TablePrefix()
	}
	return prefix + ident.Snake(t.name)
}

// SetTableName sets an explicit SQL table name.
func (t *Table) SetTableName(name string) { t.tableName = name }

// PhpName returns the explicit phpName, or the camelized name.
func (t *Table) PhpName() string {
	if t.phpName != "" {
		return t.phpName
	}
	return ident.Camelize(t.name)
}

// SetPhpName sets the phpName.
func (t *Table) SetPhpName(name string) { t.phpName = name }

// Schema returns the database schema the table lives in, or "".
func (t *Table) Schema() string {
	if t.schema == "" && t.database != nil {
		return t.database.Schema()
	}
	return t.schema
}

// SetSchema sets the database schema.
func (t *Table) SetSchema(s string) { t.schema = s }

// FullName returns the name qualified by the schema when the platform
// supports schemas.
func (t *Table) FullName() string { return t.qualify(t.name) }

// FullTableName returns the SQL table name qualified by the schema when
// the platform supports schemas.
func (t *Table) FullTableName() string { return t.qualify(t.TableName()) }

func (t *Table) qualify(name string) string {
	s := t.Schema()
	if s == "" {
		return name
	}
	if p := t.Platform(); p != nil && !p.SupportsSchemas() {
		return name
	}
	return s + "." + name
}

// Namespace returns the namespace of generated code, if any.
func (t *Table) Namespace() string {
	if t.namespace == "" && t.database != nil {
		return t.database.Namespace()
	}
	return t.namespace
}

// SetNamespace sets the namespace.
func (t *Table) SetNamespace(ns string) { t.namespace = ns }

// Description returns the table comment.
func (t *Table) Description() string { return t.description }

// SetDescription sets the table comment.
func (t *Table) SetDescription(d string) { t.description = d }

// IDMethod returns the id generation method, inherited from the database.
func (t *Table) IDMethod() string {
	if t.idMethod == "" && t.database != nil {
		return t.database.DefaultIDMethod()
	}
	return t.idMethod
}

// SetIDMethod sets the id generation method.
func (t *Table) SetIDMethod(m string) { t.idMethod = m }

// Database returns the owning database, or nil.
func (t *Table) Database() *Database { return t.database }

// SetDatabase moves the table to db, detaching it from its current
// database first. A nil db only detaches.
func (t *Table) SetDatabase(db *Database) error {
	if db == nil {
		if t.database != nil {
			t.database.RemoveTable(t)
		}
		return nil
	}
	return db.AddTable(t)
}

// Platform returns the platform of the owning database, or nil.
func (t *Table) Platform() Platform {
	if t.database == nil {
		return nil
	}
	return t.database.Platform()
}

// IsReadOnly reports whether the table only supports reads.
func (t *Table) IsReadOnly() bool { return t.readOnly }

// SetReadOnly sets the read-only flag.
func (t *Table) SetReadOnly(v bool) { t.readOnly = v }

// IsSkipSQL reports whether no DDL is emitted for the table.
func (t *Table) IsSkipSQL() bool { return t.skipSQL }

// SetSkipSQL sets the skip-SQL flag.
func (t *Table) SetSkipSQL(v bool) { t.skipSQL = v }

// IsCrossRef reports whether the table is a many-to-many junction.
func (t *Table) IsCrossRef() bool { return t.crossRef }

// SetCrossRef sets the junction flag.
func (t *Table) SetCrossRef(v bool) { t.crossRef = v }

// IsAbstract reports whether the table only serves as a base for others.
func (t *Table) IsAbstract() bool { return t.abstract }

// SetAbstract sets the abstract flag.
func (t *Table) SetAbstract(v bool) { t.abstract = v }

// IsReloadOnInsert reports whether rows are read back after an insert.
func (t *Table) IsReloadOnInsert() bool { return t.reloadOnInsert }

// SetReloadOnInsert sets the reload-on-insert flag.
func (t *Table) SetReloadOnInsert(v bool) { t.reloadOnInsert = v }

// IsReloadOnUpdate reports whether rows are read back after an update.
func (t *Table) IsReloadOnUpdate() bool { return t.reloadOnUpdate }

// SetReloadOnUpdate sets the reload-on-update flag.
func (t *Table) SetReloadOnUpdate(v bool) { t.reloadOnUpdate = v }

// SetHeavyIndexing overrides the database heavy indexing setting.
func (t *Table) SetHeavyIndexing(v bool) { t.heavyIndexing = &v }

// SetIdentifierQuoting overrides the database quoting policy.
func (t *Table) SetIdentifierQuoting(v bool) { t.identifierQuoting = &v }

// IsHeavyIndexing reports whether composite primary key suffixes get their
// own index. Unset tables inherit the database setting.
func (t *Table) IsHeavyIndexing() bool {
	if t.heavyIndexing != nil {
		return *t.heavyIndexing
	}
	return t.database != nil && t.database.IsHeavyIndexing()
}

// IsIdentifierQuotingEnabled reports whether identifiers are quoted.
// Unset tables inherit the database policy.
func (t *Table) IsIdentifierQuotingEnabled() bool {
	if t.identifierQuoting != nil {
		return *t.identifierQuoting
	}
	return t.database != nil && t.database.IsIdentifierQuotingEnabled()
}

// QuoteIdentifier quotes name with the platform when quoting is enabled.
func (t *Table) QuoteIdentifier(name string) string {
	if p := t.Platform(); p != nil && t.IsIdentifierQuotingEnabled() {
		return p.QuoteIdentifier(name)
	}
	return name
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column { return slices.Clone(t.columns) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// Column returns the column with exactly the given name, or nil.
func (t *Table) Column(name string) *Column { return t.LookupColumn(name, false) }

// LookupColumn returns the named column, optionally ignoring case.
func (t *Table) LookupColumn(name string, caseInsensitive bool) *Column {
	for _, c := range t.columns {
		if ident.Equal(c.name, name, caseInsensitive) {
			return c
		}
	}
	return nil
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string, caseInsensitive bool) bool {
	return t.LookupColumn(name, caseInsensitive) != nil
}

// ColumnByPhpName returns the column with the given phpName, or nil.
func (t *Table) ColumnByPhpName(name string) *Column {
	for _, c := range t.columns {
		if c.PhpName() == name {
			return c
		}
	}
	return nil
}

// AddColumn appends c. Column names are unique within a table.
func (t *Table) AddColumn(c *Column) error {
	if c.name == "" {
		return relgraph.NewBuildError("column", "", t.name, "column name is empty")
	}
	if t.Column(c.name) != nil {
		return relgraph.NewBuildError("column", c.name, t.name, "column already exists")
	}
	c.table = t
	c.position = len(t.columns) + 1
	t.columns = append(t.columns, c)
	if t.database != nil {
		t.database.linkColumn(c)
	}
	return nil
}

// AddColumnFromAttributes creates a column from an attribute bag and one
// bag per inheritance child.
func (t *Table) AddColumnFromAttributes(attrs Attributes, inheritances ...Attributes) (*Column, error) {
	c := NewColumn("")
	c.table = t
	if err := c.LoadMapping(attrs); err != nil {
		return nil, err
	}
	for _, ia := range inheritances {
		c.AddInheritanceFromAttributes(ia)
	}
	c.table = nil
	if err := t.AddColumn(c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveColumn removes the named column and renumbers the others.
func (t *Table) RemoveColumn(name string) error {
	for i, c := range t.columns {
		if c.name != name {
			continue
		}
		t.columns = append(t.columns[:i], t.columns[i+1:]...)
		c.table = nil
		for j, rest := range t.columns {
			rest.position = j + 1
		}
		return nil
	}
	return relgraph.NewBuildError("column", name, t.name, "no such column")
}

// PrimaryKey returns the primary key columns in table order.
func (t *Table) PrimaryKey() []*Column {
	var pk []*Column
	for _, c := range t.columns {
		if c.primaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// HasPrimaryKey reports whether some column is a primary key.
func (t *Table) HasPrimaryKey() bool { return len(t.PrimaryKey()) > 0 }

// HasCompositePrimaryKey reports whether the primary key spans columns.
func (t *Table) HasCompositePrimaryKey() bool { return len(t.PrimaryKey()) > 1 }

// FirstPrimaryKeyColumn returns the first primary key column, or nil.
func (t *Table) FirstPrimaryKeyColumn() *Column {
	if pk := t.PrimaryKey(); len(pk) > 0 {
		return pk[0]
	}
	return nil
}

// AutoIncrementPrimaryKey returns the auto-increment primary key column,
// or nil.
func (t *Table) AutoIncrementPrimaryKey() *Column {
	for _, c := range t.PrimaryKey() {
		if c.autoIncrement {
			return c
		}
	}
	return nil
}

// HasAutoIncrementPrimaryKey reports whether a primary key column is
// auto-incremented.
func (t *Table) HasAutoIncrementPrimaryKey() bool { return t.AutoIncrementPrimaryKey() != nil }

// IsUnique reports whether the named columns are guaranteed unique: they
// form the primary key or a unique index, or they are one column with the
// unique flag.
func (t *Table) IsUnique(columns []string) bool {
	if len(columns) == 0 {
		return false
	}
	pk := t.PrimaryKey()
	names := make([]string, len(pk))
	for i, c := range pk {
		names[i] = c.name
	}
	if sameNames(columns, names) {
		return true
	}
	for _, u := range t.uniques {
		if sameNames(columns, u.columns) {
			return true
		}
	}
	if len(columns) == 1 {
		if c := t.Column(columns[0]); c != nil && c.unique {
			return true
		}
	}
	return false
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, n := range a {
		if !slices.Contains(b, n) {
			return false
		}
	}
	return true
}

// ForeignKeys returns the outgoing foreign keys.
func (t *Table) ForeignKeys() []*ForeignKey { return slices.Clone(t.foreignKeys) }

// ForeignKey returns the outgoing key with the given name, or nil.
func (t *Table) ForeignKey(name string) *ForeignKey {
	for _, fk := range t.foreignKeys {
		if fk.Name() == name {
			return fk
		}
	}
	return nil
}

// AddForeignKey appends fk and registers it as a referrer of the foreign
// table when that table is already known. It never fails: the foreign
// table may be added later.
func (t *Table) AddForeignKey(fk *ForeignKey) {
	fk.table = t
	t.foreignKeys = append(t.foreignKeys, fk)
	linkForeignKey(fk)
}

// AddForeignKeyFromAttributes creates a foreign key from an attribute bag
// and one "local"/"foreign" bag per column pair.
func (t *Table) AddForeignKeyFromAttributes(attrs Attributes, references ...Attributes) (*ForeignKey, error) {
	fk := NewForeignKey("")
	fk.LoadMapping(attrs)
	for _, ra := range references {
		fk.AddReferenceFromAttributes(ra)
	}
	t.AddForeignKey(fk)
	return fk, nil
}

// RemoveForeignKey removes fk and unregisters it from its foreign table.
func (t *Table) RemoveForeignKey(fk *ForeignKey) bool {
	i := indexOfFK(t.foreignKeys, fk)
	if i < 0 {
		return false
	}
	unlinkForeignKey(fk)
	t.foreignKeys = append(t.foreignKeys[:i], t.foreignKeys[i+1:]...)
	fk.table = nil
	return true
}

// ForeignKeysReferencingTable returns the outgoing keys to the named table.
func (t *Table) ForeignKeysReferencingTable(name string) []*ForeignKey {
	var fks []*ForeignKey
	for _, fk := range t.foreignKeys {
		if fk.ForeignTableName() == name {
			fks = append(fks, fk)
		}
	}
	return fks
}

// ColumnForeignKeys returns the outgoing keys that use the named local
// column.
func (t *Table) ColumnForeignKeys(column string) []*ForeignKey {
	var fks []*ForeignKey
	for _, fk := range t.foreignKeys {
		if slices.Contains(fk.localColumns, column) {
			fks = append(fks, fk)
		}
	}
	return fks
}

// Referrers returns the foreign keys of other tables (or of this one)
// that point at this table.
func (t *Table) Referrers() []*ForeignKey { return slices.Clone(t.referrers) }

// HasReferrer reports whether fk is registered as a referrer.
func (t *Table) HasReferrer(fk *ForeignKey) bool { return indexOfFK(t.referrers, fk) >= 0 }

func (t *Table) addReferrer(fk *ForeignKey) {
	if !t.HasReferrer(fk) {
		t.referrers = append(t.referrers, fk)
	}
}

func (t *Table) removeReferrer(fk *ForeignKey) {
	if i := indexOfFK(t.referrers, fk); i >= 0 {
		t.referrers = append(t.referrers[:i], t.referrers[i+1:]...)
	}
}

// linkForeignKey registers fk on its foreign table and foreign columns
// when they resolve.
func linkForeignKey(fk *ForeignKey) {
	ft := fk.ForeignTable()
	if ft == nil {
		return
	}
	ft.addReferrer(fk)
	for _, name := range fk.foreignColumns {
		if c, err := fk.foreignColumn(ft, name); err == nil {
			c.addReferrer(fk)
		}
	}
}

func unlinkForeignKey(fk *ForeignKey) {
	ft := fk.ForeignTable()
	if ft == nil {
		return
	}
	ft.removeReferrer(fk)
	for _, c := range ft.columns {
		c.removeReferrer(fk)
	}
}

// SetupReferrers registers every outgoing key on its foreign table and
// foreign columns. With strict set, unresolvable tables and columns are
// reported as one error.
func (t *Table) SetupReferrers(strict bool) error {
	var errs []error
	for _, fk := range t.foreignKeys {
		ft := fk.ForeignTable()
		if ft == nil {
			if strict {
				errs = append(errs, relgraph.NewResolutionError("foreign table", fk.ForeignTableName(), "", "foreign key "+fk.Name()+" of table "+t.name))
			}
			continue
		}
		ft.addReferrer(fk)
		if _, err := fk.LocalColumnObjects(); err != nil && strict {
			errs = append(errs, err)
		}
		for _, name := range fk.foreignColumns {
			c, err := fk.foreignColumn(ft, name)
			if err != nil {
				if strict {
					errs = append(errs, err)
				}
				continue
			}
			c.addReferrer(fk)
		}
	}
	return relgraph.NewAggregateError(errs...)
}

// CrossForeignKeys derives the many-to-many relations reaching this table
// through junction tables. The result is computed on every call.
func (t *Table) CrossForeignKeys() []*CrossForeignKey {
	var xs []*CrossForeignKey
	for _, ref := range t.referrers {
		middle := ref.Table()
		if middle == nil || !middle.IsCrossRef() {
			continue
		}
		x := NewCrossForeignKey(ref, t)
		for _, fk := range ref.OtherFKs() {
			if fk.IsAtLeastOneLocalPrimaryKeyIsRequired() && x.IsAtLeastOneLocalPrimaryKeyNotCovered(fk) {
				x.AddForeignKey(fk)
			}
		}
		if x.HasForeignKeys() {
			xs = append(xs, x)
		}
	}
	return xs
}

// HasCrossForeignKeys reports whether CrossForeignKeys is not empty.
func (t *Table) HasCrossForeignKeys() bool { return len(t.CrossForeignKeys()) > 0 }

// Indices returns the plain indices.
func (t *Table) Indices() []*Index { return slices.Clone(t.indices) }

// Uniques returns the unique indices.
func (t *Table) Uniques() []*Index { return slices.Clone(t.uniques) }

// Index returns the plain or unique index with the given name, or nil.
func (t *Table) Index(name string) *Index {
	for _, idx := range t.indices {
		if idx.Name() == name {
			return idx
		}
	}
	for _, idx := range t.uniques {
		if idx.Name() == name {
			return idx
		}
	}
	return nil
}

// HasIndex reports whether an index with the given name exists.
func (t *Table) HasIndex(name string) bool { return t.Index(name) != nil }

// AddIndex adds idx to the indices or the uniques according to its flag.
// It must have a column and a name not used by another index.
func (t *Table) AddIndex(idx *Index) error {
	idx.table = t
	name := idx.Name()
	if idx.IsEmpty() {
		idx.table = nil
		return relgraph.NewBuildError("index", name, t.name, "index has no column")
	}
	if t.HasIndex(name) {
		idx.table = nil
		return relgraph.NewBuildError("index", name, t.name, "index already exists")
	}
	if idx.unique {
		t.uniques = append(t.uniques, idx)
	} else {
		t.indices = append(t.indices, idx)
	}
	return nil
}

// AddUnique marks idx unique and adds it.
func (t *Table) AddUnique(idx *Index) error {
	idx.unique = true
	return t.AddIndex(idx)
}

// AddIndexFromAttributes creates a plain index from an attribute bag and
// one "name"/"size" bag per column.
func (t *Table) AddIndexFromAttributes(attrs Attributes, columns ...Attributes) (*Index, error) {
	return t.addIndexFromAttributes(NewIndex(""), attrs, columns)
}

// AddUniqueFromAttributes creates a unique index from an attribute bag and
// one "name"/"size" bag per column.
func (t *Table) AddUniqueFromAttributes(attrs Attributes, columns ...Attributes) (*Index, error) {
	return t.addIndexFromAttributes(NewUnique(""), attrs, columns)
}

func (t *Table) addIndexFromAttributes(idx *Index, attrs Attributes, columns []Attributes) (*Index, error) {
	idx.LoadMapping(attrs)
	for _, ca := range columns {
		if err := idx.AddColumnFromAttributes(ca); err != nil {
			return nil, err
		}
	}
	if err := t.AddIndex(idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// RemoveIndex removes the named plain or unique index.
func (t *Table) RemoveIndex(name string) bool {
	for i, idx := range t.indices {
		if idx.Name() == name {
			t.indices = append(t.indices[:i], t.indices[i+1:]...)
			idx.table = nil
			return true
		}
	}
	for i, idx := range t.uniques {
		if idx.Name() == name {
			t.uniques = append(t.uniques[:i], t.uniques[i+1:]...)
			idx.table = nil
			return true
		}
	}
	return false
}

// hasIndexStartingWith reports whether the primary key or an index starts
// with the given columns.
func (t *Table) hasIndexStartingWith(cols []string) bool {
	if len(cols) == 0 {
		return true
	}
	pk := t.PrimaryKey()
	if len(pk) >= len(cols) {
		prefix := true
		for i, name := range cols {
			if pk[i].name != name {
				prefix = false
				break
			}
		}
		if prefix {
			return true
		}
	}
	for _, idx := range append(slices.Clone(t.indices), t.uniques...) {
		if len(idx.columns) < len(cols) {
			continue
		}
		if slices.Equal(idx.columns[:len(cols)], cols) {
			return true
		}
	}
	return false
}

// Behaviors returns the behaviors in insertion order.
func (t *Table) Behaviors() []*Behavior { return slices.Clone(t.behaviors) }

// Behavior returns the behavior with the given id, or nil.
func (t *Table) Behavior(id string) *Behavior {
	for _, b := range t.behaviors {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// HasBehavior reports whether a behavior with the given id is attached.
func (t *Table) HasBehavior(id string) bool { return t.Behavior(id) != nil }

// AddBehavior attaches b, replacing a behavior with the same id.
func (t *Table) AddBehavior(b *Behavior) error {
	if b.ID() == "" {
		return relgraph.NewBuildError("behavior", "", t.name, "behavior has no name")
	}
	b.table, b.database = t, nil
	for i, existing := range t.behaviors {
		if existing.ID() == b.ID() {
			t.behaviors[i] = b
			return nil
		}
	}
	t.behaviors = append(t.behaviors, b)
	return nil
}

// AddBehaviorFromAttributes creates a behavior from an attribute bag and
// one "name"/"value" bag per parameter.
func (t *Table) AddBehaviorFromAttributes(attrs Attributes, params ...Attributes) (*Behavior, error) {
	b := NewBehavior(attrs.Get("name"))
	if err := b.LoadMapping(attrs, params...); err != nil {
		return nil, err
	}
	if err := t.AddBehavior(b); err != nil {
		return nil, err
	}
	return b, nil
}

// DoFinalInitialization adds the indices implied by heavy indexing and by
// the platform's foreign key requirements.
func (t *Table) DoFinalInitialization() error {
	if t.IsHeavyIndexing() {
		if err := t.addHeavyIndices(); err != nil {
			return err
		}
	}
	if p := t.Platform(); p != nil && p.RequiresForeignKeyIndices() {
		if err := t.addForeignKeyIndices(); err != nil {
			return err
		}
	}
	return nil
}

// addHeavyIndices indexes every proper suffix of a composite primary key.
// The full key is indexed by the key itself.
func (t *Table) addHeavyIndices() error {
	pk := t.PrimaryKey()
	for i := 1; i < len(pk); i++ {
		cols := make([]string, 0, len(pk)-i)
		for _, c := range pk[i:] {
			cols = append(cols, c.name)
		}
		if t.hasIndexStartingWith(cols) {
			continue
		}
		idx := NewIndex("")
		if err := idx.SetColumns(cols...); err != nil {
			return err
		}
		if err := t.AddIndex(idx); err != nil {
			return err
		}
	}
	return nil
}

// addForeignKeyIndices indexes the local columns of every outgoing key and
// the referenced columns of every referrer.
func (t *Table) addForeignKeyIndices() error {
	var sets [][]string
	for _, fk := range t.foreignKeys {
		if !fk.skipSQL {
			sets = append(sets, fk.LocalColumns())
		}
	}
	for _, ref := range t.referrers {
		if ref.skipSQL {
			continue
		}
		cols := make([]string, 0, len(ref.foreignColumns))
		for _, name := range ref.foreignColumns {
			if c, err := ref.foreignColumn(t, name); err == nil {
				cols = append(cols, c.name)
			}
		}
		sets = append(sets, cols)
	}
	for _, cols := range sets {
		if t.hasIndexStartingWith(cols) {
			continue
		}
		idx := NewIndex("")
		if err := idx.SetColumns(cols...); err != nil {
			return err
		}
		if err := t.AddIndex(idx); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a detached deep copy of the table. Foreign keys keep their
// foreign table names; referrers are rebuilt when the copy joins a
// database.
func (t *Table) Copy() *Table {
	c := *t
	c.database = nil
	c.vendorPart = vendorPart{}
	c.columns, c.foreignKeys, c.referrers = nil, nil, nil
	c.indices, c.uniques, c.behaviors = nil, nil, nil
	for _, vi := range t.vendorInfos {
		c.AddVendorInfo(vi.Merge(nil))
	}
	for _, col := range t.columns {
		cc := *col
		cc.vendorPart = vendorPart{}
		cc.domain = col.domain.Copy()
		cc.valueSet = slices.Clone(col.valueSet)
		cc.referrers = nil
		cc.inheritances = nil
		for _, inh := range col.inheritances {
			ic := *inh
			cc.AddInheritance(&ic)
		}
		for _, vi := range col.vendorInfos {
			cc.AddVendorInfo(vi.Merge(nil))
		}
		cc.table = &c
		c.columns = append(c.columns, &cc)
	}
	for _, idx := range append(slices.Clone(t.indices), t.uniques...) {
		ic := idx.copyIndex()
		ic.table = &c
		if ic.unique {
			c.uniques = append(c.uniques, ic)
		} else {
			c.indices = append(c.indices, ic)
		}
	}
	for _, fk := range t.foreignKeys {
		fc := fk.copyForeignKey()
		if fk.foreignTable == t {
			fc.foreignTable = &c
		}
		fc.table = &c
		c.foreignKeys = append(c.foreignKeys, fc)
	}
	for _, b := range t.behaviors {
		bc := b.Copy()
		bc.tableModified = b.tableModified
		bc.table = &c
		c.behaviors = append(c.behaviors, bc)
	}
	return &c
}

// LoadMapping reads the table attributes.
func (t *Table) LoadMapping(attrs Attributes) {
	t.name = attrs.Get("name")
	t.tableName = attrs.Get("tableName")
	t.phpName = attrs.Get("phpName")
	t.schema = attrs.Get("schema")
	t.namespace = attrs.Get("namespace")
	t.description = attrs.Get("description")
	t.idMethod = attrs.Get("idMethod")
	t.readOnly = attrs.Bool("readOnly", false)
	t.skipSQL = attrs.Bool("skipSql", false)
	t.crossRef = attrs.Bool("isCrossRef", false)
	t.abstract = attrs.Bool("abstract", false)
	t.reloadOnInsert = attrs.Bool("reloadOnInsert", false)
	t.reloadOnUpdate = attrs.Bool("reloadOnUpdate", false)
	if _, ok := attrs.Lookup("heavyIndexing"); ok {
		t.SetHeavyIndexing(attrs.Bool("heavyIndexing", false))
	}
	if _, ok := attrs.Lookup("identifierQuoting"); ok {
		t.SetIdentifierQuoting(attrs.Bool("identifierQuoting", false))
	}
}

// String returns the table name.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(t.name)
	if n := t.TableName(); n != t.name {
		b.WriteString(" (" + n + ")")
	}
	return b.String()
}

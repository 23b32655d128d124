package model

import (
	"strconv"
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Action is a referential action of a foreign key.
type Action string

// Referential actions. ActionNone renders no clause at all.
const (
	ActionNone       Action = ""
	ActionCascade    Action = "CASCADE"
	ActionRestrict   Action = "RESTRICT"
	ActionSetNull    Action = "SET NULL"
	ActionSetDefault Action = "SET DEFAULT"
	ActionNoAction   Action = "NO ACTION"
)

// NormalizeAction folds an action written by a user to its canonical form.
// Input is case-insensitive; "SETNULL" and "SETDEFAULT" are accepted.
// Unknown actions are kept upper-cased.
func NormalizeAction(s string) Action {
	s = strings.Join(strings.Fields(ident.Upper(s)), " ")
	switch s {
	case "", "NONE":
		return ActionNone
	case "SETNULL":
		return ActionSetNull
	case "SETDEFAULT":
		return ActionSetDefault
	case "NOACTION":
		return ActionNoAction
	}
	return Action(s)
}

// JoinType is the default join used to follow a foreign key.
type JoinType string

// Join types.
const (
	JoinInner JoinType = "INNER JOIN"
	JoinLeft  JoinType = "LEFT JOIN"
	JoinRight JoinType = "RIGHT JOIN"
)

// NormalizeJoinType folds a join type; "" means JoinInner and the "JOIN"
// suffix is optional.
func NormalizeJoinType(s string) JoinType {
	s = strings.Join(strings.Fields(ident.Upper(s)), " ")
	switch s {
	case "":
		return JoinInner
	case "INNER", "LEFT", "RIGHT":
		return JoinType(s + " JOIN")
	}
	return JoinType(s)
}

// ForeignKey maps local columns of one table to columns of another table.
// The foreign table is referenced by name and resolved through the owning
// database each time it is followed.
type ForeignKey struct {
	vendorPart
	name       string
	autoNaming bool
	phpName    string
	refPhpName string
	table      *Table

	foreignTableName  string
	foreignSchemaName string
	foreignTable      *Table

	onUpdate    Action
	onDelete    Action
	defaultJoin JoinType
	skipSQL     bool

	localColumns   []string
	foreignColumns []string
}

// NewForeignKey returns a foreign key. An empty name turns auto-naming on.
func NewForeignKey(name string) *ForeignKey {
	return &ForeignKey{name: name, autoNaming: name == "", defaultJoin: JoinInner}
}

// Name returns the explicit name, or the content-derived name while
// auto-naming is on.
func (fk *ForeignKey) Name() string {
	if !fk.autoNaming {
		return fk.name
	}
	return fk.autoName()
}

// SetName sets an explicit name and turns auto-naming off for good.
func (fk *ForeignKey) SetName(name string) {
	fk.name = name
	fk.autoNaming = false
}

// IsAutoNamed reports whether the name is derived from the content.
func (fk *ForeignKey) IsAutoNamed() bool { return fk.autoNaming }

func (fk *ForeignKey) autoName() string {
	name := "fk_" + ident.ShortHash(fk.ForeignTableName(),
		strings.Join(fk.localColumns, ","), strings.Join(fk.foreignColumns, ","))
	max := DefaultMaxIdentifierLength
	if fk.table != nil {
		name = fk.table.TableName() + "_" + name
		if p := fk.table.Platform(); p != nil {
			max = p.MaxIdentifierLength()
		}
	}
	return ident.Truncate(name, max)
}

// Table returns the local table, or nil.
func (fk *ForeignKey) Table() *Table { return fk.table }

// TableName returns the name of the local table, or "".
func (fk *ForeignKey) TableName() string {
	if fk.table == nil {
		return ""
	}
	return fk.table.Name()
}

// Database returns the database of the local table, or nil.
func (fk *ForeignKey) Database() *Database {
	if fk.table == nil {
		return nil
	}
	return fk.table.Database()
}

// ForeignTableName returns the name of the referenced table, qualified by
// the foreign schema when one is set and the platform supports schemas.
func (fk *ForeignKey) ForeignTableName() string {
	name := fk.foreignTableName
	if name == "" && fk.foreignTable != nil {
		name = fk.foreignTable.Name()
	}
	if fk.foreignSchemaName != "" && !strings.Contains(name, ".") {
		if p := fk.platform(); p != nil && p.SupportsSchemas() {
			return fk.foreignSchemaName + "." + name
		}
	}
	return name
}

// ForeignTableCommonName returns the referenced table name without schema.
func (fk *ForeignKey) ForeignTableCommonName() string {
	name := fk.ForeignTableName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// SetForeignTableName sets the referenced table name.
func (fk *ForeignKey) SetForeignTableName(name string) { fk.foreignTableName = name }

// ForeignSchemaName returns the schema of the referenced table.
func (fk *ForeignKey) ForeignSchemaName() string { return fk.foreignSchemaName }

// SetForeignSchemaName sets the schema of the referenced table.
func (fk *ForeignKey) SetForeignSchemaName(name string) { fk.foreignSchemaName = name }

// SetForeignTable points the key at t directly, bypassing name resolution.
func (fk *ForeignKey) SetForeignTable(t *Table) {
	fk.foreignTable = t
	if t != nil {
		fk.foreignTableName = t.Name()
	}
}

// ForeignTable resolves the referenced table. It returns nil while the
// table is not part of the database.
func (fk *ForeignKey) ForeignTable() *Table {
	if fk.foreignTable != nil {
		return fk.foreignTable
	}
	db := fk.Database()
	if db == nil {
		return nil
	}
	name := fk.ForeignTableName()
	if t := db.TableByFullName(name); t != nil {
		return t
	}
	return db.Table(fk.ForeignTableCommonName())
}

func (fk *ForeignKey) platform() Platform {
	if fk.table == nil {
		return nil
	}
	return fk.table.Platform()
}

// OnUpdate returns the normalized ON UPDATE action.
func (fk *ForeignKey) OnUpdate() Action { return fk.onUpdate }

// SetOnUpdate sets the ON UPDATE action.
func (fk *ForeignKey) SetOnUpdate(a string) { fk.onUpdate = NormalizeAction(a) }

// HasOnUpdate reports whether an ON UPDATE clause is rendered.
func (fk *ForeignKey) HasOnUpdate() bool { return fk.onUpdate != ActionNone }

// OnDelete returns the normalized ON DELETE action.
func (fk *ForeignKey) OnDelete() Action { return fk.onDelete }

// SetOnDelete sets the ON DELETE action.
func (fk *ForeignKey) SetOnDelete(a string) { fk.onDelete = NormalizeAction(a) }

// HasOnDelete reports whether an ON DELETE clause is rendered.
func (fk *ForeignKey) HasOnDelete() bool { return fk.onDelete != ActionNone }

// DefaultJoin returns the join used to follow the key.
func (fk *ForeignKey) DefaultJoin() JoinType { return fk.defaultJoin }

// SetDefaultJoin sets the join used to follow the key.
func (fk *ForeignKey) SetDefaultJoin(j string) { fk.defaultJoin = NormalizeJoinType(j) }

// IsSkipSQL reports whether no constraint is emitted for the key.
func (fk *ForeignKey) IsSkipSQL() bool { return fk.skipSQL }

// SetSkipSQL sets the skip-SQL flag.
func (fk *ForeignKey) SetSkipSQL(v bool) { fk.skipSQL = v }

// PhpName returns the explicit relation name, or "".
func (fk *ForeignKey) PhpName() string { return fk.phpName }

// SetPhpName sets the relation name.
func (fk *ForeignKey) SetPhpName(name string) { fk.phpName = name }

// RefPhpName returns the explicit name of the inverse relation, or "".
func (fk *ForeignKey) RefPhpName() string { return fk.refPhpName }

// SetRefPhpName sets the name of the inverse relation.
func (fk *ForeignKey) SetRefPhpName(name string) { fk.refPhpName = name }

// AddReference maps a local column to a foreign column.
func (fk *ForeignKey) AddReference(local, foreign string) {
	fk.localColumns = append(fk.localColumns, local)
	fk.foreignColumns = append(fk.foreignColumns, foreign)
	if fk.table != nil {
		if ft := fk.ForeignTable(); ft != nil {
			if c := ft.Column(foreign); c != nil {
				c.addReferrer(fk)
			}
		}
	}
}

// AddReferenceColumns maps local to foreign by column objects.
func (fk *ForeignKey) AddReferenceColumns(local, foreign *Column) {
	fk.AddReference(local.Name(), foreign.Name())
}

// AddReferenceFromAttributes maps a "local" column to a "foreign" column.
func (fk *ForeignKey) AddReferenceFromAttributes(attrs Attributes) {
	fk.AddReference(attrs.Get("local"), attrs.Get("foreign"))
}

// ClearReferences drops every column pair.
func (fk *ForeignKey) ClearReferences() {
	fk.localColumns, fk.foreignColumns = nil, nil
}

// LocalColumns returns the local column names in order.
func (fk *ForeignKey) LocalColumns() []string { return append([]string(nil), fk.localColumns...) }

// ForeignColumns returns the foreign column names in order.
func (fk *ForeignKey) ForeignColumns() []string { return append([]string(nil), fk.foreignColumns...) }

// LocalForeignMapping returns local -> foreign column names.
func (fk *ForeignKey) LocalForeignMapping() map[string]string {
	m := make(map[string]string, len(fk.localColumns))
	for i, l := range fk.localColumns {
		m[l] = fk.foreignColumns[i]
	}
	return m
}

// ForeignLocalMapping returns foreign -> local column names.
func (fk *ForeignKey) ForeignLocalMapping() map[string]string {
	m := make(map[string]string, len(fk.foreignColumns))
	for i, f := range fk.foreignColumns {
		m[f] = fk.localColumns[i]
	}
	return m
}

// MappedForeignColumn returns the foreign column paired with local, or "".
func (fk *ForeignKey) MappedForeignColumn(local string) string {
	for i, l := range fk.localColumns {
		if l == local {
			return fk.foreignColumns[i]
		}
	}
	return ""
}

// MappedLocalColumn returns the local column paired with foreign, or "".
func (fk *ForeignKey) MappedLocalColumn(foreign string) string {
	for i, f := range fk.foreignColumns {
		if f == foreign {
			return fk.localColumns[i]
		}
	}
	return ""
}

// LocalColumnObjects resolves the local columns against the local table.
func (fk *ForeignKey) LocalColumnObjects() ([]*Column, error) {
	if fk.table == nil {
		return nil, relgraph.NewResolutionError("local table", "", "", "foreign key "+fk.Name())
	}
	cols := make([]*Column, 0, len(fk.localColumns))
	for _, name := range fk.localColumns {
		c := fk.table.Column(name)
		if c == nil {
			return nil, relgraph.NewResolutionError("local column", name, fk.table.Name(), "foreign key "+fk.Name())
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// ForeignColumnObjects resolves the foreign columns against the foreign
// table. A dotted name "relation.column" must name the foreign table.
func (fk *ForeignKey) ForeignColumnObjects() ([]*Column, error) {
	ft := fk.ForeignTable()
	if ft == nil {
		return nil, relgraph.NewResolutionError("foreign table", fk.ForeignTableName(), "", "foreign key "+fk.Name())
	}
	cols := make([]*Column, 0, len(fk.foreignColumns))
	for _, name := range fk.foreignColumns {
		c, err := fk.foreignColumn(ft, name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func (fk *ForeignKey) foreignColumn(ft *Table, name string) (*Column, error) {
	if rel, col, ok := strings.Cut(name, "."); ok {
		if rel != ft.Name() && rel != ft.PhpName() && rel != ft.TableName() {
			return nil, relgraph.NewResolutionError("relation", rel, fk.TableName(), "foreign key "+fk.Name())
		}
		name = col
	}
	c := ft.Column(name)
	if c == nil {
		return nil, relgraph.NewResolutionError("foreign column", name, ft.Name(), "foreign key "+fk.Name())
	}
	return c, nil
}

// LocalColumn resolves one local column by name, or returns nil.
func (fk *ForeignKey) LocalColumn(name string) *Column {
	if fk.table == nil {
		return nil
	}
	for _, l := range fk.localColumns {
		if l == name {
			return fk.table.Column(name)
		}
	}
	return nil
}

// HasLocalColumn reports whether c is one of the local columns.
func (fk *ForeignKey) HasLocalColumn(c *Column) bool {
	if c == nil || c.Table() != fk.table {
		return false
	}
	for _, l := range fk.localColumns {
		if l == c.Name() {
			return true
		}
	}
	return false
}

// IsComposite reports whether the key spans more than one column.
func (fk *ForeignKey) IsComposite() bool { return len(fk.localColumns) > 1 }

// IsSelfReferencing reports whether the key points at its own table.
func (fk *ForeignKey) IsSelfReferencing() bool {
	return fk.table != nil && fk.ForeignTableName() == fk.table.Name()
}

// IsLocalPrimaryKey reports whether the local columns are exactly the
// primary key of the local table.
func (fk *ForeignKey) IsLocalPrimaryKey() bool {
	if fk.table == nil {
		return false
	}
	return sameColumnSet(fk.localColumns, fk.table.PrimaryKey())
}

// IsForeignPrimaryKey reports whether the foreign columns are exactly the
// primary key of the foreign table.
func (fk *ForeignKey) IsForeignPrimaryKey() bool {
	ft := fk.ForeignTable()
	if ft == nil {
		return false
	}
	return sameColumnSet(fk.foreignColumns, ft.PrimaryKey())
}

func sameColumnSet(names []string, pk []*Column) bool {
	if len(names) != len(pk) || len(pk) == 0 {
		return false
	}
	for _, c := range pk {
		found := false
		for _, n := range names {
			if n == c.Name() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// LocalPrimaryKeys returns the local columns that are primary keys of the
// local table. Unresolvable names are skipped.
func (fk *ForeignKey) LocalPrimaryKeys() []*Column {
	if fk.table == nil {
		return nil
	}
	var pks []*Column
	for _, name := range fk.localColumns {
		if c := fk.table.Column(name); c != nil && c.IsPrimaryKey() {
			pks = append(pks, c)
		}
	}
	return pks
}

// IsLocalColumnsRequired reports whether every local column is NOT NULL.
func (fk *ForeignKey) IsLocalColumnsRequired() bool {
	if fk.table == nil {
		return false
	}
	for _, name := range fk.localColumns {
		c := fk.table.Column(name)
		if c == nil || !c.IsNotNull() {
			return false
		}
	}
	return true
}

// IsAtLeastOneLocalColumnRequired reports whether some local column is
// NOT NULL.
func (fk *ForeignKey) IsAtLeastOneLocalColumnRequired() bool {
	if fk.table == nil {
		return false
	}
	for _, name := range fk.localColumns {
		if c := fk.table.Column(name); c != nil && c.IsNotNull() {
			return true
		}
	}
	return false
}

// IsAtLeastOneLocalPrimaryKeyIsRequired reports whether some local primary
// key column is NOT NULL and has no default.
func (fk *ForeignKey) IsAtLeastOneLocalPrimaryKeyIsRequired() bool {
	for _, c := range fk.LocalPrimaryKeys() {
		if c.IsNotNull() && !c.HasDefaultValue() {
			return true
		}
	}
	return false
}

// OtherFKs returns the other foreign keys of the local table.
func (fk *ForeignKey) OtherFKs() []*ForeignKey {
	if fk.table == nil {
		return nil
	}
	var fks []*ForeignKey
	for _, other := range fk.table.ForeignKeys() {
		if other != fk {
			fks = append(fks, other)
		}
	}
	return fks
}

// InverseFK returns the foreign key of the foreign table that maps the
// same column pairs the other way round, or nil.
func (fk *ForeignKey) InverseFK() *ForeignKey {
	ft := fk.ForeignTable()
	if ft == nil {
		return nil
	}
	want := fk.ForeignLocalMapping()
	for _, ref := range ft.ForeignKeys() {
		if ref.ForeignTableName() != fk.TableName() {
			continue
		}
		if sameMapping(want, ref.LocalForeignMapping()) {
			return ref
		}
	}
	return nil
}

// IsMatchedByInverseFK reports whether InverseFK finds a key.
func (fk *ForeignKey) IsMatchedByInverseFK() bool { return fk.InverseFK() != nil }

func sameMapping(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// RelatedBySuffix returns the "RelatedBy<Column>" suffix that tells this
// key apart from its siblings, or "" when the foreign table is reached by
// this key only.
func (fk *ForeignKey) RelatedBySuffix() (string, error) {
	return fk.relatedBySuffix(false)
}

// RefRelatedBySuffix is RelatedBySuffix for the inverse relation.
func (fk *ForeignKey) RefRelatedBySuffix() (string, error) {
	return fk.relatedBySuffix(true)
}

func (fk *ForeignKey) relatedBySuffix(ref bool) (string, error) {
	if fk.table == nil {
		return "", relgraph.NewResolutionError("local table", "", "", "foreign key "+fk.Name())
	}
	ft := fk.ForeignTable()
	if ft == nil {
		return "", relgraph.NewResolutionError("foreign table", fk.ForeignTableName(), "", "foreign key "+fk.Name())
	}
	siblings := fk.table.ForeignKeysReferencingTable(fk.ForeignTableName())
	var b strings.Builder
	for i, local := range fk.localColumns {
		lc := fk.table.Column(local)
		if lc == nil {
			return "", relgraph.NewResolutionError("local column", local, fk.table.Name(), "foreign key "+fk.Name())
		}
		switch {
		case fk.IsSelfReferencing():
			if ref {
				b.WriteString(lc.PhpName())
			} else {
				fc, err := fk.foreignColumn(ft, fk.foreignColumns[i])
				if err != nil {
					return "", err
				}
				b.WriteString(fc.PhpName())
			}
			if len(siblings) > 1 {
				b.WriteString(strconv.Itoa(indexOfFK(siblings, fk)))
			}
		case len(siblings) > 1 || len(ft.ForeignKeysReferencingTable(fk.table.Name())) > 0:
			b.WriteString(lc.PhpName())
		}
	}
	if b.Len() == 0 {
		return "", nil
	}
	return "RelatedBy" + b.String(), nil
}

func indexOfFK(fks []*ForeignKey, fk *ForeignKey) int {
	for i, f := range fks {
		if f == fk {
			return i
		}
	}
	return -1
}

// LoadMapping reads the foreign key attributes.
func (fk *ForeignKey) LoadMapping(attrs Attributes) {
	if name := attrs.Get("name"); name != "" {
		fk.SetName(name)
	}
	fk.foreignTableName = attrs.Get("foreignTable")
	fk.foreignSchemaName = attrs.Get("foreignSchema")
	fk.phpName = attrs.Get("phpName")
	fk.refPhpName = attrs.Get("refPhpName")
	fk.onUpdate = NormalizeAction(attrs.Get("onUpdate"))
	fk.onDelete = NormalizeAction(attrs.Get("onDelete"))
	fk.defaultJoin = NormalizeJoinType(attrs.Get("defaultJoin"))
	fk.skipSQL = attrs.Bool("skipSql", false)
}

// copyForeignKey returns a detached copy of fk without its table.
func (fk *ForeignKey) copyForeignKey() *ForeignKey {
	c := *fk
	c.table, c.foreignTable = nil, nil
	c.vendorPart = vendorPart{}
	c.localColumns = append([]string(nil), fk.localColumns...)
	c.foreignColumns = append([]string(nil), fk.foreignColumns...)
	for _, vi := range fk.vendorInfos {
		c.AddVendorInfo(vi.Merge(nil))
	}
	return &c
}

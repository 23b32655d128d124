package model

import (
	"slices"
	"sort"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Id generation methods.
const (
	IDMethodNative = "native"
	IDMethodNone   = "none"
)

// Database owns a set of tables together with reusable domains, sequences
// and database-scope behaviors.
type Database struct {
	vendorPart
	name              string
	schema            string
	namespace         string
	tablePrefix       string
	defaultIDMethod   string
	identifierQuoting bool
	heavyIndexing     bool
	platform          Platform
	parent            *Schema

	tables    []*Table
	domains   map[string]*Domain
	sequences []string
	behaviors []*Behavior
}

// NewDatabase returns an empty database.
func NewDatabase(name string) *Database {
	return &Database{name: name, defaultIDMethod: IDMethodNative, domains: make(map[string]*Domain)}
}

// Name returns the database name.
func (d *Database) Name() string { return d.name }

// SetName sets the database name.
func (d *Database) SetName(name string) { d.name = name }

// Schema returns the default database schema of the tables, or "".
func (d *Database) Schema() string { return d.schema }

// SetSchema sets the default database schema of the tables.
func (d *Database) SetSchema(s string) { d.schema = s }

// Namespace returns the default namespace of the tables.
func (d *Database) Namespace() string { return d.namespace }

// SetNamespace sets the default namespace of the tables.
func (d *Database) SetNamespace(ns string) { d.namespace = ns }

// TablePrefix returns the prefix of derived SQL table names.
func (d *Database) TablePrefix() string { return d.tablePrefix }

// SetTablePrefix sets the prefix of derived SQL table names.
func (d *Database) SetTablePrefix(p string) { d.tablePrefix = p }

// DefaultIDMethod returns the id method of tables that set none.
func (d *Database) DefaultIDMethod() string { return d.defaultIDMethod }

// SetDefaultIDMethod sets the id method of tables that set none.
func (d *Database) SetDefaultIDMethod(m string) { d.defaultIDMethod = m }

// IsIdentifierQuotingEnabled reports the quoting policy tables inherit.
func (d *Database) IsIdentifierQuotingEnabled() bool { return d.identifierQuoting }

// SetIdentifierQuoting sets the quoting policy tables inherit.
func (d *Database) SetIdentifierQuoting(v bool) { d.identifierQuoting = v }

// IsHeavyIndexing reports the heavy indexing setting tables inherit.
func (d *Database) IsHeavyIndexing() bool { return d.heavyIndexing }

// SetHeavyIndexing sets the heavy indexing setting tables inherit.
func (d *Database) SetHeavyIndexing(v bool) { d.heavyIndexing = v }

// Platform returns the SQL platform, or nil.
func (d *Database) Platform() Platform { return d.platform }

// SetPlatform sets the SQL platform.
func (d *Database) SetPlatform(p Platform) { d.platform = p }

// ParentSchema returns the owning schema, or nil.
func (d *Database) ParentSchema() *Schema { return d.parent }

// Tables returns the tables in insertion order.
func (d *Database) Tables() []*Table { return slices.Clone(d.tables) }

// NumTables returns the number of tables.
func (d *Database) NumTables() int { return len(d.tables) }

// Table returns the table with exactly the given name, or nil.
func (d *Database) Table(name string) *Table { return d.LookupTable(name, false) }

// LookupTable returns the named table, optionally ignoring case.
func (d *Database) LookupTable(name string, caseInsensitive bool) *Table {
	return d.find(func(t *Table) bool { return ident.Equal(t.name, name, caseInsensitive) })
}

// HasTable reports whether the database has the named table.
func (d *Database) HasTable(name string, caseInsensitive bool) bool {
	return d.LookupTable(name, caseInsensitive) != nil
}

// TableByFullName returns the table whose schema-qualified name matches.
func (d *Database) TableByFullName(name string) *Table {
	return d.find(func(t *Table) bool { return t.FullName() == name })
}

// TableByTableName returns the table whose SQL name matches.
func (d *Database) TableByTableName(name string) *Table {
	return d.find(func(t *Table) bool { return t.TableName() == name })
}

// TableByFullTableName returns the table whose schema-qualified SQL name
// matches.
func (d *Database) TableByFullTableName(name string) *Table {
	return d.find(func(t *Table) bool { return t.FullTableName() == name })
}

// TableByPhpName returns the table whose phpName matches.
func (d *Database) TableByPhpName(name string) *Table {
	return d.find(func(t *Table) bool { return t.PhpName() == name })
}

func (d *Database) find(match func(*Table) bool) *Table {
	for _, t := range d.tables {
		if match(t) {
			return t
		}
	}
	return nil
}

// AddTable adds t, detaching it from its previous database. Adding a table
// twice is a no-op; adding another table under a used name is an error.
// Foreign keys already pointing at t, and those of t pointing at known
// tables, are registered as referrers.
func (d *Database) AddTable(t *Table) error {
	if t.database == d && slices.Contains(d.tables, t) {
		return nil
	}
	if t.name == "" {
		return relgraph.NewBuildError("table", "", "", "table name is empty")
	}
	if other := d.Table(t.name); other != nil {
		return relgraph.NewBuildError("table", t.name, "", "table already exists in database "+d.name)
	}
	if t.database != nil {
		t.database.RemoveTable(t)
	}
	t.database = d
	d.tables = append(d.tables, t)
	for _, other := range d.tables {
		for _, fk := range other.foreignKeys {
			if other == t || fk.ForeignTable() == t {
				linkForeignKey(fk)
			}
		}
	}
	return nil
}

// AddTableFromAttributes creates a table from an attribute bag.
func (d *Database) AddTableFromAttributes(attrs Attributes) (*Table, error) {
	t := NewTable("")
	t.LoadMapping(attrs)
	if err := d.AddTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// RemoveTable detaches t and unregisters its foreign keys.
func (d *Database) RemoveTable(t *Table) bool {
	i := slices.Index(d.tables, t)
	if i < 0 {
		return false
	}
	for _, fk := range t.foreignKeys {
		unlinkForeignKey(fk)
	}
	d.tables = slices.Delete(d.tables, i, i+1)
	t.database = nil
	return true
}

// linkColumn registers the foreign keys that reference c by name.
func (d *Database) linkColumn(c *Column) {
	for _, ref := range c.table.referrers {
		for _, name := range ref.foreignColumns {
			if fc, err := ref.foreignColumn(c.table, name); err == nil && fc == c {
				c.addReferrer(ref)
			}
		}
	}
}

// Domains returns the named domains sorted by name.
func (d *Database) Domains() []*Domain {
	names := make([]string, 0, len(d.domains))
	for n := range d.domains {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Domain, len(names))
	for i, n := range names {
		out[i] = d.domains[n]
	}
	return out
}

// Domain returns the named domain, or nil.
func (d *Database) Domain(name string) *Domain { return d.domains[name] }

// AddDomain registers a named domain, replacing one with the same name.
func (d *Database) AddDomain(dom *Domain) error {
	if dom.Name == "" {
		return relgraph.NewBuildError("domain", "", "", "domain name is empty")
	}
	d.domains[dom.Name] = dom
	return nil
}

// AddDomainFromAttributes creates a named domain from an attribute bag.
func (d *Database) AddDomainFromAttributes(attrs Attributes) (*Domain, error) {
	dom := &Domain{}
	if err := dom.LoadMapping(attrs); err != nil {
		return nil, err
	}
	if p := d.platform; p != nil && dom.SQLType == "" {
		if pd := p.DomainForType(dom.Type); pd != nil {
			dom.SQLType = pd.SQLType
		}
	}
	if err := d.AddDomain(dom); err != nil {
		return nil, err
	}
	return dom, nil
}

// Sequences returns the sequence names.
func (d *Database) Sequences() []string { return slices.Clone(d.sequences) }

// AddSequence registers a sequence name once.
func (d *Database) AddSequence(name string) {
	if !d.HasSequence(name) {
		d.sequences = append(d.sequences, name)
	}
}

// HasSequence reports whether the sequence is registered.
func (d *Database) HasSequence(name string) bool { return slices.Contains(d.sequences, name) }

// RemoveSequence unregisters a sequence name.
func (d *Database) RemoveSequence(name string) {
	if i := slices.Index(d.sequences, name); i >= 0 {
		d.sequences = slices.Delete(d.sequences, i, i+1)
	}
}

// Behaviors returns the database-scope behaviors.
func (d *Database) Behaviors() []*Behavior { return slices.Clone(d.behaviors) }

// Behavior returns the database behavior with the given id, or nil.
func (d *Database) Behavior(id string) *Behavior {
	for _, b := range d.behaviors {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// HasBehavior reports whether a database behavior with the id exists.
func (d *Database) HasBehavior(id string) bool { return d.Behavior(id) != nil }

// AddBehavior attaches a database-scope behavior, replacing one with the
// same id.
func (d *Database) AddBehavior(b *Behavior) error {
	if b.ID() == "" {
		return relgraph.NewBuildError("behavior", "", "", "behavior has no name")
	}
	b.database, b.table = d, nil
	for i, existing := range d.behaviors {
		if existing.ID() == b.ID() {
			d.behaviors[i] = b
			return nil
		}
	}
	d.behaviors = append(d.behaviors, b)
	return nil
}

// AddBehaviorFromAttributes creates a database behavior from an attribute
// bag and one "name"/"value" bag per parameter.
func (d *Database) AddBehaviorFromAttributes(attrs Attributes, params ...Attributes) (*Behavior, error) {
	b := NewBehavior(attrs.Get("name"))
	if err := b.LoadMapping(attrs, params...); err != nil {
		return nil, err
	}
	if err := d.AddBehavior(b); err != nil {
		return nil, err
	}
	return b, nil
}

// NextTableBehavior returns the pending table behavior with the lowest
// modification order, ties broken by table then behavior order, or nil.
func (d *Database) NextTableBehavior() *Behavior {
	var next *Behavior
	for _, t := range d.tables {
		for _, b := range t.behaviors {
			if b.tableModified {
				continue
			}
			if next == nil || b.order < next.order {
				next = b
			}
		}
	}
	return next
}

// DoFinalInitialization wires referrers, runs database behaviors and then
// table behaviors in modification order, and finalizes every table. Table
// behaviors may add tables and behaviors while running.
func (d *Database) DoFinalInitialization() error {
	for _, t := range d.tables {
		_ = t.SetupReferrers(false)
	}
	for _, b := range slices.Clone(d.behaviors) {
		if err := b.ModifyDatabase(); err != nil {
			return err
		}
	}
	for b := d.NextTableBehavior(); b != nil; b = d.NextTableBehavior() {
		if err := b.ModifyTable(); err != nil {
			return err
		}
	}
	var errs []error
	for _, t := range d.tables {
		if err := t.DoFinalInitialization(); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := t.SetupReferrers(true); err != nil {
			errs = append(errs, err)
		}
	}
	return relgraph.NewAggregateError(errs...)
}

// Copy returns a detached deep copy of the database: tables, domains,
// sequences and behaviors. The platform is shared.
func (d *Database) Copy() (*Database, error) {
	c := NewDatabase(d.name)
	c.schema, c.namespace, c.tablePrefix = d.schema, d.namespace, d.tablePrefix
	c.defaultIDMethod, c.identifierQuoting, c.heavyIndexing = d.defaultIDMethod, d.identifierQuoting, d.heavyIndexing
	c.platform = d.platform
	for _, vi := range d.vendorInfos {
		c.AddVendorInfo(vi.Merge(nil))
	}
	for n, dom := range d.domains {
		c.domains[n] = dom.Copy()
	}
	c.sequences = slices.Clone(d.sequences)
	for _, b := range d.behaviors {
		if err := c.AddBehavior(b.Copy()); err != nil {
			return nil, err
		}
	}
	for _, t := range d.tables {
		if err := c.AddTable(t.Copy()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadMapping reads the database attributes.
func (d *Database) LoadMapping(attrs Attributes) {
	d.name = attrs.Get("name")
	d.schema = attrs.Get("schema")
	d.namespace = attrs.Get("namespace")
	d.tablePrefix = attrs.Get("tablePrefix")
	d.defaultIDMethod = attrs.GetDefault("defaultIdMethod", IDMethodNative)
	d.identifierQuoting = attrs.Bool("identifierQuoting", false)
	d.heavyIndexing = attrs.Bool("heavyIndexing", false)
}

package model

import (
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/syssam/relgraph"
)

// DefaultTableModificationOrder is the order of behaviors that set none.
const DefaultTableModificationOrder = 50

// TableModifier is implemented by behavior hooks that alter their table.
type TableModifier interface {
	ModifyTable(b *Behavior, t *Table) error
}

// DatabaseModifier is implemented by behavior hooks that alter a whole
// database. Behaviors without one are copied onto every table instead.
type DatabaseModifier interface {
	ModifyDatabase(b *Behavior, db *Database) error
}

// ParameterDefaulter is implemented by behavior hooks with default
// parameters.
type ParameterDefaulter interface {
	DefaultParameters() map[string]string
}

// BehaviorFactory returns the hooks of a new behavior instance. The value
// may implement TableModifier, DatabaseModifier and ParameterDefaulter.
type BehaviorFactory func() any

var (
	behaviorsMu sync.RWMutex
	behaviors   = make(map[string]BehaviorFactory)
)

// RegisterBehavior makes a behavior available by name. It panics if the
// name is registered twice or the factory is nil.
func RegisterBehavior(name string, factory BehaviorFactory) {
	behaviorsMu.Lock()
	defer behaviorsMu.Unlock()
	if factory == nil {
		panic("relgraph: RegisterBehavior factory is nil")
	}
	if _, dup := behaviors[name]; dup {
		panic("relgraph: RegisterBehavior called twice for " + name)
	}
	behaviors[name] = factory
}

// RegisteredBehaviors returns the sorted names of registered behaviors.
func RegisteredBehaviors() []string {
	behaviorsMu.RLock()
	defer behaviorsMu.RUnlock()
	names := make([]string, 0, len(behaviors))
	for n := range behaviors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupBehavior(name string) (BehaviorFactory, bool) {
	behaviorsMu.RLock()
	defer behaviorsMu.RUnlock()
	f, ok := behaviors[name]
	return f, ok
}

// Behavior is a named, parameterized extension attached to a table or a
// database.
type Behavior struct {
	name          string
	id            string
	keys          []string
	params        map[string]string
	table         *Table
	database      *Database
	order         int
	tableModified bool
	hooks         any
}

// NewBehavior returns a behavior. Hooks registered under name are attached
// and their default parameters applied.
func NewBehavior(name string) *Behavior {
	b := &Behavior{name: name, params: make(map[string]string), order: DefaultTableModificationOrder}
	b.setHooks()
	return b
}

func (b *Behavior) setHooks() {
	b.hooks = nil
	f, ok := lookupBehavior(b.name)
	if !ok {
		return
	}
	b.hooks = f()
	if d, ok := b.hooks.(ParameterDefaulter); ok {
		defaults := d.DefaultParameters()
		names := make([]string, 0, len(defaults))
		for n := range defaults {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if _, set := b.params[n]; !set {
				b.SetParameter(n, defaults[n])
			}
		}
	}
}

// Name returns the behavior name.
func (b *Behavior) Name() string { return b.name }

// ID returns the identifier, defaulting to the name. Two behaviors of the
// same name may live on one table under different ids.
func (b *Behavior) ID() string {
	if b.id == "" {
		return b.name
	}
	return b.id
}

// SetID sets the identifier.
func (b *Behavior) SetID(id string) { b.id = id }

// Hooks returns the registered hooks, or nil for an unknown behavior.
func (b *Behavior) Hooks() any { return b.hooks }

// Table returns the owning table, or nil for a database behavior.
func (b *Behavior) Table() *Table { return b.table }

// Database returns the owning database, directly or through the table.
func (b *Behavior) Database() *Database {
	if b.database != nil {
		return b.database
	}
	if b.table != nil {
		return b.table.Database()
	}
	return nil
}

// Parameter returns the named parameter.
func (b *Behavior) Parameter(name string) (string, bool) {
	v, ok := b.params[name]
	return v, ok
}

// ParameterOr returns the named parameter, or def when unset.
func (b *Behavior) ParameterOr(name, def string) string {
	if v, ok := b.params[name]; ok {
		return v
	}
	return def
}

// SetParameter sets a parameter, keeping first-insertion order.
func (b *Behavior) SetParameter(name, value string) {
	if _, ok := b.params[name]; !ok {
		b.keys = append(b.keys, name)
	}
	b.params[name] = value
}

// ParameterNames returns the parameter names in insertion order.
func (b *Behavior) ParameterNames() []string { return slices.Clone(b.keys) }

// Parameters returns a copy of all parameters.
func (b *Behavior) Parameters() map[string]string {
	m := make(map[string]string, len(b.params))
	for k, v := range b.params {
		m[k] = v
	}
	return m
}

// TableModificationOrder returns the rank used to order table behaviors.
func (b *Behavior) TableModificationOrder() int { return b.order }

// SetTableModificationOrder sets the rank used to order table behaviors.
func (b *Behavior) SetTableModificationOrder(n int) { b.order = n }

// IsTableModified reports whether the behavior already ran on its table.
func (b *Behavior) IsTableModified() bool { return b.tableModified }

// SetTableModified marks the behavior as run.
func (b *Behavior) SetTableModified(v bool) { b.tableModified = v }

// ModifyTable runs the table hook, if any, and marks the behavior as run.
func (b *Behavior) ModifyTable() error {
	b.tableModified = true
	m, ok := b.hooks.(TableModifier)
	if !ok || b.table == nil {
		return nil
	}
	return m.ModifyTable(b, b.table)
}

// ModifyDatabase runs the database hook. Without one, the behavior is
// copied onto every table lacking a behavior with the same id.
func (b *Behavior) ModifyDatabase() error {
	db := b.Database()
	if db == nil {
		return nil
	}
	if m, ok := b.hooks.(DatabaseModifier); ok {
		return m.ModifyDatabase(b, db)
	}
	for _, t := range db.Tables() {
		if t.HasBehavior(b.ID()) {
			continue
		}
		if err := t.AddBehavior(b.Copy()); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a detached copy with fresh hooks and no owner.
func (b *Behavior) Copy() *Behavior {
	c := &Behavior{name: b.name, id: b.id, order: b.order, params: make(map[string]string, len(b.params))}
	for _, k := range b.keys {
		c.SetParameter(k, b.params[k])
	}
	c.setHooks()
	return c
}

// LoadMapping reads "name", "id" and the optional "order" attribute, then
// one "name"/"value" bag per parameter.
func (b *Behavior) LoadMapping(attrs Attributes, params ...Attributes) error {
	if name := attrs.Get("name"); name != "" && name != b.name {
		b.name = name
		b.setHooks()
	}
	b.id = attrs.Get("id")
	if v := attrs.Get("order"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return relgraph.NewBuildError("behavior", b.name, "", "order is not an integer: "+v)
		}
		b.order = n
	}
	for _, p := range params {
		b.SetParameter(p.Get("name"), p.Get("value"))
	}
	return nil
}

package diff

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/model"
)

// Entity names the kind of schema object a finding is about.
type Entity string

// Entities reported by Validate and ValidateDatabase.
const (
	EntityTable      Entity = "table"
	EntityColumn     Entity = "column"
	EntityPrimaryKey Entity = "primary key"
	EntityIndex      Entity = "index"
	EntityForeignKey Entity = "foreign key"
)

// ValidationError is a finding of Validate or ValidateDatabase.
type ValidationError struct {
	Kind  Entity
	Table string
	// Name is the column, index or foreign key inside Table. It is empty
	// for table and primary key findings.
	Name    string
	Message string
	// Breaking is set when applying the change loses data or breaks
	// existing queries.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Kind == EntityColumn && e.Name != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the findings of a validation, in diff order.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors reports whether a change was rejected.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether a change needs attention.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// HasBreakingChanges reports whether any finding is breaking.
func (r *ValidationResult) HasBreakingChanges() bool {
	breaking := func(e *ValidationError) bool { return e.Breaking }
	return slices.ContainsFunc(r.Errors, breaking) || slices.ContainsFunc(r.Warnings, breaking)
}

// Findings returns the errors then the warnings about one kind of entity.
func (r *ValidationResult) Findings(kind Entity) []*ValidationError {
	var out []*ValidationError
	for _, e := range slices.Concat(r.Errors, r.Warnings) {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// String renders the errors then the warnings, one per line.
func (r *ValidationResult) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "No issues found"
	}
	var sb strings.Builder
	for _, group := range []struct {
		title    string
		findings []*ValidationError
	}{{"Errors:\n", r.Errors}, {"Warnings:\n", r.Warnings}} {
		if len(group.findings) == 0 {
			continue
		}
		sb.WriteString(group.title)
		for _, f := range group.findings {
			sb.WriteString("  - " + f.Error())
			if f.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ValidateOption configures Validate.
type ValidateOption func(*validateConfig)

// validateConfig lists the entity kinds whose drop is accepted, plus the
// NOT NULL tightening of existing columns.
type validateConfig struct {
	allowDrop          map[Entity]bool
	allowNullToNotNull bool
}

func allowDrop(kind Entity) ValidateOption {
	return func(c *validateConfig) {
		if c.allowDrop == nil {
			c.allowDrop = make(map[Entity]bool)
		}
		c.allowDrop[kind] = true
	}
}

// AllowDropColumn reports dropped columns as warnings.
func AllowDropColumn() ValidateOption { return allowDrop(EntityColumn) }

// AllowDropTable reports dropped tables as warnings.
func AllowDropTable() ValidateOption { return allowDrop(EntityTable) }

// AllowDropIndex reports dropped indices as warnings.
func AllowDropIndex() ValidateOption { return allowDrop(EntityIndex) }

// AllowNullToNotNull reports nullable columns becoming NOT NULL as
// warnings.
func AllowNullToNotNull() ValidateOption {
	return func(c *validateConfig) {
		c.allowNullToNotNull = true
	}
}

// add records e as a warning when allowed, as an error otherwise.
func (r *ValidationResult) add(e *ValidationError, allowed bool) {
	if allowed {
		r.Warnings = append(r.Warnings, e)
	} else {
		r.Errors = append(r.Errors, e)
	}
}

// drop records the removal of an entity, rejected unless allowed by cfg.
func (r *ValidationResult) drop(cfg *validateConfig, kind Entity, table, name, msg string) {
	r.add(&ValidationError{Kind: kind, Table: table, Name: name, Message: msg, Breaking: kind != EntityIndex}, cfg.allowDrop[kind])
}

func (r *ValidationResult) warn(kind Entity, table, name, format string, args ...any) *ValidationError {
	w := &ValidationError{Kind: kind, Table: table, Name: name, Message: fmt.Sprintf(format, args...)}
	r.Warnings = append(r.Warnings, w)
	return w
}

func (r *ValidationResult) reject(kind Entity, table, name, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Kind: kind, Table: table, Name: name, Message: fmt.Sprintf(format, args...)})
}

// Validate inspects d for changes that lose data or may fail on a
// populated database. Drops and new NOT NULL constraints are errors unless
// allowed; other risky changes are warnings.
//
// Example:
//
//	d, _ := diff.CompareDatabases(current, desired)
//	result := diff.Validate(d, diff.AllowDropIndex())
//	if result.HasBreakingChanges() {
//	    log.Fatal("Breaking changes detected:", result)
//	}
func Validate(d *DatabaseDiff, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	result := &ValidationResult{}
	if d == nil {
		return result
	}
	for name := range d.RemovedTables.All() {
		result.drop(cfg, EntityTable, name, "", "table will be dropped")
	}
	for from, to := range d.RenamedTables.All() {
		result.warn(EntityTable, from, "", "table renamed to %q", to).Breaking = true
	}
	for _, td := range d.ModifiedTables.All() {
		validateTableDiff(td, cfg, result)
	}
	return result
}

func validateTableDiff(td *TableDiff, cfg *validateConfig, result *ValidationResult) {
	name := td.From.Name()
	for col := range td.RemovedColumns.All() {
		result.drop(cfg, EntityColumn, name, col, "column will be dropped")
	}
	for _, p := range td.RenamedColumns {
		result.warn(EntityColumn, name, p.From.Name(), "column renamed to %q", p.To.Name()).Breaking = true
	}
	for col, c := range td.AddedColumns.All() {
		if c.IsNotNull() && !c.HasDefaultValue() && !c.IsAutoIncrement() {
			result.warn(EntityColumn, name, col, "new NOT NULL column without default value may fail if table has data")
		}
	}
	for col, cd := range td.ModifiedColumns.All() {
		validateColumnDiff(name, col, cd, cfg, result)
	}
	if td.HasModifiedPK() {
		result.warn(EntityPrimaryKey, name, "", "primary key changing from %v to %v", pkNames(td.From), pkNames(td.To)).Breaking = true
	}
	for idx := range td.RemovedIndices.All() {
		result.drop(cfg, EntityIndex, name, idx, fmt.Sprintf("index %q will be dropped", idx))
	}
	for idx, i := range td.AddedIndices.All() {
		if i.IsUnique() {
			result.warn(EntityIndex, name, idx, "adding UNIQUE index %q may fail if duplicate values exist", idx)
		}
	}
	for idx, p := range td.ModifiedIndices.All() {
		if p.To.IsUnique() && !p.From.IsUnique() {
			result.warn(EntityIndex, name, idx, "index %q becoming UNIQUE may fail if duplicate values exist", idx)
		}
	}
	for fk := range td.RemovedFKs.All() {
		result.warn(EntityForeignKey, name, fk, "foreign key %q will be dropped", fk)
	}
}

func validateColumnDiff(table, col string, cd *ColumnDiff, cfg *validateConfig, result *ValidationResult) {
	if c, ok := cd.Changes.Get(PropertyType); ok {
		result.warn(EntityColumn, table, col, "column type changing from %v to %v", c.From, c.To)
	} else if c, ok := cd.Changes.Get(PropertySQLType); ok {
		result.warn(EntityColumn, table, col, "column type changing from %v to %v", c.From, c.To)
	}
	if c, ok := cd.Changes.Get(PropertyNotNull); ok && c.To == true {
		result.add(&ValidationError{
			Kind:     EntityColumn,
			Table:    table,
			Name:     col,
			Message:  "column changing from NULL to NOT NULL may fail if column has NULL values",
			Breaking: true,
		}, cfg.allowNullToNotNull)
	}
	if c, ok := cd.Changes.Get(PropertySize); ok {
		from, fok := c.From.(int)
		to, tok := c.To.(int)
		if fok && tok && to < from {
			result.warn(EntityColumn, table, col, "column size reducing from %d to %d may truncate data", from, to)
		}
	}
}

func pkNames(t *model.Table) []string {
	var names []string
	for _, c := range t.PrimaryKey() {
		names = append(names, c.Name())
	}
	return names
}

// ValidateTable checks t for structural problems: a missing primary key
// is a warning; indices and foreign keys over unknown columns are errors.
func ValidateTable(t *model.Table) *ValidationResult {
	result := &ValidationResult{}
	if !t.HasPrimaryKey() {
		result.warn(EntityPrimaryKey, t.Name(), "", "table has no primary key")
	}
	for _, idx := range append(t.Uniques(), t.Indices()...) {
		for _, col := range idx.Columns() {
			if t.Column(col) == nil {
				result.reject(EntityIndex, t.Name(), idx.Name(), "index %q references non-existent column %q", idx.Name(), col)
			}
		}
	}
	for _, fk := range t.ForeignKeys() {
		for _, col := range fk.LocalColumns() {
			if t.Column(col) == nil {
				result.reject(EntityForeignKey, t.Name(), fk.Name(), "foreign key %q references non-existent column %q", fk.Name(), col)
			}
		}
	}
	return result
}

// ValidateDatabase validates every table of db and the targets of its
// foreign keys.
func ValidateDatabase(db *model.Database) *ValidationResult {
	result := &ValidationResult{}
	for _, t := range db.Tables() {
		tr := ValidateTable(t)
		result.Errors = append(result.Errors, tr.Errors...)
		result.Warnings = append(result.Warnings, tr.Warnings...)
	}
	for _, t := range db.Tables() {
		for _, fk := range t.ForeignKeys() {
			ft := fk.ForeignTable()
			if ft == nil {
				result.reject(EntityForeignKey, t.Name(), fk.Name(), "foreign key %q references non-existent table %q", fk.Name(), fk.ForeignTableName())
				continue
			}
			_, err := fk.ForeignColumnObjects()
			var re *relgraph.ResolutionError
			switch {
			case err == nil:
			case errors.As(err, &re) && re.Kind == "relation":
				result.reject(EntityForeignKey, t.Name(), fk.Name(), "foreign key %q references %q instead of table %q", fk.Name(), re.Name, ft.Name())
			case errors.As(err, &re):
				result.reject(EntityForeignKey, t.Name(), fk.Name(), "foreign key %q references non-existent column %q of table %q", fk.Name(), re.Name, ft.Name())
			default:
				result.reject(EntityForeignKey, t.Name(), fk.Name(), "foreign key %q: %v", fk.Name(), err)
			}
		}
	}
	return result
}

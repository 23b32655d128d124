package model

import (
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/relgraph"
)

// Schema owns one or more databases. External schemas are joined into the
// first database with JoinSchemas.
type Schema struct {
	name      string
	databases []*Database
	external  []*Schema
}

// NewSchema returns an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{name: name}
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// SetName sets the schema name.
func (s *Schema) SetName(name string) { s.name = name }

// Databases returns the databases in insertion order.
func (s *Schema) Databases() []*Database { return slices.Clone(s.databases) }

// Database returns the named database, or the first one for "".
func (s *Schema) Database(name string) *Database {
	if name == "" {
		if len(s.databases) == 0 {
			return nil
		}
		return s.databases[0]
	}
	for _, db := range s.databases {
		if db.name == name {
			return db
		}
	}
	return nil
}

// HasDatabase reports whether the named database exists.
func (s *Schema) HasDatabase(name string) bool {
	return name != "" && s.Database(name) != nil
}

// HasMultipleDatabases reports whether the schema owns several databases.
func (s *Schema) HasMultipleDatabases() bool { return len(s.databases) > 1 }

// AddDatabase adds db. Database names are unique within a schema.
func (s *Schema) AddDatabase(db *Database) error {
	if slices.Contains(s.databases, db) {
		return nil
	}
	if db.name != "" && s.HasDatabase(db.name) {
		return relgraph.NewBuildError("database", db.name, "", "database already exists in schema "+strconv.Quote(s.name))
	}
	db.parent = s
	s.databases = append(s.databases, db)
	return nil
}

// AddDatabaseFromAttributes creates a database from an attribute bag.
func (s *Schema) AddDatabaseFromAttributes(attrs Attributes) (*Database, error) {
	db := NewDatabase("")
	db.LoadMapping(attrs)
	if err := s.AddDatabase(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ExternalSchemas returns the schemas included by this one.
func (s *Schema) ExternalSchemas() []*Schema { return slices.Clone(s.external) }

// AddExternalSchema records an included schema. It is merged by
// JoinExternalSchemas.
func (s *Schema) AddExternalSchema(ext *Schema) { s.external = append(s.external, ext) }

// JoinSchemas moves the tables and database behaviors of each schema into
// the single database of s. Either side having more than one database is an
// error, as is a table name (compared ignoring case) present on both sides.
func (s *Schema) JoinSchemas(schemas ...*Schema) error {
	if len(s.databases) > 1 {
		return relgraph.NewBuildError("schema", s.name, "", "cannot join schemas into a schema with more than one database")
	}
	for _, other := range schemas {
		if len(other.databases) > 1 {
			return relgraph.NewBuildError("schema", other.name, "", "cannot join a schema with more than one database")
		}
		if len(other.databases) == 0 {
			continue
		}
		src := other.databases[0]
		if len(s.databases) == 0 {
			if err := s.AddDatabase(NewDatabase(src.name)); err != nil {
				return err
			}
		}
		dst := s.databases[0]
		for _, t := range src.tables {
			if dst.HasTable(t.name, true) {
				return relgraph.NewBuildError("table", t.name, "", "duplicate table found in database "+strconv.Quote(dst.name))
			}
		}
		for _, t := range slices.Clone(src.tables) {
			if err := dst.AddTable(t); err != nil {
				return err
			}
		}
		for _, b := range src.behaviors {
			if !dst.HasBehavior(b.ID()) {
				if err := dst.AddBehavior(b.Copy()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// JoinExternalSchemas joins every external schema, depth first.
func (s *Schema) JoinExternalSchemas() error {
	for _, ext := range s.external {
		if err := ext.JoinExternalSchemas(); err != nil {
			return err
		}
	}
	if err := s.JoinSchemas(s.external...); err != nil {
		return err
	}
	s.external = nil
	return nil
}

// DoFinalInitialization joins external schemas and finalizes every
// database.
func (s *Schema) DoFinalInitialization() error {
	if err := s.JoinExternalSchemas(); err != nil {
		return err
	}
	var errs []error
	for _, db := range s.databases {
		errs = append(errs, db.DoFinalInitialization())
	}
	return relgraph.NewAggregateError(errs...)
}

// CountTables returns the number of tables across databases, skipping
// tables without SQL.
func (s *Schema) CountTables() int {
	n := 0
	for _, db := range s.databases {
		for _, t := range db.tables {
			if !t.skipSQL {
				n++
			}
		}
	}
	return n
}

// LookupTable searches every database for the named table.
func (s *Schema) LookupTable(name string, caseInsensitive bool) *Table {
	for _, db := range s.databases {
		if t := db.LookupTable(name, caseInsensitive); t != nil {
			return t
		}
	}
	return nil
}

// String returns a short description of the schema.
func (s *Schema) String() string {
	names := make([]string, 0, len(s.databases))
	for _, db := range s.databases {
		names = append(names, db.name)
	}
	return s.name + " [" + strings.Join(names, ", ") + "]"
}

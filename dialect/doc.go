// Package dialect provides the SQL platforms the schema graph is rendered
// and normalized with.
//
// # Supported Dialects
//
//   - Generic: portable SQL, used when no dialect is configured
//   - MySQL: MySQL/MariaDB
//   - Postgres: PostgreSQL
//   - SQLite: SQLite
//
// Each dialect is identified by a constant string:
//
//	dialect.Generic  = "generic"
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite"
//
// # Usage
//
// A Platform implements model.Platform. Attach it to a database so column
// types, auto-generated names and comparisons follow the dialect:
//
//	p, err := dialect.New(dialect.Postgres, dialect.WithMaxIdentifierLength(63))
//	if err != nil {
//	    return err
//	}
//	db.SetPlatform(p)
//
// Export converts a database into an atlas schema, and Plan turns a
// database diff into migration statements:
//
//	d, _ := diff.CompareDatabases(current, target)
//	stmts, err := dialect.Plan(ctx, p, d)
package dialect

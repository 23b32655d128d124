// Package behavior registers the built-in schema behaviors with the model
// registry. Import it for its side effects:
//
//	import _ "github.com/syssam/relgraph/behavior"
//
// Built-ins:
//
//   - timestampable adds created_at and updated_at TIMESTAMP columns
//   - auto_add_pk adds an auto-incremented id primary key to tables without one
//
// Behaviors added to a database are copied onto every table during
// Database.DoFinalInitialization, so a database-level auto_add_pk covers the
// whole schema.
package behavior

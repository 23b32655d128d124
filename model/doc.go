// Package model holds the in-memory relational schema graph.
//
// A Schema owns Databases, a Database owns Tables, and a Table owns its
// Columns, Indices, Uniques, ForeignKeys and Behaviors. Foreign keys name
// their target table and are resolved through the owning Database each time
// they are followed, so a graph can be built in any order:
//
//	db := model.NewDatabase("bookstore")
//	book := model.NewTable("book")
//	_ = db.AddTable(book)
//	_ = book.AddColumn(model.NewColumn("author_id"))
//
//	fk := model.NewForeignKey("")
//	fk.SetForeignTableName("author") // not added yet
//	fk.AddReference("author_id", "id")
//	book.AddForeignKey(fk)
//
//	fk.ForeignTable() // nil until "author" joins the database
//
// # Errors
//
// Structural errors (duplicate column names, indices without columns,
// duplicate index names) are returned by the mutating call as
// *relgraph.BuildError. Reference errors (a foreign key naming a missing
// column) are returned lazily, by the accessor that needs the reference,
// as *relgraph.ResolutionError.
//
// # Concurrency
//
// A graph carries no synchronization. Independent graphs may be built and
// read concurrently; a single graph must not be mutated by more than one
// goroutine at a time.
package model

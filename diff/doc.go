// Package diff compares two versions of a schema graph.
//
// Leaf comparators (CompareColumns, CompareIndices, CompareForeignKeys) are
// plain functions. Table and database comparisons go through a Comparator
// configured with functional options:
//
//	c, err := diff.NewComparator(diff.WithRenaming(true), diff.WithExcludedTables("tmp_*"))
//	if err != nil {
//		return err
//	}
//	if d := c.CompareDatabases(current, target); d != nil {
//		fmt.Print(d)
//	}
//
// A nil diff means the two sides are equivalent. Every diff can be reversed
// to describe the migration back.
package diff

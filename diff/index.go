package diff

import (
	"slices"

	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// CompareIndices reports whether two indices differ. Column order and
// column sizes are significant.
func CompareIndices(from, to *model.Index, caseInsensitive bool) bool {
	fc, tc := from.Columns(), to.Columns()
	for pos, name := range fc {
		if !to.HasColumnAtPosition(pos, name, from.ColumnSize(name, caseInsensitive), caseInsensitive) {
			return true
		}
	}
	for pos, name := range tc {
		if !from.HasColumnAtPosition(pos, name, to.ColumnSize(name, caseInsensitive), caseInsensitive) {
			return true
		}
	}
	return from.IsUnique() != to.IsUnique()
}

// CompareForeignKeys reports whether two foreign keys differ. Column lists
// are compared as sorted, lower-cased sets, so neither order nor case is
// significant there.
func CompareForeignKeys(from, to *model.ForeignKey, caseInsensitive bool) bool {
	if !ident.Equal(from.TableName(), to.TableName(), caseInsensitive) {
		return true
	}
	if !ident.Equal(from.ForeignTableName(), to.ForeignTableName(), caseInsensitive) {
		return true
	}
	if !slices.Equal(normalizedColumns(from.LocalColumns()), normalizedColumns(to.LocalColumns())) {
		return true
	}
	if !slices.Equal(normalizedColumns(from.ForeignColumns()), normalizedColumns(to.ForeignColumns())) {
		return true
	}
	if from.OnUpdate() != to.OnUpdate() || from.OnDelete() != to.OnDelete() {
		return true
	}
	return from.IsSkipSQL() != to.IsSkipSQL()
}

func normalizedColumns(names []string) []string {
	slices.Sort(names)
	for i, n := range names {
		names[i] = ident.Lower(n)
	}
	return names
}

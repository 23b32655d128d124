package diff

import (
	"github.com/syssam/relgraph/model"
)

// DatabaseDiff is the difference between two versions of a database.
type DatabaseDiff struct {
	From *model.Database
	To   *model.Database

	AddedTables   OrderedMap[*model.Table]
	RemovedTables OrderedMap[*model.Table]
	// ModifiedTables is keyed by the name of the From table.
	ModifiedTables OrderedMap[*TableDiff]
	// RenamedTables maps the removed table name to the added one.
	RenamedTables OrderedMap[string]
	// PossibleRenamedTables holds renames detected while renaming was off.
	// The tables involved stay in AddedTables and RemovedTables.
	PossibleRenamedTables OrderedMap[string]
}

// Count returns the number of differences. Possible renames are not
// differences.
func (d *DatabaseDiff) Count() int {
	return d.AddedTables.Len() + d.RemovedTables.Len() + d.ModifiedTables.Len() + d.RenamedTables.Len()
}

// Reverse returns the diff that undoes d. Nested table diffs are reversed
// too; d is left untouched.
func (d *DatabaseDiff) Reverse() *DatabaseDiff {
	if d == nil {
		return nil
	}
	r := &DatabaseDiff{
		From:          d.To,
		To:            d.From,
		AddedTables:   d.RemovedTables.Clone(),
		RemovedTables: d.AddedTables.Clone(),
	}
	for _, td := range d.ModifiedTables.All() {
		rev := td.Reverse()
		r.ModifiedTables.Set(rev.From.Name(), rev)
	}
	for from, to := range d.RenamedTables.All() {
		r.RenamedTables.Set(to, from)
	}
	for from, to := range d.PossibleRenamedTables.All() {
		r.PossibleRenamedTables.Set(to, from)
	}
	return r
}

// String returns a readable summary of the diff.
func (d *DatabaseDiff) String() string {
	var w writer
	d.render(&w, plainStyle)
	return w.String()
}

func (d *DatabaseDiff) render(w *writer, st style) {
	section(w, 0, "addedTables", d.AddedTables.Keys(), st.added)
	section(w, 0, "removedTables", d.RemovedTables.Keys(), st.removed)
	if d.ModifiedTables.Len() > 0 {
		w.line(0, "modifiedTables:")
		for _, td := range d.ModifiedTables.All() {
			td.render(w, 1, st)
		}
	}
	renamedTables(w, "renamedTables", &d.RenamedTables, st)
	renamedTables(w, "possibleRenamedTables", &d.PossibleRenamedTables, st)
}

func renamedTables(w *writer, title string, m *OrderedMap[string], st style) {
	if m.Len() == 0 {
		return
	}
	w.line(0, title+":")
	for from, to := range m.All() {
		w.line(1, st.renamed("%s: %s", from, to))
	}
}

package diff

import (
	"slices"

	"github.com/syssam/relgraph/model"
)

// TableDiff is the difference between two versions of a table. Maps are
// keyed by entity name and keep comparison order.
type TableDiff struct {
	From *model.Table
	To   *model.Table

	AddedColumns    OrderedMap[*model.Column]
	RemovedColumns  OrderedMap[*model.Column]
	ModifiedColumns OrderedMap[*ColumnDiff]
	// RenamedColumns pairs the removed column with the added one.
	RenamedColumns []Pair[*model.Column]

	AddedPKColumns   OrderedMap[*model.Column]
	RemovedPKColumns OrderedMap[*model.Column]
	RenamedPKColumns []Pair[*model.Column]

	AddedIndices    OrderedMap[*model.Index]
	RemovedIndices  OrderedMap[*model.Index]
	ModifiedIndices OrderedMap[Pair[*model.Index]]

	AddedFKs    OrderedMap[*model.ForeignKey]
	RemovedFKs  OrderedMap[*model.ForeignKey]
	ModifiedFKs OrderedMap[Pair[*model.ForeignKey]]
}

// Count returns the number of differences.
func (d *TableDiff) Count() int {
	return d.AddedColumns.Len() + d.RemovedColumns.Len() + d.ModifiedColumns.Len() + len(d.RenamedColumns) +
		d.AddedPKColumns.Len() + d.RemovedPKColumns.Len() + len(d.RenamedPKColumns) +
		d.AddedIndices.Len() + d.RemovedIndices.Len() + d.ModifiedIndices.Len() +
		d.AddedFKs.Len() + d.RemovedFKs.Len() + d.ModifiedFKs.Len()
}

// HasModifiedColumns reports whether any column was added, removed,
// modified or renamed.
func (d *TableDiff) HasModifiedColumns() bool {
	return d.AddedColumns.Len()+d.RemovedColumns.Len()+d.ModifiedColumns.Len()+len(d.RenamedColumns) > 0
}

// HasModifiedPK reports whether the primary key changed.
func (d *TableDiff) HasModifiedPK() bool {
	return d.AddedPKColumns.Len()+d.RemovedPKColumns.Len()+len(d.RenamedPKColumns) > 0
}

// HasModifiedIndices reports whether any index or unique changed.
func (d *TableDiff) HasModifiedIndices() bool {
	return d.AddedIndices.Len()+d.RemovedIndices.Len()+d.ModifiedIndices.Len() > 0
}

// HasModifiedFKs reports whether any foreign key changed.
func (d *TableDiff) HasModifiedFKs() bool {
	return d.AddedFKs.Len()+d.RemovedFKs.Len()+d.ModifiedFKs.Len() > 0
}

// Reverse returns the diff that undoes d. Nested column diffs and pairs
// are reversed too; d is left untouched.
func (d *TableDiff) Reverse() *TableDiff {
	if d == nil {
		return nil
	}
	return &TableDiff{
		From:             d.To,
		To:               d.From,
		AddedColumns:     d.RemovedColumns.Clone(),
		RemovedColumns:   d.AddedColumns.Clone(),
		ModifiedColumns:  mapValues(&d.ModifiedColumns, (*ColumnDiff).Reverse),
		RenamedColumns:   reversePairs(d.RenamedColumns),
		AddedPKColumns:   d.RemovedPKColumns.Clone(),
		RemovedPKColumns: d.AddedPKColumns.Clone(),
		RenamedPKColumns: reversePairs(d.RenamedPKColumns),
		AddedIndices:     d.RemovedIndices.Clone(),
		RemovedIndices:   d.AddedIndices.Clone(),
		ModifiedIndices:  mapValues(&d.ModifiedIndices, Pair[*model.Index].Reverse),
		AddedFKs:         d.RemovedFKs.Clone(),
		RemovedFKs:       d.AddedFKs.Clone(),
		ModifiedFKs:      mapValues(&d.ModifiedFKs, Pair[*model.ForeignKey].Reverse),
	}
}

// String returns a readable summary of the diff.
func (d *TableDiff) String() string {
	var w writer
	d.render(&w, 0, plainStyle)
	return w.String()
}

func (d *TableDiff) render(w *writer, depth int, st style) {
	w.line(depth, st.modified("%s:", d.From.Name()))
	depth++
	section(w, depth, "addedColumns", d.AddedColumns.Keys(), st.added)
	section(w, depth, "removedColumns", d.RemovedColumns.Keys(), st.removed)
	if d.ModifiedColumns.Len() > 0 {
		w.line(depth, "modifiedColumns:")
		for name, cd := range d.ModifiedColumns.All() {
			w.line(depth+1, st.modified("%s:", name))
			for _, c := range cd.Changes {
				w.line(depth+2, st.modified("%s: %v => %v", c.Property, c.From, c.To))
			}
		}
	}
	renamedSection(w, depth, "renamedColumns", d.RenamedColumns, st)
	section(w, depth, "addedPkColumns", d.AddedPKColumns.Keys(), st.added)
	section(w, depth, "removedPkColumns", d.RemovedPKColumns.Keys(), st.removed)
	renamedSection(w, depth, "renamedPkColumns", d.RenamedPKColumns, st)
	section(w, depth, "addedIndices", d.AddedIndices.Keys(), st.added)
	section(w, depth, "removedIndices", d.RemovedIndices.Keys(), st.removed)
	section(w, depth, "modifiedIndices", d.ModifiedIndices.Keys(), st.modified)
	section(w, depth, "addedFks", d.AddedFKs.Keys(), st.added)
	section(w, depth, "removedFks", d.RemovedFKs.Keys(), st.removed)
	if d.ModifiedFKs.Len() > 0 {
		w.line(depth, "modifiedFks:")
		for name, p := range d.ModifiedFKs.All() {
			w.line(depth+1, st.modified("%s:", name))
			if a, b := p.From.LocalColumns(), p.To.LocalColumns(); !slices.Equal(a, b) {
				w.line(depth+2, st.modified("localColumns: from %v to %v", a, b))
			}
			if a, b := p.From.ForeignColumns(), p.To.ForeignColumns(); !slices.Equal(a, b) {
				w.line(depth+2, st.modified("foreignColumns: from %v to %v", a, b))
			}
			if a, b := p.From.OnUpdate(), p.To.OnUpdate(); a != b {
				w.line(depth+2, st.modified("onUpdate: from %q to %q", a, b))
			}
			if a, b := p.From.OnDelete(), p.To.OnDelete(); a != b {
				w.line(depth+2, st.modified("onDelete: from %q to %q", a, b))
			}
		}
	}
}

func renamedSection(w *writer, depth int, title string, pairs []Pair[*model.Column], st style) {
	if len(pairs) == 0 {
		return
	}
	w.line(depth, title+":")
	for _, p := range pairs {
		w.line(depth+1, st.renamed("%s: %s", p.From.Name(), p.To.Name()))
	}
}

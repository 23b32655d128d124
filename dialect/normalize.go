package dialect

import (
	"github.com/syssam/relgraph/model"
)

// NormalizeTable brings t to the form the dialect would read back from a
// live database:
//
//   - columns referenced by a foreign key get a unique index when they are
//     not unique already
//   - index prefix sizes are dropped when the dialect ignores them
//   - sizes equal to the dialect default are cleared, unless a scale is set
//
// Calling it twice has no further effect.
func (p *Platform) NormalizeTable(t *model.Table) {
	for _, fk := range t.ForeignKeys() {
		ft := fk.ForeignTable()
		cols := fk.ForeignColumns()
		if ft == nil || len(cols) == 0 || ft.IsUnique(cols) {
			continue
		}
		u := model.NewUnique("")
		if err := u.SetColumns(cols...); err != nil {
			continue
		}
		if err := ft.AddUnique(u); err != nil {
			p.logger.Debug("skip unique index on referenced columns",
				"table", ft.Name(), "columns", cols, "error", err)
			continue
		}
		p.logger.Debug("added unique index on referenced columns",
			"table", ft.Name(), "index", u.Name(), "columns", cols)
	}
	if !p.SupportsIndexSize() {
		for _, idx := range append(t.Indices(), t.Uniques()...) {
			if idx.HasColumnSize() {
				idx.ResetColumnsSize()
				p.logger.Debug("reset index column sizes", "table", t.Name(), "index", idx.Name())
			}
		}
	}
	for _, c := range t.Columns() {
		if !c.HasSize() || c.Domain().Scale != nil {
			continue
		}
		if size := p.DefaultTypeSize(c.Type()); size > 0 && c.Size() == size {
			c.ClearSize()
			p.logger.Debug("cleared default column size", "column", c.FullyQualifiedName(), "size", size)
		}
	}
}

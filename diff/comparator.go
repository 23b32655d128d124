package diff

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// Comparator computes table and database diffs. It is safe for
// concurrent use as long as the compared graphs are not mutated.
type Comparator struct {
	cfg *Config
}

// NewComparator returns a comparator configured by opts.
func NewComparator(opts ...Option) (*Comparator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.compileExcluded()
	return &Comparator{cfg: cfg}, nil
}

// Config returns the comparator settings.
func (c *Comparator) Config() Config { return *c.cfg }

// CompareTables returns a diff of two tables configured by opts, or nil
// if they are equivalent.
func CompareTables(from, to *model.Table, opts ...Option) (*TableDiff, error) {
	c, err := NewComparator(opts...)
	if err != nil {
		return nil, err
	}
	return c.CompareTables(from, to), nil
}

// CompareDatabases returns a diff of two databases configured by opts, or
// nil if they are equivalent.
func CompareDatabases(from, to *model.Database, opts ...Option) (*DatabaseDiff, error) {
	c, err := NewComparator(opts...)
	if err != nil {
		return nil, err
	}
	return c.CompareDatabases(from, to), nil
}

// CompareTables returns the diff of two tables, or nil if they are
// equivalent. Neither table is modified.
func (c *Comparator) CompareTables(from, to *model.Table) *TableDiff {
	d := &TableDiff{From: from, To: to}
	n := c.compareColumns(d) + c.comparePrimaryKeys(d) + c.compareIndices(d) + c.compareForeignKeys(d)
	if n == 0 {
		return nil
	}
	return d
}

func (c *Comparator) compareColumns(d *TableDiff) int {
	ci := c.cfg.CaseInsensitive
	var n int
	for _, col := range d.To.Columns() {
		if !d.From.HasColumn(col.Name(), ci) {
			d.AddedColumns.Set(col.Name(), col)
			n++
		}
	}
	for _, col := range d.From.Columns() {
		if !d.To.HasColumn(col.Name(), ci) {
			d.RemovedColumns.Set(col.Name(), col)
			n++
		}
	}
	for _, fc := range d.From.Columns() {
		tc := d.To.LookupColumn(fc.Name(), ci)
		if tc == nil {
			continue
		}
		if cd := ComputeColumnDiff(fc, tc); cd != nil {
			d.ModifiedColumns.Set(fc.Name(), cd)
			n++
		}
	}
	renames := detectColumnRenames(&d.AddedColumns, &d.RemovedColumns)
	d.RenamedColumns = append(d.RenamedColumns, renames...)
	return n - len(renames)
}

func (c *Comparator) comparePrimaryKeys(d *TableDiff) int {
	ci := c.cfg.CaseInsensitive
	var n int
	for _, col := range d.To.PrimaryKey() {
		if fc := d.From.LookupColumn(col.Name(), ci); fc == nil || !fc.IsPrimaryKey() {
			d.AddedPKColumns.Set(col.Name(), col)
			n++
		}
	}
	for _, col := range d.From.PrimaryKey() {
		if tc := d.To.LookupColumn(col.Name(), ci); tc == nil || !tc.IsPrimaryKey() {
			d.RemovedPKColumns.Set(col.Name(), col)
			n++
		}
	}
	renames := detectColumnRenames(&d.AddedPKColumns, &d.RemovedPKColumns)
	d.RenamedPKColumns = append(d.RenamedPKColumns, renames...)
	return n - len(renames)
}

// detectColumnRenames pairs every added column with the first removed
// column it is equivalent to, and drops both from their maps. Matching is
// first-fit in insertion order, not a global best match.
func detectColumnRenames(added, removed *OrderedMap[*model.Column]) []Pair[*model.Column] {
	var renames []Pair[*model.Column]
	for _, an := range added.Keys() {
		a, _ := added.Get(an)
		for _, rn := range removed.Keys() {
			r, _ := removed.Get(rn)
			if len(CompareColumns(a, r)) > 0 {
				continue
			}
			renames = append(renames, Pair[*model.Column]{From: r, To: a})
			added.Delete(an)
			removed.Delete(rn)
			break
		}
	}
	return renames
}

func (c *Comparator) compareIndices(d *TableDiff) int {
	ci := c.cfg.CaseInsensitive
	from := append(d.From.Indices(), d.From.Uniques()...)
	to := append(d.To.Indices(), d.To.Uniques()...)
	fromMatched, toMatched := make([]bool, len(from)), make([]bool, len(to))
	var n int
	for i, fi := range from {
		for j, ti := range to {
			if toMatched[j] || !ident.Equal(fi.Name(), ti.Name(), ci) {
				continue
			}
			fromMatched[i], toMatched[j] = true, true
			if CompareIndices(fi, ti, ci) {
				d.ModifiedIndices.Set(fi.Name(), Pair[*model.Index]{From: fi, To: ti})
				n++
			}
			break
		}
	}
	for i, fi := range from {
		if !fromMatched[i] {
			d.RemovedIndices.Set(fi.Name(), fi)
			n++
		}
	}
	for j, ti := range to {
		if !toMatched[j] {
			d.AddedIndices.Set(ti.Name(), ti)
			n++
		}
	}
	return n
}

func (c *Comparator) compareForeignKeys(d *TableDiff) int {
	ci := c.cfg.CaseInsensitive
	from, to := d.From.ForeignKeys(), d.To.ForeignKeys()
	fromMatched, toMatched := make([]bool, len(from)), make([]bool, len(to))
	var n int
	for i, ffk := range from {
		for j, tfk := range to {
			if toMatched[j] || !ident.Equal(ffk.Name(), tfk.Name(), ci) {
				continue
			}
			fromMatched[i], toMatched[j] = true, true
			if CompareForeignKeys(ffk, tfk, ci) {
				d.ModifiedFKs.Set(ffk.Name(), Pair[*model.ForeignKey]{From: ffk, To: tfk})
				n++
			}
			break
		}
	}
	// Keys that are not rendered in SQL are never added or removed.
	for i, fk := range from {
		if !fromMatched[i] && !fk.IsSkipSQL() {
			d.RemovedFKs.Set(fk.Name(), fk)
			n++
		}
	}
	for j, fk := range to {
		if !toMatched[j] && !fk.IsSkipSQL() {
			d.AddedFKs.Set(fk.Name(), fk)
			n++
		}
	}
	return n
}

// CompareDatabases returns the diff of two databases, or nil if they are
// equivalent. When a platform is known, the tables of both databases are
// normalized by it first; that is the only change made to the inputs.
func (c *Comparator) CompareDatabases(from, to *model.Database) *DatabaseDiff {
	c.normalize(from, to)
	ci := c.cfg.CaseInsensitive
	d := &DatabaseDiff{From: from, To: to}
	var n int
	for _, t := range to.Tables() {
		if c.cfg.isExcluded(t) || t.IsSkipSQL() || from.HasTable(t.Name(), ci) {
			continue
		}
		d.AddedTables.Set(t.Name(), t)
		n++
	}
	if c.cfg.RemoveTables {
		for _, t := range from.Tables() {
			if c.cfg.isExcluded(t) || t.IsSkipSQL() || to.HasTable(t.Name(), ci) {
				continue
			}
			d.RemovedTables.Set(t.Name(), t)
			n++
		}
	}
	n += c.compareModifiedTables(from, to, d)
	n -= c.detectTableRenames(d)
	if n == 0 {
		return nil
	}
	return d
}

func (c *Comparator) normalize(from, to *model.Database) {
	p := c.cfg.Platform
	if p == nil {
		p = to.Platform()
	}
	if p == nil {
		p = from.Platform()
	}
	if p == nil {
		return
	}
	c.cfg.Logger.Debug("normalizing tables", slog.String("platform", p.Name()),
		slog.String("from", from.Name()), slog.String("to", to.Name()))
	for _, t := range from.Tables() {
		p.NormalizeTable(t)
	}
	for _, t := range to.Tables() {
		p.NormalizeTable(t)
	}
}

// compareModifiedTables diffs the tables present on both sides. With a
// concurrency above one the pairs are compared in parallel; the recorded
// order is the order of the from database either way.
func (c *Comparator) compareModifiedTables(from, to *model.Database, d *DatabaseDiff) int {
	type pair struct{ from, to *model.Table }
	var pairs []pair
	for _, ft := range from.Tables() {
		if c.cfg.isExcluded(ft) {
			continue
		}
		if tt := to.LookupTable(ft.Name(), c.cfg.CaseInsensitive); tt != nil {
			pairs = append(pairs, pair{ft, tt})
		}
	}
	diffs := make([]*TableDiff, len(pairs))
	if c.cfg.Concurrency > 1 && len(pairs) > 1 {
		var g errgroup.Group
		g.SetLimit(c.cfg.Concurrency)
		for i, p := range pairs {
			g.Go(func() error {
				diffs[i] = c.CompareTables(p.from, p.to)
				return nil
			})
		}
		// Table comparison cannot fail.
		_ = g.Wait()
	} else {
		for i, p := range pairs {
			diffs[i] = c.CompareTables(p.from, p.to)
		}
	}
	var n int
	for i, td := range diffs {
		if td != nil {
			d.ModifiedTables.Set(pairs[i].from.Name(), td)
			n++
		}
	}
	return n
}

// detectTableRenames pairs every added table with the first removed table
// it is equivalent to. With renaming on, both leave the added and removed
// maps; otherwise the match is only recorded as a possible rename. It
// returns the number of applied renames.
func (c *Comparator) detectTableRenames(d *DatabaseDiff) int {
	var n int
	for _, an := range d.AddedTables.Keys() {
		added, _ := d.AddedTables.Get(an)
		for _, rn := range d.RemovedTables.Keys() {
			removed, _ := d.RemovedTables.Get(rn)
			if c.CompareTables(added, removed) != nil {
				continue
			}
			if c.cfg.Renaming {
				d.RenamedTables.Set(rn, an)
				d.AddedTables.Delete(an)
				d.RemovedTables.Delete(rn)
				n++
				c.cfg.Logger.Debug("table renamed", slog.String("from", rn), slog.String("to", an))
			} else {
				d.PossibleRenamedTables.Set(rn, an)
				c.cfg.Logger.Debug("possible table rename", slog.String("from", rn), slog.String("to", an))
			}
			break
		}
	}
	return n
}

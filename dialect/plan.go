package dialect

import (
	"context"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/diff"
)

// Planner returns the atlas planner of the dialect. Generic has none.
func (p *Platform) Planner() (migrate.PlanApplier, error) {
	switch p.flavor.name {
	case MySQL:
		return mysql.DefaultPlan, nil
	case Postgres:
		return postgres.DefaultPlan, nil
	case SQLite:
		return sqlite.DefaultPlan, nil
	}
	return nil, relgraph.NewConfigError("Dialect", p.Name(), "dialect has no migration planner")
}

// Plan returns the statements migrating d.From into d.To. Both databases
// are exported with p and the diff is translated into atlas changes:
// modified tables first, then renamed, added and removed tables.
func Plan(ctx context.Context, p *Platform, d *diff.DatabaseDiff) ([]string, error) {
	planner, err := p.Planner()
	if err != nil {
		return nil, err
	}
	if d == nil || d.Count() == 0 {
		return nil, nil
	}
	changes, err := p.Changes(d)
	if err != nil || len(changes) == 0 {
		return nil, err
	}
	plan, err := planner.PlanChanges(ctx, "relgraph", changes)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		stmts = append(stmts, c.Cmd)
	}
	p.logger.Debug("planned migration", "dialect", p.Name(), "changes", len(changes), "statements", len(stmts))
	return stmts, nil
}

// Changes translates d into atlas schema changes.
func (p *Platform) Changes(d *diff.DatabaseDiff) ([]schema.Change, error) {
	from, err := p.Export(d.From)
	if err != nil {
		return nil, err
	}
	to, err := p.Export(d.To)
	if err != nil {
		return nil, err
	}
	var changes []schema.Change
	for name, td := range d.ModifiedTables.All() {
		ft, err := lookupTable(from, name)
		if err != nil {
			return nil, err
		}
		tt, err := lookupTable(to, td.To.Name())
		if err != nil {
			return nil, err
		}
		cs, err := tableChanges(td, ft, tt)
		if err != nil {
			return nil, err
		}
		if len(cs) > 0 {
			changes = append(changes, &schema.ModifyTable{T: tt, Changes: cs})
		}
	}
	for fromName, toName := range d.RenamedTables.All() {
		ft, err := lookupTable(from, fromName)
		if err != nil {
			return nil, err
		}
		tt, err := lookupTable(to, toName)
		if err != nil {
			return nil, err
		}
		changes = append(changes, &schema.RenameTable{From: ft, To: tt})
	}
	for name := range d.AddedTables.All() {
		t, err := lookupTable(to, name)
		if err != nil {
			return nil, err
		}
		changes = append(changes, &schema.AddTable{T: t})
	}
	for name := range d.RemovedTables.All() {
		t, err := lookupTable(from, name)
		if err != nil {
			return nil, err
		}
		changes = append(changes, &schema.DropTable{T: t})
	}
	return changes, nil
}

func lookupTable(s *schema.Schema, name string) (*schema.Table, error) {
	t, ok := s.Table(name)
	if !ok {
		return nil, relgraph.NewResolutionError("table", name, "", "")
	}
	return t, nil
}

// tableChanges orders drops before additions so a modified index or
// foreign key is recreated after its columns changed.
func tableChanges(td *diff.TableDiff, from, to *schema.Table) ([]schema.Change, error) {
	var (
		drops, alters, adds []schema.Change
		errs                []error
	)
	dropFK := func(name string) {
		if fk, ok := from.ForeignKey(name); ok {
			drops = append(drops, &schema.DropForeignKey{F: fk})
		} else {
			errs = append(errs, relgraph.NewResolutionError("foreign key", name, from.Name, ""))
		}
	}
	addFK := func(name string) {
		if fk, ok := to.ForeignKey(name); ok {
			adds = append(adds, &schema.AddForeignKey{F: fk})
		} else {
			errs = append(errs, relgraph.NewResolutionError("foreign key", name, to.Name, ""))
		}
	}
	dropIndex := func(name string) {
		if idx, ok := from.Index(name); ok {
			drops = append(drops, &schema.DropIndex{I: idx})
		} else {
			errs = append(errs, relgraph.NewResolutionError("index", name, from.Name, ""))
		}
	}
	addIndex := func(name string) {
		if idx, ok := to.Index(name); ok {
			adds = append(adds, &schema.AddIndex{I: idx})
		} else {
			errs = append(errs, relgraph.NewResolutionError("index", name, to.Name, ""))
		}
	}
	column := func(t *schema.Table, name string) *schema.Column {
		c, ok := t.Column(name)
		if !ok {
			errs = append(errs, relgraph.NewResolutionError("column", name, t.Name, ""))
		}
		return c
	}

	// Foreign keys flagged skipSql are not exported and get no DDL.
	for _, fk := range td.RemovedFKs.Values() {
		if !fk.IsSkipSQL() {
			dropFK(fk.Name())
		}
	}
	for _, pair := range td.ModifiedFKs.Values() {
		if !pair.From.IsSkipSQL() {
			dropFK(pair.From.Name())
		}
		if !pair.To.IsSkipSQL() {
			addFK(pair.To.Name())
		}
	}
	for _, idx := range td.RemovedIndices.Values() {
		dropIndex(idx.Name())
	}
	for _, pair := range td.ModifiedIndices.Values() {
		dropIndex(pair.From.Name())
		addIndex(pair.To.Name())
	}
	for name := range td.RemovedColumns.All() {
		if c := column(from, name); c != nil {
			alters = append(alters, &schema.DropColumn{C: c})
		}
	}
	for _, pair := range td.RenamedColumns {
		f, t := column(from, pair.From.Name()), column(to, pair.To.Name())
		if f != nil && t != nil {
			alters = append(alters, &schema.RenameColumn{From: f, To: t})
		}
	}
	for _, cd := range td.ModifiedColumns.Values() {
		f, t := column(from, cd.From.Name()), column(to, cd.To.Name())
		if f != nil && t != nil {
			alters = append(alters, &schema.ModifyColumn{From: f, To: t, Change: changeKind(cd.Changes)})
		}
	}
	for name := range td.AddedColumns.All() {
		if c := column(to, name); c != nil {
			alters = append(alters, &schema.AddColumn{C: c})
		}
	}
	if td.HasModifiedPK() {
		switch {
		case from.PrimaryKey == nil && to.PrimaryKey != nil:
			alters = append(alters, &schema.AddPrimaryKey{P: to.PrimaryKey})
		case from.PrimaryKey != nil && to.PrimaryKey == nil:
			alters = append(alters, &schema.DropPrimaryKey{P: from.PrimaryKey})
		case from.PrimaryKey != nil:
			alters = append(alters, &schema.ModifyPrimaryKey{From: from.PrimaryKey, To: to.PrimaryKey, Change: schema.ChangeParts})
		}
	}
	for _, idx := range td.AddedIndices.Values() {
		addIndex(idx.Name())
	}
	for _, fk := range td.AddedFKs.Values() {
		if !fk.IsSkipSQL() {
			addFK(fk.Name())
		}
	}
	if err := relgraph.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return append(append(drops, alters...), adds...), nil
}

func changeKind(cs diff.ColumnChanges) schema.ChangeKind {
	var k schema.ChangeKind
	for _, c := range cs {
		switch c.Property {
		case diff.PropertySize, diff.PropertyScale, diff.PropertySQLType, diff.PropertyType:
			k |= schema.ChangeType
		case diff.PropertyNotNull:
			k |= schema.ChangeNull
		case diff.PropertyDefaultValueType, diff.PropertyDefaultValueValue:
			k |= schema.ChangeDefault
		case diff.PropertyAutoIncrement:
			k |= schema.ChangeAttr
		}
	}
	return k
}

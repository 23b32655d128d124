package model

import (
	"strconv"
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Index is a named, ordered set of columns of one table. A unique index is
// an Index with the unique flag set, see NewUnique.
type Index struct {
	vendorPart
	name       string
	autoNaming bool
	unique     bool
	table      *Table
	columns    []string
	sizes      map[string]int
}

// NewIndex returns a plain index. An empty name turns auto-naming on.
func NewIndex(name string) *Index {
	return &Index{name: name, autoNaming: name == "", sizes: make(map[string]int)}
}

// NewUnique returns a unique index. An empty name turns auto-naming on.
func NewUnique(name string) *Index {
	idx := NewIndex(name)
	idx.unique = true
	return idx
}

// Name returns the explicit name, or the content-derived name while
// auto-naming is on.
func (i *Index) Name() string {
	if !i.autoNaming {
		return i.name
	}
	return i.autoName()
}

// SetName sets an explicit name and turns auto-naming off for good.
func (i *Index) SetName(name string) {
	i.name = name
	i.autoNaming = false
}

// IsAutoNamed reports whether the name is derived from the content.
func (i *Index) IsAutoNamed() bool { return i.autoNaming }

func (i *Index) autoName() string {
	prefix := "i_"
	if i.unique {
		prefix = "u_"
	}
	name := prefix + "no_columns"
	if len(i.columns) > 0 {
		sizes := make([]string, 0, len(i.sizes))
		for _, c := range i.columns {
			if n, ok := i.sizes[c]; ok {
				sizes = append(sizes, strconv.Itoa(n))
			}
		}
		name = prefix + ident.ShortHash(strings.Join(i.columns, ","), strings.Join(sizes, ","))
	}
	max := DefaultMaxIdentifierLength
	if i.table != nil {
		name = i.table.TableName() + "_" + name
		if p := i.table.Platform(); p != nil {
			max = p.MaxIdentifierLength()
		}
	}
	return ident.Truncate(name, max)
}

// IsUnique reports whether the index is a unique constraint.
func (i *Index) IsUnique() bool { return i.unique }

// Table returns the owning table, or nil.
func (i *Index) Table() *Table { return i.table }

// TableName returns the name of the owning table, or "".
func (i *Index) TableName() string {
	if i.table == nil {
		return ""
	}
	return i.table.Name()
}

// AddColumn appends a column without size.
func (i *Index) AddColumn(name string) error {
	return i.AddSizedColumn(name, 0)
}

// AddSizedColumn appends a column with a prefix size. A size of 0 means no
// size. A column may appear only once.
func (i *Index) AddSizedColumn(name string, size int) error {
	if name == "" {
		return relgraph.NewBuildError("index", i.Name(), i.TableName(), "column name is empty")
	}
	for _, c := range i.columns {
		if c == name {
			return relgraph.NewBuildError("index", i.Name(), i.TableName(), "column "+strconv.Quote(name)+" already indexed")
		}
	}
	i.columns = append(i.columns, name)
	if size > 0 {
		i.sizes[name] = size
	}
	return nil
}

// AddColumnFromAttributes appends a column from a "name"/"size" bag.
func (i *Index) AddColumnFromAttributes(attrs Attributes) error {
	size, err := attrs.Int("size")
	if err != nil {
		return err
	}
	if size == nil {
		return i.AddColumn(attrs.Get("name"))
	}
	return i.AddSizedColumn(attrs.Get("name"), *size)
}

// SetColumns replaces the columns, dropping every size.
func (i *Index) SetColumns(names ...string) error {
	i.columns, i.sizes = nil, make(map[string]int)
	for _, n := range names {
		if err := i.AddColumn(n); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the indexed column names in order.
func (i *Index) Columns() []string { return append([]string(nil), i.columns...) }

// IsEmpty reports whether the index has no column.
func (i *Index) IsEmpty() bool { return len(i.columns) == 0 }

// HasColumn reports whether the index covers the named column.
func (i *Index) HasColumn(name string, caseInsensitive bool) bool {
	for _, c := range i.columns {
		if ident.Equal(c, name, caseInsensitive) {
			return true
		}
	}
	return false
}

// HasColumnAtPosition reports whether the column at pos has the given name
// and size.
func (i *Index) HasColumnAtPosition(pos int, name string, size int, caseInsensitive bool) bool {
	if pos < 0 || pos >= len(i.columns) {
		return false
	}
	if !ident.Equal(i.columns[pos], name, caseInsensitive) {
		return false
	}
	return i.ColumnSize(name, caseInsensitive) == size
}

// ColumnSize returns the prefix size of the named column, or 0.
func (i *Index) ColumnSize(name string, caseInsensitive bool) int {
	if n, ok := i.sizes[name]; ok || !caseInsensitive {
		return n
	}
	for c, n := range i.sizes {
		if ident.Equal(c, name, true) {
			return n
		}
	}
	return 0
}

// HasColumnSize reports whether any column carries a size.
func (i *Index) HasColumnSize() bool { return len(i.sizes) > 0 }

// ResetColumnsSize drops every column size.
func (i *Index) ResetColumnsSize() { i.sizes = make(map[string]int) }

// ColumnObjects resolves the indexed columns against the owning table.
func (i *Index) ColumnObjects() ([]*Column, error) {
	if i.table == nil {
		return nil, relgraph.NewResolutionError("table", "", "", "index "+i.Name())
	}
	cols := make([]*Column, 0, len(i.columns))
	for _, name := range i.columns {
		c := i.table.Column(name)
		if c == nil {
			return nil, relgraph.NewResolutionError("column", name, i.table.Name(), "index "+i.Name())
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// LoadMapping reads the index attributes.
func (i *Index) LoadMapping(attrs Attributes) {
	if name := attrs.Get("name"); name != "" {
		i.SetName(name)
	}
}

// copyIndex returns a detached copy of i.
func (i *Index) copyIndex() *Index {
	c := &Index{name: i.name, autoNaming: i.autoNaming, unique: i.unique, sizes: make(map[string]int, len(i.sizes))}
	c.columns = append([]string(nil), i.columns...)
	for k, v := range i.sizes {
		c.sizes[k] = v
	}
	for _, vi := range i.vendorInfos {
		c.AddVendorInfo(vi.Merge(nil))
	}
	return c
}

package model

// DefaultMaxIdentifierLength is used for auto-generated names when no
// platform is attached to the graph.
const DefaultMaxIdentifierLength = 64

// Platform is the SQL dialect collaborator. The graph only reads from it;
// implementations live in the dialect package.
type Platform interface {
	// Name returns the platform name, e.g. "mysql".
	Name() string
	// QuoteIdentifier quotes a table or column identifier.
	QuoteIdentifier(name string) string
	// Quote quotes a string literal.
	Quote(text string) string
	// MaxIdentifierLength is the longest identifier the platform accepts.
	MaxIdentifierLength() int
	// IsReservedWord reports whether word is reserved by the platform.
	IsReservedWord(word string) bool
	// SupportsSchemas reports whether tables can be qualified by a schema.
	SupportsSchemas() bool
	// SupportsIndexSize reports whether index columns accept a prefix size.
	SupportsIndexSize() bool
	// RequiresForeignKeyIndices reports whether foreign key columns must be
	// covered by an index.
	RequiresForeignKeyIndices() bool
	// DomainForType returns the platform domain of a logical type.
	DomainForType(typ string) *Domain
	// DefaultTypeSize returns the size the platform assumes for typ, or 0.
	DefaultTypeSize(typ string) int
	// ColumnDDL renders the column definition used in CREATE TABLE.
	ColumnDDL(c *Column) string
	// DefaultValueDDL renders the DEFAULT clause of a column, or "".
	DefaultValueDDL(c *Column) string
	// NormalizeTable brings a table to the platform's canonical form before
	// it is compared. It must be idempotent.
	NormalizeTable(t *Table)
}

// Named is implemented by entities identified by a name.
type Named interface {
	Name() string
}

// TableOwned is implemented by entities owned by a table.
type TableOwned interface {
	Named
	Table() *Table
}

var (
	_ TableOwned       = (*Column)(nil)
	_ TableOwned       = (*Index)(nil)
	_ TableOwned       = (*ForeignKey)(nil)
	_ TableOwned       = (*Behavior)(nil)
	_ VendorExtensible = (*Column)(nil)
	_ VendorExtensible = (*Index)(nil)
	_ VendorExtensible = (*ForeignKey)(nil)
	_ VendorExtensible = (*Table)(nil)
	_ VendorExtensible = (*Database)(nil)
	_ Named            = (*Database)(nil)
	_ Named            = (*Schema)(nil)
)

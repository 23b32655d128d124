package dialect

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/syssam/relgraph/internal/ident"
	"github.com/syssam/relgraph/model"
)

// Platform is an SQL dialect. It implements model.Platform and is safe
// for concurrent use once configured.
type Platform struct {
	flavor              *flavor
	maxIdentifierLength int
	types               map[string]string
	reserved            map[string]struct{}
	logger              *slog.Logger
}

var _ model.Platform = (*Platform)(nil)

// Name returns the dialect name.
func (p *Platform) Name() string { return p.flavor.name }

// QuoteIdentifier quotes name with the dialect's identifier quotes.
func (p *Platform) QuoteIdentifier(name string) string {
	if !strings.Contains(name, ".") || !p.flavor.schemas {
		return p.flavor.quoteIdentifier(name)
	}
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = p.flavor.quoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

// Quote returns text as an SQL string literal.
func (p *Platform) Quote(text string) string { return p.flavor.quote(text) }

// MaxIdentifierLength is the longest identifier the platform accepts.
func (p *Platform) MaxIdentifierLength() int { return p.maxIdentifierLength }

// IsReservedWord reports whether word is reserved, ignoring case.
func (p *Platform) IsReservedWord(word string) bool {
	_, ok := p.reserved[ident.Upper(word)]
	return ok
}

// SupportsSchemas reports whether tables can be qualified by a schema.
func (p *Platform) SupportsSchemas() bool { return p.flavor.schemas }

// SupportsIndexSize reports whether index columns accept a prefix length.
func (p *Platform) SupportsIndexSize() bool { return p.flavor.indexSize }

// RequiresForeignKeyIndices reports whether foreign key columns need an
// index of their own.
func (p *Platform) RequiresForeignKeyIndices() bool { return p.flavor.fkIndices }

// SQLType returns the SQL type of a logical type. Unknown types are
// returned unchanged.
func (p *Platform) SQLType(typ string) string {
	typ = ident.Upper(typ)
	if t, ok := p.types[typ]; ok {
		return t
	}
	return typ
}

// DomainForType returns the platform domain of a logical type.
func (p *Platform) DomainForType(typ string) *model.Domain {
	d := model.NewDomain(typ)
	d.SQLType = p.SQLType(typ)
	return d
}

// DefaultTypeSize returns the size the dialect assumes for a logical
// type, or 0.
func (p *Platform) DefaultTypeSize(typ string) int {
	return p.flavor.defaultSizes[ident.Upper(typ)]
}

// HasSize reports whether the SQL type accepts a size.
func (p *Platform) HasSize(sqlType string) bool {
	return !slices.Contains(p.flavor.sizeless, ident.Upper(sqlType))
}

// BooleanString renders a boolean default. "1", "true", "y" and "yes"
// are true, anything else is false.
func (p *Platform) BooleanString(v string) string {
	switch ident.Lower(strings.TrimSpace(v)) {
	case "1", "true", "t", "y", "yes":
		return p.flavor.trueValue
	}
	return p.flavor.falseValue
}

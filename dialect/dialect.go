package dialect

import (
	"log/slog"
	"slices"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/ident"
)

// Dialect names.
const (
	Generic  = "generic"
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Names returns the supported dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(flavors))
	for n := range flavors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Option configures a Platform.
type Option func(*Platform) error

// WithMaxIdentifierLength overrides the longest identifier accepted by
// the platform.
func WithMaxIdentifierLength(n int) Option {
	return func(p *Platform) error {
		if n < 1 {
			return relgraph.NewConfigError("MaxIdentifierLength", n, "must be positive")
		}
		p.maxIdentifierLength = n
		return nil
	}
}

// WithReservedWords adds words to the reserved word list.
func WithReservedWords(words ...string) Option {
	return func(p *Platform) error {
		for _, w := range words {
			if w == "" {
				return relgraph.NewConfigError("ReservedWords", w, "word cannot be empty")
			}
			p.reserved[ident.Upper(w)] = struct{}{}
		}
		return nil
	}
}

// WithTypeMapping maps a logical type to an SQL type, replacing the
// dialect default.
func WithTypeMapping(logical, sqlType string) Option {
	return func(p *Platform) error {
		if logical == "" || sqlType == "" {
			return relgraph.NewConfigError("TypeMapping", logical+"="+sqlType, "both types are required")
		}
		p.types[ident.Upper(logical)] = sqlType
		return nil
	}
}

// WithLogger sets the logger receiving normalization changes.
func WithLogger(l *slog.Logger) Option {
	return func(p *Platform) error {
		if l == nil {
			return relgraph.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		p.logger = l
		return nil
	}
}

// New returns the platform of the named dialect. Names are
// case-insensitive; "" selects Generic.
func New(name string, opts ...Option) (*Platform, error) {
	if name == "" {
		name = Generic
	}
	f, ok := flavors[ident.Lower(name)]
	if !ok {
		return nil, relgraph.NewConfigError("Dialect", name, "unknown dialect")
	}
	p := f.platform()
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

package dialect

import (
	"log/slog"
	"maps"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/syssam/relgraph/model"
)

// flavor describes a dialect. Platforms copy its tables so options never
// leak between platforms.
type flavor struct {
	name                string
	maxIdentifierLength int
	schemas             bool
	indexSize           bool
	fkIndices           bool
	serial              bool
	nativeEnum          bool
	quoteIdentifier     func(string) string
	quote               func(string) string
	trueValue           string
	falseValue          string
	autoIncrement       string
	types               map[string]string
	defaultSizes        map[string]int
	sizeless            []string
	reserved            []string
}

func (f *flavor) platform() *Platform {
	p := &Platform{
		flavor:              f,
		maxIdentifierLength: f.maxIdentifierLength,
		types:               maps.Clone(f.types),
		reserved:            make(map[string]struct{}, len(commonReserved)+len(f.reserved)),
		logger:              slog.Default(),
	}
	for _, w := range commonReserved {
		p.reserved[w] = struct{}{}
	}
	for _, w := range f.reserved {
		p.reserved[w] = struct{}{}
	}
	return p
}

var flavors = map[string]*flavor{
	Generic:  genericFlavor,
	MySQL:    mysqlFlavor,
	Postgres: postgresFlavor,
	SQLite:   sqliteFlavor,
}

// commonReserved are SQL-92 words reserved by every dialect.
var commonReserved = []string{
	"ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CHECK",
	"COLUMN", "CONSTRAINT", "CREATE", "CROSS", "DEFAULT", "DELETE", "DESC", "DISTINCT",
	"DROP", "ELSE", "END", "EXISTS", "FOREIGN", "FROM", "FULL", "GROUP", "HAVING", "IN",
	"INDEX", "INNER", "INSERT", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE", "LIMIT",
	"NOT", "NULL", "ON", "OR", "ORDER", "OUTER", "PRIMARY", "REFERENCES", "RIGHT",
	"SELECT", "SET", "TABLE", "THEN", "TO", "UNION", "UNIQUE", "UPDATE", "USER",
	"USING", "VALUES", "WHEN", "WHERE", "WITH",
}

// baseTypes maps logical types to portable SQL types.
var baseTypes = map[string]string{
	model.TypeChar:          "CHAR",
	model.TypeVarchar:       "VARCHAR",
	model.TypeLongVarchar:   "TEXT",
	model.TypeClob:          "CLOB",
	model.TypeNumeric:       "NUMERIC",
	model.TypeDecimal:       "DECIMAL",
	model.TypeTinyInt:       "TINYINT",
	model.TypeSmallInt:      "SMALLINT",
	model.TypeInteger:       "INTEGER",
	model.TypeBigInt:        "BIGINT",
	model.TypeReal:          "REAL",
	model.TypeFloat:         "FLOAT",
	model.TypeDouble:        "DOUBLE",
	model.TypeBinary:        "BINARY",
	model.TypeVarBinary:     "VARBINARY",
	model.TypeLongVarBinary: "BLOB",
	model.TypeBlob:          "BLOB",
	model.TypeDate:          "DATE",
	model.TypeTime:          "TIME",
	model.TypeTimestamp:     "TIMESTAMP",
	model.TypeDateTime:      "TIMESTAMP",
	model.TypeBoolean:       "BOOLEAN",
	model.TypeBooleanEmu:    "BOOLEAN",
	model.TypeObject:        "BLOB",
	model.TypeArray:         "TEXT",
	model.TypeEnum:          "VARCHAR",
	model.TypeSet:           "VARCHAR",
	model.TypeJSON:          "TEXT",
	model.TypeUUID:          "CHAR",
}

func withTypes(overrides map[string]string) map[string]string {
	m := maps.Clone(baseTypes)
	maps.Copy(m, overrides)
	return m
}

func quoteWith(q string) func(string) string {
	return func(name string) string {
		return q + strings.ReplaceAll(name, q, q+q) + q
	}
}

// quoteText doubles single quotes, the SQL standard escape.
func quoteText(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\x00", `\0`, "\n", `\n`, "\r", `\r`, "\x1a", `\Z`)

var genericFlavor = &flavor{
	name:                Generic,
	maxIdentifierLength: model.DefaultMaxIdentifierLength,
	quoteIdentifier:     quoteWith(`"`),
	quote:               quoteText,
	trueValue:           "1",
	falseValue:          "0",
	types:               baseTypes,
	sizeless:            []string{"TEXT", "CLOB", "BLOB", "DATE", "TIME", "TIMESTAMP", "BOOLEAN"},
}

var mysqlFlavor = &flavor{
	name:                MySQL,
	maxIdentifierLength: 64,
	indexSize:           true,
	fkIndices:           true,
	nativeEnum:          true,
	quoteIdentifier:     quoteWith("`"),
	quote:               func(s string) string { return "'" + mysqlEscaper.Replace(s) + "'" },
	trueValue:           "1",
	falseValue:          "0",
	autoIncrement:       "AUTO_INCREMENT",
	types: withTypes(map[string]string{
		model.TypeLongVarchar:   "TEXT",
		model.TypeClob:          "LONGTEXT",
		model.TypeInteger:       "INT",
		model.TypeBinary:        "BLOB",
		model.TypeVarBinary:     "BLOB",
		model.TypeLongVarBinary: "LONGBLOB",
		model.TypeTimestamp:     "DATETIME",
		model.TypeDateTime:      "DATETIME",
		model.TypeBoolean:       "TINYINT",
		model.TypeBooleanEmu:    "TINYINT",
		model.TypeObject:        "LONGBLOB",
		model.TypeJSON:          "JSON",
	}),
	defaultSizes: map[string]int{
		model.TypeChar:     1,
		model.TypeTinyInt:  4,
		model.TypeSmallInt: 6,
		model.TypeInteger:  11,
		model.TypeBigInt:   20,
		model.TypeDecimal:  10,
	},
	sizeless: []string{"TEXT", "LONGTEXT", "BLOB", "LONGBLOB", "DATE", "TIME", "DATETIME", "JSON"},
	reserved: []string{"DATABASE", "DUAL", "INTERVAL", "KEYS", "MATCH", "RANGE", "READ", "RENAME", "SHOW", "STATUS"},
}

var postgresFlavor = &flavor{
	name:                Postgres,
	maxIdentifierLength: 63,
	schemas:             true,
	serial:              true,
	quoteIdentifier:     func(s string) string { return pgx.Identifier{s}.Sanitize() },
	quote:               func(s string) string { return strings.TrimSpace(pq.QuoteLiteral(s)) },
	trueValue:           "true",
	falseValue:          "false",
	types: withTypes(map[string]string{
		model.TypeTinyInt:       "SMALLINT",
		model.TypeDouble:        "DOUBLE PRECISION",
		model.TypeClob:          "TEXT",
		model.TypeBinary:        "BYTEA",
		model.TypeVarBinary:     "BYTEA",
		model.TypeLongVarBinary: "BYTEA",
		model.TypeBlob:          "BYTEA",
		model.TypeObject:        "BYTEA",
		model.TypeJSON:          "JSONB",
		model.TypeUUID:          "UUID",
	}),
	sizeless: []string{"TEXT", "BYTEA", "DOUBLE PRECISION", "DATE", "TIME", "TIMESTAMP", "BOOLEAN", "JSONB", "UUID", "SMALLINT", "INTEGER", "BIGINT", "REAL"},
	reserved: []string{"ANALYSE", "ANALYZE", "ARRAY", "CAST", "CURRENT_USER", "OFFSET", "RETURNING", "SYMMETRIC", "VARIADIC", "WINDOW"},
}

var sqliteFlavor = &flavor{
	name:                SQLite,
	maxIdentifierLength: model.DefaultMaxIdentifierLength,
	quoteIdentifier:     quoteWith(`"`),
	quote:               quoteText,
	trueValue:           "1",
	falseValue:          "0",
	types: withTypes(map[string]string{
		model.TypeClob:       "TEXT",
		model.TypeDateTime:   "DATETIME",
		model.TypeBooleanEmu: "INTEGER",
	}),
	sizeless: []string{"TEXT", "BLOB", "DATE", "TIME", "TIMESTAMP", "DATETIME", "BOOLEAN", "INTEGER"},
	reserved: []string{"ABORT", "AUTOINCREMENT", "CONFLICT", "GLOB", "PRAGMA", "REINDEX", "VACUUM"},
}

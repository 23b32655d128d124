package model

import "github.com/syssam/relgraph/internal/ident"

// Logical column types.
const (
	TypeChar          = "CHAR"
	TypeVarchar       = "VARCHAR"
	TypeLongVarchar   = "LONGVARCHAR"
	TypeClob          = "CLOB"
	TypeNumeric       = "NUMERIC"
	TypeDecimal       = "DECIMAL"
	TypeTinyInt       = "TINYINT"
	TypeSmallInt      = "SMALLINT"
	TypeInteger       = "INTEGER"
	TypeBigInt        = "BIGINT"
	TypeReal          = "REAL"
	TypeFloat         = "FLOAT"
	TypeDouble        = "DOUBLE"
	TypeBinary        = "BINARY"
	TypeVarBinary     = "VARBINARY"
	TypeLongVarBinary = "LONGVARBINARY"
	TypeBlob          = "BLOB"
	TypeDate          = "DATE"
	TypeTime          = "TIME"
	TypeTimestamp     = "TIMESTAMP"
	TypeDateTime      = "DATETIME"
	TypeBoolean       = "BOOLEAN"
	TypeBooleanEmu    = "BOOLEAN_EMU"
	TypeObject        = "OBJECT"
	TypeArray         = "ARRAY"
	TypeEnum          = "ENUM"
	TypeSet           = "SET"
	TypeJSON          = "JSON"
	TypeUUID          = "UUID"
)

var (
	textTypes = set(TypeChar, TypeVarchar, TypeLongVarchar, TypeClob,
		TypeDate, TypeTime, TypeTimestamp, TypeDateTime, TypeJSON)
	numericTypes = set(TypeSmallInt, TypeTinyInt, TypeInteger, TypeBigInt,
		TypeFloat, TypeDouble, TypeNumeric, TypeDecimal, TypeReal)
	temporalTypes = set(TypeDate, TypeTime, TypeTimestamp, TypeDateTime)
	lobTypes      = set(TypeVarBinary, TypeLongVarBinary, TypeBlob, TypeClob, TypeObject)
	booleanTypes  = set(TypeBoolean, TypeBooleanEmu)
	allTypes      = set(TypeChar, TypeVarchar, TypeLongVarchar, TypeClob, TypeNumeric,
		TypeDecimal, TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt, TypeReal,
		TypeFloat, TypeDouble, TypeBinary, TypeVarBinary, TypeLongVarBinary, TypeBlob,
		TypeDate, TypeTime, TypeTimestamp, TypeDateTime, TypeBoolean, TypeBooleanEmu,
		TypeObject, TypeArray, TypeEnum, TypeSet, TypeJSON, TypeUUID)
)

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func inSet(m map[string]struct{}, typ string) bool {
	_, ok := m[ident.Upper(typ)]
	return ok
}

// IsValidType reports whether typ is one of the known logical types.
func IsValidType(typ string) bool { return inSet(allTypes, typ) }

// IsTextType reports whether values of typ are rendered as quoted text.
// Temporal types count as text.
func IsTextType(typ string) bool { return inSet(textTypes, typ) }

// IsNumericType reports whether typ is numeric.
func IsNumericType(typ string) bool { return inSet(numericTypes, typ) }

// IsTemporalType reports whether typ is a date or time type.
func IsTemporalType(typ string) bool { return inSet(temporalTypes, typ) }

// IsLobType reports whether typ is a large object type.
func IsLobType(typ string) bool { return inSet(lobTypes, typ) }

// IsBooleanType reports whether typ is a boolean type.
func IsBooleanType(typ string) bool { return inSet(booleanTypes, typ) }

package domain

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the native field type kinds.
type TypeKind int

// Native type kinds, roughly the Hive surface type set.
const (
	TypeBoolean TypeKind = iota
	TypeTinyInt
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeString
	TypeVarchar
	TypeChar
	TypeBinary
	TypeDate
	TypeTime
	TypeTimestamp
)

var typeKindNames = map[TypeKind]string{
	TypeBoolean:   "BOOLEAN",
	TypeTinyInt:   "TINYINT",
	TypeSmallInt:  "SMALLINT",
	TypeInt:       "INT",
	TypeBigInt:    "BIGINT",
	TypeFloat:     "FLOAT",
	TypeDouble:    "DOUBLE",
	TypeDecimal:   "DECIMAL",
	TypeString:    "STRING",
	TypeVarchar:   "VARCHAR",
	TypeChar:      "CHAR",
	TypeBinary:    "BINARY",
	TypeDate:      "DATE",
	TypeTime:      "TIME",
	TypeTimestamp: "TIMESTAMP",
}

// ParseTypeKind resolves a type kind by its SQL name (case-insensitive).
func ParseTypeKind(name string) (TypeKind, bool) {
	for kind, kindName := range typeKindNames {
		if strings.EqualFold(kindName, name) {
			return kind, true
		}
	}
	return 0, false
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// FieldType is a native column type. Size and Scale are only meaningful for
// parameterized kinds (VARCHAR, CHAR, DECIMAL).
type FieldType struct {
	Kind  TypeKind
	Size  int
	Scale int
}

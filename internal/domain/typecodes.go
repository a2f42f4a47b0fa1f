package domain

// Remote column type codes, as reported by the metadata service. These are
// the standard SQL/ODBC type code space shared by the remote adapter and
// the type bridge.
const (
	TypeCodeBit           = -7
	TypeCodeTinyInt       = -6
	TypeCodeBigInt        = -5
	TypeCodeLongVarBinary = -4
	TypeCodeVarBinary     = -3
	TypeCodeBinary        = -2
	TypeCodeLongVarchar   = -1
	TypeCodeChar          = 1
	TypeCodeNumeric       = 2
	TypeCodeDecimal       = 3
	TypeCodeInteger       = 4
	TypeCodeSmallInt      = 5
	TypeCodeFloat         = 6
	TypeCodeReal          = 7
	TypeCodeDouble        = 8
	TypeCodeVarchar       = 12
	TypeCodeBoolean       = 16
	TypeCodeDate          = 91
	TypeCodeTime          = 92
	TypeCodeTimestamp     = 93
	TypeCodeOther         = 1111
)

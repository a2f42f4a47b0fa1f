package hive

import (
	"fmt"

	"hive-bridge/internal/domain"
)

// MapColumnType maps a remote column descriptor (numeric type code, size,
// scale, signedness) to a native field type. Unsigned integer types promote
// to the next wider native type so the full value range remains
// representable. Codes without a mapping fail with UnsupportedColumnTypeError.
func MapColumnType(code, size, scale int, signed bool) (domain.FieldType, error) {
	switch code {
	case domain.TypeCodeBit, domain.TypeCodeBoolean:
		return domain.FieldType{Kind: domain.TypeBoolean}, nil
	case domain.TypeCodeTinyInt:
		if !signed {
			return domain.FieldType{Kind: domain.TypeSmallInt}, nil
		}
		return domain.FieldType{Kind: domain.TypeTinyInt}, nil
	case domain.TypeCodeSmallInt:
		if !signed {
			return domain.FieldType{Kind: domain.TypeInt}, nil
		}
		return domain.FieldType{Kind: domain.TypeSmallInt}, nil
	case domain.TypeCodeInteger:
		if !signed {
			return domain.FieldType{Kind: domain.TypeBigInt}, nil
		}
		return domain.FieldType{Kind: domain.TypeInt}, nil
	case domain.TypeCodeBigInt:
		if !signed {
			// Unsigned 64-bit values need DECIMAL(20,0) headroom.
			return domain.FieldType{Kind: domain.TypeDecimal, Size: 20}, nil
		}
		return domain.FieldType{Kind: domain.TypeBigInt}, nil
	case domain.TypeCodeReal:
		return domain.FieldType{Kind: domain.TypeFloat}, nil
	case domain.TypeCodeFloat, domain.TypeCodeDouble:
		return domain.FieldType{Kind: domain.TypeDouble}, nil
	case domain.TypeCodeNumeric, domain.TypeCodeDecimal:
		return domain.FieldType{Kind: domain.TypeDecimal, Size: size, Scale: scale}, nil
	case domain.TypeCodeChar:
		return domain.FieldType{Kind: domain.TypeChar, Size: size}, nil
	case domain.TypeCodeVarchar:
		return domain.FieldType{Kind: domain.TypeVarchar, Size: size}, nil
	case domain.TypeCodeLongVarchar:
		return domain.FieldType{Kind: domain.TypeString}, nil
	case domain.TypeCodeBinary, domain.TypeCodeVarBinary, domain.TypeCodeLongVarBinary:
		return domain.FieldType{Kind: domain.TypeBinary}, nil
	case domain.TypeCodeDate:
		return domain.FieldType{Kind: domain.TypeDate}, nil
	case domain.TypeCodeTime:
		return domain.FieldType{Kind: domain.TypeTime}, nil
	case domain.TypeCodeTimestamp:
		return domain.FieldType{Kind: domain.TypeTimestamp}, nil
	default:
		return domain.FieldType{}, &domain.UnsupportedColumnTypeError{TypeCode: code}
	}
}

// RenderTypeName renders the declared SQL type name for a native field type,
// including size/scale parameters where the kind carries them.
func RenderTypeName(ft domain.FieldType) string {
	switch ft.Kind {
	case domain.TypeDecimal:
		if ft.Size > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", ft.Size, ft.Scale)
		}
		return "DECIMAL"
	case domain.TypeVarchar:
		if ft.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", ft.Size)
		}
		return "STRING"
	case domain.TypeChar:
		if ft.Size > 0 {
			return fmt.Sprintf("CHAR(%d)", ft.Size)
		}
		return "CHAR"
	default:
		return ft.Kind.String()
	}
}

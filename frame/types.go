package frame

import (
	"encoding/json"
	"time"
)

// ColumnType is a declared column type on the table service.
type ColumnType string

const (
	// TypeText holds free-form text. It is also the fallback for any value
	// kind the service does not recognize.
	TypeText ColumnType = "Text"
	// TypeNumeric holds integer or floating point numbers.
	TypeNumeric ColumnType = "Numeric"
	// TypeBool holds booleans.
	TypeBool ColumnType = "Bool"
	// TypeDate holds timestamps.
	TypeDate ColumnType = "Date"
)

// Infer maps a native value kind to a column type. Unrecognized kinds
// default to Text.
func Infer(v any) ColumnType {
	switch v.(type) {
	case bool:
		return TypeBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return TypeNumeric
	case time.Time:
		return TypeDate
	default:
		return TypeText
	}
}

// ColumnType infers the type of a column from its first non-null value.
// Mixed-type columns deliberately infer from that single sample; columns
// with no non-null value infer Text.
func (f *Frame) ColumnType(name string) ColumnType {
	vals, ok := f.cols[name]
	if !ok {
		return TypeText
	}
	for _, v := range vals {
		if Normalize(v) != nil {
			return Infer(v)
		}
	}
	return TypeText
}

// Schema infers a column name to column type mapping for the whole frame.
func (f *Frame) Schema() map[string]ColumnType {
	schema := make(map[string]ColumnType, f.NumCols())
	for _, name := range f.order {
		schema[name] = f.ColumnType(name)
	}
	return schema
}

package frame

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToArrow converts the frame to an Arrow record. Column types follow the
// frame's inferred schema: Numeric becomes float64, Bool becomes boolean,
// Date becomes a millisecond timestamp, Text becomes string. The caller
// must Release the returned record.
func (f *Frame) ToArrow() (arrow.Record, error) {
	fields := make([]arrow.Field, 0, f.NumCols())
	for _, name := range f.order {
		fields = append(fields, arrow.Field{
			Name:     name,
			Type:     arrowType(f.ColumnType(name)),
			Nullable: true,
		})
	}
	schema := arrow.NewSchema(fields, nil)

	mem := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, name := range f.order {
		vals := f.cols[name]
		if err := appendColumn(builder.Field(i), f.ColumnType(name), vals); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
	}

	return builder.NewRecord(), nil
}

// FromArrow converts an Arrow record to a frame. Unsupported column types
// are carried over as their string representation.
func FromArrow(rec arrow.Record) (*Frame, error) {
	f := New()

	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.Schema().Field(i).Name
		vals, err := columnValues(rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if err := f.SetColumn(name, vals); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func arrowType(t ColumnType) arrow.DataType {
	switch t {
	case TypeNumeric:
		return arrow.PrimitiveTypes.Float64
	case TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case TypeDate:
		return arrow.FixedWidthTypes.Timestamp_ms
	default:
		return arrow.BinaryTypes.String
	}
}

func appendColumn(b array.Builder, t ColumnType, vals []any) error {
	for _, raw := range vals {
		v := Normalize(raw)
		if v == nil {
			b.AppendNull()
			continue
		}

		switch t {
		case TypeNumeric:
			num, err := toFloat64(v)
			if err != nil {
				return err
			}
			b.(*array.Float64Builder).Append(num)
		case TypeBool:
			bv, ok := v.(bool)
			if !ok {
				return fmt.Errorf("expected bool, got %T", v)
			}
			b.(*array.BooleanBuilder).Append(bv)
		case TypeDate:
			tv, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("expected time.Time, got %T", v)
			}
			b.(*array.TimestampBuilder).Append(arrow.Timestamp(tv.UnixMilli()))
		default:
			b.(*array.StringBuilder).Append(fmt.Sprintf("%v", v))
		}
	}
	return nil
}

func columnValues(col arrow.Array) ([]any, error) {
	vals := make([]any, col.Len())

	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			vals[i] = nil
			continue
		}

		switch c := col.(type) {
		case *array.Float64:
			vals[i] = c.Value(i)
		case *array.Int64:
			vals[i] = float64(c.Value(i))
		case *array.Boolean:
			vals[i] = c.Value(i)
		case *array.String:
			vals[i] = c.Value(i)
		case *array.Timestamp:
			unit := c.DataType().(*arrow.TimestampType).Unit
			vals[i] = c.Value(i).ToTime(unit).UTC()
		default:
			vals[i] = col.ValueStr(i)
		}
	}

	return vals, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

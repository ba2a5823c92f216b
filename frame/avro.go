package frame

import (
	"fmt"
	"io"
	"time"

	"github.com/linkedin/goavro/v2"
)

// avroSchemaSnapshot is the Avro schema for frame snapshot files. A snapshot
// carries the column definitions plus one value map per row so that column
// names stay free-form. Numeric values are stored as double, Date values as
// epoch milliseconds.
const avroSchemaSnapshot = `{
  "type": "record",
  "name": "frame_snapshot",
  "namespace": "keyward.frame",
  "fields": [
    {"name": "columns", "type": {
      "type": "array",
      "items": {
        "type": "record",
        "name": "column_def",
        "fields": [
          {"name": "name", "type": "string"},
          {"name": "type", "type": "string"}
        ]
      }
    }},
    {"name": "rows", "type": {
      "type": "array",
      "items": {"type": "map", "values": ["null", "string", "double", "boolean", "long"]}
    }}
  ]
}`

// WriteAvro encodes the frame as an Avro object container file.
func WriteAvro(w io.Writer, f *Frame) error {
	codec, err := goavro.NewCodec(avroSchemaSnapshot)
	if err != nil {
		return fmt.Errorf("failed to create avro codec: %w", err)
	}

	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           codec,
		CompressionName: "deflate",
	})
	if err != nil {
		return fmt.Errorf("failed to create OCF writer: %w", err)
	}

	columns := make([]any, 0, f.NumCols())
	for _, name := range f.Columns() {
		columns = append(columns, map[string]any{
			"name": name,
			"type": string(f.ColumnType(name)),
		})
	}

	rows := make([]any, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		row := make(map[string]any, f.NumCols())
		for _, name := range f.Columns() {
			v, err := toAvroValue(Normalize(f.Value(name, i)), f.ColumnType(name))
			if err != nil {
				return fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			row[name] = v
		}
		rows = append(rows, row)
	}

	record := map[string]any{
		"columns": columns,
		"rows":    rows,
	}

	return ocf.Append([]any{record})
}

// ReadAvro decodes a frame from an Avro object container file written by
// WriteAvro.
func ReadAvro(r io.Reader) (*Frame, error) {
	ocf, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCF reader: %w", err)
	}

	if !ocf.Scan() {
		return nil, fmt.Errorf("snapshot file holds no frame record")
	}

	datum, err := ocf.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot record: %w", err)
	}

	record, ok := datum.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected snapshot record type %T", datum)
	}

	defs, _ := record["columns"].([]any)
	rawRows, _ := record["rows"].([]any)

	names := make([]string, 0, len(defs))
	types := make(map[string]ColumnType, len(defs))
	for _, d := range defs {
		def, ok := d.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected column definition type %T", d)
		}
		name, _ := def["name"].(string)
		typeName, _ := def["type"].(string)
		names = append(names, name)
		types[name] = ColumnType(typeName)
	}

	f := New()
	for _, name := range names {
		vals := make([]any, len(rawRows))
		for i, raw := range rawRows {
			row, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("unexpected row type %T", raw)
			}
			v, err := fromAvroValue(row[name], types[name])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			vals[i] = v
		}
		if err := f.SetColumn(name, vals); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func toAvroValue(v any, t ColumnType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case TypeNumeric:
		num, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return goavro.Union("double", num), nil
	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return goavro.Union("boolean", b), nil
	case TypeDate:
		tv, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time, got %T", v)
		}
		return goavro.Union("long", tv.UnixMilli()), nil
	default:
		return goavro.Union("string", fmt.Sprintf("%v", v)), nil
	}
}

func fromAvroValue(v any, t ColumnType) (any, error) {
	if v == nil {
		return nil, nil
	}

	union, ok := v.(map[string]any)
	if !ok || len(union) != 1 {
		return nil, fmt.Errorf("unexpected union value %T", v)
	}

	for branch, val := range union {
		switch branch {
		case "double", "string", "boolean":
			return val, nil
		case "long":
			n, ok := val.(int64)
			if !ok {
				return nil, fmt.Errorf("unexpected long value %T", val)
			}
			if t == TypeDate {
				return time.UnixMilli(n).UTC(), nil
			}
			return n, nil
		}
	}

	return nil, fmt.Errorf("empty union value")
}

// Package frame provides an in-memory columnar table used as the exchange
// format between callers and the remote table service.
package frame

import (
	"fmt"
	"math"
	"sort"
)

// Frame is a columnar snapshot: named columns holding equal-length value
// sequences. Values are scalars (string, number, bool, time.Time) or nil.
type Frame struct {
	order []string
	cols  map[string][]any
}

// New creates an empty frame.
func New() *Frame {
	return &Frame{
		cols: make(map[string][]any),
	}
}

// FromColumns creates a frame from a column map. Column order is
// lexicographic since map iteration order is undefined. All columns must
// have equal length.
func FromColumns(cols map[string][]any) (*Frame, error) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	f := New()
	for _, name := range names {
		if err := f.SetColumn(name, cols[name]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SetColumn adds or replaces a column. A new column must match the frame's
// current row count unless the frame has no columns yet.
func (f *Frame) SetColumn(name string, values []any) error {
	if _, exists := f.cols[name]; !exists {
		if len(f.order) > 0 && len(values) != f.NumRows() {
			return fmt.Errorf("column %q has %d values, frame has %d rows", name, len(values), f.NumRows())
		}
		f.order = append(f.order, name)
	} else if len(values) != f.NumRows() {
		return fmt.Errorf("column %q has %d values, frame has %d rows", name, len(values), f.NumRows())
	}
	f.cols[name] = values
	return nil
}

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Column returns the values of a column, or nil when the column does not
// exist.
func (f *Frame) Column(name string) []any {
	return f.cols[name]
}

// Value returns the value at a column and row index, or nil if out of range.
func (f *Frame) Value(name string, row int) any {
	vals, ok := f.cols[name]
	if !ok || row < 0 || row >= len(vals) {
		return nil
	}
	return vals[row]
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	if len(f.order) == 0 {
		return 0
	}
	return len(f.cols[f.order[0]])
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.order)
}

// Empty reports whether the frame has no rows or no columns.
func (f *Frame) Empty() bool {
	return f.NumCols() == 0 || f.NumRows() == 0
}

// Records assembles the frame into per-row records suitable for gateway
// writes. Null-like sentinel values are normalized to an explicit nil
// before assembly.
func (f *Frame) Records() []map[string]any {
	records := make([]map[string]any, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		record := make(map[string]any, f.NumCols())
		for _, name := range f.order {
			record[name] = Normalize(f.cols[name][i])
		}
		records = append(records, record)
	}
	return records
}

// Normalize converts null-like sentinel values to an explicit nil.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(val) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(val)) {
			return nil
		}
	}
	return v
}

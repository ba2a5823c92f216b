// Package gateway defines the remote table gateway contract and its REST
// implementation. The gateway owns table storage, row identifiers, and
// concurrency control; clients of this package only issue single requests
// and interpret the responses.
package gateway

import (
	"context"
)

// Reserved column names managed by the gateway. They appear in every table
// snapshot and are never part of user-facing data.
const (
	ColumnID         = "id"
	ColumnManualSort = "manualSort"
)

// IsSystemColumn reports whether name is a gateway-managed column.
func IsSystemColumn(name string) bool {
	return name == ColumnID || name == ColumnManualSort
}

// Record maps column names to scalar values. A record referring to an
// existing row carries its identifier under the "id" key.
type Record = map[string]any

// Snapshot is a whole-table columnar snapshot: column name to the ordered
// sequence of values for that column. All sequences have equal length. The
// "id" and "manualSort" columns are included.
type Snapshot = map[string][]any

// Gateway is the interface to the remote table service.
type Gateway interface {
	// FetchTable returns the full columnar snapshot of a table.
	FetchTable(ctx context.Context, tableID string) (Snapshot, error)

	// Create inserts rows and returns the assigned row identifiers in
	// input order.
	Create(ctx context.Context, tableID string, records []Record) ([]int64, error)

	// Update applies field updates to existing rows. Each record must
	// contain its row identifier under "id".
	Update(ctx context.Context, tableID string, records []Record) error

	// Destroy removes rows by identifier.
	Destroy(ctx context.Context, tableID string, rowIDs []int64) error

	// FetchSelectedRecord returns a single row as a record, or nil if the
	// row does not exist.
	FetchSelectedRecord(ctx context.Context, rowID int64) (Record, error)
}

package tableops

import (
	"context"
	"encoding/json"
	"reflect"

	"go.uber.org/zap"

	"github.com/keyward/keyward-go/gateway"
)

// BulkUpdateRecords applies multiple row updates in one gateway call. Each
// record must carry its row identifier under "id". The result list reflects
// the outcome of the batch call as a whole: all true when it succeeds, all
// false when it fails. Per-row outcomes are not verified individually.
func (s *Service) BulkUpdateRecords(ctx context.Context, tableID string, updates []gateway.Record) []bool {
	results := make([]bool, len(updates))

	if err := s.gw.Update(ctx, tableID, updates); err != nil {
		s.log.Error("failed to bulk update records",
			zap.String("table", tableID),
			zap.Int("count", len(updates)),
			zap.Error(err))
		return results
	}

	for i := range results {
		results[i] = true
	}
	return results
}

// BulkDeleteRecords deletes multiple rows in one gateway call.
func (s *Service) BulkDeleteRecords(ctx context.Context, tableID string, rowIDs []int64) bool {
	return s.DeleteRows(ctx, tableID, rowIDs)
}

// BulkDeleteWhere deletes every row whose values match all predicate
// columns exactly. The table snapshot is fetched and scanned client-side;
// matching row identifiers are deleted in original row order. Zero matches
// is a success with no delete issued.
func (s *Service) BulkDeleteWhere(ctx context.Context, tableID string, where gateway.Record) bool {
	snap, err := s.gw.FetchTable(ctx, tableID)
	if err != nil {
		s.log.Error("failed to fetch table for conditional delete",
			zap.String("table", tableID),
			zap.Error(err))
		return false
	}

	var rowIDs []int64
	for i, rawID := range snap[gateway.ColumnID] {
		match := true
		for col, want := range where {
			vals, ok := snap[col]
			if !ok || i >= len(vals) {
				match = false
				break
			}
			if !valuesEqual(vals[i], want) {
				match = false
				break
			}
		}

		if !match {
			continue
		}

		id, ok := toRowID(rawID)
		if !ok {
			s.log.Error("snapshot holds malformed row identifier",
				zap.String("table", tableID),
				zap.Int("row", i))
			return false
		}
		rowIDs = append(rowIDs, id)
	}

	if len(rowIDs) > 0 {
		return s.DeleteRows(ctx, tableID, rowIDs)
	}
	return true
}

// valuesEqual reports exact equality between two snapshot values. There is
// no cross-type coercion: a float64 never equals an int64.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// toRowID converts a snapshot identifier value to an int64. JSON-decoded
// snapshots carry numbers as float64.
func toRowID(v any) (int64, bool) {
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	case json.Number:
		n, err := id.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

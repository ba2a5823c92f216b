package tableops

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/keyward/keyward-go/frame"
)

// ExportTable fetches a table and writes its frame as an Avro snapshot to
// the configured blob store under the given key. It follows the same
// failure policy as every other operation: a boolean result, with the
// cause logged.
func (s *Service) ExportTable(ctx context.Context, tableID, key string) bool {
	if s.store == nil {
		s.log.Error("no blob store configured for export",
			zap.String("table", tableID))
		return false
	}

	f, err := s.fetchFrame(ctx, tableID)
	if err != nil {
		s.log.Error("failed to fetch table for export",
			zap.String("table", tableID),
			zap.Error(err))
		return false
	}

	var buf bytes.Buffer
	if err := frame.WriteAvro(&buf, f); err != nil {
		s.log.Error("failed to encode table snapshot",
			zap.String("table", tableID),
			zap.Error(err))
		return false
	}

	if err := s.store.Put(ctx, key, buf.Bytes()); err != nil {
		s.log.Error("failed to store table snapshot",
			zap.String("table", tableID),
			zap.String("key", key),
			zap.Error(err))
		return false
	}

	s.log.Info("exported table snapshot",
		zap.String("table", tableID),
		zap.String("key", key),
		zap.Int("rows", f.NumRows()))
	return true
}

// Package tableops implements table-level operations against a remote table
// gateway: table creation, record CRUD, bulk operations, and multi-table
// merges.
//
// The service is stateless between calls and never lets a gateway failure
// escape to the caller: every operation logs the failure and reports it
// through the benign zero value of its declared return shape.
package tableops

import (
	"context"

	"go.uber.org/zap"

	"github.com/keyward/keyward-go/frame"
	"github.com/keyward/keyward-go/gateway"
	"github.com/keyward/keyward-go/storage"
)

// Service exposes table operations over a gateway.
type Service struct {
	gw    gateway.Gateway
	store storage.BlobStore
	log   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for failure reporting.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithBlobStore sets the blob store used for table exports.
func WithBlobStore(store storage.BlobStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// NewService creates a new Service bound to a gateway.
func NewService(gw gateway.Gateway, opts ...Option) *Service {
	s := &Service{
		gw:  gw,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTable creates a table with the given column schema. The gateway
// declares a schema implicitly on row insertion, so creation inserts one
// throwaway row matching the schema and deletes it again.
func (s *Service) CreateTable(ctx context.Context, tableID string, columns map[string]frame.ColumnType) bool {
	if err := s.createTable(ctx, tableID, columns); err != nil {
		s.log.Error("failed to create table",
			zap.String("table", tableID),
			zap.Error(err))
		return false
	}

	s.log.Info("created table",
		zap.String("table", tableID),
		zap.Int("columns", len(columns)))
	return true
}

// createTable runs the throwaway-row creation sequence.
func (s *Service) createTable(ctx context.Context, tableID string, columns map[string]frame.ColumnType) error {
	throwaway := make(gateway.Record, len(columns))
	for name, colType := range columns {
		if colType == frame.TypeText {
			throwaway[name] = ""
		} else {
			throwaway[name] = 0
		}
	}

	ids, err := s.gw.Create(ctx, tableID, []gateway.Record{throwaway})
	if err != nil {
		return err
	}

	if len(ids) > 0 {
		if err := s.gw.Destroy(ctx, tableID, ids[:1]); err != nil {
			return err
		}
	}

	return nil
}

// AddData inserts records into a table and returns the newly assigned row
// identifiers, or nil on failure.
func (s *Service) AddData(ctx context.Context, tableID string, records []gateway.Record) []int64 {
	ids, err := s.gw.Create(ctx, tableID, records)
	if err != nil {
		s.log.Error("failed to add records",
			zap.String("table", tableID),
			zap.Error(err))
		return nil
	}

	s.log.Info("added records",
		zap.String("table", tableID),
		zap.Int("count", len(ids)))
	return ids
}

// FetchTableToFrame fetches the full table snapshot as a frame, with the
// system-managed columns stripped. On failure it returns an empty frame.
func (s *Service) FetchTableToFrame(ctx context.Context, tableID string) *frame.Frame {
	f, err := s.fetchFrame(ctx, tableID)
	if err != nil {
		s.log.Error("failed to fetch table",
			zap.String("table", tableID),
			zap.Error(err))
		return frame.New()
	}
	return f
}

// fetchFrame fetches a snapshot and converts it, dropping system columns.
func (s *Service) fetchFrame(ctx context.Context, tableID string) (*frame.Frame, error) {
	snap, err := s.gw.FetchTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]any, len(snap))
	for name, vals := range snap {
		if gateway.IsSystemColumn(name) {
			continue
		}
		cols[name] = vals
	}

	return frame.FromColumns(cols)
}

// UpdateRow updates a single row's fields.
func (s *Service) UpdateRow(ctx context.Context, tableID string, rowID int64, updates gateway.Record) bool {
	record := make(gateway.Record, len(updates)+1)
	record[gateway.ColumnID] = rowID
	for name, v := range updates {
		record[name] = v
	}

	if err := s.gw.Update(ctx, tableID, []gateway.Record{record}); err != nil {
		s.log.Error("failed to update row",
			zap.String("table", tableID),
			zap.Int64("row", rowID),
			zap.Error(err))
		return false
	}
	return true
}

// DeleteRows deletes rows by identifier.
func (s *Service) DeleteRows(ctx context.Context, tableID string, rowIDs []int64) bool {
	if err := s.gw.Destroy(ctx, tableID, rowIDs); err != nil {
		s.log.Error("failed to delete rows",
			zap.String("table", tableID),
			zap.Int("count", len(rowIDs)),
			zap.Error(err))
		return false
	}
	return true
}

// CreateTableFromFrame creates a table whose schema is inferred from the
// frame's columns, then populates it with the frame's rows. It returns the
// table identifier on success, or the empty string on failure. An empty
// frame fails without contacting the gateway.
func (s *Service) CreateTableFromFrame(ctx context.Context, tableID string, f *frame.Frame) string {
	if f == nil || f.Empty() {
		return ""
	}

	if !s.CreateTable(ctx, tableID, f.Schema()) {
		return ""
	}

	if s.AddData(ctx, tableID, f.Records()) == nil {
		return ""
	}

	return tableID
}

// GetAttachmentURL returns the URL of an attachment stored in a row's
// column, or the empty string when the row, column, or URL is missing.
func (s *Service) GetAttachmentURL(ctx context.Context, tableID, columnName string, rowID int64) string {
	record, err := s.gw.FetchSelectedRecord(ctx, rowID)
	if err != nil {
		s.log.Error("failed to fetch record",
			zap.String("table", tableID),
			zap.Int64("row", rowID),
			zap.Error(err))
		return ""
	}

	if record == nil {
		return ""
	}

	attachment, ok := record[columnName].(map[string]any)
	if !ok {
		return ""
	}

	url, _ := attachment["url"].(string)
	return url
}

// Package keyward provides a simple, idiomatic Go client for remote grid
// table services.
package keyward

import (
	"context"
	"fmt"

	"github.com/keyward/keyward-go/frame"
	"github.com/keyward/keyward-go/gateway"
	"github.com/keyward/keyward-go/storage"
	"github.com/keyward/keyward-go/tableops"
)

// Client is the main entry point for keyward operations. Every method
// mirrors a table service operation one to one and shares its failure
// policy: failures are logged and reported through the return value, never
// raised.
type Client struct {
	gw     gateway.Gateway
	ops    *tableops.Service
	config *Config
}

// NewClient creates a new keyward client with the given configuration.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gw, err := createGateway(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	store, err := createStorage(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	svcOpts := []tableops.Option{
		tableops.WithLogger(config.Logger),
	}
	if store != nil {
		svcOpts = append(svcOpts, tableops.WithBlobStore(store))
	}

	return &Client{
		gw:     gw,
		ops:    tableops.NewService(gw, svcOpts...),
		config: config,
	}, nil
}

// validateConfig validates the client configuration.
func validateConfig(config *Config) error {
	if config.Gateway == nil && config.GatewayURI == "" {
		return fmt.Errorf("%w: a gateway URI or a custom gateway is required", ErrGatewayNotConfigured)
	}
	if config.StorageType == StorageS3 && config.S3Config == nil {
		return fmt.Errorf("%w: S3 storage requires an S3 config", ErrInvalidConfig)
	}
	return nil
}

// createGateway creates a gateway based on the configuration.
func createGateway(config *Config) (gateway.Gateway, error) {
	if config.Gateway != nil {
		return config.Gateway, nil
	}

	opts := []gateway.RESTGatewayOption{
		gateway.WithTimeout(config.Timeout),
	}
	if config.Token != "" {
		opts = append(opts, gateway.WithToken(config.Token))
	}

	return gateway.NewRESTGateway(config.GatewayURI, opts...)
}

// createStorage creates a blob store based on the configuration.
func createStorage(ctx context.Context, config *Config) (storage.BlobStore, error) {
	switch config.StorageType {
	case StorageLocal:
		return storage.NewLocal(config.LocalPath), nil
	case StorageS3:
		return storage.NewS3(ctx, config.S3Config)
	default:
		return nil, nil
	}
}

// Config returns the client configuration.
func (c *Client) Config() *Config {
	return c.config
}

// Gateway returns the underlying gateway for advanced operations.
func (c *Client) Gateway() gateway.Gateway {
	return c.gw
}

// Service returns the underlying table operations service.
func (c *Client) Service() *tableops.Service {
	return c.ops
}

// CreateTable creates a table with the given column schema.
func (c *Client) CreateTable(ctx context.Context, tableID string, columns map[string]frame.ColumnType) bool {
	return c.ops.CreateTable(ctx, tableID, columns)
}

// AddRecord adds a single record to a table and returns the assigned row
// identifiers, or nil on failure.
func (c *Client) AddRecord(ctx context.Context, tableID string, record gateway.Record) []int64 {
	return c.ops.AddData(ctx, tableID, []gateway.Record{record})
}

// AddRecords adds multiple records to a table and returns the assigned row
// identifiers, or nil on failure.
func (c *Client) AddRecords(ctx context.Context, tableID string, records []gateway.Record) []int64 {
	return c.ops.AddData(ctx, tableID, records)
}

// GetTable fetches a table as a frame, system columns stripped. On failure
// it returns an empty frame.
func (c *Client) GetTable(ctx context.Context, tableID string) *frame.Frame {
	return c.ops.FetchTableToFrame(ctx, tableID)
}

// UpdateRecord updates a single row's fields.
func (c *Client) UpdateRecord(ctx context.Context, tableID string, rowID int64, updates gateway.Record) bool {
	return c.ops.UpdateRow(ctx, tableID, rowID, updates)
}

// DeleteRecord deletes a single row.
func (c *Client) DeleteRecord(ctx context.Context, tableID string, rowID int64) bool {
	return c.ops.DeleteRows(ctx, tableID, []int64{rowID})
}

// MergeTables appends the rows of every source table into the target.
func (c *Client) MergeTables(ctx context.Context, sources []string, target string, createNew bool) bool {
	return c.ops.MergeTables(ctx, sources, target, createNew)
}

// MergeTablesStrict merges sources using only their common columns.
func (c *Client) MergeTablesStrict(ctx context.Context, sources []string, target string, createNew bool) bool {
	return c.ops.MergeTablesStrict(ctx, sources, target, createNew)
}

// BulkMergeTables runs merge configurations sequentially, stopping at the
// first failure.
func (c *Client) BulkMergeTables(ctx context.Context, configs []tableops.MergeConfig) bool {
	return c.ops.BulkMergeTables(ctx, configs)
}

// CreateFromFrame creates a table from a frame and populates it. It
// returns the table identifier on success, or the empty string on failure.
func (c *Client) CreateFromFrame(ctx context.Context, tableID string, f *frame.Frame) string {
	return c.ops.CreateTableFromFrame(ctx, tableID, f)
}

// BulkUpdateRecords applies multiple row updates in one call.
func (c *Client) BulkUpdateRecords(ctx context.Context, tableID string, updates []gateway.Record) []bool {
	return c.ops.BulkUpdateRecords(ctx, tableID, updates)
}

// BulkDeleteRecords deletes multiple rows in one call.
func (c *Client) BulkDeleteRecords(ctx context.Context, tableID string, rowIDs []int64) bool {
	return c.ops.BulkDeleteRecords(ctx, tableID, rowIDs)
}

// BulkDeleteWhere deletes every row matching all predicate columns exactly.
func (c *Client) BulkDeleteWhere(ctx context.Context, tableID string, where gateway.Record) bool {
	return c.ops.BulkDeleteWhere(ctx, tableID, where)
}

// GetAttachmentURL returns the URL of an attachment stored in a row's
// column, or the empty string when missing.
func (c *Client) GetAttachmentURL(ctx context.Context, tableID, columnName string, rowID int64) string {
	return c.ops.GetAttachmentURL(ctx, tableID, columnName, rowID)
}

// ExportTable writes a table's frame as an Avro snapshot to the configured
// storage backend.
func (c *Client) ExportTable(ctx context.Context, tableID, key string) bool {
	return c.ops.ExportTable(ctx, tableID, key)
}

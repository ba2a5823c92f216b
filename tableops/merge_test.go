package tableops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-go/gateway"
)

func seedTable(t *testing.T, gw *fakeGateway, tableID string, records []gateway.Record) {
	t.Helper()
	_, err := gw.Create(context.Background(), tableID, records)
	require.NoError(t, err)
	gw.calls = nil
}

func TestMergeTablesIntoTarget(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{
		{"x": 1.0, "y": "a"},
		{"x": 2.0, "y": "b"},
	})
	seedTable(t, gw, "B", []gateway.Record{
		{"x": 3.0, "z": true},
	})
	seedTable(t, gw, "Target", nil)
	svc := NewService(gw)

	ok := svc.MergeTables(context.Background(), []string{"A", "B"}, "Target", false)
	require.True(t, ok)

	// Rows arrive in source order, each keeping its own column set.
	assert.Equal(t, []any{1.0, 2.0, 3.0}, gw.rowValues("Target", "x"))
	assert.Equal(t, []any{"a", "b", nil}, gw.rowValues("Target", "y"))
	assert.Equal(t, []any{nil, nil, true}, gw.rowValues("Target", "z"))
}

func TestMergeTablesEmptyTarget(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0}})
	seedTable(t, gw, "B", []gateway.Record{{"x": 2.0}})
	svc := NewService(gw)

	ok := svc.MergeTables(context.Background(), []string{"A", "B"}, "", false)
	require.True(t, ok)

	// The first source becomes the target and is not copied onto itself.
	assert.Equal(t, []any{1.0, 2.0}, gw.rowValues("A", "x"))
	assert.Equal(t, []any{2.0}, gw.rowValues("B", "x"))
}

func TestMergeTablesEmptyTargetCreateNew(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "S1", []gateway.Record{{"x": 1.0}})
	seedTable(t, gw, "S2", []gateway.Record{{"x": 2.0}})
	svc := NewService(gw)

	ok := svc.MergeTables(context.Background(), []string{"S1", "S2"}, "", true)
	require.True(t, ok)

	// S1 becomes the target: its own rows stay put and only S2's rows are
	// appended.
	assert.Equal(t, []any{1.0, 2.0}, gw.rowValues("S1", "x"))
	assert.Equal(t, []any{2.0}, gw.rowValues("S2", "x"))
}

func TestMergeTablesCreateNew(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0, "y": "a"}})
	svc := NewService(gw)

	ok := svc.MergeTables(context.Background(), []string{"A"}, "Fresh", true)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, gw.columnNames("Fresh"))
	assert.Equal(t, []any{1.0}, gw.rowValues("Fresh", "x"))
}

func TestMergeTablesNoSources(t *testing.T) {
	gw := newFakeGateway()
	svc := NewService(gw)

	assert.False(t, svc.MergeTables(context.Background(), nil, "Target", false))
	assert.Empty(t, gw.calls)
}

func TestMergeTablesFetchFailure(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0}})
	gw.failFetch = true
	svc := NewService(gw)

	assert.False(t, svc.MergeTables(context.Background(), []string{"A"}, "Target", false))
}

func TestMergeTablesStrict(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{
		{"x": 1.0, "y": "a"},
	})
	seedTable(t, gw, "B", []gateway.Record{
		{"x": 2.0, "z": true},
	})
	seedTable(t, gw, "Target", nil)
	svc := NewService(gw)

	ok := svc.MergeTablesStrict(context.Background(), []string{"A", "B"}, "Target", false)
	require.True(t, ok)

	// Only the shared column survives the strict merge.
	assert.Equal(t, []string{"x"}, gw.columnNames("Target"))
	assert.Equal(t, []any{1.0, 2.0}, gw.rowValues("Target", "x"))
}

func TestMergeTablesStrictDisjointColumns(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"y": "a"}})
	seedTable(t, gw, "B", []gateway.Record{{"z": true}})
	svc := NewService(gw)

	ok := svc.MergeTablesStrict(context.Background(), []string{"A", "B"}, "Target", false)
	assert.False(t, ok)

	// Disjoint sources fail before any write.
	for _, call := range gw.calls {
		assert.NotContains(t, call, "create:")
	}
	assert.NotContains(t, gw.tables, "Target")
}

func TestMergeTablesStrictEmptyTargetIntersection(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0, "y": "a"}})
	seedTable(t, gw, "B", []gateway.Record{{"x": 2.0, "z": true}})
	svc := NewService(gw)

	// With an empty target the first source still participates in the
	// column intersection.
	ok := svc.MergeTablesStrict(context.Background(), []string{"A", "B"}, "", false)
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0}, gw.rowValues("A", "x"))
	assert.Equal(t, []any{"a", nil}, gw.rowValues("A", "y"))
}

func TestBulkMergeTables(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0}})
	seedTable(t, gw, "B", []gateway.Record{{"x": 2.0}})
	seedTable(t, gw, "T1", nil)
	seedTable(t, gw, "T2", nil)
	svc := NewService(gw)

	ok := svc.BulkMergeTables(context.Background(), []MergeConfig{
		{Sources: []string{"A"}, Target: "T1"},
		{Sources: []string{"B"}, Target: "T2", Strict: true},
	})
	require.True(t, ok)
	assert.Equal(t, []any{1.0}, gw.rowValues("T1", "x"))
	assert.Equal(t, []any{2.0}, gw.rowValues("T2", "x"))
}

func TestBulkMergeTablesStopsAtFirstFailure(t *testing.T) {
	gw := newFakeGateway()
	seedTable(t, gw, "A", []gateway.Record{{"x": 1.0}})
	seedTable(t, gw, "T2", nil)
	svc := NewService(gw)

	ok := svc.BulkMergeTables(context.Background(), []MergeConfig{
		{Sources: nil, Target: "T1"},
		{Sources: []string{"A"}, Target: "T2"},
	})
	assert.False(t, ok)
	assert.Empty(t, gw.rowValues("T2", "x"))
}

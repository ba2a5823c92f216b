package tableops

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/keyward/keyward-go/gateway"
)

var errFake = errors.New("gateway unavailable")

// fakeTable stores rows in insertion order, mimicking the columnar store
// behind the gateway.
type fakeTable struct {
	order []int64
	rows  map[int64]gateway.Record
}

// fakeGateway is an in-memory gateway. Tables are created implicitly on
// first insert, matching the schema-on-insert behavior of the real service.
type fakeGateway struct {
	tables  map[string]*fakeTable
	records map[int64]gateway.Record
	nextID  int64
	calls   []string

	failFetch   bool
	failCreate  bool
	failUpdate  bool
	failDestroy bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		tables:  make(map[string]*fakeTable),
		records: make(map[int64]gateway.Record),
	}
}

func (g *fakeGateway) record(call string) {
	g.calls = append(g.calls, call)
}

func (g *fakeGateway) table(tableID string) *fakeTable {
	t, ok := g.tables[tableID]
	if !ok {
		t = &fakeTable{rows: make(map[int64]gateway.Record)}
		g.tables[tableID] = t
	}
	return t
}

func (g *fakeGateway) FetchTable(ctx context.Context, tableID string) (gateway.Snapshot, error) {
	g.record("fetch:" + tableID)
	if g.failFetch {
		return nil, errFake
	}

	t, ok := g.tables[tableID]
	if !ok {
		return nil, &gateway.APIError{StatusCode: 404, Message: "no such table"}
	}

	names := make(map[string]bool)
	for _, row := range t.rows {
		for name := range row {
			names[name] = true
		}
	}

	snap := make(gateway.Snapshot)
	snap[gateway.ColumnID] = make([]any, 0, len(t.order))
	snap[gateway.ColumnManualSort] = make([]any, 0, len(t.order))
	for name := range names {
		snap[name] = make([]any, 0, len(t.order))
	}

	for i, id := range t.order {
		snap[gateway.ColumnID] = append(snap[gateway.ColumnID], id)
		snap[gateway.ColumnManualSort] = append(snap[gateway.ColumnManualSort], int64(i+1))
		for name := range names {
			snap[name] = append(snap[name], t.rows[id][name])
		}
	}

	return snap, nil
}

func (g *fakeGateway) Create(ctx context.Context, tableID string, records []gateway.Record) ([]int64, error) {
	g.record(fmt.Sprintf("create:%s:%d", tableID, len(records)))
	if g.failCreate {
		return nil, errFake
	}

	t := g.table(tableID)
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		g.nextID++
		stored := make(gateway.Record, len(rec))
		for name, v := range rec {
			stored[name] = v
		}
		t.order = append(t.order, g.nextID)
		t.rows[g.nextID] = stored
		ids = append(ids, g.nextID)
	}
	return ids, nil
}

func (g *fakeGateway) Update(ctx context.Context, tableID string, records []gateway.Record) error {
	g.record(fmt.Sprintf("update:%s:%d", tableID, len(records)))
	if g.failUpdate {
		return errFake
	}

	t := g.table(tableID)
	for _, rec := range records {
		id, ok := toRowID(rec[gateway.ColumnID])
		if !ok {
			return fmt.Errorf("update record missing id: %v", rec)
		}
		row, ok := t.rows[id]
		if !ok {
			return &gateway.APIError{StatusCode: 404, Message: "no such row"}
		}
		for name, v := range rec {
			if name == gateway.ColumnID {
				continue
			}
			row[name] = v
		}
	}
	return nil
}

func (g *fakeGateway) Destroy(ctx context.Context, tableID string, rowIDs []int64) error {
	g.record(fmt.Sprintf("destroy:%s:%d", tableID, len(rowIDs)))
	if g.failDestroy {
		return errFake
	}

	t := g.table(tableID)
	for _, id := range rowIDs {
		delete(t.rows, id)
		for i, existing := range t.order {
			if existing == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (g *fakeGateway) FetchSelectedRecord(ctx context.Context, rowID int64) (gateway.Record, error) {
	g.record(fmt.Sprintf("fetchRecord:%d", rowID))
	if g.failFetch {
		return nil, errFake
	}
	return g.records[rowID], nil
}

// rowValues returns one column of a table in row order, for assertions.
func (g *fakeGateway) rowValues(tableID, column string) []any {
	t, ok := g.tables[tableID]
	if !ok {
		return nil
	}
	vals := make([]any, 0, len(t.order))
	for _, id := range t.order {
		vals = append(vals, t.rows[id][column])
	}
	return vals
}

// columnNames returns the sorted set of column names seen in a table.
func (g *fakeGateway) columnNames(tableID string) []string {
	t, ok := g.tables[tableID]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	for _, row := range t.rows {
		for name := range row {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

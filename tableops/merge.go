package tableops

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/keyward/keyward-go/frame"
	"github.com/keyward/keyward-go/gateway"
)

// MergeConfig describes one merge to run as part of BulkMergeTables.
type MergeConfig struct {
	// Sources is the ordered list of source table identifiers.
	Sources []string
	// Target is the target table identifier. When empty, the first source
	// becomes the target and is excluded from the copy loop.
	Target string
	// CreateNew creates the target table before copying, with its schema
	// inferred from the sources.
	CreateNew bool
	// Strict restricts the merge to columns present in every source.
	Strict bool
}

// MergeTables appends the rows of every source table into the target, in
// source order. Each copied row keeps exactly the columns of its
// originating source; sources with different column sets are allowed. When
// target is empty the first source becomes the target and only the
// remaining sources are copied. A gateway failure aborts the remaining
// sources; rows already copied are not rolled back.
func (s *Service) MergeTables(ctx context.Context, sources []string, target string, createNew bool) bool {
	if len(sources) < 1 {
		s.log.Error("merge requires at least one source table")
		return false
	}

	tgt, srcs := resolveTarget(sources, target)

	if createNew && len(srcs) > 0 {
		snap, err := s.gw.FetchTable(ctx, srcs[0])
		if err != nil {
			s.log.Error("failed to fetch schema source for merge",
				zap.String("table", srcs[0]),
				zap.Error(err))
			return false
		}

		columns := make(map[string]frame.ColumnType)
		for name, vals := range snap {
			if gateway.IsSystemColumn(name) {
				continue
			}
			columns[name] = sampleColumnType(vals)
		}

		if err := s.createTable(ctx, tgt, columns); err != nil {
			s.log.Error("failed to create merge target",
				zap.String("table", tgt),
				zap.Error(err))
			return false
		}
	}

	for _, src := range srcs {
		if err := s.copyRows(ctx, src, tgt, nil); err != nil {
			s.log.Error("failed to merge source table",
				zap.String("source", src),
				zap.String("target", tgt),
				zap.Error(err))
			return false
		}
	}

	return true
}

// MergeTablesStrict merges sources using only the columns present in every
// source table. An empty intersection fails before any write. When target
// is empty the first source becomes the target and only the remaining
// sources are copied.
func (s *Service) MergeTablesStrict(ctx context.Context, sources []string, target string, createNew bool) bool {
	if len(sources) < 1 {
		s.log.Error("merge requires at least one source table")
		return false
	}

	tgt, srcs := resolveTarget(sources, target)

	var common map[string]bool
	for _, src := range sources {
		snap, err := s.gw.FetchTable(ctx, src)
		if err != nil {
			s.log.Error("failed to fetch source for strict merge",
				zap.String("table", src),
				zap.Error(err))
			return false
		}

		cols := make(map[string]bool)
		for name := range snap {
			if !gateway.IsSystemColumn(name) {
				cols[name] = true
			}
		}

		if common == nil {
			common = cols
		} else {
			for name := range common {
				if !cols[name] {
					delete(common, name)
				}
			}
		}
	}

	if len(common) == 0 {
		s.log.Error("no common columns across merge sources",
			zap.Strings("sources", sources))
		return false
	}

	commonCols := make([]string, 0, len(common))
	for name := range common {
		commonCols = append(commonCols, name)
	}
	sort.Strings(commonCols)

	if createNew {
		snap, err := s.gw.FetchTable(ctx, sources[0])
		if err != nil {
			s.log.Error("failed to fetch schema source for strict merge",
				zap.String("table", sources[0]),
				zap.Error(err))
			return false
		}

		columns := make(map[string]frame.ColumnType, len(commonCols))
		for _, name := range commonCols {
			columns[name] = sampleColumnType(snap[name])
		}

		if err := s.createTable(ctx, tgt, columns); err != nil {
			s.log.Error("failed to create merge target",
				zap.String("table", tgt),
				zap.Error(err))
			return false
		}
	}

	for _, src := range srcs {
		if err := s.copyRows(ctx, src, tgt, commonCols); err != nil {
			s.log.Error("failed to merge source table",
				zap.String("source", src),
				zap.String("target", tgt),
				zap.Error(err))
			return false
		}
	}

	return true
}

// BulkMergeTables runs merge configurations sequentially, stopping at the
// first failure. Earlier successful merges are not undone.
func (s *Service) BulkMergeTables(ctx context.Context, configs []MergeConfig) bool {
	for _, cfg := range configs {
		var ok bool
		if cfg.Strict {
			ok = s.MergeTablesStrict(ctx, cfg.Sources, cfg.Target, cfg.CreateNew)
		} else {
			ok = s.MergeTables(ctx, cfg.Sources, cfg.Target, cfg.CreateNew)
		}
		if !ok {
			return false
		}
	}
	return true
}

// resolveTarget picks the target table and the sources to copy. An empty
// target selects the first source, which is then excluded from the copy
// loop to avoid appending a table onto itself.
func resolveTarget(sources []string, target string) (string, []string) {
	if target != "" {
		return target, sources
	}
	return sources[0], sources[1:]
}

// copyRows fetches a source snapshot and appends its rows to the target.
// With a nil column filter every non-system column of the source is copied;
// otherwise only the listed columns are.
func (s *Service) copyRows(ctx context.Context, src, tgt string, columns []string) error {
	snap, err := s.gw.FetchTable(ctx, src)
	if err != nil {
		return err
	}

	rowCount := len(snap[gateway.ColumnID])
	records := make([]gateway.Record, 0, rowCount)

	for i := 0; i < rowCount; i++ {
		record := make(gateway.Record)
		if columns == nil {
			for name, vals := range snap {
				if !gateway.IsSystemColumn(name) && i < len(vals) {
					record[name] = vals[i]
				}
			}
		} else {
			for _, name := range columns {
				if vals, ok := snap[name]; ok && i < len(vals) {
					record[name] = vals[i]
				}
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil
	}

	_, err = s.gw.Create(ctx, tgt, records)
	return err
}

// sampleColumnType infers a column type from the first non-null value in a
// snapshot column. Merge schemas only distinguish Numeric, Bool, and Text;
// columns with no non-null sample infer Text.
func sampleColumnType(vals []any) frame.ColumnType {
	for _, v := range vals {
		if v == nil {
			continue
		}
		switch v.(type) {
		case bool:
			return frame.TypeBool
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			return frame.TypeNumeric
		default:
			return frame.TypeText
		}
	}
	return frame.TypeText
}

package engine

import (
	"context"
	"fmt"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// hydrateNodes fetches full rows for ids via BuildNodeHydrationSQL and
// scans each into a NodeRow keyed by column name, schema-agnostically —
// the engine never knows the node table's payload columns in advance, so
// it reads back whatever SELECT * returns.
func hydrateNodes(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, ids []any) ([]NodeRow, error) {
	if len(ids) == 0 {
		return []NodeRow{}, nil
	}

	sql, args := sqlbuilder.BuildNodeHydrationSQL(b, ids)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying node hydration: %w", err)
	}
	defer rows.Close()

	pkIndex := -1
	fields := rows.FieldDescriptions()

	for i, f := range fields {
		if string(f.Name) == b.Normalize().PKCol {
			pkIndex = i
			break
		}
	}

	var nodes []NodeRow

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading node row values: %w", err)
		}

		columns := make(map[string]any, len(fields))
		for i, f := range fields {
			columns[string(f.Name)] = values[i]
		}

		var id any
		if pkIndex >= 0 {
			id = values[pkIndex]
		}

		nodes = append(nodes, NodeRow{ID: id, Columns: columns})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node hydration rows: %w", err)
	}

	return nodes, nil
}

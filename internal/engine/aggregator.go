package engine

import (
	"context"
	"fmt"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
	"github.com/virtgraph/vgcore/internal/vgerrors"
)

// Operation selects path_aggregate's per-path contribution and cross-path
// combination, per spec §4.5's operation table.
type Operation string

// Supported path_aggregate operations.
const (
	OpSum      Operation = "sum"
	OpMultiply Operation = "multiply"
	OpMax      Operation = "max"
	OpMin      Operation = "min"
	OpCount    Operation = "count"
)

// PathAggregateOptions parameterizes path_aggregate.
type PathAggregateOptions struct {
	Start     any
	ValueCol  string
	Operation Operation
	MaxDepth  int
}

// pathRow is one recursive-CTE row: a full path prefix ending at node,
// carrying that specific path's running accumulation (sum/product/
// running-max/running-min of edge values along exactly that path, per
// op — see BuildPathAggregateSQL). Rows are never deduplicated by
// terminal node — that is the diamond-problem fix spec §4.5 and §9
// describe: keying by the full path prefix means a node reached by two
// distinct parents produces two independent rows here.
type pathRow struct {
	node    string
	running float64
	path    []string
	depth   int
}

// sqlOp maps the engine's Operation to the SQL builder's AggregateOp.
func sqlOp(op Operation) sqlbuilder.AggregateOp {
	switch op {
	case OpMultiply:
		return sqlbuilder.AggMultiply
	case OpMax:
		return sqlbuilder.AggMax
	case OpMin:
		return sqlbuilder.AggMin
	case OpCount:
		return sqlbuilder.AggCount
	default:
		return sqlbuilder.AggSum
	}
}

// PathAggregate computes, for every node reachable from opts.Start within
// opts.MaxDepth, a single scalar reflecting opts.Operation applied across
// every path from start to that node — not just the first one found.
func PathAggregate(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, opts PathAggregateOptions) (*PathAggregateResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := sqlbuilder.ValidateIdentifier(opts.ValueCol); err != nil {
		return nil, err
	}

	maxDepth := safety.ClampDepth(opts.MaxDepth, limits.MaxDepth)

	if maxDepth == 0 {
		return &PathAggregateResult{
			Nodes:            []NodeRow{},
			AggregatedValues: map[any]float64{},
			Operation:        string(opts.Operation),
			ValueColumn:      opts.ValueCol,
			MaxDepth:         opts.MaxDepth,
			NodesVisited:     0,
		}, nil
	}

	b = b.Normalize()
	startStr := fmt.Sprintf("%v", opts.Start)
	rowCap := limits.MaxNodes * pathAggregateFanoutFactor

	sql, args := sqlbuilder.BuildPathAggregateSQL(b, opts.ValueCol, startStr, maxDepth, rowCap+1, sqlOp(opts.Operation))

	tx, err := pool.BeginReadOnly(ctx)
	if err != nil {
		return nil, dbconn.MapError("path_aggregate: begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbconn.MapError("path_aggregate: query", err)
	}

	var pathRows []pathRow
	rowCount := 0

	for rows.Next() {
		var r pathRow

		if err := rows.Scan(&r.node, &r.running, &r.path, &r.depth); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning path_aggregate row: %w", err)
		}

		rowCount++
		if rowCount > rowCap {
			rows.Close()
			return nil, vgerrors.NewSafetyLimit("path_aggregate_rows", rowCount, rowCap)
		}

		pathRows = append(pathRows, r)
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating path_aggregate rows: %w", err)
	}

	rows.Close()

	aggregated := combinePathRows(pathRows, opts.Operation)

	ids := make([]any, 0, len(aggregated))
	for id := range aggregated {
		ids = append(ids, id)
	}

	nodes, err := hydrateNodes(ctx, tx, b, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating aggregated nodes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dbconn.MapError("path_aggregate: commit", err)
	}

	return &PathAggregateResult{
		Nodes:            nodes,
		AggregatedValues: aggregated,
		Operation:        string(opts.Operation),
		ValueColumn:      opts.ValueCol,
		MaxDepth:         opts.MaxDepth,
		NodesVisited:     len(aggregated),
	}, nil
}

// combinePathRows groups rows by terminal node and applies op's
// cross-path combiner — the only place the per-path contribution and the
// across-paths combination meet. Per spec §4.5: sum and multiply combine
// across paths by summing (multiply's "diamond-aware rule"); max/min
// combine by max/min; count combines by taking the shortest path length.
func combinePathRows(rows []pathRow, op Operation) map[any]float64 {
	perPath := make(map[string][]float64) // node -> one contribution per path reaching it

	for _, r := range rows {
		node := r.node

		contribution := pathContribution(r, op)
		perPath[node] = append(perPath[node], contribution)
	}

	result := make(map[any]float64, len(perPath))

	for node, contributions := range perPath {
		result[node] = combineAcrossPaths(contributions, op)
	}

	return result
}

// pathContribution returns a single path's contribution toward its
// terminal node. The CTE already carries the correct per-operation
// running accumulation for that specific path (see BuildPathAggregateSQL),
// so this is a direct passthrough.
func pathContribution(r pathRow, _ Operation) float64 {
	return r.running
}

func combineAcrossPaths(contributions []float64, op Operation) float64 {
	switch op {
	case OpSum, OpMultiply:
		var total float64
		for _, c := range contributions {
			total += c
		}

		return total
	case OpMax:
		max := contributions[0]
		for _, c := range contributions[1:] {
			if c > max {
				max = c
			}
		}

		return max
	case OpMin, OpCount:
		min := contributions[0]
		for _, c := range contributions[1:] {
			if c < min {
				min = c
			}
		}

		return min
	default:
		var total float64
		for _, c := range contributions {
			total += c
		}

		return total
	}
}
